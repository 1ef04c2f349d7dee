package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisBlobRepo struct {
	client *redis.Client
	prefix string
}

func NewRedisBlobRepo(client *redis.Client) *RedisBlobRepo {
	return &RedisBlobRepo{
		client: client,
		prefix: "bsk",
	}
}

func (r *RedisBlobRepo) key(scope, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, scope, key)
}

func (r *RedisBlobRepo) Get(ctx context.Context, scope, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(scope, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Put stores the value without expiry; local storage never expires.
func (r *RedisBlobRepo) Put(ctx context.Context, scope, key string, value []byte) error {
	return r.client.Set(ctx, r.key(scope, key), value, 0).Err()
}
