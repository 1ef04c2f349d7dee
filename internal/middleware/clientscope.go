package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const clientIDKey contextKey = "client_id"

const (
	ClientCookieName = "bsk_client"
	clientTokenTTL   = 365 * 24 * time.Hour
)

// ClientScope identifies the browser making the request. The client ID lives
// in a signed cookie; requests without a valid one get a fresh ID. The ID only
// selects a storage scope and proves nothing about the user.
func ClientScope(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := ""
			if cookie, err := r.Cookie(ClientCookieName); err == nil {
				if id, err := ParseClientToken(cookie.Value, key); err == nil {
					clientID = id
				}
			}

			if clientID == "" {
				clientID = uuid.NewString()
				token, err := IssueClientToken(clientID, key, time.Now())
				if err != nil {
					log.Printf("Error signing client token: %v", err)
					http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     ClientCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(clientTokenTTL.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), clientIDKey, clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IssueClientToken signs a client ID with HS256.
func IssueClientToken(clientID string, key []byte, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"client_id": clientID,
		"iat":       now.Unix(),
		"exp":       now.Add(clientTokenTTL).Unix(),
	})
	return token.SignedString(key)
}

// ParseClientToken verifies a client token and returns its client ID.
func ParseClientToken(tokenString string, key []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	clientID, _ := claims["client_id"].(string)
	if _, err := uuid.Parse(clientID); err != nil {
		return "", errors.New("invalid client id")
	}
	return clientID, nil
}

// GetClientID returns the client ID set by ClientScope, or "".
func GetClientID(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}
