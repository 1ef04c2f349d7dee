package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"bsk-backend/internal/models"
	"bsk-backend/internal/repository"
)

// DefaultKey is the storage key holding the serialized user record.
const DefaultKey = "bsk_user"

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Store manages the user record of a single client scope. All methods are
// safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	blobs   repository.BlobStore
	scope   string
	key     string
	now     func() time.Time
	logger  *log.Logger
	current *models.UserRecord
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func NewStore(blobs repository.BlobStore, scope string, opts ...Option) *Store {
	s := &Store{
		blobs:  blobs,
		scope:  scope,
		key:    DefaultKey,
		now:    time.Now,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted record. A missing or undecodable record leaves the
// store without a user; only backend failures are returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.blobs.Get(ctx, s.scope, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.current = nil
			return nil
		}
		return fmt.Errorf("load user record: %w", err)
	}

	record, migrated, err := decodeRecord(raw)
	if err != nil {
		s.logger.Printf("⚠️  Resetting user record for client %s: %v", s.scope, err)
		s.current = nil
		return nil
	}

	if migrated {
		if err := s.persist(ctx, record); err != nil {
			s.logger.Printf("⚠️  Failed to rewrite migrated user record for client %s: %v", s.scope, err)
		}
	}

	s.current = &record
	return nil
}

// Save merges patch into the current record and persists the full result.
// The in-memory record only changes once the write has succeeded.
func (s *Store) Save(ctx context.Context, patch models.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var base models.UserRecord
	if s.current != nil {
		base = *s.current
	}
	merged := patch.Apply(base)

	if err := s.persist(ctx, merged); err != nil {
		return err
	}
	s.current = &merged
	return nil
}

// Register marks the client as logged in under name and email. The password
// is accepted for interface compatibility and is neither stored nor checked.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	now := s.timestamp()
	return s.Save(ctx, models.UserPatch{
		Name:         &name,
		Email:        &email,
		IsLoggedIn:   boolPtr(true),
		RegisteredAt: &now,
	})
}

// Login marks the client as logged in. No credential is verified.
func (s *Store) Login(ctx context.Context, email, password string) error {
	now := s.timestamp()
	return s.Save(ctx, models.UserPatch{
		Email:      &email,
		IsLoggedIn: boolPtr(true),
		LastLogin:  &now,
	})
}

func (s *Store) SetupProfile(ctx context.Context, grade models.Grade, exam models.Exam, subjects []string) error {
	if subjects == nil {
		subjects = []string{}
	}
	level := DetermineLevel(grade, exam)
	now := s.timestamp()
	return s.Save(ctx, models.UserPatch{
		Grade:              &grade,
		Exam:               &exam,
		Subjects:           subjects,
		Level:              &level,
		SetupCompleted:     boolPtr(true),
		ProfileCompletedAt: &now,
	})
}

// Logout replaces the record with a copy that keeps identity and profile
// fields and clears the logged-in flag.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := models.UserRecord{Version: models.CurrentRecordVersion}
	if s.current != nil {
		cur := s.current.Clone()
		kept.Name = cur.Name
		kept.Email = cur.Email
		kept.Grade = cur.Grade
		kept.Exam = cur.Exam
		kept.Subjects = cur.Subjects
		kept.SetupCompleted = cur.SetupCompleted
		kept.RegisteredAt = cur.RegisteredAt
	}
	kept.IsLoggedIn = false

	if err := s.persist(ctx, kept); err != nil {
		return err
	}
	s.current = &kept
	return nil
}

func (s *Store) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.IsLoggedIn
}

func (s *Store) IsProfileSetup() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.SetupCompleted
}

// Preferences returns the task-filtering fields. ok is false when no user is loaded.
func (s *Store) Preferences() (prefs models.Preferences, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.Preferences{}, false
	}
	return models.Preferences{
		Grade:    s.current.Grade,
		Exam:     s.current.Exam,
		Level:    s.current.Level,
		Subjects: subjectsOrEmpty(s.current.Subjects),
	}, true
}

func (s *Store) Info() models.UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.UserInfo{}
	}
	return models.UserInfo{
		IsLoggedIn:     s.current.IsLoggedIn,
		SetupCompleted: s.current.SetupCompleted,
		Grade:          s.current.Grade,
		Exam:           s.current.Exam,
		Level:          s.current.Level,
		Subjects:       subjectsOrEmpty(s.current.Subjects),
		Name:           s.current.Name,
		Email:          s.current.Email,
	}
}

// Current returns a copy of the loaded record, or nil.
func (s *Store) Current() *models.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	cp := s.current.Clone()
	return &cp
}

// Initials returns the upper-cased first letter of the user's name for the avatar.
func (s *Store) Initials() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.Name == nil || *s.current.Name == "" {
		return "U"
	}
	r, _ := utf8.DecodeRuneInString(*s.current.Name)
	return string(unicode.ToUpper(r))
}

func (s *Store) WelcomeMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var greeting string
	switch hour := s.now().Hour(); {
	case hour < 12:
		greeting = "Good morning"
	case hour < 18:
		greeting = "Good afternoon"
	default:
		greeting = "Good evening"
	}

	name := "Student"
	if s.current != nil && s.current.Name != nil && strings.TrimSpace(*s.current.Name) != "" {
		name = *s.current.Name
	}
	return fmt.Sprintf("%s, %s!", greeting, name)
}

func (s *Store) persist(ctx context.Context, record models.UserRecord) error {
	raw, err := encodeRecord(record)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}
	if err := s.blobs.Put(ctx, s.scope, s.key, raw); err != nil {
		return fmt.Errorf("save user record: %w", err)
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

func subjectsOrEmpty(subjects []string) []string {
	if subjects == nil {
		return []string{}
	}
	return append([]string{}, subjects...)
}

func boolPtr(b bool) *bool { return &b }
