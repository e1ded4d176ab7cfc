// Package auth implements the tracker's local identity model.
//
// SECURITY WARNING: credentials are stored as plaintext in the users_db
// record, login failures distinguish unknown email from wrong password,
// and the diagnosis endpoint lists stored passwords back to the user.
// This is demo-grade, device-local identity, not authentication. Do not
// reuse outside that context.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
)

// KV is the durable medium holding the users_db and user_session records.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Keys of the persisted identity records.
const (
	KeyUsersDB     = "users_db"
	KeyUserSession = "user_session"
)

// Credential is one local account record, password stored in the clear.
type Credential struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the signed-in user as shown in the UI.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

var (
	ErrEmailNotFound    = errors.New("email not registered")
	ErrPasswordMismatch = errors.New("wrong password for this email")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrIdentityDecode   = errors.New("identity token could not be decoded")
	ErrMissingField     = errors.New("missing required field")
)

// Service manages the local credential registry and the current session.
type Service struct {
	mu    sync.Mutex
	kv    KV
	users []Credential
}

func NewService(kv KV) *Service {
	return &Service{kv: kv, users: []Credential{}}
}

// Load reads the persisted credential registry. A missing record means no
// accounts exist yet.
func (s *Service) Load(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	raw, ok, err := s.kv.Get(ctx, KeyUsersDB)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if !ok {
		return nil
	}

	var users []Credential
	if err := json.Unmarshal(raw, &users); err != nil {
		return fmt.Errorf("decode users: %w", err)
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}

// Register creates a local account. The email is normalized before any
// comparison.
func (s *Service) Register(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return ErrMissingField
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.Email == email {
			s.mu.Unlock()
			return ErrDuplicateEmail
		}
	}
	s.users = append(s.users, Credential{Name: name, Email: email, Password: password})
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// Login checks the plaintext credential pair and opens a session. Unknown
// email and wrong password report distinct errors, which reveals account
// existence; kept for behavioral parity with the product.
func (s *Service) Login(ctx context.Context, email, password string) (Profile, error) {
	email = normalizeEmail(email)

	s.mu.Lock()
	var found *Credential
	for i := range s.users {
		if s.users[i].Email == email {
			found = &s.users[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return Profile{}, ErrEmailNotFound
	}
	if found.Password != password {
		s.mu.Unlock()
		return Profile{}, ErrPasswordMismatch
	}
	profile := Profile{
		Name:    found.Name,
		Email:   found.Email,
		Picture: avatarURL(found.Name),
	}
	s.mu.Unlock()

	s.saveSession(ctx, profile)
	return profile, nil
}

// LoginWithIdentity opens a session from a third-party identity token.
// The token's claims are trusted without signature verification.
func (s *Service) LoginWithIdentity(ctx context.Context, token string) (Profile, error) {
	profile, err := DecodeIdentityToken(token)
	if err != nil {
		return Profile{}, err
	}
	s.saveSession(ctx, profile)
	return profile, nil
}

// ResetPassword replaces the stored password for a known email.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = normalizeEmail(email)
	if newPassword == "" {
		return ErrMissingField
	}

	s.mu.Lock()
	idx := -1
	for i := range s.users {
		if s.users[i].Email == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrEmailNotFound
	}
	s.users[idx].Password = newPassword
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// Diagnosis returns every stored credential, passwords included. It backs
// the account-recovery page; treat its output as sensitive.
func (s *Service) Diagnosis() []Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Credential{}, s.users...)
}

// Users returns a copy of the registry for backup export.
func (s *Service) Users() []Credential {
	return s.Diagnosis()
}

// ReplaceUsers swaps the registry wholesale, used after a backup import.
func (s *Service) ReplaceUsers(ctx context.Context, users []Credential) {
	s.mu.Lock()
	s.users = append([]Credential{}, users...)
	s.mu.Unlock()
	s.persist(ctx)
}

// Session returns the persisted current profile, if a session exists.
func (s *Service) Session(ctx context.Context) (Profile, bool, error) {
	if s.kv == nil {
		return Profile{}, false, nil
	}
	raw, ok, err := s.kv.Get(ctx, KeyUserSession)
	if err != nil {
		return Profile{}, false, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return Profile{}, false, nil
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, false, fmt.Errorf("decode session: %w", err)
	}
	return p, true, nil
}

// Logout discards the persisted session.
func (s *Service) Logout(ctx context.Context) {
	if s.kv == nil {
		return
	}
	if err := s.kv.Delete(ctx, KeyUserSession); err != nil {
		slog.ErrorContext(ctx, "Failed to delete session", "error", err)
	}
}

// persist writes the registry fire-and-forget, like every other write in
// the system.
func (s *Service) persist(ctx context.Context) {
	if s.kv == nil {
		return
	}
	s.mu.Lock()
	raw, err := json.Marshal(s.users)
	s.mu.Unlock()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode users", "error", err)
		return
	}
	if err := s.kv.Set(ctx, KeyUsersDB, raw); err != nil {
		slog.ErrorContext(ctx, "Failed to persist users", "error", err)
	}
}

func (s *Service) saveSession(ctx context.Context, p Profile) {
	if s.kv == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode session", "error", err)
		return
	}
	if err := s.kv.Set(ctx, KeyUserSession, raw); err != nil {
		slog.ErrorContext(ctx, "Failed to persist session", "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// avatarURL synthesizes a deterministic avatar for local accounts. Only a
// URL is built here; nothing is fetched.
func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=10b981&color=fff"
}
