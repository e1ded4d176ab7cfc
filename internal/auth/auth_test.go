package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	svc := NewService(kv)

	if err := svc.Register(ctx, "Ana", "Ana@Example.com ", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Email comparison is normalized.
	profile, err := svc.Login(ctx, "  ANA@example.COM", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if profile.Email != "ana@example.com" {
		t.Errorf("Email = %q, want normalized", profile.Email)
	}
	if profile.Picture == "" {
		t.Error("local login should synthesize an avatar URL")
	}

	// A session was persisted.
	got, ok, err := svc.Session(ctx)
	if err != nil || !ok {
		t.Fatalf("Session: ok=%v err=%v", ok, err)
	}
	if got.Email != profile.Email {
		t.Errorf("session email = %q", got.Email)
	}

	svc.Logout(ctx)
	if _, ok, _ := svc.Session(ctx); ok {
		t.Error("session should be gone after logout")
	}
}

func TestLoginDistinguishesFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemKV())
	if err := svc.Register(ctx, "Ana", "ana@example.com", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// The two failure modes are deliberately distinct even though that
	// leaks account existence.
	if _, err := svc.Login(ctx, "nobody@example.com", "secret"); !errors.Is(err, ErrEmailNotFound) {
		t.Errorf("unknown email: err = %v, want ErrEmailNotFound", err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("wrong password: err = %v, want ErrPasswordMismatch", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemKV())
	if err := svc.Register(ctx, "Ana", "ana@example.com", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Register(ctx, "Other", "ANA@example.com", "other"); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemKV())
	if err := svc.Register(ctx, "Ana", "ana@example.com", "old"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ResetPassword(ctx, "ana@example.com", "new"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", "new"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", "old"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("old password should no longer work, got %v", err)
	}

	if err := svc.ResetPassword(ctx, "nobody@example.com", "x"); !errors.Is(err, ErrEmailNotFound) {
		t.Errorf("err = %v, want ErrEmailNotFound", err)
	}
}

func TestDiagnosisExposesPasswords(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemKV())
	if err := svc.Register(ctx, "Ana", "ana@example.com", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	creds := svc.Diagnosis()
	if len(creds) != 1 {
		t.Fatalf("Diagnosis returned %d records, want 1", len(creds))
	}
	// The stored plaintext comes back as-is.
	if creds[0].Password != "secret" {
		t.Errorf("Password = %q, want the stored plaintext", creds[0].Password)
	}
}

func TestRegistryPersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	svc := NewService(kv)
	if err := svc.Register(ctx, "Ana", "ana@example.com", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	reloaded := NewService(kv)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := reloaded.Login(ctx, "ana@example.com", "secret"); err != nil {
		t.Errorf("login after reload: %v", err)
	}
}

// identityToken builds an unsigned JWT-shaped token for the decode path.
func identityToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, _ := json.Marshal(map[string]string{"alg": "RS256", "typ": "JWT"})
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

func TestDecodeIdentityToken(t *testing.T) {
	token := identityToken(t, map[string]any{
		"name":    "Ana",
		"email":   "ana@example.com",
		"picture": "https://example.com/p.png",
	})

	profile, err := DecodeIdentityToken(token)
	if err != nil {
		t.Fatalf("DecodeIdentityToken: %v", err)
	}
	if profile.Name != "Ana" || profile.Email != "ana@example.com" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestDecodeIdentityTokenFailures(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"two segments", "abc.def"},
		{"bad payload", "eyJhbGciOiAiUlMyNTYifQ.%%%.sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeIdentityToken(tt.token); !errors.Is(err, ErrIdentityDecode) {
				t.Errorf("err = %v, want ErrIdentityDecode", err)
			}
		})
	}

	t.Run("missing email claim", func(t *testing.T) {
		token := identityToken(t, map[string]any{"name": "Ana"})
		if _, err := DecodeIdentityToken(token); !errors.Is(err, ErrIdentityDecode) {
			t.Errorf("err = %v, want ErrIdentityDecode", err)
		}
	})
}
