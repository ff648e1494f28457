package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rdevang/smartsplit/internal/models"
)

// memUserStore is an in-memory UserStore for tests.
type memUserStore struct {
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*models.User)}
}

func (s *memUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.users[user.Email] = user
	return nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.users[email], nil
}

// failingUserStore simulates a storage outage on lookups.
type failingUserStore struct {
	*memUserStore
	lookupErr error
}

func (s *failingUserStore) GetUserByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, s.lookupErr
}

func TestRegisterSurfacesLookupError(t *testing.T) {
	lookupErr := errors.New("database is locked")
	authn := NewPasswordAuthenticator(&failingUserStore{
		memUserStore: newMemUserStore(),
		lookupErr:    lookupErr,
	})

	_, err := authn.Register(context.Background(), "alice@example.com", "Alice", "s3cret-pass")
	if !errors.Is(err, lookupErr) {
		t.Errorf("Register error = %v, want wrapped %v", err, lookupErr)
	}
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	authn := NewPasswordAuthenticator(newMemUserStore())

	t.Run("register and authenticate", func(t *testing.T) {
		user, err := authn.Register(ctx, "alice@example.com", "Alice", "s3cret-pass")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected user ID to be generated")
		}
		if user.PasswordHash == "s3cret-pass" {
			t.Error("password stored in plaintext")
		}

		got, err := authn.Authenticate(ctx, "alice@example.com", "s3cret-pass")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("authenticated wrong user: got %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := authn.Authenticate(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := authn.Authenticate(ctx, "nobody@example.com", "whatever-pass"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		if _, err := authn.Register(ctx, "alice@example.com", "Alice II", "another-pass"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("Register error = %v, want ErrEmailExists", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		if _, err := authn.Register(ctx, "bob@example.com", "Bob", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Register error = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("overlong password", func(t *testing.T) {
		long := strings.Repeat("x", 73)
		if _, err := authn.Register(ctx, "bob@example.com", "Bob", long); !errors.Is(err, ErrPasswordTooLong) {
			t.Errorf("Register error = %v, want ErrPasswordTooLong", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "u1", Email: "alice@example.com", DisplayName: "Alice"}

	t.Run("round trip", func(t *testing.T) {
		mgr := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

		token, err := mgr.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := mgr.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != user.ID || claims.Email != user.Email || claims.DisplayName != user.DisplayName {
			t.Errorf("claims mismatch: %+v", claims)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		mgr := NewJWTManager("test-secret-key-32-bytes-long!!!", -time.Minute)

		token, err := mgr.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := mgr.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		mgr := NewJWTManager("secret-one", time.Hour)
		other := NewJWTManager("secret-two", time.Hour)

		token, err := mgr.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate error = %v, want ErrInvalidToken", err)
		}
	})
}
