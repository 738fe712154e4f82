package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/sessions"
	"github.com/acadboost/academic-service/internal/validator"
)

func newTestAuthService(t *testing.T, repo *mockRepository) AuthService {
	t.Helper()
	return NewAuthService(repo, sessions.NewMemoryStore(0), testLogger(), validator.NewBusinessValidator())
}

func seedUser(t *testing.T, repo *mockRepository, id uint, username, password string, role models.UserRole, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     "Test " + username,
		IsActive:     active,
	}
	repo.users.add(user)
	return user
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return a session", func(t *testing.T) {
		repo := newMockRepository()
		seedUser(t, repo, 1, "alice", "secret-pass", models.RoleStudent, true)
		svc := newTestAuthService(t, repo)

		result, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "secret-pass", Role: models.RoleStudent})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if result.Token == "" {
			t.Error("expected a non-empty session token")
		}
		if result.User.ID != 1 || result.User.Role != models.RoleStudent {
			t.Errorf("unexpected identity: %+v", result.User)
		}

		identity, err := svc.Authenticate(ctx, result.Token)
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if identity.Username != "alice" {
			t.Errorf("Authenticate returned %q, want alice", identity.Username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newMockRepository()
		seedUser(t, repo, 1, "alice", "secret-pass", models.RoleStudent, true)
		svc := newTestAuthService(t, repo)

		_, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "wrong", Role: models.RoleStudent})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("role mismatch is indistinguishable from wrong password", func(t *testing.T) {
		repo := newMockRepository()
		seedUser(t, repo, 1, "alice", "secret-pass", models.RoleStudent, true)
		svc := newTestAuthService(t, repo)

		_, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "secret-pass", Role: models.RoleTeacher})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := newMockRepository()
		svc := newTestAuthService(t, repo)

		_, err := svc.Login(ctx, &LoginRequest{Username: "nobody", Password: "whatever", Role: models.RoleStudent})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		repo := newMockRepository()
		seedUser(t, repo, 1, "alice", "secret-pass", models.RoleStudent, false)
		svc := newTestAuthService(t, repo)

		_, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "secret-pass", Role: models.RoleStudent})
		if !errors.Is(err, ErrAccountInactive) {
			t.Errorf("expected ErrAccountInactive, got %v", err)
		}
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	seedUser(t, repo, 1, "alice", "secret-pass", models.RoleStudent, true)
	svc := newTestAuthService(t, repo)

	result, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "secret-pass", Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.Logout(ctx, result.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := svc.Authenticate(ctx, result.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after logout, got %v", err)
	}
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	user := seedUser(t, repo, 1, "alice", "old-pass", models.RoleStudent, true)
	svc := newTestAuthService(t, repo)

	t.Run("wrong old password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.Identity(), "not-it", "brand-new-pass")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("too short new password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.Identity(), "old-pass", "tiny")
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("successful change", func(t *testing.T) {
		if err := svc.ChangePassword(ctx, user.Identity(), "old-pass", "brand-new-pass"); err != nil {
			t.Fatalf("ChangePassword failed: %v", err)
		}

		_, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "brand-new-pass", Role: models.RoleStudent})
		if err != nil {
			t.Errorf("login with the new password failed: %v", err)
		}
	})
}
