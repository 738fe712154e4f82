package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/acadboost/academic-service/internal/models"
)

func testIdentity() models.Identity {
	return models.Identity{
		ID:         7,
		Username:   "svasquez",
		Role:       models.RoleStudent,
		FullName:   "Sofia Vasquez",
		Email:      "sofia@example.com",
		Department: "Computer Science",
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, 0)
	ctx := context.Background()

	t.Run("create and get round trip", func(t *testing.T) {
		token, err := store.Create(ctx, testIdentity())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" {
			t.Fatal("expected non-empty token")
		}

		identity, err := store.Get(ctx, token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if identity != testIdentity() {
			t.Errorf("expected %+v, got %+v", testIdentity(), identity)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("delete ends session", func(t *testing.T) {
		token, err := store.Create(ctx, testIdentity())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Delete(ctx, token); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := store.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})

	t.Run("tokens are unique", func(t *testing.T) {
		a, _ := store.Create(ctx, testIdentity())
		b, _ := store.Create(ctx, testIdentity())
		if a == b {
			t.Error("expected distinct tokens for separate sessions")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	token, err := store.Create(ctx, testIdentity())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	identity, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Username != "svasquez" {
		t.Errorf("expected username svasquez, got %s", identity.Username)
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()

	t.Run("expired session is not returned", func(t *testing.T) {
		store := NewMemoryStore(time.Millisecond)

		token, err := store.Create(ctx, testIdentity())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		time.Sleep(5 * time.Millisecond)

		if _, err := store.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound for expired session, got %v", err)
		}
	})

	t.Run("creating sweeps expired sessions", func(t *testing.T) {
		store := NewMemoryStore(time.Millisecond)

		if _, err := store.Create(ctx, testIdentity()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
		if _, err := store.Create(ctx, testIdentity()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		store.mu.Lock()
		remaining := len(store.sessions)
		store.mu.Unlock()
		if remaining != 1 {
			t.Errorf("expected 1 live session after sweep, got %d", remaining)
		}
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		store := NewMemoryStore(0)

		token, err := store.Create(ctx, testIdentity())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		time.Sleep(5 * time.Millisecond)

		if _, err := store.Get(ctx, token); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
