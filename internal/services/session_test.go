package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client), mr
}

func TestSessionStore_CreateAndValidate(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := store.Create(ctx, userID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	got, ok, err := store.Validate(ctx, token)
	if err != nil || !ok {
		t.Fatalf("Validate: got (%v, %v)", ok, err)
	}
	if got != userID {
		t.Errorf("Validate: got user %s, want %s", got, userID)
	}
}

func TestSessionStore_ValidateUnknownToken(t *testing.T) {
	store, _ := testStore(t)

	_, ok, err := store.Validate(context.Background(), "no-such-token")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if ok {
		t.Error("unknown token validated")
	}

	_, ok, err = store.Validate(context.Background(), "")
	if err != nil || ok {
		t.Errorf("empty token: got (%v, %v), want (false, nil)", ok, err)
	}
}

func TestSessionStore_Invalidate(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, uuid.New())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Invalidate(ctx, token); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	if _, ok, _ := store.Validate(ctx, token); ok {
		t.Error("token still valid after Invalidate")
	}
}

func TestSessionStore_SecondLoginInvalidatesFirst(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	userID := uuid.New()

	first, err := store.Create(ctx, userID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create(ctx, userID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, ok, _ := store.Validate(ctx, first); ok {
		t.Error("first session survived a second login")
	}
	if _, ok, _ := store.Validate(ctx, second); !ok {
		t.Error("second session not valid")
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, uuid.New())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mr.FastForward(SessionDuration + time.Minute)

	if _, ok, _ := store.Validate(ctx, token); ok {
		t.Error("session valid after TTL elapsed")
	}
}
