package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is how long a session lives without a fresh login.
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for token -> user lookups.
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user -> token lookups.
	UserSessionKeyPrefix = "user_session:"
)

// SessionStore keeps opaque session tokens in Redis. One live session per
// user: a new login invalidates the previous token so the expiry timer
// always restarts from the latest login.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Create issues a new session token for the user.
func (s *SessionStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	// Drop any existing session so the TTL resets from this login.
	if err := s.InvalidateUser(ctx, userID); err != nil {
		return "", err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.client.Set(ctx, SessionKeyPrefix+token, userID.String(), SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, UserSessionKeyPrefix+userID.String(), token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate checks a session token and returns the user it belongs to.
// An unknown or expired token yields ok=false with a nil error.
func (s *SessionStore) Validate(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}

	userIDStr, err := s.client.Get(ctx, SessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("corrupt session value: %w", err)
	}
	return userID, true, nil
}

// Invalidate removes one session token.
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	userIDStr, err := s.client.Get(ctx, SessionKeyPrefix+token).Result()
	if err == nil && userIDStr != "" {
		s.client.Del(ctx, UserSessionKeyPrefix+userIDStr)
	}
	return s.client.Del(ctx, SessionKeyPrefix+token).Err()
}

// InvalidateUser removes whichever session the user currently holds.
func (s *SessionStore) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	userKey := UserSessionKeyPrefix + userID.String()

	token, err := s.client.Get(ctx, userKey).Result()
	if err == nil && token != "" {
		s.client.Del(ctx, SessionKeyPrefix+token)
	}
	return s.client.Del(ctx, userKey).Err()
}
