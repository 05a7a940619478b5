package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account identity. Users are created at registration and never
// updated or deleted; PasswordHash is an Argon2id PHC string and must never
// leave the auth layer.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
