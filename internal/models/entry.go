package models

import (
	"time"

	"github.com/google/uuid"
)

// Emotion categories stored per entry. The classification adapter guarantees
// every persisted entry carries exactly one of these.
const (
	EmotionPositive = "positive"
	EmotionNegative = "negative"
	EmotionNeutral  = "neutral"
)

// Entry is one journal submission. Entries are append-only: written once by
// the analyze endpoint, read by history and the analytics aggregators.
// Content holds AES-GCM ciphertext when encryption is configured, plaintext
// otherwise (legacy rows written before encryption existed stay readable).
type Entry struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Content         string    `json:"content"`
	Emotion         string    `json:"emotion"`
	SpecificEmotion string    `json:"specific_emotion,omitempty"`
	Suggestion      string    `json:"suggestion"`
	CreatedAt       time.Time `json:"timestamp"`
}
