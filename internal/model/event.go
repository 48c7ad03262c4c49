package model

import (
	"time"
)

// EventType represents the type of session event published to the stream.
type EventType string

const (
	EventTypeContactSaved   EventType = "contact_saved"
	EventTypeSessionCleared EventType = "session_cleared"
)

// ContactSavedEvent is published after a draft has been committed to the
// contact store.
type ContactSavedEvent struct {
	UserID  string         `json:"user_id"`
	Contact *ContactRecord `json:"contact"`
	SavedAt time.Time      `json:"saved_at"`
}
