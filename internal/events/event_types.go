package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventConfirmationResent   EventType = "confirmation_resent"
	EventPasswordResetRequest EventType = "password_reset_requested"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MailTokenPayload accompanies events that trigger a tokenized email.
type MailTokenPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
