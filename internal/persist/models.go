package persist

import (
	"time"
)

// Session represents one conversation or game session.
type Session struct {
	ID        string
	AppName   string
	CreatedAt time.Time
	UpdatedAt time.Time
	IsActive  bool
	Messages  []Message
}

// Message represents a single stored turn of a session.
type Message struct {
	ID        int64
	Role      string // "system" | "user" | "assistant"
	Content   string
	CreatedAt time.Time
}
