package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventSearchRecorded EventType = "search_recorded"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// SearchRecordedPayload payload.
type SearchRecordedPayload struct {
	UserID   *int64 `json:"user_id,omitempty"`
	City     string `json:"city"`
	CacheHit bool   `json:"cache_hit"`
}
