package domain

import "time"

// User is the domain model for registered accounts. The password hash is
// opaque bcrypt output and never leaves the service.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
