// Package models holds the server-side records of forum accounts and their
// sessions.
package models

import "time"

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	AvatarURL    *string
	Status       string
	LastSeen     *time.Time
	CreatedAt    time.Time
}

// Session is a server-side login. The bearer token handed to the client
// refers to it by ID.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
