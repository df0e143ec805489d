// Package common contains shared constants and sentinel errors used across
// the forum client and the authentication server.
package common

// SessionTokenHeaderName is the HTTP header carrying a session token on
// requests that need an authenticated user.
const SessionTokenHeaderName = "X-Session-Token"

// Keys of the client-side session store.
const (
	SessionTokenKey = "session_token"
	UserKey         = "user"
)

// MinPasswordLength is the shortest password accepted by both the client form
// and the server.
const MinPasswordLength = 6
