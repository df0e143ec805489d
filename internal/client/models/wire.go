package models

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a 2xx response that does not match the auth
// endpoint contract.
var ErrMalformedResponse = errors.New("malformed server response")

// AuthRequest is the body POSTed to the auth endpoint.
type AuthRequest struct {
	Action   Mode   `json:"action"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// AuthResponse is the body of a successful auth call.
type AuthResponse struct {
	Message      string `json:"message"`
	SessionToken string `json:"session_token"`
	User         *User  `json:"user"`
}

// Validate rejects responses lacking a token or a well-formed user.
func (r *AuthResponse) Validate() error {
	if r.SessionToken == "" {
		return fmt.Errorf("%w: missing session_token", ErrMalformedResponse)
	}
	if r.User == nil {
		return fmt.Errorf("%w: missing user", ErrMalformedResponse)
	}
	if err := r.User.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Session returns the session materialized by this response.
func (r *AuthResponse) Session() Session {
	return Session{User: *r.User, Token: r.SessionToken}
}

// ErrorResponse is the body of a non-2xx auth call.
type ErrorResponse struct {
	Error string `json:"error"`
}
