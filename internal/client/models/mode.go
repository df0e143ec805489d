// Package models defines the client-side data transfer objects of the forum
// auth flow: credentials, auth mode, the wire request/response and the
// persisted session.
package models

import "fmt"

// Mode selects between signing in and creating a new account.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLogin, ModeRegister:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown auth mode %q", s)
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeRegister {
		return ModeLogin
	}
	return ModeRegister
}

// Title is the dialog heading for the mode.
func (m Mode) Title() string {
	if m == ModeRegister {
		return "Register"
	}
	return "Login"
}
