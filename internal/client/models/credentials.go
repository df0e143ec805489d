package models

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/tpforum/internal/common"
)

// ErrValidation is matched by every credential validation failure.
var ErrValidation = common.ErrorValidation

// ValidationError names the offending form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Credentials is what the user typed into the dialog. It lives only for the
// duration of one submission.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// Validate applies the form constraints for mode. Email is checked only when
// registering; for login it is ignored.
func (c Credentials) Validate(mode Mode) error {
	var errs []error

	if strings.TrimSpace(c.Username) == "" {
		errs = append(errs, &ValidationError{Field: "username", Reason: "is required"})
	}

	if mode == ModeRegister {
		if strings.TrimSpace(c.Email) == "" {
			errs = append(errs, &ValidationError{Field: "email", Reason: "is required"})
		} else if _, err := mail.ParseAddress(c.Email); err != nil {
			errs = append(errs, &ValidationError{Field: "email", Reason: "is not a valid address"})
		}
	}

	if utf8.RuneCountInString(c.Password) < common.MinPasswordLength {
		errs = append(errs, &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", common.MinPasswordLength),
		})
	}

	return errors.Join(errs...)
}

// Request builds the wire request for mode. Email is only sent on register.
func (c Credentials) Request(mode Mode) AuthRequest {
	req := AuthRequest{
		Action:   mode,
		Username: c.Username,
		Password: c.Password,
	}
	if mode == ModeRegister {
		req.Email = c.Email
	}
	return req
}
