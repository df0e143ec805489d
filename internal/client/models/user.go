package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// User is the account returned by the auth endpoint and kept in the local
// session store.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	AvatarURL *string    `json:"avatar_url"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

// Validate checks the fields the client relies on.
func (u *User) Validate() error {
	var errs []error
	if u.ID <= 0 {
		errs = append(errs, errors.New("user.id must be positive"))
	}
	if strings.TrimSpace(u.Username) == "" {
		errs = append(errs, errors.New("user.username is required"))
	}
	return errors.Join(errs...)
}

// Session pairs the signed-in user with the bearer token.
type Session struct {
	User  User
	Token string
}

// Timestamp accepts RFC 3339 values as well as ISO 8601 values without a zone
// offset, which are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}
