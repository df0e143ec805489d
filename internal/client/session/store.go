// Package session persists the signed-in user and bearer token on the client.
//
// The Store is injected into both the auth dialog (which writes it on a
// successful sign-in) and the shell (which reads it at start-up and clears it
// on logout). Sessions are never validated against the server on load.
package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tpforum/internal/client/models"
)

var (
	// ErrNoSession is returned by Load when no user has been persisted.
	ErrNoSession = errors.New("no persisted session")
	// ErrCorruptSession is returned by Load when the persisted user cannot be decoded.
	ErrCorruptSession = errors.New("persisted session is corrupt")
)

type Store interface {
	// Save writes the token and user together; either both land or neither.
	Save(ctx context.Context, s models.Session) error
	// Load reads the persisted session without modifying it. Token may be
	// empty if only the user key is present.
	Load(ctx context.Context) (*models.Session, error)
	// Clear deletes both keys.
	Clear(ctx context.Context) error
}
