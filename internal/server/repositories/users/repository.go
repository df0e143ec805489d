package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tpforum/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// Exists reports whether username or email is already taken.
	Exists(ctx context.Context, username, email string) (bool, error)
	// GetByLogin finds a user whose username equals login or whose email
	// equals login lowercased.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	MarkOnline(ctx context.Context, id int64, at time.Time) error
}
