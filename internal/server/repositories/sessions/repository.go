package sessions

import (
	"context"

	"github.com/dmitrijs2005/tpforum/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
}
