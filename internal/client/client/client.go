package client

import (
	"context"

	"github.com/dmitrijs2005/tpforum/internal/client/models"
)

// Authenticator performs one login or registration call.
type Authenticator interface {
	Authenticate(ctx context.Context, req models.AuthRequest) (*models.AuthResponse, error)
}

// HealthChecker reports server liveness.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Close() error
}
