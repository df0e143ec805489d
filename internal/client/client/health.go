package client

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// pingTimeout bounds a single health check.
const pingTimeout = 3 * time.Second

// GRPCHealthClient queries the server's grpc.health.v1 service.
type GRPCHealthClient struct {
	address string
	conn    *grpc.ClientConn
	client  healthpb.HealthClient
}

func NewGRPCHealthClient(address string) (*GRPCHealthClient, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &GRPCHealthClient{address: address, conn: conn, client: healthpb.NewHealthClient(conn)}, nil
}

// Ping returns nil when the server reports SERVING. Any other outcome is an
// ErrUnavailable naming the checked address.
func (c *GRPCHealthClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := c.client.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("health %s: %w", c.address, mapError(err))
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s reports %s", ErrUnavailable, c.address, resp.GetStatus())
	}
	return nil
}

func (c *GRPCHealthClient) Close() error {
	return c.conn.Close()
}

func mapError(err error) error {
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: rpc error: %v", ErrUnavailable, err)
	}
}
