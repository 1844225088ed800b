// Package redistest starts a disposable Redis for integration suites.
package redistest

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Server is a running Redis container and a client connected to it.
type Server struct {
	Container testcontainers.Container
	Client    *goredis.Client
}

// Start runs redis:7-alpine.
func Start(ctx context.Context) (*Server, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	client := goredis.NewClient(&goredis.Options{Addr: endpoint})
	if err = client.Ping(ctx).Err(); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Server{Container: container, Client: client}, nil
}

// Flush removes every key.
func (s *Server) Flush(ctx context.Context) error {
	return s.Client.FlushAll(ctx).Err()
}

func (s *Server) Terminate(ctx context.Context) error {
	if s == nil {
		return nil
	}
	_ = s.Client.Close()
	return s.Container.Terminate(ctx)
}
