// Package integration provides integration tests for the cricket engine.
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/lib/pq"
)

// TestContainerSetup represents the test container infrastructure.
type TestContainerSetup struct {
	PostgresContainer testcontainers.Container
	RedisContainer    testcontainers.Container
	PostgresConnStr   string
	RedisAddr         string
	cleanup           func()
}

// SetupTestContainers initializes PostgreSQL and Redis containers for testing.
func SetupTestContainers(t *testing.T) *TestContainerSetup {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("cricket_engine_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pgConnStr := fmt.Sprintf("postgres://test:test@%s:%s/cricket_engine_test?sslmode=disable",
		pgHost, pgPort.Port())

	redisContainer, err := redis.Run(ctx,
		"redis:7.4-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err)

	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return &TestContainerSetup{
		PostgresContainer: pgContainer,
		RedisContainer:    redisContainer,
		PostgresConnStr:   pgConnStr,
		RedisAddr:         fmt.Sprintf("%s:%s", redisHost, redisPort.Port()),
		cleanup: func() {
			if err := pgContainer.Terminate(ctx); err != nil {
				t.Logf("Failed to terminate postgres container: %v", err)
			}
			if err := redisContainer.Terminate(ctx); err != nil {
				t.Logf("Failed to terminate redis container: %v", err)
			}
		},
	}
}

// Cleanup terminates all test containers.
func (s *TestContainerSetup) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// isDockerAvailable checks if Docker is available for testing.
func isDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		return false
	}
	defer provider.Close()

	_, err = provider.Client().Ping(ctx)
	return err == nil
}
