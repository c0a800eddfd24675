package suite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/repository/storage"
)

const (
	containerTTL = 120 // seconds
	startTimeout = 120 * time.Second
)

const (
	redisImage = "redis"
	redisTag   = "alpine"
	redisPort  = "6379/tcp"
)

// Suite - a Redis-backed state store for integration tests.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage    *storage.RedisStorage
	Repository repository.StateRepository
}

// New - runs a disposable redis container and opens storage on an empty database.
// The test is skipped when no docker daemon answers.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	pool := dockerPool(t)
	addr := runRedis(t, pool)

	redisStorage, err := connect(ctx, pool, addr)
	if err != nil {
		t.Fatalf("could not connect to redis at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		_ = redisStorage.Close()
	})

	return ctx, &Suite{
		T:          t,
		Logger:     slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Storage:    redisStorage,
		Repository: repository.NewStateRepository(redisStorage, entity.NewGameState()),
	}
}

func dockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	pool.MaxWait = startTimeout

	return pool
}

// runRedis - starts the container and returns its host address. The container is
// purged on cleanup and killed by docker after containerTTL in any case.
func runRedis(t *testing.T, pool *dockertest.Pool) string {
	t.Helper()

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(host *docker.HostConfig) {
		host.AutoRemove = true
		host.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis: %v", err)
		}
	})

	_ = resource.Expire(containerTTL)

	return resource.GetHostPort(redisPort)
}

// connect - retries until redis accepts connections, then empties the database.
func connect(ctx context.Context, pool *dockertest.Pool, addr string) (*storage.RedisStorage, error) {
	var redisStorage *storage.RedisStorage

	err := pool.Retry(func() error {
		var err error
		redisStorage, err = storage.NewRedisStorage(ctx, addr)

		return err
	})
	if err != nil {
		return nil, err
	}

	if err = redisStorage.Connection.FlushDB(ctx).Err(); err != nil {
		_ = redisStorage.Close()

		return nil, fmt.Errorf("failed to flush database: %w", err)
	}

	return redisStorage, nil
}
