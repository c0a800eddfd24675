package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/config"
)

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Storage - a key-value byte store. Get returns ErrKeyNotFound for an absent key.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// New - opens the storage selected by configuration.
func New(ctx context.Context, conf *config.Config) (Storage, error) {
	switch conf.Storage.Driver {
	case config.DriverMemory:
		return NewMemoryStorage(), nil
	case config.DriverRedis:
		redisStorage, err := NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return redisStorage, nil
	case config.DriverSQLite:
		sqliteStorage, err := NewSQLiteStorage(conf.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return sqliteStorage, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, conf.Storage.Driver)
	}
}
