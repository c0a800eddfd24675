package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/repository/storage"
)

type StateRepository interface {
	Get(ctx context.Context, key string) (entity.GameState, error)
	Save(ctx context.Context, key string, state entity.GameState) error
}

type byteStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type dbState struct {
	store        byteStore
	defaultState entity.GameState
}

// NewStateRepository - defaultState is returned for keys that hold nothing yet.
func NewStateRepository(store byteStore, defaultState entity.GameState) StateRepository {
	return &dbState{
		store:        store,
		defaultState: defaultState.Clone(),
	}
}

func (that *dbState) Get(ctx context.Context, key string) (entity.GameState, error) {
	response, err := that.store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return that.defaultState.Clone(), nil
	}

	if err != nil {
		return entity.GameState{}, fmt.Errorf("failed to get state: %w", err)
	}

	var state entity.GameState
	if err = json.Unmarshal(response, &state); err != nil {
		return entity.GameState{}, fmt.Errorf("%w: %w", apperror.ErrMalformedState, err)
	}

	// arrays stored as null come back empty
	return state.Clone(), nil
}

func (that *dbState) Save(ctx context.Context, key string, state entity.GameState) error {
	stateJSON, err := json.Marshal(state.Clone())
	if err != nil {
		return fmt.Errorf("could not marshal state: %w", err)
	}

	if err = that.store.Set(ctx, key, stateJSON); err != nil {
		return fmt.Errorf("failed to set state: %w", err)
	}

	return nil
}
