package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/tictactoe"
)

// EventStateChange - the only event a GameStore emits. It carries no payload.
const EventStateChange = "statechange"

type stateRepo interface {
	Get(ctx context.Context, key string) (entity.GameState, error)
	Save(ctx context.Context, key string, state entity.GameState) error
}

// Listener - called after every successful mutation. Listeners re-read projections themselves.
type Listener func()

// Subscription identifies a registered listener.
type Subscription struct {
	id uint64
}

type subscriber struct {
	id       uint64
	listener Listener
}

// GameStore owns the game, round and history state stored under one key.
// Use a single GameStore per key and storage; changes made by other processes
// are picked up only through Reload.
type GameStore struct {
	logger *slog.Logger

	repo    stateRepo
	key     string
	players entity.Players

	mu sync.Mutex

	listenersMu sync.Mutex
	listeners   []subscriber
	nextID      uint64
}

// NewGameStore - validates players and re-saves the stored state so that
// listeners attached later start from what is in storage now.
func NewGameStore(ctx context.Context, logger *slog.Logger, repo stateRepo, key string, players entity.Players) (*GameStore, error) {
	if err := players.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create game store: %w", err)
	}

	store := &GameStore{
		logger:  logger.With("component", "game_store", "key", key),
		repo:    repo,
		key:     key,
		players: players,
	}

	if err := store.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to refresh state: %w", err)
	}

	return store, nil
}

func (that *GameStore) Players() entity.Players {
	return that.players
}

// Subscribe - registers a listener for EventStateChange.
func (that *GameStore) Subscribe(listener Listener) Subscription {
	that.listenersMu.Lock()
	defer that.listenersMu.Unlock()

	that.nextID++
	that.listeners = append(that.listeners, subscriber{id: that.nextID, listener: listener})

	return Subscription{id: that.nextID}
}

func (that *GameStore) Unsubscribe(sub Subscription) {
	that.listenersMu.Lock()
	defer that.listenersMu.Unlock()

	for i, s := range that.listeners {
		if s.id == sub.id {
			that.listeners = append(that.listeners[:i:i], that.listeners[i+1:]...)
			return
		}
	}
}

// CurrentGame - whose turn it is and how the in-progress game stands.
func (that *GameStore) CurrentGame(ctx context.Context) (entity.CurrentGame, error) {
	state, err := that.repo.Get(ctx, that.key)
	if err != nil {
		return entity.CurrentGame{}, fmt.Errorf("failed to get state: %w", err)
	}

	game, err := tictactoe.DetermineCurrentGame(state.CurrentGameMoves, that.players)
	if err != nil {
		return entity.CurrentGame{}, fmt.Errorf("failed to determine current game: %w", err)
	}

	return game, nil
}

// Stats - the scoreboard of the current round. Earlier rounds are not counted.
func (that *GameStore) Stats(ctx context.Context) (entity.Stats, error) {
	state, err := that.repo.Get(ctx, that.key)
	if err != nil {
		return entity.Stats{}, fmt.Errorf("failed to get state: %w", err)
	}

	return tictactoe.DetermineStats(state.History.CurrentRoundGames, that.players), nil
}

// State - a copy of the whole persisted root.
func (that *GameStore) State(ctx context.Context) (entity.GameState, error) {
	state, err := that.repo.Get(ctx, that.key)
	if err != nil {
		return entity.GameState{}, fmt.Errorf("failed to get state: %w", err)
	}

	return state, nil
}

// ApplyMove - records a move by the current player. The square is not checked.
func (that *GameStore) ApplyMove(ctx context.Context, squareID int) error {
	if err := that.updateState(ctx, tictactoe.ApplyMove(that.players, squareID)); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	return nil
}

func (that *GameStore) ResetGame(ctx context.Context) error {
	if err := that.updateState(ctx, tictactoe.ResetGame(that.players)); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	return nil
}

func (that *GameStore) StartNewRound(ctx context.Context) error {
	if err := that.updateState(ctx, tictactoe.StartNewRound(that.players)); err != nil {
		return fmt.Errorf("failed to start new round: %w", err)
	}

	return nil
}

// Reload - writes the stored state back unchanged to notify listeners about
// changes made by another process sharing the key.
func (that *GameStore) Reload(ctx context.Context) error {
	that.mu.Lock()
	err := that.reload(ctx)
	that.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to reload state: %w", err)
	}

	that.notify()

	return nil
}

func (that *GameStore) reload(ctx context.Context) error {
	state, err := that.repo.Get(ctx, that.key)
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}

	return that.replaceState(ctx, state)
}

// updateState - reads the root, runs transition on a private copy, saves the result and notifies.
// Nothing is written when transition fails.
func (that *GameStore) updateState(ctx context.Context, transition tictactoe.Transition) error {
	if transition == nil {
		return fmt.Errorf("%w: transition is nil", apperror.ErrInvalidCall)
	}

	that.mu.Lock()
	err := that.transit(ctx, transition)
	that.mu.Unlock()

	if err != nil {
		return err
	}

	that.notify()

	return nil
}

func (that *GameStore) transit(ctx context.Context, transition tictactoe.Transition) error {
	state, err := that.repo.Get(ctx, that.key)
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}

	next, err := transition(state.Clone())
	if err != nil {
		return fmt.Errorf("transition failed: %w", err)
	}

	return that.replaceState(ctx, next)
}

// replaceState - saves state as the new root. The caller holds mu and notifies afterwards.
func (that *GameStore) replaceState(ctx context.Context, state entity.GameState) error {
	if err := that.repo.Save(ctx, that.key, state.Clone()); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	return nil
}

func (that *GameStore) notify() {
	that.listenersMu.Lock()
	listeners := make([]subscriber, len(that.listeners))
	copy(listeners, that.listeners)
	that.listenersMu.Unlock()

	that.logger.Debug("state changed", "event", EventStateChange, "listeners", len(listeners))

	for _, s := range listeners {
		s.listener()
	}
}
