package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
)

type gameStore interface {
	CurrentGame(ctx context.Context) (entity.CurrentGame, error)
	Stats(ctx context.Context) (entity.Stats, error)
	State(ctx context.Context) (entity.GameState, error)
}

// StatusHandlers expose the store's projections as JSON. They never mutate state.
type StatusHandlers struct {
	logger *slog.Logger
	store  gameStore
}

func NewStatusHandlers(logger *slog.Logger, store gameStore) *StatusHandlers {
	return &StatusHandlers{
		logger: logger.With("component", "rest"),
		store:  store,
	}
}

// Ping - liveness probe. It does not touch storage.
func (that *StatusHandlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *StatusHandlers) CurrentGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.store.CurrentGame(r.Context())
	that.respond(w, "CurrentGame", game, err)
}

func (that *StatusHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.store.Stats(r.Context())
	that.respond(w, "Stats", stats, err)
}

func (that *StatusHandlers) State(w http.ResponseWriter, r *http.Request) {
	state, err := that.store.State(r.Context())
	that.respond(w, "State", state, err)
}

func (that *StatusHandlers) respond(w http.ResponseWriter, method string, body any, err error) {
	log := that.logger.With("method", method)

	if err != nil {
		log.Error("failed to read state", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err = json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
