package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var players = entity.Players{
	Player1: entity.Player{ID: "p1", Name: "Alice"},
	Player2: entity.Player{ID: "p2", Name: "Bob"},
}

func newServer(t *testing.T) (*usecase.GameStore, repository.StateRepository, *httptest.Server) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.NewStateRepository(storage.NewMemoryStorage(), entity.NewGameState())

	store, err := usecase.NewGameStore(context.Background(), logger, repo, "tictactoe", players)
	require.NoError(t, err)

	server := httptest.NewServer(NewMux(NewStatusHandlers(logger, store)))
	t.Cleanup(server.Close)

	return store, repo, server
}

func get(t *testing.T, url string, target any) int {
	t.Helper()

	resp, err := http.Get(url) //nolint: noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()

	if target != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	}

	return resp.StatusCode
}

func TestPing(t *testing.T) {
	_, _, server := newServer(t)

	resp, err := http.Get(server.URL + "/ping") //nolint: noctx // test
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestStatusHandlers(t *testing.T) {
	ctx := context.Background()

	t.Run("Game returns the current player and status", func(t *testing.T) {
		// Given: alice won the top row
		store, _, server := newServer(t)
		for _, square := range []int{1, 5, 2, 9, 3} {
			require.NoError(t, store.ApplyMove(ctx, square))
		}

		// When: requesting the current game
		var game entity.CurrentGame
		code := get(t, server.URL+"/game", &game)

		// Then: the winner is reported
		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, game.Status.Winner)
		assert.Equal(t, "p1", game.Status.Winner.ID)
		assert.True(t, game.Status.IsComplete)
	})

	t.Run("Stats returns the round scoreboard", func(t *testing.T) {
		store, _, server := newServer(t)
		for _, square := range []int{1, 5, 2, 9, 3} {
			require.NoError(t, store.ApplyMove(ctx, square))
		}
		require.NoError(t, store.ResetGame(ctx))

		var stats entity.Stats
		code := get(t, server.URL+"/stats", &stats)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, entity.Stats{P1Wins: 1}, stats)
	})

	t.Run("State returns the persisted root", func(t *testing.T) {
		store, _, server := newServer(t)
		require.NoError(t, store.ApplyMove(ctx, 5))

		var state entity.GameState
		code := get(t, server.URL+"/state", &state)

		require.Equal(t, http.StatusOK, code)
		expected, err := store.State(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, state)
	})

	t.Run("Corrupted state is a server error", func(t *testing.T) {
		// Given: a move without a player
		_, repo, server := newServer(t)
		tampered := entity.NewGameState()
		tampered.CurrentGameMoves = []entity.Move{{SquareID: 1}}
		require.NoError(t, repo.Save(ctx, "tictactoe", tampered))

		// When: requesting the current game
		code := get(t, server.URL+"/game", nil)

		// Then: 500 is returned
		assert.Equal(t, http.StatusInternalServerError, code)
	})

	t.Run("Only GET is routed", func(t *testing.T) {
		_, _, server := newServer(t)

		resp, err := http.Post(server.URL+"/stats", "application/json", nil) //nolint: noctx // test
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
