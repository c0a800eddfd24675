package application

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/config"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver, path string) *config.Config {
	return &config.Config{
		StorageKey: "tictactoe",
		Storage:    config.Storage{Driver: driver, SQLitePath: path},
		Players: config.Players{
			Player1: config.Player{ID: "p1", Name: "Alice"},
			Player2: config.Player{ID: "p2", Name: "Bob"},
		},
	}
}

func TestRun(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Plays through the terminal on memory storage", func(t *testing.T) {
		// Given: a memory config and a short game on input
		var out bytes.Buffer

		// When: running the app until quit
		err := Run(context.Background(), logger, testConfig(config.DriverMemory, ""), strings.NewReader("5\nquit\n"), &out)

		// Then: the board was drawn with the move
		require.NoError(t, err)
		assert.Contains(t, out.String(), " 4 | X | 6 ")
		assert.Contains(t, out.String(), "Bob (O) to move")
	})

	t.Run("SQLite state survives a restart", func(t *testing.T) {
		// Given: a sqlite file written by a first run
		conf := testConfig(config.DriverSQLite, filepath.Join(t.TempDir(), "state.db"))
		require.NoError(t, Run(context.Background(), logger, conf, strings.NewReader("1\n5\n2\n9\n3\nreset\n"), io.Discard))

		// When: running again
		var out bytes.Buffer
		require.NoError(t, Run(context.Background(), logger, conf, strings.NewReader("stats\n"), &out))

		// Then: the archived win is still counted
		assert.Contains(t, out.String(), "Alice: 1\n")
	})

	t.Run("Fails on an unknown driver", func(t *testing.T) {
		err := Run(context.Background(), logger, testConfig("floppy", ""), strings.NewReader(""), io.Discard)

		require.ErrorIs(t, err, storage.ErrUnknownDriver)
	})
}
