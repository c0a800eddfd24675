package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/config"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/transport/terminal"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-rounds/transport/rest"
)

// RunApp - runs the application on the process's standard input and output.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			logger.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run - wires storage, the game store and the front-ends, and blocks until the
// terminal session ends, a server fails or ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gameStorage, err := storage.New(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not open storage: %w", err)
	}

	defer func() {
		if err = gameStorage.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	stateRepo := repository.NewStateRepository(gameStorage, entity.NewGameState())

	gameStore, err := usecase.NewGameStore(ctx, logger, stateRepo, conf.StorageKey, conf.Players.Entity())
	if err != nil {
		return fmt.Errorf("could not create game store: %w", err)
	}

	// run HTTP status server
	httpErrCh := make(chan error, 1)
	if conf.HTTPPort != "" {
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewStatusHandlers(logger, gameStore)); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
			}
		}()
	}

	// run terminal session
	sessionErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting terminal session", "driver", conf.Storage.Driver, "key", conf.StorageKey)
		sessionErrCh <- terminal.NewSession(logger, gameStore, in, out).Run(ctx)
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-sessionErrCh:
		if err != nil {
			return fmt.Errorf("terminal session error: %w", err)
		}

		log.Info("Terminal session finished")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
