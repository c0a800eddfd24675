package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/usecase"
)

var (
	ErrSquareOccupied = errors.New("square is already occupied")
	ErrGameFinished   = errors.New("game is already finished")
	ErrInvalidSquare  = errors.New("invalid square")
	ErrUnknownCommand = errors.New("unknown command")
)

const helpText = `Commands:
  1-9     place a mark on that square
  reset   start a new game (finished games count toward the round)
  round   start a new round and clear the scoreboard
  reload  pick up changes made by another session
  stats   show the scoreboard
  help    show this help
  quit    leave
`

type gameStore interface {
	projections

	CurrentGame(ctx context.Context) (entity.CurrentGame, error)
	Stats(ctx context.Context) (entity.Stats, error)

	ApplyMove(ctx context.Context, squareID int) error
	ResetGame(ctx context.Context) error
	StartNewRound(ctx context.Context) error
	Reload(ctx context.Context) error

	Subscribe(listener usecase.Listener) usecase.Subscription
	Unsubscribe(sub usecase.Subscription)
}

// Session reads commands line by line and redraws after every state change.
type Session struct {
	logger *slog.Logger

	store    gameStore
	renderer *Renderer

	in  io.Reader
	out io.Writer
}

func NewSession(logger *slog.Logger, store gameStore, in io.Reader, out io.Writer) *Session {
	return &Session{
		logger:   logger.With("component", "terminal"),
		store:    store,
		renderer: NewRenderer(store),
		in:       in,
		out:      out,
	}
}

// Run - blocks until quit, end of input or ctx cancellation.
func (that *Session) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	sub := that.store.Subscribe(func() {
		if err := that.renderer.Render(ctx, that.out); err != nil {
			log.Error("failed to render", "error", err)
		}
	})
	defer that.store.Unsubscribe(sub)

	if err := that.renderer.Render(ctx, that.out); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		scanErr <- that.scan(ctx, lines)
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				return nil
			}

			quit, err := that.handle(ctx, strings.TrimSpace(line))
			if err != nil {
				log.Warn("command failed", "command", line, "error", err)
				fmt.Fprintf(that.out, "error: %v\n", err)
			}

			if quit {
				return nil
			}
		}
	}
}

func (that *Session) scan(ctx context.Context, lines chan<- string) error {
	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return nil
		}
	}

	return scanner.Err()
}

func (that *Session) handle(ctx context.Context, command string) (bool, error) {
	switch strings.ToLower(command) {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		_, err := io.WriteString(that.out, helpText)
		return false, err
	case "reset":
		return false, that.store.ResetGame(ctx)
	case "round":
		return false, that.store.StartNewRound(ctx)
	case "reload":
		return false, that.store.Reload(ctx)
	case "stats":
		return false, that.printStats(ctx)
	}

	squareID, err := strconv.Atoi(command)
	if err != nil {
		return false, fmt.Errorf("%w: %q, type help", ErrUnknownCommand, command)
	}

	return false, that.move(ctx, squareID)
}

// move - the store records any move, so the checks a player expects happen here.
func (that *Session) move(ctx context.Context, squareID int) error {
	if squareID < entity.FirstSquare || squareID > entity.LastSquare {
		return fmt.Errorf("%w: %d", ErrInvalidSquare, squareID)
	}

	game, err := that.store.CurrentGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current game: %w", err)
	}

	if game.Status.IsComplete {
		return ErrGameFinished
	}

	state, err := that.store.State(ctx)
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}

	if tictactoe.Board(state.CurrentGameMoves)[squareID-1] != "" {
		return fmt.Errorf("%w: %d", ErrSquareOccupied, squareID)
	}

	return that.store.ApplyMove(ctx, squareID)
}

func (that *Session) printStats(ctx context.Context) error {
	stats, err := that.store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	players := that.store.Players()

	_, err = fmt.Fprintf(that.out, "%s: %d\n%s: %d\nTies: %d\n",
		players.Player1.Name, stats.P1Wins, players.Player2.Name, stats.P2Wins, stats.Ties)

	return err
}
