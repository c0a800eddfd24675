package terminal

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/tictactoe"
)

const (
	markPlayer1 = "X"
	markPlayer2 = "O"
)

type projections interface {
	Players() entity.Players
	State(ctx context.Context) (entity.GameState, error)
}

// Renderer draws the board, the turn or result and the round scoreboard.
type Renderer struct {
	store projections
}

func NewRenderer(store projections) *Renderer {
	return &Renderer{store: store}
}

// Render - draws one frame from a single read of the state.
func (that *Renderer) Render(ctx context.Context, w io.Writer) error {
	state, err := that.store.State(ctx)
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}

	players := that.store.Players()

	game, err := tictactoe.DetermineCurrentGame(state.CurrentGameMoves, players)
	if err != nil {
		return fmt.Errorf("failed to determine current game: %w", err)
	}

	stats := tictactoe.DetermineStats(state.History.CurrentRoundGames, players)

	var b strings.Builder

	b.WriteString(drawBoard(tictactoe.Board(state.CurrentGameMoves), players))
	b.WriteString(describe(game, players))
	fmt.Fprintf(&b, "Round: %s %d - %s %d - ties %d\n",
		players.Player1.Name, stats.P1Wins, players.Player2.Name, stats.P2Wins, stats.Ties)

	if _, err = io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

func drawBoard(board [entity.BoardSize]string, players entity.Players) string {
	var b strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			b.WriteString("---+---+---\n")
		}

		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			i := row*3 + col
			cells = append(cells, " "+cellMark(board[i], i+1, players)+" ")
		}

		b.WriteString(strings.Join(cells, "|"))
		b.WriteString("\n")
	}

	return b.String()
}

func cellMark(playerID string, squareID int, players entity.Players) string {
	switch playerID {
	case "":
		return strconv.Itoa(squareID)
	case players.Player1.ID:
		return markPlayer1
	case players.Player2.ID:
		return markPlayer2
	default:
		return "?"
	}
}

func describe(game entity.CurrentGame, players entity.Players) string {
	switch {
	case game.Status.Winner != nil:
		return fmt.Sprintf("%s wins! Type reset for a new game.\n", game.Status.Winner.Name)
	case game.Status.IsComplete:
		return "It's a tie! Type reset for a new game.\n"
	default:
		return fmt.Sprintf("%s (%s) to move\n", game.CurrentPlayer.Name, mark(game.CurrentPlayer, players))
	}
}

func mark(player entity.Player, players entity.Players) string {
	if player.ID == players.Player2.ID {
		return markPlayer2
	}

	return markPlayer1
}
