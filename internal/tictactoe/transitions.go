package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
)

// Transition - computes the next state. It receives a state it owns and returns a new one.
type Transition func(state entity.GameState) (entity.GameState, error)

// ApplyMove - appends a move by the current player. Occupied squares and finished games
// are not rejected here.
func ApplyMove(players entity.Players, squareID int) Transition {
	return func(state entity.GameState) (entity.GameState, error) {
		game, err := DetermineCurrentGame(state.CurrentGameMoves, players)
		if err != nil {
			return entity.GameState{}, fmt.Errorf("failed to determine current game: %w", err)
		}

		next := state.Clone()
		next.CurrentGameMoves = append(next.CurrentGameMoves, entity.Move{
			Player:   game.CurrentPlayer,
			SquareID: squareID,
		})

		return next, nil
	}
}

// ResetGame - archives a complete game into the current round and clears the board.
// An incomplete game is dropped.
func ResetGame(players entity.Players) Transition {
	return func(state entity.GameState) (entity.GameState, error) {
		game, err := DetermineCurrentGame(state.CurrentGameMoves, players)
		if err != nil {
			return entity.GameState{}, fmt.Errorf("failed to determine current game: %w", err)
		}

		next := state.Clone()

		if game.Status.IsComplete {
			next.History.CurrentRoundGames = append(next.History.CurrentRoundGames, entity.GameRecord{
				Moves:  next.CurrentGameMoves,
				Status: game.Status,
			})
		}

		next.CurrentGameMoves = []entity.Move{}

		return next, nil
	}
}

// StartNewRound - resets the game, then moves the round's records to the end of all games.
func StartNewRound(players entity.Players) Transition {
	reset := ResetGame(players)

	return func(state entity.GameState) (entity.GameState, error) {
		next, err := reset(state)
		if err != nil {
			return entity.GameState{}, err
		}

		next.History.AllGames = append(next.History.AllGames, next.History.CurrentRoundGames...)
		next.History.CurrentRoundGames = []entity.GameRecord{}

		return next, nil
	}
}
