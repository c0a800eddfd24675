package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
)

// WinCombos - winning lines as square ids. Evaluation order matters: when two lines
// belong to different players the later one wins.
var WinCombos = [][3]int{
	{1, 2, 3},
	{4, 5, 6},
	{7, 8, 9},
	{1, 4, 7},
	{2, 5, 8},
	{3, 6, 9},
	{1, 5, 9},
	{3, 5, 7},
}

// DetermineCurrentGame - derives whose turn it is and whether the game is over.
func DetermineCurrentGame(moves []entity.Move, players entity.Players) (entity.CurrentGame, error) {
	currentPlayer := players.Player1

	if len(moves) > 0 {
		last := moves[len(moves)-1]
		if last.Player.ID == "" {
			return entity.CurrentGame{}, fmt.Errorf("%w: move %d has no player", apperror.ErrInvariantViolation, len(moves))
		}

		currentPlayer = players.Opponent(last.Player.ID)
	}

	winner := DetermineWinner(moves, players)

	return entity.CurrentGame{
		CurrentPlayer: currentPlayer,
		Status: entity.GameStatus{
			IsComplete: winner != nil || len(moves) >= entity.BoardSize,
			Winner:     winner,
		},
	}, nil
}

// DetermineWinner - returns the player owning a winning line, or nil.
func DetermineWinner(moves []entity.Move, players entity.Players) *entity.Player {
	squares1 := occupiedBy(moves, players.Player1.ID)
	squares2 := occupiedBy(moves, players.Player2.ID)

	var winner *entity.Player

	for _, combo := range WinCombos {
		if covers(squares1, combo) {
			player := players.Player1
			winner = &player
		}

		if covers(squares2, combo) {
			player := players.Player2
			winner = &player
		}
	}

	return winner
}

// DetermineStats - counts wins and ties over the given records.
func DetermineStats(records []entity.GameRecord, players entity.Players) entity.Stats {
	var stats entity.Stats

	for _, record := range records {
		switch record.Status.WinnerID() {
		case "":
			stats.Ties++
		case players.Player1.ID:
			stats.P1Wins++
		case players.Player2.ID:
			stats.P2Wins++
		}
	}

	return stats
}

// Board - lays the moves out as player ids by square, index 0 is square 1.
func Board(moves []entity.Move) [entity.BoardSize]string {
	var board [entity.BoardSize]string

	for _, move := range moves {
		if move.SquareID < entity.FirstSquare || move.SquareID > entity.LastSquare {
			continue
		}

		board[move.SquareID-1] = move.Player.ID
	}

	return board
}

func occupiedBy(moves []entity.Move, playerID string) map[int]struct{} {
	squares := make(map[int]struct{}, len(moves))

	for _, move := range moves {
		if move.Player.ID == playerID {
			squares[move.SquareID] = struct{}{}
		}
	}

	return squares
}

func covers(squares map[int]struct{}, combo [3]int) bool {
	for _, square := range combo {
		if _, ok := squares[square]; !ok {
			return false
		}
	}

	return true
}
