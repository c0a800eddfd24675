package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wonByX() entity.GameRecord {
	winner := playerX

	return entity.GameRecord{
		Moves:  play(1, 5, 2, 9, 3),
		Status: entity.GameStatus{IsComplete: true, Winner: &winner},
	}
}

func tie() entity.GameRecord {
	return entity.GameRecord{
		Moves:  play(1, 2, 3, 5, 4, 6, 8, 7, 9),
		Status: entity.GameStatus{IsComplete: true},
	}
}

func TestApplyMove(t *testing.T) {
	t.Run("Appends a move by the current player", func(t *testing.T) {
		// Given: a state where X already played
		state := entity.NewGameState()
		state.CurrentGameMoves = play(5)

		// When: applying a move on square 1
		next, err := ApplyMove(players, 1)(state)
		require.NoError(t, err)

		// Then: O made the move and the input is untouched
		assert.Equal(t, play(5, 1), next.CurrentGameMoves)
		assert.Equal(t, play(5), state.CurrentGameMoves)
	})

	t.Run("Does not reject occupied squares", func(t *testing.T) {
		// Given: X on square 5
		state := entity.NewGameState()
		state.CurrentGameMoves = play(5)

		// When: O plays square 5 again
		next, err := ApplyMove(players, 5)(state)

		// Then: the move is recorded anyway
		require.NoError(t, err)
		assert.Len(t, next.CurrentGameMoves, 2)
	})

	t.Run("Fails on a corrupted move list", func(t *testing.T) {
		state := entity.NewGameState()
		state.CurrentGameMoves = []entity.Move{{SquareID: 1}}

		_, err := ApplyMove(players, 2)(state)

		require.ErrorIs(t, err, apperror.ErrInvariantViolation)
	})
}

func TestResetGame(t *testing.T) {
	t.Run("Archives a complete game", func(t *testing.T) {
		// Given: a finished game and one earlier record
		state := entity.NewGameState()
		state.History.CurrentRoundGames = []entity.GameRecord{tie()}
		state.CurrentGameMoves = play(1, 5, 2, 9, 3)

		// When: resetting
		next, err := ResetGame(players)(state)
		require.NoError(t, err)

		// Then: exactly one record is appended and the board is cleared
		assert.Equal(t, []entity.GameRecord{tie(), wonByX()}, next.History.CurrentRoundGames)
		assert.Empty(t, next.CurrentGameMoves)
		assert.NotNil(t, next.CurrentGameMoves)
	})

	t.Run("Drops an incomplete game", func(t *testing.T) {
		// Given: an unfinished game
		state := entity.NewGameState()
		state.CurrentGameMoves = play(1, 5)

		// When: resetting
		next, err := ResetGame(players)(state)
		require.NoError(t, err)

		// Then: nothing is archived and the board is cleared
		assert.Empty(t, next.History.CurrentRoundGames)
		assert.Empty(t, next.CurrentGameMoves)
	})

	t.Run("Archives a tie", func(t *testing.T) {
		state := entity.NewGameState()
		state.CurrentGameMoves = tie().Moves

		next, err := ResetGame(players)(state)
		require.NoError(t, err)

		assert.Equal(t, []entity.GameRecord{tie()}, next.History.CurrentRoundGames)
	})
}

func TestStartNewRound(t *testing.T) {
	t.Run("Moves the round into all games in order", func(t *testing.T) {
		// Given: one old game, a round of two, and a finished current game
		state := entity.NewGameState()
		state.History.AllGames = []entity.GameRecord{tie()}
		state.History.CurrentRoundGames = []entity.GameRecord{wonByX(), tie()}
		state.CurrentGameMoves = play(1, 5, 2, 9, 3)

		// When: starting a new round
		next, err := StartNewRound(players)(state)
		require.NoError(t, err)

		// Then: the round is appended after the old games, current game included
		assert.Equal(t, []entity.GameRecord{tie(), wonByX(), tie(), wonByX()}, next.History.AllGames)
		assert.Empty(t, next.History.CurrentRoundGames)
		assert.Empty(t, next.CurrentGameMoves)

		// And: the scoreboard is back to zero
		assert.Equal(t, entity.Stats{}, DetermineStats(next.History.CurrentRoundGames, players))

		// And: the input state is unchanged
		assert.Len(t, state.History.AllGames, 1)
		assert.Len(t, state.History.CurrentRoundGames, 2)
	})

	t.Run("Fails without changes on a corrupted move list", func(t *testing.T) {
		state := entity.NewGameState()
		state.CurrentGameMoves = []entity.Move{{SquareID: 1}}

		_, err := StartNewRound(players)(state)

		require.ErrorIs(t, err, apperror.ErrInvariantViolation)
	})
}
