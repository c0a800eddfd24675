package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rounds/internal/apperror"
)

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Players - the two identities a store is configured with.
type Players struct {
	Player1 Player
	Player2 Player
}

func (that Players) Validate() error {
	if that.Player1.ID == "" || that.Player2.ID == "" {
		return fmt.Errorf("%w: player id is empty", apperror.ErrInvalidPlayers)
	}

	if that.Player1.ID == that.Player2.ID {
		return fmt.Errorf("%w: both players have id %q", apperror.ErrInvalidPlayers, that.Player1.ID)
	}

	return nil
}

// Opponent - returns the player who is not identified by id.
func (that Players) Opponent(id string) Player {
	if id == that.Player1.ID {
		return that.Player2
	}

	return that.Player1
}
