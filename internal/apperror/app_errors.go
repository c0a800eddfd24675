package apperror

import "errors"

var (
	ErrInvariantViolation = errors.New("game state invariant violated")
	ErrInvalidCall        = errors.New("invalid call")
	ErrMalformedState     = errors.New("malformed persisted state")
	ErrInvalidPlayers     = errors.New("invalid players")
)
