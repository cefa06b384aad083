package apperror

import "errors"

var (
	// Not-found class.
	ErrSessionNotFound        = errors.New("gaming session not found")
	ErrGameNotFound           = errors.New("game not found")
	ErrPlayerNotFound         = errors.New("player not found")
	ErrInvitationCodeNotFound = errors.New("invitation code not found")

	// Precondition class.
	ErrGameNotStarted          = errors.New("game is not started")
	ErrGameHasAlreadyEnded     = errors.New("game has already ended")
	ErrGameHasMaximumPlayers   = errors.New("game already has the maximum number of players")
	ErrPlayerPieceNotSelected  = errors.New("player game piece has not been selected")
	ErrSessionHasTooFewPlayers = errors.New("gaming session has too few players")

	// Conflict class.
	ErrBoardLocationAlreadyOccupied = errors.New("board location is already occupied")
	ErrDisplayNameAlreadyInUse      = errors.New("display name is already in use in this game")

	// Validation class.
	ErrInvalidBoardPosition = errors.New("invalid board position")

	// Authorization class.
	ErrWrongPlayerTakingTurn = errors.New("it's not this player's turn")
)
