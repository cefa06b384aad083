package entity

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-service/internal/apperror"
)

// GameState - the board as it stood after a particular move. States are
// immutable once created; every move produces a new GameState that is
// appended to the Game's play history.
type GameState struct {
	CreatedAt             time.Time  `json:"created_at"`
	IDOfPlayerWhoMadeMove string     `json:"id_of_player_who_made_move"`
	GameBoard             GameBoard  `json:"game_board"`
	PlayStatus            PlayStatus `json:"play_status"`
}

// NewGameState - an empty, not-yet-started board.
func NewGameState() GameState {
	return GameState{
		CreatedAt:  time.Now().UTC(),
		PlayStatus: StatusNotStarted,
	}
}

// NewGameStateWithPlayStatus - an empty board with an explicit initial status,
// used once both players have joined but before the first move.
func NewGameStateWithPlayStatus(currentPlayerID string, status PlayStatus) GameState {
	return GameState{
		CreatedAt:             time.Now().UTC(),
		IDOfPlayerWhoMadeMove: currentPlayerID,
		PlayStatus:            status,
	}
}

// HasEnded - reports whether this state is terminal.
func (that GameState) HasEnded() bool {
	return that.PlayStatus.HasEnded()
}

// TurnResult - everything a caller needs to know after a move: the player who
// moves next, the new state, and the win details when the move ended the Game.
type TurnResult struct {
	CurrentPlayer    *PlayerInfo     `json:"current_player,omitempty"`
	NewGameState     GameState       `json:"new_game_state"`
	WinningLocations []BoardPosition `json:"winning_locations,omitempty"`
	WinningPlayer    *PlayerInfo     `json:"winning_player,omitempty"`
}

// PlacePiece - places the current player's piece at the given position and
// returns the resulting turn outcome as a brand-new state. The receiver is
// never mutated.
func (that GameState) PlacePiece(position BoardPosition, currentPlayer, otherPlayer *PlayerInfo) (*TurnResult, error) {
	if currentPlayer.GamePiece == PieceUnselected || otherPlayer.GamePiece == PieceUnselected {
		return nil, apperror.ErrPlayerPieceNotSelected
	}

	if !position.IsValid() {
		return nil, apperror.ErrInvalidBoardPosition
	}

	if currentPlayer.PlayerID == otherPlayer.PlayerID {
		return nil, apperror.ErrWrongPlayerTakingTurn
	}

	if that.HasEnded() {
		return nil, apperror.ErrGameHasAlreadyEnded
	}

	board := that.GameBoard
	if board[position.Row][position.Column] != PieceUnselected {
		return nil, apperror.ErrBoardLocationAlreadyOccupied
	}

	board[position.Row][position.Column] = currentPlayer.GamePiece

	outcome := EvaluateBoard(board, currentPlayer, currentPlayer.GamePiece, otherPlayer.GamePiece)

	return &TurnResult{
		CurrentPlayer: otherPlayer,
		NewGameState: GameState{
			CreatedAt:             time.Now().UTC(),
			IDOfPlayerWhoMadeMove: currentPlayer.PlayerID,
			GameBoard:             board,
			PlayStatus:            outcome.PlayStatus,
		},
		WinningLocations: outcome.WinningPositions,
		WinningPlayer:    outcome.WinningPlayer,
	}, nil
}
