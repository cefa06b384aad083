package gaming

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-service/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-service/internal/entity"
)

// Game pieces are assigned with a shared source when a Game is rehydrated
// from a store and has no source of its own.
var (
	defaultRngMu sync.Mutex
	defaultRng   = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // piece assignment, not security
)

// TurnParams - the parameters of a single move.
type TurnParams struct {
	Destination entity.BoardPosition `json:"destination"`
	PlayerID    string               `json:"player_id"`
	SessionID   string               `json:"session_id"`
}

// Game - a single Tic-Tac-Toe match. It is created with one player, begins
// once the second player is added, and ends in a win or a stalemate. The play
// history is append-only; its last entry is the authoritative board.
type Game struct {
	ID               string               `json:"id"`
	SessionID        string               `json:"session_id"`
	GameMode         entity.GameMode      `json:"game_mode"`
	Players          []*entity.PlayerInfo `json:"players"`
	CurrentPlayer    *entity.PlayerInfo   `json:"current_player,omitempty"`
	PlayHistory      []entity.GameState   `json:"play_history"`
	LatestTurnResult *entity.TurnResult   `json:"latest_turn_result,omitempty"`

	rng *rand.Rand
}

// NewGame - constructs a Game with one or two players. Supplying the second
// player immediately triggers the begin transition.
func NewGame(mode entity.GameMode, initiatingPlayer, otherPlayer *entity.PlayerInfo, sessionID string, rng *rand.Rand) (*Game, error) {
	game := &Game{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		GameMode:  mode,
		rng:       rng,
	}

	if err := game.AddPlayer(initiatingPlayer); err != nil {
		return nil, fmt.Errorf("failed to add initiating player: %w", err)
	}

	if otherPlayer != nil {
		if err := game.AddPlayer(otherPlayer); err != nil {
			return nil, fmt.Errorf("failed to add other player: %w", err)
		}
	}

	return game, nil
}

// AddPlayer - adds the second player and begins the Game when that completes
// the roster. Display names must be unique within the Game.
func (that *Game) AddPlayer(player *entity.PlayerInfo) error {
	if len(that.Players) >= 2 {
		return apperror.ErrGameHasMaximumPlayers
	}

	for _, existing := range that.Players {
		if strings.EqualFold(existing.DisplayName, player.DisplayName) {
			return apperror.ErrDisplayNameAlreadyInUse
		}
	}

	// The Game keeps its own copy so that piece assignment never reaches
	// through to a caller-held PlayerInfo.
	joined := *player
	that.Players = append(that.Players, &joined)

	if len(that.Players) == 2 {
		that.begin()
	}

	return nil
}

// begin - assigns the game pieces at random and fixes the turn order.
// Whichever player receives X moves first.
func (that *Game) begin() {
	playerOne := that.Players[0]
	playerTwo := that.Players[1]

	playerOne.GamePiece = that.randomPiece()
	playerTwo.GamePiece = playerOne.GamePiece.Opposite()

	starting := playerOne
	if playerTwo.GamePiece == entity.PieceX {
		starting = playerTwo
	}
	that.CurrentPlayer = starting

	that.LatestTurnResult = &entity.TurnResult{
		CurrentPlayer: starting,
		NewGameState:  that.CurrentGameState(),
	}
}

// TakeTurn - validates and applies a move for the specified player. The new
// state is appended to the history and the turn passes to the other player
// even when the move ended the Game; callers must check the play status.
func (that *Game) TakeTurn(params TurnParams) (*entity.TurnResult, error) {
	state := that.CurrentGameState()

	if state.HasEnded() {
		return nil, apperror.ErrGameHasAlreadyEnded
	}

	if that.CurrentPlayer == nil {
		return nil, apperror.ErrGameNotStarted
	}

	if !params.Destination.IsValid() {
		return nil, apperror.ErrInvalidBoardPosition
	}

	if state.GameBoard[params.Destination.Row][params.Destination.Column] != entity.PieceUnselected {
		return nil, apperror.ErrBoardLocationAlreadyOccupied
	}

	player, err := that.PlayerByID(params.PlayerID)
	if err != nil {
		return nil, err
	}

	if player.PlayerID != that.CurrentPlayer.PlayerID {
		return nil, apperror.ErrWrongPlayerTakingTurn
	}

	otherPlayer := entity.OtherPlayer(params.PlayerID, that.Players)
	if otherPlayer == nil {
		return nil, apperror.ErrPlayerNotFound
	}

	result, err := state.PlacePiece(params.Destination, player, otherPlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to place game piece: %w", err)
	}

	that.PlayHistory = append(that.PlayHistory, result.NewGameState)
	that.LatestTurnResult = result
	that.CurrentPlayer = otherPlayer

	return result, nil
}

// CurrentGameState - the last history entry, or a synthesized placeholder for
// a Game without any moves yet.
func (that *Game) CurrentGameState() entity.GameState {
	if len(that.PlayHistory) > 0 {
		return that.PlayHistory[len(that.PlayHistory)-1]
	}

	// A brand-new Game. With both players present the Game has begun.
	if len(that.Players) > 1 {
		return entity.NewGameStateWithPlayStatus(that.Players[0].PlayerID, entity.StatusInProgress)
	}

	return entity.NewGameState()
}

// clone - a deep copy of the Game. The copy carries no rand source; it is a
// read-only snapshot, not a playable game.
func (that *Game) clone() *Game {
	if that == nil {
		return nil
	}

	cloned := *that
	cloned.rng = nil
	cloned.Players = clonePlayers(that.Players)
	cloned.CurrentPlayer = clonePlayer(that.CurrentPlayer)
	cloned.PlayHistory = append([]entity.GameState(nil), that.PlayHistory...)
	cloned.LatestTurnResult = cloneTurnResult(that.LatestTurnResult)

	return &cloned
}

func cloneTurnResult(result *entity.TurnResult) *entity.TurnResult {
	if result == nil {
		return nil
	}

	cloned := *result
	cloned.CurrentPlayer = clonePlayer(result.CurrentPlayer)
	cloned.WinningPlayer = clonePlayer(result.WinningPlayer)
	cloned.WinningLocations = append([]entity.BoardPosition(nil), result.WinningLocations...)

	return &cloned
}

// PlayerByID - returns the specified player.
func (that *Game) PlayerByID(playerID string) (*entity.PlayerInfo, error) {
	for _, player := range that.Players {
		if player.PlayerID == playerID {
			return player, nil
		}
	}
	return nil, apperror.ErrPlayerNotFound
}

func (that *Game) PlayerCount() int {
	return len(that.Players)
}

// TimeOfLatestMove - when the most recent move was made. Used for idle-expiry.
func (that *Game) TimeOfLatestMove() (time.Time, bool) {
	if len(that.PlayHistory) == 0 {
		return time.Time{}, false
	}
	return that.PlayHistory[len(that.PlayHistory)-1].CreatedAt, true
}

func (that *Game) randomPiece() entity.GamePiece {
	if that.rng != nil {
		return entity.RandomGamePiece(that.rng)
	}
	defaultRngMu.Lock()
	defer defaultRngMu.Unlock()
	return entity.RandomGamePiece(defaultRng)
}
