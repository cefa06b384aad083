package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-service/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-service/internal/entity"
	"github.com/rocketscienceinc/tictactoe-service/internal/gaming"
)

// gameManager - the operations the HTTP layer drives.
type gameManager interface {
	CreateSession(ctx context.Context, ownerDisplayName string) (*gaming.GamingSession, error)
	JoinSession(ctx context.Context, invitationCode, displayName string) (*gaming.GamingSession, error)
	EndGamingSession(ctx context.Context, playerID, sessionID string) error
	SessionByID(ctx context.Context, sessionID string) (*gaming.GamingSession, error)
	GameInSession(ctx context.Context, sessionID string) (*gaming.GamingSession, *gaming.Game, error)

	CreateSinglePlayerGame(ctx context.Context, sessionID string, skillLevel entity.SkillLevel) (*gaming.Game, error)
	CreateTwoPlayerGame(ctx context.Context, sessionID string) (*gaming.Game, []*entity.PlayerInfo, error)
	JoinCurrentGame(ctx context.Context, sessionID, playerID string) (*gaming.Game, []*entity.PlayerInfo, error)
	NotePlayerReadiness(ctx context.Context, sessionID, playerID string) error
	TakeTurn(ctx context.Context, gameID string, params gaming.TurnParams) (*entity.TurnResult, error)
	GameByID(ctx context.Context, gameID string) (*gaming.Game, error)
	GameHistory(ctx context.Context, gameID string) ([]entity.GameState, error)
	EndGame(ctx context.Context, gameID, playerID, sessionID string) error
}

type handlers struct {
	logger  *slog.Logger
	manager gameManager
}

func newHandlers(logger *slog.Logger, manager gameManager) *handlers {
	return &handlers{
		logger:  logger.With("component", "rest_handlers"),
		manager: manager,
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) CreateGamingSession(w http.ResponseWriter, r *http.Request) {
	var params newGamingSessionParams
	if !that.decode(w, r, &params) {
		return
	}

	session, err := that.manager.CreateSession(r.Context(), params.SessionOwnerDisplayName)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGamingSessionResponse(session))
}

func (that *handlers) JoinGamingSession(w http.ResponseWriter, r *http.Request) {
	var params joinSessionParams
	if !that.decode(w, r, &params) {
		return
	}

	session, err := that.manager.JoinSession(r.Context(), params.GameInvitationCode, params.PlayerDisplayName)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGamingSessionResponse(session))
}

func (that *handlers) EndGamingSession(w http.ResponseWriter, r *http.Request) {
	var params endGamingSessionParams
	if !that.decode(w, r, &params) {
		return
	}

	if err := that.manager.EndGamingSession(r.Context(), params.PlayerID, r.PathValue("session_id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) GetCurrentGame(w http.ResponseWriter, r *http.Request) {
	session, game, err := that.manager.GameInSession(r.Context(), r.PathValue("session_id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameCreationResponse(session, game))
}

func (that *handlers) CreateTwoPlayerGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := r.PathValue("session_id")

	game, _, err := that.manager.CreateTwoPlayerGame(ctx, sessionID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	session, err := that.manager.SessionByID(ctx, sessionID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameCreationResponse(session, game))
}

func (that *handlers) CreateSinglePlayerGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := r.PathValue("session_id")

	var params newSinglePlayerGameParams
	if !that.decode(w, r, &params) {
		return
	}

	game, err := that.manager.CreateSinglePlayerGame(ctx, sessionID, params.ComputerSkillLevel)
	if err != nil {
		that.writeError(w, err)
		return
	}

	session, err := that.manager.SessionByID(ctx, sessionID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameCreationResponse(session, game))
}

func (that *handlers) JoinCurrentGame(w http.ResponseWriter, r *http.Request) {
	game, _, err := that.manager.JoinCurrentGame(r.Context(), r.PathValue("session_id"), r.PathValue("player_id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameInfoResponse(game))
}

func (that *handlers) NotePlayerReadiness(w http.ResponseWriter, r *http.Request) {
	if err := that.manager.NotePlayerReadiness(r.Context(), r.PathValue("session_id"), r.PathValue("player_id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) TakeTurn(w http.ResponseWriter, r *http.Request) {
	var params gaming.TurnParams
	if !that.decode(w, r, &params) {
		return
	}

	result, err := that.manager.TakeTurn(r.Context(), r.PathValue("game_id"), params)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *handlers) GetLatestTurnResult(w http.ResponseWriter, r *http.Request) {
	game, err := that.manager.GameByID(r.Context(), r.PathValue("game_id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	if game.LatestTurnResult == nil {
		that.writeError(w, apperror.ErrGameNotStarted)
		return
	}

	that.writeJSON(w, http.StatusOK, game.LatestTurnResult)
}

func (that *handlers) GetGameHistory(w http.ResponseWriter, r *http.Request) {
	history, err := that.manager.GameHistory(r.Context(), r.PathValue("game_id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, history)
}

func (that *handlers) EndGame(w http.ResponseWriter, r *http.Request) {
	var params endGameParams
	if !that.decode(w, r, &params) {
		return
	}

	if err := that.manager.EndGame(r.Context(), r.PathValue("game_id"), params.PlayerID, params.SessionID); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); encErr != nil {
		that.logger.Error("failed to encode error response", "error", encErr)
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound),
		errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrPlayerNotFound),
		errors.Is(err, apperror.ErrInvitationCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrSessionHasTooFewPlayers),
		errors.Is(err, apperror.ErrGameNotStarted),
		errors.Is(err, apperror.ErrInvalidBoardPosition),
		errors.Is(err, apperror.ErrPlayerPieceNotSelected):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrWrongPlayerTakingTurn):
		return http.StatusMethodNotAllowed
	case errors.Is(err, apperror.ErrGameHasAlreadyEnded):
		return http.StatusNotAcceptable
	case errors.Is(err, apperror.ErrBoardLocationAlreadyOccupied),
		errors.Is(err, apperror.ErrDisplayNameAlreadyInUse),
		errors.Is(err, apperror.ErrGameHasMaximumPlayers):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
