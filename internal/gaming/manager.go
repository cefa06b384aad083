package gaming

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-service/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-service/internal/entity"
)

// ErrInvitationCodesExhausted - all invitation code generation attempts
// collided with live sessions. Practically unreachable with 6-digit codes.
var ErrInvitationCodesExhausted = errors.New("could not generate a unique invitation code")

const invitationCodeAttempts = 1000

const (
	defaultCleanupInterval = 30 * time.Minute
	defaultGameTTL         = time.Hour
)

// sessionStore - registry of live Gaming Sessions. Implementations return
// apperror.ErrSessionNotFound for misses.
type sessionStore interface {
	Upsert(ctx context.Context, session *GamingSession) error
	ByID(ctx context.Context, sessionID string) (*GamingSession, error)
	ByInvitationCode(ctx context.Context, invitationCode string) (*GamingSession, error)
	ByGameID(ctx context.Context, gameID string) (*GamingSession, error)
	DeleteByID(ctx context.Context, sessionID string) error
	All(ctx context.Context) ([]*GamingSession, error)
}

// ManagerConfig - tunables for the sessions manager.
type ManagerConfig struct {
	// EventDomain, BrokerAddress and BrokerPort describe the event plane that
	// clients subscribe to; they are handed out in every session's config.
	EventDomain   string
	BrokerAddress string
	BrokerPort    int

	// GameTTL - a game whose latest move is older than this is abandoned.
	GameTTL time.Duration
	// CleanupInterval - how often the background sweep runs.
	CleanupInterval time.Duration

	// Deliberation delay bounds for the automatic player.
	BotDeliberationMin time.Duration
	BotDeliberationMax time.Duration
}

// GamingSessionsManager - the concurrency-safe registry of Gaming Sessions.
// It owns session and game creation, turn dispatch, joining, teardown and the
// background expiry sweep. All mutating operations serialize on one lock held
// across the read-modify-write of the relevant session, never across observer
// notification.
type GamingSessionsManager struct {
	logger *slog.Logger
	conf   ManagerConfig
	store  sessionStore

	// mu guards the registry read-modify-write cycles and rng.
	mu  sync.Mutex
	rng *rand.Rand

	obsMu     sync.RWMutex
	observers []SessionObserver
}

// NewGamingSessionsManager - creates a manager over the given store. The rand
// source drives invitation codes and piece assignment; tests seed it.
func NewGamingSessionsManager(logger *slog.Logger, store sessionStore, conf ManagerConfig, rng *rand.Rand) *GamingSessionsManager {
	if conf.CleanupInterval <= 0 {
		conf.CleanupInterval = defaultCleanupInterval
	}
	if conf.GameTTL <= 0 {
		conf.GameTTL = defaultGameTTL
	}

	return &GamingSessionsManager{
		logger: logger.With("component", "gaming_sessions_manager"),
		conf:   conf,
		store:  store,
		rng:    rng,
	}
}

// CreateSession - allocates a new Gaming Session with a unique invitation
// code for the named owner.
func (that *GamingSessionsManager) CreateSession(ctx context.Context, ownerDisplayName string) (*GamingSession, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	code, err := that.uniqueInvitationCode(ctx)
	if err != nil {
		return nil, err
	}

	owner := entity.NewPlayerInfo(ownerDisplayName, false)
	session := NewGamingSession(owner, code, that.conf.EventDomain, that.conf.BrokerAddress, that.conf.BrokerPort)

	if err = that.store.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	that.logger.Info("gaming session created", "sessionID", session.SessionID)

	return session, nil
}

// JoinSession - adds a player to the session behind the invitation code.
// Joining again with the same display name is idempotent.
func (that *GamingSessionsManager) JoinSession(ctx context.Context, invitationCode, displayName string) (*GamingSession, error) {
	that.mu.Lock()

	session, err := that.store.ByInvitationCode(ctx, invitationCode)
	if err != nil {
		that.mu.Unlock()
		if errors.Is(err, apperror.ErrSessionNotFound) {
			return nil, apperror.ErrInvitationCodeNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if _, ok := session.ParticipantByDisplayName(displayName); ok {
		that.mu.Unlock()
		return session, nil
	}

	player := entity.NewPlayerInfo(displayName, false)
	session.AddParticipant(player)

	if err = that.store.Upsert(ctx, session); err != nil {
		that.mu.Unlock()
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	snapshot := session.clone()
	that.mu.Unlock()

	that.notifySessionChange(StateChangePlayerAddedToSession, snapshot)

	return session, nil
}

// CreateSinglePlayerGame - builds a Game for the session owner against the
// automatic player. The bot is registered as an observer and then driven
// through the same join path a human would use, so no turn-flow logic is
// special-cased for it.
func (that *GamingSessionsManager) CreateSinglePlayerGame(ctx context.Context, sessionID string, skillLevel entity.SkillLevel) (*Game, error) {
	that.mu.Lock()

	session, err := that.loadSession(ctx, sessionID)
	if err != nil {
		that.mu.Unlock()
		return nil, err
	}

	if len(session.Participants) == 0 {
		that.mu.Unlock()
		return nil, apperror.ErrSessionHasTooFewPlayers
	}
	humanPlayer := session.Participants[0]

	botPlayer := entity.NewPlayerInfo(AutomaticPlayerName, true)

	game, err := NewGame(entity.ModeSinglePlayer, humanPlayer, nil, session.SessionID, that.rng)
	if err != nil {
		that.mu.Unlock()
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	botRng := rand.New(rand.NewSource(that.rng.Int63())) //nolint: gosec // game moves, not security
	autoPlayer := NewAutomaticPlayer(that.logger, game.ID, botPlayer, skillLevel,
		that, botRng, that.conf.BotDeliberationMin, that.conf.BotDeliberationMax)

	session.AddParticipant(botPlayer)
	session.SetGame(game)

	if err = that.store.Upsert(ctx, session); err != nil {
		that.mu.Unlock()
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	that.mu.Unlock()

	// Register the bot before it joins so it sees the game-start notification.
	that.AddObserver(autoPlayer)

	gameID := game.ID
	game, _, err = that.JoinCurrentGame(ctx, sessionID, botPlayer.PlayerID)
	if err != nil {
		that.RemoveObserver(gameID)
		return nil, fmt.Errorf("automatic player failed to join game: %w", err)
	}

	return game, nil
}

// CreateTwoPlayerGame - builds a Game in the session with the session owner
// as its first player. The game begins once the second participant calls
// JoinCurrentGame.
func (that *GamingSessionsManager) CreateTwoPlayerGame(ctx context.Context, sessionID string) (*Game, []*entity.PlayerInfo, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	game, err := NewGame(entity.ModeTwoPlayers, session.SessionOwner, nil, session.SessionID, that.rng)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create game: %w", err)
	}

	session.SetGame(game)

	if err = that.store.Upsert(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to store session: %w", err)
	}

	return game, session.Participants, nil
}

// JoinCurrentGame - adds the named session participant to the session's
// current Game. Completing the roster begins the Game: the session's
// participant list is reconciled with the game's players so that piece
// assignment is visible to all, and a game-started notification fires once
// the lock has been dropped.
func (that *GamingSessionsManager) JoinCurrentGame(ctx context.Context, sessionID, playerID string) (*Game, []*entity.PlayerInfo, error) {
	that.mu.Lock()

	session, err := that.loadSession(ctx, sessionID)
	if err != nil {
		that.mu.Unlock()
		return nil, nil, err
	}

	participant, ok := session.ParticipantByID(playerID)
	if !ok {
		that.mu.Unlock()
		return nil, nil, apperror.ErrPlayerNotFound
	}

	game := session.CurrentGame
	if game == nil {
		that.mu.Unlock()
		return nil, nil, apperror.ErrGameNotFound
	}

	if _, err = game.PlayerByID(playerID); err == nil {
		// Already in the game; joining twice is not an error.
		that.mu.Unlock()
		return game, session.Participants, nil
	}

	if err = game.AddPlayer(participant); err != nil {
		that.mu.Unlock()
		return nil, nil, err
	}

	rosterComplete := game.PlayerCount() == 2
	if rosterComplete {
		that.reconcileParticipants(session, game)
	}

	if err = that.store.Upsert(ctx, session); err != nil {
		that.mu.Unlock()
		return nil, nil, fmt.Errorf("failed to store session: %w", err)
	}

	var snapshot *GamingSession
	if rosterComplete {
		snapshot = session.clone()
	}
	that.mu.Unlock()

	if rosterComplete {
		that.notifyGameChange(StateChangeGameStarted, snapshot, snapshot.CurrentGame)
	}

	return game, session.Participants, nil
}

// TakeTurn - makes a move in the identified Game on behalf of a player and
// notifies observers of the new state.
func (that *GamingSessionsManager) TakeTurn(ctx context.Context, gameID string, params TurnParams) (*entity.TurnResult, error) {
	that.mu.Lock()

	session, err := that.loadSession(ctx, params.SessionID)
	if err != nil {
		that.mu.Unlock()
		return nil, err
	}

	game := session.CurrentGame
	if game == nil || game.ID != gameID {
		that.mu.Unlock()
		return nil, apperror.ErrGameNotFound
	}

	result, err := game.TakeTurn(params)
	if err != nil {
		that.mu.Unlock()
		return nil, err
	}

	if err = that.store.Upsert(ctx, session); err != nil {
		that.mu.Unlock()
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	snapshot := session.clone()
	that.mu.Unlock()

	that.notifyGameChange(StateChangeGameTurnTaken, snapshot, snapshot.CurrentGame)

	return result, nil
}

// NotePlayerReadiness - signals that a session participant is ready to play.
// Part of the handshake during new game setup.
func (that *GamingSessionsManager) NotePlayerReadiness(ctx context.Context, sessionID, playerID string) error {
	that.mu.Lock()

	session, err := that.loadSession(ctx, sessionID)
	if err != nil {
		that.mu.Unlock()
		return err
	}

	if !session.HasParticipant(playerID) {
		that.mu.Unlock()
		return apperror.ErrPlayerNotFound
	}

	snapshot := session.clone()
	that.mu.Unlock()

	that.notifySessionChange(StateChangePlayerReady, snapshot)

	return nil
}

// EndGame - closes down the specified Game. Only session participants may end
// it. For single-player games the automatic player is detached so a future
// bot does not receive stale notifications.
func (that *GamingSessionsManager) EndGame(ctx context.Context, gameID, playerID, sessionID string) error {
	that.mu.Lock()

	session, err := that.loadSession(ctx, sessionID)
	if err != nil {
		that.mu.Unlock()
		return err
	}

	if !session.HasParticipant(playerID) {
		that.mu.Unlock()
		return apperror.ErrPlayerNotFound
	}

	game := session.CurrentGame
	if game == nil || game.ID != gameID {
		that.mu.Unlock()
		return apperror.ErrGameNotFound
	}

	singlePlayer := game.GameMode == entity.ModeSinglePlayer

	session.ClearGame()

	if err = that.store.Upsert(ctx, session); err != nil {
		that.mu.Unlock()
		return fmt.Errorf("failed to store session: %w", err)
	}

	snapshot := session.clone()
	that.mu.Unlock()

	if singlePlayer {
		that.RemoveObserver(gameID)
	}

	that.notifySessionChange(StateChangeGameDeleted, snapshot)

	return nil
}

// EndGamingSession - removes the session from the registry, cascading to its
// active Game if any. Only session participants may end it.
func (that *GamingSessionsManager) EndGamingSession(ctx context.Context, playerID, sessionID string) error {
	that.mu.Lock()

	session, err := that.loadSession(ctx, sessionID)
	if err != nil {
		that.mu.Unlock()
		return err
	}

	if !session.HasParticipant(playerID) {
		that.mu.Unlock()
		return apperror.ErrPlayerNotFound
	}

	var endedGameID string
	var gameDeleted, singlePlayer bool

	if game := session.CurrentGame; game != nil {
		endedGameID = game.ID
		singlePlayer = game.GameMode == entity.ModeSinglePlayer
		gameDeleted = true
		session.ClearGame()
	}

	if err = that.store.DeleteByID(ctx, session.SessionID); err != nil {
		that.mu.Unlock()
		return fmt.Errorf("failed to delete session: %w", err)
	}

	snapshot := session.clone()
	that.mu.Unlock()

	if singlePlayer {
		that.RemoveObserver(endedGameID)
	}
	if gameDeleted {
		that.notifySessionChange(StateChangeGameDeleted, snapshot)
	}

	that.notifySessionChange(StateChangeSessionDeleted, snapshot)

	that.logger.Info("gaming session ended", "sessionID", sessionID)

	return nil
}

// SessionByID - read-only session lookup.
func (that *GamingSessionsManager) SessionByID(ctx context.Context, sessionID string) (*GamingSession, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.loadSession(ctx, sessionID)
}

// GameByID - read-only game lookup across all sessions.
func (that *GamingSessionsManager) GameByID(ctx context.Context, gameID string) (*Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.store.ByGameID(ctx, gameID)
	if err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			return nil, apperror.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return session.CurrentGame, nil
}

// GameInSession - the Game being played in the specified session.
func (that *GamingSessionsManager) GameInSession(ctx context.Context, sessionID string) (*GamingSession, *Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.CurrentGame == nil {
		return nil, nil, apperror.ErrGameNotFound
	}

	return session, session.CurrentGame, nil
}

// GameHistory - the chronological list of game states from creation through
// the latest move.
func (that *GamingSessionsManager) GameHistory(ctx context.Context, gameID string) ([]entity.GameState, error) {
	game, err := that.GameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return game.PlayHistory, nil
}

// AddObserver - registers an observer for session state changes.
func (that *GamingSessionsManager) AddObserver(observer SessionObserver) {
	that.obsMu.Lock()
	defer that.obsMu.Unlock()
	that.observers = append(that.observers, observer)
}

// RemoveObserver - detaches the observer with the given unique ID, if present.
func (that *GamingSessionsManager) RemoveObserver(uniqueID string) {
	that.obsMu.Lock()
	defer that.obsMu.Unlock()

	for i, observer := range that.observers {
		if observer.UniqueID() == uniqueID {
			that.observers = append(that.observers[:i], that.observers[i+1:]...)
			return
		}
	}
}

// loadSession - fetches a session by ID, passing the not-found sentinel
// through unchanged and wrapping every other store failure so that transient
// I/O problems never masquerade as a missing session. Callers hold the
// registry lock.
func (that *GamingSessionsManager) loadSession(ctx context.Context, sessionID string) (*GamingSession, error) {
	session, err := that.store.ByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			return nil, apperror.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return session, nil
}

// reconcileParticipants - replaces session participant entries with the
// game's own player copies so that assigned pieces are visible on the
// session roster too. Callers must hold the registry lock.
func (that *GamingSessionsManager) reconcileParticipants(session *GamingSession, game *Game) {
	for i, participant := range session.Participants {
		if player, err := game.PlayerByID(participant.PlayerID); err == nil {
			session.Participants[i] = player
			if session.SessionOwner.PlayerID == player.PlayerID {
				session.SessionOwner = player
			}
		}
	}
}

func (that *GamingSessionsManager) notifySessionChange(change StateChange, session *GamingSession) {
	that.notify(change, session, nil)
}

func (that *GamingSessionsManager) notifyGameChange(change StateChange, session *GamingSession, game *Game) {
	that.notify(change, session, game)
}

// notify - fans a state change out to a snapshot of the observer list. Must
// never be called with the registry lock held: observers may call back in.
// Callers hand in session/game clones taken under the lock, never the live
// objects, so observers can read them while the registry moves on.
func (that *GamingSessionsManager) notify(change StateChange, session *GamingSession, game *Game) {
	that.obsMu.RLock()
	snapshot := make([]SessionObserver, len(that.observers))
	copy(snapshot, that.observers)
	that.obsMu.RUnlock()

	that.logger.Debug("notifying observers of state change", "change", change, "sessionID", session.SessionID)

	for _, observer := range snapshot {
		observer.SessionUpdated(change, session, game)
	}
}

// uniqueInvitationCode - generates a code not held by any live session.
// Callers must hold the registry lock.
func (that *GamingSessionsManager) uniqueInvitationCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < invitationCodeAttempts; attempt++ {
		code := NewInvitationCode(that.rng)

		_, err := that.store.ByInvitationCode(ctx, code)
		if errors.Is(err, apperror.ErrSessionNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check invitation code: %w", err)
		}
	}

	return "", ErrInvitationCodesExhausted
}

// StartCleanupSweep - launches the background task that clears abandoned and
// finished games. Best-effort garbage collection; sessions themselves are
// kept. Stops when the context is canceled.
func (that *GamingSessionsManager) StartCleanupSweep(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(that.conf.CleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				that.sweepAbandonedGames(ctx)
			}
		}
	}()
}

// sweepAbandonedGames - clears every session game that is either in a
// terminal state or idle beyond the TTL. Takes the same lock discipline as
// the mutating operations.
func (that *GamingSessionsManager) sweepAbandonedGames(ctx context.Context) {
	that.mu.Lock()

	sessions, err := that.store.All(ctx)
	if err != nil {
		that.mu.Unlock()
		that.logger.Error("cleanup sweep failed to list sessions", "error", err)
		return
	}

	cutoff := time.Now().Add(-that.conf.GameTTL)

	var clearedGameIDs []string

	for _, session := range sessions {
		game := session.CurrentGame
		if game == nil {
			continue
		}

		ended := game.CurrentGameState().HasEnded()
		latestMove, moved := game.TimeOfLatestMove()
		abandoned := moved && latestMove.Before(cutoff)

		if !ended && !abandoned {
			continue
		}

		session.ClearGame()
		if err = that.store.Upsert(ctx, session); err != nil {
			that.logger.Error("cleanup sweep failed to update session", "sessionID", session.SessionID, "error", err)
			continue
		}

		clearedGameIDs = append(clearedGameIDs, game.ID)
	}

	that.mu.Unlock()

	for _, gameID := range clearedGameIDs {
		that.RemoveObserver(gameID)
	}

	if len(clearedGameIDs) > 0 {
		that.logger.Info("cleanup sweep cleared expired games", "count", len(clearedGameIDs))
	}
}
