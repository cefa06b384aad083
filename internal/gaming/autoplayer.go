package gaming

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-service/internal/entity"
)

// AutomaticPlayerName - display name under which the computer opponent plays.
const AutomaticPlayerName = "Reema"

// turnTaker - the public turn-taking entry point. The automatic player moves
// through the same manager operation human clients use, so it can never
// bypass turn-order or validation logic.
type turnTaker interface {
	TakeTurn(ctx context.Context, gameID string, params TurnParams) (*entity.TurnResult, error)
}

// AutomaticPlayer - a session observer that plays one side of a Game. When a
// notification tells it the turn is its own, it deliberates for a randomized
// delay off-lock and then submits its move.
type AutomaticPlayer struct {
	logger     *slog.Logger
	gameID     string
	playerInfo *entity.PlayerInfo
	skillLevel entity.SkillLevel
	turns      turnTaker

	minDelay time.Duration
	maxDelay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAutomaticPlayer - creates a computer opponent for the given Game. The
// delay bounds shape the human-feeling deliberation pause; tests pass zero.
func NewAutomaticPlayer(logger *slog.Logger, gameID string, playerInfo *entity.PlayerInfo, skillLevel entity.SkillLevel,
	turns turnTaker, rng *rand.Rand, minDelay, maxDelay time.Duration,
) *AutomaticPlayer {
	return &AutomaticPlayer{
		logger:     logger.With("component", "automatic_player", "gameID", gameID),
		gameID:     gameID,
		playerInfo: playerInfo,
		skillLevel: skillLevel,
		turns:      turns,
		minDelay:   minDelay,
		maxDelay:   maxDelay,
		rng:        rng,
	}
}

// SessionUpdated - implements SessionObserver. Reacts to game-start and
// turn-taken changes by taking a turn whenever the open turn is its own.
func (that *AutomaticPlayer) SessionUpdated(change StateChange, session *GamingSession, game *Game) {
	if game == nil || game.ID != that.gameID {
		return
	}

	switch change {
	case StateChangeGameStarted, StateChangeGameTurnTaken:
	default:
		return
	}

	if game.CurrentGameState().PlayStatus != entity.StatusInProgress {
		return
	}

	if game.CurrentPlayer == nil || game.CurrentPlayer.PlayerID != that.playerInfo.PlayerID {
		return
	}

	destination, ok := that.chooseMove(game.CurrentGameState().GameBoard)
	if !ok {
		that.logger.Warn("no open board positions left to play")
		return
	}

	params := TurnParams{
		Destination: destination,
		PlayerID:    that.playerInfo.PlayerID,
		SessionID:   session.SessionID,
	}

	// The deliberation sleep runs on its own goroutine so that no manager
	// lock is ever held while the bot "thinks".
	go func() {
		time.Sleep(that.deliberationDelay())

		if _, err := that.turns.TakeTurn(context.Background(), that.gameID, params); err != nil {
			that.logger.Error("automatic player failed to take turn", "error", err)
		}
	}()
}

// UniqueID - implements SessionObserver. The automatic player is registered
// per Game, so the Game ID identifies it.
func (that *AutomaticPlayer) UniqueID() string {
	return that.gameID
}

// chooseMove - selects the next move. Higher skill levels currently play the
// beginner policy: a uniformly random open cell.
func (that *AutomaticPlayer) chooseMove(board entity.GameBoard) (entity.BoardPosition, bool) {
	switch that.skillLevel {
	case entity.SkillBeginner, entity.SkillIntermediate, entity.SkillExpert, entity.SkillMaster:
		return that.chooseRandomOpenPosition(board)
	default:
		return that.chooseRandomOpenPosition(board)
	}
}

func (that *AutomaticPlayer) chooseRandomOpenPosition(board entity.GameBoard) (entity.BoardPosition, bool) {
	open := board.EmptyPositions()
	if len(open) == 0 {
		return entity.BoardPosition{}, false
	}

	that.mu.Lock()
	defer that.mu.Unlock()
	return open[that.rng.Intn(len(open))], true
}

func (that *AutomaticPlayer) deliberationDelay() time.Duration {
	if that.maxDelay <= that.minDelay {
		return that.minDelay
	}

	that.mu.Lock()
	defer that.mu.Unlock()
	return that.minDelay + time.Duration(that.rng.Int63n(int64(that.maxDelay-that.minDelay)))
}
