package gaming

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-service/internal/entity"
)

type capturingTurnTaker struct {
	mu     sync.Mutex
	gameID string
	params []TurnParams
}

func (that *capturingTurnTaker) TakeTurn(_ context.Context, gameID string, params TurnParams) (*entity.TurnResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.gameID = gameID
	that.params = append(that.params, params)
	return &entity.TurnResult{}, nil
}

func (that *capturingTurnTaker) taken() []TurnParams {
	that.mu.Lock()
	defer that.mu.Unlock()
	return append([]TurnParams(nil), that.params...)
}

func newBotFixture(t *testing.T, turns turnTaker) (*AutomaticPlayer, *GamingSession, *Game, *entity.PlayerInfo) {
	t.Helper()

	human := entity.NewPlayerInfo("Alice", false)
	bot := entity.NewPlayerInfo(AutomaticPlayerName, true)

	game, err := NewGame(entity.ModeSinglePlayer, human, bot, "ignored", rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	session := NewGamingSession(human, "123456", "tictactoe", "broker.local", 1883)
	session.AddParticipant(bot)
	session.SetGame(game)
	game.SessionID = session.SessionID

	botCopy, err := game.PlayerByID(bot.PlayerID)
	require.NoError(t, err)

	player := NewAutomaticPlayer(discardLogger(), game.ID, botCopy, entity.SkillBeginner,
		turns, rand.New(rand.NewSource(4)), 0, 0)

	return player, session, game, botCopy
}

func TestAutomaticPlayer_SessionUpdated(t *testing.T) {
	t.Run("Takes a turn when the open turn is its own", func(t *testing.T) {
		// Given: a bot whose turn it is
		turns := &capturingTurnTaker{}
		player, session, game, botCopy := newBotFixture(t, turns)
		game.CurrentPlayer = botCopy

		// When: the game-started notification arrives
		player.SessionUpdated(StateChangeGameStarted, session, game)

		// Then: the bot submits a move on an open cell through the public path
		require.Eventually(t, func() bool {
			return len(turns.taken()) == 1
		}, time.Second, 5*time.Millisecond)

		params := turns.taken()[0]
		assert.Equal(t, botCopy.PlayerID, params.PlayerID)
		assert.Equal(t, session.SessionID, params.SessionID)
		assert.True(t, params.Destination.IsValid())
	})

	t.Run("Stays quiet when it is the human's turn", func(t *testing.T) {
		turns := &capturingTurnTaker{}
		player, session, game, botCopy := newBotFixture(t, turns)

		human := entity.OtherPlayer(botCopy.PlayerID, game.Players)
		game.CurrentPlayer = human

		player.SessionUpdated(StateChangeGameTurnTaken, session, game)

		time.Sleep(20 * time.Millisecond)
		assert.Empty(t, turns.taken())
	})

	t.Run("Ignores notifications for other games", func(t *testing.T) {
		turns := &capturingTurnTaker{}
		player, session, game, botCopy := newBotFixture(t, turns)
		game.CurrentPlayer = botCopy

		otherGame := *game
		otherGame.ID = "some-other-game"

		player.SessionUpdated(StateChangeGameStarted, session, &otherGame)

		time.Sleep(20 * time.Millisecond)
		assert.Empty(t, turns.taken())
	})

	t.Run("Ignores terminal game states", func(t *testing.T) {
		turns := &capturingTurnTaker{}
		player, session, game, botCopy := newBotFixture(t, turns)
		game.CurrentPlayer = botCopy
		game.PlayHistory = append(game.PlayHistory, entity.NewGameStateWithPlayStatus(botCopy.PlayerID, entity.StatusEndedInWin))

		player.SessionUpdated(StateChangeGameTurnTaken, session, game)

		time.Sleep(20 * time.Millisecond)
		assert.Empty(t, turns.taken())
	})

	t.Run("Is identified by its game ID", func(t *testing.T) {
		turns := &capturingTurnTaker{}
		player, _, game, _ := newBotFixture(t, turns)

		assert.Equal(t, game.ID, player.UniqueID())
	})
}
