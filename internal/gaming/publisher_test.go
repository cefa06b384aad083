package gaming

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-service/internal/entity"
)

type capturingSink struct {
	topics []string
	qos    []PublishQoS
	err    error
}

func (that *capturingSink) Publish(_ context.Context, topic string, qos PublishQoS) error {
	that.topics = append(that.topics, topic)
	that.qos = append(that.qos, qos)
	return that.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func gameWithStatus(status entity.PlayStatus) *Game {
	return &Game{
		ID:          "game-1",
		PlayHistory: []entity.GameState{{PlayStatus: status}},
	}
}

func TestGameUpdatesPublisher_SessionUpdated(t *testing.T) {
	owner := entity.NewPlayerInfo("Alice", false)
	session := NewGamingSession(owner, "123456", "tictactoe", "broker.local", 1883)
	prefix := session.EventPlaneConfig.TopicPrefix

	tests := []struct {
		name          string
		change        StateChange
		game          *Game
		expectedTopic string
	}{
		{"Game started", StateChangeGameStarted, gameWithStatus(entity.StatusInProgress), prefix + "/GameStarted"},
		{"Turn taken mid-game", StateChangeGameTurnTaken, gameWithStatus(entity.StatusInProgress), prefix + "/TurnTaken"},
		{"Turn ends in a win", StateChangeGameTurnTaken, gameWithStatus(entity.StatusEndedInWin), prefix + "/GameEndedInWin"},
		{"Turn ends in a stalemate", StateChangeGameTurnTaken, gameWithStatus(entity.StatusEndedInStalemate), prefix + "/GameEndedInStalemate"},
		{"Game deleted", StateChangeGameDeleted, nil, prefix + "/GameDeleted"},
		{"Player added to session", StateChangePlayerAddedToSession, nil, prefix + "/PlayerAddedToSession"},
		{"Player ready", StateChangePlayerReady, nil, prefix + "/PlayerReady"},
		{"Session deleted", StateChangeSessionDeleted, nil, prefix + "/SessionDeleted"},
	}

	for _, tc := range tests {
		t.Run(tc.name+" publishes the matching topic", func(t *testing.T) {
			// Given: a publisher over a capturing sink
			sink := &capturingSink{}
			publisher := NewGameUpdatesPublisher(discardLogger(), sink)

			// When: the state change is observed
			publisher.SessionUpdated(tc.change, session, tc.game)

			// Then: one at-least-once notification goes out on the topic
			require.Len(t, sink.topics, 1)
			assert.Equal(t, tc.expectedTopic, sink.topics[0])
			assert.Equal(t, QoSAtLeastOnce, sink.qos[0])
		})
	}

	t.Run("Turn taken on a not-started game publishes nothing", func(t *testing.T) {
		sink := &capturingSink{}
		publisher := NewGameUpdatesPublisher(discardLogger(), sink)

		publisher.SessionUpdated(StateChangeGameTurnTaken, session, gameWithStatus(entity.StatusNotStarted))

		assert.Empty(t, sink.topics)
	})

	t.Run("Turn taken without a game publishes nothing", func(t *testing.T) {
		sink := &capturingSink{}
		publisher := NewGameUpdatesPublisher(discardLogger(), sink)

		publisher.SessionUpdated(StateChangeGameTurnTaken, session, nil)

		assert.Empty(t, sink.topics)
	})

	t.Run("Publish failures are swallowed", func(t *testing.T) {
		// Given: a sink that always fails
		sink := &capturingSink{err: errors.New("broker is down")}
		publisher := NewGameUpdatesPublisher(discardLogger(), sink)

		// When/Then: observing a change does not panic or propagate
		assert.NotPanics(t, func() {
			publisher.SessionUpdated(StateChangeGameStarted, session, gameWithStatus(entity.StatusInProgress))
		})
	})
}

func TestBuildTopicPrefix(t *testing.T) {
	t.Run("Session ID is the event-plane channel", func(t *testing.T) {
		owner := entity.NewPlayerInfo("Alice", false)

		session := NewGamingSession(owner, "123456", "tictactoe", "broker.local", 1883)

		assert.Equal(t, session.SessionID, session.EventPlaneConfig.ChannelID)
		assert.Equal(t, "tictactoe/Channels/"+session.SessionID, session.EventPlaneConfig.TopicPrefix)
	})
}
