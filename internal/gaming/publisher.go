package gaming

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-service/internal/entity"
)

// PublishQoS - delivery quality requested from the publish sink.
type PublishQoS byte

const (
	QoSAtMostOnce PublishQoS = iota
	QoSAtLeastOnce
	QoSExactlyOnce
)

// publishSink - the injected, publish-only transport. Notifications carry no
// payload; the topic is the whole message.
type publishSink interface {
	Publish(ctx context.Context, topic string, qos PublishQoS) error
}

// GameUpdatesPublisher - an observer that translates state changes into
// event-plane topics and publishes zero-payload notifications. Publishing is
// best-effort: failures are logged and never surface to the caller.
type GameUpdatesPublisher struct {
	logger   *slog.Logger
	sink     publishSink
	uniqueID string
}

func NewGameUpdatesPublisher(logger *slog.Logger, sink publishSink) *GameUpdatesPublisher {
	return &GameUpdatesPublisher{
		logger:   logger.With("component", "game_updates_publisher"),
		sink:     sink,
		uniqueID: uuid.NewString(),
	}
}

// SessionUpdated - implements SessionObserver.
func (that *GameUpdatesPublisher) SessionUpdated(change StateChange, session *GamingSession, game *Game) {
	prefix := session.EventPlaneConfig.TopicPrefix

	var topic string

	switch change {
	case StateChangeGameStarted:
		topic = entity.TopicGameStarted.Build(prefix)
	case StateChangeGameTurnTaken:
		if game == nil {
			return
		}
		switch game.CurrentGameState().PlayStatus {
		case entity.StatusEndedInWin:
			topic = entity.TopicGameEndedInWin.Build(prefix)
		case entity.StatusEndedInStalemate:
			topic = entity.TopicGameEndedInStalemate.Build(prefix)
		case entity.StatusInProgress:
			topic = entity.TopicTurnTaken.Build(prefix)
		case entity.StatusNotStarted:
			return // Nothing to publish.
		}
	case StateChangeGameDeleted:
		topic = entity.TopicGameDeleted.Build(prefix)
	case StateChangePlayerAddedToSession:
		topic = entity.TopicPlayerAddedToSession.Build(prefix)
	case StateChangePlayerReady:
		topic = entity.TopicPlayerReady.Build(prefix)
	case StateChangeSessionDeleted:
		topic = entity.TopicSessionDeleted.Build(prefix)
	default:
		return
	}

	if err := that.sink.Publish(context.Background(), topic, QoSAtLeastOnce); err != nil {
		that.logger.Error("failed to publish notification", "topic", topic, "error", err)
	}
}

// UniqueID - implements SessionObserver.
func (that *GameUpdatesPublisher) UniqueID() string {
	return that.uniqueID
}
