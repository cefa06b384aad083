package gaming

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-service/internal/entity"
)

// GamingSession - the context under which players communicate and play. A
// session groups one or two players behind an invitation code and hosts at
// most one active Game at a time. Nearly all business logic lives in the
// manager so that concurrency control stays centralized.
type GamingSession struct {
	SessionID        string                  `json:"session_id"`
	InvitationCode   string                  `json:"invitation_code"`
	SessionOwner     *entity.PlayerInfo      `json:"session_owner"`
	Participants     []*entity.PlayerInfo    `json:"participants"`
	CurrentGame      *Game                   `json:"current_game,omitempty"`
	EventPlaneConfig entity.EventPlaneConfig `json:"event_plane_config"`
}

// NewGamingSession - creates a session owned by the given player. The session
// ID doubles as the event-plane channel ID.
func NewGamingSession(owner *entity.PlayerInfo, invitationCode, eventDomain, brokerAddress string, brokerPort int) *GamingSession {
	sessionID := uuid.NewString()

	return &GamingSession{
		SessionID:        sessionID,
		InvitationCode:   invitationCode,
		SessionOwner:     owner,
		Participants:     []*entity.PlayerInfo{owner},
		EventPlaneConfig: entity.NewEventPlaneConfig(eventDomain, brokerAddress, brokerPort, sessionID),
	}
}

// AddParticipant - appends a player to the session.
func (that *GamingSession) AddParticipant(player *entity.PlayerInfo) {
	that.Participants = append(that.Participants, player)
}

// ParticipantByID - returns the participant with the given player ID, if any.
func (that *GamingSession) ParticipantByID(playerID string) (*entity.PlayerInfo, bool) {
	for _, participant := range that.Participants {
		if participant.PlayerID == playerID {
			return participant, true
		}
	}
	return nil, false
}

// ParticipantByDisplayName - case-insensitive lookup by display name.
func (that *GamingSession) ParticipantByDisplayName(displayName string) (*entity.PlayerInfo, bool) {
	for _, participant := range that.Participants {
		if strings.EqualFold(participant.DisplayName, displayName) {
			return participant, true
		}
	}
	return nil, false
}

// HasParticipant - reports whether the player belongs to the session.
func (that *GamingSession) HasParticipant(playerID string) bool {
	_, ok := that.ParticipantByID(playerID)
	return ok
}

// clone - a deep copy of the session. Observers receive clones so they can
// read freely while the manager keeps mutating the live session under its
// lock.
func (that *GamingSession) clone() *GamingSession {
	if that == nil {
		return nil
	}

	cloned := *that
	cloned.SessionOwner = clonePlayer(that.SessionOwner)
	cloned.Participants = clonePlayers(that.Participants)
	cloned.CurrentGame = that.CurrentGame.clone()

	return &cloned
}

func clonePlayer(player *entity.PlayerInfo) *entity.PlayerInfo {
	if player == nil {
		return nil
	}

	cloned := *player
	return &cloned
}

func clonePlayers(players []*entity.PlayerInfo) []*entity.PlayerInfo {
	if players == nil {
		return nil
	}

	cloned := make([]*entity.PlayerInfo, len(players))
	for i, player := range players {
		cloned[i] = clonePlayer(player)
	}
	return cloned
}

// SetGame - attaches the session's current Game.
func (that *GamingSession) SetGame(game *Game) {
	that.CurrentGame = game
}

// ClearGame - detaches the session's current Game.
func (that *GamingSession) ClearGame() {
	that.CurrentGame = nil
}
