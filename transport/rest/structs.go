package rest

import (
	"github.com/rocketscienceinc/tictactoe-service/internal/entity"
	"github.com/rocketscienceinc/tictactoe-service/internal/gaming"
)

type newGamingSessionParams struct {
	SessionOwnerDisplayName string `json:"session_owner_display_name"`
}

type joinSessionParams struct {
	GameInvitationCode string `json:"game_invitation_code"`
	PlayerDisplayName  string `json:"player_display_name"`
}

type newSinglePlayerGameParams struct {
	ComputerSkillLevel entity.SkillLevel `json:"computer_skill_level"`
}

type endGameParams struct {
	PlayerID  string `json:"player_id"`
	SessionID string `json:"session_id"`
}

type endGamingSessionParams struct {
	PlayerID string `json:"player_id"`
}

type gamingSessionResponse struct {
	EventPlaneConfig entity.EventPlaneConfig `json:"event_plane_config"`
	InitiatingPlayer *entity.PlayerInfo      `json:"initiating_player"`
	InvitationCode   string                  `json:"invitation_code"`
	OtherPlayer      *entity.PlayerInfo      `json:"other_player,omitempty"`
	SessionID        string                  `json:"session_id"`
}

type gameInfoResponse struct {
	CurrentPlayer *entity.PlayerInfo   `json:"current_player,omitempty"`
	GameID        string               `json:"game_id"`
	GameState     entity.GameState     `json:"game_state"`
	Players       []*entity.PlayerInfo `json:"players"`
}

type gameCreationResponse struct {
	GameInfo         gameInfoResponse   `json:"game_info"`
	InitiatingPlayer *entity.PlayerInfo `json:"initiating_player"`
	OtherPlayer      *entity.PlayerInfo `json:"other_player,omitempty"`
	SessionID        string             `json:"session_id"`
}

func newGamingSessionResponse(session *gaming.GamingSession) gamingSessionResponse {
	return gamingSessionResponse{
		EventPlaneConfig: session.EventPlaneConfig,
		InitiatingPlayer: session.SessionOwner,
		InvitationCode:   session.InvitationCode,
		OtherPlayer:      entity.OtherPlayer(session.SessionOwner.PlayerID, session.Participants),
		SessionID:        session.SessionID,
	}
}

func newGameInfoResponse(game *gaming.Game) gameInfoResponse {
	return gameInfoResponse{
		CurrentPlayer: game.CurrentPlayer,
		GameID:        game.ID,
		GameState:     game.CurrentGameState(),
		Players:       game.Players,
	}
}

func newGameCreationResponse(session *gaming.GamingSession, game *gaming.Game) gameCreationResponse {
	return gameCreationResponse{
		GameInfo:         newGameInfoResponse(game),
		InitiatingPlayer: session.SessionOwner,
		OtherPlayer:      entity.OtherPlayer(session.SessionOwner.PlayerID, session.Participants),
		SessionID:        session.SessionID,
	}
}
