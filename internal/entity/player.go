package entity

import "github.com/google/uuid"

// PlayerInfo - a participant in a Gaming Session or Game. Immutable once
// created except for GamePiece, which is assigned exactly once when the Game
// begins.
type PlayerInfo struct {
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	GamePiece   GamePiece `json:"game_piece"`
	IsAutomated bool      `json:"is_automated"`
}

func NewPlayerInfo(displayName string, isAutomated bool) *PlayerInfo {
	return &PlayerInfo{
		PlayerID:    uuid.NewString(),
		DisplayName: displayName,
		GamePiece:   PieceUnselected,
		IsAutomated: isAutomated,
	}
}

// OtherPlayer - returns a player from the list other than the specified one,
// if any.
func OtherPlayer(playerID string, players []*PlayerInfo) *PlayerInfo {
	for _, player := range players {
		if player.PlayerID != playerID {
			return player
		}
	}
	return nil
}
