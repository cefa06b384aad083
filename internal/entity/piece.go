package entity

import "math/rand"

// GamePiece - the marker a Player places on the board. A Player holds
// PieceUnselected until the Game begins and the pieces are assigned.
type GamePiece string

const (
	PieceUnselected GamePiece = ""
	PieceX          GamePiece = "X"
	PieceO          GamePiece = "O"
)

// Opposite - returns O for X and X for O. Unselected stays Unselected.
func (that GamePiece) Opposite() GamePiece {
	switch that {
	case PieceX:
		return PieceO
	case PieceO:
		return PieceX
	default:
		return PieceUnselected
	}
}

// RandomGamePiece - draws X or O from the supplied source so tests can seed it.
func RandomGamePiece(rng *rand.Rand) GamePiece {
	if rng.Intn(2) == 0 {
		return PieceX
	}
	return PieceO
}
