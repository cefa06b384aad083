package entity

// PlayStatus - the lifecycle state of a Game.
type PlayStatus string

const (
	StatusNotStarted       PlayStatus = "NotStarted"
	StatusInProgress       PlayStatus = "InProgress"
	StatusEndedInWin       PlayStatus = "EndedInWin"
	StatusEndedInStalemate PlayStatus = "EndedInStalemate"
)

// HasEnded - reports whether the status is terminal.
func (that PlayStatus) HasEnded() bool {
	return that == StatusEndedInWin || that == StatusEndedInStalemate
}
