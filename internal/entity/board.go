package entity

// Tic-Tac-Toe is played on a 3-by-3 grid.
const (
	MaxBoardRows    = 3
	MaxBoardColumns = 3
)

// GameBoard - the locations of the Game pieces in row/column grid format.
type GameBoard [MaxBoardRows][MaxBoardColumns]GamePiece

// Each player's occupied cells as a 9-bit mask, row-major, with the
// most-significant bit being the top-left cell.
const binFullBoard = 0b_111_111_111

const (
	binTopRow           = 0b_111_000_000
	binMiddleRow        = 0b_000_111_000
	binBottomRow        = 0b_000_000_111
	binLeftColumn       = 0b_100_100_100
	binCenterColumn     = 0b_010_010_010
	binRightColumn      = 0b_001_001_001
	binTopLeftDiagonal  = 0b_100_010_001
	binTopRightDiagonal = 0b_001_010_100
)

// winningLines - the 8 winning masks paired with their grid positions. The
// order is part of the contract: rows top-to-bottom, then columns
// left-to-right, then the two diagonals. The first match is the one reported.
var winningLines = []struct {
	mask      int
	positions []BoardPosition
}{
	{binTopRow, []BoardPosition{{0, 0}, {0, 1}, {0, 2}}},
	{binMiddleRow, []BoardPosition{{1, 0}, {1, 1}, {1, 2}}},
	{binBottomRow, []BoardPosition{{2, 0}, {2, 1}, {2, 2}}},
	{binLeftColumn, []BoardPosition{{0, 0}, {1, 0}, {2, 0}}},
	{binCenterColumn, []BoardPosition{{0, 1}, {1, 1}, {2, 1}}},
	{binRightColumn, []BoardPosition{{0, 2}, {1, 2}, {2, 2}}},
	{binTopLeftDiagonal, []BoardPosition{{0, 0}, {1, 1}, {2, 2}}},
	{binTopRightDiagonal, []BoardPosition{{0, 2}, {1, 1}, {2, 0}}},
}

// PlayOutcome - the result of evaluating a board after a move.
type PlayOutcome struct {
	PlayStatus       PlayStatus
	WinningPlayer    *PlayerInfo
	WinningPositions []BoardPosition
}

// Bitmask - collapses the cells occupied by the given piece into a 9-bit mask.
func (that GameBoard) Bitmask(piece GamePiece) int {
	mask := 0
	for row := 0; row < MaxBoardRows; row++ {
		for column := 0; column < MaxBoardColumns; column++ {
			mask <<= 1
			if that[row][column] == piece {
				mask |= 1
			}
		}
	}
	return mask
}

// EmptyPositions - the cells not yet occupied by either player.
func (that GameBoard) EmptyPositions() []BoardPosition {
	var empty []BoardPosition
	for row := 0; row < MaxBoardRows; row++ {
		for column := 0; column < MaxBoardColumns; column++ {
			if that[row][column] == PieceUnselected {
				empty = append(empty, NewBoardPosition(row, column))
			}
		}
	}
	return empty
}

// EvaluateBoard - determines how the board stands for the player who just
// moved. Pure function: reports a win with the exact winning line, a
// stalemate on a full board, otherwise in-progress. A board where either
// piece is still unselected, or no piece has been placed, is not started.
func EvaluateBoard(board GameBoard, movingPlayer *PlayerInfo, movingPiece, otherPiece GamePiece) PlayOutcome {
	if movingPiece == PieceUnselected || otherPiece == PieceUnselected {
		return PlayOutcome{PlayStatus: StatusNotStarted}
	}

	movingMask := board.Bitmask(movingPiece)
	otherMask := board.Bitmask(otherPiece)

	if movingMask == 0 && otherMask == 0 {
		return PlayOutcome{PlayStatus: StatusNotStarted}
	}

	for _, line := range winningLines {
		if movingMask&line.mask == line.mask {
			return PlayOutcome{
				PlayStatus:       StatusEndedInWin,
				WinningPlayer:    movingPlayer,
				WinningPositions: line.positions,
			}
		}
	}

	if movingMask|otherMask == binFullBoard {
		return PlayOutcome{PlayStatus: StatusEndedInStalemate}
	}

	return PlayOutcome{PlayStatus: StatusInProgress}
}
