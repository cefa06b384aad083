package entity

// BoardPosition - a single cell on the 3x3 board, row/column zero-based.
type BoardPosition struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func NewBoardPosition(row, column int) BoardPosition {
	return BoardPosition{Row: row, Column: column}
}

// IsValid - reports whether the position falls inside the board. Out-of-range
// positions are data errors, never panics.
func (that BoardPosition) IsValid() bool {
	return that.Row >= 0 && that.Row < MaxBoardRows && that.Column >= 0 && that.Column < MaxBoardColumns
}
