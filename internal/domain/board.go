package domain

func NewBoard() [][]PlayerID {
	board := make([][]PlayerID, Rows)
	for i := range board {
		board[i] = make([]PlayerID, Columns)
	}
	return board
}

// IsColumnPlayable reports whether a disk can still be dropped in column.
// Row 0 is the top of the board, so an empty top cell means the column has room.
func IsColumnPlayable(board [][]PlayerID, column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	return board[0][column] == Empty
}

// DropRow returns the lowest empty row of column, scanning from the bottom.
// ok is false when the column is full.
func DropRow(board [][]PlayerID, column int) (row int, ok bool) {
	for r := Rows - 1; r >= 0; r-- {
		if board[r][column] == Empty {
			return r, true
		}
	}
	return -1, false
}

// this creates a deep copy of the board
func CopyBoard(board [][]PlayerID) [][]PlayerID {
	newBoard := make([][]PlayerID, len(board))
	for i := range board {
		newBoard[i] = make([]PlayerID, len(board[i]))
		copy(newBoard[i], board[i])
	}
	return newBoard
}

// countInDirection counts consecutive disks of player starting one step away
// from (row, column) and walking in the (deltaRow, deltaCol) direction.
func countInDirection(board [][]PlayerID, row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for r >= 0 && r < Rows && c >= 0 && c < Columns && board[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
