package domain

// lineDirections are the four axes a connect-four can lie on:
// horizontal, vertical, diagonal / and diagonal \.
var lineDirections = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// CheckWin reports whether the disk just placed at (row, column) completes a
// line of four. Only lines passing through that cell are examined, so the
// cost per move is constant rather than a full-board scan.
func CheckWin(board [][]PlayerID, row, column int, player PlayerID) bool {
	for _, dir := range lineDirections {
		count := 1 +
			countInDirection(board, row, column, dir[0], dir[1], player) +
			countInDirection(board, row, column, -dir[0], -dir[1], player)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// CheckDraw reports whether the board is full. Disks fill bottom-up, so a
// full top row implies a full board.
func CheckDraw(board [][]PlayerID) bool {
	for c := 0; c < Columns; c++ {
		if board[0][c] == Empty {
			return false
		}
	}
	return true
}
