package bot

import (
	"github.com/mkogan/connect-four/internal/domain"
)

// preferredOrder is the center-out column preference used when no forced
// move exists. Center columns touch the most potential lines.
var preferredOrder = [...]int{3, 2, 4, 1, 5, 0, 6}

// SelectMove picks a column for the bot, in priority order: take an
// immediate win, block the opponent's immediate win, otherwise the first
// playable column center-out. Returns -1 only on a full board, which the
// caller never reaches because draws are detected first.
func SelectMove(board [][]domain.PlayerID, self, opponent domain.PlayerID) int {
	if col := findWinningColumn(board, self); col != -1 {
		return col
	}
	if col := findWinningColumn(board, opponent); col != -1 {
		return col
	}
	for _, col := range preferredOrder {
		if domain.IsColumnPlayable(board, col) {
			return col
		}
	}
	return -1
}

// findWinningColumn returns a column where dropping player's disk wins
// immediately, or -1. Each candidate is evaluated on a copied board so the
// caller's board is never mutated.
func findWinningColumn(board [][]domain.PlayerID, player domain.PlayerID) int {
	for col := 0; col < domain.Columns; col++ {
		if !domain.IsColumnPlayable(board, col) {
			continue
		}
		sim := domain.CopyBoard(board)
		row, _ := domain.DropRow(sim, col)
		sim[row][col] = player
		if domain.CheckWin(sim, row, col, player) {
			return col
		}
	}
	return -1
}
