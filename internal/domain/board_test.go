package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDropRowFillsBottomUp(t *testing.T) {
	board := NewBoard()

	for expected := Rows - 1; expected >= 0; expected-- {
		row, ok := DropRow(board, 3)
		require.True(t, ok)
		require.Equal(t, expected, row, "disks must stack bottom-up")
		board[row][3] = Player1
	}

	_, ok := DropRow(board, 3)
	require.False(t, ok, "full column must not accept another disk")
}

func TestIsColumnPlayable(t *testing.T) {
	board := NewBoard()

	require.False(t, IsColumnPlayable(board, -1))
	require.False(t, IsColumnPlayable(board, Columns))

	for c := 0; c < Columns; c++ {
		require.True(t, IsColumnPlayable(board, c))
	}

	for r := 0; r < Rows; r++ {
		board[r][5] = Player2
	}
	require.False(t, IsColumnPlayable(board, 5))
	require.True(t, IsColumnPlayable(board, 4))
}

func TestCopyBoardIsDeep(t *testing.T) {
	board := NewBoard()
	board[5][0] = Player1

	clone := CopyBoard(board)
	clone[5][0] = Player2
	clone[0][6] = Player1

	require.Equal(t, Player1, board[5][0])
	require.Equal(t, Empty, board[0][6])
}
