package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

func TestBoard_DetectOutcome(t *testing.T) {
	t.Run("Every winning triple returns its symbol", func(t *testing.T) {
		for _, symbol := range []Mark{X, O} {
			for _, combo := range WinCombos {
				// Given: a board with one triple filled by symbol and a stray opponent mark elsewhere
				var board Board
				for _, cell := range combo {
					board[cell] = symbol
				}
				for i := range board {
					if board[i] == Empty {
						board[i] = symbol.Opponent()
						break
					}
				}

				// When: detecting the outcome
				outcome := board.DetectOutcome()

				// Then: the symbol of the triple wins
				assert.Equal(t, symbol, outcome, "combo %v", combo)
			}
		}
	})

	t.Run("Returns Draw for a full board without a triple", func(t *testing.T) {
		// Given: a full board with no winning line
		board := Board{
			X, O, X,
			X, O, O,
			O, X, X,
		}

		// When / Then: the game is a draw
		assert.Equal(t, Draw, board.DetectOutcome())
	})

	t.Run("Returns Empty while a cell is free and no triple exists", func(t *testing.T) {
		// Given: an unfinished board
		board := Board{
			X, O, Empty,
			Empty, X, Empty,
			Empty, Empty, O,
		}

		// When / Then: the game continues
		assert.Equal(t, Empty, board.DetectOutcome())
	})

	t.Run("The first triple in fixed order wins", func(t *testing.T) {
		// Given: an impossible board where X owns the top row and O the bottom row
		board := Board{
			X, X, X,
			Empty, Empty, Empty,
			O, O, O,
		}

		// When / Then: the top row is checked first
		assert.Equal(t, X, board.DetectOutcome())
	})
}

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("Places the mark without touching the original board", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: X plays the center
		next, err := board.ApplyMove(4, X)

		// Then: only the new board carries the mark
		require.NoError(t, err)
		assert.Equal(t, X, next[4])
		assert.True(t, board.IsEmpty())
	})

	t.Run("Occupied cell is an illegal move", func(t *testing.T) {
		// Given: a board where cell 0 is taken
		board := Board{X}

		// When: O tries to overwrite it
		_, err := board.ApplyMove(0, O)

		// Then: ErrIllegalMove is returned
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Out of range cell is an illegal move", func(t *testing.T) {
		var board Board

		_, err := board.ApplyMove(9, X)
		require.ErrorIs(t, err, apperror.ErrIllegalMove)

		_, err = board.ApplyMove(-1, X)
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Unknown symbol is an illegal move", func(t *testing.T) {
		var board Board

		_, err := board.ApplyMove(0, Draw)
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
	})
}

func TestBoard_Opener(t *testing.T) {
	t.Run("X opened when X has one more mark", func(t *testing.T) {
		// Given: X won on the fifth move of a game X opened
		board := Board{
			X, X, X,
			O, O, Empty,
			Empty, Empty, Empty,
		}

		// When / Then: X is the opener
		assert.Equal(t, X, board.Opener(X))
	})

	t.Run("O opened when O has one more mark", func(t *testing.T) {
		board := Board{
			O, O, O,
			X, X, Empty,
			Empty, Empty, Empty,
		}

		assert.Equal(t, O, board.Opener(O))
	})

	t.Run("Equal counts mean the last mover's opponent opened", func(t *testing.T) {
		// Given: O completed a line on the sixth move of a game X opened
		board := Board{
			O, O, O,
			X, X, Empty,
			X, Empty, Empty,
		}

		// When / Then: X is the opener
		assert.Equal(t, X, board.Opener(O))
	})
}

func TestMark_JSON(t *testing.T) {
	t.Run("Empty cells are encoded as null", func(t *testing.T) {
		board := Board{X, Empty, O}

		data, err := Mark.MarshalJSON(board[1])
		require.NoError(t, err)
		assert.JSONEq(t, "null", string(data))
	})
}
