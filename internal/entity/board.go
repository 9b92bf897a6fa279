package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

// Mark is a cell value, a symbol, or a game result. The empty mark is stored as JSON null.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
	Draw  Mark = "DRAW"
)

const BoardSize = 9

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Mark) MarshalJSON() ([]byte, error) {
	if that == Empty {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = Empty
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to unmarshal mark: %w", err)
	}

	*that = Mark(value)

	return nil
}

// IsSymbol - reports whether the mark is one of the two player symbols.
func (that Mark) IsSymbol() bool {
	return that == X || that == O
}

// Opponent - returns the other player's symbol.
func (that Mark) Opponent() Mark {
	if that == X {
		return O
	}
	return X
}

type Board [BoardSize]Mark

// ApplyMove - places mark on the cell and returns the new board. The receiver is never modified.
func (that Board) ApplyMove(index int, mark Mark) (Board, error) {
	if index < 0 || index >= BoardSize {
		return that, fmt.Errorf("%w: cell %d out of range", apperror.ErrIllegalMove, index)
	}

	if !mark.IsSymbol() {
		return that, fmt.Errorf("%w: unknown symbol %q", apperror.ErrIllegalMove, mark)
	}

	if that[index] != Empty {
		return that, fmt.Errorf("%w: cell %d is already occupied", apperror.ErrIllegalMove, index)
	}

	that[index] = mark

	return that, nil
}

// DetectOutcome - returns the winning symbol, Draw for a full board, or Empty while the game continues.
func (that Board) DetectOutcome() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != Empty && a == b && b == c {
			return a
		}
	}

	// the game continues while any square is free
	for _, cell := range that {
		if cell == Empty {
			return Empty
		}
	}

	return Draw
}

// Opener - derives which symbol opened the game from the mark counts and the symbol that moved last.
func (that Board) Opener(lastMover Mark) Mark {
	var xs, os int
	for _, cell := range that {
		switch cell {
		case X:
			xs++
		case O:
			os++
		}
	}

	switch {
	case xs > os:
		return X
	case os > xs:
		return O
	default:
		return lastMover.Opponent()
	}
}

func (that Board) IsEmpty() bool {
	return that == Board{}
}
