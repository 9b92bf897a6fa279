package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRoom(t *testing.T) {
	// Given: a freshly created room
	room := NewRoom("123-45-678", Player{ID: "a", Name: "Alice"}, time.UnixMilli(5))

	// When: encoding it
	data, err := EncodeRoom(room)
	require.NoError(t, err)

	// Then: empty values are stored as null and the code stays out of the document
	assert.JSONEq(t, `{
		"board": [null,null,null,null,null,null,null,null,null],
		"turn": "X",
		"status": "waiting",
		"winner": null,
		"playerX": "a",
		"playerO": null,
		"playerXName": "Alice",
		"playerOName": null,
		"playerXWins": 0,
		"playerOWins": 0,
		"playerXWantsRematch": false,
		"playerOWantsRematch": false,
		"lastStarter": "O",
		"createdAt": 5
	}`, string(data))
}

func TestFields_MergeInto(t *testing.T) {
	t.Run("Only named fields change", func(t *testing.T) {
		// Given: a stored room and a join patch
		room := NewRoom("123-45-678", Player{ID: "a", Name: "Alice"}, time.UnixMilli(5))
		data, err := EncodeRoom(room)
		require.NoError(t, err)

		patch := SlotFields(O, Player{ID: "b", Name: "Bob"})
		patch[FieldStatus] = StatusPlaying

		// When: merging the patch
		merged, err := patch.MergeInto(data)
		require.NoError(t, err)

		// Then: the decoded room has the patched fields and keeps the others
		decoded, err := DecodeRoom("123-45-678", merged)
		require.NoError(t, err)
		assert.Equal(t, NullString("b"), decoded.PlayerO)
		assert.Equal(t, NullString("Bob"), decoded.PlayerOName)
		assert.Equal(t, StatusPlaying, decoded.Status)
		assert.Equal(t, NullString("a"), decoded.PlayerX)
		assert.Equal(t, O, decoded.LastStarter)
		assert.Equal(t, "123-45-678", decoded.Code)
	})

	t.Run("Clearing a slot writes null", func(t *testing.T) {
		merged, err := SlotFields(X, Player{}).MergeInto([]byte(`{"playerX":"a","playerXName":"Alice"}`))
		require.NoError(t, err)

		assert.JSONEq(t, `{"playerX":null,"playerXName":null}`, string(merged))
	})

	t.Run("Board values round trip with nulls", func(t *testing.T) {
		board := Board{X, Empty, O}

		merged, err := Fields{FieldBoard: board}.MergeInto(nil)
		require.NoError(t, err)

		decoded, err := DecodeRoom("", merged)
		require.NoError(t, err)
		assert.Equal(t, board, decoded.Board)
	})
}
