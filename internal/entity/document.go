package entity

import (
	"encoding/json"
	"fmt"
)

// Field names of the room document, used to build partial updates.
const (
	FieldBoard               = "board"
	FieldTurn                = "turn"
	FieldStatus              = "status"
	FieldWinner              = "winner"
	FieldPlayerX             = "playerX"
	FieldPlayerO             = "playerO"
	FieldPlayerXName         = "playerXName"
	FieldPlayerOName         = "playerOName"
	FieldPlayerXWins         = "playerXWins"
	FieldPlayerOWins         = "playerOWins"
	FieldPlayerXWantsRematch = "playerXWantsRematch"
	FieldPlayerOWantsRematch = "playerOWantsRematch"
	FieldLastStarter         = "lastStarter"
)

// NullString is a string stored as JSON null when empty.
type NullString string

func (that NullString) MarshalJSON() ([]byte, error) {
	if that == "" {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = ""
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to unmarshal string: %w", err)
	}

	*that = NullString(value)

	return nil
}

// Fields is a partial update: only the named top-level fields are replaced.
type Fields map[string]any

// SlotFields - fields that occupy or clear the slot of the given symbol.
func SlotFields(symbol Mark, player Player) Fields {
	if symbol == O {
		return Fields{FieldPlayerO: NullString(player.ID), FieldPlayerOName: NullString(player.Name)}
	}
	return Fields{FieldPlayerX: NullString(player.ID), FieldPlayerXName: NullString(player.Name)}
}

// NameField - name of the display-name field for the symbol.
func NameField(symbol Mark) string {
	if symbol == O {
		return FieldPlayerOName
	}
	return FieldPlayerXName
}

// RematchField - name of the rematch flag for the symbol.
func RematchField(symbol Mark) string {
	if symbol == O {
		return FieldPlayerOWantsRematch
	}
	return FieldPlayerXWantsRematch
}

// WinsField - name of the win counter for the symbol.
func WinsField(symbol Mark) string {
	if symbol == O {
		return FieldPlayerOWins
	}
	return FieldPlayerXWins
}

// MergeInto - overlays the fields onto an encoded document and returns the merged encoding.
func (that Fields) MergeInto(document []byte) ([]byte, error) {
	merged := map[string]json.RawMessage{}
	if len(document) > 0 {
		if err := json.Unmarshal(document, &merged); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
	}

	for name, value := range that {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %s: %w", name, err)
		}
		merged[name] = encoded
	}

	result, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	return result, nil
}

func EncodeRoom(room *Room) ([]byte, error) {
	data, err := json.Marshal(room)
	if err != nil {
		return nil, fmt.Errorf("could not marshal room: %w", err)
	}

	return data, nil
}

func DecodeRoom(code string, data []byte) (*Room, error) {
	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	room.Code = code

	return &room, nil
}
