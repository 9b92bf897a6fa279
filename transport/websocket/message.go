package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

// Actions sent by the browser.
const (
	actionSessionName = "session:name"
	actionRoomCreate  = "room:create"
	actionRoomJoin    = "room:join"
	actionRoomLeave   = "room:leave"
	actionGameMove    = "game:move"
	actionGameRematch = "game:rematch"
	actionRoomsListen = "rooms:listen"
	actionRoomsStop   = "rooms:stop"
)

// Events pushed to the browser.
const (
	eventSessionReady = "session:ready"
	eventRoomUpdate   = "room:update"
	eventRoomDeleted  = "room:deleted"
	eventRoomsList    = "rooms:list"
	eventStatus       = "status"
	eventError        = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
	Cell *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Player  *entity.Player       `json:"player,omitempty"`
	Room    *RoomResponse        `json:"room,omitempty"`
	Rooms   []entity.RoomSummary `json:"rooms,omitempty"`
	Message string               `json:"message,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// RoomResponse is the room document as seen from the player's seat.
type RoomResponse struct {
	Code string `json:"code"`
	*entity.Room

	Symbol   entity.Mark         `json:"symbol"`
	Headline string              `json:"headline"`
	Rematch  entity.RematchState `json:"rematch,omitempty"`
}

func newRoomResponse(view usecase.RoomView) *RoomResponse {
	return &RoomResponse{
		Code:     view.Room.Code,
		Room:     view.Room,
		Symbol:   view.Symbol,
		Headline: view.Headline,
		Rematch:  view.Rematch,
	}
}
