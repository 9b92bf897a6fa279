package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// RoomDirectory is the live list of rooms a player may join.
type RoomDirectory struct {
	rooms *RoomManager
}

func NewRoomDirectory(rooms *RoomManager) *RoomDirectory {
	return &RoomDirectory{rooms: rooms}
}

// Open - starts delivering open rooms. Every collection change delivers the full list again.
func (that *RoomDirectory) Open(ctx context.Context, onRooms func([]entity.RoomSummary)) error {
	return that.rooms.ListRooms(ctx, func(rooms []*entity.Room) {
		onRooms(OpenRooms(rooms))
	})
}

func (that *RoomDirectory) Close() {
	that.rooms.StopListing()
}

// OpenRooms - waiting rooms with a free seat, in store order.
func OpenRooms(rooms []*entity.Room) []entity.RoomSummary {
	summaries := make([]entity.RoomSummary, 0, len(rooms))

	for _, room := range rooms {
		if room.IsOpen() {
			summaries = append(summaries, room.Summary())
		}
	}

	return summaries
}
