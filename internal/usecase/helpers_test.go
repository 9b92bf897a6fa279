package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/memory"
)

const (
	waitFor  = time.Second
	tick     = 5 * time.Millisecond
	roomCode = "123-45-678"
)

var (
	host  = entity.Player{ID: "host-id", Name: "Alice"}
	guest = entity.Player{ID: "guest-id", Name: "Bob"}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedCode() RoomManagerOption {
	return WithCodeGenerator(func() string { return roomCode })
}

type seat struct {
	player  entity.Player
	rooms   *RoomManager
	game    *GameManager
	deleted chan struct{}
	once    sync.Once
}

func newSeat(store *memory.RoomStore, player entity.Player) *seat {
	rooms := NewRoomManager(discardLogger(), store, fixedCode())

	return &seat{
		player:  player,
		rooms:   rooms,
		game:    NewGameManager(discardLogger(), store, rooms),
		deleted: make(chan struct{}),
	}
}

func (that *seat) attach(t *testing.T, code string) {
	t.Helper()

	err := that.game.Attach(context.Background(), code, func(*entity.Room) {}, func() {
		that.once.Do(func() { close(that.deleted) })
	})
	require.NoError(t, err)
}

func (that *seat) waitRoom(t *testing.T, match func(*entity.Room) bool) *entity.Room {
	t.Helper()

	var room *entity.Room
	require.Eventually(t, func() bool {
		room = that.game.State().Room
		return room != nil && match(room)
	}, waitFor, tick)

	return room
}

// table - a room with host as X and guest as O, both attached and playing.
type table struct {
	store *memory.RoomStore
	x, o  *seat
}

func newTable(t *testing.T) *table {
	t.Helper()

	ctx := context.Background()
	store := memory.NewRoomStore()
	x, o := newSeat(store, host), newSeat(store, guest)

	_, err := x.rooms.CreateRoom(ctx, host)
	require.NoError(t, err)

	_, err = o.rooms.JoinRoom(ctx, guest, roomCode)
	require.NoError(t, err)

	x.attach(t, roomCode)
	o.attach(t, roomCode)

	x.waitRoom(t, (*entity.Room).IsPlaying)
	o.waitRoom(t, (*entity.Room).IsPlaying)

	t.Cleanup(func() {
		x.rooms.Close()
		o.rooms.Close()
	})

	return &table{store: store, x: x, o: o}
}

func (that *table) seatOf(symbol entity.Mark) *seat {
	if symbol == entity.O {
		return that.o
	}
	return that.x
}

// play - makes the moves in order, each by whoever holds the turn, waiting for both
// snapshots to show the move before the next one.
func (that *table) play(t *testing.T, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		turn := that.x.waitRoom(t, func(*entity.Room) bool { return true }).Turn
		mover := that.seatOf(turn)
		mover.waitRoom(t, func(room *entity.Room) bool { return room.Turn == turn })

		applied, err := mover.game.MakeMove(context.Background(), mover.player, cell)
		require.NoError(t, err)
		require.True(t, applied, "move %d by %s", cell, turn)

		for _, s := range []*seat{that.x, that.o} {
			s.waitRoom(t, func(room *entity.Room) bool { return room.Board[cell] == turn })
		}
	}
}

type syncSummaries struct {
	mu        sync.Mutex
	summaries []entity.RoomSummary
	received  bool
}

func (that *syncSummaries) set(summaries []entity.RoomSummary) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.summaries = summaries
	that.received = true
}

func (that *syncSummaries) get() ([]entity.RoomSummary, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.summaries, that.received
}
