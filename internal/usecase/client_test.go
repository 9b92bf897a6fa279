package usecase

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/identity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/memory"
)

type recorder struct {
	mu       sync.Mutex
	views    []RoomView
	deleted  int
	rooms    [][]entity.RoomSummary
	notices  []string
	failures []string
}

func (that *recorder) RoomChanged(view RoomView) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.views = append(that.views, view)
}

func (that *recorder) RoomDeleted() {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.deleted++
}

func (that *recorder) RoomsListed(rooms []entity.RoomSummary) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.rooms = append(that.rooms, rooms)
}

func (that *recorder) Notify(message string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.notices = append(that.notices, message)
}

func (that *recorder) Failed(message string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.failures = append(that.failures, message)
}

func (that *recorder) lastView() (RoomView, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.views) == 0 {
		return RoomView{}, false
	}
	return that.views[len(that.views)-1], true
}

func (that *recorder) hasNotice(message string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()
	return slices.Contains(that.notices, message)
}

func (that *recorder) failureList() []string {
	that.mu.Lock()
	defer that.mu.Unlock()
	return slices.Clone(that.failures)
}

func newTestClient(
	t *testing.T, store *memory.RoomStore, name string, signIn bool, opts ...RoomManagerOption,
) (*Client, *recorder) {
	t.Helper()

	listener := &recorder{}
	session := identity.NewSession(discardLogger(), identity.NewAnonymousProvider())
	client := NewClient(discardLogger(), session, store, listener, append([]RoomManagerOption{fixedCode()}, opts...)...)

	if signIn {
		require.NoError(t, client.SignIn(context.Background()))
	}
	if name != "" {
		require.NoError(t, client.SetName(name))
	}

	t.Cleanup(func() { client.Close(context.Background()) })

	return client, listener
}

// codes - hands out the given room codes in order.
func codes(list ...string) RoomManagerOption {
	next := 0
	return WithCodeGenerator(func() string {
		code := list[next%len(list)]
		next++
		return code
	})
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Create before sign in asks to wait for login", func(t *testing.T) {
		// Given: a client that has not signed in
		client, listener := newTestClient(t, memory.NewRoomStore(), "", false)

		// When: creating a room
		_, err := client.CreateRoom(ctx)

		// Then: the failure is reported as a user message
		require.Error(t, err)
		assert.Equal(t, []string{"Wait for login..."}, listener.failureList())
	})

	t.Run("Malformed code is reported", func(t *testing.T) {
		// Given: a signed in client
		client, listener := newTestClient(t, memory.NewRoomStore(), "Bob", true)

		// When: joining with a bad code
		err := client.JoinRoom(ctx, "12-345")

		// Then: the format hint is shown
		require.Error(t, err)
		assert.Equal(t, []string{"Invalid code format. Use format: XXX-XX-XXX"}, listener.failureList())
	})

	t.Run("Empty name is rejected", func(t *testing.T) {
		// Given: a signed in client
		client, listener := newTestClient(t, memory.NewRoomStore(), "", true)

		// When: setting a blank name
		err := client.SetName("   ")

		// Then: the user is asked for a name
		require.Error(t, err)
		assert.Equal(t, []string{"Please enter a name."}, listener.failureList())
	})

	t.Run("Two clients play through the facade", func(t *testing.T) {
		// Given: a host and a guest on one store, the guest browsing the directory
		store := memory.NewRoomStore()
		alice, aliceEvents := newTestClient(t, store, "Alice", true)
		bob, bobEvents := newTestClient(t, store, "Bob", true)

		require.NoError(t, bob.ListRooms(ctx))

		// When: Alice creates a room
		code, err := alice.CreateRoom(ctx)
		require.NoError(t, err)

		// Then: Alice waits and Bob sees the room listed
		require.Eventually(t, func() bool {
			view, ok := aliceEvents.lastView()
			return ok && view.Headline == "Waiting for opponent..."
		}, waitFor, tick)
		assert.True(t, aliceEvents.hasNotice("Room created: "+code))

		require.Eventually(t, func() bool {
			bobEvents.mu.Lock()
			defer bobEvents.mu.Unlock()
			if len(bobEvents.rooms) == 0 {
				return false
			}
			last := bobEvents.rooms[len(bobEvents.rooms)-1]
			return len(last) == 1 && last[0].HostName == "Alice"
		}, waitFor, tick)

		// When: Bob joins
		require.NoError(t, bob.JoinRoom(ctx, code))

		// Then: both see the game from their seat
		assert.True(t, bobEvents.hasNotice("Joined as Player O"))

		require.Eventually(t, func() bool {
			view, ok := aliceEvents.lastView()
			return ok && view.Headline == "Your Turn" && view.Symbol == entity.X
		}, waitFor, tick)
		require.Eventually(t, func() bool {
			view, ok := bobEvents.lastView()
			return ok && view.Headline == "Opponent's Turn" && view.Symbol == entity.O
		}, waitFor, tick)

		// When: Alice moves
		require.NoError(t, alice.MakeMove(ctx, 4))

		// Then: Bob holds the turn
		require.Eventually(t, func() bool {
			view, ok := bobEvents.lastView()
			return ok && view.Headline == "Your Turn" && view.Room.Board[4] == entity.X
		}, waitFor, tick)

		// When: Alice leaves and Bob leaves after her
		require.NoError(t, alice.LeaveGame(ctx))
		require.Eventually(t, func() bool {
			view, ok := bobEvents.lastView()
			return ok && view.Room.IsWaiting()
		}, waitFor, tick)
		require.NoError(t, bob.LeaveGame(ctx))

		// Then: the room is gone
		exists, err := store.Exists(ctx, code)
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Empty(t, bob.State().Code)
	})

	t.Run("Rejoin is announced", func(t *testing.T) {
		// Given: a host with a room
		store := memory.NewRoomStore()
		alice, aliceEvents := newTestClient(t, store, "Alice", true)
		code, err := alice.CreateRoom(ctx)
		require.NoError(t, err)

		// When: the host joins the same code
		require.NoError(t, alice.JoinRoom(ctx, code))

		// Then: it is a rejoin as X
		assert.True(t, aliceEvents.hasNotice("Rejoined as Player X"))
	})
	t.Run("Creating a second room removes the first", func(t *testing.T) {
		// Given: a host alone in a room
		store := memory.NewRoomStore()
		alice, aliceEvents := newTestClient(t, store, "Alice", true, codes("111-11-111", "222-22-222"))
		first, err := alice.CreateRoom(ctx)
		require.NoError(t, err)

		// When: the host creates another room
		second, err := alice.CreateRoom(ctx)
		require.NoError(t, err)

		// Then: the first room is gone and the client sits in the second one
		exists, err := store.Exists(ctx, first)
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Equal(t, second, alice.State().Code)

		rooms, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, second, rooms[0].Code)

		aliceEvents.mu.Lock()
		assert.Zero(t, aliceEvents.deleted)
		aliceEvents.mu.Unlock()

		// When: the client goes away right after
		alice.Close(ctx)

		// Then: the second room is removed as well
		exists, err = store.Exists(ctx, second)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Joining another room vacates the seat in the shared one", func(t *testing.T) {
		// Given: Bob playing Alice while Carol hosts a second room
		store := memory.NewRoomStore()
		alice, _ := newTestClient(t, store, "Alice", true, codes("111-11-111"))
		carol, _ := newTestClient(t, store, "Carol", true, codes("222-22-222"))
		bob, bobEvents := newTestClient(t, store, "Bob", true)

		shared, err := alice.CreateRoom(ctx)
		require.NoError(t, err)
		require.NoError(t, bob.JoinRoom(ctx, shared))

		other, err := carol.CreateRoom(ctx)
		require.NoError(t, err)

		// When: Bob joins Carol's room
		require.NoError(t, bob.JoinRoom(ctx, other))

		// Then: Bob's old seat is free again and Alice waits for a new opponent
		room, err := store.GetByCode(ctx, shared)
		require.NoError(t, err)
		assert.Empty(t, room.PlayerO)
		assert.Equal(t, entity.StatusWaiting, room.Status)
		assert.True(t, room.IsOpen())

		assert.Equal(t, other, bob.State().Code)
		require.Eventually(t, func() bool {
			view, ok := bobEvents.lastView()
			return ok && view.Room.Code == other && view.Symbol == entity.O
		}, waitFor, tick)
	})
}
