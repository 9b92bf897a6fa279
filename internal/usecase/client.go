package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/identity"
)

// Listener receives everything a client surface renders.
type Listener interface {
	RoomChanged(view RoomView)
	RoomDeleted()
	RoomsListed(rooms []entity.RoomSummary)
	Notify(message string)
	Failed(message string)
}

// RoomView is a room snapshot as seen by one player.
type RoomView struct {
	Room     *entity.Room
	Symbol   entity.Mark
	Headline string
	Rematch  entity.RematchState
}

func NewRoomView(room *entity.Room, playerID string) RoomView {
	symbol := room.SymbolOf(playerID)

	return RoomView{
		Room:     room,
		Symbol:   symbol,
		Headline: room.StatusLine(symbol),
		Rematch:  room.RematchFor(symbol),
	}
}

// Client is the command surface of one connected player. Failures are reported to the
// listener as user messages and returned to the caller.
type Client struct {
	logger    *slog.Logger
	session   *identity.Session
	rooms     *RoomManager
	game      *GameManager
	directory *RoomDirectory
	listener  Listener
}

func NewClient(logger *slog.Logger, session *identity.Session, repo roomRepoDep, listener Listener, opts ...RoomManagerOption) *Client {
	rooms := NewRoomManager(logger, repo, opts...)

	return &Client{
		logger:    logger.With("component", "client"),
		session:   session,
		rooms:     rooms,
		game:      NewGameManager(logger, repo, rooms),
		directory: NewRoomDirectory(rooms),
		listener:  listener,
	}
}

func (that *Client) SignIn(ctx context.Context) error {
	if err := that.session.SignIn(ctx); err != nil {
		return that.fail("SignIn", err)
	}

	return nil
}

func (that *Client) SetName(name string) error {
	if err := that.session.SetDisplayName(name); err != nil {
		return that.fail("SetName", err)
	}

	that.listener.Notify(fmt.Sprintf("Welcome, %s!", that.session.DisplayName()))

	return nil
}

func (that *Client) CreateRoom(ctx context.Context) (string, error) {
	player, err := that.session.Player()
	if err != nil {
		return "", that.fail("CreateRoom", err)
	}

	room, err := that.rooms.CreateRoom(ctx, player)
	if err != nil {
		return "", that.fail("CreateRoom", err)
	}

	that.directory.Close()
	that.leaveOther(ctx, player, room.Code)

	if err = that.attach(ctx, room.Code); err != nil {
		return "", that.fail("CreateRoom", err)
	}

	that.listener.Notify("Room created: " + room.Code)

	return room.Code, nil
}

func (that *Client) JoinRoom(ctx context.Context, code string) error {
	player, err := that.session.Player()
	if err != nil {
		return that.fail("JoinRoom", err)
	}

	seat, err := that.rooms.JoinRoom(ctx, player, code)
	if err != nil {
		return that.fail("JoinRoom", err)
	}

	that.directory.Close()
	that.leaveOther(ctx, player, seat.Room.Code)

	if that.game.State().Code != seat.Room.Code {
		if err = that.attach(ctx, seat.Room.Code); err != nil {
			return that.fail("JoinRoom", err)
		}
	}

	if seat.Rejoined {
		that.listener.Notify(fmt.Sprintf("Rejoined as Player %s", seat.Symbol))
		return nil
	}

	that.listener.Notify(fmt.Sprintf("Joined as Player %s", seat.Symbol))

	return nil
}

// leaveOther - a client sits in one room at a time, so entering a room leaves the previous one.
func (that *Client) leaveOther(ctx context.Context, player entity.Player, code string) {
	previous := that.game.State().Code
	if previous == "" || previous == code {
		return
	}

	if err := that.game.LeaveGame(ctx, player); err != nil {
		that.logger.Warn("failed to leave previous room", "code", previous, "error", err)
		return
	}

	that.logger.Info("left previous room", "code", previous, "entered", code)
}

func (that *Client) attach(ctx context.Context, code string) error {
	return that.game.Attach(ctx, code,
		func(room *entity.Room) {
			player, err := that.session.Player()
			if err != nil {
				return
			}
			that.listener.RoomChanged(NewRoomView(room, player.ID))
		},
		func() {
			that.listener.Notify("Room was deleted")
			that.listener.RoomDeleted()
		},
	)
}

// MakeMove - index is the board cell, 0 to 8. Ignored moves are not errors.
func (that *Client) MakeMove(ctx context.Context, index int) error {
	player, err := that.session.Player()
	if err != nil {
		return that.fail("MakeMove", err)
	}

	if _, err = that.game.MakeMove(ctx, player, index); err != nil {
		return that.fail("MakeMove", err)
	}

	return nil
}

func (that *Client) RequestRematch(ctx context.Context) error {
	player, err := that.session.Player()
	if err != nil {
		return that.fail("RequestRematch", err)
	}

	if err = that.game.RequestRematch(ctx, player); err != nil {
		return that.fail("RequestRematch", err)
	}

	return nil
}

func (that *Client) LeaveGame(ctx context.Context) error {
	player, err := that.session.Player()
	if err != nil {
		return that.fail("LeaveGame", err)
	}

	if err = that.game.LeaveGame(ctx, player); err != nil {
		return that.fail("LeaveGame", err)
	}

	that.listener.Notify("Left the room")

	return nil
}

// ListRooms - opens the directory. It stays live until StopListing or a room is entered.
func (that *Client) ListRooms(ctx context.Context) error {
	if err := that.directory.Open(ctx, that.listener.RoomsListed); err != nil {
		return that.fail("ListRooms", err)
	}

	return nil
}

func (that *Client) StopListing() {
	that.directory.Close()
}

func (that *Client) State() ClientState {
	return that.game.State()
}

func (that *Client) Player() (entity.Player, error) {
	return that.session.Player()
}

// Close - releases every subscription and deletes a room the player holds alone.
func (that *Client) Close(ctx context.Context) {
	player, err := that.session.Player()
	if err == nil {
		that.game.Close(ctx, player)
	}

	that.rooms.Close()
}

func (that *Client) fail(method string, err error) error {
	that.logger.Error("operation failed", "method", method, "error", err)
	that.listener.Failed(apperror.UserMessage(err))

	return err
}
