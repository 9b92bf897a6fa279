package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/feed"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/roomcode"
)

type roomRepoDep interface {
	Create(ctx context.Context, room *entity.Room) error
	Update(ctx context.Context, code string, fields entity.Fields) error
	GetByCode(ctx context.Context, code string) (*entity.Room, error)
	DeleteByCode(ctx context.Context, code string) error
	Exists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]*entity.Room, error)

	Watch(ctx context.Context, code string, onUpdate func(*entity.Room), onDeleted func()) (feed.Subscription, error)
	WatchAll(ctx context.Context, onSnapshot func([]*entity.Room)) (feed.Subscription, error)
}

// RoomManager owns the room document lifecycle of one client. It keeps at most one live
// document subscription and one live collection subscription.
type RoomManager struct {
	logger *slog.Logger
	repo   roomRepoDep

	newCode func() string
	now     func() time.Time

	mu       sync.Mutex
	roomSub  feed.Subscription
	roomsSub feed.Subscription
}

type RoomManagerOption func(*RoomManager)

// WithCodeGenerator - replaces the random room code source.
func WithCodeGenerator(generate func() string) RoomManagerOption {
	return func(manager *RoomManager) {
		manager.newCode = generate
	}
}

func WithClock(now func() time.Time) RoomManagerOption {
	return func(manager *RoomManager) {
		manager.now = now
	}
}

func NewRoomManager(logger *slog.Logger, repo roomRepoDep, opts ...RoomManagerOption) *RoomManager {
	manager := &RoomManager{
		logger:  logger.With("component", "room_manager"),
		repo:    repo,
		newCode: roomcode.Generate,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// CreateRoom - writes a new waiting room with the player as X. Code collisions are not checked.
func (that *RoomManager) CreateRoom(ctx context.Context, player entity.Player) (*entity.Room, error) {
	log := that.logger.With("method", "CreateRoom")

	if player.ID == "" {
		return nil, apperror.ErrNotAuthenticated
	}

	room := entity.NewRoom(that.newCode(), player, that.now())

	log.Info("creating room", "code", room.Code)

	if err := that.repo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, nil
}

// Seat is the outcome of a join.
type Seat struct {
	Room     *entity.Room
	Symbol   entity.Mark
	Rejoined bool
}

// JoinRoom - occupies a free slot, repairs a missing name or reconnects. This is a plain
// read-then-update: two joiners racing for the same slot both succeed and the later write wins.
func (that *RoomManager) JoinRoom(ctx context.Context, player entity.Player, code string) (*Seat, error) {
	log := that.logger.With("method", "JoinRoom")

	if player.ID == "" {
		return nil, apperror.ErrNotAuthenticated
	}

	code = roomcode.Normalize(code)
	if !roomcode.Validate(code) {
		return nil, apperror.ErrInvalidCodeFormat
	}

	log.Info("joining room", "code", code)

	room, err := that.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	symbol := room.SymbolOf(player.ID)
	rejoined := symbol != entity.Empty

	var fields entity.Fields
	switch {
	case symbol == entity.Empty && room.PlayerO == "" && room.PlayerX != "":
		symbol = entity.O
		fields = joinFields(room, symbol, player)
		log.Info("joined as player O", "code", code)
	case symbol == entity.Empty && room.PlayerX == "":
		symbol = entity.X
		fields = joinFields(room, symbol, player)
		log.Info("joined vacated seat as player X", "code", code)
	case symbol == entity.Empty:
		return nil, apperror.ErrRoomFull
	case player.Name != "" && nameOf(room, symbol) == "":
		fields = entity.Fields{entity.NameField(symbol): entity.NullString(player.Name)}
		log.Info("rejoined, name repaired", "code", code, "symbol", symbol)
	default:
		log.Info("rejoined", "code", code, "symbol", symbol)
		return &Seat{Room: room, Symbol: symbol, Rejoined: true}, nil
	}

	if err = that.repo.Update(ctx, code, fields); err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	joined, err := applyFields(room, fields)
	if err != nil {
		return nil, err
	}

	return &Seat{Room: joined, Symbol: symbol, Rejoined: rejoined}, nil
}

// joinFields - taking the second seat starts a fresh game opened by the opposite of lastStarter.
func joinFields(room *entity.Room, symbol entity.Mark, player entity.Player) entity.Fields {
	fields := entity.SlotFields(symbol, player)

	opponent := room.PlayerO
	if symbol == entity.O {
		opponent = room.PlayerX
	}

	if opponent == "" {
		fields[entity.FieldStatus] = entity.StatusWaiting
		return fields
	}

	for name, value := range newGameFields(room.LastStarter.Opponent()) {
		fields[name] = value
	}

	return fields
}

func newGameFields(starter entity.Mark) entity.Fields {
	return entity.Fields{
		entity.FieldBoard:               entity.Board{},
		entity.FieldTurn:                starter,
		entity.FieldStatus:              entity.StatusPlaying,
		entity.FieldWinner:              entity.Empty,
		entity.FieldPlayerXWantsRematch: false,
		entity.FieldPlayerOWantsRematch: false,
	}
}

func nameOf(room *entity.Room, symbol entity.Mark) entity.NullString {
	if symbol == entity.O {
		return room.PlayerOName
	}
	return room.PlayerXName
}

// Subscribe - replaces the live room subscription of this client.
func (that *RoomManager) Subscribe(ctx context.Context, code string, onUpdate func(*entity.Room), onDeleted func()) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.roomSub != nil {
		that.roomSub.Unsubscribe()
		that.roomSub = nil
	}

	sub, err := that.repo.Watch(ctx, code, onUpdate, onDeleted)
	if err != nil {
		return fmt.Errorf("failed to subscribe to room: %w", err)
	}

	that.roomSub = sub

	return nil
}

func (that *RoomManager) Unsubscribe() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.roomSub != nil {
		that.roomSub.Unsubscribe()
		that.roomSub = nil
	}
}

// LeaveRoom - deletes the room when the player is its only occupant, otherwise vacates the
// player's seat and puts the room back to waiting. Leaving a missing room is a no-op.
func (that *RoomManager) LeaveRoom(ctx context.Context, player entity.Player, code string) error {
	log := that.logger.With("method", "LeaveRoom", "code", code)

	room, err := that.repo.GetByCode(ctx, code)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		log.Info("room already gone")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	symbol := room.SymbolOf(player.ID)
	if symbol == entity.Empty {
		log.Info("player is not seated in the room")
		return nil
	}

	if room.IsSoleOccupant(player.ID) {
		if err = that.repo.DeleteByCode(ctx, code); err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}

		log.Info("room deleted")

		return nil
	}

	fields := entity.SlotFields(symbol, entity.Player{})
	fields[entity.FieldStatus] = entity.StatusWaiting
	fields[entity.FieldWinner] = entity.Empty
	fields[entity.FieldPlayerXWantsRematch] = false
	fields[entity.FieldPlayerOWantsRematch] = false

	if err = that.repo.Update(ctx, code, fields); err != nil {
		return fmt.Errorf("failed to vacate seat: %w", err)
	}

	log.Info("seat vacated", "symbol", symbol)

	return nil
}

// ListRooms - replaces the live collection subscription of this client.
func (that *RoomManager) ListRooms(ctx context.Context, onSnapshot func([]*entity.Room)) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.roomsSub != nil {
		that.roomsSub.Unsubscribe()
		that.roomsSub = nil
	}

	sub, err := that.repo.WatchAll(ctx, onSnapshot)
	if err != nil {
		return fmt.Errorf("failed to listen for rooms: %w", err)
	}

	that.roomsSub = sub

	return nil
}

func (that *RoomManager) StopListing() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.roomsSub != nil {
		that.roomsSub.Unsubscribe()
		that.roomsSub = nil
	}
}

func (that *RoomManager) Close() {
	that.Unsubscribe()
	that.StopListing()
}

// applyFields - local view of the room after a partial update.
func applyFields(room *entity.Room, fields entity.Fields) (*entity.Room, error) {
	document, err := entity.EncodeRoom(room)
	if err != nil {
		return nil, err
	}

	merged, err := fields.MergeInto(document)
	if err != nil {
		return nil, err
	}

	return entity.DecodeRoom(room.Code, merged)
}
