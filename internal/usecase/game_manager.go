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
)

const teardownTimeout = 3 * time.Second

// ClientState is the room a client is attached to and the last snapshot it received.
type ClientState struct {
	Code string
	Room *entity.Room
}

// GameManager drives moves and rematches of the attached room. Its snapshot is only a
// mirror of the store and every change goes through the repository.
type GameManager struct {
	logger *slog.Logger
	repo   roomRepoDep
	rooms  *RoomManager

	mu    sync.RWMutex
	state ClientState

	// held while a subscription callback runs
	notifyMu sync.Mutex
}

func NewGameManager(logger *slog.Logger, repo roomRepoDep, rooms *RoomManager) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),
		repo:   repo,
		rooms:  rooms,
	}
}

// Attach - subscribes to the room and mirrors every snapshot. When the room is deleted the
// client state is cleared before onDeleted runs.
func (that *GameManager) Attach(ctx context.Context, code string, onUpdate func(*entity.Room), onDeleted func()) error {
	that.mu.Lock()
	that.state = ClientState{Code: code}
	that.mu.Unlock()

	err := that.rooms.Subscribe(ctx, code,
		func(room *entity.Room) {
			that.notifyMu.Lock()
			defer that.notifyMu.Unlock()

			that.mu.Lock()
			if that.state.Code != code {
				that.mu.Unlock()
				return
			}
			that.state.Room = room
			that.mu.Unlock()

			onUpdate(room)
		},
		func() {
			that.notifyMu.Lock()
			defer that.notifyMu.Unlock()

			if !that.detach(code) {
				return
			}

			that.logger.Info("room deleted", "code", code)
			onDeleted()
		},
	)
	if err != nil {
		that.detach(code)
		return err
	}

	return nil
}

// detach - clears the state if the client is still attached to the code.
func (that *GameManager) detach(code string) bool {
	that.mu.Lock()
	if that.state.Code != code {
		that.mu.Unlock()
		return false
	}
	that.state = ClientState{}
	that.mu.Unlock()

	that.rooms.Unsubscribe()

	return true
}

// settle - waits for a running subscription callback. Must not be called from one.
func (that *GameManager) settle() {
	that.notifyMu.Lock()
	that.notifyMu.Unlock() //nolint: staticcheck
}

func (that *GameManager) State() ClientState {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.state
}

// MakeMove - places the player's mark on the snapshot board and writes the result in one
// update. Moves out of turn, on an occupied cell or outside a running game are ignored.
func (that *GameManager) MakeMove(ctx context.Context, player entity.Player, index int) (bool, error) {
	log := that.logger.With("method", "MakeMove")

	state := that.State()
	room := state.Room
	if room == nil || !room.IsPlaying() {
		return false, nil
	}

	symbol := room.SymbolOf(player.ID)
	if !symbol.IsSymbol() || room.Turn != symbol {
		return false, nil
	}

	board, err := room.Board.ApplyMove(index, symbol)
	if err != nil {
		log.Debug("move ignored", "index", index, "error", err)
		return false, nil
	}

	outcome := board.DetectOutcome()

	fields := entity.Fields{
		entity.FieldBoard:               board,
		entity.FieldTurn:                symbol.Opponent(),
		entity.FieldStatus:              entity.StatusPlaying,
		entity.FieldWinner:              outcome,
		entity.FieldPlayerXWantsRematch: false,
		entity.FieldPlayerOWantsRematch: false,
	}

	if outcome != entity.Empty {
		fields[entity.FieldStatus] = entity.StatusFinished
		fields[entity.FieldLastStarter] = board.Opener(symbol)

		if outcome.IsSymbol() {
			fields[entity.WinsField(outcome)] = room.WinsOf(outcome) + 1
		}

		log.Info("game finished", "code", state.Code, "winner", outcome)
	}

	if err = that.repo.Update(ctx, state.Code, fields); err != nil {
		return false, fmt.Errorf("failed to make move: %w", err)
	}

	return true, nil
}

// RequestRematch - sets the player's rematch flag. The client that observes both flags
// set resets the board for a new game opened by the other side.
func (that *GameManager) RequestRematch(ctx context.Context, player entity.Player) error {
	log := that.logger.With("method", "RequestRematch")

	code := that.State().Code
	if code == "" {
		return apperror.ErrNotInRoom
	}

	room, err := that.repo.GetByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	symbol := room.SymbolOf(player.ID)
	if !symbol.IsSymbol() {
		return apperror.ErrNotInRoom
	}

	if !room.IsFinished() {
		log.Debug("rematch ignored, game is not finished", "code", code)
		return nil
	}

	if err = that.repo.Update(ctx, code, entity.Fields{entity.RematchField(symbol): true}); err != nil {
		return fmt.Errorf("failed to request rematch: %w", err)
	}

	room, err = that.repo.GetByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if !room.IsFinished() || !room.BothWantRematch() {
		return nil
	}

	starter := room.LastStarter.Opponent()
	fields := newGameFields(starter)
	fields[entity.FieldLastStarter] = starter

	if err = that.repo.Update(ctx, code, fields); err != nil {
		return fmt.Errorf("failed to start rematch: %w", err)
	}

	log.Info("rematch started", "code", code, "starter", starter)

	return nil
}

// LeaveGame - leaves the attached room and always clears the client state. No callback of
// the room runs once it returns.
func (that *GameManager) LeaveGame(ctx context.Context, player entity.Player) error {
	code := that.State().Code
	if code == "" {
		return nil
	}

	that.detach(code)
	that.settle()

	return that.rooms.LeaveRoom(ctx, player, code)
}

// Close - teardown on disconnect: a room the player holds alone is deleted. The room is
// read from the store, so a snapshot that has not arrived yet does not matter. Errors are
// only logged.
func (that *GameManager) Close(ctx context.Context, player entity.Player) {
	log := that.logger.With("method", "Close")

	code := that.State().Code
	if code == "" {
		return
	}

	that.detach(code)
	that.settle()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), teardownTimeout)
	defer cancel()

	room, err := that.repo.GetByCode(ctx, code)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		return
	}
	if err != nil {
		log.Warn("failed to get room on close", "code", code, "error", err)
		return
	}

	if !room.IsSoleOccupant(player.ID) {
		return
	}

	if err = that.repo.DeleteByCode(ctx, code); err != nil {
		log.Warn("failed to delete room on close", "code", code, "error", err)
		return
	}

	log.Info("room deleted on close", "code", code)
}
