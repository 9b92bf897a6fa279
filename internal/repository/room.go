package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/feed"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/roomcode"
)

const (
	fieldDocument = "doc"
	fieldRevision = "rev"

	maxUpdateAttempts = 10
)

// RoomRepository is the shared state store holding room documents.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	Update(ctx context.Context, code string, fields entity.Fields) error
	GetByCode(ctx context.Context, code string) (*entity.Room, error)
	DeleteByCode(ctx context.Context, code string) error
	Exists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]*entity.Room, error)

	Watch(ctx context.Context, code string, onUpdate func(*entity.Room), onDeleted func()) (feed.Subscription, error)
	WatchAll(ctx context.Context, onSnapshot func([]*entity.Room)) (feed.Subscription, error)
}

type dbRoom struct {
	logger *slog.Logger
	client *redis.Client
	prefix string
}

// NewRoomRepository - rooms are namespaced by the tenant id: artifacts:<appID>:rooms:room_<code>.
func NewRoomRepository(logger *slog.Logger, client *redis.Client, appID string) RoomRepository {
	return &dbRoom{
		logger: logger.With("component", "room_repository"),
		client: client,
		prefix: fmt.Sprintf("artifacts:%s:rooms:", appID),
	}
}

// change is published on the document channel and on the collection channel.
type change struct {
	ID       string          `json:"id"`
	Revision int64           `json:"rev"`
	Deleted  bool            `json:"deleted"`
	Document json.RawMessage `json:"doc,omitempty"`
}

func (that *dbRoom) key(code string) string {
	return that.prefix + roomcode.DocumentID(code)
}

func (that *dbRoom) indexKey() string {
	return that.prefix + "index"
}

func (that *dbRoom) collectionChannel() string {
	return that.prefix + "changes"
}

func (that *dbRoom) Create(ctx context.Context, room *entity.Room) error {
	document, err := entity.EncodeRoom(room)
	if err != nil {
		return err
	}

	key := that.key(room.Code)
	event, err := json.Marshal(change{ID: roomcode.DocumentID(room.Code), Revision: 1, Document: document})
	if err != nil {
		return fmt.Errorf("could not marshal change: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fieldDocument, document, fieldRevision, 1)
		pipe.SAdd(ctx, that.indexKey(), roomcode.DocumentID(room.Code))
		pipe.Publish(ctx, key, event)
		pipe.Publish(ctx, that.collectionChannel(), event)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set room: %w", mapError(err))
	}

	return nil
}

// Update - merges the named fields into the stored document. The read-merge-write of one document
// commits atomically under WATCH; callers' own read-then-update sequences stay unguarded.
func (that *dbRoom) Update(ctx context.Context, code string, fields entity.Fields) error {
	key := that.key(code)

	txf := func(tx *redis.Tx) error {
		values, err := tx.HMGet(ctx, key, fieldDocument, fieldRevision).Result()
		if err != nil {
			return err
		}

		document, revision, ok := parseStored(values)
		if !ok {
			return apperror.ErrRoomNotFound
		}

		merged, err := fields.MergeInto(document)
		if err != nil {
			return err
		}

		revision++
		event, err := json.Marshal(change{ID: roomcode.DocumentID(code), Revision: revision, Document: merged})
		if err != nil {
			return fmt.Errorf("could not marshal change: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fieldDocument, merged, fieldRevision, revision)
			pipe.Publish(ctx, key, event)
			pipe.Publish(ctx, that.collectionChannel(), event)
			return nil
		})

		return err
	}

	for range maxUpdateAttempts {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to update room %s: %w", code, mapError(err))
		}

		return nil
	}

	return fmt.Errorf("failed to update room %s: %w: too many conflicting writers", code, apperror.ErrStoreUnavailable)
}

func (that *dbRoom) GetByCode(ctx context.Context, code string) (*entity.Room, error) {
	room, _, err := that.read(ctx, code)
	return room, err
}

func (that *dbRoom) read(ctx context.Context, code string) (*entity.Room, int64, error) {
	values, err := that.client.HMGet(ctx, that.key(code), fieldDocument, fieldRevision).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get room %s: %w", code, mapError(err))
	}

	document, revision, ok := parseStored(values)
	if !ok {
		return nil, 0, apperror.ErrRoomNotFound
	}

	room, err := entity.DecodeRoom(code, document)
	if err != nil {
		return nil, 0, err
	}

	return room, revision, nil
}

// DeleteByCode - deleting a missing room is not an error.
func (that *dbRoom) DeleteByCode(ctx context.Context, code string) error {
	key := that.key(code)
	event, err := json.Marshal(change{ID: roomcode.DocumentID(code), Deleted: true})
	if err != nil {
		return fmt.Errorf("could not marshal change: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, that.indexKey(), roomcode.DocumentID(code))
		pipe.Publish(ctx, key, event)
		pipe.Publish(ctx, that.collectionChannel(), event)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete room %s: %w", code, mapError(err))
	}

	return nil
}

func (that *dbRoom) Exists(ctx context.Context, code string) (bool, error) {
	count, err := that.client.Exists(ctx, that.key(code)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check room %s: %w", code, mapError(err))
	}

	return count > 0, nil
}

func (that *dbRoom) List(ctx context.Context) ([]*entity.Room, error) {
	log := that.logger.With("method", "List")

	ids, err := that.client.SMembers(ctx, that.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", mapError(err))
	}

	codes := make([]string, 0, len(ids))
	commands := make([]*redis.SliceCmd, 0, len(ids))

	_, err = that.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			code, ok := roomcode.FromDocumentID(id)
			if !ok {
				continue
			}
			codes = append(codes, code)
			commands = append(commands, pipe.HMGet(ctx, that.key(code), fieldDocument, fieldRevision))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", mapError(err))
	}

	rooms := make([]*entity.Room, 0, len(codes))
	for i, cmd := range commands {
		document, _, ok := parseStored(cmd.Val())
		if !ok {
			// index entry outlived its document
			continue
		}

		room, err := entity.DecodeRoom(codes[i], document)
		if err != nil {
			log.Warn("skipping undecodable room", "code", codes[i], "error", err)
			continue
		}

		rooms = append(rooms, room)
	}

	return rooms, nil
}

func parseStored(values []any) ([]byte, int64, bool) {
	if len(values) != 2 || values[0] == nil {
		return nil, 0, false
	}

	document, ok := values[0].(string)
	if !ok {
		return nil, 0, false
	}

	var revision int64
	if raw, ok := values[1].(string); ok {
		revision, _ = strconv.ParseInt(raw, 10, 64)
	}

	return []byte(document), revision, true
}

// mapError - converts redis failures into the store error taxonomy.
func mapError(err error) error {
	if err == nil || errors.Is(err, apperror.ErrRoomNotFound) {
		return err
	}

	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		message := redisErr.Error()
		for _, prefix := range []string{"NOPERM", "NOAUTH", "WRONGPASS"} {
			if strings.HasPrefix(message, prefix) {
				return fmt.Errorf("%w: %s", apperror.ErrPermissionDenied, message)
			}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, redis.ErrClosed) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", apperror.ErrStoreUnavailable, err)
	}

	return err
}
