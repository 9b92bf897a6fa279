package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/feed"
)

// roomEvent is one delivery of a document subscription.
type roomEvent struct {
	room     *entity.Room
	revision int64
	deleted  bool
}

type roomSubscription struct {
	*feed.Dispatcher[roomEvent]

	pubsub   *redis.PubSub
	revision int64
}

// Watch - subscribes to the document, then delivers its current state (or onDeleted when it is
// missing), then every committed change in order. The subscription ends after onDeleted.
func (that *dbRoom) Watch(
	ctx context.Context, code string, onUpdate func(*entity.Room), onDeleted func(),
) (feed.Subscription, error) {
	log := that.logger.With("method", "Watch", "code", code)

	pubsub := that.client.Subscribe(ctx, that.key(code))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to room %s: %w", code, mapError(err))
	}

	sub := &roomSubscription{pubsub: pubsub}
	sub.Dispatcher = feed.NewDispatcher(func(event roomEvent) {
		if event.deleted {
			onDeleted()
			sub.Unsubscribe()
			return
		}

		// snapshots older than the one already delivered are dropped
		if event.revision <= sub.revision {
			return
		}
		sub.revision = event.revision

		onUpdate(event.room)
	})
	sub.OnStop(func() {
		if err := pubsub.Close(); err != nil {
			log.Debug("failed to close subscription", "error", err)
		}
	})

	room, revision, err := that.read(ctx, code)
	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		sub.Push(roomEvent{deleted: true})
	case err != nil:
		sub.Unsubscribe()
		return nil, err
	default:
		sub.Push(roomEvent{room: room, revision: revision})
	}

	go func() {
		for message := range pubsub.Channel() {
			var event change
			if err := json.Unmarshal([]byte(message.Payload), &event); err != nil {
				log.Warn("failed to unmarshal change", "error", err)
				continue
			}

			if event.Deleted {
				sub.Push(roomEvent{deleted: true})
				continue
			}

			room, err := entity.DecodeRoom(code, event.Document)
			if err != nil {
				log.Warn("failed to decode room", "error", err)
				continue
			}

			sub.Push(roomEvent{room: room, revision: event.Revision})
		}
	}()

	return sub, nil
}

// WatchAll - delivers the whole rooms collection initially and after every change.
func (that *dbRoom) WatchAll(ctx context.Context, onSnapshot func([]*entity.Room)) (feed.Subscription, error) {
	log := that.logger.With("method", "WatchAll")

	pubsub := that.client.Subscribe(ctx, that.collectionChannel())
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to rooms: %w", mapError(err))
	}

	// the listing context outlives the caller's request context
	listCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	dispatcher := feed.NewDispatcher(func(struct{}) {
		rooms, err := that.List(listCtx)
		if err != nil {
			if listCtx.Err() == nil {
				log.Error("failed to list rooms", "error", err)
			}
			return
		}

		onSnapshot(rooms)
	})
	dispatcher.OnStop(func() {
		cancel()
		if err := pubsub.Close(); err != nil {
			log.Debug("failed to close subscription", "error", err)
		}
	})

	dispatcher.Push(struct{}{})

	go func() {
		for range pubsub.Channel() {
			dispatcher.Push(struct{}{})
		}
	}()

	return dispatcher, nil
}
