package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/feed"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
)

var _ repository.RoomRepository = (*RoomStore)(nil)

// RoomStore keeps room documents in process memory with the same contract as the redis repository.
// Change events are queued while the store lock is held, so every subscriber sees commit order.
type RoomStore struct {
	mu         sync.Mutex
	documents  map[string][]byte
	watchers   map[string]map[*feed.Dispatcher[docEvent]]struct{}
	collection map[*feed.Dispatcher[[]*entity.Room]]struct{}
}

type docEvent struct {
	room    *entity.Room
	deleted bool
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		documents:  make(map[string][]byte),
		watchers:   make(map[string]map[*feed.Dispatcher[docEvent]]struct{}),
		collection: make(map[*feed.Dispatcher[[]*entity.Room]]struct{}),
	}
}

func (that *RoomStore) Create(_ context.Context, room *entity.Room) error {
	document, err := entity.EncodeRoom(room)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.documents[room.Code] = document
	that.publishLocked(room.Code, document)

	return nil
}

func (that *RoomStore) Update(_ context.Context, code string, fields entity.Fields) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	document, ok := that.documents[code]
	if !ok {
		return apperror.ErrRoomNotFound
	}

	merged, err := fields.MergeInto(document)
	if err != nil {
		return err
	}

	that.documents[code] = merged
	that.publishLocked(code, merged)

	return nil
}

func (that *RoomStore) GetByCode(_ context.Context, code string) (*entity.Room, error) {
	that.mu.Lock()
	document, ok := that.documents[code]
	that.mu.Unlock()

	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return entity.DecodeRoom(code, document)
}

func (that *RoomStore) DeleteByCode(_ context.Context, code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.documents[code]; !ok {
		return nil
	}

	delete(that.documents, code)
	that.publishLocked(code, nil)

	return nil
}

func (that *RoomStore) Exists(_ context.Context, code string) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, ok := that.documents[code]

	return ok, nil
}

func (that *RoomStore) List(_ context.Context) ([]*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.listLocked(), nil
}

func (that *RoomStore) Watch(
	_ context.Context, code string, onUpdate func(*entity.Room), onDeleted func(),
) (feed.Subscription, error) {
	var dispatcher *feed.Dispatcher[docEvent]
	dispatcher = feed.NewDispatcher(func(event docEvent) {
		if event.deleted {
			onDeleted()
			dispatcher.Unsubscribe()
			return
		}
		onUpdate(event.room)
	})
	dispatcher.OnStop(func() {
		that.mu.Lock()
		delete(that.watchers[code], dispatcher)
		that.mu.Unlock()
	})

	that.mu.Lock()

	if that.watchers[code] == nil {
		that.watchers[code] = make(map[*feed.Dispatcher[docEvent]]struct{})
	}
	that.watchers[code][dispatcher] = struct{}{}

	document, ok := that.documents[code]
	if !ok {
		dispatcher.Push(docEvent{deleted: true})
		that.mu.Unlock()
		return dispatcher, nil
	}

	room, err := entity.DecodeRoom(code, document)
	if err == nil {
		dispatcher.Push(docEvent{room: room})
	}

	that.mu.Unlock()

	if err != nil {
		dispatcher.Unsubscribe()
		return nil, err
	}

	return dispatcher, nil
}

func (that *RoomStore) WatchAll(_ context.Context, onSnapshot func([]*entity.Room)) (feed.Subscription, error) {
	dispatcher := feed.NewDispatcher(onSnapshot)
	dispatcher.OnStop(func() {
		that.mu.Lock()
		delete(that.collection, dispatcher)
		that.mu.Unlock()
	})

	that.mu.Lock()
	defer that.mu.Unlock()

	that.collection[dispatcher] = struct{}{}
	dispatcher.Push(that.listLocked())

	return dispatcher, nil
}

// publishLocked - a nil document announces a deletion.
func (that *RoomStore) publishLocked(code string, document []byte) {
	for dispatcher := range that.watchers[code] {
		if document == nil {
			dispatcher.Push(docEvent{deleted: true})
			continue
		}

		// each subscriber gets its own copy
		room, err := entity.DecodeRoom(code, document)
		if err != nil {
			continue
		}
		dispatcher.Push(docEvent{room: room})
	}

	if len(that.collection) == 0 {
		return
	}

	for dispatcher := range that.collection {
		dispatcher.Push(that.listLocked())
	}
}

func (that *RoomStore) listLocked() []*entity.Room {
	rooms := make([]*entity.Room, 0, len(that.documents))
	for code, document := range that.documents {
		room, err := entity.DecodeRoom(code, document)
		if err != nil {
			continue
		}
		rooms = append(rooms, room)
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt < rooms[j].CreatedAt ||
			(rooms[i].CreatedAt == rooms[j].CreatedAt && rooms[i].Code < rooms[j].Code)
	})

	return rooms
}
