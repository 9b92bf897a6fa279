package feed

import (
	"sync"
	"sync/atomic"
)

// Subscription is a live change feed. Unsubscribe is idempotent and drops every queued value.
// It does not wait for a callback that is already running, so it is safe to call from one.
type Subscription interface {
	Unsubscribe()
}

// Dispatcher delivers pushed values to a callback in push order on its own goroutine.
// Push never blocks, so it is safe to call while holding a store lock.
type Dispatcher[T any] struct {
	deliver func(T)

	mu    sync.Mutex
	queue []T

	wake    chan struct{}
	done    chan struct{}
	stopped atomic.Bool
	once    sync.Once
	onStop  func()
}

func NewDispatcher[T any](deliver func(T)) *Dispatcher[T] {
	dispatcher := &Dispatcher[T]{
		deliver: deliver,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	go dispatcher.run()

	return dispatcher
}

// OnStop - registers a hook run once when the dispatcher stops.
func (that *Dispatcher[T]) OnStop(hook func()) {
	that.mu.Lock()
	that.onStop = hook
	that.mu.Unlock()
}

func (that *Dispatcher[T]) Push(value T) {
	if that.stopped.Load() {
		return
	}

	that.mu.Lock()
	that.queue = append(that.queue, value)
	that.mu.Unlock()

	select {
	case that.wake <- struct{}{}:
	default:
	}
}

func (that *Dispatcher[T]) Unsubscribe() {
	that.once.Do(func() {
		that.stopped.Store(true)
		close(that.done)

		that.mu.Lock()
		hook := that.onStop
		that.queue = nil
		that.mu.Unlock()

		if hook != nil {
			hook()
		}
	})
}

func (that *Dispatcher[T]) Stopped() bool {
	return that.stopped.Load()
}

func (that *Dispatcher[T]) run() {
	for {
		select {
		case <-that.done:
			return
		case <-that.wake:
		}

		for {
			value, ok := that.next()
			if !ok {
				break
			}

			if that.stopped.Load() {
				return
			}

			that.deliver(value)
		}
	}
}

func (that *Dispatcher[T]) next() (T, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	var zero T
	if len(that.queue) == 0 {
		return zero, false
	}

	value := that.queue[0]
	that.queue[0] = zero
	that.queue = that.queue[1:]

	return value, true
}
