package identity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// Session holds the identity and display name of one client.
type Session struct {
	logger   *slog.Logger
	provider Provider

	mu          sync.RWMutex
	identity    *Identity
	displayName string
	listeners   map[int]func(*Identity)
	nextID      int
	ready       chan struct{}
}

func NewSession(logger *slog.Logger, provider Provider) *Session {
	return &Session{
		logger:    logger.With("component", "session"),
		provider:  provider,
		listeners: make(map[int]func(*Identity)),
		ready:     make(chan struct{}),
	}
}

// SignIn - obtains an identity from the provider and notifies listeners.
func (that *Session) SignIn(ctx context.Context) error {
	log := that.logger.With("method", "SignIn")

	id, err := that.provider.SignIn(ctx)
	if err != nil {
		log.Error("sign in failed", "error", err)
		return fmt.Errorf("failed to sign in: %w", err)
	}

	that.mu.Lock()
	first := that.identity == nil
	that.identity = id
	listeners := make([]func(*Identity), 0, len(that.listeners))
	for _, listener := range that.listeners {
		listeners = append(listeners, listener)
	}
	that.mu.Unlock()

	if first {
		close(that.ready)
	}

	log.Info("signed in", "user", shortID(id.ID), "anonymous", id.Anonymous)

	for _, listener := range listeners {
		listener(id)
	}

	return nil
}

// OnChange - registers a listener for identity changes; the returned func removes it.
func (that *Session) OnChange(listener func(*Identity)) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := that.nextID
	that.nextID++
	that.listeners[id] = listener

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()
		delete(that.listeners, id)
	}
}

func (that *Session) Current() (*Identity, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.identity, that.identity != nil
}

// WaitForIdentity - blocks until an identity is available, the timeout passes or ctx is done.
func (that *Session) WaitForIdentity(ctx context.Context, timeout time.Duration) (*Identity, error) {
	if id, ok := that.Current(); ok {
		return id, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-that.ready:
		id, _ := that.Current()
		return id, nil
	case <-timer.C:
		return nil, apperror.ErrAuthTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (that *Session) SetDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.ErrInvalidName
	}

	that.mu.Lock()
	that.displayName = name
	that.mu.Unlock()

	that.logger.Info("player name set", "name", name)

	return nil
}

func (that *Session) DisplayName() string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.displayName
}

// Player - the player the engines act for. Fails with ErrNotAuthenticated before sign in.
func (that *Session) Player() (entity.Player, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.identity == nil {
		return entity.Player{}, apperror.ErrNotAuthenticated
	}

	return entity.Player{ID: that.identity.ID, Name: that.displayName}, nil
}

func shortID(id string) string {
	if len(id) > 5 {
		return id[:5] + "..."
	}
	return id
}
