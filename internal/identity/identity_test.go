package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

var errProviderDown = errors.New("provider down")

type failingProvider struct{}

func (failingProvider) SignIn(context.Context) (*Identity, error) {
	return nil, errProviderDown
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnonymousProvider(t *testing.T) {
	provider := NewAnonymousProvider()

	first, err := provider.SignIn(context.Background())
	require.NoError(t, err)
	second, err := provider.SignIn(context.Background())
	require.NoError(t, err)

	assert.True(t, first.Anonymous)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestTokenProvider(t *testing.T) {
	const secret = "top-secret"

	t.Run("Valid token signs in as its subject", func(t *testing.T) {
		// Given: a token issued for player-1
		token, err := IssueToken(secret, "player-1")
		require.NoError(t, err)

		provider := NewTokenProvider(discardLogger(), token, secret, NewAnonymousProvider())

		// When: signing in
		id, err := provider.SignIn(context.Background())

		// Then: the subject becomes the identity
		require.NoError(t, err)
		assert.Equal(t, "player-1", id.ID)
		assert.False(t, id.Anonymous)
	})

	t.Run("Bad token falls back to anonymous", func(t *testing.T) {
		// Given: a token signed with another secret
		token, err := IssueToken("other-secret", "player-1")
		require.NoError(t, err)

		provider := NewTokenProvider(discardLogger(), token, secret, NewAnonymousProvider())

		// When: signing in
		id, err := provider.SignIn(context.Background())

		// Then: an anonymous identity is issued instead
		require.NoError(t, err)
		assert.True(t, id.Anonymous)
		assert.NotEqual(t, "player-1", id.ID)
	})

	t.Run("Bad token without fallback fails", func(t *testing.T) {
		provider := NewTokenProvider(discardLogger(), "garbage", secret, nil)

		_, err := provider.SignIn(context.Background())

		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSession(t *testing.T) {
	t.Run("Player is unavailable before sign in", func(t *testing.T) {
		session := NewSession(discardLogger(), NewAnonymousProvider())

		_, err := session.Player()

		require.ErrorIs(t, err, apperror.ErrNotAuthenticated)
	})

	t.Run("WaitForIdentity resolves after sign in", func(t *testing.T) {
		// Given: a session that signs in shortly
		session := NewSession(discardLogger(), NewAnonymousProvider())

		notified := make(chan *Identity, 1)
		cancel := session.OnChange(func(id *Identity) { notified <- id })
		defer cancel()

		go func() {
			time.Sleep(10 * time.Millisecond)
			_ = session.SignIn(context.Background())
		}()

		// When: waiting for the identity
		id, err := session.WaitForIdentity(context.Background(), time.Second)

		// Then: the identity is returned and listeners are notified
		require.NoError(t, err)
		assert.Equal(t, id, <-notified)
	})

	t.Run("WaitForIdentity times out", func(t *testing.T) {
		session := NewSession(discardLogger(), NewAnonymousProvider())

		_, err := session.WaitForIdentity(context.Background(), 10*time.Millisecond)

		require.ErrorIs(t, err, apperror.ErrAuthTimeout)
	})

	t.Run("Failed sign in is reported", func(t *testing.T) {
		session := NewSession(discardLogger(), failingProvider{})

		err := session.SignIn(context.Background())

		require.ErrorIs(t, err, errProviderDown)
		_, ok := session.Current()
		assert.False(t, ok)
	})

	t.Run("Display name is trimmed and required", func(t *testing.T) {
		session := NewSession(discardLogger(), NewAnonymousProvider())
		require.NoError(t, session.SignIn(context.Background()))

		require.ErrorIs(t, session.SetDisplayName("   "), apperror.ErrInvalidName)
		require.NoError(t, session.SetDisplayName("  Alice "))

		player, err := session.Player()
		require.NoError(t, err)
		assert.Equal(t, "Alice", player.Name)
	})
}
