package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/memory"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func newTestServer(t *testing.T, publicURL string) (*httptest.Server, *memory.RoomStore) {
	t.Helper()

	store := memory.NewRoomStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := httptest.NewServer(New(logger, store, publicURL, nil).Handler())
	t.Cleanup(server.Close)

	return server, store
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(url) //nolint: noctx // test request
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func TestServer(t *testing.T) {
	ctx := context.Background()

	t.Run("Ping", func(t *testing.T) {
		// Given: a running server
		server, _ := newTestServer(t, "")

		// When: pinging
		resp, body := get(t, server.URL+"/ping")

		// Then: pong
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "pong", string(body))
	})

	t.Run("Rooms lists only open rooms", func(t *testing.T) {
		// Given: an open room and a running game
		server, store := newTestServer(t, "")

		open := entity.NewRoom("111-11-111", entity.Player{ID: "a", Name: "Alice"}, time.UnixMilli(1))
		playing := entity.NewRoom("222-22-222", entity.Player{ID: "b"}, time.UnixMilli(2))
		playing.PlayerO = "c"
		playing.Status = entity.StatusPlaying
		require.NoError(t, store.Create(ctx, open))
		require.NoError(t, store.Create(ctx, playing))

		// When: listing rooms
		resp, body := get(t, server.URL+"/rooms")

		// Then: only the open room is returned
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listed roomsResponse
		require.NoError(t, json.Unmarshal(body, &listed))
		assert.Equal(t, []entity.RoomSummary{{Code: "111-11-111", HostName: "Alice", Players: 1}}, listed.Rooms)
	})

	t.Run("QR code of an existing room", func(t *testing.T) {
		// Given: a room
		server, store := newTestServer(t, "https://play.example.com/")
		require.NoError(t, store.Create(ctx, entity.NewRoom("123-45-678", entity.Player{ID: "a"}, time.UnixMilli(1))))

		// When: requesting its QR code
		resp, body := get(t, server.URL+"/rooms/123-45-678/qr")

		// Then: a PNG is returned
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(body, pngMagic))
	})

	t.Run("QR code errors", func(t *testing.T) {
		// Given: an empty store
		server, _ := newTestServer(t, "")

		// When: requesting a malformed and an unknown code
		badResp, badBody := get(t, server.URL+"/rooms/12345/qr")
		missingResp, missingBody := get(t, server.URL+"/rooms/999-99-999/qr")

		// Then: the errors carry the user messages
		assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
		assert.Contains(t, string(badBody), "Invalid code format")
		assert.Equal(t, http.StatusNotFound, missingResp.StatusCode)
		assert.Contains(t, string(missingBody), "Room not found")
	})
}

func TestServer_JoinLink(t *testing.T) {
	withURL := &Server{publicURL: "https://play.example.com/"}
	withoutURL := &Server{}

	assert.Equal(t, "https://play.example.com/?room=123-45-678", withURL.joinLink("123-45-678"))
	assert.Equal(t, "123-45-678", withoutURL.joinLink("123-45-678"))
}
