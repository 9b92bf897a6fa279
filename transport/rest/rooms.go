package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/roomcode"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

const qrSize = 320

type roomStore interface {
	Exists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]*entity.Room, error)
}

type roomsResponse struct {
	Rooms []entity.RoomSummary `json:"rooms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listRooms - snapshot of the rooms a player can join.
func (that *Server) listRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := that.logger.With("method", "listRooms")

	rooms, err := that.rooms.List(r.Context())
	if err != nil {
		log.Error("failed to list rooms", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roomsResponse{Rooms: usecase.OpenRooms(rooms)})
}

// roomQR - PNG QR code with the join link of the room, or the bare code without a public url.
func (that *Server) roomQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	log := that.logger.With("method", "roomQR")

	code := roomcode.Normalize(ps.ByName("code"))
	if !roomcode.Validate(code) {
		writeError(w, apperror.ErrInvalidCodeFormat)
		return
	}

	exists, err := that.rooms.Exists(r.Context(), code)
	if err != nil {
		log.Error("failed to check room", "code", code, "error", err)
		writeError(w, err)
		return
	}
	if !exists {
		writeError(w, apperror.ErrRoomNotFound)
		return
	}

	png, err := qrcode.Encode(that.joinLink(code), qrcode.Medium, qrSize)
	if err != nil {
		log.Error("qr generation failed", "code", code, "error", err)
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (that *Server) joinLink(code string) string {
	if that.publicURL == "" {
		return code
	}

	return strings.TrimSuffix(that.publicURL, "/") + "/?room=" + url.QueryEscape(code)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidCodeFormat):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, apperror.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, errorResponse{Error: apperror.UserMessage(err)})
}
