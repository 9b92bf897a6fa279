package apperror

import "errors"

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrAuthTimeout       = errors.New("authentication timeout")
	ErrInvalidCodeFormat = errors.New("invalid code format")
	ErrInvalidName       = errors.New("player name is empty")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room is full")
	ErrNotInRoom         = errors.New("not in a room")
	ErrIllegalMove       = errors.New("illegal move")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrPermissionDenied  = errors.New("permission denied")
)

// UserMessage - converts an operation error into the text shown in the status line.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAuthenticated):
		return "Wait for login..."
	case errors.Is(err, ErrAuthTimeout):
		return "Authentication timed out. Please try again."
	case errors.Is(err, ErrInvalidCodeFormat):
		return "Invalid code format. Use format: XXX-XX-XXX"
	case errors.Is(err, ErrInvalidName):
		return "Please enter a name."
	case errors.Is(err, ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, ErrRoomFull):
		return "Room is full"
	case errors.Is(err, ErrNotInRoom):
		return "You are not in a room."
	case errors.Is(err, ErrPermissionDenied):
		return "Permission denied. Please check the store access rules."
	case errors.Is(err, ErrStoreUnavailable):
		return "Service temporarily unavailable. Please try again."
	default:
		return err.Error()
	}
}
