package entity

import "time"

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

type RematchState string

const (
	RematchNone            RematchState = ""
	RematchWaitingOpponent RematchState = "waiting_for_opponent"
	RematchOpponentWants   RematchState = "opponent_wants_rematch"
)

const anonymousName = "Anonymous"

// Player is the identity a client acts under.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Room is the shared document of one match.
type Room struct {
	Code string `json:"-"`

	Board  Board  `json:"board"`
	Turn   Mark   `json:"turn"`
	Status Status `json:"status"`
	Winner Mark   `json:"winner"`

	PlayerX     NullString `json:"playerX"`
	PlayerO     NullString `json:"playerO"`
	PlayerXName NullString `json:"playerXName"`
	PlayerOName NullString `json:"playerOName"`

	PlayerXWins int `json:"playerXWins"`
	PlayerOWins int `json:"playerOWins"`

	PlayerXWantsRematch bool `json:"playerXWantsRematch"`
	PlayerOWantsRematch bool `json:"playerOWantsRematch"`

	LastStarter Mark  `json:"lastStarter"`
	CreatedAt   int64 `json:"createdAt"`
}

// NewRoom - builds the document written by the host. lastStarter is O so the first game opens with X.
func NewRoom(code string, host Player, now time.Time) *Room {
	return &Room{
		Code:        code,
		Turn:        X,
		Status:      StatusWaiting,
		PlayerX:     NullString(host.ID),
		PlayerXName: NullString(host.Name),
		LastStarter: O,
		CreatedAt:   now.UnixMilli(),
	}
}

// SymbolOf - returns the symbol the player occupies in this room, or Empty for a stranger.
func (that *Room) SymbolOf(playerID string) Mark {
	switch {
	case playerID == "":
		return Empty
	case string(that.PlayerX) == playerID:
		return X
	case string(that.PlayerO) == playerID:
		return O
	default:
		return Empty
	}
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

// IsOpen - a waiting room with a free slot is listed in the directory.
func (that *Room) IsOpen() bool {
	return that.IsWaiting() && (that.PlayerX == "" || that.PlayerO == "")
}

// IsSoleOccupant - reports whether the player is the only one left in the room.
func (that *Room) IsSoleOccupant(playerID string) bool {
	switch that.SymbolOf(playerID) {
	case X:
		return that.PlayerO == ""
	case O:
		return that.PlayerX == ""
	default:
		return false
	}
}

func (that *Room) WantsRematch(symbol Mark) bool {
	switch symbol {
	case X:
		return that.PlayerXWantsRematch
	case O:
		return that.PlayerOWantsRematch
	default:
		return false
	}
}

// WinsOf - the win counter of the symbol.
func (that *Room) WinsOf(symbol Mark) int {
	switch symbol {
	case X:
		return that.PlayerXWins
	case O:
		return that.PlayerOWins
	default:
		return 0
	}
}

func (that *Room) BothWantRematch() bool {
	return that.PlayerXWantsRematch && that.PlayerOWantsRematch
}

// HostName - name shown for the room in the directory.
func (that *Room) HostName() string {
	if that.PlayerXName != "" {
		return string(that.PlayerXName)
	}
	if that.PlayerX == "" && that.PlayerOName != "" {
		return string(that.PlayerOName)
	}

	return anonymousName
}

// RematchFor - rematch negotiation as seen by the given symbol.
func (that *Room) RematchFor(symbol Mark) RematchState {
	if !that.IsFinished() || !symbol.IsSymbol() {
		return RematchNone
	}

	mine, theirs := that.WantsRematch(symbol), that.WantsRematch(symbol.Opponent())

	switch {
	case mine && !theirs:
		return RematchWaitingOpponent
	case !mine && theirs:
		return RematchOpponentWants
	default:
		return RematchNone
	}
}

// StatusLine - headline text for the given symbol.
func (that *Room) StatusLine(symbol Mark) string {
	switch that.Status {
	case StatusFinished:
		switch that.Winner {
		case Draw:
			return "Draw!"
		case symbol:
			return "You Won!"
		default:
			return "You Lost!"
		}
	case StatusPlaying:
		if that.Turn == symbol {
			return "Your Turn"
		}
		return "Opponent's Turn"
	default:
		return "Waiting for opponent..."
	}
}

// Summary - directory entry for an open room.
func (that *Room) Summary() RoomSummary {
	players := 0
	if that.PlayerX != "" {
		players++
	}
	if that.PlayerO != "" {
		players++
	}

	return RoomSummary{
		Code:     that.Code,
		HostName: that.HostName(),
		Players:  players,
	}
}

type RoomSummary struct {
	Code     string `json:"code"`
	HostName string `json:"host_name"`
	Players  int    `json:"players"`
}
