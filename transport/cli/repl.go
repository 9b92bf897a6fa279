package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/feed"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/identity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/preference"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

const helpText = `Commands:
  name <name>        set your display name
  create             create a room and wait for an opponent
  join <code>        join a room by code (XXX-XX-XXX)
  move <1-9>         place your mark, cells are numbered row by row
  rematch            ask for a rematch after a game
  leave              leave the current room
  rooms              show open rooms
  theme [dark|light] show or set the colour theme
  help               show this help
  quit               leave and exit`

type palette struct {
	x, o, dim, reset string
}

var palettes = map[preference.Theme]palette{
	preference.Dark:  {x: "\x1b[96m", o: "\x1b[95m", dim: "\x1b[90m", reset: "\x1b[0m"},
	preference.Light: {x: "\x1b[34m", o: "\x1b[31m", dim: "\x1b[37m", reset: "\x1b[0m"},
}

type roomStore interface {
	Create(ctx context.Context, room *entity.Room) error
	Update(ctx context.Context, code string, fields entity.Fields) error
	GetByCode(ctx context.Context, code string) (*entity.Room, error)
	DeleteByCode(ctx context.Context, code string) error
	Exists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]*entity.Room, error)

	Watch(ctx context.Context, code string, onUpdate func(*entity.Room), onDeleted func()) (feed.Subscription, error)
	WatchAll(ctx context.Context, onSnapshot func([]*entity.Room)) (feed.Subscription, error)
}

type themeStore interface {
	Theme() preference.Theme
	Save(theme preference.Theme) error
}

// REPL is the terminal surface of one player.
type REPL struct {
	logger *slog.Logger
	client *usecase.Client
	themes themeStore
	color  bool

	mu     sync.Mutex
	out    io.Writer
	theme  preference.Theme
	onMenu bool
}

func New(logger *slog.Logger, session *identity.Session, store roomStore, themes themeStore, out io.Writer, color bool) *REPL {
	repl := &REPL{
		logger: logger.With("component", "cli"),
		themes: themes,
		color:  color,
		out:    out,
		theme:  themes.Theme(),
	}

	repl.client = usecase.NewClient(logger, session, store, repl)

	return repl
}

// Run - signs in, opens the menu and executes commands from in until quit, EOF or ctx is done.
func (that *REPL) Run(ctx context.Context, in io.Reader) error {
	defer that.client.Close(context.WithoutCancel(ctx))

	if err := that.client.SignIn(ctx); err != nil {
		return err
	}

	that.println("Welcome to Tic-Tac-Toe rooms. Type 'help' for commands.")
	that.toMenu(ctx)

	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			that.leave(context.WithoutCancel(ctx))
			return nil
		case line, ok := <-lines:
			if !ok {
				that.leave(context.WithoutCancel(ctx))
				return nil
			}
			if that.Execute(ctx, line) {
				return nil
			}
		}
	}
}

// Execute - runs one command line. Returns true when the player quits.
func (that *REPL) Execute(ctx context.Context, line string) bool {
	command, argument, _ := strings.Cut(strings.TrimSpace(line), " ")
	argument = strings.TrimSpace(argument)

	switch strings.ToLower(command) {
	case "":
	case "name":
		_ = that.client.SetName(argument)
	case "create":
		that.setMenu(false)
		if _, err := that.client.CreateRoom(ctx); err != nil {
			that.toMenu(ctx)
		}
	case "join":
		that.setMenu(false)
		if err := that.client.JoinRoom(ctx, argument); err != nil {
			that.toMenu(ctx)
		}
	case "move":
		cell, err := strconv.Atoi(argument)
		if err != nil || cell < 1 || cell > entity.BoardSize {
			that.println("Usage: move <1-9>")
			return false
		}
		_ = that.client.MakeMove(ctx, cell-1)
	case "rematch":
		_ = that.client.RequestRematch(ctx)
	case "leave":
		that.leave(ctx)
		that.toMenu(ctx)
	case "rooms":
		if that.client.State().Code != "" {
			that.println("Leave the room to browse open rooms.")
			return false
		}
		that.toMenu(ctx)
	case "theme":
		that.switchTheme(argument)
	case "help":
		that.println(helpText)
	case "quit", "exit":
		that.leave(ctx)
		return true
	default:
		that.println("Unknown command: " + command + ". Type 'help' for commands.")
	}

	return false
}

func (that *REPL) leave(ctx context.Context) {
	if that.client.State().Code == "" {
		return
	}
	_ = that.client.LeaveGame(ctx)
}

func (that *REPL) toMenu(ctx context.Context) {
	that.setMenu(true)
	_ = that.client.ListRooms(ctx)
}

func (that *REPL) setMenu(onMenu bool) {
	that.mu.Lock()
	that.onMenu = onMenu
	that.mu.Unlock()
}

func (that *REPL) switchTheme(argument string) {
	if argument == "" {
		that.mu.Lock()
		theme := that.theme
		that.mu.Unlock()

		that.println("Theme: " + string(theme))
		return
	}

	theme, err := preference.ParseTheme(argument)
	if err != nil {
		that.println("Usage: theme [dark|light]")
		return
	}

	if err = that.themes.Save(theme); err != nil {
		that.logger.Warn("failed to save theme", "error", err)
	}

	that.mu.Lock()
	that.theme = theme
	that.mu.Unlock()

	that.println("Theme: " + string(theme))
}

func (that *REPL) RoomChanged(view usecase.RoomView) {
	that.println(that.render(view))
}

func (that *REPL) RoomDeleted() {
	that.toMenu(context.Background())
}

func (that *REPL) RoomsListed(rooms []entity.RoomSummary) {
	that.mu.Lock()
	onMenu := that.onMenu
	that.mu.Unlock()

	if !onMenu {
		return
	}

	if len(rooms) == 0 {
		that.println("No open rooms. Type 'create' to host one.")
		return
	}

	var b strings.Builder
	b.WriteString("Open rooms:")
	for _, room := range rooms {
		fmt.Fprintf(&b, "\n  %s  %s's Room (%d/2)", room.Code, room.HostName, room.Players)
	}

	that.println(b.String())
}

func (that *REPL) Notify(message string) {
	that.println(message)
}

func (that *REPL) Failed(message string) {
	that.println("Error: " + message)
}

func (that *REPL) println(text string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, _ = fmt.Fprintln(that.out, text)
}

// render - board with the free cells numbered, the headline and the score.
func (that *REPL) render(view usecase.RoomView) string {
	that.mu.Lock()
	colors := palette{}
	if that.color {
		colors = palettes[that.theme]
	}
	that.mu.Unlock()

	room := view.Room

	var b strings.Builder
	fmt.Fprintf(&b, "Room %s  %s (X) %d : %d %s (O)\n",
		room.Code, seatName(room.PlayerX, room.PlayerXName), room.PlayerXWins,
		room.PlayerOWins, seatName(room.PlayerO, room.PlayerOName))

	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			index := row*3 + col
			switch room.Board[index] {
			case entity.X:
				cells[col] = colors.x + "X" + colors.reset
			case entity.O:
				cells[col] = colors.o + "O" + colors.reset
			default:
				cells[col] = colors.dim + strconv.Itoa(index+1) + colors.reset
			}
		}

		b.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < 2 {
			b.WriteString("---+---+---\n")
		}
	}

	b.WriteString(view.Headline)
	if view.Symbol.IsSymbol() {
		fmt.Fprintf(&b, " (you are %s)", view.Symbol)
	}

	switch view.Rematch {
	case entity.RematchWaitingOpponent:
		b.WriteString("\nWaiting for opponent to accept the rematch...")
	case entity.RematchOpponentWants:
		b.WriteString("\nOpponent wants a rematch! Type 'rematch' to accept.")
	case entity.RematchNone:
		if room.IsFinished() {
			b.WriteString("\nType 'rematch' to play again or 'leave' to go back.")
		}
	}

	return b.String()
}

func seatName(id, name entity.NullString) string {
	switch {
	case name != "":
		return string(name)
	case id != "":
		return "Anonymous"
	default:
		return "-"
	}
}
