package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/feed"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/identity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

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

type handler func(ctx context.Context, conn *connection, request *RequestPayload) error

// Server bridges browser connections to game clients. Every connection is one player.
type Server struct {
	logger      *slog.Logger
	ctx         context.Context
	store       roomStore
	secret      string
	authTimeout time.Duration
	upgrader    websocket.Upgrader

	handlers map[string]handler
}

func New(ctx context.Context, logger *slog.Logger, store roomStore, secret string, authTimeout time.Duration) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		ctx:         ctx,
		store:       store,
		secret:      secret,
		authTimeout: authTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handler),
	}

	server.handlers[actionSessionName] = server.handleSetName
	server.handlers[actionRoomCreate] = server.handleCreateRoom
	server.handlers[actionRoomJoin] = server.handleJoinRoom
	server.handlers[actionRoomLeave] = server.handleLeaveRoom
	server.handlers[actionGameMove] = server.handleMove
	server.handlers[actionGameRematch] = server.handleRematch
	server.handlers[actionRoomsListen] = server.handleListen
	server.handlers[actionRoomsStop] = server.handleStopListening

	return server
}

// provider - a token in the query signs the player in with a stable id, anything else is anonymous.
func (that *Server) provider(token string) identity.Provider {
	anonymous := identity.NewAnonymousProvider()
	if token == "" || that.secret == "" {
		return anonymous
	}

	return identity.NewTokenProvider(that.logger, token, that.secret, anonymous)
}

// ServeHTTP - upgrades the connection to WebSocket and serves it until it closes.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(that.ctx)
	defer cancel()

	conn := &connection{
		ws:   ws,
		send: make(chan Message, sendBuffer),
		done: make(chan struct{}),
	}

	session := identity.NewSession(that.logger, that.provider(req.URL.Query().Get("token")))
	conn.client = usecase.NewClient(that.logger, session, that.store, conn)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		conn.writePump()
	}()

	go func() {
		<-ctx.Done()
		conn.close()
	}()

	log.Info("WebSocket connection established")

	that.handleMessages(ctx, conn, session)

	conn.client.Close(context.WithoutCancel(ctx))
	conn.close()
	wg.Wait()

	log.Info("WebSocket connection closed")
}

// handleMessages - signs the player in, then processes messages until the connection fails.
func (that *Server) handleMessages(ctx context.Context, conn *connection, session *identity.Session) {
	log := that.logger.With("method", "handleMessages")

	stop := session.OnChange(func(id *identity.Identity) {
		conn.push(eventSessionReady, ResponsePayload{Player: &entity.Player{ID: id.ID}})
	})
	defer stop()

	if err := conn.client.SignIn(ctx); err != nil {
		return
	}

	if _, err := session.WaitForIdentity(ctx, that.authTimeout); err != nil {
		conn.Failed(err.Error())
		return
	}

	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := conn.ws.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handle, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			conn.push(eventError, ResponsePayload{Error: "unknown action: " + message.Action})
			continue
		}

		var request RequestPayload
		if len(message.Payload) > 0 {
			if err := jsonUnmarshal(message.Payload, &request); err != nil {
				log.Warn("failed to unmarshal payload", "action", message.Action, "error", err)
				conn.push(eventError, ResponsePayload{Error: "malformed payload"})
				continue
			}
		}

		if err := handle(ctx, conn, &request); err != nil {
			log.Debug("action failed", "action", message.Action, "error", err)
		}
	}
}

// connection is one browser tab. It renders client events as outgoing messages.
type connection struct {
	ws     *websocket.Conn
	client *usecase.Client
	send   chan Message
	done   chan struct{}
	once   sync.Once
}

func (that *connection) close() {
	that.once.Do(func() {
		close(that.done)
		_ = that.ws.Close()
	})
}

// push - queues a message unless the connection is gone. Never closes send so late
// subscription callbacks cannot panic.
func (that *connection) push(action string, payload ResponsePayload) {
	message := Message{Action: action, Payload: mustMarshal(payload)}

	select {
	case that.send <- message:
	case <-that.done:
	}
}

func (that *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message := <-that.send:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.ws.WriteJSON(message); err != nil {
				that.close()
				return
			}
		case <-ticker.C:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				that.close()
				return
			}
		case <-that.done:
			return
		}
	}
}

func (that *connection) RoomChanged(view usecase.RoomView) {
	that.push(eventRoomUpdate, ResponsePayload{Room: newRoomResponse(view)})
}

func (that *connection) RoomDeleted() {
	that.push(eventRoomDeleted, ResponsePayload{})
}

func (that *connection) RoomsListed(rooms []entity.RoomSummary) {
	if rooms == nil {
		rooms = []entity.RoomSummary{}
	}
	that.push(eventRoomsList, ResponsePayload{Rooms: rooms})
}

func (that *connection) Notify(message string) {
	that.push(eventStatus, ResponsePayload{Message: message})
}

func (that *connection) Failed(message string) {
	that.push(eventError, ResponsePayload{Error: message})
}
