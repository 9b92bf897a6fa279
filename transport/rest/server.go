package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger    *slog.Logger
	rooms     roomStore
	publicURL string
	router    *httprouter.Router
}

// New - builds the HTTP API. The websocket bridge is mounted at /ws when given.
func New(logger *slog.Logger, rooms roomStore, publicURL string, ws http.Handler) *Server {
	server := &Server{
		logger:    logger.With("component", "rest"),
		rooms:     rooms,
		publicURL: publicURL,
		router:    httprouter.New(),
	}

	server.router.GET("/ping", pingHandler)
	server.router.GET("/rooms", server.listRooms)
	server.router.GET("/rooms/:code/qr", server.roomQR)

	if ws != nil {
		server.router.Handler(http.MethodGet, "/ws", ws)
	}

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves until ctx is done, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           that.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		that.logger.Info("Starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
