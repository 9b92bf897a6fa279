package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/identity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/preference"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/memory"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/cli"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/rest"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/websocket"
)

// RunServer - serves the HTTP API and the browser bridge until a signal arrives.
func RunServer(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := withSignals(ctx, log)
	defer cancel()

	client, err := storage.NewRedisStorage(ctx, conf.Redis)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}
	defer closeStorage(log, client)

	rooms := repository.NewRoomRepository(logger, client, conf.AppID)

	bridge := websocket.New(ctx, logger, rooms, conf.Auth.JWTSecretKey, conf.Auth.WaitTimeout)
	server := rest.New(logger, rooms, conf.PublicURL, bridge)

	if err = server.Start(ctx, conf.HTTPAddr()); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// RunPlay - runs the terminal client against Redis, or against an in-process store when offline.
func RunPlay(ctx context.Context, logger *slog.Logger, conf *config.Config, offline bool, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := withSignals(ctx, log)
	defer cancel()

	var rooms repository.RoomRepository

	if offline {
		rooms = memory.NewRoomStore()
	} else {
		client, err := storage.NewRedisStorage(ctx, conf.Redis)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}
		defer closeStorage(log, client)

		rooms = repository.NewRoomRepository(logger, client, conf.AppID)
	}

	themes, err := preference.NewStore(logger, conf.PreferencesPath)
	if err != nil {
		return err
	}

	provider := identity.NewAnonymousProvider()
	if conf.Auth.HasCustomToken() {
		provider = identity.NewTokenProvider(logger, conf.Auth.CustomToken, conf.Auth.JWTSecretKey, provider)
	}

	session := identity.NewSession(logger, provider)

	return cli.New(logger, session, rooms, themes, out, isTerminal(out)).Run(ctx, in)
}

// ListRooms - prints the open rooms once.
func ListRooms(ctx context.Context, logger *slog.Logger, conf *config.Config, out io.Writer) error {
	client, err := storage.NewRedisStorage(ctx, conf.Redis)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}
	defer closeStorage(logger, client)

	all, err := repository.NewRoomRepository(logger, client, conf.AppID).List(ctx)
	if err != nil {
		return fmt.Errorf("could not list rooms: %w", err)
	}

	return printRooms(out, usecase.OpenRooms(all))
}

func printRooms(out io.Writer, rooms []entity.RoomSummary) error {
	if len(rooms) == 0 {
		_, err := fmt.Fprintln(out, "No open rooms.")
		return err
	}

	for _, room := range rooms {
		if _, err := fmt.Fprintf(out, "%s\t%s's Room\t%d/2\n", room.Code, room.HostName, room.Players); err != nil {
			return err
		}
	}

	return nil
}

func withSignals(ctx context.Context, log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func closeStorage(log *slog.Logger, client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Error("could not close redis storage", "error", err)
	}
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
