package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

func (that *Server) handleSetName(_ context.Context, conn *connection, request *RequestPayload) error {
	return conn.client.SetName(request.Name)
}

func (that *Server) handleCreateRoom(ctx context.Context, conn *connection, _ *RequestPayload) error {
	_, err := conn.client.CreateRoom(ctx)
	return err
}

func (that *Server) handleJoinRoom(ctx context.Context, conn *connection, request *RequestPayload) error {
	return conn.client.JoinRoom(ctx, request.Code)
}

func (that *Server) handleLeaveRoom(ctx context.Context, conn *connection, _ *RequestPayload) error {
	return conn.client.LeaveGame(ctx)
}

// handleMove - cells are numbered 0 to 8, row by row.
func (that *Server) handleMove(ctx context.Context, conn *connection, request *RequestPayload) error {
	if request.Cell == nil {
		conn.Failed("Cell is required")
		return errCellRequired
	}

	return conn.client.MakeMove(ctx, *request.Cell)
}

func (that *Server) handleRematch(ctx context.Context, conn *connection, _ *RequestPayload) error {
	return conn.client.RequestRematch(ctx)
}

func (that *Server) handleListen(ctx context.Context, conn *connection, _ *RequestPayload) error {
	return conn.client.ListRooms(ctx)
}

func (that *Server) handleStopListening(_ context.Context, conn *connection, _ *RequestPayload) error {
	conn.client.StopListing()
	return nil
}

var errCellRequired = errors.New("cell is required")

func jsonUnmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
