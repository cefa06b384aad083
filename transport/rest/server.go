package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Server - the HTTP surface of the gaming service.
type Server struct {
	logger   *slog.Logger
	handlers *handlers
}

func New(logger *slog.Logger, manager gameManager) *Server {
	return &Server{
		logger:   logger.With("component", "rest_server"),
		handlers: newHandlers(logger, manager),
	}
}

// Start - serves until the context is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	that.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return <-errCh
}

func (that *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.handlers.Ping)

	mux.HandleFunc("POST /v1/gaming-sessions", that.handlers.CreateGamingSession)
	mux.HandleFunc("POST /v1/gaming-sessions/players", that.handlers.JoinGamingSession)
	mux.HandleFunc("DELETE /v1/gaming-sessions/{session_id}", that.handlers.EndGamingSession)
	mux.HandleFunc("GET /v1/gaming-sessions/{session_id}/current-game", that.handlers.GetCurrentGame)
	mux.HandleFunc("POST /v1/gaming-sessions/{session_id}/games", that.handlers.CreateTwoPlayerGame)
	mux.HandleFunc("POST /v1/gaming-sessions/{session_id}/games/single-player", that.handlers.CreateSinglePlayerGame)
	mux.HandleFunc("PUT /v1/gaming-sessions/{session_id}/current-game/players/{player_id}", that.handlers.JoinCurrentGame)
	mux.HandleFunc("PUT /v1/gaming-sessions/{session_id}/players/{player_id}/readiness", that.handlers.NotePlayerReadiness)

	mux.HandleFunc("POST /v1/games/{game_id}/turns", that.handlers.TakeTurn)
	mux.HandleFunc("GET /v1/games/{game_id}/turns/latest", that.handlers.GetLatestTurnResult)
	mux.HandleFunc("GET /v1/games/{game_id}/history", that.handlers.GetGameHistory)
	mux.HandleFunc("DELETE /v1/games/{game_id}", that.handlers.EndGame)

	return mux
}
