// Package feed serves leaderboard announcements over HTTP: a JSON poll
// endpoint, a WebSocket push stream, and the current top players.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vovakirdan/lightemup/internal/leaderboard"
)

// Server is the announcement HTTP server.
type Server struct {
	mux     *http.ServeMux
	handler http.Handler
	board   *leaderboard.Service
	hub     *Hub
	logger  *log.Logger

	upgrader websocket.Upgrader
}

// NewServer creates a feed over board. New announcements recorded by board
// are pushed to WebSocket subscribers. access may be nil.
func NewServer(board *leaderboard.Service, logger *log.Logger, access *zap.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if access == nil {
		access = zap.NewNop()
	}
	s := &Server{
		mux:    http.NewServeMux(),
		board:  board,
		hub:    NewHub(),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.routes()
	s.handler = accessLog(access, s.mux)
	board.OnAnnouncement(s.publish)
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /poll_announcements", s.handlePoll)
	s.mux.HandleFunc("GET /ws/announcements", s.handleWS)
	s.mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	s.handler.ServeHTTP(w, r)
}

// Hub returns the WebSocket subscriber hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting announcement feed", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping announcement feed")
	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) publish(a leaderboard.Announcement) {
	data, err := json.Marshal(leaderboard.Poll{HasAnnouncement: true, Announcement: &a})
	if err != nil {
		s.logger.Error("Cannot encode announcement", "error", err)
		return
	}
	s.hub.Broadcast(data)
}

func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	p, err := s.board.Poll(r.Context())
	if err != nil {
		s.logger.Error("Poll failed", "error", err)
		jsonError(w, "poll failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	c := s.hub.register(ws)
	s.logger.Info("Feed subscriber connected", "remote", r.RemoteAddr, "subscribers", s.hub.Len())

	// Late joiners get the current announcement first.
	if p, err := s.board.Poll(r.Context()); err == nil && p.HasAnnouncement {
		if data, err := json.Marshal(p); err == nil {
			c.enqueue(data)
		}
	}

	go c.writePump()
	go func() {
		c.readPump()
		s.hub.unregister(c)
		s.logger.Info("Feed subscriber disconnected", "remote", r.RemoteAddr)
	}()
}

type leaderboardRow struct {
	Position  int    `json:"position"`
	Nickname  string `json:"nickname"`
	BestScore int    `json:"best_score"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			jsonError(w, "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = n
	}

	players, err := s.board.TopPlayers(r.Context(), limit)
	if err != nil {
		s.logger.Error("Leaderboard query failed", "error", err)
		jsonError(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}
	rows := make([]leaderboardRow, 0, len(players))
	for i, p := range players {
		rows = append(rows, leaderboardRow{Position: i + 1, Nickname: p.Nickname, BestScore: p.BestScore})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"subscribers": s.hub.Len(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
