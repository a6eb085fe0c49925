// Package web serves the browser front end: embedded static assets plus
// a WebSocket bridge between browser clients and the game engine.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/starrypad/internal/broadcast"
	"github.com/vovakirdan/starrypad/internal/game"
)

//go:embed static
var staticFS embed.FS

const (
	// writeWait bounds a single send so one stalled browser cannot hold
	// its write pump forever.
	writeWait = 5 * time.Second

	shutdownTimeout = 3 * time.Second
)

// Server is the HTTP/WebSocket front end. It owns no game state; it
// forwards commands to the engine and relays the broadcast stream.
type Server struct {
	addr     string
	bus      *broadcast.Bus
	commands chan<- game.Command
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a web front end listening on addr.
func NewServer(addr string, bus *broadcast.Bus, commands chan<- game.Command, logger *log.Logger) *Server {
	return &Server{
		addr:     addr,
		bus:      bus,
		commands: commands,
		logger:   logger,
		upgrader: websocket.Upgrader{
			// The UI is served same-origin; other origins are fine for a
			// LAN toy.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ListenAndServe runs the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}

	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleWS)
	r.PathPrefix("/").Handler(http.FileServer(http.FS(static)))

	srv := &http.Server{Addr: s.addr, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("shutdown", "err", err)
		}
	}()

	s.logger.Info("web front end listening", "addr", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleWS bridges one browser client. Each connection gets its own bus
// subscription; the first message it sees is the current leaderboard.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	s.logger.Info("observer connected", "remote", conn.RemoteAddr().String())

	sub := s.bus.Subscribe()
	defer func() {
		s.bus.Unsubscribe(sub)
		conn.Close()
		s.logger.Info("observer disconnected", "remote", conn.RemoteAddr().String())
	}()

	// Write pump: events out. Ends when the subscription channel closes
	// (the deferred Unsubscribe on disconnect, a slow-observer drop, or
	// bus shutdown) or a write fails; closing the conn also ends the
	// read loop below.
	go func() {
		for ev := range sub.Events() {
			data, err := encodeEvent(ev)
			if err != nil {
				s.logger.Warn("event encode failed", "err", err)
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				conn.Close()
				return
			}
		}
		conn.Close()
	}()

	// Read pump: commands in. A malformed message is dropped; the
	// connection and the engine continue unaffected.
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read", "remote", conn.RemoteAddr().String(), "err", err)
			}
			return
		}
		cmd, ok := decodeCommand(data)
		if !ok {
			s.logger.Debug("dropping malformed command", "remote", conn.RemoteAddr().String())
			continue
		}
		s.commands <- cmd
	}
}
