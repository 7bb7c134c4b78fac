// Package spectate streams game snapshots to websocket watchers.
package spectate

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"snake-arcade/game"
	"snake-arcade/leaderboard"

	"github.com/gorilla/websocket"
)

const (
	clientBuffer = 16
	writeWait    = 2 * time.Second
)

// Ranking is the read side of the leaderboard.
type Ranking interface {
	Entries() []leaderboard.Entry
}

// changeKey identifies a visibly different frame. Frames between ticks are
// identical and are not re-sent.
type changeKey struct {
	runID    string
	tick     uint64
	state    game.State
	speed    int
	gameOver bool
	entries  int
}

type client struct {
	send chan []byte
}

// Hub is a Projector that publishes each new snapshot as JSON to every
// connected watcher. Slow watchers drop frames instead of stalling the game.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	latest  []byte
	last    changeKey
	ranking Ranking
	log     *slog.Logger

	upgrader websocket.Upgrader
}

func NewHub(ranking Ranking, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		ranking: ranking,
		log:     logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func keyOf(s game.Snapshot) changeKey {
	return changeKey{
		runID:    s.RunID,
		tick:     s.Tick,
		state:    s.State,
		speed:    s.SpeedLevel,
		gameOver: s.GameOver != nil,
		entries:  len(s.Leaderboard),
	}
}

func (h *Hub) Draw(s game.Snapshot) {
	key := keyOf(s)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest != nil && key == h.last {
		return
	}

	data, err := json.Marshal(s)
	if err != nil {
		h.log.Error("encode snapshot", "error", err)
		return
	}
	h.latest = data
	h.last = key

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Debug("watcher too slow, frame dropped")
		}
	}
}

// Clients returns the number of connected watchers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register() *client {
	c := &client{send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.send <- h.latest
	}
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Close disconnects every watcher.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", "error", err)
		return
	}
	c := h.register()
	h.log.Info("watcher connected", "remote", r.RemoteAddr, "watchers", h.Clients())

	go h.writeLoop(conn, c)

	// Watchers only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(c)
	h.log.Info("watcher disconnected", "remote", r.RemoteAddr)
}

func (h *Hub) writeLoop(conn *websocket.Conn, c *client) {
	defer conn.Close()
	for msg := range c.send {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug("write to watcher", "error", err)
			return
		}
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	data := h.latest
	h.mu.RUnlock()

	if data == nil {
		http.Error(w, "no game running", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *Hub) serveLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries := []leaderboard.Entry{}
	if h.ranking != nil {
		entries = h.ranking.Entries()
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		h.log.Warn("write leaderboard", "error", err)
	}
}

// Handler routes /ws, /snapshot and /leaderboard, with request logging.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", h.serveWS)
	mux.HandleFunc("GET /snapshot", h.serveSnapshot)
	mux.HandleFunc("GET /leaderboard", h.serveLeaderboard)
	return requestLogger(h.log, mux)
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Hijack lets the websocket upgrade take over the connection.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"duration", time.Since(start),
		)
	})
}

// Server serves the hub on addr until Shutdown.
type Server struct {
	srv *http.Server
	hub *Hub
	log *slog.Logger
}

func NewServer(addr string, hub *Hub, logger *slog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		hub: hub,
		log: logger,
	}
}

// Start listens synchronously and serves in the background, so a bad
// address is reported to the caller.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.log.Info("spectator feed listening", "addr", ln.Addr().String())
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("spectator feed stopped", "error", err)
		}
	}()
	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
