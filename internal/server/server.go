// Package server exposes the rules engine over WebSocket: each client
// connection gets its own session, engine and computer opponent, and the
// protocol in protocol.go mirrors the engine's commands and events.
package server

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/Jyouping/sevenhandpoker/internal/ai"
	"github.com/Jyouping/sevenhandpoker/internal/game"
	"github.com/Jyouping/sevenhandpoker/internal/randutil"
	"github.com/Jyouping/sevenhandpoker/internal/statistics"
)

// Options configures a Server.
type Options struct {
	Addr      string
	AILevel   ai.Level
	AITuning  ai.Config
	StepDelay time.Duration

	// Stats receives game results; nil disables recording.
	Stats statistics.Store

	// Clock paces AI steps; tests inject a mock.
	Clock quartz.Clock
}

// Server accepts WebSocket clients and runs one game per connection.
type Server struct {
	opts        Options
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
}

// NewServer creates a WebSocket server.
func NewServer(opts Options, logger *log.Logger) *Server {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}

	return &Server{
		opts: opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local game clients only; no origin restrictions.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
	}
}

// Run serves until the context is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	httpServer := &http.Server{Addr: s.opts.Addr, Handler: mux}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.logger.Info("starting websocket server", "addr", s.opts.Addr)
		err := httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})

	group.Go(func() error {
		s.trackConnections(ctx)
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()

		s.mu.Lock()
		for conn := range s.connections {
			_ = conn.Close()
		}
		s.mu.Unlock()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// trackConnections handles connection lifecycle.
func (s *Server) trackConnections(ctx context.Context) {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client disconnected", "total", total)

		case <-ctx.Done():
			return
		}
	}
}

// handleWebSocket upgrades a request and wires a fresh game behind it.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, s.logger)
	conn.runner = s.newRunner(conn)

	s.register <- conn
	conn.Start()

	go func() {
		<-conn.Done()
		s.unregister <- conn
	}()
}

// newRunner builds the per-connection session, strategy and engine.
func (s *Server) newRunner(conn *Connection) *Runner {
	session := game.NewSession(nil, s.logger)
	strategy := ai.New(s.opts.AILevel, s.opts.AITuning, randutil.New(rand.Int64()), s.logger)
	engine := game.NewEngine(session, strategy, game.Player1, s.opts.Stats, s.logger)
	return NewRunner(engine, conn, s.opts.Clock, s.opts.StepDelay, s.logger)
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
