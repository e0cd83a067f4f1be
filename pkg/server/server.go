package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tessera-ui/tessera/pkg/block"
	"github.com/tessera-ui/tessera/pkg/dom"
	"github.com/tessera-ui/tessera/pkg/middleware"
	"github.com/tessera-ui/tessera/pkg/protocol"
)

// Config configures a Server. The zero value is usable; unset fields take
// defaults from DefaultConfig.
type Config struct {
	// Addr is the listen address (default: ":3000").
	Addr string

	// PageTitle is the title of the served page (default: "tessera").
	PageTitle string

	// HeartbeatInterval is the websocket ping period (default: 30s).
	HeartbeatInterval time.Duration

	// WriteTimeout bounds each websocket write (default: 10s).
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown (default: 10s).
	ShutdownTimeout time.Duration

	// CheckOrigin validates websocket upgrade origins.
	// If nil, all origins are accepted.
	CheckOrigin func(r *http.Request) bool

	// OnSession runs in its own goroutine for each new live session.
	// This is where the application drives Session.Update.
	OnSession func(s *Session)

	// DisableMetrics turns off the /metrics endpoint. Metrics are still
	// collected into Registry.
	DisableMetrics bool

	// Registry receives the server's Prometheus metrics and backs the
	// /metrics endpoint (default: a fresh registry).
	Registry *prometheus.Registry

	// Logger is the base logger (default: slog.Default).
	Logger *slog.Logger
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Addr:              ":3000",
		PageTitle:         "tessera",
		HeartbeatInterval: 30 * time.Second,
		WriteTimeout:      10 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// Server serves a block application: server-rendered pages, a live
// websocket endpoint streaming patches, and Prometheus metrics.
type Server struct {
	config      *Config
	rootFactory func() *block.Instance
	router      chi.Router
	upgrader    websocket.Upgrader
	metrics     *serverMetrics
	logger      *slog.Logger
	httpServer  *http.Server

	nextID atomic.Uint64

	mu       sync.Mutex
	sessions map[uint64]*Session
}

// New creates a Server serving instances produced by root.
func New(root func() *block.Instance, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.Addr == "" {
			config.Addr = defaults.Addr
		}
		if config.PageTitle == "" {
			config.PageTitle = defaults.PageTitle
		}
		if config.HeartbeatInterval == 0 {
			config.HeartbeatInterval = defaults.HeartbeatInterval
		}
		if config.WriteTimeout == 0 {
			config.WriteTimeout = defaults.WriteTimeout
		}
		if config.ShutdownTimeout == 0 {
			config.ShutdownTimeout = defaults.ShutdownTimeout
		}
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	checkOrigin := config.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	s := &Server{
		config:      config,
		rootFactory: root,
		metrics:     newServerMetrics(config.Registry),
		logger:      config.Logger.With("component", "server"),
		sessions:    make(map[uint64]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Metrics(middleware.WithRegistry(config.Registry)))
	r.Use(middleware.OpenTelemetry(middleware.WithRequestFilter(func(req *http.Request) bool {
		return req.URL.Path != "/metrics"
	})))
	r.Get("/", s.handleIndex)
	r.Get("/live", s.handleLive)
	if !config.DisableMetrics {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{}))
	}
	s.router = r

	return s
}

// Handler returns the server's HTTP handler for mounting elsewhere.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Session returns the live session with the given ID, or nil.
func (s *Server) Session(id uint64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// handleIndex serves the rendered page. Each request mounts a fresh
// instance into a fresh document.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc := dom.NewDocument()
	root := doc.CreateElement("main")

	if err := s.rootFactory().Mount(root); err != nil {
		s.logger.Error("page mount failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, s.config.PageTitle, root.HTML())
}

const pageShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
%s
</body>
</html>
`

// handleLive upgrades to a websocket, mounts a fresh instance, and streams
// patches for its lifetime.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := &Session{
		ID:     s.nextID.Add(1),
		srv:    s,
		conn:   conn,
		doc:    dom.NewDocument(),
		rec:    &patchRecorder{},
		logger: s.logger,
		done:   make(chan struct{}),
	}
	sess.root = sess.doc.CreateElement("main")

	sess.inst = s.rootFactory()
	if err := sess.inst.Mount(sess.root); err != nil {
		s.logger.Error("session mount failed", "error", err)
		sess.sendError(protocol.ErrServerError, "mount failed")
		conn.Close()
		return
	}

	// The hello frame carries the full markup; only mutations after this
	// point become patches.
	sess.doc.SetRecorder(sess.rec)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.metrics.sessionsTotal.Inc()
	s.metrics.activeSessions.Inc()

	if err := sess.sendHello(); err != nil {
		s.logger.Error("session hello failed", "error", err)
		sess.Close()
		return
	}
	s.logger.Info("session started", "session_id", sess.ID)

	go sess.readLoop()
	go sess.heartbeatLoop()
	if s.config.OnSession != nil {
		go s.config.OnSession(sess)
	}
}

// removeSession releases a closed session.
func (s *Server) removeSession(id uint64) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		s.metrics.activeSessions.Dec()
	}
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()
	for _, sess := range open {
		sess.Close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
