package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/rendr/pkg/vdom"
)

// Server accepts live sessions.
type Server struct {
	view     func() *vdom.VNode
	config   Config
	logger   *slog.Logger
	router   chi.Router
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session

	httpServer *http.Server
}

// NewServer creates a server that renders view for every session.
func NewServer(view func() *vdom.VNode, config Config) *Server {
	config.applyDefaults()
	s := &Server{
		view:     view,
		config:   config,
		logger:   config.Logger.With("component", "live"),
		sessions: make(map[string]*Session),
	}
	s.config.Logger = s.logger
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	r := chi.NewRouter()
	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	if config.MetricsPath != "" {
		r.Handle(config.MetricsPath, promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{}))
	}
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origins := s.config.AllowedOrigins
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return true
	}
	return slices.Contains(origins, r.Header.Get("Origin"))
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess := newSession(conn, s.config)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.config.Metrics.SessionOpened()
	s.logger.Info("session opened", "session_id", sess.ID)

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
		s.config.Metrics.SessionClosed()
		s.logger.Info("session closed", "session_id", sess.ID)
	}()

	if err := sess.Serve(r.Context(), s.view); err != nil {
		s.logger.Debug("session ended", "session_id", sess.ID, "error", err)
	}
}

// Run listens on Config.Addr until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.config.Addr,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session connection and gracefully stops the HTTP
// server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
