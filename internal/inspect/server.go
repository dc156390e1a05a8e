// Package inspect serves a read-only HTTP view of a live router: the
// sorted route table, match probes, scoped-resource resolution, and a
// websocket stream that sends a snapshot on connect and a fresh one each
// time Notify is called. It never renders or serves the matched pages
// themselves.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Server exposes a router over HTTP for inspection.
type Server struct {
	router *router.Router
	log    *slog.Logger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewServer creates an inspector for the given router. A nil logger
// falls back to slog.Default.
func NewServer(r *router.Router, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		router: r,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The inspector is a local dev tool; it accepts any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the inspector's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)

	mux.Get("/routes", s.handleRoutes)
	mux.Get("/match", s.handleMatch)
	mux.Get("/resolve", s.handleResolve)
	mux.Get("/ws", s.handleWS)

	return mux
}

// ListenAndServe runs the inspector until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("inspector listening", "addr", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Notify pushes a fresh manifest to every connected websocket client.
// Call it after mutating the router.
func (s *Server) Notify() {
	manifest := router.BuildManifest(s.router)

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(manifest); err != nil {
			s.log.Warn("dropping inspector client", "err", err)
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// handleRoutes serves the full manifest.
func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, router.BuildManifest(s.router))
}

// matchResponse is the wire form of a match probe.
type matchResponse struct {
	Matched        bool              `json:"matched"`
	Pattern        string            `json:"pattern,omitempty"`
	Kind           string            `json:"kind,omitempty"`
	Params         map[string]string `json:"params,omitempty"`
	RedirectTarget string            `json:"redirectTarget,omitempty"`
	RedirectStatus int               `json:"redirectStatus,omitempty"`
}

// handleMatch probes the router: GET /match?path=/users/42[&source=/feed].
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "missing path parameter", http.StatusBadRequest)
		return
	}

	var m *router.RouteMatch
	if source := r.URL.Query().Get("source"); source != "" {
		m = s.router.MatchRouteFrom(path, source)
	} else {
		m = s.router.MatchRoute(path)
	}

	if m == nil {
		writeJSON(w, http.StatusOK, matchResponse{Matched: false})
		return
	}
	resp := matchResponse{
		Matched: true,
		Pattern: m.Route.Pattern,
		Kind:    m.Route.Kind.String(),
		Params:  m.Params,
	}
	if target, ok := m.RedirectTarget(); ok {
		resp.RedirectTarget = target
		resp.RedirectStatus, _ = m.RedirectStatus()
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolveResponse is the wire form of a scoped-resource probe.
type resolveResponse struct {
	Layout    string            `json:"layout,omitempty"`
	ErrorPage string            `json:"errorPage,omitempty"`
	Loading   string            `json:"loading,omitempty"`
	Template  string            `json:"template,omitempty"`
	NotFound  string            `json:"notFound,omitempty"`
	Parallel  map[string]string `json:"parallel,omitempty"`
}

// handleResolve reports the hierarchical resources for a pattern:
// GET /resolve?pattern=/dashboard/settings.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")
	if pattern == "" {
		http.Error(w, "missing pattern parameter", http.StatusBadRequest)
		return
	}

	resp := resolveResponse{}
	if rt := s.router.GetLayout(pattern); rt != nil {
		resp.Layout = rt.Pattern
	}
	if rt := s.router.GetErrorPage(pattern); rt != nil {
		resp.ErrorPage = rt.Pattern
	}
	if rt := s.router.GetLoadingPage(pattern); rt != nil {
		resp.Loading = rt.Pattern
	}
	if rt := s.router.GetTemplate(pattern); rt != nil {
		resp.Template = rt.Pattern
	}
	if rt := s.router.GetNotFoundPage(pattern); rt != nil {
		resp.NotFound = rt.Pattern
	}
	if slots := s.router.GetParallelRoutes(pattern); len(slots) > 0 {
		resp.Parallel = make(map[string]string, len(slots))
		for name, rt := range slots {
			resp.Parallel[name] = rt.Pattern
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleWS upgrades to a websocket and streams manifest snapshots.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	// Send the current snapshot immediately.
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteJSON(router.BuildManifest(s.router)); err != nil {
		s.dropClient(conn)
		return
	}

	// Drain reads so pings and close frames are processed; the
	// inspector never expects client messages.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.dropClient(conn)
				return
			}
		}
	}()
}

func (s *Server) dropClient(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[conn]; ok {
		conn.Close()
		delete(s.clients, conn)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
