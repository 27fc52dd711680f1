package viewer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/markview/internal/core/page"
)

// Server serves the latest published page over HTTP. Every other path is
// served from the page's base directory so relative assets resolve.
type Server struct {
	mailbox    *Mailbox
	httpServer *http.Server
	listener   net.Listener
	addr       string
	logger     zerolog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server, *http.ServeMux)

// WithProfiling mounts the pprof handlers under /debug/pprof/.
func WithProfiling() ServerOption {
	return func(_ *Server, mux *http.ServeMux) {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
}

// NewServer returns a server that will listen on addr, e.g. "localhost:8080".
func NewServer(addr string, logger zerolog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		mailbox: NewMailbox(),
		addr:    addr,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serve)
	for _, opt := range opts {
		opt(s, mux)
	}

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) SetBackground(bg page.RGB) {
	s.mailbox.SetBackground(bg)
}

func (s *Server) Load(p page.Page) error {
	return s.mailbox.Load(p)
}

// Start listens and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("create listener: %w", err)
	}
	s.listener = listener

	s.logger.Info().Str("url", s.URL()).Msg("serving preview")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("preview server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the address of the preview page.
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/"
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Debug().Msg("shutting down preview server")
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP serves the page at / and assets relative to it elsewhere.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	p, ok := s.mailbox.Latest()
	if !ok {
		http.Error(w, "no page published yet", http.StatusServiceUnavailable)
		return
	}

	if r.URL.Path == "/" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(p.HTML))
		return
	}

	dir, ok := baseDir(p.BaseURI)
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.FileServer(http.Dir(dir)).ServeHTTP(w, r)
}

// baseDir converts a file:// base URI into a directory path.
func baseDir(base string) (string, bool) {
	u, err := url.Parse(base)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	return u.Path, true
}
