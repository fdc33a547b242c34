// Package api exposes parse and convert over HTTP. Parse and convert
// failures travel in a success-shaped JSON envelope, not in transport
// status codes, so clients distinguish a bad document from a broken
// server.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/klauspost/compress/gzip"

	"github.com/zparse/zparse/debug"
	"github.com/zparse/zparse/limits"
)

// Spec configures a Server. Zero fields take defaults.
type Spec struct {
	Log    *slog.Logger
	Limits *limits.Config
}

// Server serves the zparse HTTP API.
type Server struct {
	Spec Spec

	srv *http.Server
}

// New creates a new Server instance.
func New(spec *Spec) *Server {
	if spec == nil {
		spec = &Spec{}
	}
	if spec.Log == nil {
		spec.Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slogLevel(),
		}))
	}
	return &Server{Spec: *spec}
}

func slogLevel() slog.Level {
	if debug.API() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Handler returns the API routes wrapped with CORS and gzip.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.health)
	mux.HandleFunc("GET /api/formats", s.formats)
	mux.HandleFunc("POST /api/parse", s.parse)
	mux.HandleFunc("POST /api/convert", s.convert)
	return gzhttp.GzipHandler(cors(gunzipBody(mux)))
}

// gunzipBody transparently decompresses gzip-encoded request bodies.
func gunzipBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") == "gzip" {
			zr, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			defer zr.Close()
			r.Body = zr
			r.Header.Del("Content-Encoding")
		}
		next.ServeHTTP(w, r)
	})
}

// Start begins serving on addr. It returns once the listener is bound,
// serving continues on a separate goroutine.
func (s *Server) Start(addr string) error {
	if s.srv != nil {
		return errors.New("server already running")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Spec.Log.Error("api server error", "error", err)
		}
	}()
	s.Spec.Log.Info("api listening", "addr", ln.Addr().String())
	return nil
}

// Stop shuts the server down, draining in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	err := s.srv.Shutdown(ctx)
	s.srv = nil
	return err
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "*")
		h.Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
