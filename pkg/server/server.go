// Package server serves scenes over HTTP for stream software previews.
//
// Broadcast tools load overlays from URLs, so the server renders a scene on
// request and answers with the encoded artifact:
//
//	GET /healthz
//	GET /scenes
//	GET /scenes/{scene}?format=gif&theme=midnight&player=osk&player=2
//
// Every request runs its own pipeline; artifacts are cached by the runner,
// so repeated requests for unchanged data are served without drawing.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/orchard/pkg/buildinfo"
	orcherrors "github.com/matzehuels/orchard/pkg/errors"
	"github.com/matzehuels/orchard/pkg/pipeline"
	"github.com/matzehuels/orchard/pkg/theme"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// shutdownTimeout bounds the graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Options are the defaults applied to every request.
type Options struct {
	Addr       string
	Theme      string // preset or theme file; requests may pick another preset
	Results    string
	Roster     string
	Donors     string
	Tournament string
}

// Server renders scenes on request.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New creates a server around runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	s := &Server{runner: runner, opts: opts, logger: runner.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/healthz", s.health)
	r.Get("/scenes", s.listScenes)
	r.Get("/scenes/{scene}", s.renderScene)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving scenes", "addr", "http://"+s.opts.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

type sceneInfo struct {
	Name    string   `json:"name"`
	Formats []string `json:"formats"`
}

func (s *Server) listScenes(w http.ResponseWriter, _ *http.Request) {
	scenes := make([]sceneInfo, 0)
	for _, name := range pipeline.Scenes() {
		scenes = append(scenes, sceneInfo{Name: name, Formats: pipeline.SceneFormats(name)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenes": scenes, "themes": theme.PresetNames()})
}

func (s *Server) renderScene(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := opts.Formats[0]
	data := res.Artifacts[format]
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Run-ID", res.RunID)
	w.Header().Set("Cache-Control", "no-cache")
	if res.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// options builds pipeline options from the request and server defaults.
// Themes are limited to presets so requests cannot read arbitrary files.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Scene:        chi.URLParam(r, "scene"),
		Theme:        s.opts.Theme,
		Results:      s.opts.Results,
		Roster:       s.opts.Roster,
		Donors:       s.opts.Donors,
		Tournament:   s.opts.Tournament,
		Players:      q["player"],
		Commentators: q["commentator"],
		Flavor:       q.Get("flavor"),
		Refresh:      q.Get("refresh") == "1" || q.Get("refresh") == "true",
	}
	if err := pipeline.ValidateScene(opts.Scene); err != nil {
		return opts, err
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	} else {
		opts.Formats = pipeline.SceneFormats(opts.Scene)[:1]
	}
	if t := q.Get("theme"); t != "" {
		if !theme.IsPreset(t) {
			return opts, orcherrors.New(orcherrors.ErrCodeInvalidTheme, "unknown theme %q (available: %v)", t, theme.PresetNames())
		}
		opts.Theme = t
	}
	if seed := q.Get("seed"); seed != "" {
		n, err := strconv.Atoi(seed)
		if err != nil || n < 0 {
			return opts, orcherrors.New(orcherrors.ErrCodeInvalidInput, "invalid seed %q", seed)
		}
		opts.Seed = n
	}
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case orcherrors.Is(err, orcherrors.ErrCodeFileNotFound), orcherrors.Is(err, orcherrors.ErrCodeNotFound):
		status = http.StatusNotFound
	case orcherrors.IsUserError(err):
		status = http.StatusBadRequest
	case orcherrors.Is(err, orcherrors.ErrCodeRateLimited):
		status = http.StatusTooManyRequests
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("render failed", "err", err)
	}
	code := orcherrors.GetCode(err)
	if code == "" {
		code = orcherrors.ErrCodeInternal
	}
	writeJSON(w, status, map[string]string{"error": orcherrors.UserMessage(err), "code": string(code)})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatGIF:
		return "image/gif"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
