package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kievzenit/l25/internal/config"
	"github.com/kievzenit/l25/internal/interpreter"
	"github.com/kievzenit/l25/internal/pipeline"
)

//go:embed examples/*.l25
var builtinExamples embed.FS

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg    *config.Config
	logger *log.Logger

	examples map[string]string
	mux      *http.ServeMux
}

// New builds the HTTP API. Examples listed in cfg replace built-in examples
// of the same name.
func New(cfg *config.Config, logger *log.Logger) (*Server, error) {
	examples, err := loadBuiltinExamples()
	if err != nil {
		return nil, err
	}

	configured, err := cfg.ReadExamples()
	if err != nil {
		return nil, err
	}
	for name, source := range configured {
		examples[name] = source
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,

		examples: examples,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /compile", s.handleCompile)
	s.mux.HandleFunc("POST /visualize", s.handleVisualize)
	s.mux.HandleFunc("POST /check", s.handleCheck)
	s.mux.HandleFunc("GET /examples", s.handleExamples)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	return s, nil
}

func loadBuiltinExamples() (map[string]string, error) {
	entries, err := fs.ReadDir(builtinExamples, "examples")
	if err != nil {
		return nil, err
	}

	examples := make(map[string]string, len(entries))
	for _, entry := range entries {
		data, err := fs.ReadFile(builtinExamples, path.Join("examples", entry.Name()))
		if err != nil {
			return nil, err
		}
		examples[strings.TrimSuffix(entry.Name(), ".l25")] = string(data)
	}

	return examples, nil
}

func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Run serves on the configured address until ctx is cancelled, then shuts
// the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Printf("listening on %s", s.cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Printf("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}

type compileRequest struct {
	Code  string `json:"code"`
	Input string `json:"input"`
}

type compileResponse struct {
	Output string `json:"output"`
	Error  string `json:"error"`
}

type visualizeResponse struct {
	Diagram string `json:"diagram"`
	Error   string `json:"error"`
}

type checkResponse struct {
	Issues []string `json:"issues"`
	Error  string   `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Server.RunTimeout)
	defer cancel()

	res := pipeline.Run(ctx, []byte(req.Code), &pipeline.Options{
		Input: interpreter.NewReaderInput(strings.NewReader(req.Input)),
	})

	s.writeJSON(w, http.StatusOK, compileResponse{
		Output: res.Output,
		Error:  res.Error,
	})
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if !s.decode(w, r, &req) {
		return
	}

	diagram, err := pipeline.Visualize([]byte(req.Code))
	s.writeJSON(w, http.StatusOK, visualizeResponse{
		Diagram: diagram,
		Error:   pipeline.RenderError(err),
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if !s.decode(w, r, &req) {
		return
	}

	issues, err := pipeline.Check([]byte(req.Code))
	rendered := make([]string, 0, len(issues))
	for _, issue := range issues {
		rendered = append(rendered, issue.Error())
	}

	s.writeJSON(w, http.StatusOK, checkResponse{
		Issues: rendered,
		Error:  pipeline.RenderError(err),
	})
}

func (s *Server) handleExamples(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.examples)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}

		s.writeJSON(w, status, errorResponse{Error: "invalid request: " + err.Error()})
		return false
	}

	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("writing response: %v", err)
	}
}
