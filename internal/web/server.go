package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"aejsx/internal/model"
	"aejsx/internal/transform"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

// maxBody bounds the size of a posted bundle.
const maxBody = 8 << 20

// Server exposes the transformer over HTTP.
type Server struct {
	opts model.Options
	log  *zap.Logger
}

// NewServer returns a server whose requests start from opts.
func NewServer(opts model.Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{opts: opts, log: log}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("/api/transform", s.handleTransform)
	mux.HandleFunc("/api/help", handleHelp)
	mux.HandleFunc("/api/version", handleVersion)
	return mux
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	fmt.Printf("Starting aejsx web server at http://%s\n", addr)
	s.log.Info("web server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// TransformRequest is the body of POST /api/transform.
type TransformRequest struct {
	File   string `json:"file"`
	Code   string `json:"code"`
	Wrap   bool   `json:"wrap"`
	Format bool   `json:"format"`
}

// TransformResponse is its reply.
type TransformResponse struct {
	Code    string         `json:"code"`
	Exports []model.Export `json:"exports"`
	Error   string         `json:"error,omitempty"`
	Line    int            `json:"line,omitempty"`
	Column  int            `json:"column,omitempty"`
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var req TransformRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.File == "" {
		req.File = "input.js"
	}

	opts := s.opts
	opts.Mode = model.Flat
	if req.Wrap {
		opts.Mode = model.Wrapped
	}
	opts.Format = req.Format

	res, err := transform.New(opts, transform.WithLogger(s.log)).Transform(req.File, req.Code)
	resp := TransformResponse{Code: res.Code, Exports: res.Exports}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusInternalServerError
		var perr *transform.ParseError
		if errors.As(err, &perr) {
			status = http.StatusUnprocessableEntity
			resp.Line, resp.Column, _ = perr.Position()
		}
	}
	if resp.Exports == nil {
		resp.Exports = []model.Export{}
	}

	writeJSON(w, status, resp)
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown")
	w.Write([]byte(text))
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": model.Version})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
