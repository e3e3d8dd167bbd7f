package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HTTPServer exposes the tool registry over plain HTTP for hosts that
// prefer a request/response transport to a spawned stdio process.
type HTTPServer struct {
	registry *Registry
	version  string
	logger   *zap.Logger
}

// NewHTTPServer builds the HTTP transport over the registry.
func NewHTTPServer(registry *Registry, version string, logger *zap.Logger) *HTTPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPServer{registry: registry, version: version, logger: logger}
}

// Router builds the route table: health probe, tool manifest and one POST
// endpoint per tool.
func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/manifest", s.handleManifest).Methods(http.MethodGet)
	r.HandleFunc("/tools/{name}", s.handleToolCall).Methods(http.MethodPost)
	return r
}

// ListenAndServe blocks serving on addr until the context is cancelled,
// then shuts down gracefully.
func (s *HTTPServer) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"name":    serverName,
		"version": s.version,
	})
}

func (s *HTTPServer) handleManifest(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    serverName,
		"version": s.version,
		"tools":   s.registry.Tools(),
	})
}

func (s *HTTPServer) handleToolCall(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var args map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	value, err := s.registry.Call(r.Context(), name, args)
	if err != nil {
		s.logger.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
		status := http.StatusInternalServerError
		if isUnknownTool(err) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, value)
}

func isUnknownTool(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "unknown tool")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
