package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/san-kum/algoviz/internal/logging"
)

const SavedMessage = "Array saved!"

type saveRequest struct {
	Username string `json:"username"`
	Array    []int  `json:"array"`
}

type saveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type loadResponse struct {
	Array []int `json:"array"`
}

type usersResponse struct {
	Users []string `json:"users"`
}

// Server serves the save and load endpoints over a Store.
type Server struct {
	store      Store
	logger     *slog.Logger
	httpServer *http.Server
}

func NewServer(store Store, logger *slog.Logger) *Server {
	return &Server{store: store, logger: logging.OrDiscard(logger)}
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /save_array", s.handleSave)
	mux.HandleFunc("GET /load_array/{username}", s.handleLoad)
	mux.HandleFunc("GET /users", s.handleUsers)
	return s.logRequests(mux)
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("persistence server listening", "addr", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("persistence server stopped")
	return nil
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, saveResponse{Status: "error", Message: "invalid request body"})
		return
	}
	user := Username(req.Username)
	if req.Array == nil {
		req.Array = []int{}
	}

	if err := s.store.Put(r.Context(), user, req.Array); err != nil {
		s.logger.Error("save failed", "username", user, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, saveResponse{Status: "error", Message: "could not save array"})
		return
	}
	s.logger.Debug("array saved", "username", user, "len", len(req.Array))
	s.writeJSON(w, http.StatusOK, saveResponse{Status: "success", Message: SavedMessage})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("username")
	values, err := s.store.Get(r.Context(), user)
	if err != nil {
		s.logger.Error("load failed", "username", user, "error", err)
		http.Error(w, "could not load array", http.StatusInternalServerError)
		return
	}
	if values == nil {
		values = []int{}
	}
	s.writeJSON(w, http.StatusOK, loadResponse{Array: values})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.Users(r.Context())
	if err != nil {
		s.logger.Error("list users failed", "error", err)
		http.Error(w, "could not list users", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []string{}
	}
	s.writeJSON(w, http.StatusOK, usersResponse{Users: users})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
