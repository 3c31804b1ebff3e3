package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/runoshun/gantt/internal/domain"
)

// Server exposes a domain.DataSource through the REST API consumed by Client.
type Server struct {
	source domain.DataSource
	logger domain.Logger
	mux    *http.ServeMux
}

// NewServer creates a handler serving source. logger may be nil.
func NewServer(source domain.DataSource, logger domain.Logger) *Server {
	s := &Server{source: source, logger: logger, mux: http.NewServeMux()}
	for _, mode := range []domain.Mode{domain.ModeTasks, domain.ModeProjects} {
		path := CollectionPath(mode)
		s.mux.HandleFunc("GET "+path, s.handleList(mode))
		s.mux.HandleFunc("PUT "+path+"/{id}", s.handleUpdate(mode))
		s.mux.HandleFunc("OPTIONS "+path+"/{id}", handlePreflight)
	}
	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintln(w, "gantt server OK")
	})
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	s.mux.ServeHTTP(w, r)
}

func handlePreflight(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleList(mode domain.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.source.List(r.Context(), mode)
		if err != nil {
			s.log(mode, "list failed: "+err.Error())
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if rows == nil {
			rows = []domain.RawRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rows)
	}
}

func (s *Server) handleUpdate(mode domain.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var body UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.source.Update(r.Context(), id, mode, body.StartDate, body.EndDate); err != nil {
			s.log(mode, fmt.Sprintf("update %s failed: %v", id, err))
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpdateFailure), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) log(mode domain.Mode, msg string) {
	if s.logger != nil {
		s.logger.Error(mode, "serve", msg)
	}
}
