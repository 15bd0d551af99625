package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"herbalsearch/internal/domain"
	"herbalsearch/internal/render"
	"herbalsearch/internal/search"
)

// Server exposes a Catalog over the plants API
type Server struct {
	catalog  *Catalog
	pipeline *search.Pipeline
	mux      *http.ServeMux
	handler  http.Handler
	limiter  *rate.Limiter
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithRateLimit caps requests across all clients at perSecond with the given
// burst. perSecond <= 0 leaves the server unlimited.
func WithRateLimit(perSecond float64, burst int) ServerOption {
	return func(s *Server) {
		if perSecond <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewServer creates the HTTP handler for c
func NewServer(c *Catalog, opts ...ServerOption) *Server {
	s := &Server{
		catalog:  c,
		pipeline: search.NewPipeline(c, nil),
		mux:      http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /api/plants", s.handlePlants)
	s.mux.HandleFunc("GET /api/plants/{id}", s.handlePlant)
	s.mux.HandleFunc("GET /search", s.handleSearchFragment)

	var h http.Handler = s.mux
	if s.limiter != nil {
		h = withRateLimit(s.limiter, h)
	}
	s.handler = withRequestLog(withCommonHeaders(h))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handlePlants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	plants, err := s.catalog.Search(r.Context(), q.Get("search"), q.Get("category"))
	if err != nil {
		log.Printf("plant search failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, domain.PlantsResponse{Plants: plants})
}

func (s *Server) handlePlant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("plant %q not found", r.PathValue("id")))
		return
	}
	p, err := s.catalog.Plant(id)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleSearchFragment returns the quick-search dropdown markup for a term
func (s *Server) handleSearchFragment(w http.ResponseWriter, r *http.Request) {
	v := s.pipeline.Execute(r.Context(), r.URL.Query().Get("search"))

	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, v); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("error writing response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, domain.ErrorResponse{Error: msg})
}

func withCommonHeaders(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func withRateLimit(l *rate.Limiter, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		h.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLog(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)

		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = "-"
		}
		log.Printf("%s %s %d %s request_id=%s", r.Method, strings.TrimSpace(r.URL.RequestURI()), rec.status, time.Since(start).Round(time.Microsecond), id)
	})
}
