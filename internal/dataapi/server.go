package dataapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"teamcomp/internal"
)

// Config holds data API settings
type Config struct {
	// ImageBaseURL is the bucket origin images are served from; empty
	// means image lookups answer with a null URL
	ImageBaseURL string
}

// Server serves cached page payloads and image URLs over HTTP
type Server struct {
	router *chi.Mux
	store  *Store
	config Config
	logger *internal.Logger
}

// NewServer creates the data API around store
func NewServer(store *Store, config Config, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	config.ImageBaseURL = strings.TrimRight(config.ImageBaseURL, "/")

	s := &Server{
		router: chi.NewRouter(),
		store:  store,
		config: config,
		logger: logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(allowAnyOrigin)
}

func (s *Server) setupRoutes() {
	s.router.Get("/api/status", s.handleStatus)
	s.router.Post("/api/refresh", s.handleRefresh)
	s.router.Get("/api/images/*", s.handleImage)
	s.router.Get("/api/{endpoint}", s.handleEndpoint)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr
func (s *Server) Start(addr string) error {
	s.logger.Info("[DataAPI] listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// handleEndpoint serves /api/<boss>Team and /api/data
func (s *Server) handleEndpoint(w http.ResponseWriter, r *http.Request) {
	key, ok := storeKey(chi.URLParam(r, "endpoint"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.store.Payload(key)))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Status())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Load(); err != nil {
		s.logger.Error("[DataAPI] refresh failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Data reloaded successfully",
		"loaded_at": s.store.LoadedAt().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "*")
	// chi routes on RawPath when the request escaped a slash, and the
	// param is then still escaped
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(filename); err == nil {
			filename = unescaped
		}
	}

	var imageURL *string
	if s.config.ImageBaseURL != "" && filename != "" {
		u := s.config.ImageBaseURL + "/cached_images/" + imageKeyPath(filename)
		imageURL = &u
	}
	writeJSON(w, http.StatusOK, map[string]*string{"image_url": imageURL})
}

// imageKeyPath escapes an object key for a URL path, keeping "/" as the
// key separator
func imageKeyPath(key string) string {
	return (&url.URL{Path: key}).EscapedPath()
}

// storeKey maps an endpoint name to its data file key
func storeKey(endpoint string) (string, bool) {
	if endpoint == "data" {
		return "data", true
	}
	name, ok := strings.CutSuffix(endpoint, "Team")
	if !ok {
		return "", false
	}
	for _, b := range Bosses {
		if b == name {
			return b, true
		}
	}
	return "", false
}

func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
