package ui

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"

	"teamcomp/app"
	"teamcomp/internal"
	"teamcomp/ui/templates/fragments"
)

//go:embed templates/*.html templates/fragments/*.html static/css/*
var embeddedFiles embed.FS

// Config holds UI server settings
type Config struct {
	GinMode string
}

// Server is the web front end. It renders each page's controller state and
// never fetches data itself.
type Server struct {
	router    *gin.Engine
	registry  *app.Registry
	templates *template.Template
	logger    *internal.Logger
}

// NewServer creates a server for the pages held by registry
func NewServer(registry *app.Registry, config Config, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.New(),
		registry:  registry,
		templates: templates,
		logger:    logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"formatUpdated": formatUpdated,
		"markdown":      renderMarkdown,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	for _, name := range fragments.All() {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q is not defined", name)
		}
	}
	return templates, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleMenu)
	s.router.GET("/healthz", s.handleHealth)

	for _, page := range s.registry.Pages() {
		s.router.GET("/"+page.Slug, s.handlePage(page.Slug))
	}

	s.router.GET("/fragments/:slug", s.handleFragment)
	s.router.POST("/fragments/:slug/refresh", s.handleRefresh)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting teamcomp UI on http://%s", addr)
	return s.router.Run(addr)
}
