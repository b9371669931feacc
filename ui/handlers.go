package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamcomp/app"
	"teamcomp/internal/errors"
	"teamcomp/ui/templates/fragments"
)

type menuView struct {
	Pages []app.PageConfig
}

type pageView struct {
	Page app.Page
	Nav  []app.PageConfig
}

// handleMenu renders the main menu
func (s *Server) handleMenu(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, fragments.Menu, menuView{Pages: s.registry.Menu()})
}

// handlePage renders a page shell. Visiting a page starts a load when its
// data is missing, failed, or stale; the tables arrive through the fragment.
func (s *Server) handlePage(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		controller, ok := s.registry.Controller(slug)
		if !ok {
			s.renderError(c, errors.NotFound("page "+slug))
			return
		}

		if controller.EnsureFresh(c.Request.Context()) {
			s.logger.Debug("[Page] %s: load started", slug)
		}

		nav := make([]app.PageConfig, 0, len(s.registry.Menu()))
		for _, p := range s.registry.Menu() {
			if p.Slug != slug {
				nav = append(nav, p)
			}
		}

		s.renderTemplate(c, http.StatusOK, fragments.Page, pageView{
			Page: controller.Snapshot(),
			Nav:  nav,
		})
	}
}

// handleFragment renders the current state of a page's tables
func (s *Server) handleFragment(c *gin.Context) {
	controller, ok := s.registry.Controller(c.Param("slug"))
	if !ok {
		s.renderError(c, errors.NotFound("page "+c.Param("slug")))
		return
	}

	if controller.Snapshot().State == app.StateIdle {
		controller.Refresh(c.Request.Context())
	}
	s.renderTemplate(c, http.StatusOK, fragments.Tables, controller.Snapshot())
}

// handleRefresh discards the current data and starts a new load
func (s *Server) handleRefresh(c *gin.Context) {
	slug := c.Param("slug")
	controller, ok := s.registry.Controller(slug)
	if !ok {
		s.renderError(c, errors.NotFound("page "+slug))
		return
	}

	controller.Refresh(c.Request.Context())
	s.logger.Info("[Page] %s: refresh requested", slug)

	if !isHTMX(c.Request) {
		c.Redirect(http.StatusSeeOther, "/"+slug)
		return
	}
	s.renderTemplate(c, http.StatusOK, fragments.Tables, controller.Snapshot())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("[UI] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.String(status, "Error: %s", err.Error())
}
