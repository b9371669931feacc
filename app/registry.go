package app

import (
	"teamcomp/domain/overlay"
	"teamcomp/ports"
)

// Registry owns one controller per configured page. Pages never share
// state; each controller keeps its own copy of fetched data.
type Registry struct {
	pages       []PageConfig
	controllers map[string]*PageController
}

// NewRegistry builds a controller for every page
func NewRegistry(pages []PageConfig, source ports.BossSource, resolver *overlay.Resolver, opts ControllerOptions) *Registry {
	r := &Registry{
		pages:       pages,
		controllers: make(map[string]*PageController, len(pages)),
	}
	for _, p := range pages {
		r.controllers[p.Slug] = NewPageController(p, source, resolver, opts)
	}
	return r
}

// Pages returns every registered page in order
func (r *Registry) Pages() []PageConfig {
	return r.pages
}

// Menu returns the pages shown in navigation
func (r *Registry) Menu() []PageConfig {
	return MenuPages(r.pages)
}

// Controller returns the controller for slug
func (r *Registry) Controller(slug string) (*PageController, bool) {
	c, ok := r.controllers[slug]
	return c, ok
}
