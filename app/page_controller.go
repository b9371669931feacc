package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"teamcomp/domain/boss"
	"teamcomp/domain/overlay"
	"teamcomp/domain/table"
	"teamcomp/internal"
	"teamcomp/ports"
)

// PageState is the rendering state of a page
type PageState string

const (
	StateIdle    PageState = "idle"
	StateLoading PageState = "loading"
	StateReady   PageState = "ready"
	StateError   PageState = "error"
)

// RowView is a body row ready for rendering. ImageURL belongs to the first
// sub-column.
type RowView struct {
	SourceIndex int
	Segments    []string
	ImageURL    string
}

// TableView is an assembled table with its resolved images
type TableView struct {
	Title          string
	SubColumnCount int
	SubHeaders     []string
	HeaderImageURL string
	Rows           []RowView
}

// Page is a snapshot of one page controller
type Page struct {
	Config      PageConfig
	State       PageState
	Title       string
	LastUpdated string
	Tables      []TableView
	Error       string
	Generation  uuid.UUID
	LoadedAt    time.Time
}

// ControllerOptions tunes a PageController
type ControllerOptions struct {
	// Timeout bounds one load including image lookups
	Timeout time.Duration
	// TTL is how long a ready page is served before EnsureFresh reloads it.
	// Zero keeps it until an explicit refresh.
	TTL    time.Duration
	Logger *internal.Logger
	Now    func() time.Time
}

// PageController loads one page's data and holds its current state. Each
// refresh gets a new generation token and only the latest generation may
// commit, so a slow superseded load can never overwrite newer state.
type PageController struct {
	cfg      PageConfig
	source   ports.BossSource
	resolver *overlay.Resolver
	opts     ControllerOptions

	mu         sync.RWMutex
	generation uuid.UUID
	page       Page
	done       chan struct{}
}

// NewPageController creates an idle controller. resolver may be nil when
// the page shows no images.
func NewPageController(cfg PageConfig, source ports.BossSource, resolver *overlay.Resolver, opts ControllerOptions) *PageController {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = internal.DefaultLogger
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PageController{
		cfg:      cfg,
		source:   source,
		resolver: resolver,
		opts:     opts,
		page:     Page{Config: cfg, State: StateIdle},
	}
}

// Config returns the page configuration
func (c *PageController) Config() PageConfig {
	return c.cfg
}

// Refresh starts a new load and returns at once with the page in the
// loading state. The returned channel closes when that load has finished,
// whether it committed or was discarded as stale.
func (c *PageController) Refresh(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(ctx)
}

// startLocked swaps in a new generation and launches its load. c.mu must
// be held for writing.
func (c *PageController) startLocked(ctx context.Context) <-chan struct{} {
	gen := uuid.New()
	done := make(chan struct{})

	c.generation = gen
	c.page = Page{Config: c.cfg, State: StateLoading, Generation: gen}
	c.done = done

	// The load outlives the request that triggered it.
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.Timeout)
	go func() {
		defer close(done)
		defer cancel()
		c.commit(c.build(loadCtx, gen))
	}()

	return done
}

// Load refreshes and waits for the result
func (c *PageController) Load(ctx context.Context) Page {
	done := c.Refresh(ctx)
	select {
	case <-done:
	case <-ctx.Done():
	}
	return c.Snapshot()
}

// EnsureFresh starts a load unless one is running or the ready data is
// still within its TTL. It reports whether a load was started.
func (c *PageController) EnsureFresh(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.page.State {
	case StateLoading:
		return false
	case StateReady:
		if c.opts.TTL <= 0 || c.opts.Now().Sub(c.page.LoadedAt) < c.opts.TTL {
			return false
		}
	}
	c.startLocked(ctx)
	return true
}

// Wait blocks until the in-flight load, if any, has finished
func (c *PageController) Wait(ctx context.Context) {
	c.mu.RLock()
	done := c.done
	c.mu.RUnlock()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Snapshot returns the current page state
func (c *PageController) Snapshot() Page {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

func (c *PageController) commit(page Page) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page.Generation != c.generation {
		c.opts.Logger.Debug("[PageController] %s: discarding stale load %s", c.cfg.Slug, page.Generation)
		return false
	}
	page.LoadedAt = c.opts.Now()
	c.page = page
	return true
}

func (c *PageController) build(ctx context.Context, gen uuid.UUID) Page {
	page := Page{Config: c.cfg, Generation: gen}

	payload, err := c.source.FetchBoss(ctx, c.cfg.Endpoint)
	if err != nil {
		c.opts.Logger.Warn("[PageController] %s: fetch %s failed: %v", c.cfg.Slug, c.cfg.Endpoint, err)
		page.State = StateError
		page.Error = err.Error()
		return page
	}

	page.State = StateReady
	page.Title = payload.Title
	page.LastUpdated = payload.LastUpdated
	page.Tables = c.assemble(ctx, payload)

	c.opts.Logger.Info("[PageController] %s: %d tables ready", c.cfg.Slug, len(page.Tables))
	return page
}

func (c *PageController) assemble(ctx context.Context, payload *boss.Payload) []TableView {
	tables := table.Assemble(payload.Headers, payload.Rows, table.Options{
		Mode:          c.cfg.Mode,
		DropEmptyRows: c.cfg.DropEmptyRows,
	})

	var (
		ov   overlay.Map
		urls map[string]string
	)
	if c.cfg.ShowImages && c.resolver != nil && payload.HasImages() {
		ov = overlay.Build(payload.HeaderImages, payload.BodyImages, len(payload.Headers))
		urls = c.resolver.ResolveAll(ctx, ov.Filenames())
	}

	return BuildViews(c.cfg, tables, ov, urls)
}

// BuildViews joins assembled tables with resolved image URLs. Body images
// are looked up by each row's source index.
func BuildViews(cfg PageConfig, tables []table.Table, ov overlay.Map, urls map[string]string) []TableView {
	var subHeaders []string
	if cfg.Mode == table.FixedTriplet {
		subHeaders = cfg.SubHeaders
	}

	views := make([]TableView, len(tables))
	for col, t := range tables {
		view := TableView{
			Title:          t.Title,
			SubColumnCount: t.SubColumnCount,
			SubHeaders:     subHeaders,
			HeaderImageURL: urls[ov.Header(col)],
			Rows:           make([]RowView, len(t.Rows)),
		}
		for i, row := range t.Rows {
			view.Rows[i] = RowView{
				SourceIndex: row.SourceIndex,
				Segments:    row.Segments,
				ImageURL:    urls[ov.Body(row.SourceIndex, col)],
			}
		}
		views[col] = view
	}
	return views
}
