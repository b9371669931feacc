package overlay

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"teamcomp/internal"
	"teamcomp/ports"
)

// DefaultConcurrency bounds in-flight image lookups when none is configured
const DefaultConcurrency = 8

// Resolver turns image filenames into displayable URLs through an external
// lookup. Lookups are independent: a failure only hides that one image.
type Resolver struct {
	lookup ports.ImageLookup
	sem    *semaphore.Weighted
	logger *internal.Logger
}

// NewResolver creates a resolver allowing up to concurrency parallel lookups
func NewResolver(lookup ports.ImageLookup, concurrency int, logger *internal.Logger) *Resolver {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Resolver{
		lookup: lookup,
		sem:    semaphore.NewWeighted(int64(concurrency)),
		logger: logger,
	}
}

// Resolve returns the URL for filename, or "" when the filename is empty,
// the lookup fails, or the service has no URL for it
func (r *Resolver) Resolve(ctx context.Context, filename string) string {
	if filename == "" || r.lookup == nil {
		return ""
	}
	url, err := r.lookup.LookupImage(ctx, filename)
	if err != nil {
		r.logger.Warn("[ImageResolver] lookup failed for %q: %v", filename, err)
		return ""
	}
	return url
}

// ResolveAll resolves every filename concurrently. Only filenames with a
// URL appear in the result.
func (r *Resolver) ResolveAll(ctx context.Context, filenames []string) map[string]string {
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		urls = make(map[string]string, len(filenames))
	)

	for _, name := range filenames {
		if name == "" {
			continue
		}
		if err := r.sem.Acquire(ctx, 1); err != nil {
			r.logger.Debug("[ImageResolver] stopped before %q: %v", name, err)
			break
		}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			defer r.sem.Release(1)

			if url := r.Resolve(ctx, name); url != "" {
				mu.Lock()
				urls[name] = url
				mu.Unlock()
			}
		}(name)
	}

	wg.Wait()
	return urls
}
