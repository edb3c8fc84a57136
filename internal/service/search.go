// Package service holds the application services between the API client
// and the TUI: the paginated search session, the activity feed, and the
// board/brand operations with their local cache.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/store"
)

const defaultPageSize = 20

// Searcher fetches one page of ad search results. *api.Client satisfies it.
type Searcher interface {
	SearchAds(ctx context.Context, filters domain.SearchFilters, page, limit int) (api.SearchPage, error)
}

// SearchCache persists the first result page per filter signature so the
// feed paints instantly on the next launch. *store.Cache satisfies it.
type SearchCache interface {
	GetSearch(filters domain.SearchFilters) (store.CachedSearch, bool)
	SaveSearch(filters domain.SearchFilters, cached store.CachedSearch) error
}

// SearchController owns one search session: the active filters, the
// accumulated result list, and the guards that keep overlapping fetches
// from racing each other.
//
// Every fresh fetch (initial load or filter change) bumps a generation
// counter captured at dispatch time. A response whose generation no longer
// matches is discarded without touching state, so a slow stale response
// can never overwrite a newer one. Load-more fetches append instead of
// replacing and are serialized by a simple in-flight flag; their response
// is also dropped when a fresh fetch superseded the session while they
// were in flight.
type SearchController struct {
	searcher Searcher
	cache    SearchCache
	logger   *slog.Logger
	pageSize int

	mu          sync.Mutex
	filters     domain.SearchFilters
	items       []domain.Ad
	page        int
	total       int
	hasNext     bool
	generation  uint64
	fetching    bool
	loadingMore bool
}

// NewSearchController creates a controller with default filters. A nil
// cache disables first-page persistence.
func NewSearchController(searcher Searcher, cache SearchCache, logger *slog.Logger, pageSize int) *SearchController {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &SearchController{
		searcher: searcher,
		cache:    cache,
		logger:   logger,
		pageSize: pageSize,
		filters:  domain.SearchFilters{}.Normalize(),
	}
}

// CachedFirstPage returns the persisted first page for the current
// filters, for painting the feed before the network fetch lands.
func (c *SearchController) CachedFirstPage() (store.CachedSearch, bool) {
	if c.cache == nil {
		return store.CachedSearch{}, false
	}
	c.mu.Lock()
	filters := c.filters
	c.mu.Unlock()
	return c.cache.GetSearch(filters)
}

// SetFilters merges a partial update into the session filters and resets
// the page counter. The result list is left as-is; it is replaced when the
// next fresh fetch lands.
func (c *SearchController) SetFilters(update domain.FilterUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = c.filters.Apply(update).Normalize()
	c.page = 1
}

// UpdateFilters merges the update and immediately runs a fresh fetch.
func (c *SearchController) UpdateFilters(ctx context.Context, update domain.FilterUpdate) error {
	c.SetFilters(update)
	return c.FetchFresh(ctx)
}

// FetchFresh replaces the whole result list with page 1 for the current
// filters. A stale response (superseded by a newer fresh fetch) is
// discarded entirely.
//
// On failure the list is cleared and hasNext forced false: showing "no
// results" beats leaving stale data visible.
func (c *SearchController) FetchFresh(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	filters := c.filters
	c.fetching = true
	c.mu.Unlock()

	page, err := c.searcher.SearchAds(ctx, filters, 1, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// A newer fresh fetch owns the session now.
		c.logger.Debug("discarding stale search response", "generation", gen, "current", c.generation)
		return nil
	}
	c.fetching = false

	if err != nil {
		c.items = nil
		c.page = 1
		c.total = 0
		c.hasNext = false
		c.logger.Error("search failed", "keyword", filters.Keyword, "error", err)
		return err
	}

	c.items = page.Items
	c.page = 1
	c.total = page.Total
	c.hasNext = page.HasNext
	c.logger.Debug("search results", "keyword", filters.Keyword, "count", len(page.Items), "total", page.Total)

	if c.cache != nil {
		cached := store.CachedSearch{
			Items:   page.Items,
			Total:   page.Total,
			HasNext: page.HasNext,
			SavedAt: time.Now(),
		}
		if cacheErr := c.cache.SaveSearch(filters, cached); cacheErr != nil {
			c.logger.Warn("failed to cache search page", "error", cacheErr)
		}
	}
	return nil
}

// LoadMore appends the next page to the accumulated list. It is a no-op
// while another load-more is pending or when there is no further page, so
// rapid scroll events cannot fire duplicate requests. A load-more failure
// leaves the existing items intact and the session retryable.
func (c *SearchController) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loadingMore || !c.hasNext {
		c.mu.Unlock()
		return nil
	}
	c.loadingMore = true
	gen := c.generation
	next := c.page + 1
	filters := c.filters
	c.mu.Unlock()

	page, err := c.searcher.SearchAds(ctx, filters, next, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingMore = false

	if gen != c.generation {
		c.logger.Debug("discarding stale load-more response", "page", next)
		return nil
	}
	if err != nil {
		c.logger.Error("load more failed", "page", next, "error", err)
		return err
	}

	c.items = append(c.items, page.Items...)
	c.page = next
	c.total = page.Total
	c.hasNext = page.HasNext
	return nil
}

// Filters returns the active filters.
func (c *SearchController) Filters() domain.SearchFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Items returns a copy of the accumulated result list.
func (c *SearchController) Items() []domain.Ad {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Ad, len(c.items))
	copy(out, c.items)
	return out
}

// Total returns the backend's total match count for the current filters.
func (c *SearchController) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// HasNext reports whether another page is available.
func (c *SearchController) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasNext
}

// Busy reports whether any fetch (fresh or load-more) is pending.
func (c *SearchController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetching || c.loadingMore
}
