package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
)

// stubSearcher routes each SearchAds call through a test-provided func.
type stubSearcher struct {
	fn func(filters domain.SearchFilters, page int) (api.SearchPage, error)
}

func (s stubSearcher) SearchAds(_ context.Context, filters domain.SearchFilters, page, _ int) (api.SearchPage, error) {
	return s.fn(filters, page)
}

func ads(ids ...string) []domain.Ad {
	out := make([]domain.Ad, len(ids))
	for i, id := range ids {
		out[i] = domain.Ad{ID: id, AdvertiserName: "adv-" + id}
	}
	return out
}

func adIDs(items []domain.Ad) []string {
	out := make([]string, len(items))
	for i, ad := range items {
		out[i] = ad.ID
	}
	return out
}

func TestStalenessGuardDiscardsLateResponse(t *testing.T) {
	metaStarted := make(chan struct{})
	releaseMeta := make(chan struct{})

	searcher := stubSearcher{fn: func(filters domain.SearchFilters, page int) (api.SearchPage, error) {
		switch filters.Platform {
		case domain.PlatformMeta:
			close(metaStarted)
			<-releaseMeta // arrives after the google response
			return api.SearchPage{Items: ads("a", "b"), Total: 2, Page: page, HasNext: true}, nil
		case domain.PlatformGoogle:
			return api.SearchPage{Items: ads("c", "d"), Total: 2, Page: page, HasNext: false}, nil
		}
		return api.SearchPage{}, fmt.Errorf("unexpected platform %q", filters.Platform)
	}}

	ctrl := NewSearchController(searcher, nil, nil, 20)
	ctx := context.Background()

	meta := domain.PlatformMeta
	ctrl.SetFilters(domain.FilterUpdate{Platform: &meta})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.FetchFresh(ctx) // generation 1, will resolve late
	}()
	<-metaStarted

	google := domain.PlatformGoogle
	require.NoError(t, ctrl.UpdateFilters(ctx, domain.FilterUpdate{Platform: &google})) // generation 2

	close(releaseMeta)
	wg.Wait()

	assert.Equal(t, []string{"c", "d"}, adIDs(ctrl.Items()), "late meta response must be discarded")
	assert.False(t, ctrl.HasNext(), "hasNext comes from the google response")
}

func TestLoadMoreAppendsInOrder(t *testing.T) {
	pages := map[int]api.SearchPage{
		1: {Items: ads("a", "b"), Total: 6, HasNext: true},
		2: {Items: ads("c", "d"), Total: 6, HasNext: true},
		3: {Items: ads("e", "f"), Total: 6, HasNext: false},
	}
	searcher := stubSearcher{fn: func(_ domain.SearchFilters, page int) (api.SearchPage, error) {
		return pages[page], nil
	}}

	ctrl := NewSearchController(searcher, nil, nil, 2)
	ctx := context.Background()

	require.NoError(t, ctrl.FetchFresh(ctx))
	require.NoError(t, ctrl.LoadMore(ctx))
	require.NoError(t, ctrl.LoadMore(ctx))

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, adIDs(ctrl.Items()))
	assert.False(t, ctrl.HasNext())

	// No further page: LoadMore is a no-op.
	require.NoError(t, ctrl.LoadMore(ctx))
	assert.Len(t, ctrl.Items(), 6)
}

func TestLoadMoreGuardPreventsDuplicateFires(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	inFlight := make(chan struct{})
	release := make(chan struct{})

	searcher := stubSearcher{fn: func(_ domain.SearchFilters, page int) (api.SearchPage, error) {
		if page == 1 {
			return api.SearchPage{Items: ads("a"), Total: 3, HasNext: true}, nil
		}
		mu.Lock()
		calls++
		mu.Unlock()
		close(inFlight)
		<-release
		return api.SearchPage{Items: ads("b"), Total: 3, HasNext: true}, nil
	}}

	ctrl := NewSearchController(searcher, nil, nil, 1)
	ctx := context.Background()
	require.NoError(t, ctrl.FetchFresh(ctx))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.LoadMore(ctx)
	}()
	<-inFlight

	// Sentinel fires again while the fetch is pending: must be a no-op.
	require.NoError(t, ctrl.LoadMore(ctx))

	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "only one load-more request issued")
	assert.Equal(t, []string{"a", "b"}, adIDs(ctrl.Items()), "no duplicated items")
}

func TestFreshFailureClearsList(t *testing.T) {
	failing := false
	searcher := stubSearcher{fn: func(_ domain.SearchFilters, page int) (api.SearchPage, error) {
		if failing {
			return api.SearchPage{}, errors.New("backend down")
		}
		return api.SearchPage{Items: ads("a", "b"), Total: 2, HasNext: true}, nil
	}}

	ctrl := NewSearchController(searcher, nil, nil, 2)
	ctx := context.Background()
	require.NoError(t, ctrl.FetchFresh(ctx))
	require.Len(t, ctrl.Items(), 2)

	failing = true
	require.Error(t, ctrl.FetchFresh(ctx))
	assert.Empty(t, ctrl.Items(), "failed fresh fetch shows no results, not stale data")
	assert.False(t, ctrl.HasNext())
}

func TestLoadMoreFailureKeepsItems(t *testing.T) {
	searcher := stubSearcher{fn: func(_ domain.SearchFilters, page int) (api.SearchPage, error) {
		if page > 1 {
			return api.SearchPage{}, errors.New("backend down")
		}
		return api.SearchPage{Items: ads("a", "b"), Total: 4, HasNext: true}, nil
	}}

	ctrl := NewSearchController(searcher, nil, nil, 2)
	ctx := context.Background()
	require.NoError(t, ctrl.FetchFresh(ctx))

	require.Error(t, ctrl.LoadMore(ctx))
	assert.Equal(t, []string{"a", "b"}, adIDs(ctrl.Items()), "existing items survive a load-more failure")
	assert.True(t, ctrl.HasNext(), "retry stays possible")
}

func TestFreshFetchPersistsFirstPagePerFilterSignature(t *testing.T) {
	cache := memCache(t)
	searcher := stubSearcher{fn: func(filters domain.SearchFilters, page int) (api.SearchPage, error) {
		if filters.Keyword == "shoes" {
			return api.SearchPage{Items: ads("s1", "s2"), Total: 9, HasNext: true}, nil
		}
		return api.SearchPage{Items: ads("a", "b"), Total: 2, HasNext: false}, nil
	}}

	ctrl := NewSearchController(searcher, cache, nil, 2)
	ctx := context.Background()

	require.NoError(t, ctrl.FetchFresh(ctx))
	shoes := "shoes"
	require.NoError(t, ctrl.UpdateFilters(ctx, domain.FilterUpdate{Keyword: &shoes}))

	// A fresh controller over the same cache paints the matching page
	// before any network fetch.
	restarted := NewSearchController(searcher, cache, nil, 2)
	cached, ok := restarted.CachedFirstPage()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, adIDs(cached.Items), "default filters hit the default-signature page")

	restarted.SetFilters(domain.FilterUpdate{Keyword: &shoes})
	cached, ok = restarted.CachedFirstPage()
	require.True(t, ok)
	assert.Equal(t, []string{"s1", "s2"}, adIDs(cached.Items))
	assert.Equal(t, 9, cached.Total)
	assert.True(t, cached.HasNext)
}

func TestFailedFetchLeavesCachedPageIntact(t *testing.T) {
	cache := memCache(t)
	failing := false
	searcher := stubSearcher{fn: func(_ domain.SearchFilters, _ int) (api.SearchPage, error) {
		if failing {
			return api.SearchPage{}, errors.New("backend down")
		}
		return api.SearchPage{Items: ads("a", "b"), Total: 2, HasNext: false}, nil
	}}

	ctrl := NewSearchController(searcher, cache, nil, 2)
	ctx := context.Background()
	require.NoError(t, ctrl.FetchFresh(ctx))

	failing = true
	require.Error(t, ctrl.FetchFresh(ctx))

	cached, ok := ctrl.CachedFirstPage()
	require.True(t, ok, "offline launch still paints the last good page")
	assert.Equal(t, []string{"a", "b"}, adIDs(cached.Items))
}

func TestFreshFetchSupersedesPendingLoadMore(t *testing.T) {
	moreStarted := make(chan struct{})
	releaseMore := make(chan struct{})

	searcher := stubSearcher{fn: func(filters domain.SearchFilters, page int) (api.SearchPage, error) {
		if filters.Keyword == "shoes" && page == 2 {
			close(moreStarted)
			<-releaseMore
			return api.SearchPage{Items: ads("x", "y"), Total: 4, HasNext: true}, nil
		}
		if filters.Keyword == "bags" {
			return api.SearchPage{Items: ads("n1", "n2"), Total: 2, HasNext: false}, nil
		}
		return api.SearchPage{Items: ads("a", "b"), Total: 4, HasNext: true}, nil
	}}

	ctrl := NewSearchController(searcher, nil, nil, 2)
	ctx := context.Background()

	shoes := "shoes"
	require.NoError(t, ctrl.UpdateFilters(ctx, domain.FilterUpdate{Keyword: &shoes}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.LoadMore(ctx)
	}()
	select {
	case <-moreStarted:
	case <-time.After(time.Second):
		t.Fatal("load-more never started")
	}

	bags := "bags"
	require.NoError(t, ctrl.UpdateFilters(ctx, domain.FilterUpdate{Keyword: &bags}))

	close(releaseMore)
	wg.Wait()

	assert.Equal(t, []string{"n1", "n2"}, adIDs(ctrl.Items()), "superseded load-more must not append")
}
