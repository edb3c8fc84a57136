package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
)

type stubBrandAPI struct {
	entries        []api.BrandEntry
	stats          map[string]domain.BrandStats
	deleted        []string
	addedSources   []api.BrandSourceRequest
	removedSources []string
}

func (s *stubBrandAPI) ListBrands(_ context.Context) ([]api.BrandEntry, error) {
	return s.entries, nil
}

func (s *stubBrandAPI) CreateBrand(_ context.Context, req api.BrandCreateRequest) (api.BrandEntry, error) {
	entry := api.BrandEntry{
		Brand: domain.Brand{ID: "br-new", Name: req.Name, Notes: req.Notes, Active: true},
	}
	for i, src := range req.Sources {
		entry.Sources = append(entry.Sources, domain.BrandSource{
			ID: "src-new-" + string(rune('a'+i)), BrandID: "br-new",
			Platform: src.Platform, SourceType: src.SourceType, SourceValue: src.SourceValue, Active: true,
		})
	}
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *stubBrandAPI) GetBrand(_ context.Context, brandID string) (api.BrandEntry, error) {
	for _, entry := range s.entries {
		if entry.Brand.ID == brandID {
			return entry, nil
		}
	}
	return api.BrandEntry{}, domain.ErrNotFound
}

func (s *stubBrandAPI) UpdateBrand(_ context.Context, brandID string, req api.BrandUpdateRequest) (domain.Brand, error) {
	brand := domain.Brand{ID: brandID}
	if req.Name != nil {
		brand.Name = *req.Name
	}
	if req.Active != nil {
		brand.Active = *req.Active
	}
	return brand, nil
}

func (s *stubBrandAPI) DeleteBrand(_ context.Context, brandID string) error {
	s.deleted = append(s.deleted, brandID)
	return nil
}

func (s *stubBrandAPI) AddBrandSource(_ context.Context, brandID string, req api.BrandSourceRequest) (domain.BrandSource, error) {
	s.addedSources = append(s.addedSources, req)
	return domain.BrandSource{
		ID: "src-9", BrandID: brandID,
		Platform: req.Platform, SourceType: req.SourceType, SourceValue: req.SourceValue, Active: true,
	}, nil
}

func (s *stubBrandAPI) RemoveBrandSource(_ context.Context, _, sourceID string) error {
	s.removedSources = append(s.removedSources, sourceID)
	return nil
}

func (s *stubBrandAPI) GetBrandStats(_ context.Context, brandID string) (domain.BrandStats, error) {
	return s.stats[brandID], nil
}

func brandEntry(id, name string, sources ...string) api.BrandEntry {
	entry := api.BrandEntry{Brand: domain.Brand{ID: id, Name: name, Active: true}}
	for i, value := range sources {
		entry.Sources = append(entry.Sources, domain.BrandSource{
			ID: id + "-src-" + string(rune('a'+i)), BrandID: id,
			Platform: domain.PlatformMeta, SourceType: "domain", SourceValue: value, Active: true,
		})
	}
	return entry
}

func TestBrandListCachesFlattenedBrands(t *testing.T) {
	stub := &stubBrandAPI{entries: []api.BrandEntry{
		brandEntry("br-1", "Acme", "acme.com"),
		brandEntry("br-2", "Globex", "globex.com", "globex.io"),
	}}
	svc := NewBrandService(stub, memCache(t), nil)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Len(t, entries[1].Sources, 2)

	cached, ok := svc.CachedList()
	require.True(t, ok)
	require.Len(t, cached, 2)
	assert.Equal(t, "Acme", cached[0].Name)
}

func TestMonitorAndUnmonitorInvalidateCache(t *testing.T) {
	stub := &stubBrandAPI{entries: []api.BrandEntry{brandEntry("br-1", "Acme")}}
	svc := NewBrandService(stub, memCache(t), nil)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	_, ok := svc.CachedList()
	require.True(t, ok)

	entry, err := svc.Monitor(ctx, api.BrandCreateRequest{
		Name: "Initech",
		Sources: []api.BrandSourceRequest{
			{Platform: domain.PlatformMeta, SourceType: "domain", SourceValue: "initech.example"},
		},
	})
	require.NoError(t, err)
	assert.True(t, entry.Brand.Active)
	require.Len(t, entry.Sources, 1)
	_, ok = svc.CachedList()
	assert.False(t, ok, "monitor must drop the cached list")

	_, err = svc.List(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Unmonitor(ctx, "br-1"))
	assert.Equal(t, []string{"br-1"}, stub.deleted)
	_, ok = svc.CachedList()
	assert.False(t, ok, "unmonitor must drop the cached list")
}

func TestSourceAddAndRemoveInvalidateCache(t *testing.T) {
	stub := &stubBrandAPI{entries: []api.BrandEntry{brandEntry("br-1", "Acme", "acme.com")}}
	svc := NewBrandService(stub, memCache(t), nil)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	source, err := svc.AddSource(ctx, "br-1", api.BrandSourceRequest{
		Platform: domain.PlatformTikTok, SourceType: "keyword", SourceValue: "acme shoes",
	})
	require.NoError(t, err)
	assert.Equal(t, "br-1", source.BrandID)
	assert.Equal(t, "keyword", source.SourceType)
	_, ok := svc.CachedList()
	assert.False(t, ok, "adding a source must drop the cached list")

	_, err = svc.List(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSource(ctx, "br-1", "src-9"))
	assert.Equal(t, []string{"src-9"}, stub.removedSources)
	_, ok = svc.CachedList()
	assert.False(t, ok, "removing a source must drop the cached list")
}

func TestGetReturnsBrandWithSources(t *testing.T) {
	stub := &stubBrandAPI{entries: []api.BrandEntry{brandEntry("br-1", "Acme", "acme.com")}}
	svc := NewBrandService(stub, memCache(t), nil)

	entry, err := svc.Get(context.Background(), "br-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", entry.Brand.Name)
	require.Len(t, entry.Sources, 1)
	assert.Equal(t, "acme.com", entry.Sources[0].SourceValue)

	_, err = svc.Get(context.Background(), "br-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBrandStatsPassThrough(t *testing.T) {
	stub := &stubBrandAPI{stats: map[string]domain.BrandStats{
		"br-1": {
			Brand:      domain.Brand{ID: "br-1", Name: "Acme"},
			TotalAds:   40,
			ByPlatform: map[domain.Platform]int{domain.PlatformMeta: 25, domain.PlatformTikTok: 15},
			ByFormat:   map[domain.Format]int{domain.FormatVideo: 30},
		},
	}}
	svc := NewBrandService(stub, memCache(t), nil)

	stats, err := svc.Stats(context.Background(), "br-1")
	require.NoError(t, err)
	assert.Equal(t, 40, stats.TotalAds)
	assert.Equal(t, 25, stats.ByPlatform[domain.PlatformMeta])
	assert.Equal(t, "Acme", stats.Brand.Name)
}
