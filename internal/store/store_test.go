package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/internal/domain"
)

func TestBoardsRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), "https://api.example.com")
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.GetBoards()
	assert.False(t, ok)

	boards := []domain.Board{
		{ID: "b1", Name: "Competitors", ItemCount: 3},
		{ID: "b2", Name: "Inspiration"},
	}
	require.NoError(t, cache.SaveBoards(boards))

	got, ok := cache.GetBoards()
	require.True(t, ok)
	assert.Equal(t, boards, got)

	cache.InvalidateBoards()
	_, ok = cache.GetBoards()
	assert.False(t, ok)
}

func TestSearchCacheKeyedByFilters(t *testing.T) {
	cache, err := NewCache("", "")
	require.NoError(t, err)

	meta := domain.SearchFilters{Keyword: "shoes", Platform: domain.PlatformMeta}
	google := domain.SearchFilters{Keyword: "shoes", Platform: domain.PlatformGoogle}

	require.NoError(t, cache.SaveSearch(meta, CachedSearch{
		Items: []domain.Ad{{ID: "a1"}}, Total: 1, HasNext: false,
	}))

	got, ok := cache.GetSearch(meta)
	require.True(t, ok)
	assert.Len(t, got.Items, 1)

	_, ok = cache.GetSearch(google)
	assert.False(t, ok, "different platform must miss")

	cache.InvalidateAll()
	_, ok = cache.GetSearch(meta)
	assert.False(t, ok)
}

func TestLastSeenRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), "")
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.LastSeen()
	assert.False(t, ok)

	seen := time.Date(2026, 2, 20, 10, 30, 0, 0, time.UTC)
	require.NoError(t, cache.SetLastSeen(seen))

	got, ok := cache.LastSeen()
	require.True(t, ok)
	assert.True(t, got.Equal(seen))
}

func TestLastSeenSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	cache, err := NewCache(dir, "https://api.example.com")
	require.NoError(t, err)
	seen := time.Date(2026, 2, 20, 10, 30, 0, 0, time.UTC)
	require.NoError(t, cache.SetLastSeen(seen))
	require.NoError(t, cache.Close())

	reopened, err := NewCache(dir, "https://api.example.com")
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.LastSeen()
	require.True(t, ok)
	assert.True(t, got.Equal(seen))
}

func TestInvalidateAll(t *testing.T) {
	cache, err := NewCache(t.TempDir(), "")
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.SaveBoards([]domain.Board{{ID: "b1"}}))
	require.NoError(t, cache.SaveBrands([]domain.Brand{{ID: "br1"}}))
	require.NoError(t, cache.SetLastSeen(time.Now()))

	cache.InvalidateAll()

	_, ok := cache.GetBoards()
	assert.False(t, ok)
	_, ok = cache.GetBrands()
	assert.False(t, ok)
	_, ok = cache.LastSeen()
	assert.False(t, ok)
}

func TestMemoryOnlyMode(t *testing.T) {
	cache, err := NewCache("", "")
	require.NoError(t, err)

	require.NoError(t, cache.SaveBrands([]domain.Brand{{ID: "br1", Name: "Acme"}}))
	got, ok := cache.GetBrands()
	require.True(t, ok)
	assert.Equal(t, "Acme", got[0].Name)

	require.NoError(t, cache.Close(), "close is a no-op without a db")
}
