package service

import (
	"context"
	"log/slog"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/store"
)

// BrandAPI is the slice of the API client the brand service uses.
type BrandAPI interface {
	ListBrands(ctx context.Context) ([]api.BrandEntry, error)
	CreateBrand(ctx context.Context, req api.BrandCreateRequest) (api.BrandEntry, error)
	GetBrand(ctx context.Context, brandID string) (api.BrandEntry, error)
	UpdateBrand(ctx context.Context, brandID string, req api.BrandUpdateRequest) (domain.Brand, error)
	DeleteBrand(ctx context.Context, brandID string) error
	AddBrandSource(ctx context.Context, brandID string, req api.BrandSourceRequest) (domain.BrandSource, error)
	RemoveBrandSource(ctx context.Context, brandID, sourceID string) error
	GetBrandStats(ctx context.Context, brandID string) (domain.BrandStats, error)
}

// BrandService handles monitored-brand CRUD, sources, and stats.
type BrandService struct {
	client BrandAPI
	cache  *store.Cache
	logger *slog.Logger
}

// NewBrandService creates a brand service.
func NewBrandService(client BrandAPI, cache *store.Cache, logger *slog.Logger) *BrandService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrandService{client: client, cache: cache, logger: logger}
}

// CachedList returns the last persisted brand list.
func (s *BrandService) CachedList() ([]domain.Brand, bool) {
	return s.cache.GetBrands()
}

// List fetches the monitored brands with their sources and refreshes the
// cached brand list.
func (s *BrandService) List(ctx context.Context) ([]api.BrandEntry, error) {
	entries, err := s.client.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	brands := make([]domain.Brand, len(entries))
	for i, entry := range entries {
		brands[i] = entry.Brand
	}
	if cacheErr := s.cache.SaveBrands(brands); cacheErr != nil {
		s.logger.Warn("failed to cache brand list", "error", cacheErr)
	}
	return entries, nil
}

// Monitor registers a new brand for collection.
func (s *BrandService) Monitor(ctx context.Context, req api.BrandCreateRequest) (api.BrandEntry, error) {
	entry, err := s.client.CreateBrand(ctx, req)
	if err != nil {
		return api.BrandEntry{}, err
	}
	s.cache.InvalidateBrands()
	s.logger.Info("brand monitored", "brand", entry.Brand.Name)
	return entry, nil
}

// Get fetches one brand with its sources.
func (s *BrandService) Get(ctx context.Context, brandID string) (api.BrandEntry, error) {
	return s.client.GetBrand(ctx, brandID)
}

// Update changes a brand's name, notes, or active flag.
func (s *BrandService) Update(ctx context.Context, brandID string, req api.BrandUpdateRequest) (domain.Brand, error) {
	brand, err := s.client.UpdateBrand(ctx, brandID, req)
	if err != nil {
		return domain.Brand{}, err
	}
	s.cache.InvalidateBrands()
	return brand, nil
}

// Unmonitor stops tracking a brand.
func (s *BrandService) Unmonitor(ctx context.Context, brandID string) error {
	if err := s.client.DeleteBrand(ctx, brandID); err != nil {
		return err
	}
	s.cache.InvalidateBrands()
	return nil
}

// AddSource attaches a collection target to a brand.
func (s *BrandService) AddSource(ctx context.Context, brandID string, req api.BrandSourceRequest) (domain.BrandSource, error) {
	source, err := s.client.AddBrandSource(ctx, brandID, req)
	if err != nil {
		return domain.BrandSource{}, err
	}
	s.cache.InvalidateBrands()
	return source, nil
}

// RemoveSource detaches a collection target from a brand.
func (s *BrandService) RemoveSource(ctx context.Context, brandID, sourceID string) error {
	if err := s.client.RemoveBrandSource(ctx, brandID, sourceID); err != nil {
		return err
	}
	s.cache.InvalidateBrands()
	return nil
}

// Stats fetches collection statistics for a brand.
func (s *BrandService) Stats(ctx context.Context, brandID string) (domain.BrandStats, error) {
	return s.client.GetBrandStats(ctx, brandID)
}
