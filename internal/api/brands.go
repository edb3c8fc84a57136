package api

import (
	"context"
	"fmt"

	"github.com/adlens/adlens/internal/domain"
)

// BrandSourceRequest is one collection target submitted with a brand or
// added to it later.
type BrandSourceRequest struct {
	Platform    domain.Platform `json:"platform"`
	SourceType  string          `json:"source_type"` // "domain" or "keyword"
	SourceValue string          `json:"source_value"`
}

// BrandCreateRequest registers a brand with its initial sources.
type BrandCreateRequest struct {
	Name    string               `json:"brand_name"`
	Notes   string               `json:"notes,omitempty"`
	Sources []BrandSourceRequest `json:"sources,omitempty"`
}

// BrandUpdateRequest is a partial brand update. Nil fields are omitted so
// the backend leaves them unchanged.
type BrandUpdateRequest struct {
	Name   *string `json:"brand_name,omitempty"`
	Active *bool   `json:"is_active,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// BrandEntry is a brand with its collection targets, the unit the brand
// endpoints speak in.
type BrandEntry struct {
	Brand   domain.Brand         `json:"brand"`
	Sources []domain.BrandSource `json:"sources"`
}

// ListBrands fetches all monitored brands with their sources.
func (c *Client) ListBrands(ctx context.Context) ([]BrandEntry, error) {
	var resp struct {
		Brands []BrandEntry `json:"brands"`
	}
	err := c.Get(ctx, "/brands", nil, &resp)
	return resp.Brands, err
}

// CreateBrand registers a brand for monitoring and returns it with the
// sources it was created with.
func (c *Client) CreateBrand(ctx context.Context, req BrandCreateRequest) (BrandEntry, error) {
	var entry BrandEntry
	err := c.Post(ctx, "/brands", req, &entry)
	return entry, err
}

// GetBrand fetches one brand with its sources.
func (c *Client) GetBrand(ctx context.Context, brandID string) (BrandEntry, error) {
	var entry BrandEntry
	err := c.Get(ctx, fmt.Sprintf("/brands/%s", brandID), nil, &entry)
	return entry, err
}

// UpdateBrand changes a brand's name, notes, or active flag.
func (c *Client) UpdateBrand(ctx context.Context, brandID string, req BrandUpdateRequest) (domain.Brand, error) {
	var brand domain.Brand
	err := c.Put(ctx, fmt.Sprintf("/brands/%s", brandID), req, &brand)
	return brand, err
}

// DeleteBrand stops monitoring a brand and drops its sources.
func (c *Client) DeleteBrand(ctx context.Context, brandID string) error {
	return c.Delete(ctx, fmt.Sprintf("/brands/%s", brandID))
}

// AddBrandSource attaches a new collection target to a brand.
func (c *Client) AddBrandSource(ctx context.Context, brandID string, req BrandSourceRequest) (domain.BrandSource, error) {
	var source domain.BrandSource
	err := c.Post(ctx, fmt.Sprintf("/brands/%s/sources", brandID), req, &source)
	return source, err
}

// RemoveBrandSource detaches a collection target from a brand.
func (c *Client) RemoveBrandSource(ctx context.Context, brandID, sourceID string) error {
	return c.Delete(ctx, fmt.Sprintf("/brands/%s/sources/%s", brandID, sourceID))
}

// GetBrandStats fetches collection statistics for a brand.
func (c *Client) GetBrandStats(ctx context.Context, brandID string) (domain.BrandStats, error) {
	var stats domain.BrandStats
	err := c.Get(ctx, fmt.Sprintf("/brands/%s/stats", brandID), nil, &stats)
	return stats, err
}
