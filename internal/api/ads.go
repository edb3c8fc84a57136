package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/adlens/adlens/internal/domain"
)

// SearchPage is one page of search results.
type SearchPage struct {
	Items   []domain.Ad `json:"items"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	HasNext bool        `json:"has_next"`
}

// AdDetail is a creative plus up to six related creatives (same advertiser
// or same platform/format).
type AdDetail struct {
	Ad         domain.Ad   `json:"ad"`
	SimilarAds []domain.Ad `json:"similar_ads"`
}

// AdSaveRequest stores an externally discovered creative so it can be
// added to boards.
type AdSaveRequest struct {
	Platform            domain.Platform `json:"platform"`
	Format              domain.Format   `json:"format"`
	AdvertiserName      string          `json:"advertiser_name"`
	AdvertiserHandle    string          `json:"advertiser_handle,omitempty"`
	AdvertiserAvatarURL string          `json:"advertiser_avatar_url,omitempty"`
	ThumbnailURL        string          `json:"thumbnail_url,omitempty"`
	PreviewURL          string          `json:"preview_url,omitempty"`
	MediaType           string          `json:"media_type"`
	AdCopy              string          `json:"ad_copy,omitempty"`
	CTAText             string          `json:"cta_text,omitempty"`
	Likes               int             `json:"likes,omitempty"`
	Comments            int             `json:"comments,omitempty"`
	Shares              int             `json:"shares,omitempty"`
	StartDate           string          `json:"start_date,omitempty"`
	EndDate             string          `json:"end_date,omitempty"`
	Tags                []string        `json:"tags"`
	LandingPageURL      string          `json:"landing_page_url,omitempty"`
}

// SearchAds queries /ads/search with the given filters and page.
func (c *Client) SearchAds(ctx context.Context, filters domain.SearchFilters, page, limit int) (SearchPage, error) {
	filters = filters.Normalize()

	query := url.Values{}
	if filters.Keyword != "" {
		query.Set("keyword", filters.Keyword)
	}
	query.Set("platform", string(filters.Platform))
	query.Set("format", string(filters.Format))
	query.Set("sort", filters.Sort)
	if filters.DateFrom != "" {
		query.Set("date_from", filters.DateFrom)
	}
	if filters.DateTo != "" {
		query.Set("date_to", filters.DateTo)
	}
	if filters.Industry != "" {
		query.Set("industry", filters.Industry)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result SearchPage
	err := c.Get(ctx, "/ads/search", query, &result)
	return result, err
}

// GetAdDetail fetches a creative and its similar ads.
func (c *Client) GetAdDetail(ctx context.Context, adID string) (AdDetail, error) {
	var detail AdDetail
	err := c.Get(ctx, fmt.Sprintf("/ads/%s", adID), nil, &detail)
	return detail, err
}

// SaveAd persists an external platform creative and returns the stored ad.
func (c *Client) SaveAd(ctx context.Context, req AdSaveRequest) (domain.Ad, error) {
	var ad domain.Ad
	err := c.Post(ctx, "/ads/save", req, &ad)
	return ad, err
}
