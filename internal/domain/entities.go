package domain

import (
	"fmt"
	"strings"
	"time"
)

// Platform identifies the ad library a creative was collected from.
type Platform string

const (
	PlatformAll       Platform = "all"
	PlatformMeta      Platform = "meta"
	PlatformGoogle    Platform = "google"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
)

// Format identifies the creative format.
type Format string

const (
	FormatAll      Format = "all"
	FormatImage    Format = "image"
	FormatVideo    Format = "video"
	FormatCarousel Format = "carousel"
	FormatReels    Format = "reels"
	FormatText     Format = "text"
)

// Sort orders supported by the search endpoint.
const (
	SortRecent     = "recent"
	SortPopular    = "popular"
	SortEngagement = "engagement"
)

// Ad is a single advertising creative collected from a platform ad library.
type Ad struct {
	ID                  string     `json:"id"`
	Platform            Platform   `json:"platform"`
	Format              Format     `json:"format"`
	AdvertiserName      string     `json:"advertiser_name"`
	AdvertiserHandle    string     `json:"advertiser_handle,omitempty"`
	AdvertiserAvatarURL string     `json:"advertiser_avatar_url,omitempty"`
	ThumbnailURL        string     `json:"thumbnail_url,omitempty"`
	PreviewURL          string     `json:"preview_url,omitempty"`
	MediaType           string     `json:"media_type"`
	AdCopy              string     `json:"ad_copy,omitempty"`
	CTAText             string     `json:"cta_text,omitempty"`
	Likes               int        `json:"likes,omitempty"`
	Comments            int        `json:"comments,omitempty"`
	Shares              int        `json:"shares,omitempty"`
	StartDate           string     `json:"start_date,omitempty"`
	EndDate             string     `json:"end_date,omitempty"`
	Tags                []string   `json:"tags"`
	LandingPageURL      string     `json:"landing_page_url,omitempty"`
	CreatedAt           Timestamp  `json:"created_at"`
	SavedAt             *Timestamp `json:"saved_at,omitempty"`
}

// Engagement returns the combined interaction count used for ranking.
func (a Ad) Engagement() int {
	return a.Likes + a.Comments + a.Shares
}

// DisplayTitle returns a one-line label for list rendering.
func (a Ad) DisplayTitle() string {
	copyText := strings.TrimSpace(a.AdCopy)
	if copyText == "" {
		return a.AdvertiserName
	}
	if len(copyText) > 60 {
		copyText = copyText[:57] + "..."
	}
	return fmt.Sprintf("%s - %s", a.AdvertiserName, copyText)
}

// RunDates returns the ad's active date range, e.g. "2026-01-02 → 2026-02-01".
// An empty end date means the ad is still running.
func (a Ad) RunDates() string {
	if a.StartDate == "" {
		return ""
	}
	if a.EndDate == "" {
		return a.StartDate + " → now"
	}
	return a.StartDate + " → " + a.EndDate
}

// User is the authenticated account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	JobTitle  string    `json:"job_title,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Board is a user-owned named collection of saved creatives.
type Board struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     Timestamp `json:"created_at"`
	UpdatedAt     Timestamp `json:"updated_at"`
}

// BoardItem is an ad's membership in a board.
type BoardItem struct {
	ID      string    `json:"id"`
	BoardID string    `json:"board_id"`
	AdID    string    `json:"ad_id"`
	Ad      Ad        `json:"ad"`
	AddedAt Timestamp `json:"added_at"`
}

// Brand is a monitored competitor tracked across one or more
// platform-specific sources.
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"brand_name"`
	Active    bool      `json:"is_active"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// BrandSource is one collection target for a brand: a domain or a keyword
// on a specific platform.
type BrandSource struct {
	ID          string    `json:"id"`
	BrandID     string    `json:"brand_id"`
	Platform    Platform  `json:"platform"`
	SourceType  string    `json:"source_type"` // "domain" or "keyword"
	SourceValue string    `json:"source_value"`
	Active      bool      `json:"is_active"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// BrandStats summarizes collected creatives for a brand.
type BrandStats struct {
	Brand           Brand            `json:"brand"`
	Sources         []BrandSource    `json:"sources"`
	TotalAds        int              `json:"total_ads"`
	ByFormat        map[Format]int   `json:"ads_by_format,omitempty"`
	ByPlatform      map[Platform]int `json:"ads_by_platform,omitempty"`
	LastCollectedAt *Timestamp       `json:"last_collected_at,omitempty"`
}

// ActivityLog is one entry in the account activity feed.
type ActivityLog struct {
	ID           string         `json:"id"`
	EventType    string         `json:"event_type"`
	EventSubtype string         `json:"event_subtype,omitempty"`
	Title        string         `json:"title"`
	Message      string         `json:"message,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    Timestamp      `json:"created_at"`
}

// TokenPair is the access/refresh token set issued by the auth endpoints.
// Both tokens are opaque to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

// Timestamp wraps time.Time with lenient JSON parsing. The backend emits
// ISO-8601 both with and without a zone offset depending on the field.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON accepts any of the backend's timestamp layouts.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("unrecognized timestamp %q: %w", s, lastErr)
}

// MarshalJSON emits RFC 3339, which the backend accepts everywhere.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// NewTimestamp wraps a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}
