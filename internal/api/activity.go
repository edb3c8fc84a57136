package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/adlens/adlens/internal/domain"
)

// ActivityPage is one page of the account activity feed.
type ActivityPage struct {
	Items []domain.ActivityLog `json:"items"`
	Total int                  `json:"total"`
}

// ActivityLogs fetches activity entries, newest first. eventType filters by
// event type when non-empty.
func (c *Client) ActivityLogs(ctx context.Context, eventType string, limit, offset int) (ActivityPage, error) {
	query := url.Values{}
	if eventType != "" {
		query.Set("event_type", eventType)
	}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var page ActivityPage
	err := c.Get(ctx, "/activity-logs", query, &page)
	return page, err
}
