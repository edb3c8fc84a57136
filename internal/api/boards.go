package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/adlens/adlens/internal/domain"
)

// BoardList is the paginated board collection.
type BoardList struct {
	Items   []domain.Board `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	HasNext bool           `json:"has_next"`
}

// BoardDetail is a board plus one page of its items.
type BoardDetail struct {
	domain.Board
	Items   []domain.BoardItem `json:"items"`
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
	HasNext bool               `json:"has_next"`
}

// BoardCreateRequest creates or renames a board.
type BoardCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type boardItemAddRequest struct {
	AdID string `json:"ad_id"`
}

// ListBoards fetches one page of the user's boards.
func (c *Client) ListBoards(ctx context.Context, page, limit int) (BoardList, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var list BoardList
	err := c.Get(ctx, "/boards", query, &list)
	return list, err
}

// CreateBoard creates a new empty board.
func (c *Client) CreateBoard(ctx context.Context, req BoardCreateRequest) (domain.Board, error) {
	var board domain.Board
	err := c.Post(ctx, "/boards", req, &board)
	return board, err
}

// GetBoardDetail fetches a board and one page of its items.
func (c *Client) GetBoardDetail(ctx context.Context, boardID string, page, limit int) (BoardDetail, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var detail BoardDetail
	err := c.Get(ctx, fmt.Sprintf("/boards/%s", boardID), query, &detail)
	return detail, err
}

// UpdateBoard renames a board or changes its description.
func (c *Client) UpdateBoard(ctx context.Context, boardID string, req BoardCreateRequest) (domain.Board, error) {
	var board domain.Board
	err := c.Put(ctx, fmt.Sprintf("/boards/%s", boardID), req, &board)
	return board, err
}

// DeleteBoard removes a board and its item memberships.
func (c *Client) DeleteBoard(ctx context.Context, boardID string) error {
	return c.Delete(ctx, fmt.Sprintf("/boards/%s", boardID))
}

// AddBoardItem saves an ad into a board. A 409 means the ad is already on
// the board; callers map that to a friendlier message.
func (c *Client) AddBoardItem(ctx context.Context, boardID, adID string) (domain.BoardItem, error) {
	var item domain.BoardItem
	err := c.Post(ctx, fmt.Sprintf("/boards/%s/items", boardID), boardItemAddRequest{AdID: adID}, &item)
	return item, err
}

// RemoveBoardItem removes an ad from a board.
func (c *Client) RemoveBoardItem(ctx context.Context, boardID, itemID string) error {
	return c.Delete(ctx, fmt.Sprintf("/boards/%s/items/%s", boardID, itemID))
}
