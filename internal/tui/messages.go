package tui

import (
	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchResultsMsg signals that a fresh search has landed. Items is the
// controller's full accumulated list, not a delta.
type SearchResultsMsg struct {
	Items   []domain.Ad
	Total   int
	HasNext bool
}

// MoreResultsMsg signals that a load-more page was appended.
type MoreResultsMsg struct {
	Items   []domain.Ad
	Total   int
	HasNext bool
}

// AdDetailLoadedMsg carries a single creative with its similar ads.
type AdDetailLoadedMsg struct {
	Detail api.AdDetail
}

// BoardsLoadedMsg signals that the board list has been loaded
type BoardsLoadedMsg struct {
	Boards  []domain.Board
	Total   int
	Page    int
	HasNext bool
	Cached  bool
}

// BoardDetailLoadedMsg signals that a board and its items have been loaded
type BoardDetailLoadedMsg struct {
	Detail api.BoardDetail
}

// BoardCreatedMsg signals board creation (or its failure)
type BoardCreatedMsg struct {
	Board domain.Board
	Error error
}

// BoardDeletedMsg signals board deletion
type BoardDeletedMsg struct {
	BoardID string
	Error   error
}

// AdSavedMsg signals that an ad was added to a board
type AdSavedMsg struct {
	BoardName string
	Error     error
}

// BoardItemRemovedMsg signals that an item was removed from a board
type BoardItemRemovedMsg struct {
	BoardID string
	Error   error
}

// BrandsLoadedMsg signals that the monitored brand list has been loaded
type BrandsLoadedMsg struct {
	Brands []api.BrandEntry
	Cached bool
}

// BrandStatsLoadedMsg carries collection stats for one brand
type BrandStatsLoadedMsg struct {
	Stats domain.BrandStats
}

// BrandRemovedMsg signals that a brand was unmonitored
type BrandRemovedMsg struct {
	BrandID string
	Error   error
}

// ActivityUpdatedMsg signals that the activity feed was refreshed
type ActivityUpdatedMsg struct {
	Items  []domain.ActivityLog
	Unread int
}

// LoadingMsg mirrors the request tracker: true when the first request
// starts, false when the last one finishes.
type LoadingMsg struct {
	Busy bool
}

// SessionExpiredMsg signals that a token refresh failed and the user must
// log in again.
type SessionExpiredMsg struct{}

// LogoutCompleteMsg signals logout completion
type LogoutCompleteMsg struct{}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
