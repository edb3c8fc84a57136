package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/service"
	"github.com/adlens/adlens/internal/session"
	"github.com/adlens/adlens/internal/store"
)

// adDetailFetcher is the slice of the API client the detail view needs.
type adDetailFetcher interface {
	GetAdDetail(ctx context.Context, adID string) (api.AdDetail, error)
}

// Command factories for async operations

// SearchCmd runs a fresh search for the controller's current filters.
// Stale responses are dropped inside the controller, so the snapshot
// returned here always reflects the newest session.
func SearchCmd(ctrl *service.SearchController) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := ctrl.FetchFresh(ctx); err != nil {
			return ErrMsg{Err: err, Context: "searching ads"}
		}
		return SearchResultsMsg{
			Items:   ctrl.Items(),
			Total:   ctrl.Total(),
			HasNext: ctrl.HasNext(),
		}
	}
}

// UpdateFiltersCmd merges a partial filter change and re-runs the search.
func UpdateFiltersCmd(ctrl *service.SearchController, update domain.FilterUpdate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := ctrl.UpdateFilters(ctx, update); err != nil {
			return ErrMsg{Err: err, Context: "searching ads"}
		}
		return SearchResultsMsg{
			Items:   ctrl.Items(),
			Total:   ctrl.Total(),
			HasNext: ctrl.HasNext(),
		}
	}
}

// LoadMoreCmd appends the next result page. The controller ignores the
// call while another load-more is pending, so scroll events can fire this
// freely.
func LoadMoreCmd(ctrl *service.SearchController) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := ctrl.LoadMore(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading more ads"}
		}
		return MoreResultsMsg{
			Items:   ctrl.Items(),
			Total:   ctrl.Total(),
			HasNext: ctrl.HasNext(),
		}
	}
}

// LoadAdDetailCmd loads one creative with its similar ads.
func LoadAdDetailCmd(svc adDetailFetcher, adID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := svc.GetAdDetail(ctx, adID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading ad detail"}
		}
		return AdDetailLoadedMsg{Detail: detail}
	}
}

// LoadBoardsCmd loads one page of the board list.
func LoadBoardsCmd(svc *service.BoardService, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		list, err := svc.List(ctx, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading boards"}
		}
		return BoardsLoadedMsg{
			Boards:  list.Items,
			Total:   list.Total,
			Page:    list.Page,
			HasNext: list.HasNext,
		}
	}
}

// LoadBoardDetailCmd loads a board and one page of its items.
func LoadBoardDetailCmd(svc *service.BoardService, boardID string, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := svc.Detail(ctx, boardID, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading board"}
		}
		return BoardDetailLoadedMsg{Detail: detail}
	}
}

// CreateBoardCmd creates a new board.
func CreateBoardCmd(svc *service.BoardService, name, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		board, err := svc.Create(ctx, name, description)
		return BoardCreatedMsg{Board: board, Error: err}
	}
}

// DeleteBoardCmd deletes a board.
func DeleteBoardCmd(svc *service.BoardService, boardID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := svc.Delete(ctx, boardID)
		return BoardDeletedMsg{BoardID: boardID, Error: err}
	}
}

// SaveAdCmd adds an ad to a board.
func SaveAdCmd(svc *service.BoardService, boardID, boardName, adID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err := svc.SaveAd(ctx, boardID, adID)
		return AdSavedMsg{BoardName: boardName, Error: err}
	}
}

// CreateBoardAndSaveCmd creates a board and immediately saves the ad
// into it. Used when the picker's "new board" path is taken.
func CreateBoardAndSaveCmd(svc *service.BoardService, name, adID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		board, err := svc.Create(ctx, name, "")
		if err != nil {
			return AdSavedMsg{BoardName: name, Error: err}
		}
		_, err = svc.SaveAd(ctx, board.ID, adID)
		return AdSavedMsg{BoardName: board.Name, Error: err}
	}
}

// RemoveBoardItemCmd removes an item from a board.
func RemoveBoardItemCmd(svc *service.BoardService, boardID, itemID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := svc.RemoveAd(ctx, boardID, itemID)
		return BoardItemRemovedMsg{BoardID: boardID, Error: err}
	}
}

// LoadBrandsCmd loads the monitored brand list.
func LoadBrandsCmd(svc *service.BrandService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		brands, err := svc.List(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading brands"}
		}
		return BrandsLoadedMsg{Brands: brands}
	}
}

// LoadBrandStatsCmd loads collection stats for one brand.
func LoadBrandStatsCmd(svc *service.BrandService, brandID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stats, err := svc.Stats(ctx, brandID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading brand stats"}
		}
		return BrandStatsLoadedMsg{Stats: stats}
	}
}

// UnmonitorBrandCmd stops tracking a brand.
func UnmonitorBrandCmd(svc *service.BrandService, brandID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := svc.Unmonitor(ctx, brandID)
		return BrandRemovedMsg{BrandID: brandID, Error: err}
	}
}

// RefreshActivityCmd fetches the activity feed once.
func RefreshActivityCmd(svc *service.ActivityService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.Refresh(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading activity"}
		}
		return ActivityUpdatedMsg{Items: svc.Items(), Unread: svc.UnreadCount()}
	}
}

// LogoutCmd revokes the refresh token, clears local credentials, and wipes
// the cache so the next account never sees this one's data.
func LogoutCmd(sess *session.Session, cache *store.Cache) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		sess.Logout(ctx)
		if cache != nil {
			cache.InvalidateAll()
		}
		return LogoutCompleteMsg{}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
