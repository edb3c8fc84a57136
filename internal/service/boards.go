package service

import (
	"context"
	"log/slog"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/store"
)

const boardPageSize = 12

// BoardAPI is the slice of the API client the board service uses.
type BoardAPI interface {
	ListBoards(ctx context.Context, page, limit int) (api.BoardList, error)
	CreateBoard(ctx context.Context, req api.BoardCreateRequest) (domain.Board, error)
	GetBoardDetail(ctx context.Context, boardID string, page, limit int) (api.BoardDetail, error)
	UpdateBoard(ctx context.Context, boardID string, req api.BoardCreateRequest) (domain.Board, error)
	DeleteBoard(ctx context.Context, boardID string) error
	AddBoardItem(ctx context.Context, boardID, adID string) (domain.BoardItem, error)
	RemoveBoardItem(ctx context.Context, boardID, itemID string) error
}

// BoardService handles board CRUD and item membership, keeping the cached
// board list fresh for instant panel paint.
type BoardService struct {
	client BoardAPI
	cache  *store.Cache
	logger *slog.Logger
}

// NewBoardService creates a board service.
func NewBoardService(client BoardAPI, cache *store.Cache, logger *slog.Logger) *BoardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardService{client: client, cache: cache, logger: logger}
}

// CachedList returns the last persisted board list for immediate display
// while a fetch is in flight.
func (s *BoardService) CachedList() ([]domain.Board, bool) {
	return s.cache.GetBoards()
}

// List fetches one page of boards and refreshes the cache from page 1.
func (s *BoardService) List(ctx context.Context, page int) (api.BoardList, error) {
	list, err := s.client.ListBoards(ctx, page, boardPageSize)
	if err != nil {
		return api.BoardList{}, err
	}
	if page == 1 {
		if cacheErr := s.cache.SaveBoards(list.Items); cacheErr != nil {
			s.logger.Warn("failed to cache board list", "error", cacheErr)
		}
	}
	return list, nil
}

// Create makes a new board and invalidates the cached list.
func (s *BoardService) Create(ctx context.Context, name, description string) (domain.Board, error) {
	board, err := s.client.CreateBoard(ctx, api.BoardCreateRequest{Name: name, Description: description})
	if err != nil {
		return domain.Board{}, err
	}
	s.cache.InvalidateBoards()
	s.logger.Info("board created", "board", board.Name)
	return board, nil
}

// Detail fetches a board and one page of its items.
func (s *BoardService) Detail(ctx context.Context, boardID string, page int) (api.BoardDetail, error) {
	return s.client.GetBoardDetail(ctx, boardID, page, boardPageSize)
}

// Rename updates a board's name or description.
func (s *BoardService) Rename(ctx context.Context, boardID, name, description string) (domain.Board, error) {
	board, err := s.client.UpdateBoard(ctx, boardID, api.BoardCreateRequest{Name: name, Description: description})
	if err != nil {
		return domain.Board{}, err
	}
	s.cache.InvalidateBoards()
	return board, nil
}

// Delete removes a board.
func (s *BoardService) Delete(ctx context.Context, boardID string) error {
	if err := s.client.DeleteBoard(ctx, boardID); err != nil {
		return err
	}
	s.cache.InvalidateBoards()
	return nil
}

// SaveAd adds an ad to a board. Duplicate membership surfaces as a 409
// from the backend; the caller maps it to a friendly message.
func (s *BoardService) SaveAd(ctx context.Context, boardID, adID string) (domain.BoardItem, error) {
	item, err := s.client.AddBoardItem(ctx, boardID, adID)
	if err != nil {
		return domain.BoardItem{}, err
	}
	s.cache.InvalidateBoards() // item counts changed
	return item, nil
}

// RemoveAd removes an item from a board.
func (s *BoardService) RemoveAd(ctx context.Context, boardID, itemID string) error {
	if err := s.client.RemoveBoardItem(ctx, boardID, itemID); err != nil {
		return err
	}
	s.cache.InvalidateBoards()
	return nil
}
