package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/store"
)

// stubBoardAPI returns canned values and records mutation calls.
type stubBoardAPI struct {
	lists      map[int]api.BoardList
	listErr    error
	created    []string
	deleted    []string
	addedAds   []string
	removedIDs []string
}

func (s *stubBoardAPI) ListBoards(_ context.Context, page, _ int) (api.BoardList, error) {
	if s.listErr != nil {
		return api.BoardList{}, s.listErr
	}
	return s.lists[page], nil
}

func (s *stubBoardAPI) CreateBoard(_ context.Context, req api.BoardCreateRequest) (domain.Board, error) {
	s.created = append(s.created, req.Name)
	return domain.Board{ID: "b-new", Name: req.Name, Description: req.Description}, nil
}

func (s *stubBoardAPI) GetBoardDetail(_ context.Context, boardID string, page, _ int) (api.BoardDetail, error) {
	return api.BoardDetail{Board: domain.Board{ID: boardID}, Page: page}, nil
}

func (s *stubBoardAPI) UpdateBoard(_ context.Context, boardID string, req api.BoardCreateRequest) (domain.Board, error) {
	return domain.Board{ID: boardID, Name: req.Name}, nil
}

func (s *stubBoardAPI) DeleteBoard(_ context.Context, boardID string) error {
	s.deleted = append(s.deleted, boardID)
	return nil
}

func (s *stubBoardAPI) AddBoardItem(_ context.Context, boardID, adID string) (domain.BoardItem, error) {
	s.addedAds = append(s.addedAds, adID)
	return domain.BoardItem{ID: "item-1", BoardID: boardID, AdID: adID}, nil
}

func (s *stubBoardAPI) RemoveBoardItem(_ context.Context, _, itemID string) error {
	s.removedIDs = append(s.removedIDs, itemID)
	return nil
}

func memCache(t *testing.T) *store.Cache {
	t.Helper()
	cache, err := store.NewCache("", "https://api.test")
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func boards(names ...string) []domain.Board {
	out := make([]domain.Board, len(names))
	for i, name := range names {
		out[i] = domain.Board{ID: "b-" + name, Name: name}
	}
	return out
}

func TestBoardListCachesFirstPageOnly(t *testing.T) {
	stub := &stubBoardAPI{lists: map[int]api.BoardList{
		1: {Items: boards("inspo", "q3"), Total: 3, Page: 1, HasNext: true},
		2: {Items: boards("archive"), Total: 3, Page: 2, HasNext: false},
	}}
	svc := NewBoardService(stub, memCache(t), nil)
	ctx := context.Background()

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	cached, ok := svc.CachedList()
	require.True(t, ok)
	assert.Equal(t, "inspo", cached[0].Name)

	// Later pages must not replace the cached first page.
	_, err = svc.List(ctx, 2)
	require.NoError(t, err)
	cached, ok = svc.CachedList()
	require.True(t, ok)
	assert.Len(t, cached, 2)
}

func TestBoardListErrorLeavesCacheUntouched(t *testing.T) {
	stub := &stubBoardAPI{lists: map[int]api.BoardList{
		1: {Items: boards("inspo"), Total: 1, Page: 1},
	}}
	svc := NewBoardService(stub, memCache(t), nil)
	ctx := context.Background()

	_, err := svc.List(ctx, 1)
	require.NoError(t, err)

	stub.listErr = errors.New("backend down")
	_, err = svc.List(ctx, 1)
	require.Error(t, err)

	cached, ok := svc.CachedList()
	require.True(t, ok, "stale list beats no list while offline")
	assert.Equal(t, "inspo", cached[0].Name)
}

func TestBoardMutationsInvalidateCachedList(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(t *testing.T, svc *BoardService)
	}{
		{"create", func(t *testing.T, svc *BoardService) {
			_, err := svc.Create(context.Background(), "new board", "")
			require.NoError(t, err)
		}},
		{"delete", func(t *testing.T, svc *BoardService) {
			require.NoError(t, svc.Delete(context.Background(), "b-inspo"))
		}},
		{"save ad", func(t *testing.T, svc *BoardService) {
			_, err := svc.SaveAd(context.Background(), "b-inspo", "ad-1")
			require.NoError(t, err)
		}},
		{"remove item", func(t *testing.T, svc *BoardService) {
			require.NoError(t, svc.RemoveAd(context.Background(), "b-inspo", "item-1"))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubBoardAPI{lists: map[int]api.BoardList{
				1: {Items: boards("inspo"), Total: 1, Page: 1},
			}}
			svc := NewBoardService(stub, memCache(t), nil)
			_, err := svc.List(context.Background(), 1)
			require.NoError(t, err)
			_, ok := svc.CachedList()
			require.True(t, ok)

			tc.mutate(t, svc)

			_, ok = svc.CachedList()
			assert.False(t, ok, "mutation must drop the cached list")
		})
	}
}

func TestSaveAdReturnsMembership(t *testing.T) {
	stub := &stubBoardAPI{}
	svc := NewBoardService(stub, memCache(t), nil)

	item, err := svc.SaveAd(context.Background(), "b-inspo", "ad-42")
	require.NoError(t, err)
	assert.Equal(t, "ad-42", item.AdID)
	assert.Equal(t, []string{"ad-42"}, stub.addedAds)
}
