package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/store"
)

type stubActivity struct {
	pages atomic.Pointer[api.ActivityPage]
	calls atomic.Int64
}

func (s *stubActivity) ActivityLogs(_ context.Context, _ string, _, _ int) (api.ActivityPage, error) {
	s.calls.Add(1)
	return *s.pages.Load(), nil
}

func logAt(id string, ts time.Time) domain.ActivityLog {
	return domain.ActivityLog{
		ID:        id,
		EventType: "collection",
		Title:     "New ads collected",
		CreatedAt: domain.NewTimestamp(ts),
	}
}

func TestUnreadCountScenario(t *testing.T) {
	cache, err := store.NewCache("", "")
	require.NoError(t, err)

	base := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

	fetcher := &stubActivity{}
	fetcher.pages.Store(&api.ActivityPage{
		Items: []domain.ActivityLog{
			logAt("1", base.Add(-1*time.Minute)),
			logAt("2", base.Add(-2*time.Minute)),
			logAt("3", base.Add(-3*time.Minute)),
			logAt("4", base.Add(-4*time.Minute)),
			logAt("5", base.Add(-5*time.Minute)),
		},
		Total: 5,
	})

	svc := NewActivityService(fetcher, cache, nil, 0)
	svc.now = func() time.Time { return base }

	// No persisted last-seen timestamp: everything is unread.
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 5, svc.UnreadCount())

	// Opening the panel stamps "now" and zeroes the count.
	svc.MarkSeen()
	assert.Equal(t, 0, svc.UnreadCount())
	seen, ok := cache.LastSeen()
	require.True(t, ok)
	assert.True(t, seen.Equal(base))

	// Two newer items and three older ones: unread = 2.
	fetcher.pages.Store(&api.ActivityPage{
		Items: []domain.ActivityLog{
			logAt("6", base.Add(2*time.Minute)),
			logAt("7", base.Add(1*time.Minute)),
			logAt("1", base.Add(-1*time.Minute)),
			logAt("2", base.Add(-2*time.Minute)),
			logAt("3", base.Add(-3*time.Minute)),
		},
		Total: 7,
	})
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 2, svc.UnreadCount())
}

func TestPollingStopsOnCancel(t *testing.T) {
	cache, err := store.NewCache("", "")
	require.NoError(t, err)

	fetcher := &stubActivity{}
	fetcher.pages.Store(&api.ActivityPage{Items: nil, Total: 0})

	svc := NewActivityService(fetcher, cache, nil, 10*time.Millisecond)

	updates := make(chan struct{}, 64)
	svc.StartPolling(context.Background(), func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	})

	// Wait for at least two poll cycles.
	for i := 0; i < 2; i++ {
		select {
		case <-updates:
		case <-time.After(time.Second):
			t.Fatal("poll loop did not fire")
		}
	}

	svc.StopPolling()
	settled := fetcher.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, fetcher.calls.Load(), settled+1, "polling must stop after cancel")

	// Restarting after a stop works.
	svc.StartPolling(context.Background(), nil)
	svc.StopPolling()
}

func TestStartPollingIsIdempotent(t *testing.T) {
	cache, err := store.NewCache("", "")
	require.NoError(t, err)

	fetcher := &stubActivity{}
	fetcher.pages.Store(&api.ActivityPage{})

	svc := NewActivityService(fetcher, cache, nil, time.Hour)
	defer svc.StopPolling()

	svc.StartPolling(context.Background(), nil)
	svc.StartPolling(context.Background(), nil)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), fetcher.calls.Load(), "second StartPolling must not spawn a second loop")
}
