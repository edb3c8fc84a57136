package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
)

const (
	defaultPollInterval = 60 * time.Second
	activityPageSize    = 50
)

// ActivityFetcher fetches one page of the activity feed. *api.Client
// satisfies it.
type ActivityFetcher interface {
	ActivityLogs(ctx context.Context, eventType string, limit, offset int) (api.ActivityPage, error)
}

// LastSeenStore persists the activity last-seen timestamp. *store.Cache
// satisfies it.
type LastSeenStore interface {
	LastSeen() (time.Time, bool)
	SetLastSeen(ts time.Time) error
}

// ActivityService drives the notification panel: it polls the activity
// feed while the panel is open and derives an unread count from a
// persisted last-seen timestamp.
//
// Unread tracking is an approximation: opening the panel stamps "now" as
// last seen and zeroes the count, whether or not every historical entry
// was actually viewed.
type ActivityService struct {
	client   ActivityFetcher
	seen     LastSeenStore
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	items  []domain.ActivityLog
	total  int
	unread int
	cancel context.CancelFunc
}

// NewActivityService creates the service. A non-positive interval selects
// the 60s default.
func NewActivityService(client ActivityFetcher, seen LastSeenStore, logger *slog.Logger, interval time.Duration) *ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &ActivityService{
		client:   client,
		seen:     seen,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// Refresh fetches the most recent page and recomputes the unread count.
// With no persisted last-seen timestamp every fetched item counts as
// unread.
func (s *ActivityService) Refresh(ctx context.Context) error {
	page, err := s.client.ActivityLogs(ctx, "", activityPageSize, 0)
	if err != nil {
		return err
	}

	lastSeen, haveSeen := s.seen.LastSeen()

	unread := 0
	for _, item := range page.Items {
		if !haveSeen || item.CreatedAt.After(lastSeen) {
			unread++
		}
	}

	s.mu.Lock()
	s.items = page.Items
	s.total = page.Total
	s.unread = unread
	s.mu.Unlock()

	s.logger.Debug("activity refreshed", "items", len(page.Items), "unread", unread)
	return nil
}

// MarkSeen stamps "now" as the last-seen timestamp and zeroes the unread
// count. Called when the panel opens.
func (s *ActivityService) MarkSeen() {
	if err := s.seen.SetLastSeen(s.now()); err != nil {
		s.logger.Error("failed to persist last-seen timestamp", "error", err)
	}
	s.mu.Lock()
	s.unread = 0
	s.mu.Unlock()
}

// StartPolling refreshes immediately and then at the configured cadence
// until StopPolling runs or ctx is cancelled. onUpdate fires after each
// successful refresh; poll failures are logged and the loop keeps going.
func (s *ActivityService) StartPolling(ctx context.Context, onUpdate func()) {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return // already polling
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			if err := s.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn("activity poll failed", "error", err)
			} else if onUpdate != nil {
				onUpdate()
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// StopPolling cancels the poll loop. Safe to call when not polling.
func (s *ActivityService) StopPolling() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Items returns a copy of the most recently fetched page.
func (s *ActivityService) Items() []domain.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ActivityLog, len(s.items))
	copy(out, s.items)
	return out
}

// UnreadCount returns the current unread count.
func (s *ActivityService) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// Total returns the backend's total feed length.
func (s *ActivityService) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}
