package feed

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/mmcdole/pullfeed/internal/domain"
	"github.com/zoobzio/clockz"
)

const defaultMaxItems = 200

// Service orchestrates source + store operations.
type Service struct {
	source   Source
	store    domain.Store
	clock    clockz.Clock
	logger   *slog.Logger
	maxItems int

	mu         sync.RWMutex
	items      []domain.Item // Newest first
	refreshing bool
}

// NewService creates a new feed service. maxItems <= 0 selects the default cap.
func NewService(source Source, store domain.Store, clock clockz.Clock, maxItems int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = clockz.RealClock
	}
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}
	return &Service{
		source:   source,
		store:    store,
		clock:    clock,
		logger:   logger.With("component", "feed", "feed", source.Name()),
		maxItems: maxItems,
	}
}

// Name returns the feed name
func (s *Service) Name() string { return s.source.Name() }

// Load restores the cached items. A feed that was never stored is empty.
func (s *Service) Load() error {
	items, err := s.store.LoadItems(s.source.Name())
	if errors.Is(err, domain.ErrFeedNotFound) {
		s.logger.Debug("no cached items")
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = capItems(items, s.maxItems)
	s.mu.Unlock()
	s.logger.Debug("loaded cached items", "count", len(items))
	return nil
}

// Refresh fetches from the source, merges the new items in front and
// persists the list and a refresh record. The record is returned even when
// the fetch fails.
func (s *Service) Refresh(ctx context.Context, trigger domain.Trigger) (domain.RefreshRecord, error) {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return domain.RefreshRecord{}, domain.ErrRefreshInProgress
	}
	s.refreshing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
	}()

	rec := domain.RefreshRecord{
		Feed:      s.source.Name(),
		Trigger:   trigger,
		StartedAt: s.clock.Now(),
	}

	fetched, err := s.source.Fetch(ctx)
	if err != nil {
		rec.CompletedAt = s.clock.Now()
		rec.Error = err.Error()
		s.logger.Error("refresh failed", "trigger", string(trigger), "error", err)
		s.record(rec)
		return rec, err
	}

	s.mu.Lock()
	merged, added := merge(s.items, fetched)
	s.items = capItems(merged, s.maxItems)
	snapshot := append([]domain.Item(nil), s.items...)
	s.mu.Unlock()

	if err := s.store.SaveItems(s.source.Name(), snapshot); err != nil {
		s.logger.Error("failed to save items", "error", err)
	}

	rec.CompletedAt = s.clock.Now()
	rec.Added = added
	s.record(rec)
	s.logger.Debug("refreshed", "trigger", string(trigger), "added", added, "total", len(snapshot))
	return rec, nil
}

func (s *Service) record(rec domain.RefreshRecord) {
	if err := s.store.RecordRefresh(rec); err != nil {
		s.logger.Error("failed to record refresh", "error", err)
	}
}

// Items returns a copy of the current items, newest first.
func (s *Service) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Item(nil), s.items...)
}

// History returns the most recent refresh records, newest first.
func (s *Service) History(limit int) ([]domain.RefreshRecord, error) {
	return s.store.RecentRefreshes(s.source.Name(), limit)
}

// merge puts unseen fetched items in front of existing, newest first.
func merge(existing, fetched []domain.Item) ([]domain.Item, int) {
	seen := make(map[string]bool, len(existing))
	for _, it := range existing {
		seen[it.ID] = true
	}

	fresh := make([]domain.Item, 0, len(fetched))
	for _, it := range fetched {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		fresh = append(fresh, it)
	}
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].Published.After(fresh[j].Published)
	})

	merged := make([]domain.Item, 0, len(fresh)+len(existing))
	merged = append(merged, fresh...)
	merged = append(merged, existing...)
	return merged, len(fresh)
}

func capItems(items []domain.Item, limit int) []domain.Item {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
