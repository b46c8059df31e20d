package store

import (
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/pullfeed/internal/domain"
)

func openStores(t *testing.T) map[string]*FeedStore {
	t.Helper()
	disk, err := NewFeedStore(t.TempDir(), "generator://default")
	if err != nil {
		t.Fatalf("open disk store: %v", err)
	}
	mem, err := NewFeedStore("", "")
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	t.Cleanup(func() {
		disk.Close()
		mem.Close()
	})
	return map[string]*FeedStore{"disk": disk, "memory": mem}
}

func TestFeedStore_Items(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.LoadItems("news"); !errors.Is(err, domain.ErrFeedNotFound) {
				t.Fatalf("expected ErrFeedNotFound, got %v", err)
			}

			items := []domain.Item{
				{ID: "2", Title: "second", Published: time.Unix(200, 0).UTC()},
				{ID: "1", Title: "first", Published: time.Unix(100, 0).UTC()},
			}
			if err := s.SaveItems("news", items); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := s.LoadItems("news")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(got) != 2 || got[0].ID != "2" || got[1].ID != "1" {
				t.Errorf("unexpected items %+v", got)
			}
			if !got[0].Published.Equal(items[0].Published) {
				t.Errorf("published time not preserved: %v", got[0].Published)
			}
		})
	}
}

func TestFeedStore_RecentRefreshes(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				rec := domain.RefreshRecord{
					Feed:        "news",
					Trigger:     domain.TriggerPull,
					StartedAt:   base.Add(time.Duration(i) * time.Minute),
					CompletedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
					Added:       i,
				}
				if err := s.RecordRefresh(rec); err != nil {
					t.Fatalf("record: %v", err)
				}
			}
			for _, feed := range []string{"newsletter", "news:sports"} {
				other := domain.RefreshRecord{Feed: feed, StartedAt: base}
				if err := s.RecordRefresh(other); err != nil {
					t.Fatalf("record %s: %v", feed, err)
				}
			}

			got, err := s.RecentRefreshes("news", 3)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("expected 3 records, got %d", len(got))
			}
			for i, want := range []int{4, 3, 2} {
				if got[i].Added != want {
					t.Errorf("record %d: expected added=%d, got %d", i, want, got[i].Added)
				}
			}

			all, err := s.RecentRefreshes("news", 0)
			if err != nil {
				t.Fatalf("recent all: %v", err)
			}
			if len(all) != 5 {
				t.Errorf("expected 5 records, got %d", len(all))
			}
			if all[0].Duration() != time.Second {
				t.Errorf("unexpected duration %v", all[0].Duration())
			}
			for _, rec := range all {
				if rec.Feed != "news" {
					t.Errorf("record of feed %q returned for news", rec.Feed)
				}
			}
		})
	}
}

func TestFeedStore_HistoryBypassesCacheOnDisk(t *testing.T) {
	stores := openStores(t)
	rec := domain.RefreshRecord{Feed: "news", StartedAt: time.Unix(100, 0).UTC()}
	items := []domain.Item{{ID: "1", Title: "first"}}

	for name, s := range stores {
		if err := s.RecordRefresh(rec); err != nil {
			t.Fatalf("%s record: %v", name, err)
		}
		if err := s.SaveItems("news", items); err != nil {
			t.Fatalf("%s save: %v", name, err)
		}
	}

	if n := len(stores["disk"].cache); n != 1 {
		t.Errorf("disk cache holds %d entries, want only the items", n)
	}
	if n := len(stores["memory"].cache); n != 2 {
		t.Errorf("memory cache holds %d entries, want items and history", n)
	}
}

func TestFeedStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFeedStore(dir, "src")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveItems("news", []domain.Item{{ID: "a"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = NewFeedStore(dir, "src")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.LoadItems("news")
	if err != nil || len(got) != 1 || got[0].ID != "a" {
		t.Errorf("expected persisted item, got %+v (%v)", got, err)
	}
}

func TestFeedStore_Closed(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
			if err := s.Close(); err != nil {
				t.Errorf("second close: %v", err)
			}
			if _, err := s.LoadItems("news"); !errors.Is(err, domain.ErrStoreClosed) {
				t.Errorf("LoadItems: expected ErrStoreClosed, got %v", err)
			}
			if err := s.SaveItems("news", nil); !errors.Is(err, domain.ErrStoreClosed) {
				t.Errorf("SaveItems: expected ErrStoreClosed, got %v", err)
			}
			if err := s.RecordRefresh(domain.RefreshRecord{Feed: "news"}); !errors.Is(err, domain.ErrStoreClosed) {
				t.Errorf("RecordRefresh: expected ErrStoreClosed, got %v", err)
			}
			if _, err := s.RecentRefreshes("news", 1); !errors.Is(err, domain.ErrStoreClosed) {
				t.Errorf("RecentRefreshes: expected ErrStoreClosed, got %v", err)
			}
		})
	}
}
