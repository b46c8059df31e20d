package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmcdole/pullfeed/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketItems     = []byte("items")
	bucketRefreshes = []byte("refreshes")
)

// FeedStore implements domain.Store using BoltDB.
type FeedStore struct {
	db     *bolt.DB
	mu     sync.RWMutex // Protects memory cache and closed
	closed bool
	seq    atomic.Uint64 // Orders history records with equal start times

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

var _ domain.Store = (*FeedStore)(nil)

// NewFeedStore opens the store under baseCacheDir. An empty dir selects
// memory-only mode. Each source gets its own database file.
func NewFeedStore(baseCacheDir, source string) (*FeedStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &FeedStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if source != "" {
		dir = filepath.Join(baseCacheDir, hashSource(source))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "pullfeed.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketItems, bucketRefreshes} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &FeedStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashSource(source string) string {
	normalized := strings.TrimRight(strings.ToLower(source), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *FeedStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.cache = nil
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *FeedStore) get(bucket []byte, key string, dest interface{}) (bool, error) {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return false, domain.ErrStoreClosed
	}
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return true, json.Unmarshal(data, dest)
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false, nil
	}

	// Read from BoltDB
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil || data == nil {
		return false, err
	}

	// Promote to memory cache
	s.mu.Lock()
	if !s.closed {
		s.cache[cacheKey] = data
	}
	s.mu.Unlock()

	return true, json.Unmarshal(data, dest)
}

func (s *FeedStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrStoreClosed
	}
	if s.cacheable(bucket) {
		s.cache[cacheKey] = data
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// cacheable reports whether values of bucket are kept in the memory cache.
// History is append-only and read by scan, so on disk it stays out of the
// cache. Memory-only stores cache everything.
func (s *FeedStore) cacheable(bucket []byte) bool {
	return s.db == nil || !bytes.Equal(bucket, bucketRefreshes)
}

// scanPrefix returns the raw values under prefix in key order.
func (s *FeedStore) scanPrefix(bucket []byte, prefix string) ([][]byte, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, domain.ErrStoreClosed
	}
	if s.db == nil {
		// Memory-only mode: the cache holds everything
		cachePrefix := string(bucket) + ":" + prefix
		var keys []string
		for k := range s.cache {
			if strings.HasPrefix(k, cachePrefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		values := make([][]byte, 0, len(keys))
		for _, k := range keys {
			values = append(values, s.cache[k])
		}
		s.mu.RUnlock()
		return values, nil
	}
	s.mu.RUnlock()

	var values [][]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, v := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, v = c.Next() {
			data := make([]byte, len(v))
			copy(data, v)
			values = append(values, data)
		}
		return nil
	})
	return values, err
}

// === Items ===

// LoadItems returns the stored items of feed, newest first.
func (s *FeedStore) LoadItems(feed string) ([]domain.Item, error) {
	var items []domain.Item
	ok, err := s.get(bucketItems, "feed:"+feed, &items)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFeedNotFound, feed)
	}
	return items, nil
}

func (s *FeedStore) SaveItems(feed string, items []domain.Item) error {
	return s.set(bucketItems, "feed:"+feed, items)
}

// === History (key: feed:{hex feed}:{startedAt as zero-padded unix nanos}:{seq}) ===

// historyPrefix hex-encodes the feed name so no name is a key prefix of
// another feed's records.
func historyPrefix(feed string) string {
	return "feed:" + hex.EncodeToString([]byte(feed)) + ":"
}

func refreshKey(rec domain.RefreshRecord, seq uint64) string {
	return fmt.Sprintf("%s%020d:%010d", historyPrefix(rec.Feed), rec.StartedAt.UnixNano(), seq)
}

func (s *FeedStore) RecordRefresh(rec domain.RefreshRecord) error {
	return s.set(bucketRefreshes, refreshKey(rec, s.seq.Add(1)), rec)
}

// RecentRefreshes returns up to limit records of feed, newest first. A
// limit <= 0 returns all of them.
func (s *FeedStore) RecentRefreshes(feed string, limit int) ([]domain.RefreshRecord, error) {
	values, err := s.scanPrefix(bucketRefreshes, historyPrefix(feed))
	if err != nil {
		return nil, err
	}

	records := make([]domain.RefreshRecord, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		var rec domain.RefreshRecord
		if err := json.Unmarshal(values[i], &rec); err != nil {
			return nil, fmt.Errorf("decode refresh record: %w", err)
		}
		records = append(records, rec)
		if limit > 0 && len(records) == limit {
			break
		}
	}
	return records, nil
}
