package domain

// Store persists feed items and refresh history (BoltDB + memory).
type Store interface {
	// === Items ===
	LoadItems(feed string) ([]Item, error)
	SaveItems(feed string, items []Item) error

	// === History ===
	RecordRefresh(rec RefreshRecord) error
	RecentRefreshes(feed string, limit int) ([]RefreshRecord, error)

	// === Lifecycle ===
	Close() error
}
