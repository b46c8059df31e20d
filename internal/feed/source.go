// Package feed fetches, merges and persists the items behind the pull list.
package feed

import (
	"context"

	"github.com/mmcdole/pullfeed/internal/domain"
)

// Source produces new feed items on demand.
type Source interface {
	// Name identifies the feed in the store and in refresh records.
	Name() string

	// Fetch returns items that appeared since the previous call. It blocks
	// until the items are available or ctx is done.
	Fetch(ctx context.Context) ([]domain.Item, error)
}
