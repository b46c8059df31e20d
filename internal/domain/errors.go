package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrFeedNotFound indicates no items are stored for the feed
	ErrFeedNotFound = errors.New("feed not found")

	// ErrStoreClosed indicates the store was used after Close
	ErrStoreClosed = errors.New("store is closed")

	// ErrRefreshInProgress indicates a refresh was requested while one is running
	ErrRefreshInProgress = errors.New("refresh already in progress")
)
