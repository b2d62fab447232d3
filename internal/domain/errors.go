package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrPostNotFound indicates no loaded post matches the requested slug
	ErrPostNotFound = errors.New("post not found")

	// ErrFeedUnavailable indicates the feed endpoint is unreachable
	ErrFeedUnavailable = errors.New("feed is unreachable")

	// ErrFetchInFlight indicates a page fetch was requested while one is
	// already running
	ErrFetchInFlight = errors.New("page fetch already in flight")

	// ErrNoMorePages indicates a fetch was requested past the last page
	ErrNoMorePages = errors.New("no more pages")
)
