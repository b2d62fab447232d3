package domain

import "context"

// FeedRepository provides access to the paged posts feed.
type FeedRepository interface {
	// FetchPage returns one page of posts. A non-success transport status
	// surfaces as an error and leaves no partial state behind.
	FetchPage(ctx context.Context, page int) (Page, error)
}

// PageStore caches fetched pages between sessions.
type PageStore interface {
	GetPage(page int) (Page, bool)
	SavePage(p Page) error
	InvalidateAll()
	Close() error
}
