// Package feed owns the flattened post sequence built from fetched pages.
// The sequence is append-only and read-only to every other component;
// rendering derives rows from it, never mutates it.
package feed

import (
	"context"
	"log/slog"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/caldwell/strand/internal/domain"
)

// Service wraps the paged feed source. Fetches are strictly sequential:
// BeginFetch refuses while one is in flight, so pages append in response
// order which coincides with request order.
//
// State mutators (BeginFetch, ApplyPage, FailFetch) are meant to run on
// the UI loop; LoadPage does the blocking work and touches no sequence
// state, so it can run in a command goroutine.
type Service struct {
	repo   domain.FeedRepository
	store  domain.PageStore
	logger *slog.Logger

	posts      []domain.Post
	nextPage   *int
	fetching   bool
	loadedOnce bool
	generation int
}

// NewService returns a feed positioned before the first page.
func NewService(repo domain.FeedRepository, store domain.PageStore, logger *slog.Logger) *Service {
	first := domain.FirstPage
	return &Service{
		repo:     repo,
		store:    store,
		logger:   logger,
		nextPage: &first,
	}
}

// Posts returns the flattened item sequence in fetch-then-intra-page order.
func (s *Service) Posts() []domain.Post {
	return s.posts
}

// Total returns the number of loaded posts.
func (s *Service) Total() int {
	return len(s.posts)
}

// HasMore reports whether another page exists.
func (s *Service) HasMore() bool {
	return s.nextPage != nil
}

// IsFetching reports whether a page fetch is in flight.
func (s *Service) IsFetching() bool {
	return s.fetching
}

// InitialLoading reports whether the very first page is still outstanding.
func (s *Service) InitialLoading() bool {
	return !s.loadedOnce
}

// Generation identifies the current fetch epoch. Reset starts a new one,
// so responses stamped with an older generation belong to a feed that no
// longer exists and must be discarded, never applied.
func (s *Service) Generation() int {
	return s.generation
}

// BeginFetch marks a fetch as in flight and returns the page token to
// load. It refuses while a fetch is running or the feed is exhausted, so
// ticks that race the in-flight flag cannot issue duplicate requests.
func (s *Service) BeginFetch() (int, error) {
	if s.fetching {
		return 0, domain.ErrFetchInFlight
	}
	if s.nextPage == nil {
		return 0, domain.ErrNoMorePages
	}
	s.fetching = true
	return *s.nextPage, nil
}

// LoadPage retrieves one page, serving from the page cache when possible
// and writing fresh pages through it.
func (s *Service) LoadPage(ctx context.Context, page int) (domain.Page, error) {
	if s.store != nil {
		if cached, ok := s.store.GetPage(page); ok {
			s.logger.Debug("page served from cache", "page", page)
			return cached, nil
		}
	}

	p, err := s.repo.FetchPage(ctx, page)
	if err != nil {
		return domain.Page{}, err
	}

	if s.store != nil {
		if err := s.store.SavePage(p); err != nil {
			s.logger.Warn("failed to cache page", "page", page, "error", err)
		}
	}
	return p, nil
}

// ApplyPage appends a fetched page to the sequence and advances the next
// page token. Pages are never reordered or deduplicated here; the
// upstream source is trusted to keep items unique across pages.
func (s *Service) ApplyPage(p domain.Page) {
	s.posts = append(s.posts, p.Posts...)
	s.nextPage = p.NextPage
	s.fetching = false
	s.loadedOnce = true
	s.logger.Info("page applied", "page", p.Number, "posts", len(p.Posts), "total", len(s.posts), "hasMore", s.HasMore())
}

// FailFetch records a failed fetch. Pagination state is left unchanged so
// the scroll trigger naturally retries on a later qualifying tick.
func (s *Service) FailFetch(err error) {
	s.fetching = false
	s.loadedOnce = true
	s.logger.Error("page fetch failed", "error", err)
}

// Reset drops the loaded sequence and cached pages and rewinds the page
// token, so the next fetch starts the feed over from upstream. Advancing
// the generation orphans any fetch still in flight; its response carries
// the old generation and is dropped when it lands.
func (s *Service) Reset() {
	first := domain.FirstPage
	s.posts = nil
	s.nextPage = &first
	s.fetching = false
	s.loadedOnce = false
	s.generation++
	if s.store != nil {
		s.store.InvalidateAll()
	}
	s.logger.Info("feed reset", "generation", s.generation)
}

// BySlug resolves a slug against the loaded sequence. If the upstream
// source ever violates slug uniqueness, the first occurrence wins.
func (s *Service) BySlug(slug string) (domain.Post, bool) {
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return domain.Post{}, false
}

// IndexOfSlug returns the sequence position of a slug, or -1.
func (s *Service) IndexOfSlug(slug string) int {
	for i, p := range s.posts {
		if p.Slug == slug {
			return i
		}
	}
	return -1
}

// SuggestSlug returns the closest loaded slug to an unresolved one, for
// log hints when a location path names an unknown post. Empty when
// nothing ranks.
func (s *Service) SuggestSlug(slug string) string {
	slugs := make([]string, len(s.posts))
	for i, p := range s.posts {
		slugs[i] = p.Slug
	}
	ranks := fuzzy.RankFindFold(slug, slugs)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
