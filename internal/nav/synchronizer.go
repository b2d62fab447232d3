package nav

import "log/slog"

// Synchronizer owns the overlay state machine: either no overlay is open
// or exactly one post is. App-initiated transitions mutate state and push
// the matching location in the same step; for history-initiated
// transitions (back/forward) the location is authoritative and state is
// derived from it.
//
// The saved scroll offset is captured only when an overlay chain starts
// from the feed, left untouched across overlay-to-overlay hops, and
// consumed only by an app-initiated close. Back/forward never restores it.
type Synchronizer struct {
	history  History
	scroller Scroller
	logger   *slog.Logger

	openSlug    string
	savedOffset float64
}

// NewSynchronizer resolves the initial state from the current location:
// a fresh load on an overlay path opens that overlay directly, with no
// feed scroll context to capture.
func NewSynchronizer(history History, scroller Scroller, logger *slog.Logger) *Synchronizer {
	s := &Synchronizer{history: history, scroller: scroller, logger: logger}
	if slug, ok := ParsePostPath(history.Path()); ok {
		s.openSlug = slug
		logger.Info("resolved overlay from initial location", "slug", slug)
	}
	return s
}

// OpenSlug returns the slug of the open overlay, or "" when closed.
func (s *Synchronizer) OpenSlug() string {
	return s.openSlug
}

// IsOpen reports whether an overlay is showing.
func (s *Synchronizer) IsOpen() bool {
	return s.openSlug != ""
}

// SavedOffset exposes the captured feed scroll position.
func (s *Synchronizer) SavedOffset() float64 {
	return s.savedOffset
}

// Open shows the overlay for slug. From the feed it captures the current
// scroll offset first; from another overlay it leaves the captured offset
// alone, still pointing at the position before the chain began. Both
// push a new history entry.
func (s *Synchronizer) Open(slug string) {
	if slug == "" {
		return
	}
	if !s.IsOpen() {
		s.savedOffset = s.scroller.Offset()
	}
	s.openSlug = slug
	s.history.Push(PostPath(slug))
}

// Close dismisses the overlay, pushes the base location, and jumps the
// feed back to the captured scroll offset.
func (s *Synchronizer) Close() {
	if !s.IsOpen() {
		return
	}
	s.openSlug = ""
	s.history.Push(BasePath)
	s.scroller.JumpTo(s.savedOffset)
}

// HandleLocationChange applies a history-initiated location change
// (back/forward). The resulting path decides the state; no scroll
// restoration happens on this path.
func (s *Synchronizer) HandleLocationChange(path string) {
	if slug, ok := ParsePostPath(path); ok {
		s.openSlug = slug
		return
	}
	if path != BasePath {
		s.logger.Warn("unrecognized location path, treating as closed", "path", path)
	}
	s.openSlug = ""
}
