// Package pager decides when the feed should fetch its next page. The
// trigger is sampled continuously (once per frame tick) instead of waiting
// for a viewport-edge event, so fast scrolling cannot outrun pagination.
package pager

import "time"

const (
	// Signal once at least half the document has been scrolled.
	triggerPercent = 50

	// Or once the bottom of the document is this close, in virtual px.
	bottomDistance = 1500

	// Suppress re-signaling briefly after a signal so a fetch has time to
	// flip the in-flight flag before the next tick samples it.
	cooldown = 100 * time.Millisecond
)

// ScrollState is the geometry sampled on each tick.
type ScrollState struct {
	ScrollTop      float64
	ViewportHeight float64
	DocumentHeight float64
}

// Trigger raises a "should load more" signal from scroll position.
// Raising is decoupled from consuming: Tick may fire on several frames
// before the fetch flag updates, but Consume hands the signal out once.
type Trigger struct {
	pending    bool
	lastSignal time.Time
	now        func() time.Time
}

// NewTrigger returns a Trigger using wall-clock time.
func NewTrigger() *Trigger {
	return &Trigger{now: time.Now}
}

// NewTriggerWithClock returns a Trigger with an injected clock.
func NewTriggerWithClock(now func() time.Time) *Trigger {
	return &Trigger{now: now}
}

// Tick samples the current scroll state. It is a no-op while a fetch is
// in flight, when the feed is exhausted, or during the post-signal
// cooldown. One tick's outcome never affects the next tick's ability to
// sample; the caller just keeps ticking.
func (t *Trigger) Tick(s ScrollState, fetching, hasMore bool) {
	if fetching || !hasMore {
		return
	}
	if !t.lastSignal.IsZero() && t.now().Sub(t.lastSignal) < cooldown {
		return
	}
	if !shouldLoad(s) {
		return
	}
	t.pending = true
	t.lastSignal = t.now()
}

// Consume returns true at most once per raised signal. The caller issues
// exactly one fetch per consumed signal, re-checking the in-flight and
// has-more flags itself.
func (t *Trigger) Consume() bool {
	if !t.pending {
		return false
	}
	t.pending = false
	return true
}

func shouldLoad(s ScrollState) bool {
	scrollable := s.DocumentHeight - s.ViewportHeight
	if scrollable > 0 {
		pct := s.ScrollTop / scrollable * 100
		if pct >= triggerPercent {
			return true
		}
	}
	return s.DocumentHeight-(s.ScrollTop+s.ViewportHeight) <= bottomDistance
}
