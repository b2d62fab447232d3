package pager

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTrigger() (*Trigger, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	return NewTriggerWithClock(clock.now), clock
}

func deepScroll() ScrollState {
	// 55% scrolled with plenty of document left.
	return ScrollState{ScrollTop: 5500, ViewportHeight: 900, DocumentHeight: 10900}
}

func TestTrigger_IdempotentWhenBlocked(t *testing.T) {
	tr, clock := newTestTrigger()

	for i := 0; i < 10; i++ {
		tr.Tick(deepScroll(), true, true)   // fetch in flight
		tr.Tick(deepScroll(), false, false) // feed exhausted
		clock.advance(50 * time.Millisecond)
	}

	if tr.Consume() {
		t.Error("no signal should be raised while fetching or exhausted")
	}
}

func TestTrigger_PercentThreshold(t *testing.T) {
	tr, _ := newTestTrigger()

	// 40% scrolled and far from the bottom: no signal.
	tr.Tick(ScrollState{ScrollTop: 4000, ViewportHeight: 900, DocumentHeight: 10900}, false, true)
	if tr.Consume() {
		t.Fatal("signal raised below both thresholds")
	}

	tr.Tick(deepScroll(), false, true)
	if !tr.Consume() {
		t.Fatal("expected signal at 55%")
	}
}

func TestTrigger_BottomDistanceThreshold(t *testing.T) {
	tr, _ := newTestTrigger()

	// Only 30% scrolled but within 1500px of the bottom.
	s := ScrollState{ScrollTop: 3000, ViewportHeight: 900, DocumentHeight: 5000}
	tr.Tick(s, false, true)
	if !tr.Consume() {
		t.Fatal("expected signal within the bottom distance threshold")
	}
}

func TestTrigger_ShortContent(t *testing.T) {
	tr, _ := newTestTrigger()

	// Content shorter than the viewport: percentage check is skipped, but
	// the bottom-distance check still fires.
	s := ScrollState{ScrollTop: 0, ViewportHeight: 900, DocumentHeight: 400}
	tr.Tick(s, false, true)
	if !tr.Consume() {
		t.Fatal("expected signal for content shorter than the viewport")
	}
}

func TestTrigger_CooldownSuppressesResignal(t *testing.T) {
	tr, clock := newTestTrigger()

	tr.Tick(deepScroll(), false, true)
	if !tr.Consume() {
		t.Fatal("expected initial signal")
	}

	// Ticks keep firing within the 100ms cooldown: no second signal even
	// though the in-flight flag has not flipped yet.
	for i := 0; i < 5; i++ {
		clock.advance(16 * time.Millisecond)
		tr.Tick(deepScroll(), false, true)
	}
	if tr.Consume() {
		t.Fatal("signal re-raised inside cooldown window")
	}

	// After the cooldown the loop resumes sampling.
	clock.advance(100 * time.Millisecond)
	tr.Tick(deepScroll(), false, true)
	if !tr.Consume() {
		t.Fatal("expected signal after cooldown expired")
	}
}

func TestTrigger_ConsumeOnce(t *testing.T) {
	tr, _ := newTestTrigger()

	tr.Tick(deepScroll(), false, true)
	if !tr.Consume() {
		t.Fatal("expected signal")
	}
	if tr.Consume() {
		t.Fatal("signal consumed twice")
	}
}
