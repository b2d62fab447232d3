package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/caldwell/strand/internal/domain"
	"github.com/caldwell/strand/internal/feed"
)

type fakeRepo struct {
	pages   map[int]domain.Page
	fetches int
	err     error
}

func (f *fakeRepo) FetchPage(ctx context.Context, page int) (domain.Page, error) {
	f.fetches++
	if f.err != nil {
		return domain.Page{}, f.err
	}
	p, ok := f.pages[page]
	if !ok {
		return domain.Page{}, domain.ErrFeedUnavailable
	}
	return p, nil
}

func makePage(number, count int, next *int) domain.Page {
	p := domain.Page{Number: number, NextPage: next}
	for i := 0; i < count; i++ {
		n := (number-1)*count + i
		p.Posts = append(p.Posts, domain.Post{
			ID:     fmt.Sprintf("%d", n),
			Slug:   fmt.Sprintf("post-%d", n),
			Title:  fmt.Sprintf("Post %d", n),
			Author: "ada",
		})
	}
	return p
}

func newTestModel(t *testing.T, repo *fakeRepo, initialPath string) *Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := feed.NewService(repo, nil, logger)
	return NewModel(svc, initialPath, logger)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// loadFeed drives the model through startup with one applied page.
func loadFeed(m *Model, page domain.Page) {
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 96, Height: 10})
	m.Update(PageLoadedMsg{Page: page})
}

func TestModel_ColumnsFollowWidth(t *testing.T) {
	m := newTestModel(t, &fakeRepo{}, "/")

	cases := []struct {
		widthCells int
		wantCols   int
	}{
		{80, 1},  // 640 px
		{96, 2},  // 768 px
		{127, 2}, // 1016 px
		{128, 3}, // 1024 px
	}
	for _, tc := range cases {
		m.Update(tea.WindowSizeMsg{Width: tc.widthCells, Height: 30})
		if m.cols != tc.wantCols {
			t.Errorf("width %d cells: cols = %d, want %d", tc.widthCells, m.cols, tc.wantCols)
		}
	}
}

func TestModel_OpenOverlayPushesLocation(t *testing.T) {
	next := 2
	m := newTestModel(t, &fakeRepo{}, "/")
	loadFeed(m, makePage(1, 10, &next))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !m.sync.IsOpen() || m.sync.OpenSlug() != "post-0" {
		t.Fatalf("overlay not open on post-0: %q", m.sync.OpenSlug())
	}
	if got := m.history.Path(); got != "/post/post-0" {
		t.Errorf("location = %q, want /post/post-0", got)
	}
}

func TestModel_CloseOverlayRestoresScroll(t *testing.T) {
	m := newTestModel(t, &fakeRepo{}, "/")
	loadFeed(m, makePage(1, 30, nil))

	m.Update(keyRune('G'))
	offset := m.vp.Offset()
	if offset == 0 {
		t.Fatal("expected a scrolled feed before opening")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.sync.IsOpen() {
		t.Fatal("overlay should be open")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.sync.IsOpen() {
		t.Fatal("overlay should be closed")
	}
	if got := m.vp.Offset(); got != offset {
		t.Errorf("offset after close = %v, want %v", got, offset)
	}
}

func TestModel_OverlayToOverlayKeepsSavedOffset(t *testing.T) {
	m := newTestModel(t, &fakeRepo{}, "/")
	loadFeed(m, makePage(1, 30, nil))

	for i := 0; i < 10; i++ {
		m.Update(keyRune('j'))
	}
	offset := m.vp.Offset()
	if offset == 0 {
		t.Fatal("expected a scrolled feed")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	opened := m.sync.OpenSlug()

	m.Update(keyRune('n'))
	if m.sync.OpenSlug() == opened {
		t.Fatal("n should move to the next post")
	}
	if got := m.sync.SavedOffset(); got != offset {
		t.Errorf("saved offset after hop = %v, want %v", got, offset)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.vp.Offset(); got != offset {
		t.Errorf("offset after chain close = %v, want %v", got, offset)
	}
}

func TestModel_HistoryBackAndForward(t *testing.T) {
	m := newTestModel(t, &fakeRepo{}, "/")
	loadFeed(m, makePage(1, 10, nil))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.sync.IsOpen() {
		t.Fatal("overlay should be open")
	}

	m.Update(keyRune('['))
	if m.sync.IsOpen() {
		t.Error("back should close the overlay")
	}
	if got := m.history.Path(); got != "/" {
		t.Errorf("location after back = %q, want /", got)
	}

	m.Update(keyRune(']'))
	if !m.sync.IsOpen() || m.sync.OpenSlug() != "post-0" {
		t.Errorf("forward should reopen post-0, got %q", m.sync.OpenSlug())
	}
}

func TestModel_DeepLinkOpensOverlay(t *testing.T) {
	m := newTestModel(t, &fakeRepo{}, "/post/post-3")

	if !m.sync.IsOpen() || m.sync.OpenSlug() != "post-3" {
		t.Fatalf("deep link should open post-3, got %q", m.sync.OpenSlug())
	}
	if m.sync.SavedOffset() != 0 {
		t.Errorf("fresh deep link has no feed context, saved offset = %v", m.sync.SavedOffset())
	}
}

func TestModel_ScrollToBottomStartsNextFetch(t *testing.T) {
	next := 2
	m := newTestModel(t, &fakeRepo{}, "/")
	loadFeed(m, makePage(1, 30, &next))

	// At the top of a tall feed no threshold is met.
	m.Update(FrameTickMsg{})
	if m.svc.IsFetching() {
		t.Fatal("no fetch should start at the top of a tall feed")
	}

	m.Update(keyRune('G'))
	m.Update(FrameTickMsg{})
	if !m.svc.IsFetching() {
		t.Fatal("reaching the bottom should start the next fetch")
	}
}

func TestModel_NoDuplicateFetchWhileInFlight(t *testing.T) {
	next := 2
	m := newTestModel(t, &fakeRepo{}, "/")
	loadFeed(m, makePage(1, 30, &next))

	m.Update(keyRune('G'))
	m.Update(FrameTickMsg{})
	if !m.svc.IsFetching() {
		t.Fatal("expected a fetch in flight")
	}

	if cmd := m.pollTrigger(); cmd != nil {
		t.Error("ticks during an in-flight fetch must not issue another")
	}
}

func TestModel_FailedFetchRetriesOnLaterTick(t *testing.T) {
	m := newTestModel(t, &fakeRepo{}, "/")
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 96, Height: 10})

	m.Update(ErrMsg{Err: errors.New("boom"), Context: "loading feed page"})
	if m.svc.IsFetching() {
		t.Fatal("failed fetch should clear the in-flight flag")
	}
	if !m.svc.HasMore() {
		t.Fatal("failed fetch must not consume the page token")
	}
	if m.status == "" {
		t.Error("error should surface in the status line")
	}

	// An empty feed is always within the bottom threshold, so the next
	// tick retries the same page.
	m.Update(FrameTickMsg{})
	if !m.svc.IsFetching() {
		t.Error("later tick should retry the failed page")
	}
}

func TestModel_RefreshDiscardsInFlightPage(t *testing.T) {
	next := 2
	m := newTestModel(t, &fakeRepo{}, "/")
	loadFeed(m, makePage(1, 30, &next))

	m.Update(keyRune('G'))
	m.Update(FrameTickMsg{})
	if !m.svc.IsFetching() {
		t.Fatal("expected page 2 in flight")
	}
	staleGen := m.svc.Generation()

	// Refresh while the fetch is outstanding: the feed restarts and a
	// page-1 request goes out under the new generation.
	m.Update(keyRune('r'))
	if m.svc.Total() != 0 {
		t.Fatalf("Total() after refresh = %d, want 0", m.svc.Total())
	}
	if !m.svc.IsFetching() {
		t.Fatal("refresh should start the page-1 fetch")
	}

	// The orphaned page-2 response lands. It must not append posts, move
	// the page token, or clear the in-flight flag of the new fetch.
	three := 3
	m.Update(PageLoadedMsg{Page: makePage(2, 30, &three), Generation: staleGen})
	if m.svc.Total() != 0 {
		t.Errorf("stale page applied after reset, Total() = %d", m.svc.Total())
	}
	if !m.svc.IsFetching() {
		t.Error("stale response must not clear the restarted fetch")
	}

	// A stale failure is ignored the same way.
	m.Update(ErrMsg{Err: errors.New("late failure"), Generation: staleGen})
	if !m.svc.IsFetching() {
		t.Error("stale error must not clear the restarted fetch")
	}
	if m.status != "" {
		t.Errorf("stale error leaked into the status line: %q", m.status)
	}

	// The restarted page-1 reply applies normally, in order.
	m.Update(PageLoadedMsg{Page: makePage(1, 10, nil), Generation: m.svc.Generation()})
	if m.svc.Total() != 10 {
		t.Fatalf("Total() = %d, want 10", m.svc.Total())
	}
	if got := m.svc.Posts()[0].Slug; got != "post-0" {
		t.Errorf("sequence restarts at post-0, got %q", got)
	}
}

func TestModel_FilterNarrowsGridAndPausesPaging(t *testing.T) {
	next := 2
	m := newTestModel(t, &fakeRepo{}, "/")
	loadFeed(m, makePage(1, 30, &next))

	m.Update(keyRune('/'))
	if !m.typing {
		t.Fatal("/ should enter filter mode")
	}
	for _, r := range "Post 12" {
		m.Update(keyRune(r))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	posts := m.visiblePosts()
	if len(posts) == 0 || len(posts) == 30 {
		t.Fatalf("filter should narrow the grid, got %d posts", len(posts))
	}
	var hasTarget bool
	for _, p := range posts {
		if p.Slug == "post-12" {
			hasTarget = true
		}
	}
	if !hasTarget {
		t.Fatalf("post-12 missing from filtered set: %v", posts)
	}

	if cmd := m.pollTrigger(); cmd != nil {
		t.Error("pagination should pause while a filter is active")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := len(m.visiblePosts()); got != 30 {
		t.Errorf("esc should clear the filter, got %d posts", got)
	}
}

func TestFetchPageCmd(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := 2
	repo := &fakeRepo{pages: map[int]domain.Page{1: makePage(1, 5, &next)}}
	svc := feed.NewService(repo, nil, logger)

	msg := FetchPageCmd(svc, 1)()
	loaded, ok := msg.(PageLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want PageLoadedMsg", msg)
	}
	if loaded.Page.Number != 1 || len(loaded.Page.Posts) != 5 {
		t.Errorf("unexpected page: %+v", loaded.Page)
	}

	if loaded.Generation != svc.Generation() {
		t.Errorf("Generation = %d, want %d", loaded.Generation, svc.Generation())
	}

	// A command created before a reset carries the old generation.
	cmd := FetchPageCmd(svc, 1)
	svc.Reset()
	if stale, ok := cmd().(PageLoadedMsg); !ok || stale.Generation == svc.Generation() {
		t.Error("command must carry the generation it was issued under")
	}

	repo.err = errors.New("down")
	if _, ok := FetchPageCmd(svc, 2)().(ErrMsg); !ok {
		t.Error("repo failure should map to ErrMsg")
	}
}
