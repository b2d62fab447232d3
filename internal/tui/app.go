// Package tui hosts the terminal feed browser: a virtualized card grid
// with scroll-driven pagination and a post overlay kept in sync with an
// in-app location history.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/caldwell/strand/internal/domain"
	"github.com/caldwell/strand/internal/feed"
	"github.com/caldwell/strand/internal/grid"
	"github.com/caldwell/strand/internal/nav"
	"github.com/caldwell/strand/internal/pager"
	"github.com/caldwell/strand/internal/tui/styles"
)

// Reserved terminal lines outside the feed viewport.
const chromeLines = 2 // header + footer

// Model is the bubbletea application state.
type Model struct {
	svc     *feed.Service
	history *nav.Stack
	sync    *nav.Synchronizer
	trigger *pager.Trigger
	virt    grid.Virtualizer
	vp      *Viewport
	keys    KeyMap
	logger  *slog.Logger

	width  int
	height int
	cols   int

	// cursor indexes into visiblePosts(), not the raw sequence.
	cursor int

	filterInput textinput.Model
	typing      bool
	filterQuery string
	filteredIdx []int

	spin      spinner.Model
	status    string
	statusErr bool
}

// NewModel wires the application together. initialPath seeds the location
// history, so a deep link like /post/some-slug starts with that overlay
// open.
func NewModel(svc *feed.Service, initialPath string, logger *slog.Logger) *Model {
	vp := &Viewport{}
	history := nav.NewStack(initialPath)

	ti := textinput.New()
	ti.Placeholder = "filter posts"
	ti.Prompt = "/"
	ti.CharLimit = 64
	ti.PromptStyle = styles.FilterPromptStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	return &Model{
		svc:         svc,
		history:     history,
		sync:        nav.NewSynchronizer(history, vp, logger),
		trigger:     pager.NewTrigger(),
		virt:        grid.NewVirtualizer(),
		vp:          vp,
		keys:        DefaultKeyMap(),
		logger:      logger,
		cols:        1,
		filterInput: ti,
		spin:        sp,
	}
}

// Init starts the frame loop and requests the first page.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(FrameTickCmd(), m.spin.Tick, m.fetchNextPage())
}

// Update handles all messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.SetSize(msg.Width, msg.Height-chromeLines)
		m.applyLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case FrameTickMsg:
		return m, tea.Batch(m.pollTrigger(), FrameTickCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case PageLoadedMsg:
		if msg.Generation != m.svc.Generation() {
			m.logger.Debug("discarding page from a reset feed", "page", msg.Page.Number, "generation", msg.Generation)
			return m, nil
		}
		m.svc.ApplyPage(msg.Page)
		m.refreshFilter()
		m.applyLayout()
		if slug := m.sync.OpenSlug(); slug != "" {
			if _, ok := m.svc.BySlug(slug); !ok {
				if hint := m.svc.SuggestSlug(slug); hint != "" {
					m.logger.Warn("overlay slug not in loaded pages", "slug", slug, "closest", hint)
				}
			}
		}
		return m, nil

	case ErrMsg:
		if msg.Generation != m.svc.Generation() {
			return m, nil
		}
		m.svc.FailFetch(msg.Err)
		m.status = msg.Error()
		m.statusErr = true
		return m, ClearStatusCmd()

	case StatusMsg:
		m.status = msg.Message
		m.statusErr = msg.IsError
		return m, ClearStatusCmd()

	case ClearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.typing {
		return m.handleFilterKey(msg)
	}

	if m.sync.IsOpen() {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.cols)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.cols)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.pageRows() * m.cols)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.pageRows() * m.cols)

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.vp.ScrollToTop()
	case key.Matches(msg, m.keys.End):
		if n := len(m.visiblePosts()); n > 0 {
			m.cursor = n - 1
		}
		m.vp.ScrollToBottom()

	case key.Matches(msg, m.keys.Open):
		if posts := m.visiblePosts(); m.cursor < len(posts) {
			m.sync.Open(posts[m.cursor].Slug)
		}

	case key.Matches(msg, m.keys.HistBack):
		if path, ok := m.history.Back(); ok {
			m.sync.HandleLocationChange(path)
		}
	case key.Matches(msg, m.keys.HistForward):
		if path, ok := m.history.Forward(); ok {
			m.sync.HandleLocationChange(path)
		}

	case key.Matches(msg, m.keys.Filter):
		m.typing = true
		m.filterInput.SetValue(m.filterQuery)
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		m.svc.Reset()
		m.filterQuery = ""
		m.filteredIdx = nil
		m.cursor = 0
		m.vp.ScrollToTop()
		m.applyLayout()
		return m, m.fetchNextPage()

	case key.Matches(msg, m.keys.Escape):
		if m.filterQuery != "" {
			m.clearFilter()
		}
	}

	return m, nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.sync.Close()

	case key.Matches(msg, m.keys.NextPost):
		m.stepOverlay(1)
	case key.Matches(msg, m.keys.PrevPost):
		m.stepOverlay(-1)

	case key.Matches(msg, m.keys.HistBack):
		if path, ok := m.history.Back(); ok {
			m.sync.HandleLocationChange(path)
		}
	case key.Matches(msg, m.keys.HistForward):
		if path, ok := m.history.Forward(); ok {
			m.sync.HandleLocationChange(path)
		}
	}

	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.typing = false
		m.filterInput.Blur()
		m.clearFilter()
		return m, nil
	case tea.KeyEnter:
		m.typing = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filterQuery = m.filterInput.Value()
	m.refreshFilter()
	m.cursor = 0
	m.vp.ScrollToTop()
	m.applyLayout()
	return m, cmd
}

// stepOverlay moves the open overlay to the adjacent post in feed order.
// The saved feed offset stays whatever it was when the chain started.
func (m *Model) stepOverlay(delta int) {
	idx := m.svc.IndexOfSlug(m.sync.OpenSlug())
	if idx < 0 {
		return
	}
	next := idx + delta
	posts := m.svc.Posts()
	if next < 0 || next >= len(posts) {
		return
	}
	m.sync.Open(posts[next].Slug)
}

// pollTrigger runs the once-per-frame pagination check. While a filter is
// narrowing the feed the geometry describes the filtered subset, so the
// trigger is not sampled then.
func (m *Model) pollTrigger() tea.Cmd {
	if m.filterQuery != "" {
		return nil
	}

	rowCount := grid.RowCount(m.svc.Total(), m.cols)
	state := m.vp.ScrollState(m.virt.TotalHeight(rowCount))
	m.trigger.Tick(state, m.svc.IsFetching(), m.svc.HasMore())

	if !m.trigger.Consume() {
		return nil
	}
	return m.fetchNextPage()
}

// fetchNextPage issues at most one fetch; the in-flight flag makes
// overlapping calls harmless.
func (m *Model) fetchNextPage() tea.Cmd {
	page, err := m.svc.BeginFetch()
	if err != nil {
		return nil
	}
	m.logger.Debug("fetching page", "page", page)
	return FetchPageCmd(m.svc, page)
}

// applyLayout recomputes column count from viewport width and re-derives
// the scrollable extent. Rows regroup automatically because grouping is
// done from the flat sequence on every render.
func (m *Model) applyLayout() {
	m.cols = grid.ColumnsForWidth(m.vp.WidthPx())
	rowCount := grid.RowCount(len(m.visiblePosts()), m.cols)
	m.vp.SetTotalLines(rowCount * cardLines)
	m.clampCursor()
	if len(m.visiblePosts()) > 0 {
		m.vp.EnsureRowVisible(m.cursor / m.cols)
	}
}

func (m *Model) moveCursor(delta int) {
	n := len(m.visiblePosts())
	if n == 0 {
		return
	}
	m.cursor += delta
	m.clampCursor()
	m.vp.EnsureRowVisible(m.cursor / m.cols)
}

func (m *Model) clampCursor() {
	if n := len(m.visiblePosts()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) pageRows() int {
	rows := m.vp.ContentLines() / cardLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

// visiblePosts returns the post subset the grid shows: the whole sequence,
// or the fuzzy-filtered slice of it.
func (m *Model) visiblePosts() []domain.Post {
	if m.filterQuery == "" {
		return m.svc.Posts()
	}
	posts := m.svc.Posts()
	out := make([]domain.Post, 0, len(m.filteredIdx))
	for _, i := range m.filteredIdx {
		out = append(out, posts[i])
	}
	return out
}

// refreshFilter recomputes the filtered index set against the current
// sequence. Called after typing and after new pages land.
func (m *Model) refreshFilter() {
	if m.filterQuery == "" {
		m.filteredIdx = nil
		return
	}
	posts := m.svc.Posts()
	titles := make([]string, len(posts))
	for i, p := range posts {
		titles[i] = p.Title
	}
	matches := fuzzy.Find(m.filterQuery, titles)
	m.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		m.filteredIdx[i] = match.Index
	}
}

func (m *Model) clearFilter() {
	m.filterQuery = ""
	m.filteredIdx = nil
	m.filterInput.SetValue("")
	m.cursor = 0
	m.applyLayout()
}
