package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/caldwell/strand/internal/grid"
	"github.com/caldwell/strand/internal/tui/components"
	"github.com/caldwell/strand/internal/tui/styles"
)

// View renders the whole screen
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderFeed(),
		m.renderFooter(),
	)

	if m.sync.IsOpen() {
		return m.renderOverlay()
	}
	return screen
}

func (m *Model) renderHeader() string {
	left := styles.AccentStyle.Bold(true).Render("strand")
	path := styles.DimStyle.Render(m.history.Path())

	right := fmt.Sprintf("%d posts", m.svc.Total())
	if m.filterQuery != "" {
		right = fmt.Sprintf("%d of %d posts", len(m.visiblePosts()), m.svc.Total())
	}
	right = styles.SubtitleStyle.Render(right)

	middle := m.width - lipgloss.Width(left) - lipgloss.Width(path) - lipgloss.Width(right) - 4
	if middle < 1 {
		middle = 1
	}
	return " " + left + "  " + path + strings.Repeat(" ", middle) + right
}

// renderFeed draws the virtualized card grid. Only the windowed rows are
// rendered; the window's line run is then sliced to the viewport, so the
// cost per frame is bounded by viewport height plus overscan, not by the
// sequence length.
func (m *Model) renderFeed() string {
	posts := m.visiblePosts()

	if m.svc.InitialLoading() && m.svc.IsFetching() {
		return m.centered(m.spin.View() + " loading feed...")
	}
	if len(posts) == 0 {
		if m.filterQuery != "" {
			return m.centered(styles.DimStyle.Render("no posts match " + strconv.Quote(m.filterQuery)))
		}
		return m.centered(styles.DimStyle.Render("feed is empty"))
	}

	rows := grid.GroupRows(posts, m.cols)
	window := m.virt.Window(len(rows), m.vp.Offset(), m.vp.HeightPx())
	if len(window) == 0 {
		return m.centered("")
	}

	cursorRow := m.cursor / m.cols
	lines := make([]string, 0, len(window)*cardLines)
	for _, vr := range window {
		selected := -1
		if vr.Index == cursorRow {
			selected = m.cursor % m.cols
		}
		rendered := components.RenderRow(rows[vr.Index], m.cols, m.width, selected)
		lines = append(lines, strings.Split(rendered, "\n")...)
	}

	// Slice the window's lines to the visible region. The window always
	// covers the viewport, so start only needs clamping against rounding
	// at the ends of the sequence.
	start := m.vp.ScrollLine() - window[0].Index*cardLines
	if start < 0 {
		start = 0
	}
	if start > len(lines) {
		start = len(lines)
	}
	end := start + m.vp.ContentLines()
	if end > len(lines) {
		end = len(lines)
	}

	visible := lines[start:end]
	for len(visible) < m.vp.ContentLines() {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n")
}

func (m *Model) renderFooter() string {
	if m.typing {
		return styles.FooterStyle.Width(m.width).Render(m.filterInput.View())
	}

	var left string
	switch {
	case m.status != "" && m.statusErr:
		left = styles.ErrorStyle.Render(m.status)
	case m.status != "":
		left = styles.SuccessStyle.Render(m.status)
	default:
		left = styles.DimStyle.Render("enter open · / filter · [ ] history · r refresh · q quit")
	}

	var right string
	switch {
	case m.svc.IsFetching():
		right = m.spin.View() + styles.SubtitleStyle.Render(" loading more")
	case !m.svc.HasMore():
		right = styles.DimStyle.Render("end of feed")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.FooterStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) renderOverlay() string {
	slug := m.sync.OpenSlug()

	var modal string
	if post, ok := m.svc.BySlug(slug); ok {
		modal = components.RenderOverlay(post, m.width, m.height)
	} else {
		modal = components.RenderMissingOverlay(slug, m.width)
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) centered(content string) string {
	return lipgloss.Place(m.width, m.vp.ContentLines(), lipgloss.Center, lipgloss.Center, content)
}
