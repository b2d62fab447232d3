package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/caldwell/strand/internal/domain"
	"github.com/caldwell/strand/internal/tui/styles"
)

// CardLines is the fixed height of a rendered card in terminal lines,
// border included. Every card in a row has the same height so rows can be
// sliced line-by-line during virtualized rendering.
const CardLines = 4

// RenderCard renders one post as a fixed-height card.
func RenderCard(post domain.Post, width int, selected bool) string {
	inner := width - 4 // border + padding
	if inner < 3 {
		inner = 3
	}

	// Truncate inside the padded content area so nothing wraps; a wrapped
	// line would break the fixed card height.
	text := inner - 2
	title := styles.TitleStyle.Render(styles.Truncate(post.Title, text))
	byline := styles.DimStyle.Render(styles.Truncate("by "+post.Author, text))

	body := lipgloss.JoinVertical(lipgloss.Left, title, byline)

	style := styles.CardStyle
	if selected {
		style = styles.SelectedCardStyle
	}
	return style.Width(inner).Height(CardLines - 2).Render(body)
}

// RenderRow renders a row of cards side by side, padded to cols slots so
// a trailing partial row keeps its card widths.
func RenderRow(posts []domain.Post, cols, totalWidth, selectedIdx int) string {
	if cols < 1 {
		cols = 1
	}
	cardWidth := totalWidth / cols

	rendered := make([]string, 0, len(posts))
	for i, p := range posts {
		rendered = append(rendered, RenderCard(p, cardWidth, i == selectedIdx))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
