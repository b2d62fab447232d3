package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/caldwell/strand/internal/domain"
	"github.com/caldwell/strand/internal/tui/styles"
)

// RenderOverlay renders the post detail modal shown on top of the feed.
func RenderOverlay(post domain.Post, screenWidth, screenHeight int) string {
	modalWidth := screenWidth * 2 / 3
	if modalWidth < 30 {
		modalWidth = screenWidth - 4
	}
	if modalWidth < 10 {
		modalWidth = 10
	}
	inner := modalWidth - 6 // border + padding

	title := styles.ModalTitleStyle.Render(styles.Truncate(post.Title, inner))
	byline := styles.SubtitleStyle.Render(styles.Truncate("by "+post.Author, inner))
	excerpt := lipgloss.NewStyle().Width(inner).Render(post.Excerpt)
	hint := styles.DimStyle.Render("esc close · n/p next/prev · [ back")

	body := lipgloss.JoinVertical(lipgloss.Left, title, byline, "", excerpt, "", hint)
	return styles.ModalStyle.Width(inner).Render(body)
}

// RenderMissingOverlay covers the case where the location names a post
// that is not in the loaded sequence, like a deep link past the loaded
// pages.
func RenderMissingOverlay(slug string, screenWidth int) string {
	inner := screenWidth/2 - 6
	if inner < 20 {
		inner = 20
	}
	title := styles.ModalTitleStyle.Render("Post not loaded")
	msg := lipgloss.NewStyle().Width(inner).Render(
		"\"" + slug + "\" is not in the loaded pages yet. Scroll the feed to load more, or press esc.")
	return styles.ModalStyle.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", msg))
}
