package tui

import (
	"math"

	"github.com/caldwell/strand/internal/grid"
	"github.com/caldwell/strand/internal/pager"
)

// The grid engine works in virtual pixels while the terminal works in
// cells. The mapping is fixed: one cell column is pxPerCell wide, and one
// terminal line is one card line, linePx tall. A card spans cardLines
// lines, so a full row is exactly grid.DefaultRowEstimate px tall.
const (
	pxPerCell = 8
	cardLines = 4
	linePx    = grid.DefaultRowEstimate / cardLines
)

// Viewport tracks the feed's visible region in terminal cells and exposes
// it to the grid engine in virtual pixels. Scrolling is line-granular; the
// pixel offset is always a whole number of card lines.
type Viewport struct {
	widthCells   int
	contentLines int

	scrollLine int
	totalLines int
}

// SetSize records the terminal region available to the feed, in cells.
func (v *Viewport) SetSize(widthCells, contentLines int) {
	v.widthCells = widthCells
	v.contentLines = contentLines
	v.clamp()
}

// SetTotalLines records the scrollable extent and re-clamps the offset,
// so shrinking content (a narrower filter, say) cannot strand the view
// past the end.
func (v *Viewport) SetTotalLines(lines int) {
	v.totalLines = lines
	v.clamp()
}

// WidthPx returns the viewport width in virtual pixels. Column breakpoints
// are evaluated against this.
func (v *Viewport) WidthPx() float64 {
	return float64(v.widthCells) * pxPerCell
}

// HeightPx returns the viewport height in virtual pixels.
func (v *Viewport) HeightPx() float64 {
	return float64(v.contentLines) * linePx
}

// ContentLines returns the number of terminal lines the feed may draw.
func (v *Viewport) ContentLines() int {
	return v.contentLines
}

// ScrollLine returns the topmost visible card line.
func (v *Viewport) ScrollLine() int {
	return v.scrollLine
}

// Offset returns the vertical scroll position in virtual pixels.
func (v *Viewport) Offset() float64 {
	return float64(v.scrollLine) * linePx
}

// JumpTo sets the scroll position from a virtual pixel offset, snapping
// to the nearest card line.
func (v *Viewport) JumpTo(offset float64) {
	v.scrollLine = int(math.Round(offset / linePx))
	v.clamp()
}

// ScrollBy moves the view by delta card lines.
func (v *Viewport) ScrollBy(delta int) {
	v.scrollLine += delta
	v.clamp()
}

// ScrollToTop jumps to the start of the feed.
func (v *Viewport) ScrollToTop() {
	v.scrollLine = 0
}

// ScrollToBottom jumps to the end of the feed.
func (v *Viewport) ScrollToBottom() {
	v.scrollLine = v.maxScrollLine()
	v.clamp()
}

// EnsureRowVisible scrolls the minimum distance needed to bring the whole
// of row rowIndex into view.
func (v *Viewport) EnsureRowVisible(rowIndex int) {
	first := rowIndex * cardLines
	last := first + cardLines

	if first < v.scrollLine {
		v.scrollLine = first
	} else if last > v.scrollLine+v.contentLines {
		v.scrollLine = last - v.contentLines
	}
	v.clamp()
}

// ScrollState snapshots the geometry for the pagination trigger, given
// the estimated document height in virtual pixels.
func (v *Viewport) ScrollState(documentHeight float64) pager.ScrollState {
	return pager.ScrollState{
		ScrollTop:      v.Offset(),
		ViewportHeight: v.HeightPx(),
		DocumentHeight: documentHeight,
	}
}

func (v *Viewport) maxScrollLine() int {
	return v.totalLines - v.contentLines
}

func (v *Viewport) clamp() {
	if max := v.maxScrollLine(); v.scrollLine > max {
		v.scrollLine = max
	}
	if v.scrollLine < 0 {
		v.scrollLine = 0
	}
}
