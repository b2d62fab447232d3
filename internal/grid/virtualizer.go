package grid

import "math"

// Defaults for the feed card geometry: card height plus inter-row spacing,
// and the overscan margin in rows.
const (
	DefaultRowEstimate = 404
	DefaultOverscan    = 5
)

// VisibleRow is one row selected for rendering, with its absolute top
// offset in the scrollable document.
type VisibleRow struct {
	Index int
	Top   float64
}

// Virtualizer computes the windowed subset of rows worth rendering. It is
// stateless: every call derives the window from the inputs alone, so the
// window is trivially correct after row-count or column-count changes.
type Virtualizer struct {
	Estimate float64 // per-row height estimate
	Overscan int     // extra rows on each side of the viewport
}

// NewVirtualizer returns a Virtualizer with the default card geometry.
func NewVirtualizer() Virtualizer {
	return Virtualizer{Estimate: DefaultRowEstimate, Overscan: DefaultOverscan}
}

// TotalHeight returns the estimated scrollable extent for rowCount rows.
func (v Virtualizer) TotalHeight(rowCount int) float64 {
	if rowCount <= 0 {
		return 0
	}
	return float64(rowCount) * v.Estimate
}

// Window returns the minimal contiguous run of rows whose vertical span
// intersects the viewport widened by the overscan margin. Overscan is an
// additive margin only; every row actually inside [scrollTop,
// scrollTop+viewportHeight) is always included.
func (v Virtualizer) Window(rowCount int, scrollTop, viewportHeight float64) []VisibleRow {
	if rowCount <= 0 || v.Estimate <= 0 {
		return nil
	}
	if scrollTop < 0 {
		scrollTop = 0
	}

	margin := float64(v.Overscan) * v.Estimate
	top := scrollTop - margin
	bottom := scrollTop + viewportHeight + margin

	first := int(math.Floor(top / v.Estimate))
	if first < 0 {
		first = 0
	}
	// last is exclusive: rows with top offset >= bottom are outside.
	last := int(math.Ceil(bottom / v.Estimate))
	if last > rowCount {
		last = rowCount
	}
	if first >= last {
		return nil
	}

	rows := make([]VisibleRow, 0, last-first)
	for i := first; i < last; i++ {
		rows = append(rows, VisibleRow{Index: i, Top: float64(i) * v.Estimate})
	}
	return rows
}
