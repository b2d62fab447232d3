package grid

// Responsive breakpoints, in the virtual pixel space the feed is laid out
// in. The TUI maps terminal cells onto this space before asking for a
// column count.
const (
	breakpointTwoCols   = 768
	breakpointThreeCols = 1024
)

// ColumnsForWidth maps a viewport width to a column count. Total: every
// width produces a value, monotonically non-decreasing in width.
func ColumnsForWidth(width float64) int {
	switch {
	case width >= breakpointThreeCols:
		return 3
	case width >= breakpointTwoCols:
		return 2
	default:
		return 1
	}
}
