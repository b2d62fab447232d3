package grid

import "github.com/caldwell/strand/internal/domain"

// GroupRows partitions posts into rows of cols items each. The final row
// may be shorter. Rows alias the input slice; they are derived views, not
// copies, and are recomputed whenever the sequence or column count
// changes.
func GroupRows(posts []domain.Post, cols int) [][]domain.Post {
	if cols < 1 || len(posts) == 0 {
		return nil
	}

	rows := make([][]domain.Post, 0, (len(posts)+cols-1)/cols)
	for start := 0; start < len(posts); start += cols {
		end := start + cols
		if end > len(posts) {
			end = len(posts)
		}
		rows = append(rows, posts[start:end])
	}
	return rows
}

// RowCount returns the number of rows GroupRows would produce without
// materializing them.
func RowCount(itemCount, cols int) int {
	if cols < 1 || itemCount <= 0 {
		return 0
	}
	return (itemCount + cols - 1) / cols
}
