package grid

import (
	"fmt"
	"testing"

	"github.com/caldwell/strand/internal/domain"
)

func makePosts(n int) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		posts[i] = domain.Post{
			ID:   fmt.Sprintf("id-%d", i),
			Slug: fmt.Sprintf("slug-%d", i),
		}
	}
	return posts
}

func TestGroupRows_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 10, 29, 30, 31} {
		for cols := 1; cols <= 4; cols++ {
			posts := makePosts(n)
			rows := GroupRows(posts, cols)

			wantRows := 0
			if n > 0 {
				wantRows = (n + cols - 1) / cols
			}
			if len(rows) != wantRows {
				t.Fatalf("n=%d cols=%d: got %d rows, want %d", n, cols, len(rows), wantRows)
			}
			if got := RowCount(n, cols); got != wantRows {
				t.Fatalf("RowCount(%d, %d) = %d, want %d", n, cols, got, wantRows)
			}

			// Every row except possibly the last has exactly cols items,
			// and concatenation reproduces the original sequence.
			var flat []domain.Post
			for i, row := range rows {
				if i < len(rows)-1 && len(row) != cols {
					t.Fatalf("n=%d cols=%d: row %d has %d items", n, cols, i, len(row))
				}
				flat = append(flat, row...)
			}
			if len(flat) != n {
				t.Fatalf("n=%d cols=%d: round trip lost items, got %d", n, cols, len(flat))
			}
			for i := range flat {
				if flat[i].ID != posts[i].ID {
					t.Fatalf("n=%d cols=%d: order broken at %d", n, cols, i)
				}
			}
		}
	}
}

func TestGroupRows_DegenerateColumns(t *testing.T) {
	if rows := GroupRows(makePosts(5), 0); rows != nil {
		t.Errorf("cols=0 should produce no rows, got %d", len(rows))
	}
	if rows := GroupRows(nil, 3); rows != nil {
		t.Errorf("empty sequence should produce no rows, got %d", len(rows))
	}
}
