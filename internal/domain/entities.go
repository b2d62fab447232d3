package domain

// Post is a single feed entry. ID is the rendering identity; Slug is the
// navigation identity and is assumed unique within a loaded session.
type Post struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	ThumbURL string `json:"thumbnail"`
	Author   string `json:"author"`
}

// Page is one fetched chunk of the feed. NextPage is nil when the feed is
// exhausted; otherwise it is the token to pass to the next fetch.
type Page struct {
	Number   int    `json:"number"`
	Posts    []Post `json:"posts"`
	NextPage *int   `json:"next_page"`
}

// HasMore reports whether another page exists after this one.
func (p Page) HasMore() bool {
	return p.NextPage != nil
}

// FirstPage is the initial page token for a fresh feed.
const FirstPage = 1
