package feedapi

// postsResponse is one page from the posts endpoint.
type postsResponse struct {
	Posts    []postDTO `json:"posts"`
	NextPage *int      `json:"next_page"`
}

// postDTO is a single post as the API serves it.
type postDTO struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Thumbnail string `json:"thumbnail"`
	Author    string `json:"author"`
}
