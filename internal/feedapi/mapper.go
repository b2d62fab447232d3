package feedapi

import "github.com/caldwell/strand/internal/domain"

// mapPage converts an API page response to the domain page.
func mapPage(number int, resp postsResponse) domain.Page {
	posts := make([]domain.Post, len(resp.Posts))
	for i, dto := range resp.Posts {
		posts[i] = domain.Post{
			ID:       dto.ID,
			Slug:     dto.Slug,
			Title:    dto.Title,
			Excerpt:  dto.Excerpt,
			ThumbURL: dto.Thumbnail,
			Author:   dto.Author,
		}
	}
	return domain.Page{Number: number, Posts: posts, NextPage: resp.NextPage}
}
