package request

import "github.com/nansabi/BLOG-WEBSITE/domain"

// Post carries the writable post fields. Posts are created as multipart
// forms so an image file can ride along; updates are plain JSON.
type Post struct {
	Title   string `form:"title" json:"title" binding:"required,max=255"`
	Content string `form:"content" json:"content" binding:"required"`
}

// ToDomain: Request -> Domain
func (r *Post) ToDomain() domain.Post {
	return domain.Post{
		Title:   r.Title,
		Content: r.Content,
	}
}
