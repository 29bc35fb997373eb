package response

import (
	"github.com/nansabi/BLOG-WEBSITE/domain"
)

const DateTimeFormat = "2006-01-02 15:04:05"

type Post struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	UserName      string `json:"user_name"`
	ImageURL      string `json:"image_url,omitempty"`
	UpdatedAt     string `json:"updated_at"`
	CreatedAt     string `json:"created_at"`
	Views         int64  `json:"views"`
	Likes         int64  `json:"likes"`
	Unlikes       int64  `json:"unlikes"`
	TrendingScore int64  `json:"trending_score"`
}

// FromDomain: Domain -> Response
func NewPostFromDomain(p *domain.Post) Post {
	return Post{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		UserName:      p.User.Name,
		ImageURL:      p.ImageURL,
		UpdatedAt:     p.UpdatedAt.Format(DateTimeFormat),
		CreatedAt:     p.CreatedAt.Format(DateTimeFormat),
		Views:         p.Views,
		Likes:         p.Likes,
		Unlikes:       p.Unlikes,
		TrendingScore: p.TrendingScore,
	}
}
