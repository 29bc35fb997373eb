package model

import (
	"time"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

type Post struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Title         string    `gorm:"type:varchar(120);not null"`
	Content       string    `gorm:"type:longtext;not null"`
	UserID        int64     `gorm:"column:user_id;not null"`
	ImageURL      string    `gorm:"column:image_url;type:varchar(255)"`
	ImagePublicID string    `gorm:"column:image_public_id;type:varchar(255)"`
	Views         int64     `gorm:"default:0"`
	Likes         int64     `gorm:"default:0"`
	Unlikes       int64     `gorm:"default:0"`
	TrendingScore int64     `gorm:"column:trending_score;default:0"`
	UpdatedAt     time.Time `gorm:"type:datetime"`
	CreatedAt     time.Time `gorm:"type:datetime"`
}

func (Post) TableName() string {
	return "post"
}

func (m *Post) ToDomain() domain.Post {
	return domain.Post{
		ID:      m.ID,
		Title:   m.Title,
		Content: m.Content,
		User: domain.User{
			ID: m.UserID,
		},
		ImageURL:      m.ImageURL,
		ImagePublicID: m.ImagePublicID,
		Views:         m.Views,
		Likes:         m.Likes,
		Unlikes:       m.Unlikes,
		TrendingScore: m.TrendingScore,
		UpdatedAt:     m.UpdatedAt,
		CreatedAt:     m.CreatedAt,
	}
}

func NewPostFromDomain(p *domain.Post) *Post {
	return &Post{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		UserID:        p.User.ID,
		ImageURL:      p.ImageURL,
		ImagePublicID: p.ImagePublicID,
		Views:         p.Views,
		Likes:         p.Likes,
		Unlikes:       p.Unlikes,
		TrendingScore: p.TrendingScore,
		UpdatedAt:     p.UpdatedAt,
		CreatedAt:     p.CreatedAt,
	}
}
