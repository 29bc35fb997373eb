package model

import (
	"time"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

// Reaction rows are the likes/unlikes sets: one row per (post, user) with
// a kind column, so the two sets are disjoint by construction.
type Reaction struct {
	PostID    int64     `gorm:"column:post_id;not null;uniqueIndex:idx_post_user"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_post_user"`
	Kind      string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Reaction) TableName() string {
	return "reaction"
}

func (m *Reaction) ToDomain() domain.Reaction {
	return domain.Reaction{
		PostID:    m.PostID,
		UserID:    m.UserID,
		Kind:      domain.ReactionKind(m.Kind),
		CreatedAt: m.CreatedAt,
	}
}

func NewReactionFromDomain(r domain.Reaction) Reaction {
	return Reaction{
		PostID:    r.PostID,
		UserID:    r.UserID,
		Kind:      string(r.Kind),
		CreatedAt: r.CreatedAt,
	}
}
