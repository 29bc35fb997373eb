package model

import (
	"time"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

type Notification struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	RecipientID int64     `gorm:"column:recipient_id;not null;index"`
	SenderID    int64     `gorm:"column:sender_id;not null"`
	PostID      int64     `gorm:"column:post_id;not null"`
	Kind        string    `gorm:"type:varchar(10);not null"`
	Message     string    `gorm:"type:varchar(255);not null"`
	IsRead      bool      `gorm:"column:is_read;default:false;index"`
	CreatedAt   time.Time `gorm:"type:datetime"`
}

func (Notification) TableName() string {
	return "notification"
}

func (m *Notification) ToDomain() domain.Notification {
	return domain.Notification{
		ID:          m.ID,
		RecipientID: m.RecipientID,
		SenderID:    m.SenderID,
		PostID:      m.PostID,
		Kind:        domain.NotificationKind(m.Kind),
		Message:     m.Message,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}

func NewNotificationFromDomain(n *domain.Notification) *Notification {
	return &Notification{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		SenderID:    n.SenderID,
		PostID:      n.PostID,
		Kind:        string(n.Kind),
		Message:     n.Message,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}
