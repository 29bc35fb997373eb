package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/nansabi/BLOG-WEBSITE/domain"
	"github.com/nansabi/BLOG-WEBSITE/internal/repository/mysql/model"
)

type notificationRepository struct {
	DB *gorm.DB
}

var _ domain.NotificationRepository = (*notificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *notificationRepository {
	return &notificationRepository{
		DB: db,
	}
}

func (m *notificationRepository) Store(ctx context.Context, n *domain.Notification) error {
	notificationModel := model.NewNotificationFromDomain(n)

	result := m.DB.WithContext(ctx).Create(&notificationModel)
	if result.Error != nil {
		return result.Error
	}

	n.ID = notificationModel.ID
	n.CreatedAt = notificationModel.CreatedAt

	return nil
}

func (m *notificationRepository) FetchUnread(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	var notifications []model.Notification
	err := m.DB.WithContext(ctx).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Order("created_at desc, id desc").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Notification, len(notifications))
	for i := range notifications {
		res[i] = notifications[i].ToDomain()
	}
	return res, nil
}

// MarkRead is deliberately tolerant: marking an already-read or missing
// notification affects zero rows and that is fine.
func (m *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	return m.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (m *notificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := m.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}
