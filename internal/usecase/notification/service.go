package notification

import (
	"context"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

// Service is the read side of notifications. Records are created by the
// delivery dispatcher only; this service queries and marks them.
type Service struct {
	notificationRepo domain.NotificationRepository
}

var _ domain.NotificationUsecase = (*Service)(nil)

func NewService(repo domain.NotificationRepository) *Service {
	return &Service{
		notificationRepo: repo,
	}
}

func (s *Service) FetchUnread(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	return s.notificationRepo.FetchUnread(ctx, recipientID)
}

// MarkRead is idempotent; marking twice or marking a missing notification
// is not an error.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return s.notificationRepo.MarkRead(ctx, id)
}

func (s *Service) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, recipientID)
}
