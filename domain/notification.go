package domain

import (
	"context"
	"time"
)

type NotificationKind string

const (
	NotificationLike    NotificationKind = "like"
	NotificationUnlike  NotificationKind = "unlike"
	NotificationComment NotificationKind = "comment"
)

// Notification is a durable record of an engagement aimed at a user.
// Immutable once stored except for the IsRead transition.
type Notification struct {
	ID          int64
	RecipientID int64
	SenderID    int64
	PostID      int64
	Kind        NotificationKind
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}

// NotificationRepository defines the contract for notification persistence.
type NotificationRepository interface {
	// Store appends a new notification record with IsRead=false.
	// Backfills the ID upon success.
	Store(ctx context.Context, n *Notification) error

	// FetchUnread returns the recipient's unread notifications, newest first.
	FetchUnread(ctx context.Context, recipientID int64) ([]Notification, error)

	// MarkRead sets IsRead on a notification. Idempotent: marking an
	// already-read or missing notification is a no-op, not an error.
	MarkRead(ctx context.Context, id int64) error

	// CountUnread returns the number of unread notifications for a recipient.
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
}

// NotificationUsecase is the query surface consumed by the REST layer.
// Creation goes through the EventDispatcher, never through here.
type NotificationUsecase interface {
	FetchUnread(ctx context.Context, recipientID int64) ([]Notification, error)
	MarkRead(ctx context.Context, id int64) error
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
}

// EventDispatcher delivers engagement events: it persists a notification
// first and then best-effort pushes it to the recipient if they are
// currently connected. Persistence failures propagate, push failures don't.
type EventDispatcher interface {
	Dispatch(ctx context.Context, ev EngagementEvent) error
}
