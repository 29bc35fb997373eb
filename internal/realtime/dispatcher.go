package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

// Dispatcher turns engagement events into notifications: persist first,
// then push to the recipient's live connection if there is one. The
// durable record is primary; the push is best-effort and its failures are
// swallowed.
type Dispatcher struct {
	notifications domain.NotificationRepository
	presence      domain.PresenceRegistry
	clock         domain.Clock
}

var _ domain.EventDispatcher = (*Dispatcher)(nil)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewDispatcher wires the dispatcher. A nil clock falls back to time.Now.
func NewDispatcher(notifications domain.NotificationRepository, presence domain.PresenceRegistry, clock domain.Clock) *Dispatcher {
	if clock == nil {
		clock = systemClock{}
	}
	return &Dispatcher{
		notifications: notifications,
		presence:      presence,
		clock:         clock,
	}
}

// pushPayload is the JSON document pushed over a live connection.
type pushPayload struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	PostID    int64  `json:"post_id"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.EngagementEvent) error {
	if ev.RecipientID == ev.ActorID {
		return domain.ErrBadParamInput
	}

	notification := &domain.Notification{
		RecipientID: ev.RecipientID,
		SenderID:    ev.ActorID,
		PostID:      ev.PostID,
		Kind:        ev.Kind,
		Message:     ev.Message,
		CreatedAt:   d.clock.Now(),
	}
	if err := d.notifications.Store(ctx, notification); err != nil {
		return err
	}

	conn, ok := d.presence.Lookup(ev.RecipientID)
	if !ok {
		// Offline: the durable record is picked up on the next unread poll.
		return nil
	}

	payload, err := json.Marshal(pushPayload{
		ID:        notification.ID,
		Message:   notification.Message,
		PostID:    notification.PostID,
		Kind:      string(notification.Kind),
		CreatedAt: notification.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		logrus.Errorf("failed to marshal push payload for notification %d: %v", notification.ID, err)
		return nil
	}

	if err := conn.Send(payload); err != nil {
		logrus.Warnf("failed to push notification %d to user %d: %v", notification.ID, ev.RecipientID, err)
	}

	return nil
}
