package response

import "github.com/nansabi/BLOG-WEBSITE/domain"

type Notification struct {
	ID        int64  `json:"id"`
	SenderID  int64  `json:"sender_id"`
	PostID    int64  `json:"post_id"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// NewNotificationFromDomain: Domain -> Response
func NewNotificationFromDomain(n *domain.Notification) Notification {
	return Notification{
		ID:        n.ID,
		SenderID:  n.SenderID,
		PostID:    n.PostID,
		Kind:      string(n.Kind),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(DateTimeFormat),
	}
}
