package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

type fakeNotificationRepo struct {
	stored []domain.Notification
	err    error
}

func (f *fakeNotificationRepo) Store(_ context.Context, n *domain.Notification) error {
	if f.err != nil {
		return f.err
	}
	n.ID = int64(len(f.stored) + 1)
	f.stored = append(f.stored, *n)
	return nil
}

func (f *fakeNotificationRepo) FetchUnread(context.Context, int64) ([]domain.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) MarkRead(context.Context, int64) error { return nil }

func (f *fakeNotificationRepo) CountUnread(context.Context, int64) (int64, error) { return 0, nil }

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func likeEvent() domain.EngagementEvent {
	return domain.EngagementEvent{
		Kind:        domain.NotificationLike,
		PostID:      42,
		ActorID:     2,
		RecipientID: 1,
		Message:     "Someone liked your post",
	}
}

func TestDispatch_PersistsWhenOffline(t *testing.T) {
	repo := &fakeNotificationRepo{}
	presence := NewRegistry()
	d := NewDispatcher(repo, presence, fixedClock{at: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})

	err := d.Dispatch(context.Background(), likeEvent())
	require.NoError(t, err)

	require.Len(t, repo.stored, 1)
	n := repo.stored[0]
	assert.Equal(t, int64(1), n.RecipientID)
	assert.Equal(t, int64(2), n.SenderID)
	assert.Equal(t, int64(42), n.PostID)
	assert.Equal(t, domain.NotificationLike, n.Kind)
	assert.False(t, n.IsRead)
}

func TestDispatch_PushesWhenOnline(t *testing.T) {
	repo := &fakeNotificationRepo{}
	presence := NewRegistry()
	conn := newFakeConn("c1")
	presence.Register(1, conn)

	d := NewDispatcher(repo, presence, fixedClock{at: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})

	err := d.Dispatch(context.Background(), likeEvent())
	require.NoError(t, err)

	require.Len(t, repo.stored, 1)
	require.Equal(t, 1, conn.sentCount())

	var payload struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
		PostID  int64  `json:"post_id"`
		Kind    string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(conn.sent[0], &payload))
	assert.Equal(t, repo.stored[0].ID, payload.ID)
	assert.Equal(t, "Someone liked your post", payload.Message)
	assert.Equal(t, int64(42), payload.PostID)
	assert.Equal(t, "like", payload.Kind)
}

func TestDispatch_StoreFailureAbortsPush(t *testing.T) {
	repo := &fakeNotificationRepo{err: domain.ErrInternalServerError}
	presence := NewRegistry()
	conn := newFakeConn("c1")
	presence.Register(1, conn)

	d := NewDispatcher(repo, presence, nil)

	err := d.Dispatch(context.Background(), likeEvent())
	require.Error(t, err)
	assert.Equal(t, 0, conn.sentCount())
}

func TestDispatch_PushFailureIsSwallowed(t *testing.T) {
	repo := &fakeNotificationRepo{}
	presence := NewRegistry()
	conn := newFakeConn("c1")
	conn.fail = true
	presence.Register(1, conn)

	d := NewDispatcher(repo, presence, nil)

	err := d.Dispatch(context.Background(), likeEvent())
	require.NoError(t, err)
	require.Len(t, repo.stored, 1)
}

func TestDispatch_SelfEventRejected(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := NewDispatcher(repo, NewRegistry(), nil)

	ev := likeEvent()
	ev.RecipientID = ev.ActorID

	err := d.Dispatch(context.Background(), ev)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	assert.Empty(t, repo.stored)
}
