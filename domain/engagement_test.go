package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

func TestToggleLike_AddThenRemove(t *testing.T) {
	post := domain.Post{ID: 1, User: domain.User{ID: 10}, TrendingScore: 0}

	// U1 likes post P: score goes to 3 and U1 enters the likes set.
	tr := domain.ToggleLike(post, domain.ReactionState{}, 20)
	assert.Equal(t, domain.ActionLiked, tr.Action)
	assert.Equal(t, int64(3), tr.NewScore)
	assert.True(t, tr.State.Liked)
	assert.False(t, tr.State.Unliked)

	// U1 likes again: toggle removes the like and restores score 0.
	post.TrendingScore = tr.NewScore
	tr = domain.ToggleLike(post, tr.State, 20)
	assert.Equal(t, domain.ActionLikeRemoved, tr.Action)
	assert.Equal(t, int64(0), tr.NewScore)
	assert.False(t, tr.State.Liked)
	assert.Empty(t, tr.Events)
}

func TestToggleUnlike_AfterLike(t *testing.T) {
	post := domain.Post{ID: 1, User: domain.User{ID: 10}, TrendingScore: 0}

	tr := domain.ToggleLike(post, domain.ReactionState{}, 20)
	require.Equal(t, int64(3), tr.NewScore)

	// Unliking while liked moves the user across sets and floors the score.
	post.TrendingScore = tr.NewScore
	tr = domain.ToggleUnlike(post, tr.State, 20)
	assert.Equal(t, domain.ActionUnliked, tr.Action)
	assert.Equal(t, int64(0), tr.NewScore)
	assert.False(t, tr.State.Liked)
	assert.True(t, tr.State.Unliked)
}

func TestToggleUnlike_RemoveRestoresScore(t *testing.T) {
	post := domain.Post{ID: 1, User: domain.User{ID: 10}, TrendingScore: 0}

	tr := domain.ToggleUnlike(post, domain.ReactionState{}, 20)
	assert.Equal(t, domain.ActionUnliked, tr.Action)
	assert.Equal(t, int64(0), tr.NewScore)

	post.TrendingScore = tr.NewScore
	tr = domain.ToggleUnlike(post, tr.State, 20)
	assert.Equal(t, domain.ActionUnlikeRemoved, tr.Action)
	assert.Equal(t, int64(3), tr.NewScore)
	assert.Empty(t, tr.Events)
}

func TestToggle_MutualExclusivityAndFloor(t *testing.T) {
	post := domain.Post{ID: 1, User: domain.User{ID: 10}}
	state := domain.ReactionState{}

	// Arbitrary alternating sequence; after every step the user must be
	// in at most one set and the score must stay non-negative.
	steps := []func(domain.Post, domain.ReactionState, int64) domain.Transition{
		domain.ToggleUnlike,
		domain.ToggleUnlike,
		domain.ToggleLike,
		domain.ToggleUnlike,
		domain.ToggleLike,
		domain.ToggleLike,
		domain.ToggleUnlike,
	}
	for i, step := range steps {
		tr := step(post, state, 20)
		assert.False(t, tr.State.Liked && tr.State.Unliked, "step %d broke exclusivity", i)
		assert.GreaterOrEqual(t, tr.NewScore, int64(0), "step %d went negative", i)
		state = tr.State
		post.TrendingScore = tr.NewScore
	}
}

func TestToggleLike_EventOnlyWhenNewlyAddedByOther(t *testing.T) {
	post := domain.Post{ID: 7, User: domain.User{ID: 10}}

	// Other user adds a like: exactly one event to the author.
	tr := domain.ToggleLike(post, domain.ReactionState{}, 20)
	require.Len(t, tr.Events, 1)
	ev := tr.Events[0]
	assert.Equal(t, domain.NotificationLike, ev.Kind)
	assert.Equal(t, int64(7), ev.PostID)
	assert.Equal(t, int64(20), ev.ActorID)
	assert.Equal(t, int64(10), ev.RecipientID)

	// The author liking their own post stays silent.
	tr = domain.ToggleLike(post, domain.ReactionState{}, 10)
	assert.Empty(t, tr.Events)

	// Removal never notifies, in either direction.
	tr = domain.ToggleLike(post, domain.ReactionState{Liked: true}, 20)
	assert.Empty(t, tr.Events)
	tr = domain.ToggleUnlike(post, domain.ReactionState{Unliked: true}, 20)
	assert.Empty(t, tr.Events)
}

func TestToggleUnlike_EventKind(t *testing.T) {
	post := domain.Post{ID: 7, User: domain.User{ID: 10}, TrendingScore: 9}

	tr := domain.ToggleUnlike(post, domain.ReactionState{}, 20)
	require.Len(t, tr.Events, 1)
	assert.Equal(t, domain.NotificationUnlike, tr.Events[0].Kind)
	assert.Equal(t, int64(6), tr.NewScore)
}
