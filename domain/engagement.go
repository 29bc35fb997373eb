package domain

import "time"

// ScoreWeight is the trending score contribution of one like or unlike.
const ScoreWeight = 3

type ReactionKind string

const (
	ReactionLike   ReactionKind = "like"
	ReactionUnlike ReactionKind = "unlike"
)

// Reaction is one user's membership in a post's likes or unlikes set.
// A user holds at most one reaction per post.
type Reaction struct {
	PostID    int64
	UserID    int64
	Kind      ReactionKind
	CreatedAt time.Time
}

// ReactionState is the actor's current membership snapshot for one post.
// Liked and Unliked are never both true.
type ReactionState struct {
	Liked   bool
	Unliked bool
}

type EngagementAction string

const (
	ActionLiked         EngagementAction = "liked"
	ActionLikeRemoved   EngagementAction = "like_removed"
	ActionUnliked       EngagementAction = "unliked"
	ActionUnlikeRemoved EngagementAction = "unlike_removed"
)

// EngagementResult is what an engagement action returns to the caller.
type EngagementResult struct {
	Action       EngagementAction `json:"action"`
	LikesCount   int64            `json:"likes_count"`
	UnlikesCount int64            `json:"unlikes_count"`
}

// EngagementEvent is emitted when an engagement should notify someone.
type EngagementEvent struct {
	Kind        NotificationKind
	PostID      int64
	ActorID     int64
	RecipientID int64
	Message     string
}

// Transition is the outcome of applying a toggle against one post. The
// functions below are pure; persisting State/NewScore and dispatching
// Events is up to the caller, which applies both or neither.
type Transition struct {
	State    ReactionState
	Action   EngagementAction
	NewScore int64
	Events   []EngagementEvent
}

// ToggleLike flips the actor's membership in the likes set.
//
// Removing a like subtracts ScoreWeight, floored at zero. Adding a like
// adds ScoreWeight and drops the actor from the unlikes set so that the
// two sets stay disjoint. An event is emitted only when the like is newly
// added and the actor is not the post's author; removals never notify.
func ToggleLike(post Post, state ReactionState, actorID int64) Transition {
	if state.Liked {
		return Transition{
			State:    ReactionState{},
			Action:   ActionLikeRemoved,
			NewScore: floorScore(post.TrendingScore - ScoreWeight),
		}
	}

	t := Transition{
		State:    ReactionState{Liked: true},
		Action:   ActionLiked,
		NewScore: post.TrendingScore + ScoreWeight,
	}
	if actorID != post.User.ID {
		t.Events = append(t.Events, EngagementEvent{
			Kind:        NotificationLike,
			PostID:      post.ID,
			ActorID:     actorID,
			RecipientID: post.User.ID,
			Message:     "Someone liked your post",
		})
	}
	return t
}

// ToggleUnlike flips the actor's membership in the unlikes set. It is the
// inverse of ToggleLike: adding an unlike subtracts ScoreWeight (floored),
// removing one restores it.
func ToggleUnlike(post Post, state ReactionState, actorID int64) Transition {
	if state.Unliked {
		return Transition{
			State:    ReactionState{},
			Action:   ActionUnlikeRemoved,
			NewScore: post.TrendingScore + ScoreWeight,
		}
	}

	t := Transition{
		State:    ReactionState{Unliked: true},
		Action:   ActionUnliked,
		NewScore: floorScore(post.TrendingScore - ScoreWeight),
	}
	if actorID != post.User.ID {
		t.Events = append(t.Events, EngagementEvent{
			Kind:        NotificationUnlike,
			PostID:      post.ID,
			ActorID:     actorID,
			RecipientID: post.User.ID,
			Message:     "Someone unliked your post",
		})
	}
	return t
}

func floorScore(score int64) int64 {
	if score < 0 {
		return 0
	}
	return score
}
