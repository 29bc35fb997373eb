package domain

import (
	"context"
	"time"
)

// Comment domain model
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	ParentID  int64     `json:"parent_id"`
	RootID    int64     `json:"root_id"`
	CreatedAt time.Time `json:"created_at"`

	// User is the comment author's information
	User *User `json:"user,omitempty"`
	// Replies holds the child comments
	Replies []*Comment `json:"replies,omitempty"`
}

type CommentUsecase interface {
	Create(ctx context.Context, c *Comment) error
	// Delete removes the caller's comment. Returns ErrForbidden when the
	// comment belongs to someone else or does not exist.
	Delete(ctx context.Context, id int64, userID int64) error
	FetchByPost(ctx context.Context, postID int64, cursor string, limit int64) ([]*Comment, string, error)
}

type CommentRepository interface {
	Store(ctx context.Context, c *Comment) error
	// Delete removes the comment and any replies rooted at it.
	Delete(ctx context.Context, id int64, userID int64) error
	GetByID(ctx context.Context, id int64) (*Comment, error)
	// FetchRoots retrieves the top-level comments of a post
	FetchRoots(ctx context.Context, postID int64, cursor string, limit int64) ([]*Comment, error)
	// FetchReplies retrieves every reply under the given root comment IDs
	FetchReplies(ctx context.Context, rootIDs []int64) ([]*Comment, error)
}
