package comment

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nansabi/BLOG-WEBSITE/domain"
	"github.com/nansabi/BLOG-WEBSITE/internal/repository"
)

type service struct {
	commentRepo domain.CommentRepository
	postRepo    domain.PostRepository
	dispatcher  domain.EventDispatcher
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(commentRepo domain.CommentRepository, postRepo domain.PostRepository, dispatcher domain.EventDispatcher) *service {
	return &service{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		dispatcher:  dispatcher,
	}
}

func (s *service) Create(ctx context.Context, c *domain.Comment) error {
	post, err := s.postRepo.GetByID(ctx, c.PostID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Store(ctx, c); err != nil {
		return err
	}

	// the comment is stored; notifying the author is best-effort
	if c.UserID != post.User.ID {
		ev := domain.EngagementEvent{
			Kind:        domain.NotificationComment,
			PostID:      post.ID,
			ActorID:     c.UserID,
			RecipientID: post.User.ID,
			Message:     "Someone commented on your post",
		}
		if err := s.dispatcher.Dispatch(ctx, ev); err != nil {
			logrus.Errorf("failed to dispatch comment event for post %d: %v", post.ID, err)
		}
	}

	return nil
}

func (s *service) Delete(ctx context.Context, id int64, userID int64) error {
	return s.commentRepo.Delete(ctx, id, userID)
}

func (s *service) FetchByPost(ctx context.Context, postID int64, cursor string, limit int64) ([]*domain.Comment, string, error) {
	res, err := s.commentRepo.FetchRoots(ctx, postID, cursor, limit)
	if err != nil {
		return []*domain.Comment{}, "", err
	}
	if len(res) == 0 {
		return []*domain.Comment{}, "", nil
	}

	rootIDs := make([]int64, len(res))
	for i, comment := range res {
		rootIDs[i] = comment.ID
	}

	replies, err := s.commentRepo.FetchReplies(ctx, rootIDs)
	if err != nil {
		return res, "", nil
	}

	replyMap := make(map[int64][]*domain.Comment)
	for _, r := range replies {
		replyMap[r.RootID] = append(replyMap[r.RootID], r)
	}

	for _, r := range res {
		if list, ok := replyMap[r.ID]; ok {
			r.Replies = list
		} else {
			r.Replies = []*domain.Comment{}
		}
	}

	return res, repository.EncodeCursor(res[len(res)-1].CreatedAt), nil
}
