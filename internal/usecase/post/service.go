package post

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nansabi/BLOG-WEBSITE/domain"
	"github.com/nansabi/BLOG-WEBSITE/internal/repository"
)

type Service struct {
	postRepo   domain.PostRepository
	postCache  domain.PostCache
	dispatcher domain.EventDispatcher
	images     domain.ImageStore
}

var _ domain.PostUsecase = (*Service)(nil)

// NewService will create a new post service object
func NewService(p domain.PostRepository, pc domain.PostCache, d domain.EventDispatcher, img domain.ImageStore) *Service {
	return &Service{
		postRepo:   p,
		postCache:  pc,
		dispatcher: d,
		images:     img,
	}
}

func (s *Service) Fetch(ctx context.Context, cursor string, num int64, keyword string) ([]domain.Post, string, error) {
	res, err := s.postRepo.Fetch(ctx, cursor, num, keyword)
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(res) > 0 {
		nextCursor = repository.EncodeCursor(res[len(res)-1].CreatedAt)
	}
	return res, nextCursor, nil
}

// GetByID returns the post and records the view: +1 buffered view which
// the sync worker later applies to both views and trending score.
func (s *Service) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	res, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}

	deltaViews, err := s.postCache.IncrViews(ctx, id)
	if err != nil {
		logrus.Errorf("failed to IncrViews for post %d: %v", id, err)
		return res, nil
	}
	res.Views += deltaViews

	return res, nil
}

func (s *Service) Store(ctx context.Context, p *domain.Post, image *domain.ImageUpload) error {
	if image != nil {
		ref, err := s.images.Upload(ctx, image)
		if err != nil {
			return err
		}
		p.ImageURL = ref.URL
		p.ImagePublicID = ref.PublicID
	}

	return s.postRepo.Store(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *domain.Post, actorID int64) error {
	existing, err := s.postRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.User.ID != actorID {
		return domain.ErrForbidden
	}

	// the author never changes on edit
	p.User = existing.User
	p.UpdatedAt = time.Now()
	return s.postRepo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	existing, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.User.ID != actorID {
		return domain.ErrForbidden
	}

	return s.delete(ctx, existing)
}

// ForceDelete skips the ownership check; the admin middleware has already
// vetted the caller.
func (s *Service) ForceDelete(ctx context.Context, id int64) error {
	existing, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.delete(ctx, existing)
}

func (s *Service) delete(ctx context.Context, p domain.Post) error {
	if p.ImagePublicID != "" {
		if err := s.images.Destroy(ctx, p.ImagePublicID); err != nil {
			// the post record still goes; an orphaned image is acceptable
			logrus.Warnf("failed to destroy image %s for post %d: %v", p.ImagePublicID, p.ID, err)
		}
	}

	return s.postRepo.Delete(ctx, p.ID)
}

func (s *Service) ToggleLike(ctx context.Context, postID, userID int64) (domain.EngagementResult, error) {
	res, events, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return domain.EngagementResult{}, err
	}

	s.dispatch(ctx, events)
	return res, nil
}

func (s *Service) ToggleUnlike(ctx context.Context, postID, userID int64) (domain.EngagementResult, error) {
	res, events, err := s.postRepo.ToggleUnlike(ctx, postID, userID)
	if err != nil {
		return domain.EngagementResult{}, err
	}

	s.dispatch(ctx, events)
	return res, nil
}

// dispatch forwards events after the engagement committed. A dispatch
// failure doesn't undo the engagement; notifications are non-critical.
func (s *Service) dispatch(ctx context.Context, events []domain.EngagementEvent) {
	for _, ev := range events {
		if err := s.dispatcher.Dispatch(ctx, ev); err != nil {
			logrus.Errorf("failed to dispatch %s event for post %d: %v", ev.Kind, ev.PostID, err)
		}
	}
}

func (s *Service) FetchTrending(ctx context.Context, limit int64) ([]domain.Post, error) {
	return s.postRepo.FetchTrending(ctx, limit)
}
