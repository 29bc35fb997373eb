package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

// postRepository coordinates the cache and the database.
type postRepository struct {
	db           domain.PostDBRepository
	cache        domain.PostCache
	userRepo     domain.UserRepository
	rebuildGroup singleflight.Group
	rankGroup    singleflight.Group
}

var _ domain.PostRepository = (*postRepository)(nil)

// NewPostRepository creates the coordinating repository layer
func NewPostRepository(db domain.PostDBRepository, cache domain.PostCache, userRepo domain.UserRepository) *postRepository {
	return &postRepository{
		db:       db,
		cache:    cache,
		userRepo: userRepo,
	}
}

func (r *postRepository) Fetch(ctx context.Context, cursor string, num int64, keyword string) ([]domain.Post, error) {
	posts, err := r.db.Fetch(ctx, cursor, num, keyword)
	if err != nil {
		return nil, err
	}

	return r.fillUserDetails(ctx, posts)
}

// GetByID serves from the cache when possible; on a miss a single caller
// rebuilds the entry while concurrent callers wait on the same flight.
func (r *postRepository) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	post, err := r.cache.GetPost(ctx, id)
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("cache get error for post %d: %v", id, err)
	}

	key := "post:" + strconv.FormatInt(id, 10)
	result, err, _ := r.rebuildGroup.Do(key, func() (any, error) {
		p, err := r.db.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		user, err := r.userRepo.GetByID(ctx, p.User.ID)
		if err != nil {
			return nil, err
		}
		p.User = user

		if err := r.cache.SetPost(context.Background(), &p); err != nil {
			logrus.Warnf("failed to set post cache: %v", err)
		}

		return p, nil
	})
	if err != nil {
		return domain.Post{}, err
	}

	return result.(domain.Post), nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	posts, err := r.db.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return r.fillUserDetails(ctx, posts)
}

func (r *postRepository) Store(ctx context.Context, p *domain.Post) error {
	return r.db.Store(ctx, p)
}

func (r *postRepository) Update(ctx context.Context, p *domain.Post) error {
	err := r.db.Update(ctx, p)
	if err != nil {
		return err
	}

	go func(id int64) {
		_ = r.cache.DeletePost(context.Background(), id)
	}(p.ID)

	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.Delete(ctx, id)
	if err != nil {
		return err
	}

	go func(id int64) {
		_ = r.cache.DeletePost(context.Background(), id)
	}(id)

	return nil
}

func (r *postRepository) ToggleLike(ctx context.Context, postID, userID int64) (domain.EngagementResult, []domain.EngagementEvent, error) {
	res, events, err := r.db.ToggleLike(ctx, postID, userID)
	if err != nil {
		return domain.EngagementResult{}, nil, err
	}

	r.invalidatePost(postID)
	return res, events, nil
}

func (r *postRepository) ToggleUnlike(ctx context.Context, postID, userID int64) (domain.EngagementResult, []domain.EngagementEvent, error) {
	res, events, err := r.db.ToggleUnlike(ctx, postID, userID)
	if err != nil {
		return domain.EngagementResult{}, nil, err
	}

	r.invalidatePost(postID)
	return res, events, nil
}

func (r *postRepository) AddViews(ctx context.Context, id int64, deltaViews, deltaScore int64) error {
	return r.db.AddViews(ctx, id, deltaViews, deltaScore)
}

// FetchTrending serves the rank from the cache; a miss rebuilds it from
// the database under a singleflight so a cold rank is built once.
func (r *postRepository) FetchTrending(ctx context.Context, limit int64) ([]domain.Post, error) {
	ranked, err := r.cache.GetTrendingRank(ctx, limit)
	if err == nil {
		return r.fillRankPosts(ctx, ranked)
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("failed to GetTrendingRank from cache: %v", err)
	}

	result, err, _ := r.rankGroup.Do("trending", func() (any, error) {
		return r.buildTrendingRank(ctx, limit)
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.Post), nil
}

func (r *postRepository) buildTrendingRank(ctx context.Context, limit int64) ([]domain.Post, error) {
	posts, err := r.db.FetchTrending(ctx, limit)
	if err != nil {
		return nil, err
	}

	posts, err = r.fillUserDetails(ctx, posts)
	if err != nil {
		return nil, err
	}

	if len(posts) > 0 {
		ids := make([]int64, len(posts))
		scores := make([]float64, len(posts))
		for i, p := range posts {
			ids[i] = p.ID
			scores[i] = float64(p.TrendingScore)
		}

		go func() {
			if err := r.cache.SetTrendingRank(context.Background(), ids, scores); err != nil {
				logrus.Warnf("failed to SetTrendingRank: %v", err)
			}
		}()
	}

	return posts, nil
}

// fillRankPosts turns the ID+score pairs from the rank cache into full
// posts, keeping the rank's ordering and scores.
func (r *postRepository) fillRankPosts(ctx context.Context, ranked []domain.Post) ([]domain.Post, error) {
	if len(ranked) == 0 {
		return ranked, nil
	}

	ids := make([]int64, len(ranked))
	for i, p := range ranked {
		ids[i] = p.ID
	}

	posts, err := r.GetByIDs(ctx, ids)
	if err != nil {
		logrus.Warnf("failed to fill ranked posts: %v", err)
		return ranked, nil
	}

	postMap := make(map[int64]domain.Post)
	for _, p := range posts {
		postMap[p.ID] = p
	}

	res := make([]domain.Post, 0, len(ranked))
	for _, rankPost := range ranked {
		if full, ok := postMap[rankPost.ID]; ok {
			full.TrendingScore = rankPost.TrendingScore
			res = append(res, full)
		} else {
			res = append(res, rankPost)
		}
	}

	return res, nil
}

func (r *postRepository) invalidatePost(id int64) {
	go func() {
		_ = r.cache.DeletePost(context.Background(), id)
	}()
}

// fillUserDetails batch-fills author information
func (r *postRepository) fillUserDetails(ctx context.Context, posts []domain.Post) ([]domain.Post, error) {
	if len(posts) == 0 {
		return posts, nil
	}

	userIDs := make([]int64, 0, len(posts))
	existMap := make(map[int64]bool)
	for _, item := range posts {
		if !existMap[item.User.ID] {
			userIDs = append(userIDs, item.User.ID)
			existMap[item.User.ID] = true
		}
	}

	users, err := r.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	userMap := make(map[int64]domain.User)
	for _, u := range users {
		userMap[u.ID] = u
	}

	for i := range posts {
		if u, ok := userMap[posts[i].User.ID]; ok {
			posts[i].User = u
		}
	}

	return posts, nil
}
