package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nansabi/BLOG-WEBSITE/domain"
	"github.com/nansabi/BLOG-WEBSITE/internal/repository"
	"github.com/nansabi/BLOG-WEBSITE/internal/repository/mysql/model"
)

type postRepository struct {
	DB *gorm.DB
}

// mysql layer is only responsible for database operations
var _ domain.PostDBRepository = (*postRepository)(nil)

// NewPostDBRepository creates the database operation layer
func NewPostDBRepository(db *gorm.DB) *postRepository {
	return &postRepository{db}
}

func (m *postRepository) Fetch(ctx context.Context, cursor string, num int64, keyword string) (res []domain.Post, err error) {
	var posts []model.Post
	decodedCursor, err := repository.DecodeCursor(cursor)
	if err != nil && cursor != "" {
		return nil, domain.ErrBadParamInput
	}

	repository.PageVerify(&num)
	query := m.DB.WithContext(ctx).
		Select("id, title, user_id, image_url, updated_at, created_at, views, likes, unlikes, trending_score").
		Where("created_at > ?", decodedCursor)

	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	err = query.
		Order("created_at").
		Limit(int(num)).
		Find(&posts).
		Error

	if err != nil {
		return
	}

	for _, post := range posts {
		res = append(res, post.ToDomain())
	}

	return
}

func (m *postRepository) GetByID(ctx context.Context, id int64) (res domain.Post, err error) {
	var post model.Post
	err = m.DB.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		return res, domain.ErrNotFound
	}
	res = post.ToDomain()
	return
}

func (m *postRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Post, error) {
	var posts []model.Post
	err := m.DB.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Post, len(posts))
	for i, post := range posts {
		res[i] = post.ToDomain()
	}

	return res, nil
}

func (m *postRepository) Store(ctx context.Context, p *domain.Post) (err error) {
	postModel := model.NewPostFromDomain(p)
	result := m.DB.WithContext(ctx).Create(&postModel)
	if result.Error != nil {
		return result.Error
	}
	p.ID = postModel.ID
	p.CreatedAt = postModel.CreatedAt
	p.UpdatedAt = postModel.UpdatedAt
	return
}

func (m *postRepository) Update(ctx context.Context, p *domain.Post) (err error) {
	postModel := model.NewPostFromDomain(p)
	result := m.DB.WithContext(ctx).Model(&postModel).Updates(&postModel)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return
}

func (m *postRepository) Delete(ctx context.Context, id int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		// owned side-resources go with the post
		if err := tx.Where("post_id = ?", id).Delete(&model.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error
	})
}

// ToggleLike runs the like transition inside one transaction holding a row
// lock on the post, so concurrent toggles on the same post serialize while
// unrelated posts stay independent.
func (m *postRepository) ToggleLike(ctx context.Context, postID, userID int64) (domain.EngagementResult, []domain.EngagementEvent, error) {
	return m.toggle(ctx, postID, userID, domain.ToggleLike)
}

// ToggleUnlike is the symmetric transition on the unlikes set.
func (m *postRepository) ToggleUnlike(ctx context.Context, postID, userID int64) (domain.EngagementResult, []domain.EngagementEvent, error) {
	return m.toggle(ctx, postID, userID, domain.ToggleUnlike)
}

func (m *postRepository) toggle(
	ctx context.Context,
	postID, userID int64,
	transition func(domain.Post, domain.ReactionState, int64) domain.Transition,
) (res domain.EngagementResult, events []domain.EngagementEvent, err error) {
	err = m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		state, err := m.reactionState(tx, postID, userID)
		if err != nil {
			return err
		}

		t := transition(post.ToDomain(), state, userID)

		if err := m.applyReactionState(tx, postID, userID, t.State); err != nil {
			return err
		}

		likes, unlikes, err := m.reactionCounts(tx, postID)
		if err != nil {
			return err
		}

		if err := tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumns(map[string]any{
				"likes":          likes,
				"unlikes":        unlikes,
				"trending_score": t.NewScore,
			}).Error; err != nil {
			return err
		}

		res = domain.EngagementResult{
			Action:       t.Action,
			LikesCount:   likes,
			UnlikesCount: unlikes,
		}
		events = t.Events
		return nil
	})
	if err != nil {
		return domain.EngagementResult{}, nil, err
	}
	return res, events, nil
}

func (m *postRepository) reactionState(tx *gorm.DB, postID, userID int64) (domain.ReactionState, error) {
	var reaction model.Reaction
	err := tx.First(&reaction, "post_id = ? AND user_id = ?", postID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ReactionState{}, nil
	}
	if err != nil {
		return domain.ReactionState{}, err
	}

	return domain.ReactionState{
		Liked:   reaction.Kind == string(domain.ReactionLike),
		Unliked: reaction.Kind == string(domain.ReactionUnlike),
	}, nil
}

// applyReactionState makes the reaction table match the new state. The
// unique (post_id, user_id) index plus the upsert keeps the sets disjoint.
func (m *postRepository) applyReactionState(tx *gorm.DB, postID, userID int64, state domain.ReactionState) error {
	switch {
	case state.Liked:
		reaction := model.Reaction{PostID: postID, UserID: userID, Kind: string(domain.ReactionLike)}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&reaction).Error
	case state.Unliked:
		reaction := model.Reaction{PostID: postID, UserID: userID, Kind: string(domain.ReactionUnlike)}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&reaction).Error
	default:
		return tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&model.Reaction{}).Error
	}
}

func (m *postRepository) reactionCounts(tx *gorm.DB, postID int64) (likes, unlikes int64, err error) {
	if err = tx.Model(&model.Reaction{}).
		Where("post_id = ? AND kind = ?", postID, string(domain.ReactionLike)).
		Count(&likes).Error; err != nil {
		return
	}
	err = tx.Model(&model.Reaction{}).
		Where("post_id = ? AND kind = ?", postID, string(domain.ReactionUnlike)).
		Count(&unlikes).Error
	return
}

func (m *postRepository) AddViews(ctx context.Context, id int64, deltaViews, deltaScore int64) error {
	result := m.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"views":          gorm.Expr("views + ?", deltaViews),
			"trending_score": gorm.Expr("trending_score + ?", deltaScore),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (m *postRepository) FetchTrending(ctx context.Context, limit int64) ([]domain.Post, error) {
	var posts []model.Post
	err := m.DB.WithContext(ctx).Model(&model.Post{}).
		Order("trending_score desc, created_at desc, id desc").
		Limit(int(limit)).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Post, len(posts))
	for i := range posts {
		res[i] = posts[i].ToDomain()
	}
	return res, nil
}
