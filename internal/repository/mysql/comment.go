package mysql

import (
	"context"

	"github.com/nansabi/BLOG-WEBSITE/domain"
	"github.com/nansabi/BLOG-WEBSITE/internal/repository"
	"github.com/nansabi/BLOG-WEBSITE/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type commentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) Delete(ctx context.Context, id int64, userID int64) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrForbidden
		}

		// replies go with their root
		return tx.Where("root_id = ?", id).Delete(&model.Comment{}).Error
	})
}

func (c *commentRepository) FetchReplies(ctx context.Context, rootIDs []int64) ([]*domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("root_id IN ?", rootIDs).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	var res []*domain.Comment
	for _, comment := range comments {
		domainComment := comment.ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

func (c *commentRepository) FetchRoots(ctx context.Context, postID int64, cursor string, limit int64) ([]*domain.Comment, error) {
	var comments []model.Comment
	query := c.DB.WithContext(ctx).
		Where("post_id = ? AND parent_id = 0", postID)

	// newest first, so the next page starts strictly before the cursor
	if cursor != "" {
		decodedCursor, err := repository.DecodeCursor(cursor)
		if err != nil {
			return nil, domain.ErrBadParamInput
		}
		query = query.Where("created_at < ?", decodedCursor)
	}

	err := query.
		Limit(int(limit)).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	var res []*domain.Comment
	for _, comment := range comments {
		domainComment := comment.ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, domain.ErrNotFound
	}
	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewCommentFromDomain(comment)
	err := c.DB.WithContext(ctx).Create(commentModel).Error
	if err != nil {
		return err
	}
	comment.ID = commentModel.ID
	comment.CreatedAt = commentModel.CreatedAt
	return nil
}

var _ domain.CommentRepository = (*commentRepository)(nil)
