package domain

import (
	"context"
	"time"
)

// Post is representing the Post data struct
type Post struct {
	ID            int64     // Unique identifier for the post
	Title         string    // Post title
	Content       string    // Post body content
	User          User      // Author information, immutable once set
	ImageURL      string    // Delivery URL of the attached image, empty if none
	ImagePublicID string    // Storage handle of the attached image, used on delete
	Views         int64     // Number of views
	Likes         int64     // Number of users currently in the likes set
	Unlikes       int64     // Number of users currently in the unlikes set
	TrendingScore int64     // Ranking signal, never negative
	UpdatedAt     time.Time // Last update timestamp
	CreatedAt     time.Time // Creation timestamp
}

// PostRepository is the contract the usecase layer talks to. The default
// implementation coordinates a cache and the database repository below.
type PostRepository interface {
	// Fetch retrieves a paginated list of posts.
	// cursor: for pagination, pass the cursor from the previous page or empty string for the first page.
	// num: number of posts to fetch per page.
	// keyword: optional title/content filter, empty string disables it.
	Fetch(ctx context.Context, cursor string, num int64, keyword string) ([]Post, error)

	// GetByID retrieves a single post by its ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id int64) (Post, error)

	// GetByIDs retrieves posts by given IDs. Missing IDs are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]Post, error)

	// Store creates a new post in the repository.
	Store(ctx context.Context, p *Post) error

	// Update modifies an existing post.
	// Returns ErrNotFound if the post doesn't exist.
	Update(ctx context.Context, p *Post) error

	// Delete removes a post by its ID.
	// Returns ErrNotFound if not exists.
	Delete(ctx context.Context, id int64) error

	// ToggleLike flips the actor's membership in the post's likes set and
	// adjusts the trending score. The whole transition is atomic per post.
	// Returns ErrNotFound if the post doesn't exist.
	ToggleLike(ctx context.Context, postID, userID int64) (EngagementResult, []EngagementEvent, error)

	// ToggleUnlike is the symmetric operation on the unlikes set.
	ToggleUnlike(ctx context.Context, postID, userID int64) (EngagementResult, []EngagementEvent, error)

	// AddViews increments the view count and trending score of a post.
	// Used by the view-sync worker to drain the buffered counters.
	AddViews(ctx context.Context, id int64, deltaViews, deltaScore int64) error

	// FetchTrending returns up to limit posts ordered by trending score
	// descending, ties broken by creation time descending. Read-only.
	FetchTrending(ctx context.Context, limit int64) ([]Post, error)
}

// PostDBRepository is the database-level contract implemented by the mysql
// package. It mirrors PostRepository without any cache awareness.
type PostDBRepository interface {
	Fetch(ctx context.Context, cursor string, num int64, keyword string) ([]Post, error)
	GetByID(ctx context.Context, id int64) (Post, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Post, error)
	Store(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, postID, userID int64) (EngagementResult, []EngagementEvent, error)
	ToggleUnlike(ctx context.Context, postID, userID int64) (EngagementResult, []EngagementEvent, error)
	AddViews(ctx context.Context, id int64, deltaViews, deltaScore int64) error
	FetchTrending(ctx context.Context, limit int64) ([]Post, error)
}

type PostCache interface {
	// Post related
	GetPost(ctx context.Context, id int64) (Post, error)
	SetPost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, id int64) error

	// Views related. Single-post reads increment a buffer here and the
	// view-sync worker drains it into the database.
	IncrViews(ctx context.Context, id int64) (int64, error)
	FetchAndResetViews(ctx context.Context) (map[int64]int64, error)

	// Trending rank cache. GetTrendingRank returns ErrCacheMiss when the
	// rank has not been built or has expired.
	GetTrendingRank(ctx context.Context, limit int64) ([]Post, error)
	SetTrendingRank(ctx context.Context, ids []int64, scores []float64) error
}

type PostUsecase interface {
	Fetch(ctx context.Context, cursor string, num int64, keyword string) ([]Post, string, error)
	GetByID(ctx context.Context, id int64) (Post, error)
	Store(ctx context.Context, p *Post, image *ImageUpload) error
	Update(ctx context.Context, p *Post, actorID int64) error
	Delete(ctx context.Context, id int64, actorID int64) error
	// ForceDelete removes a post regardless of ownership. Admin only,
	// enforced by the caller.
	ForceDelete(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, postID, userID int64) (EngagementResult, error)
	ToggleUnlike(ctx context.Context, postID, userID int64) (EngagementResult, error)
	FetchTrending(ctx context.Context, limit int64) ([]Post, error)
}
