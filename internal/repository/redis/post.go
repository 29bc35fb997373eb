package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

const (
	KeyPosts           = "post:%d"
	KeyViewsBuffer     = "post:views:buffer"
	KeyViewsProcessing = "post:views:processing"
	KeyTrendingRank    = "post:trending:rank"

	postTTL         = 10 * time.Minute
	trendingRankTTL = 30 * time.Second
)

type postCache struct {
	client *redis.Client
}

var _ domain.PostCache = (*postCache)(nil)

func NewPostCache(client *redis.Client) *postCache {
	return &postCache{
		client,
	}
}

func (c *postCache) GetPost(ctx context.Context, id int64) (res domain.Post, err error) {
	key := fmt.Sprintf(KeyPosts, id)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Post{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Post{}, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Post{}, err
	}
	return
}

func (c *postCache) SetPost(ctx context.Context, p *domain.Post) (err error) {
	key := fmt.Sprintf(KeyPosts, p.ID)
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	err = c.client.Set(ctx, key, data, postTTL).Err()
	return
}

func (c *postCache) DeletePost(ctx context.Context, id int64) error {
	key := fmt.Sprintf(KeyPosts, id)
	return c.client.Del(ctx, key).Err()
}

// IncrViews buffers one view for the post. The buffer also stands in for
// the trending increment: the worker applies each buffered view as +1 to
// both the view count and the trending score.
func (c *postCache) IncrViews(ctx context.Context, id int64) (int64, error) {
	return c.client.HIncrBy(ctx, KeyViewsBuffer, strconv.FormatInt(id, 10), 1).Result()
}

// FetchAndResetViews atomically swaps the buffer out via RENAME so that
// views arriving during the drain land in a fresh buffer.
func (c *postCache) FetchAndResetViews(ctx context.Context) (map[int64]int64, error) {
	result := make(map[int64]int64)
	err := c.client.Rename(ctx, KeyViewsBuffer, KeyViewsProcessing).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return result, nil
		}
		return result, err
	}

	data, err := c.client.HGetAll(ctx, KeyViewsProcessing).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return result, nil
		}
		return result, err
	}

	for idStr, viewsStr := range data {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			logrus.Errorf("invalid post id in views buffer: %q", idStr)
			continue
		}
		views, err := strconv.ParseInt(viewsStr, 10, 64)
		if err != nil {
			logrus.Errorf("invalid view count in views buffer for post %d: %q", id, viewsStr)
			continue
		}
		result[id] = views
	}

	c.client.Del(ctx, KeyViewsProcessing)

	return result, nil
}

func (c *postCache) GetTrendingRank(ctx context.Context, limit int64) ([]domain.Post, error) {
	if c.client.Exists(ctx, KeyTrendingRank).Val() == 0 {
		return nil, domain.ErrCacheMiss
	}

	zRes, err := c.client.ZRevRangeWithScores(ctx, KeyTrendingRank, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	res := make([]domain.Post, 0, len(zRes))
	for _, z := range zRes {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			logrus.Errorf("invalid member in trending rank: %v", z.Member)
			continue
		}
		res = append(res, domain.Post{
			ID:            id,
			TrendingScore: int64(z.Score),
		})
	}
	return res, nil
}

func (c *postCache) SetTrendingRank(ctx context.Context, ids []int64, scores []float64) error {
	if len(ids) != len(scores) || len(ids) == 0 {
		return domain.ErrBadParamInput
	}

	zMem := make([]redis.Z, len(ids))
	for i := range zMem {
		zMem[i] = redis.Z{
			Score:  scores[i],
			Member: strconv.FormatInt(ids[i], 10),
		}
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, KeyTrendingRank)
	pipe.ZAdd(ctx, KeyTrendingRank, zMem...)
	pipe.Expire(ctx, KeyTrendingRank, trendingRankTTL)
	_, err := pipe.Exec(ctx)
	return err
}
