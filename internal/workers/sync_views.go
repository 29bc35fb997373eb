package workers

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

const defaultSyncInterval = 5 * time.Second

// syncViewsWorker drains the buffered view counters from the cache into
// the database. Every buffered view counts +1 on views and +1 on the
// trending score, so a single drain applies both.
type syncViewsWorker struct {
	postRepo domain.PostDBRepository
	cache    domain.PostCache
	interval time.Duration
}

var _ domain.ViewSyncWorker = (*syncViewsWorker)(nil)

func NewSyncViewsWorker(postRepo domain.PostDBRepository, cache domain.PostCache) *syncViewsWorker {
	return &syncViewsWorker{
		postRepo: postRepo,
		cache:    cache,
		interval: defaultSyncInterval,
	}
}

func (s *syncViewsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.flush(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down SyncViewsWorker, flushing remaining views...")
			s.flush(context.Background())
			return
		}
	}
}

func (s *syncViewsWorker) flush(ctx context.Context) {
	views, err := s.cache.FetchAndResetViews(ctx)
	if err != nil {
		logrus.Errorf("failed to fetch buffered views: %v", err)
		return
	}

	for id, delta := range views {
		if err := s.postRepo.AddViews(ctx, id, delta, delta); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// post deleted while its views were buffered
				continue
			}
			logrus.Errorf("failed to sync views for post %d: %v", id, err)
		}
	}
}
