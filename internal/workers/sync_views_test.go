package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

type fakeViewCache struct {
	mu      sync.Mutex
	pending map[int64]int64
}

func (f *fakeViewCache) GetPost(context.Context, int64) (domain.Post, error) {
	return domain.Post{}, domain.ErrCacheMiss
}
func (f *fakeViewCache) SetPost(context.Context, *domain.Post) error { return nil }
func (f *fakeViewCache) DeletePost(context.Context, int64) error     { return nil }

func (f *fakeViewCache) IncrViews(_ context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		f.pending = make(map[int64]int64)
	}
	f.pending[id]++
	return f.pending[id], nil
}

func (f *fakeViewCache) FetchAndResetViews(context.Context) (map[int64]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.pending
	f.pending = nil
	if out == nil {
		out = map[int64]int64{}
	}
	return out, nil
}

func (f *fakeViewCache) GetTrendingRank(context.Context, int64) ([]domain.Post, error) {
	return nil, domain.ErrCacheMiss
}
func (f *fakeViewCache) SetTrendingRank(context.Context, []int64, []float64) error { return nil }

type fakeViewsDB struct {
	mu     sync.Mutex
	views  map[int64]int64
	scores map[int64]int64
}

func newFakeViewsDB() *fakeViewsDB {
	return &fakeViewsDB{views: make(map[int64]int64), scores: make(map[int64]int64)}
}

func (f *fakeViewsDB) Fetch(context.Context, string, int64, string) ([]domain.Post, error) {
	return nil, nil
}
func (f *fakeViewsDB) GetByID(context.Context, int64) (domain.Post, error) {
	return domain.Post{}, domain.ErrNotFound
}
func (f *fakeViewsDB) GetByIDs(context.Context, []int64) ([]domain.Post, error) { return nil, nil }
func (f *fakeViewsDB) Store(context.Context, *domain.Post) error                { return nil }
func (f *fakeViewsDB) Update(context.Context, *domain.Post) error               { return nil }
func (f *fakeViewsDB) Delete(context.Context, int64) error                      { return nil }

func (f *fakeViewsDB) ToggleLike(context.Context, int64, int64) (domain.EngagementResult, []domain.EngagementEvent, error) {
	return domain.EngagementResult{}, nil, nil
}

func (f *fakeViewsDB) ToggleUnlike(context.Context, int64, int64) (domain.EngagementResult, []domain.EngagementEvent, error) {
	return domain.EngagementResult{}, nil, nil
}

func (f *fakeViewsDB) AddViews(_ context.Context, id int64, deltaViews, deltaScore int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views[id] += deltaViews
	f.scores[id] += deltaScore
	return nil
}

func (f *fakeViewsDB) FetchTrending(context.Context, int64) ([]domain.Post, error) {
	return nil, nil
}

func (f *fakeViewsDB) totals(id int64) (int64, int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.views[id], f.scores[id]
}

func TestSyncViews_DrainAppliesViewsAndScore(t *testing.T) {
	cache := &fakeViewCache{}
	db := newFakeViewsDB()

	for range 4 {
		_, err := cache.IncrViews(context.Background(), 1)
		assert.NoError(t, err)
	}
	_, err := cache.IncrViews(context.Background(), 2)
	assert.NoError(t, err)

	w := NewSyncViewsWorker(db, cache)
	w.flush(context.Background())

	views, score := db.totals(1)
	assert.Equal(t, int64(4), views)
	assert.Equal(t, int64(4), score)

	views, score = db.totals(2)
	assert.Equal(t, int64(1), views)
	assert.Equal(t, int64(1), score)
}

func TestSyncViews_FinalFlushOnShutdown(t *testing.T) {
	cache := &fakeViewCache{}
	db := newFakeViewsDB()

	_, err := cache.IncrViews(context.Background(), 1)
	assert.NoError(t, err)

	w := NewSyncViewsWorker(db, cache)
	w.interval = time.Hour // the only flush must be the shutdown one

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancel")
	}

	views, score := db.totals(1)
	assert.Equal(t, int64(1), views)
	assert.Equal(t, int64(1), score)
}
