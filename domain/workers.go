package domain

import "context"

// ViewSyncWorker periodically drains the buffered view counters from the
// cache into the database, updating views and trending score together.
type ViewSyncWorker interface {
	Start(ctx context.Context)
}
