package market

import (
	"context"
	"sync"

	"tickboard/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MaxBatchWorkers matches the comparison view's four chart slots.
const MaxBatchWorkers = 4

// BatchRequest identifies one slot of a comparison view.
type BatchRequest struct {
	AssetID     string
	DisplayDays int
}

// Batch fans out independent Fetcher calls. Results are keyed by asset id so
// completion order never matters, and one slot's failure cannot cancel or
// tarnish its siblings.
type Batch struct {
	fetcher *Fetcher
	workers int
}

func NewBatch(fetcher *Fetcher, workers int) *Batch {
	if workers <= 0 || workers > MaxBatchWorkers {
		workers = MaxBatchWorkers
	}
	return &Batch{fetcher: fetcher, workers: workers}
}

// FetchMany issues all requests concurrently under the worker bound and
// returns exactly one FetchResult per distinct asset id submitted.
func (b *Batch) FetchMany(ctx context.Context, reqs []BatchRequest) map[string]FetchResult {
	out := make(map[string]FetchResult, len(reqs))
	if len(reqs) == 0 {
		return out
	}
	trace := uuid.NewString()[:8]

	seen := make(map[string]struct{}, len(reqs))
	distinct := make([]BatchRequest, 0, len(reqs))
	for _, r := range reqs {
		if r.AssetID == "" {
			continue
		}
		if _, dup := seen[r.AssetID]; dup {
			continue
		}
		seen[r.AssetID] = struct{}{}
		distinct = append(distinct, r)
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.workers)
	for _, req := range distinct {
		req := req
		group.Go(func() error {
			res := b.fetcher.Fetch(groupCtx, req.AssetID, req.DisplayDays)
			mu.Lock()
			out[req.AssetID] = res
			mu.Unlock()
			return nil
		})
	}
	group.Wait()

	failed := 0
	for _, res := range out {
		if !res.OK() {
			failed++
		}
	}
	logger.Infof("[batch %s] fetched %d assets (%d failed)", trace, len(out), failed)
	return out
}
