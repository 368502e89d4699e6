package engine

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/s1tools/mixing-server/pkg/mixing"
)

// SearchOptions tune a TopMixes run without affecting its result set
// (except via the evaluation budget, which truncates it).
type SearchOptions struct {
	// Workers is the number of parallel search workers. Zero means one per
	// available CPU, capped at the mixer count.
	Workers int
	// MaxEvaluations bounds the total sequences evaluated; zero means
	// unbounded within maxMixers. When the budget is hit the response is
	// flagged truncated.
	MaxEvaluations int64
}

// errSearchStopped aborts a worker's descent without failing the search.
var errSearchStopped = errors.New("search stopped")

// TopMixes enumerates every mixer sequence of length 1..maxMixers (ordered,
// repetition allowed) for the product and returns the best `limit` results
// by profit. Ranking is total: profit descending, then shorter sequence,
// then lexicographic mixer order, so output is reproducible for a given
// catalog regardless of worker count.
func (e *Engine) TopMixes(ctx context.Context, productID string, maxMixers, limit int, opts SearchOptions) (*mixing.TopMixesResponse, error) {
	if maxMixers <= 0 {
		return nil, fmt.Errorf("max mixers must be positive, got %d", maxMixers)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	eval := e.evaluator()
	cat := eval.Snapshot()

	product, err := cat.Product(productID)
	if err != nil {
		return nil, err
	}

	mixerIDs := cat.MixerIDs()
	if len(mixerIDs) == 0 {
		return nil, errors.New("catalog has no mixers to search")
	}
	mixers := make([]mixing.Mixer, len(mixerIDs))
	for i, id := range mixerIDs {
		mixers[i], _ = cat.Mixer(id)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(mixerIDs) {
		workers = len(mixerIDs)
	}

	start := time.Now()
	var evaluated, pruned atomic.Int64
	var truncated atomic.Bool

	// Rounding can land the realized value just above the float ceiling,
	// so pad the bound by one before pruning against it.
	ceiling := marketCeiling(cat, product) + 1

	ws := make([]*searchWorker, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		w := &searchWorker{
			eval:           eval,
			productID:      productID,
			mixerIDs:       mixerIDs,
			mixers:         mixers,
			maxMixers:      maxMixers,
			limit:          limit,
			ceiling:        ceiling,
			maxEvaluations: opts.MaxEvaluations,
			evaluated:      &evaluated,
			pruned:         &pruned,
			truncated:      &truncated,
			prefix:         make([]string, 0, maxMixers),
		}
		ws[i] = w
		stride, offset := workers, i
		g.Go(func() error {
			return w.run(gctx, offset, stride)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []mixing.MixResult
	for _, w := range ws {
		results = append(results, w.best...)
	}
	sort.Slice(results, func(i, j int) bool {
		return rankBefore(results[i], results[j])
	})
	if len(results) > limit {
		results = results[:limit]
	}

	return &mixing.TopMixesResponse{
		ProductID: productID,
		Results:   results,
		Stats: mixing.SearchStats{
			SequencesEvaluated: evaluated.Load(),
			BranchesPruned:     pruned.Load(),
			Truncated:          truncated.Load(),
			ProcessingTimeMs:   time.Since(start).Milliseconds(),
		},
	}, nil
}

// rankBefore is the total result ordering: profit descending, shorter
// sequence first, then lexicographic mixer order.
func rankBefore(a, b mixing.MixResult) bool {
	if a.Profit != b.Profit {
		return a.Profit > b.Profit
	}
	if len(a.Mixers) != len(b.Mixers) {
		return len(a.Mixers) < len(b.Mixers)
	}
	return slices.Compare(a.Mixers, b.Mixers) < 0
}

// searchWorker owns one slice of the top-level mixer choice and a private
// bounded best set; workers share only the evaluator cache and the atomic
// counters.
type searchWorker struct {
	eval      *Evaluator
	productID string
	mixerIDs  []string
	mixers    []mixing.Mixer
	maxMixers int
	limit     int
	ceiling   float64

	maxEvaluations int64
	evaluated      *atomic.Int64
	pruned         *atomic.Int64
	truncated      *atomic.Bool

	best   resultHeap
	prefix []string
}

// run explores every sequence whose first mixer index is offset mod stride.
func (w *searchWorker) run(ctx context.Context, offset, stride int) error {
	for i := offset; i < len(w.mixers); i += stride {
		if err := w.step(ctx, i, 1, w.mixers[i].Cost); err != nil {
			if errors.Is(err, errSearchStopped) {
				return nil
			}
			return err
		}
	}
	return nil
}

// step appends mixer idx to the current prefix, evaluates it, and descends.
// depth counts the prefix length including idx; cost is the mixer cost of
// the extended prefix (base cost excluded, it is common to every branch).
func (w *searchWorker) step(ctx context.Context, idx, depth, cost int) error {
	select {
	case <-ctx.Done():
		w.truncated.Store(true)
		return errSearchStopped
	default:
	}

	if n := w.evaluated.Add(1); w.maxEvaluations > 0 && n > w.maxEvaluations {
		w.truncated.Store(true)
		return errSearchStopped
	}

	w.prefix = append(w.prefix, w.mixerIDs[idx])
	defer func() { w.prefix = w.prefix[:len(w.prefix)-1] }()

	result, err := w.eval.Evaluate(w.productID, w.prefix)
	if err != nil {
		return err
	}
	w.push(result)

	if depth == w.maxMixers {
		return nil
	}

	baseCost := result.TotalCost - cost
	for next := range w.mixers {
		childCost := cost + w.mixers[next].Cost
		// No completion of this branch can beat the worst retained result:
		// cost only grows and market value never exceeds the ceiling.
		if len(w.best) == w.limit && w.ceiling-float64(baseCost+childCost) < float64(w.best[0].Profit) {
			w.pruned.Add(1)
			continue
		}
		if err := w.step(ctx, next, depth+1, childCost); err != nil {
			return err
		}
	}
	return nil
}

func (w *searchWorker) push(r mixing.MixResult) {
	if len(w.best) < w.limit {
		heap.Push(&w.best, r)
		return
	}
	if rankBefore(r, w.best[0]) {
		w.best[0] = r
		heap.Fix(&w.best, 0)
	}
}

// resultHeap is a bounded min-heap under rankBefore: the root is the worst
// retained result, ready for eviction.
type resultHeap []mixing.MixResult

func (h resultHeap) Len() int           { return len(h) }
func (h resultHeap) Less(i, j int) bool { return rankBefore(h[j], h[i]) }
func (h resultHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *resultHeap) Push(x any) {
	*h = append(*h, x.(mixing.MixResult))
}

func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
