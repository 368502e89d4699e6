// Package engine contains the mix evaluation and search business logic.
package engine

import (
	"sync"

	"github.com/s1tools/mixing-server/internal/mixing/catalog"
	"github.com/s1tools/mixing-server/pkg/mixing"
)

// Engine is the facade collaborators call: evaluation, search, and catalog
// access over the current snapshot. Reloading swaps in a fresh snapshot and
// a fresh evaluator; callers holding the old evaluator keep a consistent
// view until they re-fetch.
type Engine struct {
	mu        sync.RWMutex
	eval      *Evaluator
	cacheSize int
}

// NewEngine creates an engine over the given snapshot.
func NewEngine(cat *catalog.Catalog, cacheSize int) (*Engine, error) {
	eval, err := NewEvaluator(cat, cacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{eval: eval, cacheSize: cacheSize}, nil
}

// Catalog returns the current snapshot.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.evaluator().Snapshot()
}

// Reload replaces the snapshot. The previous evaluator cache is dropped
// with the previous snapshot.
func (e *Engine) Reload(cat *catalog.Catalog) error {
	eval, err := NewEvaluator(cat, e.cacheSize)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.eval = eval
	e.mu.Unlock()
	return nil
}

// Evaluate computes the MixResult for one product and mixer sequence.
func (e *Engine) Evaluate(productID string, mixerIDs []string) (mixing.MixResult, error) {
	return e.evaluator().Evaluate(productID, mixerIDs)
}

func (e *Engine) evaluator() *Evaluator {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.eval
}
