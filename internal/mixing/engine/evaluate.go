package engine

import (
	"fmt"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/s1tools/mixing-server/internal/mixing/catalog"
	"github.com/s1tools/mixing-server/pkg/mixing"
)

// DefaultCacheSize bounds the evaluator cache when the caller does not.
const DefaultCacheSize = 1 << 16

// Evaluator computes MixResults against one catalog snapshot, caching by
// (product id, ordered mixer tuple). Evaluation is pure, so cache writes
// are idempotent and the evaluator is safe for concurrent use; a racing
// duplicate computation costs work, never correctness. A catalog reload
// means a new Evaluator, which is how the cache gets invalidated.
type Evaluator struct {
	cat   *catalog.Catalog
	cache *lru.Cache[string, mixing.MixResult]
}

// NewEvaluator creates an evaluator bound to the given snapshot.
func NewEvaluator(cat *catalog.Catalog, cacheSize int) (*Evaluator, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, mixing.MixResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return &Evaluator{cat: cat, cache: cache}, nil
}

// Snapshot returns the catalog this evaluator is bound to.
func (ev *Evaluator) Snapshot() *catalog.Catalog {
	return ev.cat
}

// Evaluate resolves, prices, and rates one (product, mixer sequence) pair.
// Identical inputs always yield an identical result.
func (ev *Evaluator) Evaluate(productID string, mixerIDs []string) (mixing.MixResult, error) {
	key := cacheKey(productID, mixerIDs)
	if cached, ok := ev.cache.Get(key); ok {
		return cached, nil
	}

	product, err := ev.cat.Product(productID)
	if err != nil {
		return mixing.MixResult{}, err
	}

	sequence := make([]mixing.Mixer, 0, len(mixerIDs))
	for _, id := range mixerIDs {
		m, err := ev.cat.Mixer(id)
		if err != nil {
			return mixing.MixResult{}, err
		}
		sequence = append(sequence, m)
	}

	effects := ResolveEffects(ev.cat, product, sequence)
	marketValue := MarketValue(ev.cat, product, effects)
	totalCost := TotalCost(product, sequence)
	profit := Profit(marketValue, totalCost)
	marginPct, marginDefined := Margin(profit, marketValue)

	result := mixing.MixResult{
		ProductID:     productID,
		Mixers:        slices.Clone(mixerIDs),
		Effects:       effects,
		MarketValue:   marketValue,
		TotalCost:     totalCost,
		Profit:        profit,
		MarginPct:     marginPct,
		MarginDefined: marginDefined,
		Addictiveness: ev.addictiveness(product, effects),
	}

	ev.cache.Add(key, result)
	return result, nil
}

// addictiveness sums the product's inherent rating with every active
// effect's, capped at 1.0 as in the game.
func (ev *Evaluator) addictiveness(product mixing.BaseProduct, effectIDs []string) float64 {
	total := product.Addictiveness
	for _, id := range effectIDs {
		e, err := ev.cat.Effect(id)
		if err != nil {
			continue
		}
		total += e.Addictiveness
	}
	return min(total, 1.0)
}

// cacheKey builds the (product id, sequence tuple) key. Separators are
// control bytes that cannot appear in identifiers.
func cacheKey(productID string, mixerIDs []string) string {
	var b strings.Builder
	b.Grow(len(productID) + 16*len(mixerIDs))
	b.WriteString(productID)
	for _, id := range mixerIDs {
		b.WriteByte(0x1f)
		b.WriteString(id)
	}
	return b.String()
}
