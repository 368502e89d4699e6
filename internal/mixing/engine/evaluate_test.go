package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s1tools/mixing-server/internal/mixing/catalog"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	ev, err := NewEvaluator(testCatalog(t), 0)
	require.NoError(t, err)
	return ev
}

// TestEvaluate_OGKushBananaScenario pins the reference numbers: OG Kush
// (price 35, cost 10, no starting effects) + Banana (Gingeritis, cost 3).
func TestEvaluate_OGKushBananaScenario(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator(t)
	result, err := ev.Evaluate("og-kush", []string{"banana"})
	require.NoError(t, err)

	assert.Equal(t, []string{"gingeritis"}, result.Effects)
	assert.Equal(t, 48, result.MarketValue) // 35 * 1.38 = 48.3 -> 48
	assert.Equal(t, 13, result.TotalCost)
	assert.Equal(t, 35, result.Profit)
	assert.True(t, result.MarginDefined)
	assert.InDelta(t, 72.9166, result.MarginPct, 0.001)
	assert.InDelta(t, 0.44, result.Addictiveness, 1e-9)
}

func TestEvaluate_Deterministic(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator(t)
	first, err := ev.Evaluate("og-calm", []string{"cuke", "banana", "gasoline"})
	require.NoError(t, err)
	second, err := ev.Evaluate("og-calm", []string{"cuke", "banana", "gasoline"})
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// A fresh evaluator over the same snapshot agrees bit for bit.
	other := newTestEvaluator(t)
	third, err := other.Evaluate("og-calm", []string{"cuke", "banana", "gasoline"})
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestEvaluate_UndefinedMargin(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator(t)
	result, err := ev.Evaluate("dud", []string{"gasoline"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.MarketValue)
	assert.False(t, result.MarginDefined)
	assert.Zero(t, result.MarginPct)
	assert.Equal(t, -10, result.Profit)
}

func TestEvaluate_UnknownIdentifiers(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator(t)

	_, err := ev.Evaluate("nope", nil)
	var unknown *catalog.UnknownIdentifierError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "product", unknown.Kind)

	_, err = ev.Evaluate("og-kush", []string{"banana", "nope"})
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "mixer", unknown.Kind)
}

// TestEvaluate_DoesNotAliasCaller ensures the cached result does not share
// the caller's mixer slice; the search mutates its prefix buffer in place.
func TestEvaluate_DoesNotAliasCaller(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator(t)
	buf := []string{"banana"}
	result, err := ev.Evaluate("og-kush", buf)
	require.NoError(t, err)

	buf[0] = "cuke"
	again, err := ev.Evaluate("og-kush", []string{"banana"})
	require.NoError(t, err)
	assert.Equal(t, []string{"banana"}, again.Mixers)
	assert.Equal(t, result.MarketValue, again.MarketValue)
}

func TestEngine_ReloadInvalidatesCache(t *testing.T) {
	t.Parallel()

	eng, err := NewEngine(testCatalog(t), 0)
	require.NoError(t, err)

	before, err := eng.Evaluate("og-kush", []string{"banana"})
	require.NoError(t, err)
	assert.Equal(t, 13, before.TotalCost)

	// Same identifiers, pricier banana.
	cat := testCatalog(t)
	products := cat.Products()
	effects := cat.Effects()
	mixers := cat.Mixers()
	for i := range mixers {
		if mixers[i].ID == "banana" {
			mixers[i].Cost = 9
		}
	}
	reloaded, err := catalog.New(products, mixers, effects)
	require.NoError(t, err)
	require.NoError(t, eng.Reload(reloaded))

	after, err := eng.Evaluate("og-kush", []string{"banana"})
	require.NoError(t, err)
	assert.Equal(t, 19, after.TotalCost, "stale cache entry served after reload")
}

func TestNewEvaluator_DefaultCacheSize(t *testing.T) {
	t.Parallel()

	_, err := NewEvaluator(testCatalog(t), -1)
	assert.NoError(t, err)
}

func TestCacheKey_Unambiguous(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, cacheKey("a", []string{"b"}), cacheKey("a", []string{"b", "b"}))
	assert.NotEqual(t, cacheKey("a", []string{"bc"}), cacheKey("ab", []string{"c"}))
}
