package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarketValue_SingleEffect(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	product := mustProduct(t, cat, "og-kush")

	// 35 * (1 + 0.38) = 48.3 -> 48
	assert.Equal(t, 48, MarketValue(cat, product, []string{"gingeritis"}))
}

func TestMarketValue_TieredCombination(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	product := mustProduct(t, cat, "og-kush")

	// Within tier 3, Gingeritis and Sneaky add: (1 + 0.38 + 0.40).
	// Across tiers 1 and 3 the sums multiply with Calming's (1 + 0.10).
	// 35 * 1.10 * 1.78 = 68.53 -> 69. A naive per-effect product would give
	// 35 * 1.10 * 1.38 * 1.40 = 74.38 -> 74 instead.
	assert.Equal(t, 69, MarketValue(cat, product, []string{"calming", "gingeritis", "sneaky"}))
}

func TestMarketValue_NoEffects(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	product := mustProduct(t, cat, "og-kush")
	assert.Equal(t, 35, MarketValue(cat, product, nil))
}

func TestRoundHalfDown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want int
	}{
		{38.5, 38}, // exact .5 rounds down
		{38.4, 38},
		{38.6, 39},
		{48.3, 48},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundHalfDown(tt.in), "roundHalfDown(%v)", tt.in)
	}
}

func TestMarketValue_HalfRoundsDown(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	product := mustProduct(t, cat, "og-kush")

	// 35 * 1.10 = 38.5 -> 38, not 39.
	assert.Equal(t, 38, MarketValue(cat, product, []string{"calming"}))
}

func TestTotalCost_CountsRepeats(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	product := mustProduct(t, cat, "og-kush")

	// 10 + 3 + 3 + 2
	got := TotalCost(product, mustMixers(t, cat, "banana", "banana", "cuke"))
	assert.Equal(t, 18, got)
}

func TestTotalCost_CountsBlockedMixers(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	product := mustProduct(t, cat, "og-kush")

	// Paracetamol is a no-op after Gasoline but its cost is still spent.
	got := TotalCost(product, mustMixers(t, cat, "gasoline", "paracetamol"))
	assert.Equal(t, 18, got)
}

// TestTotalCost_Monotonic checks cost(S + [m]) == cost(S) + cost(m) for
// every fixture mixer over a few prefixes.
func TestTotalCost_Monotonic(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	product := mustProduct(t, cat, "og-kush")

	prefixes := [][]string{
		nil,
		{"banana"},
		{"cuke", "banana"},
		{"gasoline", "gasoline", "paracetamol"},
	}
	for _, prefix := range prefixes {
		base := TotalCost(product, mustMixers(t, cat, prefix...))
		for _, m := range cat.Mixers() {
			extended := TotalCost(product, append(mustMixers(t, cat, prefix...), m))
			assert.Equal(t, base+m.Cost, extended, "prefix %v + %s", prefix, m.ID)
		}
	}
}

func TestProfit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 35, Profit(48, 13))
	assert.Equal(t, -5, Profit(10, 15))
}

func TestMargin(t *testing.T) {
	t.Parallel()

	pct, defined := Margin(35, 48)
	assert.True(t, defined)
	assert.InDelta(t, 72.9166, pct, 0.001)

	pct, defined = Margin(-5, 0)
	assert.False(t, defined, "zero market value has no defined margin")
	assert.Zero(t, pct)
}

func TestMarketCeiling_BoundsAllSets(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	product := mustProduct(t, cat, "og-kush")
	ceiling := marketCeiling(cat, product)

	sets := [][]string{
		nil,
		{"gingeritis"},
		{"calming", "gingeritis", "sneaky"},
		{"calming", "energizing"},
	}
	for _, set := range sets {
		v := MarketValue(cat, product, set)
		assert.LessOrEqual(t, float64(v), ceiling+1, "set %v", set)
	}
}

func TestMarketValue_ZeroBasePrice(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	dud := mustProduct(t, cat, "dud")
	assert.Equal(t, 0, MarketValue(cat, dud, []string{"gingeritis"}))
}
