package engine

import (
	"math"
	"sort"

	"github.com/s1tools/mixing-server/internal/mixing/catalog"
	"github.com/s1tools/mixing-server/pkg/mixing"
)

// MarketValue prices a product carrying the given effects. Multipliers
// combine additively within an effect tier and multiplicatively across
// tiers, then the result is rounded by the game's half-down rule. Tiers are
// visited in ascending order so the float product is reproducible.
func MarketValue(cat *catalog.Catalog, product mixing.BaseProduct, effectIDs []string) int {
	tierSums := make(map[int]float64)
	for _, id := range effectIDs {
		e, err := cat.Effect(id)
		if err != nil {
			continue
		}
		tierSums[e.Tier] += e.Multiplier
	}

	tiers := make([]int, 0, len(tierSums))
	for tier := range tierSums {
		tiers = append(tiers, tier)
	}
	sort.Ints(tiers)

	multiplier := 1.0
	for _, tier := range tiers {
		multiplier *= 1 + tierSums[tier]
	}

	return roundHalfDown(float64(product.BasePrice) * multiplier)
}

// roundHalfDown rounds to the nearest integer, with an exact .5 fraction
// rounding down (observed game behavior).
func roundHalfDown(v float64) int {
	if v-math.Floor(v) == 0.5 {
		return int(math.Floor(v))
	}
	return int(math.Round(v))
}

// TotalCost is the product's base cost plus every mixer occurrence in the
// sequence, repeats included.
func TotalCost(product mixing.BaseProduct, sequence []mixing.Mixer) int {
	cost := product.BaseCost
	for _, m := range sequence {
		cost += m.Cost
	}
	return cost
}

// Profit is market value minus total cost.
func Profit(marketValue, totalCost int) int {
	return marketValue - totalCost
}

// Margin returns profit as a percentage of market value. A zero market
// value has no defined margin; the second return reports definedness.
func Margin(profit, marketValue int) (float64, bool) {
	if marketValue == 0 {
		return 0, false
	}
	return float64(profit) / float64(marketValue) * 100, true
}

// marketCeiling is an upper bound on the market value any effect set can
// give the product: every tier stacked with every multiplier it has. Used
// by the search to abandon branches whose cost leaves no winning profit.
func marketCeiling(cat *catalog.Catalog, product mixing.BaseProduct) float64 {
	tierSums := make(map[int]float64)
	for _, e := range cat.Effects() {
		if e.Multiplier > 0 {
			tierSums[e.Tier] += e.Multiplier
		}
	}

	multiplier := 1.0
	for _, sum := range tierSums {
		multiplier *= 1 + sum
	}

	return float64(product.BasePrice) * multiplier
}
