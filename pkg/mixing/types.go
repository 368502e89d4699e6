// Package mixing contains the core types for the mixing economy server.
package mixing

// ============================================
// CATALOG TYPES
// ============================================

// Effect is a named modifier that influences market value. Effects with the
// same non-empty ExclusionGroup are mutually exclusive: at most one of them
// may be active on a product at a time.
type Effect struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Multiplier     float64 `json:"multiplier"`
	Tier           int     `json:"tier"`
	Addictiveness  float64 `json:"addictiveness"`
	ExclusionGroup string  `json:"exclusion_group,omitempty"`
}

// ConflictPolicy controls what a mixer does when its effect's exclusion
// group already holds a different active effect.
type ConflictPolicy string

const (
	// ConflictReplace removes the conflicting effect and applies the new one.
	ConflictReplace ConflictPolicy = "replace"
	// ConflictSkip leaves the product unchanged for that step.
	ConflictSkip ConflictPolicy = "skip"
)

// ValidConflictPolicies returns all valid conflict policies.
func ValidConflictPolicies() []ConflictPolicy {
	return []ConflictPolicy{ConflictReplace, ConflictSkip}
}

// IsValid checks if the policy is a known valid policy.
func (p ConflictPolicy) IsValid() bool {
	for _, valid := range ValidConflictPolicies() {
		if p == valid {
			return true
		}
	}
	return false
}

// Reaction converts a specific effect already on the product into another
// effect when the owning mixer is applied. At most one reaction fires per
// application; first match in declaration order wins.
type Reaction struct {
	WhenPresent string `json:"when_present"`
	Produces    string `json:"produces"`
}

// Mixer is an ingredient applied to a base product. It contributes one
// effect, a per-occurrence cost, and a small set of declarative rules the
// resolution engine interprets.
type Mixer struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Cost       int            `json:"cost"`
	EffectID   string         `json:"effect_id"`
	OnConflict ConflictPolicy `json:"on_conflict"`
	// BlockedBy lists effect IDs whose presence anywhere on the product
	// makes this mixer a complete no-op, independent of exclusion groups.
	BlockedBy  []string   `json:"blocked_by,omitempty"`
	Reactions  []Reaction `json:"reactions,omitempty"`
	UnlockRank string     `json:"unlock_rank,omitempty"`
}

// BaseProduct is the starting item before any mixers are applied.
type BaseProduct struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BasePrice int    `json:"base_price"`
	BaseCost  int    `json:"base_cost"`
	// StartingEffects are effect IDs inherent to the product, in order.
	StartingEffects []string `json:"starting_effects,omitempty"`
	Addictiveness   float64  `json:"addictiveness"`
}

// ============================================
// RESULT TYPES
// ============================================

// MixResult is the fully evaluated outcome of applying one ordered mixer
// sequence to one base product. Derived on demand, never persisted.
type MixResult struct {
	ProductID string   `json:"product_id"`
	Mixers    []string `json:"mixers"`
	Effects   []string `json:"effects"`

	MarketValue int `json:"market_value"`
	TotalCost   int `json:"total_cost"`
	Profit      int `json:"profit"`

	// MarginPct is profit as a percentage of market value. It is only
	// meaningful when MarginDefined is true; a zero market value has no
	// defined margin.
	MarginPct     float64 `json:"margin_pct"`
	MarginDefined bool    `json:"margin_defined"`

	Addictiveness float64 `json:"addictiveness"`
}

// SearchStats contains metadata about a top_mixes search execution.
type SearchStats struct {
	SequencesEvaluated int64 `json:"sequences_evaluated"`
	BranchesPruned     int64 `json:"branches_pruned"`
	Truncated          bool  `json:"truncated,omitempty"`
	ProcessingTimeMs   int64 `json:"processing_time_ms"`
}

// ============================================
// TOOL REQUEST/RESPONSE TYPES
// ============================================

// EvaluateMixRequest is the input for the evaluate_mix tool.
type EvaluateMixRequest struct {
	ProductID string   `json:"product_id"`
	Mixers    []string `json:"mixers"`
}

// EvaluateMixResponse is the output for the evaluate_mix tool.
type EvaluateMixResponse struct {
	Result MixResult `json:"result"`
}

// TopMixesRequest is the input for the top_mixes tool.
type TopMixesRequest struct {
	ProductID      string `json:"product_id"`
	MaxMixers      int    `json:"max_mixers"`
	Limit          int    `json:"limit"`
	MaxEvaluations int64  `json:"max_evaluations,omitempty"`
}

// TopMixesResponse is the output for the top_mixes tool.
type TopMixesResponse struct {
	ProductID string      `json:"product_id"`
	Results   []MixResult `json:"results"`
	Stats     SearchStats `json:"stats"`
}

// ProductLookupRequest is the input for the product_lookup tool.
type ProductLookupRequest struct {
	ProductID string `json:"product_id"`
}

// ProductLookupResponse is the output for the product_lookup tool.
type ProductLookupResponse struct {
	Product         BaseProduct `json:"product"`
	StartingEffects []Effect    `json:"starting_effects,omitempty"`
}

// CatalogListRequest is the input for the catalog_list tool.
type CatalogListRequest struct {
	Kind string `json:"kind"`
}

// CatalogListResponse is the output for the catalog_list tool. Exactly one
// of the slices is populated, matching the requested kind.
type CatalogListResponse struct {
	Products []BaseProduct `json:"products,omitempty"`
	Mixers   []Mixer       `json:"mixers,omitempty"`
	Effects  []Effect      `json:"effects,omitempty"`
}

// ReloadCatalogResponse is the output for the reload_catalog tool.
type ReloadCatalogResponse struct {
	Products int `json:"products"`
	Mixers   int `json:"mixers"`
	Effects  int `json:"effects"`
}
