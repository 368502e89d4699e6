package engine

import (
	"testing"

	"github.com/s1tools/mixing-server/internal/mixing/catalog"
	"github.com/s1tools/mixing-server/pkg/mixing"
)

// testCatalog builds the snapshot the engine tests share. Gingeritis and
// Energizing deliberately share an exclusion group so replace/skip conflict
// behavior is observable with two mixers.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	effects := []mixing.Effect{
		{ID: "calming", Name: "Calming", Multiplier: 0.10, Tier: 1, ExclusionGroup: "mood"},
		{ID: "energizing", Name: "Energizing", Multiplier: 0.22, Addictiveness: 0.34, Tier: 2, ExclusionGroup: "stimulation"},
		{ID: "sedating", Name: "Sedating", Multiplier: 0.26, Addictiveness: 0.30, Tier: 2, ExclusionGroup: "stimulation"},
		{ID: "gingeritis", Name: "Gingeritis", Multiplier: 0.38, Addictiveness: 0.44, Tier: 3, ExclusionGroup: "stimulation"},
		{ID: "sneaky", Name: "Sneaky", Multiplier: 0.40, Addictiveness: 0.48, Tier: 3},
		{ID: "toxic", Name: "Toxic", Multiplier: 0.00, Addictiveness: 0.38, Tier: 3},
	}

	mixers := []mixing.Mixer{
		{ID: "cuke", Name: "Cuke", Cost: 2, EffectID: "energizing", OnConflict: mixing.ConflictReplace},
		{
			ID: "banana", Name: "Banana", Cost: 3, EffectID: "gingeritis",
			OnConflict: mixing.ConflictReplace,
			Reactions:  []mixing.Reaction{{WhenPresent: "calming", Produces: "sneaky"}},
		},
		{
			ID: "flu-medicine", Name: "Flu Medicine", Cost: 5, EffectID: "sedating",
			OnConflict: mixing.ConflictSkip,
		},
		{ID: "gasoline", Name: "Gasoline", Cost: 5, EffectID: "toxic", OnConflict: mixing.ConflictReplace},
		{
			ID: "paracetamol", Name: "Paracetamol", Cost: 3, EffectID: "sneaky",
			OnConflict: mixing.ConflictReplace,
			BlockedBy:  []string{"toxic"},
		},
	}

	products := []mixing.BaseProduct{
		{ID: "og-kush", Name: "OG Kush", BasePrice: 35, BaseCost: 10},
		{ID: "og-calm", Name: "OG Calm", BasePrice: 35, BaseCost: 10, StartingEffects: []string{"calming"}},
		{ID: "dud", Name: "Dud", BasePrice: 0, BaseCost: 5},
	}

	cat, err := catalog.New(products, mixers, effects)
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return cat
}

// twoMixerCatalog is the minimal search fixture: one product, two mixers
// with unrelated effects.
func twoMixerCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	effects := []mixing.Effect{
		{ID: "gingeritis", Name: "Gingeritis", Multiplier: 0.38, Tier: 3},
		{ID: "sneaky", Name: "Sneaky", Multiplier: 0.40, Tier: 3},
	}
	mixers := []mixing.Mixer{
		{ID: "banana", Name: "Banana", Cost: 3, EffectID: "gingeritis", OnConflict: mixing.ConflictReplace},
		{ID: "paracetamol", Name: "Paracetamol", Cost: 3, EffectID: "sneaky", OnConflict: mixing.ConflictReplace},
	}
	products := []mixing.BaseProduct{
		{ID: "og-kush", Name: "OG Kush", BasePrice: 35, BaseCost: 10},
	}

	cat, err := catalog.New(products, mixers, effects)
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return cat
}

func mustMixers(t *testing.T, cat *catalog.Catalog, ids ...string) []mixing.Mixer {
	t.Helper()
	out := make([]mixing.Mixer, 0, len(ids))
	for _, id := range ids {
		m, err := cat.Mixer(id)
		if err != nil {
			t.Fatalf("Mixer(%q): %v", id, err)
		}
		out = append(out, m)
	}
	return out
}

func mustProduct(t *testing.T, cat *catalog.Catalog, id string) mixing.BaseProduct {
	t.Helper()
	p, err := cat.Product(id)
	if err != nil {
		t.Fatalf("Product(%q): %v", id, err)
	}
	return p
}
