package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s1tools/mixing-server/pkg/mixing"
)

func smallCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := New(
		[]mixing.BaseProduct{
			{ID: "og-kush", Name: "OG Kush", BasePrice: 38, BaseCost: 3, StartingEffects: []string{"calming"}},
		},
		[]mixing.Mixer{
			{ID: "cuke", Name: "Cuke", Cost: 2, EffectID: "energizing", OnConflict: mixing.ConflictReplace},
			{ID: "banana", Name: "Banana", Cost: 2, EffectID: "calming", OnConflict: mixing.ConflictSkip},
		},
		[]mixing.Effect{
			{ID: "energizing", Name: "Energizing", Multiplier: 0.22, Tier: 2},
			{ID: "calming", Name: "Calming", Multiplier: 0.10, Tier: 1},
		},
	)
	require.NoError(t, err)
	return cat
}

func TestCatalog_Lookups(t *testing.T) {
	t.Parallel()

	cat := smallCatalog(t)

	p, err := cat.Product("og-kush")
	require.NoError(t, err)
	assert.Equal(t, "OG Kush", p.Name)

	m, err := cat.Mixer("cuke")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Cost)

	e, err := cat.Effect("energizing")
	require.NoError(t, err)
	assert.Equal(t, 0.22, e.Multiplier)
}

func TestCatalog_UnknownIdentifier(t *testing.T) {
	t.Parallel()

	cat := smallCatalog(t)

	for _, tt := range []struct {
		kind   string
		lookup func() error
	}{
		{"product", func() error { _, err := cat.Product("x"); return err }},
		{"mixer", func() error { _, err := cat.Mixer("x"); return err }},
		{"effect", func() error { _, err := cat.Effect("x"); return err }},
	} {
		err := tt.lookup()
		var unknown *UnknownIdentifierError
		require.ErrorAs(t, err, &unknown, tt.kind)
		assert.Equal(t, tt.kind, unknown.Kind)
		assert.Equal(t, "x", unknown.ID)
	}
}

func TestCatalog_EnumerationSorted(t *testing.T) {
	t.Parallel()

	cat := smallCatalog(t)

	mixers := cat.Mixers()
	require.Len(t, mixers, 2)
	assert.Equal(t, "banana", mixers[0].ID)
	assert.Equal(t, "cuke", mixers[1].ID)

	assert.Equal(t, []string{"banana", "cuke"}, cat.MixerIDs())
}

func TestCatalog_MixerIDsCopy(t *testing.T) {
	t.Parallel()

	cat := smallCatalog(t)
	ids := cat.MixerIDs()
	ids[0] = "mutated"
	assert.Equal(t, []string{"banana", "cuke"}, cat.MixerIDs())
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	effects := []mixing.Effect{{ID: "calming", Name: "Calming", Multiplier: 0.1, Tier: 1}}

	tests := []struct {
		name     string
		products []mixing.BaseProduct
		mixers   []mixing.Mixer
		effects  []mixing.Effect
	}{
		{
			name:    "duplicate effect id",
			effects: []mixing.Effect{{ID: "calming"}, {ID: "calming"}},
		},
		{
			name:    "mixer references unknown effect",
			effects: effects,
			mixers:  []mixing.Mixer{{ID: "m", EffectID: "nope", OnConflict: mixing.ConflictReplace}},
		},
		{
			name:    "mixer invalid conflict policy",
			effects: effects,
			mixers:  []mixing.Mixer{{ID: "m", EffectID: "calming", OnConflict: "explode"}},
		},
		{
			name:    "mixer blocklist references unknown effect",
			effects: effects,
			mixers: []mixing.Mixer{{
				ID: "m", EffectID: "calming", OnConflict: mixing.ConflictReplace,
				BlockedBy: []string{"nope"},
			}},
		},
		{
			name:    "mixer reaction references unknown effect",
			effects: effects,
			mixers: []mixing.Mixer{{
				ID: "m", EffectID: "calming", OnConflict: mixing.ConflictReplace,
				Reactions: []mixing.Reaction{{WhenPresent: "calming", Produces: "nope"}},
			}},
		},
		{
			name:     "product references unknown effect",
			effects:  effects,
			products: []mixing.BaseProduct{{ID: "p", StartingEffects: []string{"nope"}}},
		},
		{
			name:     "duplicate product id",
			effects:  effects,
			products: []mixing.BaseProduct{{ID: "p"}, {ID: "p"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.products, tt.mixers, tt.effects)
			assert.Error(t, err)
		})
	}
}

func TestSeed_Valid(t *testing.T) {
	t.Parallel()

	cat, err := Seed()
	require.NoError(t, err)

	products, mixers, effects := cat.Counts()
	assert.Equal(t, 6, products)
	assert.Equal(t, 16, mixers)
	assert.Equal(t, 34, effects)

	// Spot-check the dataset against observed game values.
	banana, err := cat.Mixer("banana")
	require.NoError(t, err)
	assert.Equal(t, "gingeritis", banana.EffectID)
	assert.Equal(t, 2, banana.Cost)

	gingeritis, err := cat.Effect("gingeritis")
	require.NoError(t, err)
	assert.Equal(t, 0.38, gingeritis.Multiplier)
}
