package catalog

import "github.com/s1tools/mixing-server/pkg/mixing"

// Exclusion groups used by the built-in dataset.
const (
	groupAlertness = "alertness"
	groupMood      = "mood"
)

// SeedProducts returns the built-in base product dataset. Costs are per
// unit: grow cost divided by average yield for strains, batch ingredient
// cost divided by batch yield otherwise.
func SeedProducts() []mixing.BaseProduct {
	return []mixing.BaseProduct{
		{ID: "og-kush", Name: "OG Kush", BasePrice: 38, BaseCost: 3, StartingEffects: []string{"calming"}},
		{ID: "sour-diesel", Name: "Sour Diesel", BasePrice: 40, BaseCost: 3, StartingEffects: []string{"refreshing"}, Addictiveness: 0.10},
		{ID: "green-crack", Name: "Green Crack", BasePrice: 43, BaseCost: 3, StartingEffects: []string{"energizing"}, Addictiveness: 0.34},
		{ID: "granddaddy-purple", Name: "Granddaddy Purple", BasePrice: 44, BaseCost: 4, StartingEffects: []string{"sedating"}},
		{ID: "methamphetamine", Name: "Methamphetamine", BasePrice: 70, BaseCost: 14, Addictiveness: 0.60},
		{ID: "cocaine", Name: "Cocaine", BasePrice: 150, BaseCost: 25, Addictiveness: 0.40},
	}
}

// SeedMixers returns the built-in mixer dataset, including the observed
// reaction table (which present effect a mixer converts, and into what).
func SeedMixers() []mixing.Mixer {
	return []mixing.Mixer{
		{
			ID: "cuke", Name: "Cuke", Cost: 2, EffectID: "energizing",
			OnConflict: mixing.ConflictReplace,
			Reactions:  []mixing.Reaction{{WhenPresent: "paranoia", Produces: "shrinking"}},
		},
		{
			ID: "banana", Name: "Banana", Cost: 2, EffectID: "gingeritis",
			OnConflict: mixing.ConflictReplace,
			Reactions: []mixing.Reaction{
				{WhenPresent: "smelly", Produces: "anti-gravity"},
				{WhenPresent: "calming", Produces: "sneaky"},
				{WhenPresent: "paranoia", Produces: "zombifying"},
				{WhenPresent: "refreshing", Produces: "long-faced"},
				{WhenPresent: "energizing", Produces: "thought-provoking"},
			},
		},
		{
			ID: "paracetamol", Name: "Paracetamol", Cost: 3, EffectID: "sneaky",
			OnConflict: mixing.ConflictReplace,
			// Sneaky won't take on an already toxic product.
			BlockedBy: []string{"toxic"},
			Reactions: []mixing.Reaction{
				{WhenPresent: "munchies", Produces: "anti-gravity"},
				{WhenPresent: "energizing", Produces: "paranoia"},
				{WhenPresent: "calming", Produces: "slippery"},
				{WhenPresent: "paranoia", Produces: "sneaky"},
			},
		},
		{ID: "donut", Name: "Donut", Cost: 3, EffectID: "calorie-dense", OnConflict: mixing.ConflictReplace},
		{ID: "viagra", Name: "Viagra", Cost: 4, EffectID: "tropic-thunder", OnConflict: mixing.ConflictReplace, UnlockRank: "Hoodlum II"},
		{
			ID: "flu-medicine", Name: "Flu Medicine", Cost: 5, EffectID: "sedating",
			// Observed in-game: flu medicine does not displace a competing
			// alertness effect, it just fails to take.
			OnConflict: mixing.ConflictSkip,
			UnlockRank: "Hoodlum IV",
			Reactions: []mixing.Reaction{
				{WhenPresent: "paranoia", Produces: "shrinking"},
				{WhenPresent: "refreshing", Produces: "long-faced"},
			},
		},
		{
			ID: "mouth-wash", Name: "Mouth Wash", Cost: 4, EffectID: "balding",
			OnConflict: mixing.ConflictReplace,
			UnlockRank: "Hoodlum III",
			Reactions:  []mixing.Reaction{{WhenPresent: "calming", Produces: "anti-gravity"}},
		},
		{ID: "gasoline", Name: "Gasoline", Cost: 5, EffectID: "toxic", OnConflict: mixing.ConflictReplace, UnlockRank: "Hoodlum V"},
		{ID: "motor-oil", Name: "Motor Oil", Cost: 6, EffectID: "slippery", OnConflict: mixing.ConflictReplace, UnlockRank: "Peddler II"},
		{
			ID: "mega-bean", Name: "Mega Bean", Cost: 7, EffectID: "foggy",
			OnConflict: mixing.ConflictReplace,
			UnlockRank: "Peddler II",
			Reactions:  []mixing.Reaction{{WhenPresent: "paranoia", Produces: "jennerising"}},
		},
		{ID: "chili", Name: "Chili", Cost: 7, EffectID: "spicy", OnConflict: mixing.ConflictReplace, UnlockRank: "Peddler IV"},
		{ID: "battery", Name: "Battery", Cost: 8, EffectID: "bright-eyed", OnConflict: mixing.ConflictReplace, UnlockRank: "Peddler V"},
		{ID: "energy-drink", Name: "Energy Drink", Cost: 6, EffectID: "athletic", OnConflict: mixing.ConflictReplace, UnlockRank: "Peddler I"},
		{
			ID: "iodine", Name: "Iodine", Cost: 8, EffectID: "jennerising",
			OnConflict: mixing.ConflictReplace,
			UnlockRank: "Hustler I",
			Reactions:  []mixing.Reaction{{WhenPresent: "paranoia", Produces: "foggy"}},
		},
		{
			ID: "addy", Name: "Addy", Cost: 9, EffectID: "thought-provoking",
			OnConflict: mixing.ConflictReplace,
			UnlockRank: "Hustler II",
			Reactions:  []mixing.Reaction{{WhenPresent: "refreshing", Produces: "glowing"}},
		},
		{
			ID: "horse-semen", Name: "Horse Semen", Cost: 9, EffectID: "long-faced",
			OnConflict: mixing.ConflictReplace,
			UnlockRank: "Hustler III",
			Reactions:  []mixing.Reaction{{WhenPresent: "refreshing", Produces: "gingeritis"}},
		},
	}
}

// SeedEffects returns the built-in effect dataset with observed market
// multipliers and addictiveness ratings.
func SeedEffects() []mixing.Effect {
	return []mixing.Effect{
		{ID: "calming", Name: "Calming", Multiplier: 0.10, Tier: 1, ExclusionGroup: groupMood},
		{ID: "refreshing", Name: "Refreshing", Multiplier: 0.10, Addictiveness: 0.10, Tier: 1},
		{ID: "paranoia", Name: "Paranoia", Multiplier: 0.12, Addictiveness: 0.12, Tier: 1, ExclusionGroup: groupMood},
		{ID: "euphoric", Name: "Euphoric", Multiplier: 0.14, Addictiveness: 0.29, Tier: 1},
		{ID: "munchies", Name: "Munchies", Multiplier: 0.16, Addictiveness: 0.19, Tier: 1},
		{ID: "laxative", Name: "Laxative", Multiplier: 0.18, Addictiveness: 0.15, Tier: 1},
		{ID: "focused", Name: "Focused", Multiplier: 0.20, Addictiveness: 0.31, Tier: 1},
		{ID: "energizing", Name: "Energizing", Multiplier: 0.22, Addictiveness: 0.34, Tier: 2, ExclusionGroup: groupAlertness},
		{ID: "foggy", Name: "Foggy", Multiplier: 0.24, Addictiveness: 0.27, Tier: 2},
		{ID: "sedating", Name: "Sedating", Multiplier: 0.26, Addictiveness: 0.30, Tier: 2, ExclusionGroup: groupAlertness},
		{ID: "calorie-dense", Name: "Calorie-Dense", Multiplier: 0.28, Addictiveness: 0.27, Tier: 2},
		{ID: "balding", Name: "Balding", Multiplier: 0.30, Addictiveness: 0.31, Tier: 2},
		{ID: "smelly", Name: "Smelly", Multiplier: 0.30, Addictiveness: 0.35, Tier: 2},
		{ID: "thought-provoking", Name: "Thought-Provoking", Multiplier: 0.32, Addictiveness: 0.37, Tier: 2},
		{ID: "slippery", Name: "Slippery", Multiplier: 0.34, Addictiveness: 0.31, Tier: 3},
		{ID: "toxic", Name: "Toxic", Multiplier: 0.00, Addictiveness: 0.38, Tier: 3},
		{ID: "spicy", Name: "Spicy", Multiplier: 0.36, Addictiveness: 0.33, Tier: 3},
		{ID: "gingeritis", Name: "Gingeritis", Multiplier: 0.38, Addictiveness: 0.44, Tier: 3},
		{ID: "sneaky", Name: "Sneaky", Multiplier: 0.40, Addictiveness: 0.48, Tier: 3},
		{ID: "disorienting", Name: "Disorienting", Multiplier: 0.42, Addictiveness: 0.46, Tier: 3},
		{ID: "explosive", Name: "Explosive", Multiplier: 0.42, Addictiveness: 0.55, Tier: 3},
		{ID: "athletic", Name: "Athletic", Multiplier: 0.44, Addictiveness: 0.49, Tier: 3},
		{ID: "tropic-thunder", Name: "Tropic Thunder", Multiplier: 0.46, Addictiveness: 1.00, Tier: 4},
		{ID: "jennerising", Name: "Jennerising", Multiplier: 0.46, Addictiveness: 0.74, Tier: 4},
		{ID: "glowing", Name: "Glowing", Multiplier: 0.48, Addictiveness: 0.78, Tier: 4},
		{ID: "schizophrenic", Name: "Schizophrenic", Multiplier: 0.48, Addictiveness: 0.80, Tier: 4},
		{ID: "electrifying", Name: "Electrifying", Multiplier: 0.50, Addictiveness: 0.80, Tier: 4},
		{ID: "long-faced", Name: "Long Faced", Multiplier: 0.52, Addictiveness: 1.00, Tier: 4},
		{ID: "seizure-inducing", Name: "Seizure-Inducing", Multiplier: 0.52, Addictiveness: 0.90, Tier: 4},
		{ID: "anti-gravity", Name: "Anti-Gravity", Multiplier: 0.54, Addictiveness: 0.86, Tier: 4},
		{ID: "cyclopean", Name: "Cyclopean", Multiplier: 0.56, Addictiveness: 0.88, Tier: 4},
		{ID: "zombifying", Name: "Zombifying", Multiplier: 0.58, Addictiveness: 0.99, Tier: 4},
		{ID: "shrinking", Name: "Shrinking", Multiplier: 0.60, Addictiveness: 0.91, Tier: 5},
		{ID: "bright-eyed", Name: "Bright-Eyed", Multiplier: 0.62, Addictiveness: 0.93, Tier: 5},
	}
}

// Seed builds a validated snapshot of the built-in dataset.
func Seed() (*Catalog, error) {
	return New(SeedProducts(), SeedMixers(), SeedEffects())
}
