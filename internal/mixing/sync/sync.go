// Package sync loads catalog data into the store: the built-in dataset on
// first run, and wiki-scrape JSON exports on demand.
package sync

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/s1tools/mixing-server/internal/mixing/catalog"
	"github.com/s1tools/mixing-server/internal/mixing/db"
	"github.com/s1tools/mixing-server/pkg/mixing"
)

// Importer writes catalog data into the store.
type Importer struct {
	store *db.CatalogStore
}

// NewImporter creates a new Importer.
func NewImporter(database *db.DB) *Importer {
	return &Importer{store: db.NewCatalogStore(database)}
}

// SeedBuiltin replaces the stored catalog with the built-in dataset.
func (i *Importer) SeedBuiltin(ctx context.Context) error {
	return i.store.Replace(ctx, catalog.SeedProducts(), catalog.SeedMixers(), catalog.SeedEffects())
}

// ImportCatalogFromFile replaces the stored catalog with the contents of a
// scraped JSON export. Scrapes come from different wiki revisions with
// unstable field names, so parsing is tolerant: the first matching field
// variant wins. The assembled catalog is validated before anything is
// written.
func (i *Importer) ImportCatalogFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("file %s is not valid JSON", path)
	}

	doc := gjson.ParseBytes(data)

	effects := parseEffects(doc)
	mixers := parseMixers(doc)
	products := parseProducts(doc)

	// Validate references before touching the store.
	if _, err := catalog.New(products, mixers, effects); err != nil {
		return fmt.Errorf("validating imported catalog: %w", err)
	}

	if err := i.store.Replace(ctx, products, mixers, effects); err != nil {
		return fmt.Errorf("storing imported catalog: %w", err)
	}
	return nil
}

// pick returns the first present field among the given variants.
func pick(v gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if r := v.Get(key); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

func parseEffects(doc gjson.Result) []mixing.Effect {
	var effects []mixing.Effect
	doc.Get("effects").ForEach(func(_, v gjson.Result) bool {
		effects = append(effects, mixing.Effect{
			ID:             pick(v, "id", "slug").String(),
			Name:           pick(v, "name", "title").String(),
			Multiplier:     pick(v, "multiplier", "value_multiplier").Float(),
			Tier:           int(v.Get("tier").Int()),
			Addictiveness:  v.Get("addictiveness").Float(),
			ExclusionGroup: pick(v, "exclusion_group", "group").String(),
		})
		return true
	})
	return effects
}

func parseMixers(doc gjson.Result) []mixing.Mixer {
	var mixers []mixing.Mixer
	doc.Get("mixers").ForEach(func(_, v gjson.Result) bool {
		m := mixing.Mixer{
			ID:         pick(v, "id", "slug").String(),
			Name:       pick(v, "name", "title").String(),
			Cost:       int(pick(v, "cost", "price").Int()),
			EffectID:   pick(v, "effect_id", "effect", "default_effect").String(),
			OnConflict: mixing.ConflictPolicy(pick(v, "on_conflict", "conflict_policy").String()),
			UnlockRank: pick(v, "unlock_rank", "unlock").String(),
		}
		if !m.OnConflict.IsValid() {
			m.OnConflict = mixing.ConflictReplace
		}
		pick(v, "blocked_by", "blocklist").ForEach(func(_, b gjson.Result) bool {
			m.BlockedBy = append(m.BlockedBy, b.String())
			return true
		})
		pick(v, "reactions", "replacements").ForEach(func(_, r gjson.Result) bool {
			m.Reactions = append(m.Reactions, mixing.Reaction{
				WhenPresent: pick(r, "when_present", "if_present", "replaces").String(),
				Produces:    pick(r, "produces", "becomes", "with").String(),
			})
			return true
		})
		mixers = append(mixers, m)
		return true
	})
	return mixers
}

func parseProducts(doc gjson.Result) []mixing.BaseProduct {
	var products []mixing.BaseProduct
	pick(doc, "products", "base_products").ForEach(func(_, v gjson.Result) bool {
		p := mixing.BaseProduct{
			ID:            pick(v, "id", "slug").String(),
			Name:          pick(v, "name", "title").String(),
			BasePrice:     int(pick(v, "base_price", "price", "value").Int()),
			BaseCost:      int(pick(v, "base_cost", "cost").Int()),
			Addictiveness: v.Get("addictiveness").Float(),
		}
		pick(v, "starting_effects", "effects").ForEach(func(_, e gjson.Result) bool {
			p.StartingEffects = append(p.StartingEffects, e.String())
			return true
		})
		products = append(products, p)
		return true
	})
	return products
}
