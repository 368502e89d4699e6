package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/s1tools/mixing-server/internal/mixing/catalog"
	"github.com/s1tools/mixing-server/pkg/mixing"
)

// CatalogStore persists and loads catalog snapshots. A snapshot is always
// written and read whole; the engine never queries individual rows.
type CatalogStore struct {
	db *DB
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// IsEmpty reports whether the store holds no catalog data.
func (s *CatalogStore) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM effects`).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("counting effects: %w", err)
	}
	return count == 0, nil
}

// Replace overwrites the stored catalog with the given records in a single
// transaction.
func (s *CatalogStore) Replace(ctx context.Context, products []mixing.BaseProduct, mixers []mixing.Mixer, effects []mixing.Effect) error {
	return s.db.InTransaction(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"product_effects", "products", "mixer_reactions", "mixer_blocklist", "mixers", "effects"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}

		for _, e := range effects {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO effects (id, name, multiplier, tier, addictiveness, exclusion_group)
				VALUES (?, ?, ?, ?, ?, ?)
			`, e.ID, e.Name, e.Multiplier, e.Tier, e.Addictiveness, e.ExclusionGroup)
			if err != nil {
				return fmt.Errorf("inserting effect %q: %w", e.ID, err)
			}
		}

		for _, m := range mixers {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO mixers (id, name, cost, effect_id, on_conflict, unlock_rank)
				VALUES (?, ?, ?, ?, ?, ?)
			`, m.ID, m.Name, m.Cost, m.EffectID, string(m.OnConflict), m.UnlockRank)
			if err != nil {
				return fmt.Errorf("inserting mixer %q: %w", m.ID, err)
			}
			for _, blocked := range m.BlockedBy {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO mixer_blocklist (mixer_id, effect_id) VALUES (?, ?)
				`, m.ID, blocked)
				if err != nil {
					return fmt.Errorf("inserting blocklist for %q: %w", m.ID, err)
				}
			}
			for i, r := range m.Reactions {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO mixer_reactions (mixer_id, position, when_present, produces)
					VALUES (?, ?, ?, ?)
				`, m.ID, i, r.WhenPresent, r.Produces)
				if err != nil {
					return fmt.Errorf("inserting reaction for %q: %w", m.ID, err)
				}
			}
		}

		for _, p := range products {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO products (id, name, base_price, base_cost, addictiveness)
				VALUES (?, ?, ?, ?, ?)
			`, p.ID, p.Name, p.BasePrice, p.BaseCost, p.Addictiveness)
			if err != nil {
				return fmt.Errorf("inserting product %q: %w", p.ID, err)
			}
			for i, eff := range p.StartingEffects {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO product_effects (product_id, position, effect_id)
					VALUES (?, ?, ?)
				`, p.ID, i, eff)
				if err != nil {
					return fmt.Errorf("inserting starting effect for %q: %w", p.ID, err)
				}
			}
		}

		return nil
	})
}

// Load reads the stored records and builds a validated snapshot.
func (s *CatalogStore) Load(ctx context.Context) (*catalog.Catalog, error) {
	effects, err := s.loadEffects(ctx)
	if err != nil {
		return nil, err
	}
	mixers, err := s.loadMixers(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(products, mixers, effects)
	if err != nil {
		return nil, fmt.Errorf("building catalog snapshot: %w", err)
	}
	return cat, nil
}

func (s *CatalogStore) loadEffects(ctx context.Context) ([]mixing.Effect, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, multiplier, tier, addictiveness, exclusion_group
		FROM effects ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying effects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var effects []mixing.Effect
	for rows.Next() {
		var e mixing.Effect
		if err := rows.Scan(&e.ID, &e.Name, &e.Multiplier, &e.Tier, &e.Addictiveness, &e.ExclusionGroup); err != nil {
			return nil, fmt.Errorf("scanning effect: %w", err)
		}
		effects = append(effects, e)
	}

	return effects, rows.Err()
}

func (s *CatalogStore) loadMixers(ctx context.Context) ([]mixing.Mixer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, cost, effect_id, on_conflict, unlock_rank
		FROM mixers ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying mixers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var mixers []mixing.Mixer
	for rows.Next() {
		var m mixing.Mixer
		var policy string
		if err := rows.Scan(&m.ID, &m.Name, &m.Cost, &m.EffectID, &policy, &m.UnlockRank); err != nil {
			return nil, fmt.Errorf("scanning mixer: %w", err)
		}
		m.OnConflict = mixing.ConflictPolicy(policy)
		mixers = append(mixers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range mixers {
		blocked, err := s.loadMixerBlocklist(ctx, mixers[i].ID)
		if err != nil {
			return nil, err
		}
		mixers[i].BlockedBy = blocked

		reactions, err := s.loadMixerReactions(ctx, mixers[i].ID)
		if err != nil {
			return nil, err
		}
		mixers[i].Reactions = reactions
	}

	return mixers, nil
}

func (s *CatalogStore) loadMixerBlocklist(ctx context.Context, mixerID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT effect_id FROM mixer_blocklist WHERE mixer_id = ? ORDER BY effect_id
	`, mixerID)
	if err != nil {
		return nil, fmt.Errorf("querying blocklist: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var blocked []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning blocklist entry: %w", err)
		}
		blocked = append(blocked, id)
	}

	return blocked, rows.Err()
}

func (s *CatalogStore) loadMixerReactions(ctx context.Context, mixerID string) ([]mixing.Reaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT when_present, produces FROM mixer_reactions
		WHERE mixer_id = ? ORDER BY position
	`, mixerID)
	if err != nil {
		return nil, fmt.Errorf("querying reactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reactions []mixing.Reaction
	for rows.Next() {
		var r mixing.Reaction
		if err := rows.Scan(&r.WhenPresent, &r.Produces); err != nil {
			return nil, fmt.Errorf("scanning reaction: %w", err)
		}
		reactions = append(reactions, r)
	}

	return reactions, rows.Err()
}

func (s *CatalogStore) loadProducts(ctx context.Context) ([]mixing.BaseProduct, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, base_price, base_cost, addictiveness
		FROM products ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []mixing.BaseProduct
	for rows.Next() {
		var p mixing.BaseProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.BasePrice, &p.BaseCost, &p.Addictiveness); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		effects, err := s.loadProductEffects(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].StartingEffects = effects
	}

	return products, nil
}

func (s *CatalogStore) loadProductEffects(ctx context.Context, productID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT effect_id FROM product_effects WHERE product_id = ? ORDER BY position
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("querying starting effects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var effects []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning starting effect: %w", err)
		}
		effects = append(effects, id)
	}

	return effects, rows.Err()
}
