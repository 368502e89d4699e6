// Package catalog holds the immutable game-data snapshot every engine call
// operates on. A snapshot is built once from a data source, validated, and
// never mutated; reloading produces a new snapshot.
package catalog

import (
	"fmt"
	"sort"

	"github.com/s1tools/mixing-server/pkg/mixing"
)

// UnknownIdentifierError reports a catalog lookup for an identifier that
// does not exist.
type UnknownIdentifierError struct {
	Kind string
	ID   string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown %s identifier: %q", e.Kind, e.ID)
}

// Catalog is a read-only snapshot of base products, mixers, and effects.
type Catalog struct {
	products map[string]mixing.BaseProduct
	mixers   map[string]mixing.Mixer
	effects  map[string]mixing.Effect

	productIDs []string
	mixerIDs   []string
	effectIDs  []string
}

// New builds a snapshot from the given records and validates every
// cross-reference. Record order does not matter; enumeration is always by
// sorted identifier.
func New(products []mixing.BaseProduct, mixers []mixing.Mixer, effects []mixing.Effect) (*Catalog, error) {
	c := &Catalog{
		products: make(map[string]mixing.BaseProduct, len(products)),
		mixers:   make(map[string]mixing.Mixer, len(mixers)),
		effects:  make(map[string]mixing.Effect, len(effects)),
	}

	for _, e := range effects {
		if e.ID == "" {
			return nil, fmt.Errorf("effect %q has empty id", e.Name)
		}
		if _, dup := c.effects[e.ID]; dup {
			return nil, fmt.Errorf("duplicate effect id %q", e.ID)
		}
		c.effects[e.ID] = e
		c.effectIDs = append(c.effectIDs, e.ID)
	}

	for _, m := range mixers {
		if m.ID == "" {
			return nil, fmt.Errorf("mixer %q has empty id", m.Name)
		}
		if _, dup := c.mixers[m.ID]; dup {
			return nil, fmt.Errorf("duplicate mixer id %q", m.ID)
		}
		if !m.OnConflict.IsValid() {
			return nil, fmt.Errorf("mixer %q: invalid conflict policy %q", m.ID, m.OnConflict)
		}
		if _, ok := c.effects[m.EffectID]; !ok {
			return nil, fmt.Errorf("mixer %q: %w", m.ID, &UnknownIdentifierError{Kind: "effect", ID: m.EffectID})
		}
		for _, blocked := range m.BlockedBy {
			if _, ok := c.effects[blocked]; !ok {
				return nil, fmt.Errorf("mixer %q blocklist: %w", m.ID, &UnknownIdentifierError{Kind: "effect", ID: blocked})
			}
		}
		for _, r := range m.Reactions {
			if _, ok := c.effects[r.WhenPresent]; !ok {
				return nil, fmt.Errorf("mixer %q reaction: %w", m.ID, &UnknownIdentifierError{Kind: "effect", ID: r.WhenPresent})
			}
			if _, ok := c.effects[r.Produces]; !ok {
				return nil, fmt.Errorf("mixer %q reaction: %w", m.ID, &UnknownIdentifierError{Kind: "effect", ID: r.Produces})
			}
		}
		c.mixers[m.ID] = m
		c.mixerIDs = append(c.mixerIDs, m.ID)
	}

	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has empty id", p.Name)
		}
		if _, dup := c.products[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		for _, eff := range p.StartingEffects {
			if _, ok := c.effects[eff]; !ok {
				return nil, fmt.Errorf("product %q: %w", p.ID, &UnknownIdentifierError{Kind: "effect", ID: eff})
			}
		}
		c.products[p.ID] = p
		c.productIDs = append(c.productIDs, p.ID)
	}

	sort.Strings(c.productIDs)
	sort.Strings(c.mixerIDs)
	sort.Strings(c.effectIDs)

	return c, nil
}

// Product returns the base product with the given id.
func (c *Catalog) Product(id string) (mixing.BaseProduct, error) {
	p, ok := c.products[id]
	if !ok {
		return mixing.BaseProduct{}, &UnknownIdentifierError{Kind: "product", ID: id}
	}
	return p, nil
}

// Mixer returns the mixer with the given id.
func (c *Catalog) Mixer(id string) (mixing.Mixer, error) {
	m, ok := c.mixers[id]
	if !ok {
		return mixing.Mixer{}, &UnknownIdentifierError{Kind: "mixer", ID: id}
	}
	return m, nil
}

// Effect returns the effect with the given id.
func (c *Catalog) Effect(id string) (mixing.Effect, error) {
	e, ok := c.effects[id]
	if !ok {
		return mixing.Effect{}, &UnknownIdentifierError{Kind: "effect", ID: id}
	}
	return e, nil
}

// Products enumerates all base products ordered by id.
func (c *Catalog) Products() []mixing.BaseProduct {
	out := make([]mixing.BaseProduct, 0, len(c.productIDs))
	for _, id := range c.productIDs {
		out = append(out, c.products[id])
	}
	return out
}

// Mixers enumerates all mixers ordered by id.
func (c *Catalog) Mixers() []mixing.Mixer {
	out := make([]mixing.Mixer, 0, len(c.mixerIDs))
	for _, id := range c.mixerIDs {
		out = append(out, c.mixers[id])
	}
	return out
}

// Effects enumerates all effects ordered by id.
func (c *Catalog) Effects() []mixing.Effect {
	out := make([]mixing.Effect, 0, len(c.effectIDs))
	for _, id := range c.effectIDs {
		out = append(out, c.effects[id])
	}
	return out
}

// MixerIDs returns all mixer ids in sorted order. The search engine relies
// on this ordering for reproducible enumeration.
func (c *Catalog) MixerIDs() []string {
	out := make([]string, len(c.mixerIDs))
	copy(out, c.mixerIDs)
	return out
}

// Counts returns the number of products, mixers, and effects.
func (c *Catalog) Counts() (products, mixers, effects int) {
	return len(c.products), len(c.mixers), len(c.effects)
}
