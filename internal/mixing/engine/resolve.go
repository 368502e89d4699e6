package engine

import (
	"github.com/s1tools/mixing-server/internal/mixing/catalog"
	"github.com/s1tools/mixing-server/pkg/mixing"
)

// MaxEffects is the game cap on active effects per product. Appends beyond
// the cap are no-ops; replacements and reactions still apply.
const MaxEffects = 8

// ResolveEffects applies an ordered mixer sequence to a product's starting
// effects and returns the resulting effect IDs in acquisition order. The
// function is total and pure: every step either changes the set per the
// mixer's rules or leaves it unchanged.
func ResolveEffects(cat *catalog.Catalog, product mixing.BaseProduct, sequence []mixing.Mixer) []string {
	set := newEffectSet(cat)
	for _, id := range product.StartingEffects {
		set.add(id)
	}
	for _, m := range sequence {
		set.apply(m)
	}
	return set.ids
}

// effectSet is an ordered effect collection that maintains the exclusion
// invariant: no two members share a non-empty exclusion group.
type effectSet struct {
	cat     *catalog.Catalog
	ids     []string
	present map[string]bool
}

func newEffectSet(cat *catalog.Catalog) *effectSet {
	return &effectSet{cat: cat, present: make(map[string]bool, MaxEffects)}
}

// effect returns the record for an id. Snapshot validation guarantees every
// id reachable here exists.
func (s *effectSet) effect(id string) mixing.Effect {
	e, _ := s.cat.Effect(id)
	return e
}

func (s *effectSet) has(id string) bool {
	return s.present[id]
}

// groupIndex returns the position of the member of the given non-empty
// exclusion group, or -1.
func (s *effectSet) groupIndex(group string) int {
	if group == "" {
		return -1
	}
	for i, id := range s.ids {
		if s.effect(id).ExclusionGroup == group {
			return i
		}
	}
	return -1
}

func (s *effectSet) removeAt(i int) {
	delete(s.present, s.ids[i])
	s.ids = append(s.ids[:i], s.ids[i+1:]...)
}

// add appends an effect if it is new, its group is unoccupied, and there is
// room. Used for starting effects and default mixer effects.
func (s *effectSet) add(id string) {
	if s.has(id) || len(s.ids) >= MaxEffects {
		return
	}
	if s.groupIndex(s.effect(id).ExclusionGroup) >= 0 {
		return
	}
	s.ids = append(s.ids, id)
	s.present[id] = true
}

// replaceAt swaps the effect at position i for newID, keeping the set
// duplicate-free and the exclusion invariant intact.
func (s *effectSet) replaceAt(i int, newID string) {
	if s.has(newID) {
		// Already present elsewhere; the old effect just goes away.
		s.removeAt(i)
		return
	}
	old := s.ids[i]
	delete(s.present, old)
	s.ids[i] = newID
	s.present[newID] = true
	// The replacement may belong to a group another member occupies.
	if g := s.effect(newID).ExclusionGroup; g != "" {
		for j, id := range s.ids {
			if j != i && s.effect(id).ExclusionGroup == g {
				s.removeAt(j)
				break
			}
		}
	}
}

// apply interprets one mixer's rules against the current set.
func (s *effectSet) apply(m mixing.Mixer) {
	for _, blocked := range m.BlockedBy {
		if s.has(blocked) {
			return
		}
	}

	// A reaction converts a present effect in place; at most one fires.
	for _, r := range m.Reactions {
		if s.has(r.WhenPresent) {
			for i, id := range s.ids {
				if id == r.WhenPresent {
					s.replaceAt(i, r.Produces)
					return
				}
			}
		}
	}

	if s.has(m.EffectID) {
		// Idempotent re-application.
		return
	}

	if i := s.groupIndex(s.effect(m.EffectID).ExclusionGroup); i >= 0 {
		if m.OnConflict == mixing.ConflictReplace {
			s.replaceAt(i, m.EffectID)
		}
		return
	}

	s.add(m.EffectID)
}
