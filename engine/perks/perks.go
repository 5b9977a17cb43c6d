// Package perks implements the rank-based perk tree.
package perks

import (
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/nathoo/ashaether/types"
)

var (
	ErrUnknownPerk = errors.New("perk is not defined")
	ErrNoPoints    = errors.New("not enough perk points")
	ErrMaxRank     = errors.New("perk is already max rank")
)

// Tree tracks unspent perk points and the rank of each perk.
type Tree struct {
	defs   map[string]types.PerkDef
	order  []string
	ranks  map[string]int
	points int
}

// New creates a tree over defs, restoring st.
func New(defs []types.PerkDef, st types.PerkState) *Tree {
	t := &Tree{
		defs:   make(map[string]types.PerkDef, len(defs)),
		ranks:  make(map[string]int),
		points: max(st.Points, 0),
	}
	for _, d := range defs {
		if _, ok := t.defs[d.ID]; !ok {
			t.order = append(t.order, d.ID)
		}
		t.defs[d.ID] = d
	}
	maps.Copy(t.ranks, st.Ranks)
	return t
}

// SetPoints replaces the unspent point count. Negative values become zero.
func (t *Tree) SetPoints(points float64) {
	t.points = int(math.Max(0, math.Floor(points)))
}

// AddPoints grants points. Negative grants are ignored.
func (t *Tree) AddPoints(points float64) {
	t.points += int(math.Max(0, math.Floor(points)))
}

// Points returns the unspent point count.
func (t *Tree) Points() int { return t.points }

// Rank returns the current rank of a perk, zero if never unlocked.
func (t *Tree) Rank(id string) int { return t.ranks[id] }

// Definition looks up a perk.
func (t *Tree) Definition(id string) (types.PerkDef, bool) {
	d, ok := t.defs[id]
	return d, ok
}

// Definitions returns every perk in registration order.
func (t *Tree) Definitions() []types.PerkDef {
	out := make([]types.PerkDef, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.defs[id])
	}
	return out
}

// Effects sums every perk effect multiplied by its rank.
func (t *Tree) Effects() map[string]float64 {
	out := make(map[string]float64)
	for _, id := range t.order {
		rank := t.ranks[id]
		if rank <= 0 {
			continue
		}
		for effect, perRank := range t.defs[id].Effects {
			out[effect] += perRank * float64(rank)
		}
	}
	return out
}

// Unlock spends one point to raise a perk by one rank.
func (t *Tree) Unlock(id string) error {
	def, ok := t.defs[id]
	if !ok {
		return fmt.Errorf("perk %s: %w", id, ErrUnknownPerk)
	}
	if t.points <= 0 {
		return ErrNoPoints
	}
	rank := t.ranks[id]
	if rank >= def.MaxRank {
		return fmt.Errorf("perk %s: %w", id, ErrMaxRank)
	}
	t.ranks[id] = rank + 1
	t.points--
	return nil
}

// State returns the serialized tree.
func (t *Tree) State() types.PerkState {
	return types.PerkState{Points: t.points, Ranks: maps.Clone(t.ranks)}
}
