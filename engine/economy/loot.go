// Package economy implements loot drops and the foundry market.
package economy

import (
	"math"

	"github.com/nathoo/ashaether/types"
)

// Source yields uniform values in [0, 1). *engine.RNG satisfies it.
type Source interface {
	Float64() float64
}

// Drop is one rolled loot entry.
type Drop struct {
	ItemID string
	Amount int
}

// Loot rolls drops from registered loot tables.
type Loot struct {
	tables map[string]types.LootTableDef
}

// NewLoot indexes tables by id.
func NewLoot(tables []types.LootTableDef) *Loot {
	l := &Loot{tables: make(map[string]types.LootTableDef, len(tables))}
	for _, t := range tables {
		l.tables[t.ID] = t
	}
	return l
}

// Roll makes one chance roll per entry and an amount roll for each hit.
// An unknown table drops nothing.
func (l *Loot) Roll(tableID string, src Source) []Drop {
	table, ok := l.tables[tableID]
	if !ok {
		return nil
	}

	var drops []Drop
	for _, e := range table.Entries {
		if src.Float64() > e.Chance {
			continue
		}
		drops = append(drops, Drop{ItemID: e.ItemID, Amount: rollAmount(e.MinAmount, e.MaxAmount, src)})
	}
	return drops
}

func rollAmount(lo, hi int, src Source) int {
	if lo >= hi {
		return lo
	}
	span := hi - lo + 1
	return lo + int(math.Floor(src.Float64()*float64(span)))
}
