package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/ashaether/types"
)

// sequence replays fixed values, repeating the last one.
type sequence struct {
	values []float64
	i      int
}

func (s *sequence) Float64() float64 {
	v := s.values[min(s.i, len(s.values)-1)]
	s.i++
	return v
}

func TestLoot_DeterministicRoll(t *testing.T) {
	loot := NewLoot([]types.LootTableDef{{
		ID: "loot_test",
		Entries: []types.LootEntry{
			{ItemID: "material_iron_ore", Chance: 0.6, MinAmount: 1, MaxAmount: 3},
			{ItemID: "key_anchor_dust", Chance: 0.2, MinAmount: 1, MaxAmount: 1},
		},
	}})

	drops := loot.Roll("loot_test", &sequence{values: []float64{0.4, 0.8, 0.7}})

	assert.Equal(t, []Drop{{ItemID: "material_iron_ore", Amount: 3}}, drops)
}

func TestLoot_ChanceBoundaryHits(t *testing.T) {
	loot := NewLoot([]types.LootTableDef{{
		ID:      "t",
		Entries: []types.LootEntry{{ItemID: "a", Chance: 0.5, MinAmount: 2, MaxAmount: 2}},
	}})

	drops := loot.Roll("t", &sequence{values: []float64{0.5}})
	assert.Equal(t, []Drop{{ItemID: "a", Amount: 2}}, drops)
}

func TestLoot_UnknownTable(t *testing.T) {
	loot := NewLoot(nil)
	assert.Empty(t, loot.Roll("missing_table", &sequence{values: []float64{0}}))
}
