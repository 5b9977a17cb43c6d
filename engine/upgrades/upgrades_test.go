package upgrades

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bench struct {
	cinders int
	dust    int
	levels  map[Target]int
}

func (b *bench) Cinders() int                    { return b.cinders }
func (b *bench) CountItem(string) int            { return b.dust }
func (b *bench) UpgradeLevel(t Target) int       { return b.levels[t] }
func (b *bench) SetUpgradeLevel(t Target, n int) { b.levels[t] = n }

func (b *bench) SpendCinders(n int) bool {
	if n > b.cinders {
		return false
	}
	b.cinders -= n
	return true
}

func (b *bench) RemoveItem(_ string, n int) int {
	n = min(n, b.dust)
	b.dust -= n
	return n
}

func TestCostFor(t *testing.T) {
	assert.Equal(t, Cost{Cinders: 66, AnchorDust: 1}, CostFor(Weapon, 1))
	assert.Equal(t, Cost{Cinders: 112, AnchorDust: 2}, CostFor(Armor, 2))
	assert.Equal(t, Cost{Cinders: 498, AnchorDust: 5}, CostFor(Weapon, 5))
}

func TestTry_Upgrades(t *testing.T) {
	b := &bench{cinders: 500, dust: 20, levels: map[Target]int{}}

	res := Try(Weapon, b)
	require.True(t, res.OK, res.Reason)
	assert.Equal(t, 1, b.levels[Weapon])
	assert.Equal(t, 434, b.cinders)
	assert.Equal(t, 19, b.dust)
	assert.Equal(t, Cost{Cinders: 66, AnchorDust: 1}, res.Spent)
	assert.Greater(t, AttackBonus(b.levels[Weapon]), AttackBonus(0))
}

func TestTry_Blocked(t *testing.T) {
	b := &bench{cinders: 500, levels: map[Target]int{}}
	res := Try(Armor, b)
	assert.False(t, res.OK)
	assert.Contains(t, res.Reason, "Anchor Dust")
	assert.Equal(t, 500, b.cinders)

	b = &bench{cinders: 10, dust: 5, levels: map[Target]int{}}
	assert.Equal(t, "Not enough cinders.", Try(Weapon, b).Reason)

	b = &bench{cinders: 5000, dust: 50, levels: map[Target]int{Weapon: MaxLevel}}
	res = Try(Weapon, b)
	assert.False(t, res.OK)
	assert.Equal(t, "weapon is already +5.", res.Reason)
}

func TestBonuses(t *testing.T) {
	assert.Equal(t, 9, AttackBonus(3))
	assert.Equal(t, 6, DefenseBonus(3))
}
