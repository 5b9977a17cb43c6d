// Package upgrades prices and applies weapon and armor upgrades.
package upgrades

import "fmt"

// Target is the equipment slot being upgraded.
type Target string

const (
	Weapon Target = "weapon"
	Armor  Target = "armor"
)

// MaxLevel is the highest upgrade level.
const MaxLevel = 5

// Material is the item consumed by every upgrade.
const Material = "key_anchor_dust"

// Workshop is the session surface upgrades read and charge.
type Workshop interface {
	Cinders() int
	SpendCinders(amount int) bool
	CountItem(itemID string) int
	RemoveItem(itemID string, amount int) int
	UpgradeLevel(t Target) int
	SetUpgradeLevel(t Target, level int)
}

// Cost is the price of reaching a level.
type Cost struct {
	Cinders    int
	AnchorDust int
}

// Attempt is the outcome of Try.
type Attempt struct {
	OK        bool
	Target    Target
	NextLevel int
	Spent     Cost
	Reason    string
}

// CostFor returns the price of raising t to nextLevel.
func CostFor(t Target, nextLevel int) Cost {
	base := 40
	if t == Weapon {
		base = 48
	}
	return Cost{
		Cinders:    base + nextLevel*nextLevel*18,
		AnchorDust: max(1, nextLevel),
	}
}

// AttackBonus is the flat attack granted by a weapon level.
func AttackBonus(level int) int { return level * 3 }

// DefenseBonus is the flat defense granted by an armor level.
func DefenseBonus(level int) int { return level * 2 }

// Try raises t by one level if w can pay for it.
func Try(t Target, w Workshop) Attempt {
	current := w.UpgradeLevel(t)
	if current >= MaxLevel {
		return Attempt{Target: t, NextLevel: current, Reason: fmt.Sprintf("%s is already +%d.", t, MaxLevel)}
	}

	next := current + 1
	cost := CostFor(t, next)
	switch {
	case w.Cinders() < cost.Cinders:
		return Attempt{Target: t, NextLevel: next, Reason: "Not enough cinders."}
	case w.CountItem(Material) < cost.AnchorDust:
		return Attempt{Target: t, NextLevel: next, Reason: "Not enough Anchor Dust."}
	}

	w.SpendCinders(cost.Cinders)
	w.RemoveItem(Material, cost.AnchorDust)
	w.SetUpgradeLevel(t, next)
	return Attempt{OK: true, Target: t, NextLevel: next, Spent: cost}
}
