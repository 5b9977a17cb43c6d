// Package baseline holds new-game defaults. The session uses them for a
// fresh game and save migrations use them to fill fields older saves lack.
package baseline

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"

	"github.com/nathoo/ashaether/types"
)

const (
	StartingCinders = 80
	StartingRegion  = "cinderhaven"
	StartingWeapon  = "weapon_warden_blade"
	DefaultMode     = "sword"
	DeployMessage   = "Warden deployed to Cinderhaven fringe."
	FirstXPToNext   = 100

	// MaxRNGPosition bounds the draw count a restored RNG replays.
	MaxRNGPosition = 1 << 24

	// TimestampLayout formats save and snapshot timestamps.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Factions are the reputation tracks every session carries.
var Factions = []string{"archivists", "pilgrims", "foundry"}

// Player returns the level 1 warden.
func Player() types.PlayerStats {
	return types.PlayerStats{
		Level:      1,
		XP:         0,
		XPToNext:   FirstXPToNext,
		HP:         100,
		MaxHP:      100,
		Stamina:    100,
		MaxStamina: 100,
		Attack:     12,
		Defense:    6,
		Crit:       0.05,
		MoveSpeed:  145,
	}
}

// Equipment returns the starting loadout.
func Equipment() types.Equipment {
	return types.Equipment{Weapon: StartingWeapon, WeaponMode: DefaultMode}
}

// Reputations returns a zeroed standing for every faction.
func Reputations() map[string]int {
	out := make(map[string]int, len(Factions))
	for _, f := range Factions {
		out[f] = 0
	}
	return out
}

// Regions returns the starting unlocked and discovered regions.
func Regions() types.RegionState {
	return types.RegionState{
		Unlocked:   []string{StartingRegion, "gloamwood"},
		Discovered: []string{StartingRegion},
	}
}

// Perks returns an empty perk state.
func Perks() types.PerkState {
	return types.PerkState{Ranks: map[string]int{}}
}

// Shop returns a shop state that restocks every listing to its base stock.
func Shop() types.ShopState {
	return types.ShopState{StockByListingID: map[string]int{}}
}

// NextXPToNext is the experience needed for the level after one that needed
// current.
func NextXPToNext(current int) int {
	return int(math.Floor(float64(current)*1.2 + 15))
}

// XPToNext returns the experience a warden of the given level needs to level
// up, following the level-up curve from level 1.
func XPToNext(level int) int {
	xp := FirstXPToNext
	for l := 1; l < level; l++ {
		xp = NextXPToNext(xp)
	}
	return xp
}

// StartingItem is one entry of the starting inventory.
type StartingItem struct {
	ItemID   string
	Amount   int
	Quickbar int // -1 when not bound
}

// StartingInventory is seeded into a fresh game in order.
var StartingInventory = []StartingItem{
	{ItemID: "consumable_heal_small", Amount: 4, Quickbar: 0},
	{ItemID: "material_cloudleaf", Amount: 6, Quickbar: 2},
	{ItemID: "material_iron_ore", Amount: 8, Quickbar: 1},
	{ItemID: "key_anchor_dust", Amount: 1, Quickbar: -1},
}

// SeedFor derives a non-negative RNG seed from a session id.
func SeedFor(id uuid.UUID) int64 {
	return int64(binary.BigEndian.Uint64(id[:8]) >> 1)
}
