package types

import "github.com/google/uuid"

// PlayerStats are the warden's core attributes.
type PlayerStats struct {
	Level      int     `json:"level"`
	XP         int     `json:"xp"`
	XPToNext   int     `json:"xpToNext"`
	HP         float64 `json:"hp"`
	MaxHP      float64 `json:"maxHp"`
	Stamina    float64 `json:"stamina"`
	MaxStamina float64 `json:"maxStamina"`
	Attack     int     `json:"attack"`
	Defense    int     `json:"defense"`
	Crit       float64 `json:"crit"`
	MoveSpeed  float64 `json:"moveSpeed"`
}

// Equipment is what the warden has equipped. Empty strings are empty slots.
type Equipment struct {
	Weapon     string    `json:"weapon"`
	Offhand    string    `json:"offhand"`
	Armor      string    `json:"armor"`
	Trinkets   [2]string `json:"trinkets"`
	WeaponMode string    `json:"weaponMode"`
}

// ItemStack is one occupied inventory slot.
type ItemStack struct {
	ItemID   string   `json:"itemId"`
	Amount   int      `json:"amount"`
	MaxStack int      `json:"maxStack"`
	Tags     []string `json:"tags"`
}

// InventoryState is the serialized inventory grid. Nil slots are empty and
// nil quickbar entries are unassigned.
type InventoryState struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Slots    []*ItemStack `json:"slots"`
	Quickbar []*int       `json:"quickbar"`
}

// PerkState holds unspent points and per-perk ranks.
type PerkState struct {
	Points int            `json:"points"`
	Ranks  map[string]int `json:"ranks"`
}

// RegionState tracks which regions can be travelled to and which were visited.
type RegionState struct {
	Unlocked   []string `json:"unlocked"`
	Discovered []string `json:"discovered"`
}

// UpgradeState holds equipment upgrade levels.
type UpgradeState struct {
	Weapon int `json:"weapon"`
	Armor  int `json:"armor"`
}

// ShopState is the persisted stock of the foundry market.
type ShopState struct {
	StockByListingID map[string]int `json:"stockByListingId"`
	RestockProgress  float64        `json:"restockProgress"`
}

// RNGState reproduces the session random source after a load.
type RNGState struct {
	Seed     int64 `json:"seed"`
	Position int64 `json:"position"`
}

// SessionSnapshot is the complete serializable session state.
type SessionSnapshot struct {
	ID          uuid.UUID      `json:"id"`
	Player      PlayerStats    `json:"player"`
	Cinders     int            `json:"cinders"`
	Equipment   Equipment      `json:"equipment"`
	Inventory   InventoryState `json:"inventory"`
	Quests      QuestState     `json:"quests"`
	WorldFlags  map[string]any `json:"worldFlags"`
	Reputations map[string]int `json:"reputations"`
	Perks       PerkState      `json:"perks"`
	Regions     RegionState    `json:"regions"`
	Upgrades    UpgradeState   `json:"upgrades"`
	Shop        ShopState      `json:"shop"`
	RNG         RNGState       `json:"rng"`
	EventLog    []string       `json:"eventLog"`
	Timestamp   string         `json:"timestamp"`
}
