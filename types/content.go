package types

// ItemDef is a static item record.
type ItemDef struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Icon           string          `json:"icon"`
	Type           string          `json:"type"`
	Rarity         string          `json:"rarity"`
	StackSize      int             `json:"stackSize"`
	Value          int             `json:"value"`
	StatsModifiers *StatsModifiers `json:"statsModifiers,omitempty"`
	Tags           []string        `json:"tags"`
	UseEffect      *UseEffect      `json:"useEffect,omitempty"`
}

// StatsModifiers are flat bonuses granted by gear.
type StatsModifiers struct {
	Attack    int     `json:"attack,omitempty"`
	Defense   int     `json:"defense,omitempty"`
	Crit      float64 `json:"crit,omitempty"`
	MoveSpeed float64 `json:"moveSpeed,omitempty"`
}

// UseEffect describes what a consumable does when used.
type UseEffect struct {
	Heal            int     `json:"heal,omitempty"`
	Stamina         int     `json:"stamina,omitempty"`
	BuffID          string  `json:"buffId,omitempty"`
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
}

// EnemyDef is a static enemy record.
type EnemyDef struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	HP          int             `json:"hp"`
	Attack      int             `json:"attack"`
	Defense     int             `json:"defense"`
	Speed       float64         `json:"speed"`
	LootTableID string          `json:"lootTableId"`
	AIProfileID string          `json:"aiProfileId"`
	Animations  EnemyAnimations `json:"animations"`
	Hitbox      Hitbox          `json:"hitbox"`
}

// EnemyAnimations names the sprite animation keys of an enemy.
type EnemyAnimations struct {
	Idle   string `json:"idle"`
	Walk   string `json:"walk"`
	Attack string `json:"attack"`
	Hurt   string `json:"hurt"`
	Death  string `json:"death"`
}

// Hitbox is an enemy collision box relative to its sprite.
type Hitbox struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// LootTableDef is a list of independent drop rolls.
type LootTableDef struct {
	ID      string      `json:"id"`
	Entries []LootEntry `json:"entries"`
}

// LootEntry drops between MinAmount and MaxAmount of ItemID with the given chance.
type LootEntry struct {
	ItemID    string  `json:"itemId"`
	Chance    float64 `json:"chance"`
	MinAmount int     `json:"minAmount"`
	MaxAmount int     `json:"maxAmount"`
}

// QuestDef is a static quest record.
type QuestDef struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Category      string              `json:"category"`
	Prerequisites *QuestPrerequisites `json:"prerequisites,omitempty"`
	Objectives    []QuestObjective    `json:"objectives"`
	Rewards       QuestRewards        `json:"rewards"`
	OnComplete    *QuestCompletion    `json:"onComplete,omitempty"`
}

// QuestPrerequisites gate a quest's transition out of locked.
type QuestPrerequisites struct {
	Flags  []FlagRequirement `json:"flags"`
	Quests []string          `json:"quests"`
}

// FlagRequirement requires a boolean flag to equal Equals.
type FlagRequirement struct {
	ID     string `json:"id"`
	Equals bool   `json:"equals"`
}

// QuestObjective is a measurable sub-goal keyed by gameplay event type.
type QuestObjective struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	TargetID string `json:"targetId"`
	Required int    `json:"required"`
}

// QuestRewards are granted once when a quest completes.
type QuestRewards struct {
	Items      []ItemAmount       `json:"items"`
	Cinders    int                `json:"cinders"`
	XP         int                `json:"xp"`
	Reputation []ReputationReward `json:"reputation"`
}

// ItemAmount is an item id with a count.
type ItemAmount struct {
	ItemID string `json:"itemId"`
	Amount int    `json:"amount"`
}

// ReputationReward changes a faction standing.
type ReputationReward struct {
	FactionID string `json:"factionId"`
	Amount    int    `json:"amount"`
}

// QuestCompletion lists world changes applied when a quest completes.
type QuestCompletion struct {
	SetFlags      []FlagSetting `json:"setFlags"`
	UnlockRegions []string      `json:"unlockRegions"`
}

// FlagSetting writes a boolean flag.
type FlagSetting struct {
	ID    string `json:"id"`
	Value bool   `json:"value"`
}

// PerkDef is one node of the perk tree. Effects are per-rank amounts.
type PerkDef struct {
	ID          string             `json:"id"`
	Branch      string             `json:"branch"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	MaxRank     int                `json:"maxRank"`
	Effects     map[string]float64 `json:"effects"`
}

// RecipeDef is a crafting recipe.
type RecipeDef struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Station     string       `json:"station"`
	Output      RecipeOutput `json:"output"`
	Cost        []ItemAmount `json:"cost"`
	CindersCost int          `json:"cindersCost"`
}

// RecipeOutput is the stack a recipe produces.
type RecipeOutput struct {
	ItemID   string   `json:"itemId"`
	Amount   int      `json:"amount"`
	MaxStack int      `json:"maxStack"`
	Tags     []string `json:"tags"`
}

// RegionDef is a world map region.
type RegionDef struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Biome            string   `json:"biome"`
	RecommendedLevel int      `json:"recommendedLevel"`
	Neighbors        []string `json:"neighbors"`
	SignaturePuzzle  string   `json:"signaturePuzzle"`
}
