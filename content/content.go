// Package content defines the static game data bundle, validates it
// structurally and by cross-reference, and decodes it into typed records.
// Validation collects every error and has no side effects.
package content

import (
	"fmt"
	"strings"

	"github.com/nathoo/ashaether/types"
)

// Bundle is raw, untyped content: one array per category.
type Bundle struct {
	Items      []any `yaml:"items" json:"items"`
	Enemies    []any `yaml:"enemies" json:"enemies"`
	LootTables []any `yaml:"lootTables" json:"lootTables"`
	Quests     []any `yaml:"quests" json:"quests"`
	Dialogues  []any `yaml:"dialogues" json:"dialogues"`
	Perks      []any `yaml:"perks" json:"perks"`
	Recipes    []any `yaml:"recipes" json:"recipes"`
	Regions    []any `yaml:"regions" json:"regions"`
}

// Merge appends every category of other to b.
func (b *Bundle) Merge(other Bundle) {
	b.Items = append(b.Items, other.Items...)
	b.Enemies = append(b.Enemies, other.Enemies...)
	b.LootTables = append(b.LootTables, other.LootTables...)
	b.Quests = append(b.Quests, other.Quests...)
	b.Dialogues = append(b.Dialogues, other.Dialogues...)
	b.Perks = append(b.Perks, other.Perks...)
	b.Recipes = append(b.Recipes, other.Recipes...)
	b.Regions = append(b.Regions, other.Regions...)
}

// Parsed is a validated, typed bundle. It is read-only once returned.
type Parsed struct {
	Items      []types.ItemDef
	Enemies    []types.EnemyDef
	LootTables []types.LootTableDef
	Quests     []types.QuestDef
	Dialogues  []types.Conversation
	Perks      []types.PerkDef
	Recipes    []types.RecipeDef
	Regions    []types.RegionDef
}

// Result is the outcome of Validate. OK is true iff Errors is empty, and
// Parsed is nil whenever any category failed its schema.
type Result struct {
	OK     bool
	Errors []string
	Parsed *Parsed
}

// ValidationError wraps the errors of a failed Result.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("content validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &ValidationError{Errors: r.Errors}
}

// Item looks up an item definition.
func (p *Parsed) Item(id string) (types.ItemDef, bool) {
	return find(p.Items, func(d types.ItemDef) bool { return d.ID == id })
}

// Enemy looks up an enemy definition.
func (p *Parsed) Enemy(id string) (types.EnemyDef, bool) {
	return find(p.Enemies, func(d types.EnemyDef) bool { return d.ID == id })
}

// Quest looks up a quest definition.
func (p *Parsed) Quest(id string) (types.QuestDef, bool) {
	return find(p.Quests, func(d types.QuestDef) bool { return d.ID == id })
}

// Dialogue looks up a conversation.
func (p *Parsed) Dialogue(id string) (types.Conversation, bool) {
	return find(p.Dialogues, func(d types.Conversation) bool { return d.ID == id })
}

// Region looks up a region definition.
func (p *Parsed) Region(id string) (types.RegionDef, bool) {
	return find(p.Regions, func(d types.RegionDef) bool { return d.ID == id })
}

func find[T any](defs []T, match func(T) bool) (T, bool) {
	for _, d := range defs {
		if match(d) {
			return d, true
		}
	}
	var zero T
	return zero, false
}
