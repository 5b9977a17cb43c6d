package engine

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/ashaether/types"
)

// NoObjectivesHint is the quest hint when nothing is active or available.
const NoObjectivesHint = "No active objectives. Explore Cinderhaven for leads."

// HUD is the heads-up display view model.
type HUD struct {
	HP         int
	MaxHP      int
	Stamina    int
	MaxStamina int
	Level      int
	XP         int
	XPToNext   int
	Cinders    int
	WeaponMode string
	QuestHint  string
	Events     []string
	Quickbar   []string
}

// ObjectiveEntry is one objective line of the quest journal.
type ObjectiveEntry struct {
	ID          string
	Description string
	Progress    int
	Required    int
}

// QuestEntry is one quest of the journal.
type QuestEntry struct {
	ID         string
	Title      string
	Status     types.QuestStatus
	Objectives []ObjectiveEntry
}

// InventoryEntry is one slot of the inventory grid. Empty slots have an
// empty ItemID.
type InventoryEntry struct {
	Index  int
	ItemID string
	Name   string
	Amount int
	Tags   []string
}

// RegionEntry is one region of the world map.
type RegionEntry struct {
	ID               string
	Name             string
	RecommendedLevel int
	Unlocked         bool
	Discovered       bool
}

// HUD builds the heads-up display.
func (s *Session) HUD() HUD {
	return HUD{
		HP:         int(math.Round(s.stats.HP)),
		MaxHP:      int(s.stats.MaxHP),
		Stamina:    int(math.Round(s.stats.Stamina)),
		MaxStamina: int(s.stats.MaxStamina),
		Level:      s.stats.Level,
		XP:         s.stats.XP,
		XPToNext:   s.stats.XPToNext,
		Cinders:    s.cinders,
		WeaponMode: s.equipment.WeaponMode,
		QuestHint:  s.QuestHint(),
		Events:     s.Events(),
		Quickbar:   s.quickbarLabels(),
	}
}

func (s *Session) quickbarLabels() []string {
	bar := s.inventory.Quickbar()
	labels := make([]string, len(bar))
	for i, slot := range bar {
		labels[i] = fmt.Sprintf("%d: --", i+1)
		if slot < 0 {
			continue
		}
		if st := s.inventory.Slot(slot); st != nil {
			labels[i] = fmt.Sprintf("%d: %s x%d", i+1, s.itemName(st.ItemID), st.Amount)
		}
	}
	return labels
}

// QuestEntries lists every quest of the content in content order.
func (s *Session) QuestEntries() []QuestEntry {
	entries := make([]QuestEntry, 0, len(s.questOrder))
	for _, qid := range s.questOrder {
		inst, ok := s.quests.Quest(qid)
		if !ok {
			continue
		}
		def := s.questDefs[qid]
		e := QuestEntry{ID: qid, Title: def.Title, Status: inst.Status}
		for i, o := range inst.Objectives {
			desc := o.ID
			if i < len(def.Objectives) {
				desc = s.objectiveLabel(def.Objectives[i])
			}
			e.Objectives = append(e.Objectives, ObjectiveEntry{
				ID:          o.ID,
				Description: desc,
				Progress:    o.Progress,
				Required:    o.Required,
			})
		}
		entries = append(entries, e)
	}
	return entries
}

// QuestHint summarizes the first unfinished objective of the first active
// quest, or of the first available quest when none is active.
func (s *Session) QuestHint() string {
	entries := s.QuestEntries()
	idx := slices.IndexFunc(entries, func(e QuestEntry) bool { return e.Status == types.QuestActive })
	if idx < 0 {
		idx = slices.IndexFunc(entries, func(e QuestEntry) bool { return e.Status == types.QuestAvailable })
	}
	if idx < 0 || len(entries[idx].Objectives) == 0 {
		return NoObjectivesHint
	}

	q := entries[idx]
	obj := q.Objectives[0]
	if i := slices.IndexFunc(q.Objectives, func(o ObjectiveEntry) bool { return o.Progress < o.Required }); i >= 0 {
		obj = q.Objectives[i]
	}
	return fmt.Sprintf("%s: %s (%d/%d)", q.Title, obj.Description, obj.Progress, obj.Required)
}

// InventoryEntries lists every inventory slot in grid order.
func (s *Session) InventoryEntries() []InventoryEntry {
	entries := make([]InventoryEntry, s.inventory.Capacity())
	for i := range entries {
		entries[i] = InventoryEntry{Index: i, Tags: []string{}}
		if st := s.inventory.Slot(i); st != nil {
			entries[i].ItemID = st.ItemID
			entries[i].Name = s.itemName(st.ItemID)
			entries[i].Amount = st.Amount
			entries[i].Tags = st.Tags
		}
	}
	return entries
}

// RegionEntries lists every region of the content.
func (s *Session) RegionEntries() []RegionEntry {
	entries := make([]RegionEntry, 0, len(s.content.Regions))
	for _, r := range s.content.Regions {
		entries = append(entries, RegionEntry{
			ID:               r.ID,
			Name:             r.Name,
			RecommendedLevel: r.RecommendedLevel,
			Unlocked:         slices.Contains(s.regions.Unlocked, r.ID),
			Discovered:       slices.Contains(s.regions.Discovered, r.ID),
		})
	}
	return entries
}

func (s *Session) objectiveLabel(o types.QuestObjective) string {
	return titleize(o.Type) + ": " + s.targetName(o.TargetID)
}

func (s *Session) targetName(id string) string {
	if it, ok := s.items[id]; ok {
		return it.Name
	}
	if e, ok := s.enemies[id]; ok {
		return e.Name
	}
	if r, ok := s.regionDefs[id]; ok {
		return r.Name
	}
	return s.speakerName(id)
}

func (s *Session) itemName(id string) string {
	if it, ok := s.items[id]; ok {
		return it.Name
	}
	return id
}

func (s *Session) regionName(id string) string {
	if r, ok := s.regionDefs[id]; ok {
		return r.Name
	}
	return id
}

func (s *Session) questTitle(id string) string {
	if q, ok := s.questDefs[id]; ok {
		return q.Title
	}
	return id
}

// titleize turns an id like enter_zone into "Enter Zone".
func titleize(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

func sortedKeys(m map[string]int) []string {
	return slices.Sorted(maps.Keys(m))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
