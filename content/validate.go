package content

import (
	"fmt"
	"strings"

	"github.com/nathoo/ashaether/types"
)

// Validate checks every record against its category schema and, when all
// categories parse, checks ids and references across categories. It never
// stops at the first error.
func Validate(b Bundle) Result {
	var errs []string

	items := parseCategory[types.ItemDef]("items", b.Items, itemSchema, &errs)
	enemies := parseCategory[types.EnemyDef]("enemies", b.Enemies, enemySchema, &errs)
	loot := parseCategory[types.LootTableDef]("lootTables", b.LootTables, lootTableSchema, &errs)
	quests := parseCategory[types.QuestDef]("quests", b.Quests, questSchema, &errs)
	dialogues := parseCategory[types.Conversation]("dialogues", b.Dialogues, dialogueSchema, &errs)
	perks := parseCategory[types.PerkDef]("perks", b.Perks, perkSchema, &errs)
	recipes := parseCategory[types.RecipeDef]("recipes", b.Recipes, recipeSchema, &errs)
	regions := parseCategory[types.RegionDef]("regions", b.Regions, regionSchema, &errs)

	if items == nil || enemies == nil || loot == nil || quests == nil ||
		dialogues == nil || perks == nil || recipes == nil || regions == nil {
		return Result{Errors: errs}
	}

	p := &Parsed{
		Items:      *items,
		Enemies:    *enemies,
		LootTables: *loot,
		Quests:     *quests,
		Dialogues:  *dialogues,
		Perks:      *perks,
		Recipes:    *recipes,
		Regions:    *regions,
	}
	errs = append(errs, crossCheck(p)...)
	return Result{OK: len(errs) == 0, Errors: errs, Parsed: p}
}

// parseCategory returns nil when any row of the category fails.
func parseCategory[T any](label string, rows []any, s schema, errs *[]string) *[]T {
	normalized := make([]any, len(rows))
	failed := false
	for i, row := range rows {
		val, issues := s.parse(row, nil)
		if len(issues) > 0 {
			*errs = append(*errs, fmt.Sprintf("%s[%d] %s", label, i, joinIssues(issues)))
			failed = true
			continue
		}
		normalized[i] = val
	}
	if failed {
		return nil
	}

	out, err := decodeAll[T](normalized)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s%v", label, err))
		return nil
	}
	return &out
}

func joinIssues(issues []issue) string {
	parts := make([]string, len(issues))
	for i, is := range issues {
		parts[i] = is.String()
	}
	return strings.Join(parts, "; ")
}

type idSet map[string]bool

func ids[T any](defs []T, id func(T) string) idSet {
	set := make(idSet, len(defs))
	for _, d := range defs {
		set[id(d)] = true
	}
	return set
}

func crossCheck(p *Parsed) []string {
	var errs []string
	addf := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	itemIDs := ids(p.Items, func(d types.ItemDef) string { return d.ID })
	lootIDs := ids(p.LootTables, func(d types.LootTableDef) string { return d.ID })
	questIDs := ids(p.Quests, func(d types.QuestDef) string { return d.ID })
	regionIDs := ids(p.Regions, func(d types.RegionDef) string { return d.ID })

	duplicates := func(label string, list []string) {
		seen := make(idSet, len(list))
		for _, id := range list {
			if seen[id] {
				addf("Duplicate id in %s: %s", label, id)
				continue
			}
			seen[id] = true
		}
	}
	duplicates("items", collect(p.Items, func(d types.ItemDef) string { return d.ID }))
	duplicates("enemies", collect(p.Enemies, func(d types.EnemyDef) string { return d.ID }))
	duplicates("lootTables", collect(p.LootTables, func(d types.LootTableDef) string { return d.ID }))
	duplicates("quests", collect(p.Quests, func(d types.QuestDef) string { return d.ID }))
	duplicates("dialogues", collect(p.Dialogues, func(d types.Conversation) string { return d.ID }))
	duplicates("perks", collect(p.Perks, func(d types.PerkDef) string { return d.ID }))
	duplicates("recipes", collect(p.Recipes, func(d types.RecipeDef) string { return d.ID }))
	duplicates("regions", collect(p.Regions, func(d types.RegionDef) string { return d.ID }))

	for _, t := range p.LootTables {
		for _, e := range t.Entries {
			if !itemIDs[e.ItemID] {
				addf("Loot table %s references unknown item %s", t.ID, e.ItemID)
			}
		}
	}

	for _, e := range p.Enemies {
		if !lootIDs[e.LootTableID] {
			addf("Enemy %s references unknown loot table %s", e.ID, e.LootTableID)
		}
	}

	for _, q := range p.Quests {
		for _, r := range q.Rewards.Items {
			if !itemIDs[r.ItemID] {
				addf("Quest %s references unknown reward item %s", q.ID, r.ItemID)
			}
		}
		if q.Prerequisites != nil {
			for _, pre := range q.Prerequisites.Quests {
				if !questIDs[pre] {
					addf("Quest %s requires unknown quest %s", q.ID, pre)
				}
			}
		}
		if q.OnComplete != nil {
			for _, r := range q.OnComplete.UnlockRegions {
				if !regionIDs[r] {
					addf("Quest %s unlocks unknown region %s", q.ID, r)
				}
			}
		}
	}

	for _, conv := range p.Dialogues {
		errs = append(errs, checkDialogueGraph(conv)...)
		for _, node := range conv.Nodes {
			where := conv.ID + "/" + node.ID
			errs = append(errs, checkDialogueRefs(where, node.Conditions, node.Effects, itemIDs, questIDs)...)
			for _, c := range node.Choices {
				errs = append(errs, checkDialogueRefs(where+"/"+c.ID, c.Conditions, c.Effects, itemIDs, questIDs)...)
			}
		}
	}

	for _, r := range p.Recipes {
		if !itemIDs[r.Output.ItemID] {
			addf("Recipe %s output item does not exist: %s", r.ID, r.Output.ItemID)
		}
		for _, c := range r.Cost {
			if !itemIDs[c.ItemID] {
				addf("Recipe %s references unknown cost item %s", r.ID, c.ItemID)
			}
		}
	}

	for _, r := range p.Regions {
		for _, n := range r.Neighbors {
			if !regionIDs[n] {
				addf("Region %s references unknown neighbor %s", r.ID, n)
			}
		}
	}

	return errs
}

func collect[T any](defs []T, id func(T) string) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = id(d)
	}
	return out
}

func checkDialogueRefs(where string, conds []types.Condition, effs []types.Effect, itemIDs, questIDs idSet) []string {
	var errs []string
	for _, c := range conds {
		if qs, ok := c.(types.QuestStatusIs); ok && !questIDs[qs.QuestID] {
			errs = append(errs, fmt.Sprintf("Dialogue %s references unknown quest %s", where, qs.QuestID))
		}
	}
	for _, e := range effs {
		switch e := e.(type) {
		case types.AddItem:
			if !itemIDs[e.ItemID] {
				errs = append(errs, fmt.Sprintf("Dialogue %s references unknown item %s", where, e.ItemID))
			}
		case types.StartQuest:
			if !questIDs[e.QuestID] {
				errs = append(errs, fmt.Sprintf("Dialogue %s references unknown quest %s", where, e.QuestID))
			}
		case types.CompleteQuest:
			if !questIDs[e.QuestID] {
				errs = append(errs, fmt.Sprintf("Dialogue %s references unknown quest %s", where, e.QuestID))
			}
		}
	}
	return errs
}

// checkDialogueGraph reports choices that target missing nodes and the first
// cycle found, searching depth first from each node in order.
func checkDialogueGraph(conv types.Conversation) []string {
	var errs []string
	nodes := make(idSet, len(conv.Nodes))
	for _, n := range conv.Nodes {
		nodes[n.ID] = true
	}

	edges := make(map[string][]string, len(conv.Nodes))
	for _, n := range conv.Nodes {
		for _, c := range n.Choices {
			if !nodes[c.NextNodeID] {
				errs = append(errs, fmt.Sprintf("Dialogue %s node %s points to missing node %s", conv.ID, n.ID, c.NextNodeID))
			}
			edges[n.ID] = append(edges[n.ID], c.NextNodeID)
		}
	}

	visited := make(idSet, len(conv.Nodes))
	onStack := make(idSet, len(conv.Nodes))
	var hasCycle func(id string) bool
	hasCycle = func(id string) bool {
		if onStack[id] {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		onStack[id] = true
		for _, next := range edges[id] {
			if hasCycle(next) {
				return true
			}
		}
		onStack[id] = false
		return false
	}

	for _, n := range conv.Nodes {
		if hasCycle(n.ID) {
			errs = append(errs, fmt.Sprintf("Dialogue %s contains a cycle at node %s", conv.ID, n.ID))
			break
		}
	}
	return errs
}
