package content

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/ashaether/types"
)

func defaultBundle(t *testing.T) Bundle {
	t.Helper()
	b, err := Default()
	require.NoError(t, err)
	return b
}

func hasError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestDefaultContentIsValid(t *testing.T) {
	res := Validate(defaultBundle(t))

	require.True(t, res.OK, "errors: %v", res.Errors)
	assert.Empty(t, res.Errors)
	require.NotNil(t, res.Parsed)
	assert.NotEmpty(t, res.Parsed.Items)
	assert.NotEmpty(t, res.Parsed.Enemies)
	assert.NotEmpty(t, res.Parsed.LootTables)
	assert.NotEmpty(t, res.Parsed.Quests)
	assert.NotEmpty(t, res.Parsed.Dialogues)
	assert.NotEmpty(t, res.Parsed.Perks)
	assert.NotEmpty(t, res.Parsed.Recipes)
	assert.NotEmpty(t, res.Parsed.Regions)
}

func TestLoadDefault(t *testing.T) {
	p, err := LoadDefault()
	require.NoError(t, err)

	q, ok := p.Quest("main_find_anchordust")
	require.True(t, ok)
	require.NotNil(t, q.Prerequisites)
	assert.Equal(t, []types.FlagRequirement{{ID: "talked_to_archivist", Equals: true}}, q.Prerequisites.Flags)
	assert.Len(t, q.Objectives, 2)

	item, ok := p.Item("consumable_heal_small")
	require.True(t, ok)
	require.NotNil(t, item.UseEffect)
	assert.Equal(t, 35, item.UseEffect.Heal)

	_, ok = p.Region("gloamwood")
	assert.True(t, ok)
	_, ok = p.Enemy("hollow_hart")
	assert.True(t, ok)
	_, ok = p.Item("missing")
	assert.False(t, ok)
}

func TestDecodesConditionAndEffectVariants(t *testing.T) {
	p, err := LoadDefault()
	require.NoError(t, err)

	conv, ok := p.Dialogue("archivist_intro")
	require.True(t, ok)

	var request types.Node
	for _, n := range conv.Nodes {
		if n.ID == "request" {
			request = n
		}
	}
	require.Len(t, request.Choices, 2)
	accept := request.Choices[0]
	assert.Equal(t, []types.Effect{
		types.SetFlag{FlagID: "talked_to_archivist", Value: true},
		types.StartQuest{QuestID: "main_find_anchordust"},
		types.AddReputation{FactionID: "archivists", Value: 2},
	}, accept.Effects)

	start := conv.Nodes[0]
	assert.Equal(t, []types.Condition{
		types.ItemCountAtLeast{ItemID: "key_anchor_dust", Value: 1},
	}, start.Choices[1].Conditions)
	assert.Empty(t, start.Choices[0].Conditions)
}

func TestDetectsDialogueCycle(t *testing.T) {
	b := defaultBundle(t)
	b.Dialogues = []any{
		map[string]any{
			"conversationId": "cycle_case",
			"nodes": []any{
				map[string]any{
					"id": "start", "speakerId": "npc_a", "text": "A",
					"choices": []any{map[string]any{"id": "to_b", "text": "B", "nextNodeId": "b"}},
				},
				map[string]any{
					"id": "b", "speakerId": "npc_b", "text": "B",
					"choices": []any{map[string]any{"id": "to_start", "text": "Back", "nextNodeId": "start"}},
				},
			},
		},
	}

	res := Validate(b)
	assert.False(t, res.OK)
	assert.Contains(t, res.Errors, "Dialogue cycle_case contains a cycle at node start")
}

func TestDetectsMissingDialogueTarget(t *testing.T) {
	b := defaultBundle(t)
	b.Dialogues = []any{
		map[string]any{
			"conversationId": "dangling",
			"nodes": []any{
				map[string]any{
					"id": "start", "speakerId": "npc_a", "text": "A",
					"choices": []any{map[string]any{"id": "go", "text": "Go", "nextNodeId": "nowhere"}},
				},
			},
		},
	}

	res := Validate(b)
	assert.False(t, res.OK)
	assert.Equal(t, []string{"Dialogue dangling node start points to missing node nowhere"}, res.Errors)
}

func TestDetectsUnknownLootTable(t *testing.T) {
	b := defaultBundle(t)
	enemy := b.Enemies[0].(map[string]any)
	patched := make(map[string]any, len(enemy))
	for k, v := range enemy {
		patched[k] = v
	}
	patched["lootTableId"] = "loot_missing"
	b.Enemies = append([]any{patched}, b.Enemies[1:]...)

	res := Validate(b)
	assert.False(t, res.OK)
	assert.True(t, hasError(res.Errors, "unknown loot table loot_missing"), "errors: %v", res.Errors)
	assert.NotNil(t, res.Parsed)
}

func TestCrossReferenceErrorsAreCollected(t *testing.T) {
	b := defaultBundle(t)
	b.Items = append(b.Items, b.Items[0])
	b.Regions = append(b.Regions, map[string]any{
		"id": "lost_shore", "name": "Lost Shore", "biome": "marsh",
		"recommendedLevel": 9, "neighbors": []any{"atlantis"}, "signaturePuzzle": "none",
	})
	output := map[string]any{"itemId": "ghost", "amount": 1, "maxStack": 1, "tags": []any{"gear"}}
	cost := []any{map[string]any{"itemId": "phantom", "amount": 1}}
	b.Recipes = append(b.Recipes, map[string]any{
		"id": "recipe_bad", "name": "Bad", "station": "camp", "output": output, "cost": cost, "cindersCost": 0,
	})

	res := Validate(b)
	assert.False(t, res.OK)
	assert.Contains(t, res.Errors, "Duplicate id in items: consumable_heal_small")
	assert.Contains(t, res.Errors, "Region lost_shore references unknown neighbor atlantis")
	assert.Contains(t, res.Errors, "Recipe recipe_bad output item does not exist: ghost")
	assert.Contains(t, res.Errors, "Recipe recipe_bad references unknown cost item phantom")
}

func TestSchemaFailureWithholdsParsed(t *testing.T) {
	b := defaultBundle(t)
	b.Items = append(b.Items, map[string]any{
		"id": "bad_item", "name": "", "description": "x", "icon": "x",
		"type": "relic", "rarity": "Common", "stackSize": 1.5, "value": 0,
	})
	b.Regions = append(b.Regions, map[string]any{"id": "nowhere"})

	res := Validate(b)
	require.False(t, res.OK)
	assert.Nil(t, res.Parsed)

	idx := len(b.Items) - 1
	assert.Contains(t, res.Errors, fmt.Sprintf("items[%d] name: String must contain at least 1 character(s); "+
		"type: Invalid enum value. Expected 'consumable' | 'material' | 'weapon' | 'armor' | 'quest' | 'key', received 'relic'; "+
		"stackSize: Expected integer, received float", idx))
	assert.True(t, hasError(res.Errors, "regions["), "errors: %v", res.Errors)
	assert.False(t, hasError(res.Errors, "Duplicate"), "cross references must not run")
}

func TestValidationErrorMessage(t *testing.T) {
	res := Result{Errors: []string{"a", "b"}}
	err := res.Err()
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "content validation failed with 2 error(s):\n  a\n  b", err.Error())
	assert.NoError(t, Result{OK: true}.Err())
}

func TestBundleMerge(t *testing.T) {
	a := Bundle{Items: []any{"x"}}
	a.Merge(Bundle{Items: []any{"y"}, Perks: []any{"p"}})
	assert.Equal(t, []any{"x", "y"}, a.Items)
	assert.Equal(t, []any{"p"}, a.Perks)
}

func TestDecodeYAML(t *testing.T) {
	b, err := DecodeYAML([]byte("regions:\n  - id: a\n"))
	require.NoError(t, err)
	assert.Len(t, b.Regions, 1)
	assert.Empty(t, b.Items)

	_, err = DecodeYAML([]byte("regions: [unterminated"))
	assert.Error(t, err)
}
