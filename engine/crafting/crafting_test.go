package crafting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/ashaether/engine/inventory"
	"github.com/nathoo/ashaether/types"
)

func healRecipe() types.RecipeDef {
	return types.RecipeDef{
		ID:      "craft_heal",
		Name:    "Heal",
		Station: "foundry",
		Output: types.RecipeOutput{
			ItemID:   "consumable_heal_small",
			Amount:   2,
			MaxStack: 20,
			Tags:     []string{"consumable"},
		},
		Cost:        []types.ItemAmount{{ItemID: "material_iron_ore", Amount: 3}},
		CindersCost: 10,
	}
}

func TestCraft_Succeeds(t *testing.T) {
	inv := inventory.New(4, 2, 2)
	inv.Add("material_iron_ore", 5, 99, []string{"material"})
	sys := New([]types.RecipeDef{healRecipe()})

	res, err := sys.Craft("craft_heal", inv, 20)
	require.NoError(t, err)

	assert.True(t, res.Crafted)
	assert.Equal(t, 10, res.Cinders)
	assert.Equal(t, 2, inv.Count("material_iron_ore"))
	assert.Equal(t, 2, inv.Count("consumable_heal_small"))
}

func TestCraft_RequirementsNotMet(t *testing.T) {
	inv := inventory.New(4, 2, 2)
	sys := New([]types.RecipeDef{healRecipe()})

	res, err := sys.Craft("craft_heal", inv, 5)
	require.NoError(t, err)
	assert.False(t, res.Crafted)
	assert.Equal(t, 5, res.Cinders)
	assert.Equal(t, "Not enough cinders.", res.Reason)

	res, err = sys.Craft("craft_heal", inv, 50)
	require.NoError(t, err)
	assert.False(t, res.Crafted)
	assert.Equal(t, "Missing materials.", res.Reason)
}

func TestCraft_OverflowRefunds(t *testing.T) {
	inv := inventory.New(1, 1, 1)
	inv.Add("material_iron_ore", 3, 99, []string{"material"})
	r := healRecipe()
	r.Cost[0].Amount = 2
	sys := New([]types.RecipeDef{r})

	res, err := sys.Craft("craft_heal", inv, 20)
	require.NoError(t, err)

	assert.False(t, res.Crafted)
	assert.Equal(t, "Inventory full.", res.Reason)
	assert.Equal(t, 20, res.Cinders)
	assert.Equal(t, 3, inv.Count("material_iron_ore"))
	assert.Equal(t, 0, inv.Count("consumable_heal_small"))
}

func TestCraft_UnknownRecipe(t *testing.T) {
	sys := New(nil)
	_, err := sys.Craft("missing", inventory.New(1, 1, 1), 0)
	assert.ErrorIs(t, err, ErrUnknownRecipe)

	_, err = sys.CanCraft("missing", inventory.New(1, 1, 1), 0)
	assert.ErrorIs(t, err, ErrUnknownRecipe)
}

func TestRecipes_ByStation(t *testing.T) {
	camp := healRecipe()
	camp.ID = "camp_tonic"
	camp.Station = "camp"
	sys := New([]types.RecipeDef{healRecipe(), camp})

	got := sys.Recipes("camp")
	require.Len(t, got, 1)
	assert.Equal(t, "camp_tonic", got[0].ID)
	assert.Empty(t, sys.Recipes("forge"))
}
