package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/ashaether/engine/inventory"
	"github.com/nathoo/ashaether/types"
)

// wallet is a Customer backed by a real inventory.
type wallet struct {
	cinders int
	inv     *inventory.Inventory
	values  map[string]int
}

func newWallet(cinders int) *wallet {
	w := &wallet{
		cinders: cinders,
		inv:     inventory.New(4, 2, 2),
		values:  map[string]int{"material_iron_ore": 5},
	}
	w.inv.Add("consumable_heal_small", 4, 10, []string{"consumable"})
	w.inv.Add("material_iron_ore", 8, 99, []string{"material"})
	w.inv.Add("key_anchor_dust", 1, 99, []string{"key"})
	return w
}

func (w *wallet) Cinders() int           { return w.cinders }
func (w *wallet) AddCinders(n int)       { w.cinders += n }
func (w *wallet) CanSell(id string) bool { return id != "key_anchor_dust" }

func (w *wallet) SpendCinders(n int) bool {
	if n > w.cinders {
		return false
	}
	w.cinders -= n
	return true
}

func (w *wallet) StoreItem(id string, amount, maxStack int) int {
	if maxStack == 0 {
		maxStack = 10
	}
	return w.inv.Add(id, amount, maxStack, nil)
}

func (w *wallet) RemoveItem(id string, amount int) int { return w.inv.Remove(id, amount) }

func (w *wallet) ItemValue(id string) int {
	if v, ok := w.values[id]; ok {
		return v
	}
	return 1
}

func healListing() Listing {
	return Listing{ID: "heal_tonic", ItemID: "consumable_heal_small", DisplayName: "Cloudleaf Tincture", BuyPrice: 15, BaseStock: 2, RestockTo: 3}
}

func TestShop_BuyAndSell(t *testing.T) {
	w := newWallet(80)
	shop := NewShop([]Listing{healListing()}, types.ShopState{})

	buy := shop.Buy("heal_tonic", w)
	require.True(t, buy.OK, buy.Reason)
	assert.Equal(t, 65, w.cinders)
	assert.Equal(t, 5, w.inv.Count("consumable_heal_small"))
	assert.Equal(t, 1, shop.Catalog()[0].Stock)

	sell := shop.Sell("material_iron_ore", 2, w)
	require.True(t, sell.OK, sell.Reason)
	assert.Equal(t, 6, sell.Earned)
	assert.Equal(t, 71, w.cinders)

	blocked := shop.Sell("key_anchor_dust", 1, w)
	assert.False(t, blocked.OK)
	assert.Equal(t, "key_anchor_dust cannot be sold.", blocked.Reason)
}

func TestShop_BuyFailures(t *testing.T) {
	shop := NewShop([]Listing{healListing()}, types.ShopState{StockByListingID: map[string]int{"heal_tonic": 0}})

	assert.Equal(t, "Unknown listing nope", shop.Buy("nope", newWallet(100)).Reason)
	assert.Equal(t, "Cloudleaf Tincture is out of stock.", shop.Buy("heal_tonic", newWallet(100)).Reason)

	shop = NewShop([]Listing{healListing()}, types.ShopState{})
	poor := newWallet(3)
	res := shop.Buy("heal_tonic", poor)
	assert.False(t, res.OK)
	assert.Equal(t, "Not enough cinders for Cloudleaf Tincture.", res.Reason)
	assert.Equal(t, 3, poor.cinders)
}

func TestShop_BuyInventoryFull(t *testing.T) {
	w := newWallet(100)
	w.inv = inventory.New(1, 1, 1)
	w.inv.Add("material_iron_ore", 1, 99, nil)
	shop := NewShop([]Listing{healListing()}, types.ShopState{})

	res := shop.Buy("heal_tonic", w)
	assert.False(t, res.OK)
	assert.Equal(t, "Inventory full.", res.Reason)
	assert.Equal(t, 100, w.cinders)
	assert.Equal(t, 2, shop.Catalog()[0].Stock)
}

func TestShop_SellFailures(t *testing.T) {
	shop := NewShop(nil, types.ShopState{})
	w := newWallet(0)

	assert.Equal(t, "Amount must be positive.", shop.Sell("material_iron_ore", 0, w).Reason)
	assert.Equal(t, "material_cloudleaf is not in inventory.", shop.Sell("material_cloudleaf", 1, w).Reason)
}

func TestShop_SellMinimumOne(t *testing.T) {
	shop := NewShop(nil, types.ShopState{})
	w := newWallet(0)

	res := shop.Sell("consumable_heal_small", 1, w)
	require.True(t, res.OK)
	assert.Equal(t, 1, res.Earned)
}

func TestShop_Restock(t *testing.T) {
	w := newWallet(80)
	shop := NewShop([]Listing{{ID: "stamina_vial", ItemID: "consumable_stamina_vial", DisplayName: "Quicksilver Draught", BuyPrice: 25, BaseStock: 1, RestockTo: 2}}, types.ShopState{})

	require.True(t, shop.Buy("stamina_vial", w).OK)
	assert.Equal(t, 0, shop.Catalog()[0].Stock)

	assert.False(t, shop.Tick(100))
	assert.Equal(t, 140, shop.SecondsToRestock())
	assert.True(t, shop.Tick(160))
	assert.Equal(t, 1, shop.Catalog()[0].Stock)

	assert.True(t, shop.Tick(2*RestockInterval))
	assert.Equal(t, 2, shop.Catalog()[0].Stock, "restock caps at RestockTo")
}

func TestShop_StateRoundTrip(t *testing.T) {
	shop := NewShop(FoundryMarket, types.ShopState{})
	require.True(t, shop.Buy("heal_tonic", newWallet(100)).OK)
	shop.Tick(30)

	restored := NewShop(FoundryMarket, shop.State())
	assert.Equal(t, shop.State(), restored.State())
	assert.Equal(t, shop.Catalog(), restored.Catalog())
}
