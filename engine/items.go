package engine

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/nathoo/ashaether/engine/crafting"
	"github.com/nathoo/ashaether/engine/economy"
	"github.com/nathoo/ashaether/engine/upgrades"
	"github.com/nathoo/ashaether/types"
)

const defaultMaxStack = 99

// Item looks up an item definition.
func (s *Session) Item(itemID string) (types.ItemDef, bool) {
	it, ok := s.items[itemID]
	return it, ok
}

// AddItem grants items with the item's own stack size. Anything that does
// not fit is dropped.
func (s *Session) AddItem(itemID string, amount int) {
	s.StoreItem(itemID, amount, 0)
}

// StoreItem adds items to the inventory and returns the overflow. A zero
// maxStack uses the item's stack size, or 99 for unknown items. Received
// items count toward collect objectives.
func (s *Session) StoreItem(itemID string, amount, maxStack int) int {
	if maxStack <= 0 {
		maxStack = defaultMaxStack
		if it, ok := s.items[itemID]; ok {
			maxStack = it.StackSize
		}
	}

	overflow := s.inventory.Add(itemID, amount, maxStack, s.inferTags(itemID))
	received := amount - overflow
	if received > 0 {
		s.log(fmt.Sprintf("Received %s x%d.", s.itemName(itemID), received))
		s.publish(types.EventItemReceived, map[string]any{"item": itemID, "amount": received})
		s.RecordObjectiveProgress("collect", itemID, received)
	}
	if overflow > 0 {
		s.logger.Info("inventory full", "item_id", itemID, "overflow", overflow)
	}
	return overflow
}

// RemoveItem takes up to amount items and returns how many were removed.
func (s *Session) RemoveItem(itemID string, amount int) int {
	removed := s.inventory.Remove(itemID, amount)
	if removed > 0 {
		s.publish(types.EventItemRemoved, map[string]any{"item": itemID, "amount": removed})
	}
	return removed
}

// CountItem returns how many of an item the inventory holds.
func (s *Session) CountItem(itemID string) int {
	return s.inventory.Count(itemID)
}

// ItemCount is CountItem under the name conditions read.
func (s *Session) ItemCount(itemID string) int {
	return s.inventory.Count(itemID)
}

// CanSell reports whether the market buys an item. Quest and key items are
// never sold; unknown items are.
func (s *Session) CanSell(itemID string) bool {
	it, ok := s.items[itemID]
	if !ok {
		return true
	}
	return it.Type != "quest" && it.Type != "key"
}

// ItemValue returns the base value of an item, 1 for unknown items.
func (s *Session) ItemValue(itemID string) int {
	if it, ok := s.items[itemID]; ok {
		return it.Value
	}
	return 1
}

func (s *Session) inferTags(itemID string) []string {
	it, ok := s.items[itemID]
	if !ok {
		return []string{"material"}
	}
	switch it.Type {
	case "quest", "consumable", "material", "key":
		return []string{it.Type}
	default:
		return []string{"gear"}
	}
}

// UseItem consumes one consumable and applies its heal and stamina effect.
func (s *Session) UseItem(itemID string) error {
	it, ok := s.items[itemID]
	if !ok || it.Type != "consumable" || it.UseEffect == nil {
		return fmt.Errorf("%s: %w", itemID, ErrNotUsable)
	}
	if s.inventory.Remove(itemID, 1) == 0 {
		return fmt.Errorf("%s: %w", itemID, ErrItemMissing)
	}
	s.publish(types.EventItemRemoved, map[string]any{"item": itemID, "amount": 1})

	if it.UseEffect.Heal > 0 {
		s.Heal(float64(it.UseEffect.Heal))
	}
	if it.UseEffect.Stamina > 0 {
		s.stats.Stamina = math.Min(s.stats.MaxStamina, s.stats.Stamina+float64(it.UseEffect.Stamina))
	}
	s.log(fmt.Sprintf("Used %s.", it.Name))
	return nil
}

// AssignQuickbar binds a quickbar slot to an inventory slot, or clears it
// when slot is nil.
func (s *Session) AssignQuickbar(quickbar int, slot *int) error {
	return s.inventory.AssignQuickbar(quickbar, slot)
}

// Crafting

// Recipes lists the recipes of a station, or every recipe for "".
func (s *Session) Recipes(station string) []types.RecipeDef {
	if station == "" {
		return slices.Clone(s.content.Recipes)
	}
	return s.crafting.Recipes(station)
}

// Craft makes one batch of a recipe from inventory materials and cinders.
func (s *Session) Craft(recipeID string) (crafting.Result, error) {
	res, err := s.crafting.Craft(recipeID, s.inventory, s.cinders)
	if err != nil {
		return res, err
	}
	s.cinders = res.Cinders
	if res.Crafted {
		r, _ := s.crafting.Recipe(recipeID)
		s.log(fmt.Sprintf("Crafted %s x%d.", s.itemName(r.Output.ItemID), r.Output.Amount))
		s.publish(types.EventItemReceived, map[string]any{"item": r.Output.ItemID, "amount": r.Output.Amount})
	}
	return res, nil
}

// Market

// Catalog lists the market with current stock.
func (s *Session) Catalog() []economy.CatalogEntry { return s.shop.Catalog() }

// SecondsToRestock returns the time until the next restock.
func (s *Session) SecondsToRestock() int { return s.shop.SecondsToRestock() }

// TickShop advances the restock timer and reports whether stock changed.
func (s *Session) TickShop(deltaSeconds float64) bool { return s.shop.Tick(deltaSeconds) }

// Buy purchases one unit of a listing.
func (s *Session) Buy(listingID string) economy.PurchaseResult {
	res := s.shop.Buy(listingID, s)
	if res.OK {
		s.log(fmt.Sprintf("Bought %s for %d cinders.", s.itemName(res.ItemID), res.Spent))
	}
	return res
}

// Sell sells up to amount of an item.
func (s *Session) Sell(itemID string, amount int) economy.SaleResult {
	res := s.shop.Sell(itemID, amount, s)
	if res.OK {
		s.log(fmt.Sprintf("Sold %s x%d for %d cinders.", s.itemName(itemID), res.Amount, res.Earned))
	}
	return res
}

// Upgrades

// Upgrades returns the equipment upgrade levels.
func (s *Session) Upgrades() types.UpgradeState { return s.upgrades }

// UpgradeLevel returns the level of one upgrade target.
func (s *Session) UpgradeLevel(t upgrades.Target) int {
	if t == upgrades.Armor {
		return s.upgrades.Armor
	}
	return s.upgrades.Weapon
}

// SetUpgradeLevel sets an upgrade level clamped to [0, MaxLevel].
func (s *Session) SetUpgradeLevel(t upgrades.Target, level int) {
	level = max(0, min(upgrades.MaxLevel, level))
	if t == upgrades.Armor {
		s.upgrades.Armor = level
	} else {
		s.upgrades.Weapon = level
	}
	s.recomputeDerivedStats()
	s.log(fmt.Sprintf("%s upgraded to +%d.", strings.ToUpper(string(t)), level))
	s.publish(types.EventUpgrade, map[string]any{"target": string(t), "level": level})
}

// Upgrade attempts to raise an equipment upgrade by one level.
func (s *Session) Upgrade(t upgrades.Target) upgrades.Attempt {
	return upgrades.Try(t, s)
}
