package economy

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/nathoo/ashaether/types"
)

// RestockInterval is the number of seconds between restocks.
const RestockInterval = 240.0

// Listing is one item the market sells.
type Listing struct {
	ID          string
	ItemID      string
	DisplayName string
	BuyPrice    int
	BaseStock   int
	RestockTo   int
	MaxStack    int
	Tags        []string
}

// CatalogEntry is a listing with its current stock.
type CatalogEntry struct {
	Listing
	Stock int
}

// FoundryMarket is the stock of the Cinderhaven foundry market.
var FoundryMarket = []Listing{
	{ID: "heal_tonic", ItemID: "consumable_heal_small", DisplayName: "Cloudleaf Tincture", BuyPrice: 15, BaseStock: 2, RestockTo: 3},
	{ID: "stamina_vial", ItemID: "consumable_stamina_vial", DisplayName: "Quicksilver Draught", BuyPrice: 25, BaseStock: 1, RestockTo: 2},
	{ID: "ore_bundle", ItemID: "material_iron_ore", DisplayName: "Quarry Ore Bundle", BuyPrice: 6, BaseStock: 6, RestockTo: 8},
	{ID: "cloudleaf_bundle", ItemID: "material_cloudleaf", DisplayName: "Cloudleaf Sprig", BuyPrice: 4, BaseStock: 6, RestockTo: 8},
}

// Customer is the session surface the market trades with.
type Customer interface {
	Cinders() int
	SpendCinders(amount int) bool
	AddCinders(amount int)
	StoreItem(itemID string, amount, maxStack int) int
	RemoveItem(itemID string, amount int) int
	CanSell(itemID string) bool
	ItemValue(itemID string) int
}

// PurchaseResult is the outcome of a Buy.
type PurchaseResult struct {
	OK        bool
	Reason    string
	ListingID string
	ItemID    string
	Spent     int
}

// SaleResult is the outcome of a Sell.
type SaleResult struct {
	OK     bool
	Reason string
	ItemID string
	Amount int
	Earned int
}

// Shop tracks per-listing stock and restock progress.
type Shop struct {
	listings []Listing
	byID     map[string]Listing
	stock    map[string]int
	progress float64
}

// NewShop creates a shop, restoring stock from st where present.
func NewShop(listings []Listing, st types.ShopState) *Shop {
	s := &Shop{
		listings: slices.Clone(listings),
		byID:     make(map[string]Listing, len(listings)),
		stock:    make(map[string]int, len(listings)),
		progress: st.RestockProgress,
	}
	for _, l := range listings {
		s.byID[l.ID] = l
		if n, ok := st.StockByListingID[l.ID]; ok {
			s.stock[l.ID] = max(0, n)
		} else {
			s.stock[l.ID] = l.BaseStock
		}
	}
	return s
}

// Tick advances restock progress and reports whether a restock happened.
func (s *Shop) Tick(deltaSeconds float64) bool {
	s.progress += deltaSeconds
	restocked := false
	for s.progress >= RestockInterval {
		s.progress -= RestockInterval
		for _, l := range s.listings {
			s.stock[l.ID] = min(l.RestockTo, s.stock[l.ID]+1)
		}
		restocked = true
	}
	return restocked
}

// SecondsToRestock returns the whole seconds until the next restock.
func (s *Shop) SecondsToRestock() int {
	return int(math.Max(0, math.Ceil(RestockInterval-s.progress)))
}

// Catalog lists every listing with its stock.
func (s *Shop) Catalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(s.listings))
	for _, l := range s.listings {
		out = append(out, CatalogEntry{Listing: l, Stock: s.stock[l.ID]})
	}
	return out
}

// Buy sells one unit of a listing to c.
func (s *Shop) Buy(listingID string, c Customer) PurchaseResult {
	l, ok := s.byID[listingID]
	if !ok {
		return PurchaseResult{Reason: fmt.Sprintf("Unknown listing %s", listingID), ListingID: listingID}
	}
	res := PurchaseResult{ListingID: listingID, ItemID: l.ItemID}

	stock := s.stock[l.ID]
	switch {
	case stock <= 0:
		res.Reason = fmt.Sprintf("%s is out of stock.", l.DisplayName)
		return res
	case c.Cinders() < l.BuyPrice:
		res.Reason = fmt.Sprintf("Not enough cinders for %s.", l.DisplayName)
		return res
	}

	if overflow := c.StoreItem(l.ItemID, 1, l.MaxStack); overflow > 0 {
		res.Reason = "Inventory full."
		return res
	}
	if !c.SpendCinders(l.BuyPrice) {
		c.RemoveItem(l.ItemID, 1)
		res.Reason = "Unable to spend cinders."
		return res
	}

	s.stock[l.ID] = stock - 1
	res.OK = true
	res.Spent = l.BuyPrice
	return res
}

// Sell buys amount of itemID from c at 60% of its value.
func (s *Shop) Sell(itemID string, amount int, c Customer) SaleResult {
	res := SaleResult{ItemID: itemID}
	if amount <= 0 {
		res.Reason = "Amount must be positive."
		return res
	}
	if !c.CanSell(itemID) {
		res.Reason = fmt.Sprintf("%s cannot be sold.", itemID)
		return res
	}

	removed := c.RemoveItem(itemID, amount)
	if removed <= 0 {
		res.Reason = fmt.Sprintf("%s is not in inventory.", itemID)
		return res
	}

	earned := max(1, int(math.Floor(float64(c.ItemValue(itemID))*0.6))*removed)
	c.AddCinders(earned)

	res.OK = true
	res.Amount = removed
	res.Earned = earned
	return res
}

// State returns the persisted shop state.
func (s *Shop) State() types.ShopState {
	return types.ShopState{StockByListingID: maps.Clone(s.stock), RestockProgress: s.progress}
}
