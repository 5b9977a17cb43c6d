// Package crafting turns materials and cinders into items at a station.
package crafting

import (
	"errors"
	"fmt"

	"github.com/nathoo/ashaether/types"
)

// ErrUnknownRecipe is returned for recipe ids that were never registered.
var ErrUnknownRecipe = errors.New("unknown recipe")

// Refunded materials go back as plain material stacks.
const refundMaxStack = 99

// Container is the inventory surface crafting needs.
type Container interface {
	Add(itemID string, amount, maxStack int, tags []string) int
	Remove(itemID string, amount int) int
	Count(itemID string) int
}

// Result is the outcome of a craft attempt. Cinders is the balance after it.
type Result struct {
	Crafted bool
	Cinders int
	Reason  string
}

// System holds the recipe book.
type System struct {
	recipes map[string]types.RecipeDef
	order   []string
}

// New creates a system over recipes.
func New(recipes []types.RecipeDef) *System {
	s := &System{recipes: make(map[string]types.RecipeDef, len(recipes))}
	for _, r := range recipes {
		if _, ok := s.recipes[r.ID]; !ok {
			s.order = append(s.order, r.ID)
		}
		s.recipes[r.ID] = r
	}
	return s
}

// Recipes lists the recipes available at a station.
func (s *System) Recipes(station string) []types.RecipeDef {
	var out []types.RecipeDef
	for _, id := range s.order {
		if r := s.recipes[id]; r.Station == station {
			out = append(out, r)
		}
	}
	return out
}

// Recipe looks up a recipe.
func (s *System) Recipe(id string) (types.RecipeDef, error) {
	r, ok := s.recipes[id]
	if !ok {
		return types.RecipeDef{}, fmt.Errorf("recipe %s: %w", id, ErrUnknownRecipe)
	}
	return r, nil
}

// CanCraft reports whether the container and balance cover the recipe cost.
func (s *System) CanCraft(id string, c Container, cinders int) (bool, error) {
	r, err := s.Recipe(id)
	if err != nil {
		return false, err
	}
	return missing(r, c, cinders) == "", nil
}

// Craft consumes the cost and stores the output. If the output does not fit,
// the materials are refunded and nothing is charged.
func (s *System) Craft(id string, c Container, cinders int) (Result, error) {
	r, err := s.Recipe(id)
	if err != nil {
		return Result{}, err
	}
	if reason := missing(r, c, cinders); reason != "" {
		return Result{Cinders: cinders, Reason: reason}, nil
	}

	for _, cost := range r.Cost {
		c.Remove(cost.ItemID, cost.Amount)
	}

	if overflow := c.Add(r.Output.ItemID, r.Output.Amount, r.Output.MaxStack, r.Output.Tags); overflow > 0 {
		c.Remove(r.Output.ItemID, r.Output.Amount-overflow)
		for _, cost := range r.Cost {
			c.Add(cost.ItemID, cost.Amount, refundMaxStack, []string{"material"})
		}
		return Result{Cinders: cinders, Reason: "Inventory full."}, nil
	}

	return Result{Crafted: true, Cinders: cinders - r.CindersCost}, nil
}

func missing(r types.RecipeDef, c Container, cinders int) string {
	if cinders < r.CindersCost {
		return "Not enough cinders."
	}
	for _, cost := range r.Cost {
		if c.Count(cost.ItemID) < cost.Amount {
			return "Missing materials."
		}
	}
	return ""
}
