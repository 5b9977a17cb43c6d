// Package inventory implements the warden's slot grid and quickbar.
package inventory

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nathoo/ashaether/types"
)

// Default grid dimensions.
const (
	DefaultWidth    = 6
	DefaultHeight   = 8
	DefaultQuickbar = 8

	// MaxDimension bounds the grid width, the grid height and the quickbar
	// length.
	MaxDimension = 64
)

var (
	// ErrOutOfRange is returned for quickbar or slot indexes outside the grid.
	ErrOutOfRange = errors.New("index out of range")
	// ErrBadDimensions is returned by CheckState for grids that cannot be built.
	ErrBadDimensions = errors.New("inventory dimensions out of range")
)

// Inventory is a fixed grid of item stacks plus a quickbar of slot indexes.
type Inventory struct {
	width    int
	height   int
	slots    []*types.ItemStack
	quickbar []*int
}

// New creates an empty inventory. Dimensions outside 1..MaxDimension fall
// back to the default grid.
func New(width, height, quickbarSize int) *Inventory {
	if width < 1 || height < 1 || width > MaxDimension || height > MaxDimension {
		width, height = DefaultWidth, DefaultHeight
	}
	quickbarSize = min(max(quickbarSize, 0), MaxDimension)
	return &Inventory{
		width:    width,
		height:   height,
		slots:    make([]*types.ItemStack, width*height),
		quickbar: make([]*int, quickbarSize),
	}
}

// CheckState rejects serialized grids that New would have to replace. Zero
// dimensions mean unset and are accepted.
func CheckState(st types.InventoryState) error {
	if st.Width < 0 || st.Height < 0 || st.Width > MaxDimension || st.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d grid", ErrBadDimensions, st.Width, st.Height)
	}
	if len(st.Quickbar) > MaxDimension {
		return fmt.Errorf("%w: %d quickbar entries", ErrBadDimensions, len(st.Quickbar))
	}
	return nil
}

// FromState rebuilds an inventory from its serialized form. Extra slots are
// ignored and missing ones are empty.
func FromState(st types.InventoryState) *Inventory {
	inv := New(st.Width, st.Height, len(st.Quickbar))
	for i := range inv.slots {
		if i < len(st.Slots) && st.Slots[i] != nil {
			inv.slots[i] = cloneStack(st.Slots[i])
		}
	}
	for i, idx := range st.Quickbar {
		if i >= len(inv.quickbar) {
			break
		}
		if idx != nil {
			v := *idx
			inv.quickbar[i] = &v
		}
	}
	return inv
}

// Capacity returns the number of slots.
func (inv *Inventory) Capacity() int {
	return len(inv.slots)
}

// Add stores amount of itemID, topping up existing stacks before using empty
// slots. It returns the amount that did not fit.
func (inv *Inventory) Add(itemID string, amount, maxStack int, tags []string) int {
	remaining := amount
	if remaining <= 0 {
		return 0
	}
	if maxStack < 1 {
		maxStack = 1
	}

	for _, slot := range inv.slots {
		if slot == nil || slot.ItemID != itemID || slot.Amount >= slot.MaxStack {
			continue
		}
		move := min(slot.MaxStack-slot.Amount, remaining)
		slot.Amount += move
		remaining -= move
		if remaining == 0 {
			return 0
		}
	}

	for i, slot := range inv.slots {
		if slot != nil {
			continue
		}
		store := min(maxStack, remaining)
		inv.slots[i] = &types.ItemStack{
			ItemID:   itemID,
			Amount:   store,
			MaxStack: maxStack,
			Tags:     slices.Clone(tags),
		}
		remaining -= store
		if remaining == 0 {
			return 0
		}
	}

	return remaining
}

// Remove takes up to amount of itemID out of the grid, emptying drained
// slots. It returns how many were removed.
func (inv *Inventory) Remove(itemID string, amount int) int {
	remaining := amount
	for i, slot := range inv.slots {
		if remaining <= 0 {
			break
		}
		if slot == nil || slot.ItemID != itemID {
			continue
		}
		take := min(slot.Amount, remaining)
		slot.Amount -= take
		remaining -= take
		if slot.Amount <= 0 {
			inv.slots[i] = nil
		}
	}
	return amount - max(remaining, 0)
}

// Count returns the total amount of itemID across all slots.
func (inv *Inventory) Count(itemID string) int {
	total := 0
	for _, slot := range inv.slots {
		if slot != nil && slot.ItemID == itemID {
			total += slot.Amount
		}
	}
	return total
}

// Slot returns a copy of the stack at index, or nil when empty or out of range.
func (inv *Inventory) Slot(index int) *types.ItemStack {
	if index < 0 || index >= len(inv.slots) || inv.slots[index] == nil {
		return nil
	}
	return cloneStack(inv.slots[index])
}

// AssignQuickbar points quickbar entry qIndex at a slot. A nil slot clears it.
func (inv *Inventory) AssignQuickbar(qIndex int, slot *int) error {
	if qIndex < 0 || qIndex >= len(inv.quickbar) {
		return fmt.Errorf("quickbar index %d: %w", qIndex, ErrOutOfRange)
	}
	if slot == nil {
		inv.quickbar[qIndex] = nil
		return nil
	}
	if *slot < 0 || *slot >= len(inv.slots) {
		return fmt.Errorf("slot index %d: %w", *slot, ErrOutOfRange)
	}
	v := *slot
	inv.quickbar[qIndex] = &v
	return nil
}

// Quickbar returns the slot index of each quickbar entry, -1 when unassigned.
func (inv *Inventory) Quickbar() []int {
	out := make([]int, len(inv.quickbar))
	for i, idx := range inv.quickbar {
		out[i] = -1
		if idx != nil {
			out[i] = *idx
		}
	}
	return out
}

// State returns the serialized inventory.
func (inv *Inventory) State() types.InventoryState {
	st := types.InventoryState{
		Width:    inv.width,
		Height:   inv.height,
		Slots:    make([]*types.ItemStack, len(inv.slots)),
		Quickbar: make([]*int, len(inv.quickbar)),
	}
	for i, slot := range inv.slots {
		if slot != nil {
			st.Slots[i] = cloneStack(slot)
		}
	}
	for i, idx := range inv.quickbar {
		if idx != nil {
			v := *idx
			st.Quickbar[i] = &v
		}
	}
	return st
}

func cloneStack(s *types.ItemStack) *types.ItemStack {
	c := *s
	c.Tags = slices.Clone(s.Tags)
	return &c
}
