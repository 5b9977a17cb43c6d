// Package rules evaluates dialogue conditions against a read-only view of
// game state.
package rules

import "github.com/nathoo/ashaether/types"

// StateView is the read half of the dialogue state adapter.
type StateView interface {
	Flag(id string) any
	Stat(id string) float64
	ItemCount(itemID string) int
	Reputation(factionID string) int
	QuestStatus(questID string) (types.QuestStatus, bool)
}

// EvalCondition evaluates a single condition. It never mutates state.
// Unknown variants evaluate to false.
func EvalCondition(c types.Condition, s StateView) bool {
	switch c := c.(type) {
	case types.FlagEquals:
		return FlagValueEqual(s.Flag(c.FlagID), c.Equals)

	case types.StatAtLeast:
		return s.Stat(c.StatID) >= c.Value

	case types.ItemCountAtLeast:
		return s.ItemCount(c.ItemID) >= c.Value

	case types.ReputationAtLeast:
		return s.Reputation(c.FactionID) >= c.Value

	case types.QuestStatusIs:
		st, ok := s.QuestStatus(c.QuestID)
		return ok && st == c.Status

	default:
		return false
	}
}

// EvalAll returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAll(conditions []types.Condition, s StateView) bool {
	for _, c := range conditions {
		if !EvalCondition(c, s) {
			return false
		}
	}
	return true
}

// FlagValueEqual compares two flag values. Numbers compare by value whatever
// their Go type, so 3 from YAML equals 3.0 from JSON. A nil (unset) value
// equals nothing.
func FlagValueEqual(actual, expected any) bool {
	if actual == nil || expected == nil {
		return false
	}
	if a, ok := toFloat(actual); ok {
		b, ok := toFloat(expected)
		return ok && a == b
	}
	switch a := actual.(type) {
	case bool:
		b, ok := expected.(bool)
		return ok && a == b
	case string:
		b, ok := expected.(string)
		return ok && a == b
	default:
		return false
	}
}

// toFloat converts numeric values from JSON, YAML or Lua to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
