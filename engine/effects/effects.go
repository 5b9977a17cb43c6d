// Package effects applies dialogue effects to game state through a narrow
// mutation interface. Every effect variant is one atomic operation.
package effects

import "github.com/nathoo/ashaether/types"

// Target is the write half of the dialogue state adapter.
type Target interface {
	SetFlag(id string, value any)
	AddItem(itemID string, amount int)
	AddReputation(factionID string, amount int)
	StartQuest(questID string)
	CompleteQuest(questID string)
}

// Apply applies effects in list order. Each effect observes the state left
// by the previous one. Unknown variants are skipped. It returns the number
// of effects applied.
func Apply(effs []types.Effect, t Target) int {
	applied := 0
	for _, eff := range effs {
		switch e := eff.(type) {
		case types.SetFlag:
			t.SetFlag(e.FlagID, e.Value)

		case types.AddReputation:
			t.AddReputation(e.FactionID, e.Value)

		case types.AddItem:
			t.AddItem(e.ItemID, e.Amount)

		case types.StartQuest:
			t.StartQuest(e.QuestID)

		case types.CompleteQuest:
			t.CompleteQuest(e.QuestID)

		default:
			continue
		}
		applied++
	}
	return applied
}
