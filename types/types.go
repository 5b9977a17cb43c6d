// Package types defines the shared data structures for the Ash & Aether
// simulation core. This package contains only type definitions plus the
// marker methods that seal the condition and effect variants. No logic.
package types

// Intent is the parsed representation of a console command.
type Intent struct {
	Verb   string
	Object string // optional
	Target string // optional
}

// Result is the outcome of one console command.
type Result struct {
	Output []string
	Events []Event // events published while the command ran
}

// Event is published on the session bus after a state change.
type Event struct {
	Type string
	Data map[string]any
}

// Event types published by the session.
const (
	EventQuestStarted    = "quest_started"
	EventQuestCompleted  = "quest_completed"
	EventQuestAvailable  = "quest_available"
	EventFlagChanged     = "flag_changed"
	EventItemReceived    = "item_received"
	EventItemRemoved     = "item_removed"
	EventLevelUp         = "level_up"
	EventRegionUnlocked  = "region_unlocked"
	EventRegionFound     = "region_discovered"
	EventReputation      = "reputation_changed"
	EventUpgrade         = "equipment_upgraded"
	EventPlayerDefeated  = "player_defeated"
	EventLogged          = "logged"
	EventSessionRestored = "session_restored"
)

// QuestStatus is the lifecycle state of a quest instance.
type QuestStatus string

const (
	QuestLocked    QuestStatus = "locked"
	QuestAvailable QuestStatus = "available"
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
)

// ObjectiveProgress is the runtime counter of one quest objective.
type ObjectiveProgress struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Required    int    `json:"required"`
	Progress    int    `json:"progress"`
}

// QuestInstance is the runtime state of a registered quest.
type QuestInstance struct {
	ID         string              `json:"id"`
	Status     QuestStatus         `json:"status"`
	Objectives []ObjectiveProgress `json:"objectives"`
}

// QuestState is the serialized form of the quest state machine.
type QuestState struct {
	Quests []QuestInstance `json:"quests"`
	Flags  map[string]bool `json:"flags"`
}
