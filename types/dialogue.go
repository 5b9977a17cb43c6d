package types

// Condition is a read-only predicate over game state. The set of variants
// is closed; evaluators must treat anything else as false.
type Condition interface {
	isCondition()
}

// FlagEquals holds when the world flag equals the given value.
type FlagEquals struct {
	FlagID string `json:"flagId"`
	Equals any    `json:"equals"`
}

// StatAtLeast holds when the named player stat is at least Value.
type StatAtLeast struct {
	StatID string  `json:"statId"`
	Value  float64 `json:"value"`
}

// ItemCountAtLeast holds when the inventory holds at least Value of ItemID.
type ItemCountAtLeast struct {
	ItemID string `json:"itemId"`
	Value  int    `json:"value"`
}

// ReputationAtLeast holds when the faction standing is at least Value.
type ReputationAtLeast struct {
	FactionID string `json:"factionId"`
	Value     int    `json:"value"`
}

// QuestStatusIs holds when the quest is in exactly the given status.
type QuestStatusIs struct {
	QuestID string      `json:"questId"`
	Status  QuestStatus `json:"status"`
}

func (FlagEquals) isCondition()        {}
func (StatAtLeast) isCondition()       {}
func (ItemCountAtLeast) isCondition()  {}
func (ReputationAtLeast) isCondition() {}
func (QuestStatusIs) isCondition()     {}

// Effect is a single state mutation triggered by dialogue. The set of
// variants is closed; appliers must treat anything else as a no-op.
type Effect interface {
	isEffect()
}

// SetFlag writes a world flag. Value is a bool, string or number.
type SetFlag struct {
	FlagID string `json:"flagId"`
	Value  any    `json:"value"`
}

// AddReputation changes a faction standing by Value.
type AddReputation struct {
	FactionID string `json:"factionId"`
	Value     int    `json:"value"`
}

// AddItem grants Amount of ItemID.
type AddItem struct {
	ItemID string `json:"itemId"`
	Amount int    `json:"amount"`
}

// StartQuest starts an available quest.
type StartQuest struct {
	QuestID string `json:"questId"`
}

// CompleteQuest force-completes an active quest.
type CompleteQuest struct {
	QuestID string `json:"questId"`
}

func (SetFlag) isEffect()       {}
func (AddReputation) isEffect() {}
func (AddItem) isEffect()       {}
func (StartQuest) isEffect()    {}
func (CompleteQuest) isEffect() {}

// Conversation is a static dialogue graph.
type Conversation struct {
	ID    string `json:"conversationId"`
	Nodes []Node `json:"nodes"`
}

// Node is one line of dialogue with its outgoing choices.
type Node struct {
	ID         string      `json:"id"`
	SpeakerID  string      `json:"speakerId"`
	Portrait   string      `json:"portrait,omitempty"`
	Text       string      `json:"text"`
	Tags       []string    `json:"tags"`
	Conditions []Condition `json:"conditions"`
	Effects    []Effect    `json:"effects"`
	Choices    []Choice    `json:"choices"`
}

// Choice is an edge in the dialogue graph.
type Choice struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	NextNodeID string      `json:"nextNodeId"`
	Conditions []Condition `json:"conditions"`
	Effects    []Effect    `json:"effects"`
}
