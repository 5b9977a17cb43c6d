package dialogue

import (
	"errors"
	"testing"

	"github.com/nathoo/ashaether/types"
)

// fakeState is an in-memory StateAccess with no engine behind it.
type fakeState struct {
	flags      map[string]any
	inventory  map[string]int
	reputation map[string]int
	quests     map[string]types.QuestStatus
}

func newFakeState() *fakeState {
	return &fakeState{
		flags:      map[string]any{"talked_to_archivist": true},
		inventory:  map[string]int{"key_anchor_dust": 1},
		reputation: map[string]int{"archivists": 2},
		quests:     map[string]types.QuestStatus{"main_find_anchordust": types.QuestAvailable},
	}
}

func (s *fakeState) Flag(id string) any             { return s.flags[id] }
func (s *fakeState) Stat(string) float64            { return 10 }
func (s *fakeState) ItemCount(id string) int        { return s.inventory[id] }
func (s *fakeState) Reputation(id string) int       { return s.reputation[id] }
func (s *fakeState) SetFlag(id string, value any)   { s.flags[id] = value }
func (s *fakeState) AddItem(id string, amount int)  { s.inventory[id] += amount }
func (s *fakeState) AddReputation(id string, n int) { s.reputation[id] += n }
func (s *fakeState) QuestStatus(id string) (types.QuestStatus, bool) {
	st, ok := s.quests[id]
	return st, ok
}

func (s *fakeState) StartQuest(id string) {
	if s.quests[id] == types.QuestAvailable {
		s.quests[id] = types.QuestActive
	}
}

func (s *fakeState) CompleteQuest(id string) {
	if s.quests[id] == types.QuestActive {
		s.quests[id] = types.QuestCompleted
	}
}

func archivistIntro() types.Conversation {
	return types.Conversation{
		ID: "archivist_intro",
		Nodes: []types.Node{
			{
				ID:        "start",
				SpeakerID: "npc_archivist_lyra",
				Text:      "History hides.",
				Choices: []types.Choice{
					{
						ID:         "accept",
						Text:       "I can help.",
						NextNodeID: "end",
						Conditions: []types.Condition{
							types.FlagEquals{FlagID: "talked_to_archivist", Equals: true},
							types.ItemCountAtLeast{ItemID: "key_anchor_dust", Value: 1},
						},
						Effects: []types.Effect{
							types.AddReputation{FactionID: "archivists", Value: 3},
							types.StartQuest{QuestID: "main_find_anchordust"},
						},
					},
					{
						ID:         "locked",
						Text:       "No supplies yet.",
						NextNodeID: "end",
						Conditions: []types.Condition{
							types.ItemCountAtLeast{ItemID: "key_anchor_dust", Value: 2},
						},
					},
				},
			},
			{
				ID:        "end",
				SpeakerID: "npc_archivist_lyra",
				Text:      "Good luck.",
				Effects:   []types.Effect{types.SetFlag{FlagID: "lyra_farewell", Value: true}},
			},
		},
	}
}

func TestFiltersChoicesAndAppliesEffects(t *testing.T) {
	state := newFakeState()
	rt := New(archivistIntro(), state)

	choices, err := rt.AvailableChoices("start")
	if err != nil {
		t.Fatal(err)
	}
	if len(choices) != 1 || choices[0].ID != "accept" {
		t.Fatalf("choices = %+v, want only accept", choices)
	}

	next, err := rt.Apply(choices[0])
	if err != nil {
		t.Fatal(err)
	}
	if next != "end" {
		t.Errorf("next = %q, want end", next)
	}
	if state.reputation["archivists"] != 5 {
		t.Errorf("archivists = %d, want 5", state.reputation["archivists"])
	}
	if state.quests["main_find_anchordust"] != types.QuestActive {
		t.Errorf("quest = %s, want active", state.quests["main_find_anchordust"])
	}
}

func TestChoicesNeverExceedItemCount(t *testing.T) {
	state := newFakeState()
	rt := New(archivistIntro(), state)

	for count := 0; count <= 3; count++ {
		state.inventory["key_anchor_dust"] = count
		choices, _ := rt.AvailableChoices("start")
		for _, c := range choices {
			for _, cond := range c.Conditions {
				if ic, ok := cond.(types.ItemCountAtLeast); ok && ic.Value > count {
					t.Errorf("count %d: choice %s requires %d", count, c.ID, ic.Value)
				}
			}
		}
	}
}

func TestEffectsApplySequentially(t *testing.T) {
	state := newFakeState()
	conv := types.Conversation{
		ID: "seq",
		Nodes: []types.Node{
			{ID: "start", SpeakerID: "a", Text: "t", Choices: []types.Choice{{
				ID: "go", Text: "go", NextNodeID: "end",
				Effects: []types.Effect{
					types.StartQuest{QuestID: "main_find_anchordust"},
					types.CompleteQuest{QuestID: "main_find_anchordust"},
				},
			}}},
			{ID: "end", SpeakerID: "a", Text: "done", Choices: []types.Choice{{
				ID: "claim", Text: "claim", NextNodeID: "end2",
				Conditions: []types.Condition{
					types.QuestStatusIs{QuestID: "main_find_anchordust", Status: types.QuestCompleted},
				},
			}}},
			{ID: "end2", SpeakerID: "a", Text: "bye"},
		},
	}
	rt := New(conv, state)

	next, err := rt.Choose("start", "go")
	if err != nil {
		t.Fatal(err)
	}
	if state.quests["main_find_anchordust"] != types.QuestCompleted {
		t.Fatalf("complete after start in the same list should observe active, got %s",
			state.quests["main_find_anchordust"])
	}
	choices, _ := rt.AvailableChoices(next)
	if len(choices) != 1 {
		t.Errorf("claim choice should be visible after completion")
	}
}

func TestNodeUnknown(t *testing.T) {
	rt := New(archivistIntro(), newFakeState())
	if _, err := rt.Node("nowhere"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("err = %v, want ErrUnknownNode", err)
	}
	if _, err := rt.AvailableChoices("nowhere"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("err = %v, want ErrUnknownNode", err)
	}
}

func TestApplyMissingTarget(t *testing.T) {
	state := newFakeState()
	rt := New(archivistIntro(), state)
	bad := types.Choice{
		ID:         "broken",
		NextNodeID: "missing",
		Effects:    []types.Effect{types.SetFlag{FlagID: "touched", Value: true}},
	}
	if _, err := rt.Apply(bad); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("err = %v, want ErrUnknownNode", err)
	}
	if state.flags["touched"] != true {
		t.Error("effects should run before the target is checked")
	}
}

func TestEnterAppliesNodeEffects(t *testing.T) {
	state := newFakeState()
	rt := New(archivistIntro(), state)

	start, err := rt.StartNode()
	if err != nil || start != "start" {
		t.Fatalf("StartNode = %q, %v", start, err)
	}
	node, ran, err := rt.Enter("end")
	if err != nil {
		t.Fatal(err)
	}
	if !ran || node.Text != "Good luck." {
		t.Errorf("Enter = %+v, ran=%v", node, ran)
	}
	if state.flags["lyra_farewell"] != true {
		t.Error("node effect not applied")
	}
}

func TestChooseUnavailable(t *testing.T) {
	rt := New(archivistIntro(), newFakeState())
	if _, err := rt.Choose("start", "locked"); err == nil {
		t.Error("choosing a gated choice should fail")
	}
}

func TestStartNodeEmpty(t *testing.T) {
	rt := New(types.Conversation{ID: "empty"}, newFakeState())
	if _, err := rt.StartNode(); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("err = %v", err)
	}
}
