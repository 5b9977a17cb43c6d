package quests

import (
	"errors"
	"testing"

	"github.com/nathoo/ashaether/types"
)

func anchordust() Definition {
	return Definition{
		ID:    "main_find_anchordust",
		Title: "Dust for the Forge",
		Objectives: []Objective{
			{ID: "collect_anchor_dust", Description: "Collect Anchor Dust", Required: 1},
			{ID: "talk_rook", Description: "Talk to Rook", Required: 1},
		},
		Prerequisites: &Prerequisites{
			Flags: []FlagRequirement{{ID: "talked_to_archivist", Equals: true}},
		},
	}
}

func quarrySupply() Definition {
	return Definition{
		ID:         "side_quarry_supply",
		Title:      "Quarry Supply",
		Objectives: []Objective{{ID: "deliver_ore", Description: "Deliver ore", Required: 3}},
	}
}

func status(t *testing.T, m *Machine, id string) types.QuestStatus {
	t.Helper()
	q, ok := m.Quest(id)
	if !ok {
		t.Fatalf("quest %q not found", id)
	}
	return q.Status
}

func TestUnlockFromFlagAndComplete(t *testing.T) {
	m := New()
	m.Register(anchordust())

	m.SyncAvailability()
	if got := status(t, m, "main_find_anchordust"); got != types.QuestLocked {
		t.Fatalf("status = %s, want locked", got)
	}

	m.SetFlag("talked_to_archivist", true)
	promoted := m.SyncAvailability()
	if len(promoted) != 1 || promoted[0] != "main_find_anchordust" {
		t.Errorf("promoted = %v", promoted)
	}
	if err := m.Start("main_find_anchordust"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	done, err := m.Advance("main_find_anchordust", "collect_anchor_dust", 1)
	if err != nil || done {
		t.Fatalf("Advance = (%v, %v), want (false, nil)", done, err)
	}
	if got := status(t, m, "main_find_anchordust"); got != types.QuestActive {
		t.Errorf("status = %s, want active", got)
	}

	done, err = m.Advance("main_find_anchordust", "talk_rook", 1)
	if err != nil || !done {
		t.Fatalf("Advance = (%v, %v), want (true, nil)", done, err)
	}
	if got := status(t, m, "main_find_anchordust"); got != types.QuestCompleted {
		t.Errorf("status = %s, want completed", got)
	}
}

func TestSingleObjectiveScenario(t *testing.T) {
	m := New()
	m.Register(Definition{
		ID:            "q",
		Objectives:    []Objective{{ID: "obj1", Required: 4}},
		Prerequisites: &Prerequisites{Flags: []FlagRequirement{{ID: "F", Equals: true}}},
	})
	m.SyncAvailability()
	if got := status(t, m, "q"); got != types.QuestLocked {
		t.Fatalf("status = %s, want locked", got)
	}
	m.SetFlag("F", true)
	m.SyncAvailability()
	if got := status(t, m, "q"); got != types.QuestAvailable {
		t.Fatalf("status = %s, want available", got)
	}
	if err := m.Start("q"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Advance("q", "obj1", 4); err != nil {
		t.Fatal(err)
	}
	if got := status(t, m, "q"); got != types.QuestCompleted {
		t.Errorf("status = %s, want completed", got)
	}
}

func TestFlagRequirementFalse(t *testing.T) {
	m := New()
	m.Register(Definition{
		ID:            "q",
		Objectives:    []Objective{{ID: "o", Required: 1}},
		Prerequisites: &Prerequisites{Flags: []FlagRequirement{{ID: "gate_open", Equals: false}}},
	})
	m.SyncAvailability()
	if got := status(t, m, "q"); got != types.QuestAvailable {
		t.Errorf("unset flag should match equals=false, status = %s", got)
	}
}

func TestQuestPrerequisite(t *testing.T) {
	m := New()
	m.Register(quarrySupply())
	m.Register(Definition{
		ID:            "follow_up",
		Objectives:    []Objective{{ID: "o", Required: 1}},
		Prerequisites: &Prerequisites{QuestsCompleted: []string{"side_quarry_supply"}},
	})

	m.SyncAvailability()
	if got := status(t, m, "follow_up"); got != types.QuestLocked {
		t.Fatalf("follow_up = %s, want locked", got)
	}

	_ = m.Start("side_quarry_supply")
	if _, err := m.Advance("side_quarry_supply", "deliver_ore", 3); err != nil {
		t.Fatal(err)
	}
	m.SyncAvailability()
	if got := status(t, m, "follow_up"); got != types.QuestAvailable {
		t.Errorf("follow_up = %s, want available", got)
	}
}

func TestSyncNeverTouchesStartedQuests(t *testing.T) {
	m := New()
	m.Register(quarrySupply())
	m.SyncAvailability()
	_ = m.Start("side_quarry_supply")
	m.SyncAvailability()
	if got := status(t, m, "side_quarry_supply"); got != types.QuestActive {
		t.Errorf("status = %s, want active", got)
	}
}

func TestAdvanceClamps(t *testing.T) {
	m := New()
	m.Register(Definition{
		ID:         "q",
		Objectives: []Objective{{ID: "a", Required: 3}, {ID: "b", Required: 1}},
	})
	m.SyncAvailability()
	_ = m.Start("q")

	if _, err := m.Advance("q", "a", 10); err != nil {
		t.Fatal(err)
	}
	q, _ := m.Quest("q")
	if q.Objectives[0].Progress != 3 {
		t.Errorf("progress = %d, want 3", q.Objectives[0].Progress)
	}
	if q.Status != types.QuestActive {
		t.Errorf("status = %s, want active while b is unfinished", q.Status)
	}
}

func TestAdvanceErrors(t *testing.T) {
	m := New()
	m.Register(quarrySupply())

	if _, err := m.Advance("side_quarry_supply", "deliver_ore", 1); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("advance locked quest err = %v, want ErrInvalidTransition", err)
	}
	if _, err := m.Advance("missing", "x", 1); !errors.Is(err, ErrUnknownQuest) {
		t.Errorf("advance missing quest err = %v, want ErrUnknownQuest", err)
	}

	m.SyncAvailability()
	_ = m.Start("side_quarry_supply")
	if _, err := m.Advance("side_quarry_supply", "nope", 1); !errors.Is(err, ErrUnknownObjective) {
		t.Errorf("unknown objective err = %v", err)
	}
	if _, err := m.Advance("side_quarry_supply", "deliver_ore", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount err = %v", err)
	}
	q, _ := m.Quest("side_quarry_supply")
	if q.Objectives[0].Progress != 0 {
		t.Errorf("failed advances changed progress to %d", q.Objectives[0].Progress)
	}
}

func TestStartRequiresAvailable(t *testing.T) {
	m := New()
	m.Register(anchordust())
	err := m.Start("main_find_anchordust")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if err := m.Start("missing"); !errors.Is(err, ErrUnknownQuest) {
		t.Errorf("err = %v, want ErrUnknownQuest", err)
	}
}

func TestFailQuest(t *testing.T) {
	m := New()
	m.Register(quarrySupply())
	m.SyncAvailability()
	_ = m.Start("side_quarry_supply")

	if err := m.Fail("side_quarry_supply"); err != nil {
		t.Fatal(err)
	}
	if got := status(t, m, "side_quarry_supply"); got != types.QuestFailed {
		t.Errorf("status = %s, want failed", got)
	}
}

func TestFailIsPermissiveBeforeActive(t *testing.T) {
	m := New()
	m.Register(anchordust())
	if err := m.Fail("main_find_anchordust"); err != nil {
		t.Fatalf("failing a locked quest: %v", err)
	}
	if got := status(t, m, "main_find_anchordust"); got != types.QuestFailed {
		t.Errorf("status = %s, want failed", got)
	}
}

func TestFailCompletedIsRejected(t *testing.T) {
	m := New()
	m.Register(quarrySupply())
	m.SyncAvailability()
	_ = m.Start("side_quarry_supply")
	_, _ = m.Advance("side_quarry_supply", "deliver_ore", 3)

	if err := m.Fail("side_quarry_supply"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if got := status(t, m, "side_quarry_supply"); got != types.QuestCompleted {
		t.Errorf("status = %s, want completed", got)
	}
}

func TestQuestReturnsCopy(t *testing.T) {
	m := New()
	m.Register(quarrySupply())

	q, _ := m.Quest("side_quarry_supply")
	q.Status = types.QuestCompleted
	q.Objectives[0].Progress = 3

	again, _ := m.Quest("side_quarry_supply")
	if again.Status != types.QuestLocked || again.Objectives[0].Progress != 0 {
		t.Errorf("mutating the copy leaked into the machine: %+v", again)
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	m := New()
	m.Register(quarrySupply())
	m.SyncAvailability()
	_ = m.Start("side_quarry_supply")
	_, _ = m.Advance("side_quarry_supply", "deliver_ore", 2)

	m.Register(quarrySupply())
	q, _ := m.Quest("side_quarry_supply")
	if q.Status != types.QuestActive || q.Objectives[0].Progress != 2 {
		t.Errorf("re-register reset state: %+v", q)
	}
	if len(m.State().Quests) != 1 {
		t.Errorf("re-register duplicated the instance")
	}
}

func TestStateRoundTrip(t *testing.T) {
	m := New()
	m.Register(anchordust())
	m.Register(quarrySupply())
	m.SetFlag("talked_to_archivist", true)
	m.SetFlag("gate_quarry_unlocked", false)
	m.SyncAvailability()
	_ = m.Start("main_find_anchordust")
	_, _ = m.Advance("main_find_anchordust", "talk_rook", 1)

	restored := FromState(m.State())
	restored.Register(anchordust())
	restored.Register(quarrySupply())

	for _, id := range []string{"main_find_anchordust", "side_quarry_supply"} {
		a, _ := m.Quest(id)
		b, _ := restored.Quest(id)
		if a.Status != b.Status {
			t.Errorf("%s status %s != %s", id, a.Status, b.Status)
		}
		for i := range a.Objectives {
			if a.Objectives[i] != b.Objectives[i] {
				t.Errorf("%s objective %d: %+v != %+v", id, i, a.Objectives[i], b.Objectives[i])
			}
		}
	}
	if !restored.Flag("talked_to_archivist") || restored.Flag("gate_quarry_unlocked") {
		t.Errorf("flags not restored: %+v", restored.State().Flags)
	}
	st := restored.State()
	if st.Quests[0].ID != "main_find_anchordust" || st.Quests[1].ID != "side_quarry_supply" {
		t.Errorf("order not preserved: %v, %v", st.Quests[0].ID, st.Quests[1].ID)
	}
}

func TestFlagDefaultsFalse(t *testing.T) {
	m := New()
	if m.Flag("anything") {
		t.Error("unset flag should be false")
	}
}
