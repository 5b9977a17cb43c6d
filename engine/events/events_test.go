package events

import (
	"testing"

	"github.com/nathoo/ashaether/types"
)

func TestPublish_ByType(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Subscribe(types.EventQuestStarted, func(e types.Event) {
		got = append(got, e.Data["quest"].(string))
	})

	bus.Publish(types.Event{Type: types.EventQuestStarted, Data: map[string]any{"quest": "main_find_anchordust"}})
	bus.Publish(types.Event{Type: types.EventFlagChanged, Data: map[string]any{"flag": "x"}})

	if len(got) != 1 || got[0] != "main_find_anchordust" {
		t.Errorf("got %v, want only the quest_started event", got)
	}
}

func TestPublish_All(t *testing.T) {
	bus := NewBus()
	count := 0
	bus.SubscribeAll(func(types.Event) { count++ })

	bus.Publish(types.Event{Type: types.EventQuestStarted})
	bus.Publish(types.Event{Type: types.EventLevelUp})

	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestPublish_NoHandlers(t *testing.T) {
	bus := NewBus()
	bus.Publish(types.Event{Type: types.EventLogged})
}

func TestPublish_NestedIsQueued(t *testing.T) {
	bus := NewBus()
	var order []string

	bus.Subscribe(types.EventQuestCompleted, func(types.Event) {
		order = append(order, "completed:start")
		bus.Publish(types.Event{Type: types.EventLevelUp})
		order = append(order, "completed:end")
	})
	bus.Subscribe(types.EventLevelUp, func(types.Event) {
		order = append(order, "level_up")
	})

	bus.Publish(types.Event{Type: types.EventQuestCompleted})

	want := []string{"completed:start", "completed:end", "level_up"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}
