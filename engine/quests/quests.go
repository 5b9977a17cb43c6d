// Package quests implements the quest state machine: per-quest status and
// objective progress gated by flag and quest prerequisites.
package quests

import (
	"errors"
	"fmt"

	"github.com/nathoo/ashaether/types"
)

var (
	// ErrUnknownQuest is returned for ids that were never registered or restored.
	ErrUnknownQuest = errors.New("quest does not exist")
	// ErrUnknownObjective is returned when advancing an objective the quest lacks.
	ErrUnknownObjective = errors.New("unknown objective")
	// ErrInvalidTransition is returned when a status change is not allowed.
	ErrInvalidTransition = errors.New("invalid quest transition")
	// ErrInvalidAmount is returned for non-positive objective increments.
	ErrInvalidAmount = errors.New("objective amount must be positive")
)

// Objective is a static objective of a quest definition.
type Objective struct {
	ID          string
	Description string
	Required    int
}

// FlagRequirement requires a flag to equal Equals.
type FlagRequirement struct {
	ID     string
	Equals bool
}

// Prerequisites is a conjunction of flag and completed-quest checks.
type Prerequisites struct {
	Flags           []FlagRequirement
	QuestsCompleted []string
}

// Definition is the static description of a quest.
type Definition struct {
	ID            string
	Title         string
	Objectives    []Objective
	Prerequisites *Prerequisites
}

// Machine tracks every registered quest. The zero value is not usable;
// create one with New or FromState.
type Machine struct {
	defs      map[string]Definition
	defOrder  []string
	instances map[string]*types.QuestInstance
	order     []string
	flags     map[string]bool
}

// New creates an empty machine.
func New() *Machine {
	return &Machine{
		defs:      map[string]Definition{},
		instances: map[string]*types.QuestInstance{},
		flags:     map[string]bool{},
	}
}

// FromState restores a machine from its serialized form. Definitions are
// not part of the state and must be registered again; registration keeps
// the restored runtime state.
func FromState(st types.QuestState) *Machine {
	m := New()
	for _, q := range st.Quests {
		inst := cloneInstance(q)
		if _, ok := m.instances[q.ID]; !ok {
			m.order = append(m.order, q.ID)
		}
		m.instances[q.ID] = &inst
	}
	for id, v := range st.Flags {
		m.flags[id] = v
	}
	return m
}

// Register records a definition. An existing instance for the same id is
// kept as is; otherwise a locked instance with zero progress is created.
func (m *Machine) Register(def Definition) {
	if _, ok := m.defs[def.ID]; !ok {
		m.defOrder = append(m.defOrder, def.ID)
	}
	m.defs[def.ID] = def

	if _, ok := m.instances[def.ID]; ok {
		return
	}
	inst := &types.QuestInstance{
		ID:         def.ID,
		Status:     types.QuestLocked,
		Objectives: make([]types.ObjectiveProgress, 0, len(def.Objectives)),
	}
	for _, o := range def.Objectives {
		inst.Objectives = append(inst.Objectives, types.ObjectiveProgress{
			ID:          o.ID,
			Description: o.Description,
			Required:    o.Required,
		})
	}
	m.instances[def.ID] = inst
	m.order = append(m.order, def.ID)
}

// Definition returns the registered definition for id.
func (m *Machine) Definition(id string) (Definition, bool) {
	def, ok := m.defs[id]
	return def, ok
}

// SetFlag writes a prerequisite flag. It does not sync availability.
func (m *Machine) SetFlag(id string, value bool) {
	m.flags[id] = value
}

// Flag returns a flag value. Unset flags are false.
func (m *Machine) Flag(id string) bool {
	return m.flags[id]
}

// SyncAvailability promotes every locked quest whose prerequisites hold to
// available and returns the promoted ids in registration order. Quests past
// locked are never touched.
func (m *Machine) SyncAvailability() []string {
	var promoted []string
	for _, id := range m.defOrder {
		inst, ok := m.instances[id]
		if !ok || inst.Status != types.QuestLocked {
			continue
		}
		if m.prerequisitesMet(m.defs[id].Prerequisites) {
			inst.Status = types.QuestAvailable
			promoted = append(promoted, id)
		}
	}
	return promoted
}

// Start moves an available quest to active.
func (m *Machine) Start(id string) error {
	inst, err := m.require(id)
	if err != nil {
		return err
	}
	if inst.Status != types.QuestAvailable {
		return fmt.Errorf("quest %s is not available (status %s): %w", id, inst.Status, ErrInvalidTransition)
	}
	inst.Status = types.QuestActive
	return nil
}

// Advance adds amount to an objective of an active quest, clamped to the
// objective's required count. When every objective is full the quest
// completes in the same call. It reports whether the quest completed.
func (m *Machine) Advance(id, objectiveID string, amount int) (bool, error) {
	inst, err := m.require(id)
	if err != nil {
		return false, err
	}
	if inst.Status != types.QuestActive {
		return false, fmt.Errorf("quest %s is not active (status %s): %w", id, inst.Status, ErrInvalidTransition)
	}
	if amount < 1 {
		return false, fmt.Errorf("quest %s objective %s amount %d: %w", id, objectiveID, amount, ErrInvalidAmount)
	}

	idx := -1
	for i, o := range inst.Objectives {
		if o.ID == objectiveID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, fmt.Errorf("quest %s has no objective %s: %w", id, objectiveID, ErrUnknownObjective)
	}

	obj := &inst.Objectives[idx]
	obj.Progress = min(obj.Required, obj.Progress+amount)

	for _, o := range inst.Objectives {
		if o.Progress < o.Required {
			return false, nil
		}
	}
	inst.Status = types.QuestCompleted
	return true, nil
}

// Fail marks a quest failed from any status except completed.
func (m *Machine) Fail(id string) error {
	inst, err := m.require(id)
	if err != nil {
		return err
	}
	if inst.Status == types.QuestCompleted {
		return fmt.Errorf("quest %s is already completed: %w", id, ErrInvalidTransition)
	}
	inst.Status = types.QuestFailed
	return nil
}

// Quest returns a copy of the instance. Mutating it does not affect the machine.
func (m *Machine) Quest(id string) (types.QuestInstance, bool) {
	inst, ok := m.instances[id]
	if !ok {
		return types.QuestInstance{}, false
	}
	return cloneInstance(*inst), true
}

// Status returns the status of a quest and whether it exists.
func (m *Machine) Status(id string) (types.QuestStatus, bool) {
	inst, ok := m.instances[id]
	if !ok {
		return "", false
	}
	return inst.Status, true
}

// State serializes every instance in registration order plus the flag map.
func (m *Machine) State() types.QuestState {
	st := types.QuestState{
		Quests: make([]types.QuestInstance, 0, len(m.order)),
		Flags:  make(map[string]bool, len(m.flags)),
	}
	for _, id := range m.order {
		st.Quests = append(st.Quests, cloneInstance(*m.instances[id]))
	}
	for k, v := range m.flags {
		st.Flags[k] = v
	}
	return st
}

func (m *Machine) prerequisitesMet(p *Prerequisites) bool {
	if p == nil {
		return true
	}
	for _, f := range p.Flags {
		if m.flags[f.ID] != f.Equals {
			return false
		}
	}
	for _, qid := range p.QuestsCompleted {
		inst, ok := m.instances[qid]
		if !ok || inst.Status != types.QuestCompleted {
			return false
		}
	}
	return true
}

func (m *Machine) require(id string) (*types.QuestInstance, error) {
	inst, ok := m.instances[id]
	if !ok {
		return nil, fmt.Errorf("quest %s: %w", id, ErrUnknownQuest)
	}
	return inst, nil
}

func cloneInstance(q types.QuestInstance) types.QuestInstance {
	out := q
	out.Objectives = make([]types.ObjectiveProgress, len(q.Objectives))
	copy(out.Objectives, q.Objectives)
	return out
}
