// Package dialogue interprets a conversation graph against live game state.
// All mutable state lives behind StateAccess; the runtime only holds the
// conversation's node index.
package dialogue

import (
	"errors"
	"fmt"

	"github.com/nathoo/ashaether/engine/effects"
	"github.com/nathoo/ashaether/engine/rules"
	"github.com/nathoo/ashaether/types"
)

// ErrUnknownNode is returned for node ids outside the conversation.
var ErrUnknownNode = errors.New("unknown dialogue node")

// StateAccess is the capability interface a runtime reads and mutates.
type StateAccess interface {
	rules.StateView
	effects.Target
}

// Runtime walks one conversation.
type Runtime struct {
	conv  types.Conversation
	index map[string]int
	state StateAccess
}

// New indexes the conversation's nodes. A later duplicate id wins.
func New(conv types.Conversation, state StateAccess) *Runtime {
	r := &Runtime{
		conv:  conv,
		index: make(map[string]int, len(conv.Nodes)),
		state: state,
	}
	for i, n := range conv.Nodes {
		r.index[n.ID] = i
	}
	return r
}

// ID returns the conversation id.
func (r *Runtime) ID() string {
	return r.conv.ID
}

// StartNode returns the id of the first node.
func (r *Runtime) StartNode() (string, error) {
	if len(r.conv.Nodes) == 0 {
		return "", fmt.Errorf("conversation %s has no nodes: %w", r.conv.ID, ErrUnknownNode)
	}
	return r.conv.Nodes[0].ID, nil
}

// Node returns the node with the given id.
func (r *Runtime) Node(id string) (types.Node, error) {
	i, ok := r.index[id]
	if !ok {
		return types.Node{}, fmt.Errorf("conversation %s node %s: %w", r.conv.ID, id, ErrUnknownNode)
	}
	return r.conv.Nodes[i], nil
}

// AvailableChoices returns the node's choices whose conditions all hold
// against the current state, in authored order.
func (r *Runtime) AvailableChoices(nodeID string) ([]types.Choice, error) {
	node, err := r.Node(nodeID)
	if err != nil {
		return nil, err
	}
	var out []types.Choice
	for _, c := range node.Choices {
		if rules.EvalAll(c.Conditions, r.state) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Enter applies a node's own effects when its conditions hold and returns
// the node. It reports whether the effects ran.
func (r *Runtime) Enter(nodeID string) (types.Node, bool, error) {
	node, err := r.Node(nodeID)
	if err != nil {
		return types.Node{}, false, err
	}
	if !rules.EvalAll(node.Conditions, r.state) {
		return node, false, nil
	}
	effects.Apply(node.Effects, r.state)
	return node, true, nil
}

// Apply runs the choice's effects in list order and returns its target
// node id. The effects are applied even when the target is missing, which
// only happens for unvalidated content.
func (r *Runtime) Apply(choice types.Choice) (string, error) {
	effects.Apply(choice.Effects, r.state)
	if _, ok := r.index[choice.NextNodeID]; !ok {
		return "", fmt.Errorf("choice %s targets node %s in conversation %s: %w",
			choice.ID, choice.NextNodeID, r.conv.ID, ErrUnknownNode)
	}
	return choice.NextNodeID, nil
}

// Choose looks up an available choice of the node by id and applies it.
func (r *Runtime) Choose(nodeID, choiceID string) (string, error) {
	choices, err := r.AvailableChoices(nodeID)
	if err != nil {
		return "", err
	}
	for _, c := range choices {
		if c.ID == choiceID {
			return r.Apply(c)
		}
	}
	return "", fmt.Errorf("choice %s is not available at node %s", choiceID, nodeID)
}
