// Package graph implements the blocks-world state graph: a StateNode
// wrapping a blocks.WorldState, and successor generation for the four
// primitive actions (left, right, pick, drop) consulted by the planner's A*
// search.
package graph

import (
	"github.com/dekarrin/shrdlite/internal/blocks"
)

// Action is one of the four primitive moves the arm can make.
type Action string

const (
	ActionLeft  Action = "l"
	ActionRight Action = "r"
	ActionPick  Action = "p"
	ActionDrop  Action = "d"
)

// StateNode wraps one WorldState. Its identity for the purposes of A* (open
// / closed set membership, equality) is the deterministic string form of the
// state it wraps.
type StateNode struct {
	State blocks.WorldState
}

// ID returns the node's identity string, used as the map key for the open
// set, closed set, and parent map in the search package.
func (n StateNode) ID() string {
	return n.State.String()
}

// Edge is one legal transition out of a node: the action that produces it,
// the resulting node, and its cost (always 1 in this model).
type Edge struct {
	Action Action
	To     StateNode
	Cost   int
}

// OutgoingEdges computes every legal successor of n by probing all four
// primitive actions against a clone of n's state, per the state graph's
// transition rules. It never mutates n.
func OutgoingEdges(n StateNode) []Edge {
	var edges []Edge
	for _, a := range []Action{ActionLeft, ActionRight, ActionPick, ActionDrop} {
		if next, ok := Apply(n.State, a); ok {
			edges = append(edges, Edge{Action: a, To: StateNode{State: next}, Cost: 1})
		}
	}
	return edges
}

// Apply computes the successor of state under action a, operating on a
// clone; ok is false if a has no successor from state (an illegal or
// out-of-bounds move).
func Apply(state blocks.WorldState, a Action) (blocks.WorldState, bool) {
	next := state.Clone()

	switch a {
	case ActionLeft:
		if next.Arm <= 0 {
			return blocks.WorldState{}, false
		}
		next.Arm--
		return next, true

	case ActionRight:
		if next.Arm >= len(next.Stacks)-1 {
			return blocks.WorldState{}, false
		}
		next.Arm++
		return next, true

	case ActionPick:
		if next.Holding != "" {
			return blocks.WorldState{}, false
		}
		top, ok := next.Top(next.Arm)
		if !ok {
			return blocks.WorldState{}, false
		}
		next.Stacks[next.Arm] = next.Stacks[next.Arm][:len(next.Stacks[next.Arm])-1]
		next.Holding = top
		return next, true

	case ActionDrop:
		if next.Holding == "" {
			return blocks.WorldState{}, false
		}
		dest, hasTop := next.Top(next.Arm)
		if !hasTop {
			dest = blocks.FloorID
		}
		destObj, ok := next.Attributes(dest)
		if !ok {
			return blocks.WorldState{}, false
		}
		relation := blocks.RelOntop
		if destObj.Form == blocks.FormBox {
			relation = blocks.RelInside
		}
		if !blocks.IsValid(next, next.Holding, dest, relation) {
			return blocks.WorldState{}, false
		}
		next.Stacks[next.Arm] = append(next.Stacks[next.Arm], next.Holding)
		next.Holding = ""
		return next, true
	}

	return blocks.WorldState{}, false
}
