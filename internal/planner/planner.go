package planner

import (
	"time"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/graph"
	"github.com/dekarrin/shrdlite/internal/interp"
	"github.com/dekarrin/shrdlite/internal/search"
)

// DefaultTimeout is used by callers that have no particular wall-clock
// budget of their own.
const DefaultTimeout = 10 * time.Second

// VacuousUtterance is emitted in place of a plan when the goal already
// holds in the starting state.
const VacuousUtterance = "That is already true!"

// PlannerResult pairs one interpretation with the plan that satisfies it: a
// sequence of strings, each either a primitive action (l, r, p, d) or the
// vacuous-success utterance.
type PlannerResult struct {
	Interpretation interp.Interpretation
	Plan           []string
}

// stateGraph adapts graph.OutgoingEdges to the generic search.Graph
// capability the A* search depends on.
type stateGraph struct{}

func (stateGraph) OutgoingEdges(n graph.StateNode) []search.Edge[graph.StateNode] {
	edges := graph.OutgoingEdges(n)
	out := make([]search.Edge[graph.StateNode], len(edges))
	for i, e := range edges {
		out[i] = search.Edge[graph.StateNode]{To: e.To, Cost: e.Cost}
	}
	return out
}

// Plan searches for a plan satisfying each interpretation's goal in turn.
// As with Interpret, a failure on one interpretation is suppressed as long
// as at least one other interpretation yields a plan; if every
// interpretation fails, the first error is returned.
func Plan(interpretations []interp.Interpretation, state blocks.WorldState, timeout time.Duration) ([]PlannerResult, error) {
	var results []PlannerResult
	var firstErr error

	for _, it := range interpretations {
		plan, err := planOne(it, state, timeout)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results = append(results, PlannerResult{Interpretation: it, Plan: plan})
	}

	if len(results) == 0 {
		return nil, firstErr
	}
	return results, nil
}

func planOne(it interp.Interpretation, state blocks.WorldState, timeout time.Duration) ([]string, error) {
	start := graph.StateNode{State: state}
	goal := GoalPredicate(it.Goal)

	if goal(start) {
		return []string{VacuousUtterance}, nil
	}

	path, _, err := search.AStar[graph.StateNode](stateGraph{}, start, goal, Heuristic(it.Goal), timeout)
	if err != nil {
		return nil, err
	}
	return reconstructActions(path), nil
}

// reconstructActions walks consecutive pairs of the path returned by A*,
// probing the four primitive actions against a clone of the predecessor and
// emitting whichever one's successor string-equals the next node.
func reconstructActions(path []graph.StateNode) []string {
	if len(path) <= 1 {
		return nil
	}
	actions := make([]string, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		wantID := path[i+1].State.String()
		for _, a := range []graph.Action{graph.ActionLeft, graph.ActionRight, graph.ActionPick, graph.ActionDrop} {
			if next, ok := graph.Apply(path[i].State, a); ok && next.String() == wantID {
				actions = append(actions, string(a))
				break
			}
		}
	}
	return actions
}
