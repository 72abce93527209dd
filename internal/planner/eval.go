// Package planner turns an interpreted goal formula into a sequence of
// primitive actions, via A* search over the blocks-world state graph, and
// reconstructs a human/machine-readable plan from the resulting path.
package planner

import (
	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/dnf"
	"github.com/dekarrin/shrdlite/internal/graph"
)

// GoalPredicate compiles formula into the predicate the search package's
// goal check needs: the state satisfies formula if any one conjunction's
// literals all hold.
func GoalPredicate(formula dnf.Formula) func(graph.StateNode) bool {
	return func(n graph.StateNode) bool {
		for _, conj := range formula {
			satisfied := true
			for _, lit := range conj {
				if !literalHolds(n.State, lit) {
					satisfied = false
					break
				}
			}
			if satisfied {
				return true
			}
		}
		return false
	}
}

// literalHolds evaluates one signed literal against state, per the goal
// evaluator's per-relation table. A binary relation is never satisfied
// while the arm holds either of its arguments: the relation is not
// observable until the object is set back down.
func literalHolds(state blocks.WorldState, lit dnf.Literal) bool {
	holds := evalUnsigned(state, lit.Relation, lit.Args)
	if !lit.Positive {
		return !holds
	}
	return holds
}

func evalUnsigned(state blocks.WorldState, relation blocks.Relation, args []string) bool {
	if relation == blocks.RelHolding {
		return state.Holding == args[0]
	}

	a, b := args[0], args[1]
	if state.Holding == a || state.Holding == b {
		return false
	}

	switch relation {
	case blocks.RelOntop, blocks.RelInside:
		if b == blocks.FloorID {
			_, pos, ok := state.StackOf(a)
			return ok && pos == 0
		}
		siA, posA, okA := state.StackOf(a)
		siB, posB, okB := state.StackOf(b)
		return okA && okB && siA == siB && posA == posB+1

	case blocks.RelAbove:
		if b == blocks.FloorID {
			_, _, ok := state.StackOf(a)
			return ok
		}
		siA, posA, okA := state.StackOf(a)
		siB, posB, okB := state.StackOf(b)
		return okA && okB && siA == siB && posA > posB

	case blocks.RelUnder:
		siA, posA, okA := state.StackOf(a)
		siB, posB, okB := state.StackOf(b)
		return okA && okB && siA == siB && posA < posB

	case blocks.RelLeftOf:
		siA, _, okA := state.StackOf(a)
		siB, _, okB := state.StackOf(b)
		return okA && okB && siA < siB

	case blocks.RelRightOf:
		siA, _, okA := state.StackOf(a)
		siB, _, okB := state.StackOf(b)
		return okA && okB && siA > siB

	case blocks.RelBeside:
		siA, _, okA := state.StackOf(a)
		siB, _, okB := state.StackOf(b)
		return okA && okB && (siA == siB-1 || siA == siB+1)
	}
	return false
}

// Heuristic compiles formula into the search package's admissible heuristic:
// the minimum, over conjunctions, of the sum of each literal's blocker
// count.
func Heuristic(formula dnf.Formula) func(graph.StateNode) int {
	return func(n graph.StateNode) int {
		best := -1
		for _, conj := range formula {
			sum := 0
			for _, lit := range conj {
				sum += literalHeuristic(n.State, lit)
			}
			if best == -1 || sum < best {
				best = sum
			}
		}
		if best == -1 {
			return 0
		}
		return best
	}
}

// blockersAbove counts how many objects sit above id in its stack; the
// floor has none.
func blockersAbove(state blocks.WorldState, id string) int {
	if id == blocks.FloorID {
		return 0
	}
	si, pos, ok := state.StackOf(id)
	if !ok {
		return 0
	}
	return len(state.Stacks[si]) - pos - 1
}

func shortestStackHeight(state blocks.WorldState) int {
	min := -1
	for _, s := range state.Stacks {
		if min == -1 || len(s) < min {
			min = len(s)
		}
	}
	if min == -1 {
		return 0
	}
	return min
}

// literalHeuristic estimates the remaining blocker-removal cost for a
// single literal. Negative literals (the goal is that a relation NOT hold)
// are given a heuristic of zero: the generic blocker count has no
// established admissible analog for a negated goal, and zero is always a
// safe (if uninformative) lower bound.
func literalHeuristic(state blocks.WorldState, lit dnf.Literal) int {
	if !lit.Positive {
		return 0
	}
	if lit.Relation == blocks.RelHolding {
		o := lit.Args[0]
		if state.Holding == o {
			return 0
		}
		return blockersAbove(state, o)
	}

	if evalUnsigned(state, lit.Relation, lit.Args) {
		return 0
	}

	a, b := lit.Args[0], lit.Args[1]
	switch lit.Relation {
	case blocks.RelOntop, blocks.RelInside:
		dest := blockersAbove(state, b)
		if b == blocks.FloorID {
			dest = shortestStackHeight(state)
		}
		return blockersAbove(state, a) + dest

	case blocks.RelAbove, blocks.RelUnder:
		return blockersAbove(state, a)

	case blocks.RelLeftOf, blocks.RelRightOf, blocks.RelBeside:
		ba, bb := blockersAbove(state, a), blockersAbove(state, b)
		if ba < bb {
			return ba
		}
		return bb
	}
	return 0
}
