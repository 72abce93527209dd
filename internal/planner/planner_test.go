package planner

import (
	"testing"
	"time"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/command"
	"github.com/dekarrin/shrdlite/internal/dnf"
	"github.com/dekarrin/shrdlite/internal/graph"
	"github.com/dekarrin/shrdlite/internal/interp"
	"github.com/stretchr/testify/assert"
)

func Test_Plan_vacuousSuccess(t *testing.T) {
	w := testWorld()
	it := interp.Interpretation{
		Cmd:  command.Take{},
		Goal: dnf.Formula{dnf.Conjunction{literal(true, blocks.RelOntop, "e", blocks.FloorID)}},
	}

	results, err := Plan([]interp.Interpretation{it}, w, DefaultTimeout)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, []string{VacuousUtterance}, results[0].Plan)
}

func Test_Plan_pickUpDirectlyUnderArm(t *testing.T) {
	w := testWorld()
	w.Arm = 0

	it := interp.Interpretation{
		Cmd:  command.Take{},
		Goal: dnf.Formula{dnf.Conjunction{literal(true, blocks.RelHolding, "e")}},
	}

	results, err := Plan([]interp.Interpretation{it}, w, DefaultTimeout)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, []string{"p"}, results[0].Plan)
}

// Test_Plan_putBallInBox_replayReachesGoal exercises a plan that requires the arm to travel
// before acting, and verifies the round-trip property from the testable
// properties: replaying the plan's actions from the start state must reach
// a state where the goal evaluator returns true.
func Test_Plan_putBallInBox_replayReachesGoal(t *testing.T) {
	w := blocks.WorldState{
		Objects: map[string]blocks.Object{
			"e": {Form: blocks.FormBall, Size: blocks.SizeSmall, Color: "white"},
			"k": {Form: blocks.FormBox, Size: blocks.SizeLarge, Color: "yellow"},
		},
		Stacks: [][]string{{"e"}, {}, {"k"}},
		Arm:    0,
	}
	goal := dnf.Formula{dnf.Conjunction{literal(true, blocks.RelInside, "e", "k")}}
	it := interp.Interpretation{Cmd: command.Take{}, Goal: goal}

	results, err := Plan([]interp.Interpretation{it}, w, DefaultTimeout)
	assert.NoError(t, err)
	assert.Len(t, results, 1)

	plan := results[0].Plan
	assert.NotEmpty(t, plan)

	final := w
	for _, step := range plan {
		next, ok := graph.Apply(final, graph.Action(step))
		assert.True(t, ok, "action %q must be replayable", step)
		final = next
	}

	assert.True(t, GoalPredicate(goal)(graph.StateNode{State: final}))
}

func Test_Plan_multipleInterpretations_suppressesFailures(t *testing.T) {
	w := testWorld()

	good := interp.Interpretation{
		Cmd:  command.Take{},
		Goal: dnf.Formula{dnf.Conjunction{literal(true, blocks.RelHolding, "e")}},
	}
	// A formula that can never be satisfied (an object holding itself above
	// itself) forces a no-path failure for this interpretation alone.
	bad := interp.Interpretation{
		Cmd:  command.Take{},
		Goal: dnf.Formula{dnf.Conjunction{literal(true, blocks.RelAbove, "e", "e")}},
	}

	results, err := Plan([]interp.Interpretation{bad, good}, w, 2*time.Second)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, []string{"p"}, results[0].Plan)
}
