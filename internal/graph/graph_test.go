package graph

import (
	"testing"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/stretchr/testify/assert"
)

func testWorld() blocks.WorldState {
	return blocks.WorldState{
		Objects: map[string]blocks.Object{
			"e": {Form: blocks.FormBall, Size: blocks.SizeLarge, Color: "white"},
			"f": {Form: blocks.FormBall, Size: blocks.SizeSmall, Color: "black"},
			"g": {Form: blocks.FormTable, Size: blocks.SizeLarge, Color: "blue"},
			"k": {Form: blocks.FormBox, Size: blocks.SizeLarge, Color: "yellow"},
		},
		Stacks: [][]string{{"e"}, {"g"}, {"k"}, {}},
		Arm:    1,
	}
}

func Test_Apply_leftRight(t *testing.T) {
	w := testWorld()

	next, ok := Apply(w, ActionLeft)
	assert.True(t, ok)
	assert.Equal(t, 0, next.Arm)

	_, ok = Apply(next, ActionLeft)
	assert.False(t, ok, "arm is already at column 0")

	next, ok = Apply(w, ActionRight)
	assert.True(t, ok)
	assert.Equal(t, 2, next.Arm)
}

func Test_Apply_pickAndDrop(t *testing.T) {
	w := testWorld()
	w.Arm = 0 // over column holding e

	picked, ok := Apply(w, ActionPick)
	assert.True(t, ok)
	assert.Equal(t, "e", picked.Holding)
	assert.Empty(t, picked.Stacks[0])

	_, ok = Apply(picked, ActionPick)
	assert.False(t, ok, "already holding something")

	picked.Arm = 3 // empty column; drop lands on the floor
	dropped, ok := Apply(picked, ActionDrop)
	assert.True(t, ok)
	assert.Empty(t, dropped.Holding)
	assert.Equal(t, []string{"e"}, dropped.Stacks[3])
}

func Test_Apply_dropRejectsIllegalPlacement(t *testing.T) {
	w := testWorld()
	w.Arm = 0
	picked, _ := Apply(w, ActionPick) // holding e, a large ball

	picked.Arm = 2 // column topped by k, a large box - ball may enter a box
	if _, ok := Apply(picked, ActionDrop); !ok {
		t.Fatal("expected dropping a ball into a box to be legal")
	}

	// Now try dropping the large ball directly onto the table (not inside a
	// box): law 3 forbids balls resting on anything but a box or the floor.
	picked.Arm = 1
	_, ok := Apply(picked, ActionDrop)
	assert.False(t, ok)
}

func Test_Apply_doesNotMutateInput(t *testing.T) {
	w := testWorld()
	original := w.String()

	_, _ = Apply(w, ActionLeft)

	assert.Equal(t, original, w.String())
}

func Test_OutgoingEdges(t *testing.T) {
	w := testWorld()
	w.Arm = 0

	edges := OutgoingEdges(StateNode{State: w})

	var actions []Action
	for _, e := range edges {
		actions = append(actions, e.Action)
	}
	assert.Contains(t, actions, ActionRight)
	assert.Contains(t, actions, ActionPick)
	assert.NotContains(t, actions, ActionLeft, "arm is already at column 0")
}
