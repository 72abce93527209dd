package interp

import (
	"testing"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/command"
	"github.com/stretchr/testify/assert"
)

func Test_matches(t *testing.T) {
	ball := blocks.Object{Form: blocks.FormBall, Size: blocks.SizeLarge, Color: "White"}

	assert.True(t, matches(ball, command.ObjectDescription{}))
	assert.True(t, matches(ball, command.ObjectDescription{Form: blocks.FormAny}))
	assert.True(t, matches(ball, command.ObjectDescription{Color: "white"}), "color comparison is case-insensitive")
	assert.False(t, matches(ball, command.ObjectDescription{Color: "red"}))
	assert.False(t, matches(ball, command.ObjectDescription{Form: blocks.FormBox}))
	assert.False(t, matches(ball, command.ObjectDescription{Size: blocks.SizeSmall}))
}

func Test_resolveEntity_floorSentinel(t *testing.T) {
	w := scenarioWorld()

	ids, err := resolveEntity(entity(command.QuantifierThe, command.ObjectDescription{Form: blocks.FormFloor}), w)

	assert.NoError(t, err)
	assert.Equal(t, []string{"floor"}, ids.Sorted())
}

func Test_resolveEntity_noMatch(t *testing.T) {
	w := scenarioWorld()

	_, err := resolveEntity(entity(command.QuantifierAny, command.ObjectDescription{Form: blocks.FormPyramid}), w)

	assert.Error(t, err)
}

func Test_resolveEntity_nestedLocation(t *testing.T) {
	w := scenarioWorld()

	// "the box on the table" - g (table) has m directly ontop of it.
	e := command.Entity{
		Quantifier:  command.QuantifierThe,
		Description: command.ObjectDescription{Form: blocks.FormBox},
		Location: &command.Location{
			Relation: blocks.RelOntop,
			Entity:   ptr(entity(command.QuantifierThe, command.ObjectDescription{Form: blocks.FormTable})),
		},
	}

	ids, err := resolveEntity(e, w)

	assert.NoError(t, err)
	assert.Equal(t, []string{"m"}, ids.Sorted())
}

func Test_relationSet_leftOfRightOf(t *testing.T) {
	w := scenarioWorld()

	left := relationSet(blocks.RelLeftOf, "k", w) // k is stack2; left = stacks 0,1
	assert.ElementsMatch(t, []string{"e", "l", "g", "m"}, left.Elements())

	right := relationSet(blocks.RelRightOf, "k", w) // right = stacks 3,4
	assert.ElementsMatch(t, []string{"f"}, right.Elements())
}

func Test_relationSet_above(t *testing.T) {
	w := scenarioWorld()

	above := relationSet(blocks.RelAbove, "l", w) // l is bottom of stack1; above = g,m
	assert.ElementsMatch(t, []string{"g", "m"}, above.Elements())

	aboveFloor := relationSet(blocks.RelAbove, blocks.FloorID, w)
	assert.ElementsMatch(t, []string{"e", "l", "k", "f"}, aboveFloor.Elements())
}

func Test_relationSet_under(t *testing.T) {
	w := scenarioWorld()

	under := relationSet(blocks.RelUnder, "m", w) // m is top of stack1; under = l,g
	assert.ElementsMatch(t, []string{"l", "g"}, under.Elements())
}

func Test_relationSet_inside(t *testing.T) {
	w := scenarioWorld()

	// nothing is physically inside m in this world (m is top of its stack).
	inside := relationSet(blocks.RelInside, "m", w)
	assert.True(t, inside.Empty())

	notABox := relationSet(blocks.RelInside, "g", w)
	assert.True(t, notABox.Empty())
}

func Test_relationSet_ontop_floorMeansEveryStackBottom(t *testing.T) {
	w := scenarioWorld()

	onFloor := relationSet(blocks.RelOntop, blocks.FloorID, w)
	assert.ElementsMatch(t, []string{"e", "l", "k", "f"}, onFloor.Elements())
}

func Test_relationSet_beside(t *testing.T) {
	w := scenarioWorld()

	beside := relationSet(blocks.RelBeside, "k", w) // k is stack2; adjacent are stack1 and stack3
	assert.ElementsMatch(t, []string{"l", "g", "m"}, beside.Elements())
}

func Test_holdingMatches(t *testing.T) {
	w := scenarioWorld()
	assert.False(t, holdingMatches(w, command.ObjectDescription{Form: blocks.FormBall}))

	w.Holding = "f"
	assert.True(t, holdingMatches(w, command.ObjectDescription{Form: blocks.FormBall}))
	assert.False(t, holdingMatches(w, command.ObjectDescription{Form: blocks.FormBox}))
}

func Test_clarify_mentionsStackPositions(t *testing.T) {
	w := scenarioWorld()

	msg := clarify([]string{"e", "f"}, w)

	assert.Contains(t, msg, "stack 1")
	assert.Contains(t, msg, "stack 5")
}
