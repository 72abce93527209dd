package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testWorld() WorldState {
	return WorldState{
		Objects: map[string]Object{
			"e": {Form: FormBall, Size: SizeLarge, Color: "white"},
			"f": {Form: FormBall, Size: SizeSmall, Color: "black"},
			"g": {Form: FormTable, Size: SizeLarge, Color: "blue"},
			"k": {Form: FormBox, Size: SizeLarge, Color: "yellow"},
			"l": {Form: FormBox, Size: SizeLarge, Color: "red"},
			"m": {Form: FormBox, Size: SizeSmall, Color: "red"},
			"p": {Form: FormPyramid, Size: SizeSmall, Color: "green"},
			"n": {Form: FormPlank, Size: SizeLarge, Color: "white"},
		},
		Stacks: [][]string{{"e"}, {"l", "g", "m"}, {"k"}, {}, {"f"}},
		Arm:    0,
	}
}

func Test_IsValid(t *testing.T) {
	w := testWorld()

	testCases := []struct {
		name     string
		move     string
		dest     string
		relation Relation
		want     bool
	}{
		{"large ball inside small box: law 1", "e", "m", RelInside, false},
		{"small ball inside small box: ok", "f", "m", RelInside, true},
		{"ball under anything: law 2", "e", "k", RelUnder, false},
		{"ball ontop table: law 3", "e", "g", RelOntop, false},
		{"ball ontop floor: ok", "e", FloorID, RelOntop, true},
		{"ball inside box: ok", "f", "k", RelInside, true},
		{"anything ontop box: law 4", "g", "k", RelOntop, false},
		{"non-box inside: law 4", "e", "g", RelInside, false},
		{"anything ontop ball: law 5", "f", "e", RelOntop, false},
		{"pyramid inside box: law 6", "p", "k", RelInside, false},
		{"plank inside box: law 6", "n", "k", RelInside, false},
		{"same-size box inside box: law 6", "k", "l", RelInside, false},
		{"different-size box inside box: ok", "m", "k", RelInside, true},
		{"small box ontop small pyramid: law 7", "m", "p", RelOntop, false},
		{"large box ontop pyramid: law 8", "k", "p", RelOntop, false},
		{"object leftof itself: law 9", "e", "e", RelLeftOf, false},
		{"object leftof other: ok", "e", "f", RelLeftOf, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsValid(w, tc.move, tc.dest, tc.relation)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_WorldState_Clone_independentStacks(t *testing.T) {
	w := testWorld()
	clone := w.Clone()

	clone.Stacks[0] = append(clone.Stacks[0], "f")

	assert.Len(t, w.Stacks[0], 1, "original stack must not be affected by mutation of the clone")
	assert.Len(t, clone.Stacks[0], 2)

	// Objects table is shared read-only: same underlying map value.
	clone.Objects["new"] = Object{Form: FormBrick}
	_, presentInOriginal := w.Objects["new"]
	assert.True(t, presentInOriginal, "Objects map must be the same shared map across clones")
}

func Test_WorldState_String_deterministic(t *testing.T) {
	w := testWorld()
	w.Holding = "p"

	s1 := w.String()
	s2 := w.String()

	assert.Equal(t, s1, s2)
	assert.Contains(t, s1, "p")
	assert.Contains(t, s1, "e")
}
