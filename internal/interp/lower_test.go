package interp

import (
	"testing"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/command"
	"github.com/dekarrin/shrdlite/internal/ierr"
	"github.com/stretchr/testify/assert"
)

func Test_buildDNF_allAllOntopIsIllegal(t *testing.T) {
	w := scenarioWorld()

	_, err := buildDNF([]string{"e", "f"}, command.QuantifierAll, []string{"k", "l"}, command.QuantifierAll, blocks.RelOntop, w)

	assert.ErrorIs(t, err, ierr.ErrNoValidInterpretation)
}

func Test_buildDNF_theAllInsideNonFloorDestinationIsIllegal(t *testing.T) {
	w := scenarioWorld()

	// "put the ball in all boxes" - one object can't be inside two distinct
	// non-floor boxes simultaneously.
	_, err := buildDNF([]string{"f"}, command.QuantifierThe, []string{"k", "l", "m"}, command.QuantifierAll, blocks.RelInside, w)

	assert.ErrorIs(t, err, ierr.ErrNoValidInterpretation)
}

func Test_buildDNF_theAllOntopFloorIsLegal(t *testing.T) {
	w := scenarioWorld()

	got, err := buildDNF([]string{"e", "f"}, command.QuantifierAll, []string{"floor"}, command.QuantifierThe, blocks.RelOntop, w)

	assert.NoError(t, err)
	assertFormulaEquivalent(t, []string{"ontop(e,floor) & ontop(f,floor)"}, got)
}

func Test_buildDNF_ambiguousThe(t *testing.T) {
	w := scenarioWorld()

	// "put the ball in k" where both e and f could go - the/any gives one
	// singleton conjunction per valid pair, and with two sources that is
	// ambiguous.
	_, err := buildDNF([]string{"e", "f"}, command.QuantifierThe, []string{"k"}, command.QuantifierAny, blocks.RelInside, w)

	assert.ErrorIs(t, err, ierr.ErrAmbiguousThe)
}

func Test_buildDNF_noValidPairingAtAll(t *testing.T) {
	w := scenarioWorld()

	_, err := buildDNF([]string{"g"}, command.QuantifierThe, []string{"m"}, command.QuantifierThe, blocks.RelInside, w)

	assert.ErrorIs(t, err, ierr.ErrNoValidInterpretation)
}

func Test_splitIntoSlices_nearEqualConsecutive(t *testing.T) {
	pairs := []pair{{"a", "1"}, {"a", "2"}, {"b", "1"}, {"b", "2"}, {"c", "1"}}

	slices := splitIntoSlices(pairs, 2)

	assert.Len(t, slices, 2)
	total := 0
	for _, s := range slices {
		total += len(s)
	}
	assert.Equal(t, len(pairs), total)
}

func Test_splitIntoSlices_dropsEmptyRuns(t *testing.T) {
	pairs := []pair{{"a", "1"}}

	slices := splitIntoSlices(pairs, 5)

	assert.Len(t, slices, 1)
}

func Test_cartesianProduct(t *testing.T) {
	order := []string{"e", "f"}
	groups := map[string][]string{
		"e": {"k", "l"},
		"f": {"k"},
	}

	formula := cartesianProduct(order, groups, blocks.RelInside)

	assertFormulaEquivalent(t, []string{
		"inside(e,k) & inside(f,k)",
		"inside(e,l) & inside(f,k)",
	}, formula)
}

func Test_hasNonFloorDestination(t *testing.T) {
	assert.False(t, hasNonFloorDestination([]string{"floor"}))
	assert.True(t, hasNonFloorDestination([]string{"floor", "k"}))
}
