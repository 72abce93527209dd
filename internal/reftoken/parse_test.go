package reftoken

import (
	"testing"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, utterance string) command.Command {
	t.Helper()
	results, err := New().Parse(utterance)
	require.NoError(t, err)
	require.Len(t, results, 1)
	return results[0].Cmd
}

func Test_Parse_takeABlueObject(t *testing.T) {
	cmd := parseOne(t, "take a blue object")

	take, ok := cmd.(command.Take)
	require.True(t, ok)
	assert.Equal(t, command.QuantifierAny, take.Entity.Quantifier)
	assert.Equal(t, blocks.FormAny, take.Entity.Description.Form)
	assert.Equal(t, "blue", take.Entity.Description.Color)
	assert.Nil(t, take.Entity.Location)
}

func Test_Parse_putAllBallsOnTheFloor(t *testing.T) {
	cmd := parseOne(t, "put all balls on the floor")

	move, ok := cmd.(command.Move)
	require.True(t, ok)
	assert.Equal(t, command.QuantifierAll, move.Entity.Quantifier)
	assert.Equal(t, blocks.FormBall, move.Entity.Description.Form)
	assert.Equal(t, blocks.RelOntop, move.Location.Relation)
	require.NotNil(t, move.Location.Entity)
	assert.Equal(t, command.QuantifierThe, move.Location.Entity.Quantifier)
	assert.Equal(t, blocks.FormFloor, move.Location.Entity.Description.Form)
}

func Test_Parse_putABallInEveryLargeBox(t *testing.T) {
	cmd := parseOne(t, "put a ball in every large box")

	move, ok := cmd.(command.Move)
	require.True(t, ok)
	assert.Equal(t, command.QuantifierAny, move.Entity.Quantifier)
	assert.Equal(t, blocks.FormBall, move.Entity.Description.Form)
	assert.Equal(t, blocks.RelInside, move.Location.Relation)
	require.NotNil(t, move.Location.Entity)
	assert.Equal(t, command.QuantifierAll, move.Location.Entity.Quantifier)
	assert.Equal(t, blocks.SizeLarge, move.Location.Entity.Description.Size)
	assert.Equal(t, blocks.FormBox, move.Location.Entity.Description.Form)
}

func Test_Parse_takeTheBallInTheBox(t *testing.T) {
	cmd := parseOne(t, "take the ball in the box")

	take, ok := cmd.(command.Take)
	require.True(t, ok)
	assert.Equal(t, command.QuantifierThe, take.Entity.Quantifier)
	assert.Equal(t, blocks.FormBall, take.Entity.Description.Form)
	require.NotNil(t, take.Entity.Location)
	assert.Equal(t, blocks.RelInside, take.Entity.Location.Relation)
	assert.Equal(t, blocks.FormBox, take.Entity.Location.Entity.Description.Form)
}

func Test_Parse_moveTheLargeBoxBesideTheTable(t *testing.T) {
	cmd := parseOne(t, "move the large box beside the table")

	move, ok := cmd.(command.Move)
	require.True(t, ok)
	assert.Equal(t, command.QuantifierThe, move.Entity.Quantifier)
	assert.Equal(t, blocks.SizeLarge, move.Entity.Description.Size)
	assert.Equal(t, blocks.FormBox, move.Entity.Description.Form)
	assert.Equal(t, blocks.RelBeside, move.Location.Relation)
	assert.Equal(t, blocks.FormTable, move.Location.Entity.Description.Form)
}

func Test_Parse_putDown(t *testing.T) {
	cmd := parseOne(t, "put down on the floor")

	put, ok := cmd.(command.Put)
	require.True(t, ok)
	assert.Equal(t, blocks.RelOntop, put.Location.Relation)
	assert.Equal(t, blocks.FormFloor, put.Location.Entity.Description.Form)
}

func Test_Parse_pickUpAlias(t *testing.T) {
	cmd := parseOne(t, "pick up the red box")

	take, ok := cmd.(command.Take)
	require.True(t, ok)
	assert.Equal(t, "red", take.Entity.Description.Color)
	assert.Equal(t, blocks.FormBox, take.Entity.Description.Form)
}

func Test_Parse_onTopOfPhraseCollapses(t *testing.T) {
	cmd := parseOne(t, "take the ball on top of the table")

	take, ok := cmd.(command.Take)
	require.True(t, ok)
	require.NotNil(t, take.Entity.Location)
	assert.Equal(t, blocks.RelOntop, take.Entity.Location.Relation)
}

func Test_Parse_leftOfAndRightOfPhrasesCollapse(t *testing.T) {
	left := parseOne(t, "take the ball left of the box").(command.Take)
	assert.Equal(t, blocks.RelLeftOf, left.Entity.Location.Relation)

	right := parseOne(t, "take the ball right of the box").(command.Take)
	assert.Equal(t, blocks.RelRightOf, right.Entity.Location.Relation)
}

func Test_Parse_emptyUtterance(t *testing.T) {
	results, err := New().Parse("   ")
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func Test_Parse_unrecognizedVerb(t *testing.T) {
	_, err := New().Parse("juggle the ball")
	assert.Error(t, err)
}

func Test_Parse_missingQuantifier(t *testing.T) {
	_, err := New().Parse("take ball")
	assert.Error(t, err)
}

func Test_Parse_truncatedLocation(t *testing.T) {
	_, err := New().Parse("take the ball on")
	assert.Error(t, err)
}
