// Package command defines the Command AST the external parser produces:
// Take/Move/Put commands over entities built from quantified object
// descriptions, optionally constrained by a spatial location clause.
package command

import "github.com/dekarrin/shrdlite/internal/blocks"

// Quantifier is how many of the matches of a description a command intends
// to act on.
type Quantifier string

const (
	// QuantifierThe means the description must pick out exactly one
	// candidate once all constraints are applied.
	QuantifierThe Quantifier = "the"

	// QuantifierAny means any one candidate will do ("a"/"an"/"any").
	QuantifierAny Quantifier = "any"

	// QuantifierAll means every candidate is intended ("all"/"every").
	QuantifierAll Quantifier = "all"
)

// ObjectDescription constrains a referring expression by form, size, and
// color. A zero-value field means "unconstrained"; blocks.FormAny is an
// explicit wildcard form with the same effect as leaving Form empty.
type ObjectDescription struct {
	Form  blocks.Form
	Size  blocks.Size
	Color string
}

// Location is a relation symbol plus the entity it relates to (the
// "delimiter" in interpreter terminology).
type Location struct {
	Relation blocks.Relation
	Entity   *Entity
}

// Entity is a quantified referring expression: a flat ObjectDescription, or
// one further constrained by a Location clause that restricts the referent
// by its spatial context.
type Entity struct {
	Quantifier  Quantifier
	Description ObjectDescription

	// Location is nil for a flat description, non-nil for a description
	// nested inside a spatial constraint ("the box on the table").
	Location *Location
}

// Command is a single parsed instruction: Take, Move, or Put.
type Command interface {
	isCommand()
}

// Take asks the arm to pick up whatever Entity resolves to.
type Take struct {
	Entity Entity
}

func (Take) isCommand() {}

// Move asks the arm to relocate whatever Entity (the source) resolves to,
// to wherever Location (the destination) resolves to.
type Move struct {
	Entity   Entity
	Location Location
}

func (Move) isCommand() {}

// Put asks the arm to set down whatever it is currently holding at wherever
// Location resolves to. It carries no source entity: the source is
// whatever the arm holds at interpretation time.
type Put struct {
	Location Location
}

func (Put) isCommand() {}
