// Package interp resolves a parsed Command against a blocks.WorldState into
// one or more candidate goal formulas, applying the referring-expression
// filter, the physical-legality law, and the quantifier-combination rules
// that together decide what an utterance is asking the planner to achieve.
package interp

import (
	"errors"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/command"
	"github.com/dekarrin/shrdlite/internal/dnf"
	"github.com/dekarrin/shrdlite/internal/ierr"
)

// Interpretation pairs one parse's Command with the goal formula it lowers
// to. The planner treats the Goal as the thing to satisfy; Cmd is retained
// so callers can tell which parse a goal came from.
type Interpretation struct {
	Cmd  command.Command
	Goal dnf.Formula
}

// Interpret lowers every parse in parses against state, returning one
// Interpretation per parse that produced a usable goal. A parse that fails
// with a non-ambiguity error is dropped silently as long as at least one
// other parse succeeds; if every parse fails, the first error encountered is
// returned. An ambiguous-the error is never swallowed: it is surfaced
// immediately, even if earlier parses already succeeded, since silently
// picking one of several live interpretations would hide a real decision
// the user needs to make.
func Interpret(parses []command.ParseResult, state blocks.WorldState) ([]Interpretation, error) {
	if len(parses) == 0 {
		return nil, ierr.ParseEmpty()
	}

	var results []Interpretation
	var firstErr error
	for _, p := range parses {
		goal, err := interpretOne(p.Cmd, state)
		if err != nil {
			if errors.Is(err, ierr.ErrAmbiguousThe) {
				return nil, err
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results = append(results, Interpretation{Cmd: p.Cmd, Goal: goal})
	}

	if len(results) == 0 {
		return nil, firstErr
	}
	return results, nil
}

func interpretOne(cmd command.Command, state blocks.WorldState) (dnf.Formula, error) {
	switch c := cmd.(type) {
	case command.Take:
		return interpretTake(c, state)
	case command.Move:
		return interpretMove(c, state)
	case command.Put:
		return interpretPut(c, state)
	default:
		return nil, ierr.NoValidInterpretation("unrecognized command")
	}
}

func interpretTake(c command.Take, state blocks.WorldState) (dnf.Formula, error) {
	candidates, err := resolveEntity(c.Entity, state)
	if err != nil {
		return nil, err
	}

	ids := candidates.Sorted()
	if c.Entity.Quantifier == command.QuantifierThe && len(ids) > 1 {
		return nil, ierr.AmbiguousThe(clarify(ids, state))
	}

	formula := make(dnf.Formula, 0, len(ids))
	for _, id := range ids {
		formula = append(formula, dnf.SingleLiteral(dnf.Literal{
			Positive: true,
			Relation: blocks.RelHolding,
			Args:     []string{id},
		}))
	}
	return dnf.Dedup(formula), nil
}

func interpretMove(c command.Move, state blocks.WorldState) (dnf.Formula, error) {
	sources, err := resolveEntity(c.Entity, state)
	if err != nil {
		return nil, err
	}

	dests, dQuant, err := resolveDestination(c.Location, state)
	if err != nil {
		return nil, err
	}

	return buildDNF(sources.Sorted(), c.Entity.Quantifier, dests, dQuant, c.Location.Relation, state)
}

func interpretPut(c command.Put, state blocks.WorldState) (dnf.Formula, error) {
	if state.Holding == "" {
		return nil, ierr.NoMatchingObject("anything; the arm is not holding anything")
	}

	dests, dQuant, err := resolveDestination(c.Location, state)
	if err != nil {
		return nil, err
	}

	return buildDNF([]string{state.Holding}, command.QuantifierThe, dests, dQuant, c.Location.Relation, state)
}

// resolveDestination resolves a Location's delimiter entity into the set of
// identifiers a goal literal may use as a destination.
func resolveDestination(loc command.Location, state blocks.WorldState) ([]string, command.Quantifier, error) {
	ids, err := resolveEntity(*loc.Entity, state)
	if err != nil {
		return nil, "", err
	}
	return ids.Sorted(), loc.Entity.Quantifier, nil
}
