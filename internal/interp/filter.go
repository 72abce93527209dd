package interp

import (
	"fmt"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/command"
	"github.com/dekarrin/shrdlite/internal/ierr"
	"github.com/dekarrin/shrdlite/internal/util"
)

// resolveEntity returns every identifier that satisfies e: first the flat
// ObjectDescription match over every identifier in the world (the union of
// all stack contents), then, if e has a nested Location, intersected with
// whatever filterRelations resolves for that location. A description with
// zero matches raises ierr.ErrNoMatchingObject.
//
// resolveEntity and filterRelations are mutually recursive, following the
// nesting depth of the user's utterance; no memoization is needed since that
// depth is bounded by the parse itself.
func resolveEntity(e command.Entity, state blocks.WorldState) (util.StringSet, error) {
	candidates := util.NewStringSet()

	// The floor never sits in a stack, so it is never reached by iterating
	// AllIdentifiers; it is matched directly against its sentinel object.
	if e.Description.Form == blocks.FormFloor {
		if matches(blocks.FloorObject, e.Description) {
			candidates.Add(blocks.FloorID)
		}
	} else {
		for _, id := range state.AllIdentifiers() {
			obj, ok := state.Attributes(id)
			if ok && matches(obj, e.Description) {
				candidates.Add(id)
			}
		}
	}

	// The held object never sits in a stack either, so it is likewise
	// invisible to AllIdentifiers; fold it in before checking for an empty
	// result so "take the red ball" still resolves when the only red ball
	// is the one already in the arm.
	if holdingMatches(state, e.Description) {
		candidates.Add(state.Holding)
	}

	if e.Location != nil {
		related, err := filterRelations(*e.Location, state)
		if err != nil {
			return nil, err
		}
		candidates = candidates.Intersection(related).(util.StringSet)
	}

	if candidates.Empty() {
		return nil, ierr.NoMatchingObject(describe(e.Description))
	}
	return candidates, nil
}

// filterRelations resolves the delimiter entity of loc, then returns every
// identifier standing in loc.Relation to any one of the delimiter's
// resolutions.
func filterRelations(loc command.Location, state blocks.WorldState) (util.StringSet, error) {
	delimiters, err := resolveEntity(*loc.Entity, state)
	if err != nil {
		return nil, err
	}

	result := util.NewStringSet()
	for _, delim := range delimiters.Sorted() {
		result.AddAll(relationSet(loc.Relation, delim, state))
	}
	return result, nil
}

// relationSet returns every identifier standing in relation to delim,
// exactly per the table in the spec's filter_relations contract.
func relationSet(relation blocks.Relation, delim string, state blocks.WorldState) util.StringSet {
	result := util.NewStringSet()

	switch relation {
	case blocks.RelLeftOf, blocks.RelRightOf:
		delimStack, _, ok := state.StackOf(delim)
		if !ok {
			return result
		}
		for si, s := range state.Stacks {
			if (relation == blocks.RelLeftOf && si < delimStack) || (relation == blocks.RelRightOf && si > delimStack) {
				result.AddAll(util.StringSetOf(s))
			}
		}

	case blocks.RelAbove:
		if delim == blocks.FloorID {
			for _, s := range state.Stacks {
				if len(s) > 0 {
					result.Add(s[0])
				}
			}
			return result
		}
		si, pos, ok := state.StackOf(delim)
		if !ok {
			return result
		}
		result.AddAll(util.StringSetOf(state.Stacks[si][pos+1:]))

	case blocks.RelUnder:
		si, pos, ok := state.StackOf(delim)
		if !ok {
			return result
		}
		result.AddAll(util.StringSetOf(state.Stacks[si][:pos]))

	case blocks.RelInside:
		dest, ok := state.Attributes(delim)
		if !ok || dest.Form != blocks.FormBox {
			return result
		}
		if si, pos, ok := state.StackOf(delim); ok && pos+1 < len(state.Stacks[si]) {
			result.Add(state.Stacks[si][pos+1])
		}

	case blocks.RelOntop:
		if delim == blocks.FloorID {
			for _, s := range state.Stacks {
				if len(s) > 0 {
					result.Add(s[0])
				}
			}
			return result
		}
		dest, ok := state.Attributes(delim)
		if !ok || dest.Form == blocks.FormBox {
			return result
		}
		if si, pos, ok := state.StackOf(delim); ok && pos+1 < len(state.Stacks[si]) {
			result.Add(state.Stacks[si][pos+1])
		}

	case blocks.RelBeside:
		delimStack, _, ok := state.StackOf(delim)
		if !ok {
			return result
		}
		for _, adj := range []int{delimStack - 1, delimStack + 1} {
			if adj >= 0 && adj < len(state.Stacks) {
				result.AddAll(util.StringSetOf(state.Stacks[adj]))
			}
		}
	}

	return result
}

// holdingMatches reports whether the world's currently-held object (if any)
// satisfies desc.
func holdingMatches(state blocks.WorldState, desc command.ObjectDescription) bool {
	if state.Holding == "" {
		return false
	}
	obj, ok := state.Attributes(state.Holding)
	return ok && matches(obj, desc)
}

// clarify builds the human-readable candidate list used by ambiguous-the
// errors.
func clarify(ids []string, state blocks.WorldState) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = describeCandidate(id, state)
	}
	return fmt.Sprintf("did you mean %s?", util.MakeTextList(parts))
}
