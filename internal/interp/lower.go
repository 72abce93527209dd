package interp

import (
	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/command"
	"github.com/dekarrin/shrdlite/internal/dnf"
	"github.com/dekarrin/shrdlite/internal/ierr"
)

// pair is one (source, destination) combination considered while lowering a
// Move or Put command into a goal formula.
type pair struct {
	source string
	dest   string
}

func literalFor(p pair, relation blocks.Relation) dnf.Literal {
	return dnf.Literal{Positive: true, Relation: relation, Args: []string{p.source, p.dest}}
}

func conjunctionFromPairs(pairs []pair, relation blocks.Relation) dnf.Conjunction {
	c := make(dnf.Conjunction, len(pairs))
	for i, p := range pairs {
		c[i] = literalFor(p, relation)
	}
	return c
}

// validPairs enumerates the cartesian product of sources x dests, filtered
// by blocks.IsValid, in deterministic (sources-major) order.
func validPairs(sources, dests []string, relation blocks.Relation, state blocks.WorldState) []pair {
	var out []pair
	for _, s := range sources {
		for _, d := range dests {
			if blocks.IsValid(state, s, d, relation) {
				out = append(out, pair{s, d})
			}
		}
	}
	return out
}

// groupBySource buckets valid pairs by source identifier, preserving the
// order sources were first seen to keep cartesianProduct deterministic.
func groupBySource(pairs []pair) (order []string, groups map[string][]string) {
	groups = make(map[string][]string)
	for _, p := range pairs {
		if _, ok := groups[p.source]; !ok {
			order = append(order, p.source)
		}
		groups[p.source] = append(groups[p.source], p.dest)
	}
	return order, groups
}

// cartesianProduct builds one conjunction per combination that picks exactly
// one destination per source in order.
func cartesianProduct(order []string, groups map[string][]string, relation blocks.Relation) dnf.Formula {
	if len(order) == 0 {
		return nil
	}
	combos := [][]pair{{}}
	for _, source := range order {
		var next [][]pair
		for _, combo := range combos {
			for _, dest := range groups[source] {
				extended := append(append([]pair(nil), combo...), pair{source, dest})
				next = append(next, extended)
			}
		}
		combos = next
	}

	formula := make(dnf.Formula, 0, len(combos))
	for _, combo := range combos {
		formula = append(formula, conjunctionFromPairs(combo, relation))
	}
	return formula
}

// splitIntoSlices partitions pairs into k near-equal consecutive runs,
// dropping any run that would be empty.
func splitIntoSlices(pairs []pair, k int) [][]pair {
	if k <= 0 {
		k = 1
	}
	n := len(pairs)
	var slices [][]pair
	for i := 0; i < k; i++ {
		start := i * n / k
		end := (i + 1) * n / k
		if end > start {
			slices = append(slices, pairs[start:end])
		}
	}
	return slices
}

func hasNonFloorDestination(dests []string) bool {
	for _, d := range dests {
		if d != blocks.FloorID {
			return true
		}
	}
	return false
}

// buildDNF implements the quantifier-combination rules of the interpreter's
// command-lowering contract: given the resolved source/destination
// candidate sets, their quantifiers, and the relation between them, it
// produces the goal formula (or a no-valid-interpretation / ambiguous-the
// error).
func buildDNF(sources []string, sQuant command.Quantifier, dests []string, dQuant command.Quantifier, relation blocks.Relation, state blocks.WorldState) (dnf.Formula, error) {
	isSpatialContainment := relation == blocks.RelInside || relation == blocks.RelOntop

	// Rule 1: all X ... all Y with inside/ontop is physically incoherent.
	if sQuant == command.QuantifierAll && dQuant == command.QuantifierAll && isSpatialContainment {
		return nil, ierr.NoValidInterpretation("\"all ... all\" cannot be combined with ontop/inside")
	}

	// Rule 2: any/all cartesian grouped by source.
	groupAndProduct := (sQuant == command.QuantifierAny && dQuant == command.QuantifierAll && len(dests) > 1 && isSpatialContainment) ||
		(sQuant == command.QuantifierAll && dQuant == command.QuantifierAny && len(sources) > 1)
	if groupAndProduct {
		pairs := validPairs(sources, dests, relation, state)
		order, groups := groupBySource(pairs)
		if len(order) == 0 {
			return nil, ierr.NoValidInterpretation("no pairing satisfies the laws of physics")
		}
		return dnf.Dedup(cartesianProduct(order, groups, relation)), nil
	}

	// Rule 3: any/all, other relations: split into |sources|-many slices.
	if sQuant == command.QuantifierAny && dQuant == command.QuantifierAll {
		pairs := validPairs(sources, dests, relation, state)
		if len(pairs) == 0 {
			return nil, ierr.NoValidInterpretation("no pairing satisfies the laws of physics")
		}
		slices := splitIntoSlices(pairs, len(sources))
		formula := make(dnf.Formula, 0, len(slices))
		for _, s := range slices {
			formula = append(formula, conjunctionFromPairs(s, relation))
		}
		return dnf.Dedup(formula), nil
	}

	// Rule 4: the/all or all/the.
	if (sQuant == command.QuantifierThe && dQuant == command.QuantifierAll) ||
		(sQuant == command.QuantifierAll && dQuant == command.QuantifierThe) {
		if isSpatialContainment && hasNonFloorDestination(dests) {
			return nil, ierr.NoValidInterpretation("a single object cannot be ontop of/inside more than one destination at once")
		}
		pairs := validPairs(sources, dests, relation, state)
		if len(pairs) == 0 {
			return nil, ierr.NoValidInterpretation("no pairing satisfies the laws of physics")
		}
		if sQuant == command.QuantifierThe && len(sources) > 1 {
			return nil, ierr.AmbiguousThe(clarify(sources, state))
		}
		if dQuant == command.QuantifierThe && len(dests) > 1 {
			return nil, ierr.AmbiguousThe(clarify(dests, state))
		}
		return dnf.Dedup(dnf.Formula{conjunctionFromPairs(pairs, relation)}), nil
	}

	// Rule 5: remaining "collapse to one conjunction" cases.
	if (sQuant == command.QuantifierAll && len(sources) > 1) || dQuant == command.QuantifierAll {
		pairs := validPairs(sources, dests, relation, state)
		if len(pairs) == 0 {
			return nil, ierr.NoValidInterpretation("no pairing satisfies the laws of physics")
		}
		return dnf.Dedup(dnf.Formula{conjunctionFromPairs(pairs, relation)}), nil
	}

	// Rule 6: otherwise, each valid pair is its own singleton conjunction.
	pairs := validPairs(sources, dests, relation, state)
	if len(pairs) == 0 {
		return nil, ierr.NoValidInterpretation("no pairing satisfies the laws of physics")
	}
	formula := make(dnf.Formula, 0, len(pairs))
	for _, p := range pairs {
		formula = append(formula, conjunctionFromPairs([]pair{p}, relation))
	}
	if len(formula) > 1 {
		if sQuant == command.QuantifierThe && len(sources) > 1 {
			return nil, ierr.AmbiguousThe(clarify(sources, state))
		}
		if dQuant == command.QuantifierThe && len(dests) > 1 {
			return nil, ierr.AmbiguousThe(clarify(dests, state))
		}
	}
	return dnf.Dedup(formula), nil
}
