// Package dnf defines the goal language the interpreter produces and the
// planner consumes: a disjunction of conjunctions of signed spatial
// literals, as specified for the blocks-world goal condition.
package dnf

import (
	"strings"

	"github.com/dekarrin/shrdlite/internal/blocks"
)

// Literal is a single signed atomic relation. Args holds one identifier for
// blocks.RelHolding, two otherwise. The special identifier blocks.FloorID
// stands for "any floor cell".
type Literal struct {
	Positive bool
	Relation blocks.Relation
	Args     []string
}

// String renders the literal as "[-]relation(arg0[,arg1])", the form used
// by test cases and by clarification/debug output.
func (l Literal) String() string {
	var sb strings.Builder
	if !l.Positive {
		sb.WriteByte('-')
	}
	sb.WriteString(string(l.Relation))
	sb.WriteByte('(')
	sb.WriteString(strings.Join(l.Args, ","))
	sb.WriteByte(')')
	return sb.String()
}

// Conjunction is a sequence of literals, all of which must hold for the
// conjunction to be satisfied.
type Conjunction []Literal

// String renders the conjunction as its literals joined by " & ".
func (c Conjunction) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return strings.Join(parts, " & ")
}

// Formula is a disjunction of conjunctions: satisfied when any one of its
// conjunctions is satisfied.
type Formula []Conjunction

// String renders the formula as its conjunctions joined by " | ".
func (f Formula) String() string {
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}

// Dedup returns f with structurally-duplicate conjunctions removed,
// preserving the order of first occurrence. Two conjunctions are duplicates
// if they contain the same literals in the same order.
func Dedup(f Formula) Formula {
	seen := make(map[string]bool, len(f))
	out := make(Formula, 0, len(f))
	for _, c := range f {
		key := c.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// SingleLiteral builds a one-literal conjunction, a common case for
// "take"/singleton interpretations.
func SingleLiteral(l Literal) Conjunction {
	return Conjunction{l}
}
