package interp

import (
	"fmt"
	"strings"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/command"
	"golang.org/x/text/cases"
)

var foldCase = cases.Fold()

// matches reports whether obj satisfies desc field-by-field. An absent
// field in desc (the zero value) matches anything; blocks.FormAny matches
// any form explicitly. Color comparison case-folds both sides so a world
// file or utterance spelling a color "Red" still matches "red".
func matches(obj blocks.Object, desc command.ObjectDescription) bool {
	if desc.Form != "" && desc.Form != blocks.FormAny && obj.Form != desc.Form {
		return false
	}
	if desc.Size != blocks.SizeNone && obj.Size != desc.Size {
		return false
	}
	if desc.Color != "" && foldCase.String(obj.Color) != foldCase.String(desc.Color) {
		return false
	}
	return true
}

// describe renders an ObjectDescription as a short human-readable phrase,
// used in no-matching-object error messages.
func describe(desc command.ObjectDescription) string {
	var parts []string
	if desc.Size != blocks.SizeNone {
		parts = append(parts, string(desc.Size))
	}
	if desc.Color != "" {
		parts = append(parts, desc.Color)
	}
	if desc.Form != "" && desc.Form != blocks.FormAny {
		parts = append(parts, string(desc.Form))
	}
	if len(parts) == 0 {
		return "any object"
	}
	return strings.Join(parts, " ")
}

// describeCandidate renders a single identifier for an ambiguity
// clarification message: "white large ball (stack 1)". Stack numbers are
// 1-indexed to match the teacher's convention for human-facing messages.
func describeCandidate(id string, state blocks.WorldState) string {
	obj, ok := state.Attributes(id)
	if !ok {
		return id
	}
	var parts []string
	if obj.Size != blocks.SizeNone {
		parts = append(parts, string(obj.Size))
	}
	if obj.Color != "" {
		parts = append(parts, obj.Color)
	}
	parts = append(parts, string(obj.Form))

	location := "held"
	if stackIdx, _, ok := state.StackOf(id); ok {
		location = fmt.Sprintf("stack %d", stackIdx+1)
	}
	return fmt.Sprintf("%s (%s)", strings.Join(parts, " "), location)
}
