// Package reftoken provides a minimal, closed-vocabulary tokenizer that
// implements command.Parser: just enough grammar to drive the shell and the
// test suite end to end, without attempting the full natural-language
// grammar a production parser would need (that remains out of scope; see
// command.Parser's documentation).
package reftoken

import "github.com/dekarrin/shrdlite/internal/blocks"

// quantifierWords maps the quantifier vocabulary this tokenizer recognizes
// to the command.Quantifier it denotes.
var quantifierWords = map[string]string{
	"the": "the",
	"a":   "any",
	"an":  "any",
	"any": "any",
	"some": "any",
	"all":   "all",
	"every": "all",
	"each":  "all",
}

// formWords maps recognized nouns, singular and plural, to the blocks.Form
// they denote. Generic placeholder nouns all collapse to the wildcard form.
var formWords = map[string]blocks.Form{
	"brick":   blocks.FormBrick,
	"bricks":  blocks.FormBrick,
	"plank":   blocks.FormPlank,
	"planks":  blocks.FormPlank,
	"ball":    blocks.FormBall,
	"balls":   blocks.FormBall,
	"pyramid": blocks.FormPyramid,
	"pyramids": blocks.FormPyramid,
	"box":     blocks.FormBox,
	"boxes":   blocks.FormBox,
	"table":   blocks.FormTable,
	"tables":  blocks.FormTable,
	"floor":   blocks.FormFloor,
	"object":  blocks.FormAny,
	"objects": blocks.FormAny,
	"thing":   blocks.FormAny,
	"things":  blocks.FormAny,
	"one":     blocks.FormAny,
	"it":      blocks.FormAny,
}

// sizeWords maps size adjectives to the blocks.Size they denote.
var sizeWords = map[string]blocks.Size{
	"small": blocks.SizeSmall,
	"tiny":  blocks.SizeSmall,
	"large": blocks.SizeLarge,
	"big":   blocks.SizeLarge,
}

// relationWords maps (post phrase-collapse) relation tokens to the
// blocks.Relation they denote.
var relationWords = map[string]blocks.Relation{
	"on":       blocks.RelOntop,
	"ontop":    blocks.RelOntop,
	"upon":     blocks.RelOntop,
	"in":       blocks.RelInside,
	"inside":   blocks.RelInside,
	"into":     blocks.RelInside,
	"above":    blocks.RelAbove,
	"over":     blocks.RelAbove,
	"under":    blocks.RelUnder,
	"below":    blocks.RelUnder,
	"beneath":  blocks.RelUnder,
	"beside":   blocks.RelBeside,
	"leftof":   blocks.RelLeftOf,
	"rightof":  blocks.RelRightOf,
}

// phrases collapses recognized multi-word spans into the single token the
// rest of the tokenizer expects, longest spans first. Spans are matched
// anywhere in the token stream, not only at a leading verb.
var phrases = []struct {
	words []string
	token string
}{
	{[]string{"on", "top", "of"}, "ontop"},
	{[]string{"next", "to"}, "beside"},
	{[]string{"left", "of"}, "leftof"},
	{[]string{"right", "of"}, "rightof"},
	{[]string{"pick", "up"}, "take"},
	{[]string{"put", "down"}, "put"},
	{[]string{"set", "down"}, "put"},
}

func collapsePhrases(tokens []string) []string {
	var out []string
	for i := 0; i < len(tokens); {
		matched := false
		for _, p := range phrases {
			n := len(p.words)
			if i+n > len(tokens) {
				continue
			}
			if sliceEqual(tokens[i:i+n], p.words) {
				out = append(out, p.token)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, tokens[i])
			i++
		}
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
