package reftoken

import (
	"fmt"
	"strings"

	"github.com/dekarrin/shrdlite/internal/command"
)

// Tokenizer is the reference command.Parser implementation: a small
// recursive-descent reader over the closed vocabulary in vocab.go. It never
// returns more than one ParseResult — the grammar it accepts is
// unambiguous by construction — which is sufficient to exercise the
// interpreter and planner end to end, but is not a substitute for a real
// natural-language parser.
type Tokenizer struct{}

// New returns a ready-to-use Tokenizer.
func New() Tokenizer {
	return Tokenizer{}
}

// Parse implements command.Parser.
func (Tokenizer) Parse(utterance string) ([]command.ParseResult, error) {
	fields := strings.Fields(strings.ToLower(utterance))
	if len(fields) == 0 {
		return nil, nil
	}
	tokens := collapsePhrases(fields)

	p := &parser{tokens: tokens}
	cmd, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	return []command.ParseResult{{Cmd: cmd}}, nil
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (string, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) parseCommand() (command.Command, error) {
	verb, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("empty utterance")
	}

	switch verb {
	case "take", "get", "grab":
		// The source entity is everything else in the utterance, so a
		// trailing relation clause nests inside it as a disambiguator
		// ("the ball in the box"), not as a separate destination.
		e, err := p.parseEntity(true)
		if err != nil {
			return nil, err
		}
		return command.Take{Entity: e}, nil

	case "move", "relocate":
		// Here the trailing relation is the destination, not a
		// disambiguator on the source, so the source entity must stop
		// before it.
		e, err := p.parseEntity(false)
		if err != nil {
			return nil, err
		}
		loc, err := p.parseLocation()
		if err != nil {
			return nil, err
		}
		return command.Move{Entity: e, Location: loc}, nil

	case "put", "place", "drop":
		// With a named object next, this is a relocation (a Move); bare
		// "put <location>" acts on whatever the arm currently holds.
		if tok, ok := p.peek(); ok {
			if _, isQuantifier := quantifierWords[tok]; isQuantifier {
				e, err := p.parseEntity(false)
				if err != nil {
					return nil, err
				}
				loc, err := p.parseLocation()
				if err != nil {
					return nil, err
				}
				return command.Move{Entity: e, Location: loc}, nil
			}
		}
		loc, err := p.parseLocation()
		if err != nil {
			return nil, err
		}
		return command.Put{Location: loc}, nil

	default:
		return nil, fmt.Errorf("unrecognized verb %q", verb)
	}
}

// parseEntity parses "<quantifier> [size] [color] <form>", optionally
// followed by a nested location clause when allowLocation is true. Callers
// that supply their own separate destination location (a Move's source
// entity) pass false so that the relation word is left for them instead of
// being swallowed as a disambiguator on the entity itself.
func (p *parser) parseEntity(allowLocation bool) (command.Entity, error) {
	var e command.Entity

	qTok, ok := p.next()
	if !ok {
		return e, fmt.Errorf("expected a quantifier (the/a/any/all/every), found end of utterance")
	}
	quantifier, ok := quantifierWords[qTok]
	if !ok {
		return e, fmt.Errorf("expected a quantifier (the/a/any/all/every), found %q", qTok)
	}
	e.Quantifier = command.Quantifier(quantifier)

	desc, err := p.parseObjectDescription()
	if err != nil {
		return e, err
	}
	e.Description = desc

	if allowLocation {
		if tok, ok := p.peek(); ok {
			if _, isRelation := relationWords[tok]; isRelation {
				loc, err := p.parseLocation()
				if err != nil {
					return e, err
				}
				e.Location = &loc
			}
		}
	}

	return e, nil
}

// parseObjectDescription consumes adjectives (size, then color) up to the
// terminal noun naming a form.
func (p *parser) parseObjectDescription() (command.ObjectDescription, error) {
	var desc command.ObjectDescription

	for {
		tok, ok := p.peek()
		if !ok {
			return desc, fmt.Errorf("expected an object description, found end of utterance")
		}

		if form, isForm := formWords[tok]; isForm {
			p.pos++
			desc.Form = form
			return desc, nil
		}
		if size, isSize := sizeWords[tok]; isSize {
			p.pos++
			desc.Size = size
			continue
		}
		if _, isQuantifier := quantifierWords[tok]; isQuantifier {
			return desc, fmt.Errorf("expected an object description, found quantifier %q", tok)
		}
		if _, isRelation := relationWords[tok]; isRelation {
			return desc, fmt.Errorf("expected an object description, found relation word %q", tok)
		}

		// anything else not yet claimed is taken as a color name.
		p.pos++
		desc.Color = tok
	}
}

// parseLocation parses "<relation> <entity>".
func (p *parser) parseLocation() (command.Location, error) {
	var loc command.Location

	relTok, ok := p.next()
	if !ok {
		return loc, fmt.Errorf("expected a relation (on/in/above/under/beside/left of/right of), found end of utterance")
	}
	relation, ok := relationWords[relTok]
	if !ok {
		return loc, fmt.Errorf("expected a relation (on/in/above/under/beside/left of/right of), found %q", relTok)
	}
	loc.Relation = relation

	// A destination entity may itself carry a further nested location
	// ("in the box on the table"), so recursive nesting is allowed here.
	e, err := p.parseEntity(true)
	if err != nil {
		return loc, err
	}
	loc.Entity = &e

	return loc, nil
}
