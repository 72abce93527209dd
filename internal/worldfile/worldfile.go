// Package worldfile loads blocks.WorldState values from the TOML-based
// world definition format: a top-level format/type header in the style of
// the engine's other data files, an arm position, a list of stacks each
// containing the objects resting in it bottom first, and an optional id of
// the object the arm starts out holding.
package worldfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/google/uuid"
)

// Format is the expected value of a world file's top-level "format" key.
const Format = "shrdlite"

// Type is the expected value of a world file's top-level "type" key.
const Type = "world"

// topLevelWorldFile is the complete structure of a world definition file.
type topLevelWorldFile struct {
	Format  string  `toml:"format"`
	Type    string  `toml:"type"`
	Arm     int     `toml:"arm"`
	Stacks  []stack `toml:"stack"`
	Holding string  `toml:"holding"`
}

// stack is one column of the world, bottom object first.
type stack struct {
	Objects []object `toml:"object"`
}

// object is one physical object's attributes as read from file. ID is
// optional; an object that omits it is assigned a freshly generated one.
type object struct {
	ID    string `toml:"id"`
	Form  string `toml:"form"`
	Size  string `toml:"size"`
	Color string `toml:"color"`
}

var formsByString = map[string]blocks.Form{
	"brick":   blocks.FormBrick,
	"plank":   blocks.FormPlank,
	"ball":    blocks.FormBall,
	"pyramid": blocks.FormPyramid,
	"box":     blocks.FormBox,
	"table":   blocks.FormTable,
}

var sizesByString = map[string]blocks.Size{
	"":      blocks.SizeNone,
	"small": blocks.SizeSmall,
	"large": blocks.SizeLarge,
}

// LoadFile reads and parses a world definition from the file at path.
func LoadFile(path string) (blocks.WorldState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return blocks.WorldState{}, fmt.Errorf("read world file: %w", err)
	}
	return Load(data)
}

// Load parses a world definition from raw TOML bytes.
func Load(data []byte) (blocks.WorldState, error) {
	var top topLevelWorldFile
	if err := toml.Unmarshal(data, &top); err != nil {
		return blocks.WorldState{}, fmt.Errorf("parse world file: %w", err)
	}

	if top.Format != Format {
		return blocks.WorldState{}, fmt.Errorf("unsupported world file format %q, expected %q", top.Format, Format)
	}
	if top.Type != Type {
		return blocks.WorldState{}, fmt.Errorf("unsupported world file type %q, expected %q", top.Type, Type)
	}

	return top.toWorldState()
}

func (top topLevelWorldFile) toWorldState() (blocks.WorldState, error) {
	state := blocks.WorldState{
		Objects: make(map[string]blocks.Object),
		Stacks:  make([][]string, len(top.Stacks)),
		Arm:     top.Arm,
	}

	for i, st := range top.Stacks {
		ids := make([]string, len(st.Objects))
		for j, o := range st.Objects {
			id := o.ID
			if id == "" {
				generated, err := uuid.NewRandom()
				if err != nil {
					return blocks.WorldState{}, fmt.Errorf("generate id for object at stack %d position %d: %w", i, j, err)
				}
				id = generated.String()
			}
			if _, exists := state.Objects[id]; exists {
				return blocks.WorldState{}, fmt.Errorf("duplicate object id %q", id)
			}
			if id == blocks.FloorID {
				return blocks.WorldState{}, fmt.Errorf("object id %q is reserved for the floor", blocks.FloorID)
			}

			attrs, err := o.toBlocksObject()
			if err != nil {
				return blocks.WorldState{}, fmt.Errorf("object %q: %w", id, err)
			}

			state.Objects[id] = attrs
			ids[j] = id
		}
		state.Stacks[i] = ids
	}

	// blocks.WorldState requires 0 <= Arm < len(Stacks), which a world with
	// no stacks at all can never satisfy.
	if top.Arm < 0 || top.Arm >= len(state.Stacks) {
		return blocks.WorldState{}, fmt.Errorf("arm position %d is out of range for %d stacks", top.Arm, len(state.Stacks))
	}

	if top.Holding != "" {
		if top.Holding == blocks.FloorID {
			return blocks.WorldState{}, fmt.Errorf("holding id %q is reserved for the floor", blocks.FloorID)
		}
		if _, ok := state.Objects[top.Holding]; !ok {
			return blocks.WorldState{}, fmt.Errorf("holding id %q is not a defined object", top.Holding)
		}

		removed := false
		for i, ids := range state.Stacks {
			for j, id := range ids {
				if id == top.Holding {
					state.Stacks[i] = append(ids[:j], ids[j+1:]...)
					removed = true
					break
				}
			}
			if removed {
				break
			}
		}

		state.Holding = top.Holding
	}

	return state, nil
}

func (o object) toBlocksObject() (blocks.Object, error) {
	form, ok := formsByString[strings.ToLower(o.Form)]
	if !ok {
		return blocks.Object{}, fmt.Errorf("unrecognized form %q", o.Form)
	}
	size, ok := sizesByString[strings.ToLower(o.Size)]
	if !ok {
		return blocks.Object{}, fmt.Errorf("unrecognized size %q", o.Size)
	}

	return blocks.Object{
		Form:  form,
		Size:  size,
		Color: strings.ToLower(o.Color),
	}, nil
}
