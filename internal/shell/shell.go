// Package shell contains a CLI-driven REPL for reading utterances against a
// live blocks-world, interpreting and planning them, and applying the
// resulting plan to advance the world state, continuously until the user
// quits.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/command"
	"github.com/dekarrin/shrdlite/internal/graph"
	"github.com/dekarrin/shrdlite/internal/ierr"
	"github.com/dekarrin/shrdlite/internal/input"
	"github.com/dekarrin/shrdlite/internal/interp"
	"github.com/dekarrin/shrdlite/internal/planner"
)

const consoleOutputWidth = 80

// reader is the capability the shell needs from an input source; both of
// internal/input's readers satisfy it.
type reader interface {
	ReadCommand() (string, error)
	AllowBlank(bool)
	Close() error
}

// Shell drives utterances read from an input stream against a live
// blocks-world state, printing the plan or clarification produced for each
// one to an output stream, until the user quits or the input is exhausted.
type Shell struct {
	state   blocks.WorldState
	parser  command.Parser
	in      reader
	out     *bufio.Writer
	timeout time.Duration
	running bool
}

// New creates a Shell ready to run against the given input/output streams
// and starting world state. If inputStream is nil, stdin is used; if
// outputStream is nil, stdout is used. Readline-backed interactive input is
// used only when reading from stdin to stdout and forceDirectInput is
// false; otherwise a plain line-oriented reader is used.
func New(inputStream io.Reader, outputStream io.Writer, state blocks.WorldState, parser command.Parser, forceDirectInput bool) (*Shell, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	sh := &Shell{
		state:   state,
		parser:  parser,
		out:     bufio.NewWriter(outputStream),
		timeout: planner.DefaultTimeout,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		rl, err := input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
		sh.in = rl
	} else {
		sh.in = input.NewDirectReader(inputStream)
	}

	return sh, nil
}

// SetTimeout overrides the default wall-clock budget given to the planner's
// A* search for every utterance handled afterward.
func (sh *Shell) SetTimeout(d time.Duration) {
	sh.timeout = d
}

// State returns the shell's current world state.
func (sh *Shell) State() blocks.WorldState {
	return sh.state
}

// Close tears down the underlying input reader. It must not be called while
// RunUntilQuit is in progress.
func (sh *Shell) Close() error {
	if sh.running {
		return fmt.Errorf("cannot close a running shell")
	}
	if err := sh.in.Close(); err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}
	return nil
}

// RunUntilQuit reads and handles utterances until the user types "quit", the
// input stream is exhausted, or an unrecoverable I/O error occurs.
func (sh *Shell) RunUntilQuit() error {
	if err := sh.println("Welcome to the blocks world.\nType an instruction, or \"quit\" to exit.\n"); err != nil {
		return err
	}

	sh.running = true
	defer func() { sh.running = false }()
	sh.in.AllowBlank(false)

	for sh.running {
		utterance, err := sh.in.ReadCommand()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read utterance: %w", err)
		}

		if strings.EqualFold(strings.TrimSpace(utterance), "quit") {
			sh.running = false
			break
		}

		if err := sh.Handle(utterance); err != nil {
			if werr := sh.println(ierr.Clarification(err)); werr != nil {
				return werr
			}
		}
	}

	return sh.println("Goodbye")
}

// RunStartupCommands handles each utterance in order, echoing it and its
// result, before the caller hands control to RunUntilQuit. It stops and
// returns the first unrecoverable I/O error encountered; a clarification
// error from a single utterance is printed and does not halt the rest.
func (sh *Shell) RunStartupCommands(utterances []string) error {
	for _, utterance := range utterances {
		utterance = strings.TrimSpace(utterance)
		if utterance == "" {
			continue
		}
		if err := sh.println("> " + utterance); err != nil {
			return err
		}
		if err := sh.Handle(utterance); err != nil {
			if werr := sh.println(ierr.Clarification(err)); werr != nil {
				return werr
			}
		}
	}
	return nil
}

// Handle parses, interprets, and plans a single utterance, applies the
// winning plan's actions to the shell's world state, and prints the plan.
func (sh *Shell) Handle(utterance string) error {
	parses, err := sh.parser.Parse(utterance)
	if err != nil {
		return err
	}
	if len(parses) == 0 {
		return ierr.ParseEmpty()
	}

	interpretations, err := interp.Interpret(parses, sh.state)
	if err != nil {
		return err
	}

	results, err := planner.Plan(interpretations, sh.state, sh.timeout)
	if err != nil {
		return err
	}

	result := results[0]
	for _, step := range result.Plan {
		if step == planner.VacuousUtterance {
			continue
		}
		next, ok := graph.Apply(sh.state, graph.Action(step))
		if !ok {
			return fmt.Errorf("planned action %q is not legal from the current state", step)
		}
		sh.state = next
	}

	return sh.println(strings.Join(result.Plan, " "))
}

func (sh *Shell) println(msg string) error {
	wrapped := rosed.Edit(msg).Wrap(consoleOutputWidth).String()
	if _, err := sh.out.WriteString(wrapped + "\n"); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	return sh.out.Flush()
}
