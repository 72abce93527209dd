/*
Shrdlite starts an interactive blocks-world session.

It reads in a world file and starts a shell in the loaded starting position.
The shell then reads utterances from stdin, plans the actions they require,
and prints the resulting plan to stdout, continuing until the user quits or
the input stream runs out.

Usage:

	shrdlite [flags]

The flags are:

	-v, --version
		Give the current version of the engine and then exit.

	-w, --world FILE
		Use the provided world definition file. Defaults to the file
		"world.toml" in the current working directory.

	-d, --direct
	    Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a tty
		with stdin and stdout.

	-t, --timeout DURATION
		Wall-clock budget given to the planner's search for each utterance,
		as a Go duration string (e.g. "10s"). Defaults to 10s.

	-c, --command COMMANDS
		Immediately run the given utterance(s) at start. Can be multiple,
		separated by the ";" character.

Once a session has started, type "quit" to exit the shell.
*/
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dekarrin/shrdlite/internal/reftoken"
	"github.com/dekarrin/shrdlite/internal/shell"
	"github.com/dekarrin/shrdlite/internal/version"
	"github.com/dekarrin/shrdlite/internal/worldfile"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitRuntimeError indicates an unsuccessful program execution due to a
	// problem while running the shell.
	ExitRuntimeError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the shell.
	ExitInitError
)

var (
	returnCode   int     = ExitSuccess
	flagVersion  *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	worldFile    *string = pflag.StringP("world", "w", "world.toml", "The world definition file to load")
	forceDirect  *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	timeoutFlag  *string = pflag.StringP("timeout", "t", "10s", "Wall-clock budget given to the planner's search for each utterance")
	startCommand *string = pflag.StringP("command", "c", "", "Execute the given utterance(s) immediately at start and leave the shell open")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	timeout, err := time.ParseDuration(*timeoutFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: invalid --timeout: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	state, err := worldfile.LoadFile(*worldFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	sh, err := shell.New(os.Stdin, os.Stdout, state, reftoken.New(), *forceDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	sh.SetTimeout(timeout)
	defer sh.Close()

	if *startCommand != "" {
		if err := sh.RunStartupCommands(strings.Split(*startCommand, ";")); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitRuntimeError
			return
		}
	}

	if err := sh.RunUntilQuit(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitRuntimeError
		return
	}
}
