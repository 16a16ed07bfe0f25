package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program and command names. It parses the arguments with the
// flag package and reads and writes only to the provided input and output.
//
// Commands that change the engine state open the store in the home
// directory, apply a single operation and commit one new version:
//
//	$ custodyd hash -to 0x... -amount "2 IOV" \
//	    | custodyd sign -key customer.key
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"fund":        cmdFund,
	"hash":        cmdHash,
	"init":        cmdInit,
	"keyaddr":     cmdKeyaddr,
	"keygen":      cmdKeygen,
	"sign":        cmdSign,
	"spend-joint": cmdSpendJoint,
	"spend-solo":  cmdSpendSolo,
	"status":      cmdStatus,
	"version":     cmdVersion,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s runs a dual-party custody engine on a local store.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		// Code 1 means the error does not wrap a registered root error.
		fmt.Fprintf(os.Stderr, "%s (code %d)\n", err, errors.Code(err))
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, custody.Version())
	return err
}
