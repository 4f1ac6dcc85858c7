// Command memfit-dl resolves, lists and fetches Memfit AI installers, and
// serves the website's download endpoints.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

type command struct {
	name    string
	summary string
	run     func(args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"latest", "print the latest published version", runLatest},
	{"url", "print the installer URL for this machine or a browser", runURL},
	{"list", "list every installer of a version", runList},
	{"fetch", "download the installer for this machine", runFetch},
	{"serve", "serve the download redirect and listing page", runServe},
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: memfit-dl <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "\t%-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'memfit-dl <command> --help' for the flags of a command.")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stdout)
		return 0
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		err := c.run(args[1:], stdout, stderr)
		switch {
		case err == nil:
			return 0
		case errors.Is(err, pflag.ErrHelp):
			return 0
		default:
			fmt.Fprintf(stderr, "memfit-dl %s: %v\n", c.name, err)
			return 1
		}
	}

	fmt.Fprintf(stderr, "memfit-dl: unknown command %q\n\n", args[0])
	printUsage(stderr)
	return 2
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	return flagSet
}

// isTerminal reports whether w is a terminal, for choosing styled output.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
