package main

import (
	"context"
	"fmt"
	"io"
)

func runLatest(args []string, stdout, stderr io.Writer) error {
	var common commonOptions
	var strict bool

	flagSet := newFlagSet("latest", stderr)
	common.register(flagSet)
	flagSet.BoolVar(&strict, "strict", false, "fail instead of printing the fallback version")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	env, err := common.load(stderr, isTerminal(stderr))
	if err != nil {
		return err
	}

	versions := env.resolver.Versions()
	if strict {
		version, err := versions.Fetch(context.Background())
		if err != nil {
			return fmt.Errorf("fetching %s: %w", versions.URL(), err)
		}
		fmt.Fprintln(stdout, version)
		return nil
	}

	fmt.Fprintln(stdout, versions.Latest(context.Background()))
	return nil
}
