package main

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklang/memfit-dl/download"
)

func runURL(args []string, stdout, stderr io.Writer) error {
	var common commonOptions
	var platform platformOptions
	var version string
	var legacy bool

	flagSet := newFlagSet("url", stderr)
	common.register(flagSet)
	platform.register(flagSet)
	flagSet.StringVar(&version, "version", "", "use this version instead of fetching the latest")
	flagSet.BoolVar(&legacy, "legacy", false, "name the legacy build")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	env, err := common.load(stderr, isTerminal(stderr))
	if err != nil {
		return err
	}

	target, err := resolveTarget(env, platform.resolver(), version)
	if err != nil {
		return err
	}
	if legacy && target.Resolved() {
		item, ok := download.Lookup(string(target.Platform)+"-legacy", target.Arch)
		if !ok {
			return fmt.Errorf("no legacy build for %s", target.Item.Key())
		}
		fmt.Fprintln(stdout, download.ItemURL(env.config.BaseURL, target.Version, item))
		return nil
	}

	fmt.Fprintln(stdout, target.Href())
	return nil
}

// resolveTarget names the installer for pr, fetching the latest version
// unless version is given.
func resolveTarget(env *environment, pr download.PlatformResolver, version string) (download.Target, error) {
	if version == "" {
		return env.resolver.Resolve(context.Background(), pr), nil
	}
	if err := download.ValidateVersion(version); err != nil {
		return download.Target{}, fmt.Errorf("--version: %w", err)
	}
	p, a := pr.Resolve()
	return env.resolver.Name(version, p, a), nil
}
