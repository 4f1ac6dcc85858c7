package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklang/memfit-dl/download"
)

func runFetch(args []string, stdout, stderr io.Writer) error {
	var common commonOptions
	var platform platformOptions
	var version, outDir, outFile, fromVersion, checksum string
	var nextToExecutable bool

	flagSet := newFlagSet("fetch", stderr)
	common.register(flagSet)
	platform.register(flagSet)
	flagSet.StringVar(&version, "version", "", "fetch this version instead of the latest")
	flagSet.StringVarP(&outDir, "output", "o", "", "directory to write the installer to; defaults to the working directory")
	flagSet.StringVar(&outFile, "file", "", "exact file to write the installer to")
	flagSet.BoolVar(&nextToExecutable, "next-to-executable", false, "write the installer next to memfit-dl")
	flagSet.StringVar(&fromVersion, "from-version", "", "version of the installer already at the destination, enables patch downloads")
	flagSet.StringVar(&checksum, "sha256", "", "expected SHA-256 digest of the installer")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	var destination download.DestinationResolver
	switch {
	case outFile != "" && (outDir != "" || nextToExecutable),
		outDir != "" && nextToExecutable:
		return errors.New("--output, --file and --next-to-executable are mutually exclusive")
	case outFile != "":
		destination = download.NewSpecificFileDestinationResolver(outFile)
	case nextToExecutable:
		destination = download.ExecutableDirDestinationResolver{}
	default:
		destination = download.NewDirDestinationResolver(outDir)
	}

	env, err := common.load(stderr, isTerminal(stderr))
	if err != nil {
		return err
	}

	target, err := resolveTarget(env, platform.resolver(), version)
	if err != nil {
		return err
	}
	if !target.Resolved() {
		return fmt.Errorf("%w for %s/%s; pick one from 'memfit-dl list'", download.ErrUnresolved, target.Platform, target.Arch)
	}

	// Installers are large; the download is bounded by interrupts rather
	// than a client timeout.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	requester := download.HTTPRequester{Client: &http.Client{}}
	fetcher := download.NewFetcher(requester, destination, env.logger)
	if fromVersion != "" && env.config.DiffURL != "" {
		fetcher.WithPatch(env.config.DiffURL, fromVersion)
	}
	if checksum != "" {
		sum, err := download.ParseChecksum(checksum)
		if err != nil {
			return fmt.Errorf("--sha256: %w", err)
		}
		fetcher.WithChecksum(sum)
	}

	path, err := fetcher.Fetch(ctx, target)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}
