package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/yaklang/memfit-dl/download"
)

// The purpose of this app is to provide a simple example that resolves the
// installer for the machine it runs on against the artifact-server on
// localhost:8080.

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	baseURL := "http://localhost:8080" // The server hosting memfit/latest/yakit-version.txt and the installers
	versions := download.NewVersionFetcher(baseURL, nil, logger)
	resolver := download.NewResolver(baseURL, versions, logger)

	target := resolver.Resolve(context.Background(), download.CurrentPlatformResolver{})
	logger.Info("resolved installer",
		"version", target.Version,
		"platform", target.Platform,
		"arch", target.Arch,
		"href", target.Href(),
	)

	if !target.Resolved() {
		logger.Warn("no installer for this machine, see the downloads listing")
		return
	}

	path, err := download.NewFetcher(nil, download.NewDirDestinationResolver(os.TempDir()), logger).
		Fetch(context.Background(), target)
	if err != nil {
		logger.Error("failed to fetch installer", "error", err)
		os.Exit(1)
	}
	logger.Info("installer saved", "path", path)
}
