package download

import (
	"context"
	"log/slog"
)

// Resolver combines the version fetch with platform detection to name the
// installer a client should download.
type Resolver struct {
	baseURL  string
	versions *VersionFetcher
	logger   *slog.Logger
}

// NewResolver creates a resolver for installers under baseURL whose version
// comes from versions. A nil logger discards output.
func NewResolver(baseURL string, versions *VersionFetcher, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		baseURL:  baseURL,
		versions: versions,
		logger:   logger,
	}
}

// BaseURL is the artifact host the resolver names installers on.
func (r *Resolver) BaseURL() string {
	return r.baseURL
}

// Versions returns the fetcher the resolver reads versions from.
func (r *Resolver) Versions() *VersionFetcher {
	return r.versions
}

// Resolve fetches the latest version and names the installer for the
// platform pr resolves to. It never fails: a failed version fetch uses the
// fallback version and an undetectable platform yields an unresolved
// target.
func (r *Resolver) Resolve(ctx context.Context, pr PlatformResolver) Target {
	platform, arch := pr.Resolve()
	return r.Name(r.versions.Latest(ctx), platform, arch)
}

// Name builds the target for an already known version.
func (r *Resolver) Name(version string, platform Platform, arch Arch) Target {
	target := Target{
		Version:  version,
		Platform: platform,
		Arch:     arch,
		URL:      ArtifactURL(r.baseURL, version, platform, arch),
	}
	if target.URL == Unresolved {
		r.logger.Info("no installer for client, using fallback route",
			"version", version,
			"platform", platform,
			"arch", arch,
		)
		return target
	}

	item, _ := Lookup(string(platform), arch)
	target.Item = &item
	return target
}
