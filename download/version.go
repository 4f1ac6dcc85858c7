package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
)

// FallbackVersion is used whenever the latest version cannot be fetched.
const FallbackVersion = "1.0.0-1212"

// maxVersionSize bounds the version file read. The token is a few bytes.
const maxVersionSize = 1 << 10

var (
	// ErrEmptyVersion is returned when the version file holds no token.
	ErrEmptyVersion = errors.New("empty version token")
	// ErrMalformedVersion is returned when the token cannot be used as a
	// path segment.
	ErrMalformedVersion = errors.New("malformed version token")
)

// VersionFetcher reads the latest published version from the artifact host.
// Every call performs its own request; nothing is cached.
type VersionFetcher struct {
	url       string
	fallback  string
	requester Requester
	logger    *slog.Logger
}

// NewVersionFetcher creates a fetcher for the version file under baseURL.
// A nil requester selects HTTPRequester and a nil logger discards output.
func NewVersionFetcher(baseURL string, requester Requester, logger *slog.Logger) *VersionFetcher {
	if requester == nil {
		requester = NewHTTPRequester(0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &VersionFetcher{
		url:       VersionURL(baseURL),
		fallback:  FallbackVersion,
		requester: requester,
		logger:    logger,
	}
}

// WithFallback returns a copy of f that falls back to version instead of
// FallbackVersion. An empty version keeps the current fallback.
func (f *VersionFetcher) WithFallback(version string) *VersionFetcher {
	c := *f
	if version != "" {
		c.fallback = version
	}
	return &c
}

// URL is the version file location.
func (f *VersionFetcher) URL() string {
	return f.url
}

// Fallback is the version Latest returns on failure.
func (f *VersionFetcher) Fallback() string {
	return f.fallback
}

// Fetch performs a single read of the version file and returns the trimmed
// token.
func (f *VersionFetcher) Fetch(ctx context.Context) (string, error) {
	if f.requester == nil {
		return "", errors.New("unable to fetch version with nil requester")
	}

	body, err := f.requester.Fetch(ctx, f.url)
	if err != nil {
		return "", err
	}
	if body == nil {
		return "", errors.New("requester returned a nil ReadCloser")
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxVersionSize+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.url, err)
	}
	if len(data) > maxVersionSize {
		return "", fmt.Errorf("%w: longer than %d bytes", ErrMalformedVersion, maxVersionSize)
	}

	version := strings.TrimSpace(string(data))
	if err := ValidateVersion(version); err != nil {
		return "", err
	}
	return version, nil
}

// Latest returns the latest version, or the fallback version when it cannot
// be fetched. Failures are logged and never returned.
func (f *VersionFetcher) Latest(ctx context.Context) string {
	version, err := f.Fetch(ctx)
	if err != nil {
		f.logger.Warn("version fetch failed, using fallback",
			"url", f.url,
			"fallback", f.fallback,
			"error", err,
		)
		return f.fallback
	}
	return version
}

// ValidateVersion checks that version is usable as a single URL path
// segment. Its contents are otherwise opaque.
func ValidateVersion(version string) error {
	if version == "" {
		return ErrEmptyVersion
	}
	if strings.Contains(version, "..") {
		return fmt.Errorf("%w: %q", ErrMalformedVersion, version)
	}
	for _, r := range version {
		if r == '/' || r == '\\' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q", ErrMalformedVersion, version)
		}
	}
	return nil
}
