// Package download resolves and fetches Memfit AI installers.
//
// Resolution protocol:
//
//	GET {base}/memfit/latest/yakit-version.txt
//
//	200 ok
//	1.0.0-1212
//
// then, for a client classified as darwin/arm64
//
//	GET {base}/memfit/1.0.0-1212/MemfitAI-1.0.0-1212-darwin-arm64.dmg
//
//	200 ok
//	[installer]
//
// or, when the previous installer is already on disk
//
//	GET {diff}/memfit/patch/1.0.0-1100/1.0.0-1212/MemfitAI-1.0.0-1212-darwin-arm64.dmg
//
//	200 ok
//	[bsdiff data]
package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kr/binarydist"
	"gopkg.in/inconshreveable/go-update.v0"
)

var (
	// ErrHashMismatch returned whenever the new file's hash is mismatched
	// after download or patch.
	ErrHashMismatch = errors.New("new file hash mismatch")
	// ErrUnresolved is returned when asked to fetch a target that names no
	// installer.
	ErrUnresolved = errors.New("no installer resolved for target")

	errNoPatch = errors.New("patching not configured")
)

// Fetcher downloads the installer a Target names.
//
// Example:
//
//	fetcher := download.NewFetcher(download.NewHTTPRequester(0),
//		download.NewDirDestinationResolver("."), logger).
//		WithPatch("https://oss-qn.yaklang.com", "1.0.0-1100")
//	path, err := fetcher.Fetch(ctx, target)
type Fetcher struct {
	diffURL     string              // Base URL for patch downloads. Empty disables patching.
	fromVersion string              // Version of the installer already at the destination.
	sha256      []byte              // Expected digest of the new installer, optional.
	requester   Requester           // Performs the requests.
	destination DestinationResolver // Finds where the installer goes.
	logger      *slog.Logger
}

// NewFetcher creates a fetcher. A nil requester selects HTTPRequester, a
// nil destination the working directory and a nil logger discards output.
func NewFetcher(requester Requester, destination DestinationResolver, logger *slog.Logger) *Fetcher {
	if requester == nil {
		requester = NewHTTPRequester(0)
	}
	if destination == nil {
		destination = NewDirDestinationResolver("")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		requester:   requester,
		destination: destination,
		logger:      logger,
	}
}

// WithPatch enables patch downloads from diffURL for an installer of
// fromVersion already present at the destination.
func (f *Fetcher) WithPatch(diffURL, fromVersion string) *Fetcher {
	f.diffURL = diffURL
	f.fromVersion = fromVersion
	return f
}

// WithChecksum makes the fetcher reject installers whose SHA-256 digest is
// not sum.
func (f *Fetcher) WithChecksum(sum []byte) *Fetcher {
	f.sha256 = sum
	return f
}

// Fetch downloads the installer for target and returns the path it was
// written to. A patch is tried first when configured, then the full
// installer.
func (f *Fetcher) Fetch(ctx context.Context, target Target) (string, error) {
	if !target.Resolved() {
		return "", ErrUnresolved
	}

	dest, err := f.destination.Resolve(target)
	if err != nil {
		return "", fmt.Errorf("resolving destination: %w", err)
	}

	// No need to download
	if f.fromVersion == target.Version && fileExists(dest) {
		f.logger.Info("installer already current", "path", dest, "version", target.Version)
		return dest, nil
	}

	bin, err := f.patchedInstaller(ctx, dest, target)
	if err != nil {
		if errors.Is(err, ErrHashMismatch) {
			f.logger.Warn("hash mismatch from patched installer", "path", dest)
		} else if !errors.Is(err, errNoPatch) {
			f.logger.Warn("patching installer failed", "path", dest, "error", err)
		}

		bin, err = f.fullInstaller(ctx, target)
		if err != nil {
			if errors.Is(err, ErrHashMismatch) {
				f.logger.Error("hash mismatch from full installer", "url", target.URL)
			}
			return "", err
		}
	}

	if err := f.install(dest, bin); err != nil {
		return "", err
	}
	f.logger.Info("installer written", "path", dest, "version", target.Version, "bytes", len(bin))
	return dest, nil
}

// patchedInstaller retrieves the patch from fromVersion to the target version
// and applies it to the previous installer.
func (f *Fetcher) patchedInstaller(ctx context.Context, dest string, target Target) ([]byte, error) {
	if f.diffURL == "" || f.fromVersion == "" {
		return nil, errNoPatch
	}
	base, ok := f.previousInstaller(dest, target)
	if !ok {
		return nil, errNoPatch
	}

	old, err := os.Open(base)
	if err != nil {
		return nil, err
	}
	defer old.Close()

	r, err := f.fetch(ctx, PatchURL(f.diffURL, f.fromVersion, target.Version, *target.Item))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var buf bytes.Buffer
	if err := binarydist.Patch(old, &buf, r); err != nil {
		return nil, fmt.Errorf("applying patch: %w", err)
	}
	bin := buf.Bytes()

	if f.sha256 != nil && !verifySha(bin, f.sha256) {
		return nil, ErrHashMismatch
	}
	return bin, nil
}

// previousInstaller finds the fromVersion installer to patch: dest itself
// when it exists, otherwise the fromVersion file name next to it.
func (f *Fetcher) previousInstaller(dest string, target Target) (string, bool) {
	if fileExists(dest) {
		return dest, true
	}
	if target.Item == nil {
		return "", false
	}
	sibling := filepath.Join(filepath.Dir(dest), target.Item.FileName(f.fromVersion))
	if sibling != dest && fileExists(sibling) {
		return sibling, true
	}
	return "", false
}

func (f *Fetcher) fullInstaller(ctx context.Context, target Target) ([]byte, error) {
	r, err := f.fetch(ctx, target.URL)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	bin, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target.URL, err)
	}

	if f.sha256 != nil && !verifySha(bin, f.sha256) {
		return nil, ErrHashMismatch
	}
	return bin, nil
}

// install writes bin to dest. An existing file is swapped out atomically
// so that a failed write leaves the previous installer in place.
func (f *Fetcher) install(dest string, bin []byte) error {
	if !fileExists(dest) {
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return os.WriteFile(dest, bin, 0755)
	}

	up := update.New().Target(dest)
	if err := up.CanUpdate(); err != nil {
		return fmt.Errorf("cannot replace %s: %w", dest, err)
	}

	err, errRecover := up.FromStream(bytes.NewReader(bin))
	if errRecover != nil {
		return fmt.Errorf("update and recovery errors: %q %q", err, errRecover)
	}
	return err
}

func (f *Fetcher) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if f.requester == nil {
		return nil, errors.New("unable to fetch information with nil requester")
	}

	readCloser, err := f.requester.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if readCloser == nil {
		return nil, errors.New("requester returned a nil ReadCloser")
	}

	return readCloser, nil
}
