// Command memfit-publish lays out Memfit AI installers the way the artifact
// host serves them:
//
//	{out}/memfit/latest/yakit-version.txt
//	{out}/memfit/{version}/MemfitAI-{version}-{platform}-{arch}.{ext}
//	{out}/memfit/{version}/MemfitAI-{version}-{platform}-{arch}.{ext}.sha256
//	{out}/memfit/patch/{old}/{version}/MemfitAI-{version}-{platform}-{arch}.{ext}
//
// Patches are bsdiff patches from every older version already in the
// output directory.
package main

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/binarydist"
	"github.com/spf13/pflag"

	"github.com/yaklang/memfit-dl/download"
	"github.com/yaklang/memfit-dl/internal/logging"
)

const (
	latestDir   = "latest"
	patchDir    = "patch"
	versionFile = "yakit-version.txt"
)

type publisher struct {
	root    string // {out}/memfit
	version string
	logger  *slog.Logger
}

func generateSha256(path string) ([]byte, error) {
	h := sha256.New()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// itemForFile finds the catalog entry a file holds, either from its host
// file name or from a bare "platform-arch" name with any extension.
func itemForFile(name, version string) (download.Item, bool) {
	for _, item := range download.Catalog {
		if name == item.FileName(version) {
			return item, true
		}
	}
	return download.LookupKey(strings.TrimSuffix(name, filepath.Ext(name)))
}

func (p *publisher) createRelease(path string, item download.Item) error {
	fileName := item.FileName(p.version)
	releaseDir := filepath.Join(p.root, p.version)
	if err := os.MkdirAll(releaseDir, 0755); err != nil {
		return err
	}

	dest := filepath.Join(releaseDir, fileName)
	if err := copyFile(path, dest); err != nil {
		return fmt.Errorf("copying %s: %w", path, err)
	}

	sum, err := generateSha256(dest)
	if err != nil {
		return err
	}
	checksum := fmt.Sprintf("%x  %s\n", sum, fileName)
	if err := os.WriteFile(dest+".sha256", []byte(checksum), 0644); err != nil {
		return err
	}

	p.logger.Info("published installer", "file", fileName)
	return p.createPatches(dest, item)
}

// createPatches writes a patch to the new installer from the same installer
// of every older release.
func (p *publisher) createPatches(newPath string, item download.Item) error {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		old := entry.Name()
		if !entry.IsDir() || old == p.version || old == latestDir || old == patchDir {
			continue
		}

		oldPath := filepath.Join(p.root, old, item.FileName(old))
		if _, err := os.Stat(oldPath); err != nil {
			// Don't have an old release for this platform, continue on
			continue
		}

		patch, err := diffFiles(oldPath, newPath)
		if err != nil {
			return fmt.Errorf("diffing %s: %w", oldPath, err)
		}

		dir := filepath.Join(p.root, patchDir, old, p.version)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, item.FileName(p.version)), patch, 0644); err != nil {
			return err
		}
		p.logger.Info("published patch", "from", old, "to", p.version, "key", item.Key())
	}
	return nil
}

func (p *publisher) writeLatest() error {
	dir := filepath.Join(p.root, latestDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, versionFile), []byte(p.version+"\n"), 0644)
}

func diffFiles(oldPath, newPath string) ([]byte, error) {
	old, err := os.Open(oldPath)
	if err != nil {
		return nil, err
	}
	defer old.Close()

	newF, err := os.Open(newPath)
	if err != nil {
		return nil, err
	}
	defer newF.Close()

	patch := new(bytes.Buffer)
	if err := binarydist.Diff(old, newF, patch); err != nil {
		return nil, err
	}
	return patch.Bytes(), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// publish lays out appPath, a single installer or a directory of them, as
// release version under outDir.
func publish(appPath, version, outDir string, logger *slog.Logger) error {
	if err := download.ValidateVersion(version); err != nil {
		return err
	}
	p := &publisher{
		root:    filepath.Join(outDir, "memfit"),
		version: version,
		logger:  logger,
	}

	fi, err := os.Stat(appPath)
	if err != nil {
		return err
	}

	// If dir is given create a release entry for each installer
	var files []string
	if fi.IsDir() {
		entries, err := os.ReadDir(appPath)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				files = append(files, filepath.Join(appPath, entry.Name()))
			}
		}
	} else {
		files = append(files, appPath)
	}

	published := 0
	for _, file := range files {
		item, ok := itemForFile(filepath.Base(file), version)
		if !ok {
			logger.Warn("skipping file that names no catalog entry", "file", file)
			continue
		}
		if err := p.createRelease(file, item); err != nil {
			return err
		}
		published++
	}
	if published == 0 {
		return errors.New("no installers found")
	}

	return p.writeLatest()
}

func printUsage() {
	fmt.Println("")
	fmt.Println("Positional arguments:")
	fmt.Println("\tSingle installer: memfit-publish MemfitAI-1.2-linux-amd64.AppImage 1.2")
	fmt.Println("\tRelease directory: memfit-publish /tmp/installers/ 1.2")
}

func main() {
	flagSet := pflag.NewFlagSet("memfit-publish", pflag.ExitOnError)
	outputDir := flagSet.StringP("output", "o", "public", "Output directory for writing the release")
	logLevel := flagSet.String("log-level", "info", "log level: debug, info, warn, error")
	flagSet.Parse(os.Args[1:])

	if flagSet.NArg() < 2 {
		flagSet.Usage()
		printUsage()
		os.Exit(0)
	}

	logger := logging.New(logging.ParseLevel(*logLevel))
	if err := publish(flagSet.Arg(0), flagSet.Arg(1), *outputDir, logger); err != nil {
		logger.Error("publish failed", "error", err)
		os.Exit(1)
	}
}
