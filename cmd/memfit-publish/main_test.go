package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/binarydist"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestGenerateSha256(t *testing.T) {
	t.Parallel()
	tempFile, err := os.CreateTemp("", "test_file")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tempFile.Name())

	content := []byte("Hello, World!")
	if _, err := tempFile.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tempFile.Close(); err != nil {
		t.Fatal(err)
	}

	expectedHash := sha256.Sum256(content)

	result, err := generateSha256(tempFile.Name())
	if err != nil {
		t.Fatal(err)
	}

	resultStr := hex.EncodeToString(result)
	expectedStr := hex.EncodeToString(expectedHash[:])

	if resultStr != expectedStr {
		t.Errorf("Expected '%s', but got '%s'", expectedStr, resultStr)
	}
}

func TestItemForFile(t *testing.T) {
	tests := []struct {
		name string
		key  string
		ok   bool
	}{
		{"MemfitAI-1.2-darwin-legacy-x64.dmg", "darwin-legacy-x64", true},
		{"linux-arm64.AppImage", "linux-arm64", true},
		{"windows-amd64", "windows-amd64", true},
		{"MemfitAI-1.1-linux-amd64.AppImage", "", false},
		{"README.md", "", false},
	}

	for _, tc := range tests {
		item, ok := itemForFile(tc.name, "1.2")
		if ok != tc.ok || (ok && item.Key() != tc.key) {
			t.Errorf("itemForFile(%q) = %s, %v, want %s, %v", tc.name, item.Key(), ok, tc.key, tc.ok)
		}
	}
}

func writeInstaller(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestPublish(t *testing.T) {
	out := t.TempDir()

	first := t.TempDir()
	writeInstaller(t, first, "linux-amd64.AppImage", "memfit linux build one, sharing most of its bytes")
	writeInstaller(t, first, "notes.txt", "not an installer")
	if err := publish(first, "1.1", out, testLogger); err != nil {
		t.Fatalf("publish 1.1: %v", err)
	}

	second := t.TempDir()
	newContent := "memfit linux build two, sharing most of its bytes!"
	writeInstaller(t, second, "MemfitAI-1.2-linux-amd64.AppImage", newContent)
	writeInstaller(t, second, "windows-amd64.exe", "memfit windows build")
	if err := publish(second, "1.2", out, testLogger); err != nil {
		t.Fatalf("publish 1.2: %v", err)
	}

	root := filepath.Join(out, "memfit")

	latest, err := os.ReadFile(filepath.Join(root, "latest", "yakit-version.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(latest)) != "1.2" {
		t.Errorf("latest = %q", latest)
	}

	for _, name := range []string{
		"1.1/MemfitAI-1.1-linux-amd64.AppImage",
		"1.2/MemfitAI-1.2-linux-amd64.AppImage",
		"1.2/MemfitAI-1.2-linux-amd64.AppImage.sha256",
		"1.2/MemfitAI-1.2-windows-amd64.exe",
	} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "1.1", "notes.txt")); !os.IsNotExist(err) {
		t.Errorf("non-installer was published: %v", err)
	}

	// Only the linux installer has an older release to patch from.
	if _, err := os.Stat(filepath.Join(root, "patch", "1.1", "1.2", "MemfitAI-1.2-windows-amd64.exe")); !os.IsNotExist(err) {
		t.Errorf("unexpected windows patch: %v", err)
	}

	patch, err := os.Open(filepath.Join(root, "patch", "1.1", "1.2", "MemfitAI-1.2-linux-amd64.AppImage"))
	if err != nil {
		t.Fatal(err)
	}
	defer patch.Close()
	old, err := os.Open(filepath.Join(root, "1.1", "MemfitAI-1.1-linux-amd64.AppImage"))
	if err != nil {
		t.Fatal(err)
	}
	defer old.Close()

	var patched bytes.Buffer
	if err := binarydist.Patch(old, &patched, patch); err != nil {
		t.Fatalf("applying patch: %v", err)
	}
	if patched.String() != newContent {
		t.Errorf("patched installer = %q, want %q", patched.String(), newContent)
	}

	sum := sha256.Sum256([]byte(newContent))
	checksum, err := os.ReadFile(filepath.Join(root, "1.2", "MemfitAI-1.2-linux-amd64.AppImage.sha256"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(checksum), hex.EncodeToString(sum[:])) {
		t.Errorf("checksum file = %q", checksum)
	}
}

func TestPublishRejectsEmptyRelease(t *testing.T) {
	dir := t.TempDir()
	writeInstaller(t, dir, "README.md", "docs")

	if err := publish(dir, "1.0", t.TempDir(), testLogger); err == nil {
		t.Error("publish of a directory without installers succeeded")
	}
	if err := publish(dir, "bad/version", t.TempDir(), testLogger); err == nil {
		t.Error("publish with a malformed version succeeded")
	}
}
