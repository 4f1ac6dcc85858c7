package download

import "strings"

const legacySuffix = "-legacy"

// Name is an installer's display name per locale.
type Name struct {
	En     string `json:"en"`
	ZhHans string `json:"zh-Hans"`
}

// Item describes one downloadable installer on the artifact host.
type Item struct {
	Name      Name   `json:"name"`
	Platform  string `json:"platform"`
	Arch      Arch   `json:"arch"`
	Extension string `json:"extension"`
}

// Catalog is the fixed list of installers published for every release. The
// order is the order of the manual selection list; the entries mirror the
// file names on the artifact host and must not be changed independently.
var Catalog = []Item{
	{Name: Name{En: "macOS (Apple Silicon)", ZhHans: "macOS (Apple Silicon)"}, Platform: "darwin", Arch: ARM64, Extension: "dmg"},
	{Name: Name{En: "macOS (Intel)", ZhHans: "macOS (Intel)"}, Platform: "darwin", Arch: X64, Extension: "dmg"},
	{Name: Name{En: "macOS (Legacy Apple Silicon)", ZhHans: "macOS (Legacy Apple Silicon)"}, Platform: "darwin-legacy", Arch: ARM64, Extension: "dmg"},
	{Name: Name{En: "macOS (Legacy Intel)", ZhHans: "macOS (Legacy Intel)"}, Platform: "darwin-legacy", Arch: X64, Extension: "dmg"},
	{Name: Name{En: "Linux (AMD64)", ZhHans: "Linux (AMD64)"}, Platform: "linux", Arch: AMD64, Extension: "AppImage"},
	{Name: Name{En: "Linux (ARM64)", ZhHans: "Linux (ARM64)"}, Platform: "linux", Arch: ARM64, Extension: "AppImage"},
	{Name: Name{En: "Linux (Legacy AMD64)", ZhHans: "Linux (Legacy AMD64)"}, Platform: "linux-legacy", Arch: AMD64, Extension: "AppImage"},
	{Name: Name{En: "Linux (Legacy ARM64)", ZhHans: "Linux (Legacy ARM64)"}, Platform: "linux-legacy", Arch: ARM64, Extension: "AppImage"},
	{Name: Name{En: "Windows (AMD64)", ZhHans: "Windows (AMD64)"}, Platform: "windows", Arch: AMD64, Extension: "exe"},
	{Name: Name{En: "Windows (Legacy AMD64)", ZhHans: "Windows (Legacy AMD64)"}, Platform: "windows-legacy", Arch: AMD64, Extension: "exe"},
}

// Lookup finds the catalog entry for a platform tag and architecture.
func Lookup(platformTag string, arch Arch) (Item, bool) {
	for _, item := range Catalog {
		if item.Platform == platformTag && item.Arch == arch {
			return item, true
		}
	}
	return Item{}, false
}

// LookupKey finds the catalog entry whose Key equals key.
func LookupKey(key string) (Item, bool) {
	for _, item := range Catalog {
		if item.Key() == key {
			return item, true
		}
	}
	return Item{}, false
}

// DefaultIndex returns the position in Catalog of the primary build for p
// and a, or 0 when there is none, so a selection list always starts on a
// valid entry.
func DefaultIndex(p Platform, a Arch) int {
	for i, item := range Catalog {
		if item.Platform == string(p) && item.Arch == a {
			return i
		}
	}
	return 0
}

// OS returns the operating system the item targets.
func (i Item) OS() Platform {
	return ParsePlatform(i.Platform)
}

// Legacy reports whether the item is the secondary build of its OS.
func (i Item) Legacy() bool {
	return strings.HasSuffix(i.Platform, legacySuffix)
}

// Key is the "platform-arch" pair that identifies the item in file names.
func (i Item) Key() string {
	return i.Platform + "-" + string(i.Arch)
}

// DisplayName returns the name for locale, falling back to English.
func (i Item) DisplayName(locale string) string {
	if locale == "zh-Hans" && i.Name.ZhHans != "" {
		return i.Name.ZhHans
	}
	return i.Name.En
}

// FileName is the installer's file name on the artifact host.
func (i Item) FileName(version string) string {
	return "MemfitAI-" + version + "-" + i.Key() + "." + i.Extension
}
