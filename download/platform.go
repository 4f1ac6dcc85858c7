package download

import "strings"

// Platform is the operating system family an installer is built for.
type Platform string

const (
	Darwin  Platform = "darwin"
	Linux   Platform = "linux"
	Windows Platform = "windows"
	Unknown Platform = "unknown"
)

// Arch is the CPU architecture tag used in installer file names. macOS
// builds use x64 where Linux and Windows builds use amd64.
type Arch string

const (
	ARM64 Arch = "arm64"
	AMD64 Arch = "amd64"
	X64   Arch = "x64"
)

// Navigator holds the client environment signals a browser exposes. A nil
// *Navigator stands for a context without a navigator object, e.g. a
// request made by a crawler or a server-side render.
type Navigator struct {
	UserAgent           string
	Platform            string
	HardwareConcurrency int
	MaxTouchPoints      int
}

// appleSiliconCores is the hardware concurrency at or above which a Mac is
// assumed to be Apple silicon even when it reports itself as Intel.
const appleSiliconCores = 8

// DetectPlatform classifies the client operating system. The first marker
// found in the platform string or the user agent wins, in the order macOS,
// Windows, Linux.
func DetectPlatform(nav *Navigator) Platform {
	if nav == nil {
		return Unknown
	}

	userAgent := strings.ToLower(nav.UserAgent)
	platform := strings.ToLower(nav.Platform)

	switch {
	case strings.Contains(platform, "mac") || strings.Contains(userAgent, "mac"):
		return Darwin
	case strings.Contains(platform, "win") || strings.Contains(userAgent, "win"):
		return Windows
	case strings.Contains(platform, "linux") || strings.Contains(userAgent, "linux"):
		return Linux
	}
	return Unknown
}

// DetectArch classifies the client CPU architecture.
//
// Browsers on Apple silicon commonly report "MacIntel" and an Intel user
// agent, so on macOS a high core count or touch support is taken as a sign
// of Apple silicon. The heuristic misclassifies some hardware (many-core
// Intel Macs for one) and is kept as is.
func DetectArch(nav *Navigator) Arch {
	if nav == nil {
		return AMD64
	}

	userAgent := strings.ToLower(nav.UserAgent)
	if strings.Contains(userAgent, "arm") || strings.Contains(userAgent, "aarch64") {
		return ARM64
	}

	if DetectPlatform(nav) == Darwin {
		if nav.HardwareConcurrency >= appleSiliconCores ||
			(nav.Platform == "MacIntel" && nav.MaxTouchPoints > 1) {
			return ARM64
		}
		return X64
	}

	return AMD64
}

// Extension returns the installer file extension for an operating system,
// or "" when there is none.
func Extension(p Platform) string {
	switch p {
	case Darwin:
		return "dmg"
	case Linux:
		return "AppImage"
	case Windows:
		return "exe"
	}
	return ""
}

// ParsePlatform maps a platform tag, including legacy tags such as
// "darwin-legacy", onto its operating system.
func ParsePlatform(tag string) Platform {
	switch Platform(strings.TrimSuffix(strings.ToLower(tag), legacySuffix)) {
	case Darwin:
		return Darwin
	case Linux:
		return Linux
	case Windows:
		return Windows
	}
	return Unknown
}

// ParseArch maps an architecture name onto an Arch. Go and common aliases
// are accepted; ok is false for anything the catalog has no build for.
func ParseArch(name string) (arch Arch, ok bool) {
	switch strings.ToLower(name) {
	case "arm64", "aarch64":
		return ARM64, true
	case "amd64", "x86_64":
		return AMD64, true
	case "x64":
		return X64, true
	}
	return "", false
}

// NormalizeArch rewrites the x86-64 tag to the spelling the installers for p
// use: x64 on macOS, amd64 everywhere else.
func NormalizeArch(p Platform, a Arch) Arch {
	switch {
	case p == Darwin && a == AMD64:
		return X64
	case p != Darwin && a == X64:
		return AMD64
	}
	return a
}
