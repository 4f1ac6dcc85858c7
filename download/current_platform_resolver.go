package download

import (
	"runtime"
)

// CurrentPlatformResolver resolves to the OS and architecture this program
// is running on, spelled the way the installers are named.
type CurrentPlatformResolver struct {
}

// Resolve returns the current architecture and operating system
func (c CurrentPlatformResolver) Resolve() (Platform, Arch) {
	return goPlatform(runtime.GOOS, runtime.GOARCH)
}

func goPlatform(goos, goarch string) (Platform, Arch) {
	p := ParsePlatform(goos)
	a, ok := ParseArch(goarch)
	if !ok {
		// No installer is built for this architecture.
		return Unknown, AMD64
	}
	return p, NormalizeArch(p, a)
}
