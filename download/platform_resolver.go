package download

//go:generate mockgen -destination=./mocks/platform_resolver.go -package=mocks -source=platform_resolver.go

// PlatformResolver determines the platform and architecture an installer
// should be picked for.
type PlatformResolver interface {
	Resolve() (Platform, Arch)
}

// NavigatorPlatformResolver classifies a browser client from the signals its
// navigator exposes.
type NavigatorPlatformResolver struct {
	nav *Navigator
}

// NewNavigatorPlatformResolver returns a resolver for nav. A nil nav
// resolves to an unknown platform.
func NewNavigatorPlatformResolver(nav *Navigator) NavigatorPlatformResolver {
	return NavigatorPlatformResolver{nav: nav}
}

// Resolve runs platform and architecture detection on the navigator.
func (n NavigatorPlatformResolver) Resolve() (Platform, Arch) {
	return DetectPlatform(n.nav), DetectArch(n.nav)
}
