package download

// SpecificPlatformResolver resolves to the operating system and
// architecture passed in.
type SpecificPlatformResolver struct {
	platform Platform
	arch     Arch
}

// NewSpecificPlatformResolver accepts Go style names ("darwin", "amd64") as
// well as installer tags ("x64"). Unrecognized names resolve to Unknown.
func NewSpecificPlatformResolver(os, arch string) SpecificPlatformResolver {
	p := ParsePlatform(os)
	a, ok := ParseArch(arch)
	if !ok {
		p = Unknown
	}
	return SpecificPlatformResolver{platform: p, arch: NormalizeArch(p, a)}
}

// Resolve returns the architecture and operating system used to build this
// resolver
func (c SpecificPlatformResolver) Resolve() (Platform, Arch) {
	return c.platform, c.arch
}
