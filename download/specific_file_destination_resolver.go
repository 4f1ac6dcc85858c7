package download

// SpecificFileDestinationResolver resolves the destination with a path
// to a specific file on disk.
type SpecificFileDestinationResolver struct {
	path string
}

// NewSpecificFileDestinationResolver returns a resolver that resolves to the
// specific file path passed in.
func NewSpecificFileDestinationResolver(path string) SpecificFileDestinationResolver {
	return SpecificFileDestinationResolver{path}
}

// Resolve returns the configured path whatever the target is named.
func (c SpecificFileDestinationResolver) Resolve(target Target) (string, error) {
	if !target.Resolved() {
		return "", ErrUnresolved
	}
	return c.path, nil
}
