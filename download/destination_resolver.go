package download

import "path/filepath"

//go:generate mockgen -destination=./mocks/destination_resolver.go -package=mocks -source=destination_resolver.go

// DestinationResolver finds the file a fetched installer is written to.
type DestinationResolver interface {
	Resolve(target Target) (string, error)
}

// DirDestinationResolver places the installer under its host file name in
// a directory. An empty directory means the working directory.
type DirDestinationResolver struct {
	dir string
}

// NewDirDestinationResolver returns a resolver writing into dir.
func NewDirDestinationResolver(dir string) DirDestinationResolver {
	return DirDestinationResolver{dir: dir}
}

// Resolve joins the directory and the installer file name.
func (d DirDestinationResolver) Resolve(target Target) (string, error) {
	if !target.Resolved() {
		return "", ErrUnresolved
	}
	return filepath.Join(d.dir, target.FileName()), nil
}
