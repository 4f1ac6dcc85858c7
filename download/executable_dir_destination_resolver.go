package download

import (
	"path/filepath"

	"github.com/kardianos/osext"
)

// ExecutableDirDestinationResolver places the installer next to the
// executable running this program
type ExecutableDirDestinationResolver struct {
}

// Resolve attempts to find the folder of the current executable
func (c ExecutableDirDestinationResolver) Resolve(target Target) (string, error) {
	if !target.Resolved() {
		return "", ErrUnresolved
	}
	dir, err := osext.ExecutableFolder()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, target.FileName()), nil
}
