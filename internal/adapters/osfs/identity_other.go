//go:build !unix

package osfs

import (
	"path/filepath"

	"github.com/corey/ctags/internal/ports"
)

func identity(dir string) (ports.Identity, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ports.Identity{}, err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return ports.Identity{}, err
	}
	return ports.Identity{Path: filepath.Clean(real)}, nil
}
