//go:build unix

package osfs

import (
	"fmt"
	"os"
	"syscall"

	"github.com/corey/ctags/internal/ports"
)

func identity(dir string) (ports.Identity, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return ports.Identity{}, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ports.Identity{}, fmt.Errorf("no device/inode for %s", dir)
	}
	return ports.Identity{Device: uint64(st.Dev), Inode: uint64(st.Ino)}, nil
}
