package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .ctags/ project directory.
type Paths struct {
	Root string // .ctags/
	DB   string // .ctags/tags.db

	LogDir   string // .ctags/log/
	WatchLog string // .ctags/log/watch.log
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".ctags")
	return &Paths{
		Root: root,
		DB:   filepath.Join(root, "tags.db"),

		LogDir:   filepath.Join(root, "log"),
		WatchLog: filepath.Join(root, "log", "watch.log"),
	}
}

// EnsureDirs creates all subdirectories under .ctags/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// OpenWatchLog opens the watch log for appending, creating it if needed.
func (p *Paths) OpenWatchLog() (*os.File, error) {
	if err := p.EnsureDirs(); err != nil {
		return nil, err
	}
	return os.OpenFile(p.WatchLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
