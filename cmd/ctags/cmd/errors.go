package cmd

import (
	"fmt"
	"strings"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// diagnoseDBLock returns actionable guidance when the tag store cannot be
// opened because another process holds its lock. The usual holder is a
// running "ctags watch".
func diagnoseDBLock(dbPath string) string {
	return fmt.Sprintf("tag store %s is locked by another process\n"+
		"  → a \"ctags watch\" may be running; stop it with Ctrl-C\n"+
		"  → otherwise find the process:  ps aux | grep ctags\n"+
		"  → then retry your command", dbPath)
}
