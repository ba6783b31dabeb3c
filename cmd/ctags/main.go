// ctags generates tag files: an index of the functions and other symbols
// defined in source files, for editors and other tools to jump to.
package main

import (
	"os"

	"github.com/corey/ctags/cmd/ctags/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
