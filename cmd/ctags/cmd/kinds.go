package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/ctags/internal/app"
	"github.com/corey/ctags/internal/ports"
	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds [language]",
	Short: "List the tag kinds each language produces",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKinds,
}

func runKinds(cmd *cobra.Command, args []string) error {
	reg, err := app.DefaultRegistry()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		def, err := reg.Lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Print(formatKinds(def))
		return nil
	}

	for _, def := range reg.Parsers() {
		printKindsSection(def)
	}
	return nil
}

func printKindsSection(def ports.ParserDefinition) {
	fmt.Printf("%s%s%s\n", colorBold, def.Name, colorReset)
	for _, line := range strings.Split(strings.TrimRight(formatKinds(def), "\n"), "\n") {
		fmt.Printf("  %s\n", line)
	}
}
