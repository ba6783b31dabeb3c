package cmd

import (
	"fmt"

	"github.com/corey/ctags/internal/app"
	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their file extensions",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func runLanguages(cmd *cobra.Command, args []string) error {
	reg, err := app.DefaultRegistry()
	if err != nil {
		return err
	}
	fmt.Print(formatLanguages(reg.Parsers()))
	return nil
}
