package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Look up a tag in the tag store",
	Long:  "Lists every definition of name recorded in .ctags/tags.db, ordered by file and line.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tags, err := store.Find(args[0])
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return fmt.Errorf("no tag named %q", args[0])
	}

	fmt.Print(formatTags(tags))
	return nil
}
