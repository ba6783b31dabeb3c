package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/ctags/internal/app"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the project root, tag store path, config file and the effective settings.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	paths := app.NewPaths(root)
	opts := app.OptionsFrom(settings)

	source := fmt.Sprintf("%snone%s", colorYellow, colorReset)
	if cfgUsed != "" {
		source = cfgUsed
	}
	exclude := "-"
	if len(opts.Exclude) > 0 {
		exclude = strings.Join(opts.Exclude, " ")
	}
	force := "-"
	if opts.ForceLanguage != "" {
		force = opts.ForceLanguage
	}

	fmt.Printf("%s⚡ ctags config%s\n", colorBold, colorReset)
	fmt.Printf("  Root:       %s\n", root)
	fmt.Printf("  Store:      %s\n", paths.DB)
	fmt.Printf("  Watch log:  %s\n", paths.WatchLog)
	fmt.Printf("  Config:     %s\n", source)
	fmt.Printf("  Output:     %s\n", settings.GetString(app.KeyOutput))
	fmt.Printf("  Recurse:    %s\n", onOff(opts.Recurse))
	fmt.Printf("  Sort:       %s\n", onOff(opts.Sorted))
	fmt.Printf("  Append:     %s\n", onOff(opts.Append))
	fmt.Printf("  Links:      %s\n", onOff(opts.FollowLinks))
	fmt.Printf("  Exclude:    %s\n", exclude)
	fmt.Printf("  Language:   %s\n", force)
	return nil
}

func onOff(b bool) string {
	if b {
		return fmt.Sprintf("%son%s", colorGreen, colorReset)
	}
	return fmt.Sprintf("%soff%s", colorGray, colorReset)
}
