package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/corey/ctags/internal/adapters/bbolt"
	"github.com/corey/ctags/internal/adapters/tagfile"
	"github.com/corey/ctags/internal/app"
	"github.com/corey/ctags/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	cfgUsed  string
	settings = app.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "ctags [flags] [paths...]",
	Short: "Generate tag files from source code",
	Long: "Scans source files for symbol definitions and writes one tag record per\n" +
		"definition: name, file and line. With -R, directories are scanned recursively.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runTag,
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctags: %v\n", err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./.ctags.toml, then $HOME/.config/ctags/.ctags.toml)")
	pf.Bool(app.KeyVerbose, false, "report skipped files and directories")
	pf.StringArray(app.KeyExclude, nil, "exclude files and directories matching `pattern` (gitignore syntax, @file reads patterns)")
	pf.String(app.KeyLanguageForce, "", "scan every file as `language`")
	pf.Bool(app.KeyLinks, true, "follow symbolic links")

	f := rootCmd.Flags()
	f.BoolP(app.KeyRecurse, "R", false, "recurse into directories")
	f.Bool(app.KeySort, true, "sort the tag file")
	f.BoolP(app.KeyAppend, "a", false, "append to the existing tag file")
	f.StringP(app.KeyOutput, "f", app.DefaultOutput, "write tags to `file` (\"-\" for standard output)")
	f.Bool(app.KeyTotals, false, "print statistics about the run")
	f.Bool(app.KeyStore, false, "write tags into the tag store (.ctags/tags.db) instead of a file")

	for _, key := range []string{app.KeyVerbose, app.KeyExclude, app.KeyLanguageForce, app.KeyLinks} {
		bindFlag(settings, key, pf)
	}
	for _, key := range []string{app.KeyRecurse, app.KeySort, app.KeyAppend, app.KeyOutput, app.KeyTotals, app.KeyStore} {
		bindFlag(settings, key, f)
	}

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig merges .env, the config file and CTAGS_* variables under the
// command-line flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	if err := app.LoadEnvFile(root); err != nil {
		return err
	}
	used, err := app.ReadConfig(settings, cfgFile, root)
	if err != nil {
		return err
	}
	cfgUsed = used
	if used != "" && settings.GetBool(app.KeyVerbose) {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
	return nil
}

func runTag(cmd *cobra.Command, args []string) error {
	opts := app.OptionsFrom(settings)
	paths := args
	if len(paths) == 0 {
		if !opts.Recurse {
			return errors.New("no files specified (use -R to scan the current directory)")
		}
		paths = []string{"."}
	}

	log := app.NewLogger(os.Stderr, settings.GetBool(app.KeyVerbose), false)
	tagger, err := app.New(app.Config{Log: log})
	if err != nil {
		return err
	}
	if err := tagger.Validate(opts); err != nil {
		return err
	}

	sink, done, err := openSink(opts.Append)
	if err != nil {
		return err
	}
	defer done()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := tagger.Run(ctx, sink, paths, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("interrupted")
		}
		return err
	}
	if settings.GetBool(app.KeyTotals) {
		fmt.Fprint(os.Stderr, rep.Summary())
	}
	return nil
}

// openSink opens the configured destination. done releases anything the
// sink does not own itself.
func openSink(appendMode bool) (ports.TagSink, func(), error) {
	if !settings.GetBool(app.KeyStore) {
		w, err := tagfile.Open(settings.GetString(app.KeyOutput), appendMode)
		if err != nil {
			return nil, nil, err
		}
		return w, func() {}, nil
	}

	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	sink, err := store.NewSink(appendMode)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return sink, func() { store.Close() }, nil
}

// openStore opens the project tag store, explaining lock contention.
func openStore() (*bbolt.Store, error) {
	paths := app.NewPaths(projectRoot())
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create %s: %w", paths.Root, err)
	}
	store, err := bbolt.NewStore(paths.DB)
	if err != nil {
		if isDBLockError(err) {
			return nil, errors.New(diagnoseDBLock(paths.DB))
		}
		return nil, fmt.Errorf("open tag store: %w", err)
	}
	return store, nil
}

func bindFlag(v *viper.Viper, key string, fs *pflag.FlagSet) {
	if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
		panic(err)
	}
}
