package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	fsw "github.com/corey/ctags/internal/adapters/fsnotify"
	"github.com/corey/ctags/internal/app"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Keep the tag store current as files change",
	Long: "Tags dir (default: the current directory) recursively into the tag store,\n" +
		"then re-tags files as they are written, created or removed until interrupted.\n" +
		"Events are logged to .ctags/log/watch.log.",
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	paths := app.NewPaths(projectRoot())
	logFile, err := paths.OpenWatchLog()
	if err != nil {
		return fmt.Errorf("open watch log: %w", err)
	}
	defer logFile.Close()
	log := app.NewLogger(io.MultiWriter(os.Stderr, logFile), settings.GetBool(app.KeyVerbose), true)

	tagger, err := app.New(app.Config{Log: log})
	if err != nil {
		return err
	}
	opts := app.OptionsFrom(settings)
	opts.Recurse = true
	opts.Append = false
	exclude, err := tagger.Excluder(opts)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, err := store.NewSink(false)
	if err != nil {
		return err
	}
	rep, err := tagger.Run(ctx, sink, []string{dir}, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	fmt.Fprint(os.Stderr, rep.Summary())

	watcher, err := fsw.NewWatcher(exclude)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w, err := tagger.NewWatch(app.WatchConfig{Root: dir, Store: store, Watcher: watcher}, opts)
	if err != nil {
		watcher.Stop()
		return err
	}
	if err := w.Start(); err != nil {
		watcher.Stop()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	fmt.Printf("%s⚡ watching%s %s %s(Ctrl-C to stop)%s\n", colorBold, colorReset, dir, colorGray, colorReset)
	<-ctx.Done()
	w.Stop()

	c := w.Totals()
	fmt.Printf("%s✓ stopped%s  re-tagged %d file%s\n", colorGreen, colorReset, c.Files, plural(c.Files))
	return nil
}

func plural(n int64) string {
	if n == 1 {
		return ""
	}
	return "s"
}
