package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Re-lint YAML files on every save",
	Long: `Watch a file or directory and run the full pipeline whenever a
YAML file is written. This is the save-triggered mode: point it at the
directory your editor saves configs into and leave it running. Stop with
Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner(cmd)
		if err != nil {
			return err
		}

		target := args[0]
		info, err := os.Stat(target)
		if err != nil {
			return WrapExitError(ExitInvalidArguments, fmt.Errorf("watch path not found: %s", target))
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return WrapExitError(ExitEnvironment, fmt.Errorf("starting watcher: %w", err))
		}
		defer watcher.Close()

		// Watching the parent directory catches editors that replace the
		// file on save instead of writing it in place.
		watchDir := target
		if !info.IsDir() {
			watchDir = filepath.Dir(target)
		}
		if err := watcher.Add(watchDir); err != nil {
			return WrapExitError(ExitEnvironment, fmt.Errorf("watching %s: %w", watchDir, err))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "watching %s (Ctrl-C to stop)\n", target)

		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if !isYAMLFile(event.Name) {
					continue
				}
				if !info.IsDir() && filepath.Clean(event.Name) != filepath.Clean(target) {
					continue
				}
				fmt.Fprintf(out, "\n--- %s ---\n", event.Name)
				rep, err := runner.Run(event.Name)
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				renderReport(out, rep, verboseFlag(cmd))
			case werr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", werr)
			}
		}
	},
}

// isYAMLFile reports whether a path names a YAML file.
func isYAMLFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
