package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/listings-labs/listings/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild registries whenever the manifest changes",
	Long: `Watch the manifest file and, after each change, reload it and flush every
registry. An invalid manifest is reported and the previous one stays loaded.
Stops on interrupt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(ctx context.Context, cmd *cobra.Command) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.set.FlushAll(); err != nil {
		return err
	}

	cfg := watcher.DefaultConfig(s.path)
	cfg.Logger = logger
	w, err := watcher.New(cfg)
	if err != nil {
		return err
	}
	defer w.Stop()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s\n", s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if err := s.reload(); err != nil {
				logger.Warn("manifest reload failed", "path", s.path, "error", err)
				fmt.Fprintf(out, "[FAIL] %v\n", err)
				continue
			}
			fmt.Fprintf(out, "[ OK ] reloaded %d page types\n", s.tree.Len())
		}
	}
}
