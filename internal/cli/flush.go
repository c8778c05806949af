package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/listings-labs/listings/internal/listings"
)

var flushRegistry string

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Discard and rebuild cached registry contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		var targets []*listings.Registry
		if flushRegistry == "all" {
			targets = s.set.All()
		} else {
			r, err := s.registry(flushRegistry)
			if err != nil {
				return err
			}
			targets = []*listings.Registry{r}
		}

		out := cmd.OutOrStdout()
		for _, r := range targets {
			if err := r.Flush(); err != nil {
				return err
			}
			classes, err := r.Classes(false)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Flushed %s (%d classes)\n", r.Kind(), classes.Len())
		}
		return nil
	},
}

func init() {
	flushCmd.Flags().StringVar(&flushRegistry, "registry", "all", "Registry: all, listed, roots or indexes")
	rootCmd.AddCommand(flushCmd)
}
