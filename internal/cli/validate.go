package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var validateRegistry string

var validateCmd = &cobra.Command{
	Use:   "validate <type>...",
	Short: "Check that page types belong to a registry",
	Long: `Check that every given page type exists, carries the registry's capability
(declared or inherited) and descends from the manifest's base type.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.registry(validateRegistry)
		if err != nil {
			return err
		}
		if err := r.Validate(args); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[ OK ] %s: %s\n", r.Kind(), strings.Join(args, ", "))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateRegistry, "registry", "listed", "Registry: listed, roots or indexes")
	rootCmd.AddCommand(validateCmd)
}
