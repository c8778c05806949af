package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	commonRegistry string
	commonJSON     bool
)

type commonResult struct {
	Class    string `json:"class"`
	Singular string `json:"singular_name"`
	Plural   string `json:"plural_name"`
}

var commonCmd = &cobra.Command{
	Use:   "common [type...]",
	Short: "Show the closest class shared by page types",
	Long: `Show the closest class shared by the given page types along with its
singular and plural titles. Without arguments the registry's declaring
types are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.registry(commonRegistry)
		if err != nil {
			return err
		}

		var res commonResult
		if res.Class, err = r.CommonClass(args); err != nil {
			return err
		}
		if res.Singular, err = r.CommonSingularName(args); err != nil {
			return err
		}
		if res.Plural, err = r.CommonPluralName(args); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if commonJSON {
			return writeJSON(out, res)
		}
		fmt.Fprintf(out, "Class:    %s\n", res.Class)
		fmt.Fprintf(out, "Singular: %s\n", res.Singular)
		fmt.Fprintf(out, "Plural:   %s\n", res.Plural)
		return nil
	},
}

func init() {
	commonCmd.Flags().StringVar(&commonRegistry, "registry", "listed", "Registry: listed, roots or indexes")
	commonCmd.Flags().BoolVar(&commonJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(commonCmd)
}
