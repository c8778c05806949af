package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	forPageRegistry string
	forPageJSON     bool
)

type ownerEntry struct {
	Type      string   `json:"type"`
	Manages   []string `json:"listed_pages_classes"`
	IndexOnly bool     `json:"listed_pages_index_only"`
}

var forPageCmd = &cobra.Command{
	Use:   "for-page <type>",
	Short: "Show the roots or indexes that manage a listed page type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.registry(forPageRegistry)
		if err != nil {
			return err
		}
		owners, err := r.ClassesForPage(args[0])
		if err != nil {
			return err
		}

		entries := make([]ownerEntry, 0, owners.Len())
		for _, owner := range owners.Names() {
			assoc, err := r.Associations(owner)
			if err != nil {
				return err
			}
			entries = append(entries, ownerEntry{Type: owner, Manages: assoc.Classes, IndexOnly: assoc.TopLevelOnly()})
		}

		out := cmd.OutOrStdout()
		if forPageJSON {
			return writeJSON(out, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintf(out, "No %s manage %s.\n", r.Kind(), args[0])
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tMANAGES\tINDEX ONLY")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%v\n", e.Type, strings.Join(e.Manages, ", "), e.IndexOnly)
		}
		return w.Flush()
	},
}

func init() {
	forPageCmd.Flags().StringVar(&forPageRegistry, "registry", "roots", "Registry: roots or indexes")
	forPageCmd.Flags().BoolVar(&forPageJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(forPageCmd)
}
