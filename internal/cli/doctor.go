package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/listings-labs/listings/internal/config"
	"github.com/listings-labs/listings/internal/hierarchy"
	"github.com/listings-labs/listings/internal/listings"
	"github.com/listings-labs/listings/internal/manifest"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the manifest, cache and registries",
	Long: `Validate the manifest against its schema, open the configured cache,
rebuild every registry and check that each root and index manages only
listed page types.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failures := runDoctor(out)
		if failures > 0 {
			return fmt.Errorf("doctor found %d problem(s)", failures)
		}
		fmt.Fprintln(out, "All checks passed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor prints one line per check and returns the number of failures.
func runDoctor(out io.Writer) int {
	path := viper.GetString(config.KeyManifest)
	fmt.Fprintf(out, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return 1
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  [FAIL] %s\n", issue)
		}
		return len(result.Issues)
	}
	fmt.Fprintln(out, "  [ OK ] matches schema")

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return 1
	}
	defer s.Close()
	fmt.Fprintf(out, "  [ OK ] %d page types, schema_version %s\n", s.tree.Len(), s.manifest.SchemaVersion)
	fmt.Fprintf(out, "  [ OK ] %s cache\n", config.CacheConfig().Backend)

	failures := 0
	fmt.Fprintln(out, "Registries:")
	for _, r := range s.set.All() {
		if err := r.Flush(); err != nil {
			fmt.Fprintf(out, "  [FAIL] %s: %v\n", r.Kind(), err)
			failures++
			continue
		}
		classes, err := r.Classes(true)
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %s: %v\n", r.Kind(), err)
			failures++
			continue
		}
		fmt.Fprintf(out, "  [ OK ] %s: %d classes\n", r.Kind(), classes.Len())
	}

	fmt.Fprintln(out, "Associations:")
	failures += checkAssociations(out, s.set)
	return failures
}

// checkAssociations verifies that every root and index manages at least one
// class and that each managed class is a listed page type.
func checkAssociations(out io.Writer, set *listings.Set) int {
	failures := 0
	for _, r := range []*listings.Registry{set.Roots, set.Indexes} {
		owners, err := r.Classes(true)
		if err != nil {
			continue
		}
		for _, owner := range owners.Names() {
			assoc, err := r.Associations(owner)
			if err != nil {
				fmt.Fprintf(out, "  [FAIL] %s: %v\n", owner, err)
				failures++
				continue
			}
			if len(assoc.Classes) == 0 {
				fmt.Fprintf(out, "  [WARN] %s: manages no listed page types\n", owner)
				continue
			}
			if err := set.Listed.Validate(assoc.Classes); err != nil {
				fmt.Fprintf(out, "  [FAIL] %s: %v\n", owner, err)
				failures++
				continue
			}
			fmt.Fprintf(out, "  [ OK ] %s manages %s\n", owner, describe(assoc))
		}
	}
	return failures
}

func describe(l hierarchy.Listings) string {
	s := fmt.Sprint(l.Classes)
	if l.TopLevelOnly() {
		s += " (index only)"
	}
	return s
}
