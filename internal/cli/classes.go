package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/listings-labs/listings/internal/listings"
)

var (
	classesRegistry   string
	classesSubclasses bool
	classesTitles     bool
	classesSingular   bool
	classesCanBeRoot  bool
	classesJSON       bool
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the page types in a registry",
	Long: `List the page types carrying a registry's capability. By default only the
types declaring the capability are shown; --subclasses adds every subclass.`,
	Args: cobra.NoArgs,
	RunE: runClasses,
}

func init() {
	classesCmd.Flags().StringVar(&classesRegistry, "registry", "listed", "Registry: listed, roots or indexes")
	classesCmd.Flags().BoolVar(&classesSubclasses, "subclasses", false, "Include subclasses of the declaring types")
	classesCmd.Flags().BoolVar(&classesTitles, "titles", false, "Show each type with its title")
	classesCmd.Flags().BoolVar(&classesSingular, "singular", false, "Use singular titles with --titles")
	classesCmd.Flags().BoolVar(&classesCanBeRoot, "can-be-root", false, "Only listed page types that can act as their own root")
	classesCmd.Flags().BoolVar(&classesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(classesCmd)
}

func runClasses(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	r, err := s.registry(classesRegistry)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if classesTitles {
		choices, err := r.Choices(classesSubclasses, classesSingular)
		if err != nil {
			return err
		}
		if classesJSON {
			return writeJSON(out, choices)
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tTITLE")
		for _, c := range choices {
			fmt.Fprintf(w, "%s\t%s\n", c.Type, c.Title)
		}
		return w.Flush()
	}

	var classes listings.TypeSet
	if classesCanBeRoot {
		if r.Kind() != listings.ListedPages {
			return fmt.Errorf("--can-be-root applies to the listed registry only")
		}
		classes, err = r.IndexClasses()
	} else {
		classes, err = r.Classes(classesSubclasses)
	}
	if err != nil {
		return err
	}

	if classesJSON {
		return writeJSON(out, classes)
	}
	for _, name := range classes.Names() {
		fmt.Fprintln(out, name)
	}
	return nil
}
