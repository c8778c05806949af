package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/listings-labs/listings/internal/branding"
	"github.com/listings-labs/listings/internal/config"
	"github.com/listings-labs/listings/internal/scaffold"
)

var (
	initTemplate string
	initRoot     string
	initPrefix   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter page-type manifest",
	Long: `Write a starter manifest to the configured manifest path. Available templates: ` +
		strings.Join(scaffold.Templates(), ", ") + `.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString(config.KeyManifest)
		data := scaffold.NewScaffoldData(initRoot, initPrefix, branding.CLIName())
		result, err := scaffold.Generate(initTemplate, data, path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Wrote %s\n", result.Path)
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  [WARN] %s\n", w)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initTemplate, "template", scaffold.DefaultTemplate, "Template set to generate from")
	initCmd.Flags().StringVar(&initRoot, "root", "SiteTree", "Name of the root page type")
	initCmd.Flags().StringVar(&initPrefix, "prefix", "", "Prefix for generated type names")
	rootCmd.AddCommand(initCmd)
}
