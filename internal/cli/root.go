package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/listings-labs/listings/internal/branding"
	"github.com/listings-labs/listings/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// logger is configured by the root command before any subcommand runs.
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` answers which page types can be listed, which can own listings as
roots, and which can aggregate them as indexes. Page types and their
capabilities are declared in a YAML manifest.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		l, err := newLogger(cmd.ErrOrStderr(), viper.GetString(config.KeyLogLevel))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("manifest", "", "Path to the page-type manifest (default "+branding.ManifestFile()+")")
	pf.String("cache", "", "Cache backend: memory, lru or badger")
	pf.String("cache-dir", "", "Directory for the badger cache")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	_ = viper.BindPFlag(config.KeyManifest, pf.Lookup("manifest"))
	_ = viper.BindPFlag(config.KeyCacheBackend, pf.Lookup("cache"))
	_ = viper.BindPFlag(config.KeyCacheDir, pf.Lookup("cache-dir"))
	_ = viper.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
}

// newLogger returns a text logger on w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	} else {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
