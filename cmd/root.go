// Package cmd implements the CLI commands for printfriendly using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/printfriendly/config"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "printfriendly",
	Short: "printfriendly — printer-friendly views for a small publishing site",
	Long: `printfriendly builds print URLs for the posts, pages and term listings of a
site and renders their printer-friendly views: multi-page posts flattened,
links turned into numbered endnotes, and a "page N of M" label when a single
page is printed.

Usage:
  printfriendly url --kind single --id 12 --page 2
  printfriendly render hello-world --pdf
  printfriendly label hello-world --page 2
  printfriendly serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./printfriendly.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig loads the configuration and sets up the logger.
func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	logger.Debug("configuration loaded",
		"site", cfg.Site.Name,
		"base_url", cfg.Site.BaseURL,
		"permalinks", cfg.Site.Permalinks,
		"content_dir", cfg.Content.Dir,
		"theme_dir", cfg.Theme.Dir,
	)
	return nil
}
