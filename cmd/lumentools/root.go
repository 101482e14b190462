// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for lumen-tools.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"lumen-tools/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "lumen-tools",
		Short: "Build custom Lumen UI bundles",
		Long: TitleStyle.Render("lumen-tools") + SubtitleStyle.Render(" - Build custom Lumen UI bundles") + `

lumen-tools assembles production bundles from the Lumen UI component
library. Pick a package version and a set of modules, and it resolves
the module dependency graph, fetches the package, and writes the JS and
CSS bundles along with an optional precompiled theme stylesheet.

` + SubtitleStyle.Render("Examples:") + `
  lumen-tools build --destination ./dist
  lumen-tools build --destination ./dist --version 1.2.4 --module tooltip --module menu
  lumen-tools build --destination ./dist --theme-primary indigo --theme-accent pink`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./lumen-tools.{json,yaml,toml})")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
