// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"lumen-tools/internal/builder"
	"lumen-tools/internal/config"
	"lumen-tools/internal/issue"
	"lumen-tools/internal/registry"
	"lumen-tools/internal/transform"
)

var (
	// buildDestination is the output directory for the generated artifacts
	buildDestination string
	// buildFilename is the base name for the generated bundle files
	buildFilename string
	// buildVersion is the package version to build from
	buildVersion string
	// buildModules are the requested component modules
	buildModules []string
	// buildCache is the download cache directory
	buildCache string
	// buildRegistry is the package registry base URL
	buildRegistry string

	// themePrimary, themeAccent and themeWarn are the static theme palettes
	themePrimary string
	themeAccent  string
	themeWarn    string
	// themeDark selects the dark variant of the static theme
	themeDark bool
)

// buildCmd assembles a custom bundle from the component library.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build JS and CSS bundles from the component library",
	Long: `Build production bundles for a set of Lumen UI modules.

The requested modules are expanded to their full dependency closure and
ordered so every module follows its dependencies. The matching package
version is downloaded (and cached) from the registry, or resolved from a
local node_modules install with --version local.

Outputs written to the destination directory:
  - a concatenated JS bundle, its minified form, and a source map
  - a CSS bundle, with and without the layout utility styles
  - a precompiled theme stylesheet when theme palettes are given
  - the package LICENSE file

Examples:
  lumen-tools build --destination ./dist
  lumen-tools build --destination ./dist --version 1.2.4 --module tooltip
  lumen-tools build --destination ./dist --version local --filename app-ui
  lumen-tools build --destination ./dist --theme-primary indigo --theme-accent pink --theme-warn red`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildDestination, "destination", "d", "", "output directory for the generated artifacts (required unless configured)")
	buildCmd.Flags().StringVarP(&buildFilename, "filename", "f", "", "base name for the generated files (default \""+config.DefaultFilename+"\")")
	buildCmd.Flags().StringVar(&buildVersion, "version", "", "package version to build, or \"local\" for a node_modules install")
	buildCmd.Flags().StringArrayVarP(&buildModules, "module", "m", nil, "component module to include (repeatable; default all modules)")
	buildCmd.Flags().StringVar(&buildCache, "cache", "", "download cache directory (default \""+config.DefaultCacheDir+"\")")
	buildCmd.Flags().StringVar(&buildRegistry, "registry", "", "package registry base URL")

	buildCmd.Flags().StringVar(&themePrimary, "theme-primary", "", "primary palette name for the static theme")
	buildCmd.Flags().StringVar(&themeAccent, "theme-accent", "", "accent palette name for the static theme")
	buildCmd.Flags().StringVar(&themeWarn, "theme-warn", "", "warn palette name for the static theme")
	buildCmd.Flags().BoolVar(&themeDark, "theme-dark", false, "use the dark variant of the static theme")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	opts, err := buildOptions()
	if err != nil {
		return renderBuildError(cmd, err)
	}
	opts = config.ApplyDefaults(opts)

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	compiler, err := transform.NewDartSassCompiler()
	if err != nil {
		return renderBuildError(cmd, issue.Wrap(err, "start the sass compiler").
			WithSuggestions("Install the dart-sass binary and make sure 'sass' is on your PATH"))
	}
	defer compiler.Close()

	orchestrator := builder.New(
		registry.New(opts.Registry, logger),
		compiler,
		transform.EsbuildMinifier{},
		logger,
	)

	result, err := orchestrator.Build(cmd.Context(), opts)
	if err != nil {
		return renderBuildError(cmd, err)
	}

	fmt.Println(SuccessStyle.Render("✓ Build complete"))
	fmt.Printf("  Version: %s\n", ValueStyle.Render(result.Version.String()))
	fmt.Printf("  Modules: %s\n", ValueStyle.Render(strings.Join(result.Modules, ", ")))
	for _, artifact := range result.Artifacts {
		fmt.Printf("  %s\n", ValueStyle.Render(filepath.Join(opts.Destination, artifact.Name)))
	}
	return nil
}

// buildOptions loads the config file (if any) and overlays the build flags.
// A set flag always wins over the file value.
func buildOptions() (config.Options, error) {
	opts, err := config.Load(cfgFile)
	if err != nil {
		return config.Options{}, err
	}

	if buildDestination != "" {
		opts.Destination = buildDestination
	}
	if buildFilename != "" {
		opts.Filename = buildFilename
	}
	if buildVersion != "" {
		opts.Version = buildVersion
	}
	if len(buildModules) > 0 {
		opts.Modules = buildModules
	}
	if buildCache != "" {
		opts.Cache = buildCache
	}
	if buildRegistry != "" {
		opts.Registry = buildRegistry
	}

	if themePrimary != "" || themeAccent != "" || themeWarn != "" {
		if opts.Theme == nil {
			opts.Theme = &config.Theme{}
		}
		if themePrimary != "" {
			opts.Theme.Primary = themePrimary
		}
		if themeAccent != "" {
			opts.Theme.Accent = themeAccent
		}
		if themeWarn != "" {
			opts.Theme.Warn = themeWarn
		}
		opts.Theme.Dark = themeDark
	}

	return opts, nil
}

// renderBuildError prints a styled error to stderr and returns the original
// error so the process still exits non-zero.
func renderBuildError(cmd *cobra.Command, err error) error {
	cmd.SilenceErrors = true
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	return err
}
