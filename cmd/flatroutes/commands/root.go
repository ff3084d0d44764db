// Package commands provides the CLI commands for flatroutes.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abdul-hamid-achik/flatroutes/internal/version"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	verbose        bool
	configFile     string
	flagAppDir     string
	flagConvention string
)

var rootCmd = &cobra.Command{
	Use:   "flatroutes",
	Short: "flatroutes - compile route files into a route manifest",
	Long: `flatroutes turns a directory of route modules into a route manifest:
every file gets a route id, a URL path template and a parent route.

Quick Start:
  flatroutes init              Create flatroutes.yaml
  flatroutes routes            Print the route tree
  flatroutes generate          Write the manifest (json, yaml, go, openapi)
  flatroutes watch             Regenerate the manifest on file changes
  flatroutes serve             Browse the manifest in a web page
  flatroutes new blog.$slug    Create a route module
  flatroutes match /blog/hi    Show which route handles a URL

Documentation: https://github.com/abdul-hamid-achik/flatroutes`,
	Version: version.GetVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if colorDisabled(os.Getenv("NO_COLOR"), os.Stdout.Fd()) {
			color.NoColor = true
		}
		slog.SetDefault(newLogger(os.Stderr, verbose))
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
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for automation and LLM agents)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log scanning details to stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./flatroutes.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagAppDir, "app-dir", "d", "", "App directory to scan (default: app)")
	rootCmd.PersistentFlags().StringVar(&flagConvention, "convention", "", "File naming convention (flat|extensions)")

	// Commands
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(openapiCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(mcpCmd)
}

// colorDisabled reports whether colored output should be turned off.
func colorDisabled(noColor string, fd uintptr) bool {
	if noColor != "" {
		return true
	}
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// newLogger returns the diagnostic logger. Verbose output goes to debug
// level.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
