package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the manifest when route files change",
	Long: `Generate the manifest, then watch the app directory and regenerate it
whenever files are created, changed, renamed or removed.

Examples:
  flatroutes watch
  flatroutes watch --format go -o internal/routes/manifest.go`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "Output format (json|yaml|go|openapi, default from config)")
	watchCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default from config)")
	watchCmd.Flags().StringVar(&generatePackage, "package", "", "Package name for Go output")
}

func runWatch(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	cfg, err := loadConfig()
	if err != nil {
		fail("Failed to load config", err)
	}
	applyGenerateFlags(cfg)

	if _, err := os.Stat(cfg.AppDir); err != nil {
		fail("App directory not found", err)
	}

	fmt.Printf("\n  %s Watch Mode\n\n", cyan("flatroutes"))

	regenerate := func() {
		timestamp := time.Now().Format("15:04:05")
		out, err := generateManifest(cfg, newScanner(cfg))
		if err != nil {
			fmt.Printf("  [%s] %s %v\n", timestamp, red("✗"), err)
			return
		}
		fmt.Printf("  [%s] %s %s (%d routes)\n", timestamp, green("✓"), out.Files[0], out.Routes)
	}

	regenerate()
	fmt.Printf("  %s Watching %s for changes...\n\n", yellow("→"), cfg.AppDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watchTree(ctx, cfg.AppDir, debounceDuration, regenerate); err != nil {
		fail("Failed to watch app directory", err)
	}
	fmt.Printf("\n  %s Stopped\n", yellow("!"))
}
