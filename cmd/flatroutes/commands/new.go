package commands

import (
	"fmt"

	"github.com/abdul-hamid-achik/flatroutes/pkg/generator"
	"github.com/abdul-hamid-achik/flatroutes/pkg/scanner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var newExtension string

var newCmd = &cobra.Command{
	Use:   "new <route-id>",
	Short: "Create a route module",
	Long: `Create an empty route module whose file name produces the given route id
under the configured convention.

Examples:
  flatroutes new about                  # app/routes/about.tsx
  flatroutes new 'blog.$slug'           # app/routes/blog.$slug.tsx
  flatroutes new docs.index --ext mdx   # app/routes/docs.index.mdx`,
	Args: cobra.ExactArgs(1),
	Run:  runNew,
}

func init() {
	newCmd.Flags().StringVar(&newExtension, "ext", "tsx", "File extension (js|jsx|ts|tsx|md|mdx)")
}

func runNew(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	cfg, err := loadConfig()
	if err != nil {
		fail("Failed to load config", err)
	}

	result, err := generator.GenerateRoute(generator.RouteConfig{
		ID:         args[0],
		AppDir:     cfg.AppDir,
		Convention: scanner.Convention(cfg.Convention),
		Extension:  newExtension,
	})
	if err != nil {
		fail("Failed to create route", err)
	}

	if jsonOutput {
		printSuccess(GenerateOutput{
			Command: "new",
			Files:   result.Files,
			Pattern: result.Pattern,
		})
		return
	}

	fmt.Printf("  %s Created %s\n", green("✓"), result.Files[0])
	fmt.Printf("  Path: %s\n", cyan(result.Pattern))
}
