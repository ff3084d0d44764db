package commands

import (
	"fmt"

	"github.com/abdul-hamid-achik/flatroutes/pkg/config"
	"github.com/abdul-hamid-achik/flatroutes/pkg/generator"
	"github.com/abdul-hamid-achik/flatroutes/pkg/scanner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	generateFormat  string
	generateOutput  string
	generatePackage string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the route manifest",
	Long: `Scan the app directory and write the route manifest to disk.

Formats:
  json      Ordered JSON object keyed by route id (default)
  yaml      The same mapping as YAML
  go        Go source declaring the manifest as a slice
  openapi   OpenAPI 3 document with one GET operation per route

Examples:
  flatroutes generate
  flatroutes generate --format yaml -o routes.yaml
  flatroutes generate --format go -o internal/routes/manifest.go --package routes`,
	Run: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "Output format (json|yaml|go|openapi, default from config)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default from config)")
	generateCmd.Flags().StringVar(&generatePackage, "package", "", "Package name for Go output")
}

func runGenerate(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	cfg, err := loadConfig()
	if err != nil {
		fail("Failed to load config", err)
	}
	applyGenerateFlags(cfg)

	out, err := generateManifest(cfg, newScanner(cfg))
	if err != nil {
		fail("Failed to generate manifest", err)
	}

	if jsonOutput {
		printSuccess(out)
		return
	}

	fmt.Printf("  %s Generated %s (%d routes, %s)\n", green("✓"), out.Files[0], out.Routes, out.Format)
	if len(out.Collisions) > 0 {
		fmt.Printf("  %s\n", dim(fmt.Sprintf("%d collisions, see warnings above", len(out.Collisions))))
	}
}

// applyGenerateFlags overrides config values with explicitly passed flags.
func applyGenerateFlags(cfg *config.Config) {
	if generateFormat != "" {
		cfg.Format = generateFormat
	}
	if generateOutput != "" {
		cfg.Output = generateOutput
	}
	if generatePackage != "" {
		cfg.Package = generatePackage
	}
}

// generateManifest scans with s and writes the manifest described by cfg.
// Collisions are printed to stderr unless JSON output is active.
func generateManifest(cfg *config.Config, s *scanner.Scanner) (*GenerateOutput, error) {
	genCfg, err := cfg.GeneratorConfig()
	if err != nil {
		return nil, err
	}

	result, err := s.Scan()
	if err != nil {
		return nil, err
	}
	if !jsonOutput {
		printCollisions(result.Collisions)
	}

	if err := generator.New(genCfg).Write(result.Manifest, cfg.Output); err != nil {
		return nil, err
	}

	return &GenerateOutput{
		Command:    "generate",
		Format:     string(genCfg.Format),
		Files:      []string{cfg.Output},
		Routes:     result.Manifest.Len(),
		Collisions: collisionOutputs(result.Collisions),
	}, nil
}
