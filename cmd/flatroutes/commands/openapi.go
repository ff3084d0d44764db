package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/flatroutes/pkg/generator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	openapiOutput  string
	openapiFormat  string
	openapiTitle   string
	openapiVersion string
	openapiDesc    string
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Generate an OpenAPI document for the routes",
	Long: `Generate an OpenAPI 3 document with one GET operation per routable
manifest entry. Optional segments produce one path per combination and
splats become a {splat} path parameter.

Examples:
  flatroutes openapi
  flatroutes openapi --format yaml -o openapi.yaml
  flatroutes openapi --title "Storefront" --version 2.0.0`,
	Run: runOpenAPI,
}

func init() {
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "openapi.json", "Output file path")
	openapiCmd.Flags().StringVarP(&openapiFormat, "format", "f", "json", "Output format (json|yaml)")
	openapiCmd.Flags().StringVar(&openapiTitle, "title", "", "Document title (defaults to the project directory name)")
	openapiCmd.Flags().StringVar(&openapiVersion, "version", "1.0.0", "Document version")
	openapiCmd.Flags().StringVar(&openapiDesc, "description", "", "Document description")
}

func runOpenAPI(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	if !jsonOutput {
		fmt.Printf("\n  %s OpenAPI Generator\n\n", cyan("flatroutes"))
		fmt.Printf("  → Scanning routes...\n")
	}

	_, result, err := scanProject()
	if err != nil {
		fail("Failed to scan routes", err)
	}
	if !jsonOutput {
		printCollisions(result.Collisions)
	}

	title := openapiTitle
	if title == "" {
		title = projectName()
	}

	doc, err := generator.BuildOpenAPI(result.Manifest, generator.OpenAPIConfig{
		Title:       title,
		Version:     openapiVersion,
		Description: openapiDesc,
	})
	if err != nil {
		fail("Failed to generate document", err)
	}

	var data []byte
	switch strings.ToLower(openapiFormat) {
	case "yaml", "yml":
		data, err = yaml.Marshal(doc)
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
	default:
		err = fmt.Errorf("unsupported format: %s (use json or yaml)", openapiFormat)
	}
	if err != nil {
		fail("Failed to encode document", err)
	}

	if dir := filepath.Dir(openapiOutput); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fail("Failed to create output directory", err)
		}
	}
	if err := os.WriteFile(openapiOutput, data, 0644); err != nil {
		fail("Failed to write document", err)
	}

	if jsonOutput {
		printSuccess(map[string]any{
			"file":   openapiOutput,
			"format": openapiFormat,
			"paths":  doc.Paths.Len(),
			"routes": result.Manifest.Len(),
		})
		return
	}

	fmt.Printf("  %s Document generated\n\n", green("✓"))
	fmt.Printf("  Output:  %s\n", green(openapiOutput))
	fmt.Printf("  Format:  OpenAPI %s (%s)\n", doc.OpenAPI, openapiFormat)
	fmt.Printf("  Paths:   %d\n\n", doc.Paths.Len())
}

// projectName returns the working directory's base name.
func projectName() string {
	wd, err := os.Getwd()
	if err != nil {
		return "Routes"
	}
	return filepath.Base(wd)
}
