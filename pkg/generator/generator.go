// Package generator renders a route manifest to disk in the supported
// output formats and scaffolds new route modules.
package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
	"gopkg.in/yaml.v3"
)

// Format is a manifest output format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatGo      Format = "go"
	FormatOpenAPI Format = "openapi"
)

// Formats returns every supported output format.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatGo, FormatOpenAPI}
}

// ParseFormat converts a user-supplied name into a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "go", "golang":
		return FormatGo, nil
	case "openapi", "oas":
		return FormatOpenAPI, nil
	}
	return "", fmt.Errorf("unsupported format: %s (use json, yaml, go or openapi)", name)
}

// Config holds configuration for manifest generation.
type Config struct {
	Format  Format // Output format (default: json)
	Package string // Package name for Go output (default: routes)
	Source  string // Scanned directory, recorded in generated headers
	OpenAPI OpenAPIConfig
}

// Generator renders manifests.
type Generator struct {
	config Config
}

// New creates a new Generator with the given config.
func New(cfg Config) *Generator {
	if cfg.Format == "" {
		cfg.Format = FormatJSON
	}
	if cfg.Package == "" {
		cfg.Package = "routes"
	}
	return &Generator{config: cfg}
}

// Config returns the generator configuration with defaults applied.
func (g *Generator) Config() Config {
	return g.config
}

// Render encodes m in the configured format.
func (g *Generator) Render(m *routes.Manifest) ([]byte, error) {
	switch g.config.Format {
	case FormatJSON:
		return renderJSON(m)
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatGo:
		return renderGo(m, g.config.Package, g.config.Source)
	case FormatOpenAPI:
		doc, err := BuildOpenAPI(m, g.config.OpenAPI)
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(doc, "", "  ")
	}
	return nil, fmt.Errorf("unsupported format: %s", g.config.Format)
}

// Write renders m and writes it to path. The file is written to a
// temporary sibling first and renamed into place so watchers never see a
// partial manifest.
func (g *Generator) Write(m *routes.Manifest, path string) error {
	data, err := g.Render(m)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func renderJSON(m *routes.Manifest) ([]byte, error) {
	raw, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
