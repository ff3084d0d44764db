package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
	"github.com/abdul-hamid-achik/flatroutes/pkg/scanner"
)

// RouteConfig holds configuration for route module generation.
type RouteConfig struct {
	ID         string             // Route id (e.g., "blog.$slug")
	AppDir     string             // App directory (default: "app")
	Convention scanner.Convention // Naming convention (default: flat)
	Extension  string             // File extension without dot (default: "tsx")
}

// Result holds the result of a generation operation.
type Result struct {
	Files   []string `json:"files"`
	Pattern string   `json:"pattern,omitempty"`
}

type routeTemplateData struct {
	ID        string
	Component string
	Title     string
	Pattern   string
}

var componentTemplate = `export default function {{.Component}}() {
  return <h1>{{.Title}}</h1>;
}
`

var scriptTemplate = `// {{.ID}} handles {{.Pattern}}
export default function {{.Component}}() {
  return null;
}
`

var markdownTemplate = `# {{.Title}}
`

// routeTemplates maps a file extension to its module template.
var routeTemplates = map[string]string{
	"tsx": componentTemplate,
	"jsx": componentTemplate,
	"ts":  scriptTemplate,
	"js":  scriptTemplate,
	"md":  markdownTemplate,
	"mdx": markdownTemplate,
}

// GenerateRoute creates an empty route module for cfg.ID following the
// naming convention, so the id round-trips through the scanner.
func GenerateRoute(cfg RouteConfig) (*Result, error) {
	if cfg.AppDir == "" {
		cfg.AppDir = "app"
	}
	if cfg.Convention == "" {
		cfg.Convention = scanner.ConventionFlat
	}
	if cfg.Extension == "" {
		cfg.Extension = "tsx"
	}
	cfg.Extension = strings.TrimPrefix(cfg.Extension, ".")

	if cfg.ID == "" {
		return nil, routes.ErrEmptyValue
	}
	if strings.ContainsAny(cfg.ID, `/\`) {
		return nil, fmt.Errorf("route id %q must use dots, not slashes", cfg.ID)
	}

	tmpl, ok := routeTemplates[cfg.Extension]
	if !ok {
		return nil, fmt.Errorf("unsupported extension: %s", cfg.Extension)
	}

	pattern, err := routes.RoutePath(cfg.ID)
	if err != nil {
		return nil, err
	}

	var filePath string
	switch cfg.Convention {
	case scanner.ConventionFlat:
		filePath = filepath.Join(cfg.AppDir, "routes", cfg.ID+"."+cfg.Extension)
	case scanner.ConventionExtensions:
		filePath = filepath.Join(cfg.AppDir, cfg.ID+scanner.RouteSuffix+"."+cfg.Extension)
	default:
		return nil, fmt.Errorf("unknown convention: %s", cfg.Convention)
	}

	// Create directory
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Check if file exists
	if _, err := os.Stat(filePath); err == nil {
		return nil, fmt.Errorf("file already exists: %s", filePath)
	}

	data := routeTemplateData{
		ID:        cfg.ID,
		Component: componentName(cfg.ID),
		Title:     toTitle(cfg.ID),
		Pattern:   "/" + pattern,
	}

	if err := executeTemplate(filePath, tmpl, data); err != nil {
		return nil, err
	}

	return &Result{
		Files:   []string{filePath},
		Pattern: "/" + pattern,
	}, nil
}

func executeTemplate(filePath, tmplContent string, data any) error {
	tmpl, err := template.New(filepath.Base(filePath)).Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}

// componentName turns a route id into a PascalCase identifier.
// Example: "blog.$slug" -> "BlogSlugRoute"
func componentName(id string) string {
	var b strings.Builder
	for _, word := range words(id) {
		b.WriteString(strings.ToUpper(word[:1]) + word[1:])
	}
	name := b.String()
	if name == "" {
		return "IndexRoute"
	}
	if unicode.IsDigit(rune(name[0])) {
		return "Route" + name
	}
	return name + "Route"
}

// toTitle converts a route id to a heading.
// Example: "blog.$slug" -> "Blog Slug"
func toTitle(id string) string {
	ws := words(id)
	for i, w := range ws {
		ws[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	if len(ws) == 0 {
		return "Index"
	}
	return strings.Join(ws, " ")
}

// words splits an id into its alphanumeric runs, dropping "index".
func words(id string) []string {
	fields := strings.FieldsFunc(id, func(r rune) bool {
		return r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	out := fields[:0]
	for _, f := range fields {
		if f == "index" {
			continue
		}
		out = append(out, f)
	}
	return out
}
