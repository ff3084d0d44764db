package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"text/template"

	"github.com/abdul-hamid-achik/flatroutes/internal/version"
	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
)

type goSourceData struct {
	Package       string
	Source        string
	SchemaVersion int
	Routes        []routes.Route
}

var goSourceTemplate = template.Must(template.New("manifest").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(`// Code generated by flatroutes. DO NOT EDIT.
{{- if .Source}}
// Source: {{.Source}}
{{- end}}

package {{.Package}}

// SchemaVersion is the manifest schema this file was generated with.
const SchemaVersion = {{.SchemaVersion}}

// Route is one entry of the route manifest.
type Route struct {
	ID       string
	ParentID string
	File     string
	Path     string
	Index    bool
}

// Manifest lists every route in manifest order.
var Manifest = []Route{
{{- range .Routes}}
	{ID: {{quote .ID}}, ParentID: {{quote .ParentID}}, File: {{quote .File}}, Path: {{quote .Path}}, Index: {{.Index}}},
{{- end}}
}
`))

// renderGo renders the manifest as a gofmt'ed Go source file.
func renderGo(m *routes.Manifest, pkg, source string) ([]byte, error) {
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("invalid package name %q", pkg)
	}

	var buf bytes.Buffer
	err := goSourceTemplate.Execute(&buf, goSourceData{
		Package:       pkg,
		Source:        source,
		SchemaVersion: version.GetManifestSchemaVersion(),
		Routes:        m.Routes(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated source: %w", err)
	}
	return src, nil
}
