package generator

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
	"github.com/getkin/kin-openapi/openapi3"
)

// SplatParam names the path parameter a trailing "*" segment becomes.
const SplatParam = "splat"

// OpenAPIConfig configures OpenAPI document generation.
type OpenAPIConfig struct {
	// Title is the document title (default: "Routes").
	Title string

	// Version is the document version (default: "1.0.0").
	Version string

	// Description is the document description.
	Description string

	// OpenAPIVersion is the OpenAPI version (default: "3.0.3").
	OpenAPIVersion string
}

// BuildOpenAPI creates an OpenAPI 3 document with one GET operation per
// routable manifest entry (see routes.Route.Routable); optional segments
// produce one path per combination. Routes come longest id first, so an
// index route claims its URL before the layout it shares it with.
func BuildOpenAPI(m *routes.Manifest, cfg OpenAPIConfig) (*openapi3.T, error) {
	if cfg.Title == "" {
		cfg.Title = "Routes"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.OpenAPIVersion == "" {
		cfg.OpenAPIVersion = "3.0.3"
	}

	doc := &openapi3.T{
		OpenAPI: cfg.OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       cfg.Title,
			Version:     cfg.Version,
			Description: cfg.Description,
		},
		Paths: openapi3.NewPaths(),
	}

	for _, r := range m.Routes() {
		if !r.Routable() {
			continue
		}
		for _, p := range OpenAPIPaths(m.FullPath(r.ID)) {
			if doc.Paths.Value(p) != nil {
				continue
			}
			doc.Paths.Set(p, &openapi3.PathItem{Get: buildOperation(r, p)})
		}
	}

	return doc, nil
}

// OpenAPIPaths converts a manifest path template into OpenAPI paths.
// ":id" becomes "{id}", "*" becomes "{splat}" and every optional segment
// doubles the result: once with the segment and once without it.
//
//	/docs/:lang?/*  ->  /docs/{lang}/{splat}, /docs/{splat}
func OpenAPIPaths(pathTemplate string) []string {
	variants := [][]string{nil}
	for _, seg := range strings.Split(strings.Trim(pathTemplate, "/"), "/") {
		if seg == "" {
			continue
		}
		optional := strings.HasSuffix(seg, "?")
		converted := convertSegment(strings.TrimSuffix(seg, "?"))

		next := make([][]string, 0, len(variants)*2)
		for _, v := range variants {
			with := append(append([]string(nil), v...), converted)
			next = append(next, with)
			if optional {
				next = append(next, v)
			}
		}
		variants = next
	}

	seen := make(map[string]bool)
	var out []string
	for _, v := range variants {
		p := "/" + strings.Join(v, "/")
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func convertSegment(seg string) string {
	switch {
	case seg == "*":
		return "{" + SplatParam + "}"
	case strings.HasPrefix(seg, ":"):
		return "{" + seg[1:] + "}"
	}
	return seg
}

func buildOperation(r routes.Route, path string) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: operationID(path),
		Summary:     r.ID,
		Description: fmt.Sprintf("Route module %s", r.File),
		Parameters:  buildParameters(path),
		Responses:   openapi3.NewResponses(),
	}

	op.Responses.Set("200", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: openapi3.Ptr("Success"),
		},
	})

	if len(op.Parameters) > 0 {
		op.Responses.Set("404", &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: openapi3.Ptr("Not Found"),
			},
		})
	}

	return op
}

// operationID is derived from the path, which is unique within a document.
func operationID(path string) string {
	return "get" + path
}

// buildParameters extracts path parameters from an OpenAPI path.
// Example: /users/{id} -> [Parameter{name: "id", in: "path"}]
func buildParameters(path string) openapi3.Parameters {
	var params openapi3.Parameters

	for _, seg := range strings.Split(path, "/") {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}")

		description := fmt.Sprintf("%s parameter", name)
		if name == SplatParam {
			description = "Remaining path"
		}

		params = append(params, &openapi3.ParameterRef{Value: &openapi3.Parameter{
			Name:        name,
			In:          openapi3.ParameterInPath,
			Required:    true,
			Description: description,
			Schema: &openapi3.SchemaRef{
				Value: &openapi3.Schema{
					Type: &openapi3.Types{"string"},
				},
			},
		}})
	}

	return params
}
