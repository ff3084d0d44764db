// Package match resolves URL paths against a route manifest using a chi
// routing tree.
package match

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/abdul-hamid-achik/flatroutes/pkg/generator"
	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
	"github.com/go-chi/chi/v5"
)

// Result describes the route a path resolved to.
type Result struct {
	// Route is the matched leaf or index route.
	Route routes.Route `json:"route"`
	// Pattern is the chi pattern that matched (chi format: /users/{id}).
	Pattern string `json:"pattern"`
	// Params holds path parameters; a splat is stored under "splat".
	Params map[string]string `json:"params"`
	// Chain lists the matched route and its ancestors, outermost first.
	Chain []routes.Route `json:"chain"`
}

// Skipped is a pattern that could not be registered with the router.
type Skipped struct {
	RouteID string `json:"routeId"`
	Pattern string `json:"pattern"`
	Reason  string `json:"reason"`
}

// Matcher matches paths against the routable entries of a manifest.
type Matcher struct {
	manifest *routes.Manifest
	router   chi.Router
	patterns []string
	skipped  []Skipped
}

type resultKey struct{}

// New builds a Matcher for m. Index routes and routes with a path are
// routable; each optional segment combination becomes its own pattern.
// An index route registers before its layout and keeps the shared URL.
func New(m *routes.Manifest) *Matcher {
	mt := &Matcher{
		manifest: m,
		router:   chi.NewRouter(),
	}

	seen := make(map[string]bool)
	for _, r := range m.Routes() {
		if !r.Routable() {
			continue
		}
		for _, p := range generator.OpenAPIPaths(m.FullPath(r.ID)) {
			pattern := chiPattern(p)
			shape := patternShape(pattern)
			if seen[shape] {
				continue
			}
			if err := mt.register(r, pattern); err != nil {
				mt.skipped = append(mt.skipped, Skipped{RouteID: r.ID, Pattern: pattern, Reason: err.Error()})
				continue
			}
			seen[shape] = true
			mt.patterns = append(mt.patterns, pattern)
		}
	}

	return mt
}

// Patterns returns the registered chi patterns in registration order.
func (mt *Matcher) Patterns() []string {
	return append([]string(nil), mt.patterns...)
}

// Skipped returns the patterns chi rejected, such as a splat that is not
// the last segment.
func (mt *Matcher) Skipped() []Skipped {
	return append([]Skipped(nil), mt.skipped...)
}

// Match resolves path to a route.
func (mt *Matcher) Match(path string) (*Result, bool) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var result *Result
	ctx := context.WithValue(context.Background(), resultKey{}, &result)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return nil, false
	}
	req.URL = &url.URL{Path: path}
	req.RequestURI = path

	mt.router.ServeHTTP(discardWriter{header: http.Header{}}, req)
	if result == nil {
		return nil, false
	}
	return result, true
}

// register adds pattern for r. chi reports malformed patterns by
// panicking, which is turned into an error here.
func (mt *Matcher) register(r routes.Route, pattern string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()

	route := r
	mt.router.Get(pattern, func(w http.ResponseWriter, req *http.Request) {
		holder, ok := req.Context().Value(resultKey{}).(**Result)
		if !ok {
			return
		}

		params := make(map[string]string)
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				if key == "*" {
					key = generator.SplatParam
				}
				params[key] = rctx.URLParams.Values[i]
			}
		}

		*holder = &Result{
			Route:   route,
			Pattern: pattern,
			Params:  params,
			Chain:   mt.chain(route),
		}
	})
	return nil
}

// chain returns r and its ancestors, outermost first.
func (mt *Matcher) chain(r routes.Route) []routes.Route {
	out := []routes.Route{r}
	for depth := 0; depth < mt.manifest.Len(); depth++ {
		if r.ParentID == routes.RootID {
			break
		}
		parent, ok := mt.manifest.Get(r.ParentID)
		if !ok {
			break
		}
		out = append(out, parent)
		r = parent
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// chiPattern converts an OpenAPI path into a chi pattern. chi stores a
// catch-all as "*", so {splat} becomes "*".
func chiPattern(openapiPath string) string {
	segments := strings.Split(openapiPath, "/")
	for i, seg := range segments {
		if seg == "{"+generator.SplatParam+"}" {
			segments[i] = "*"
		}
	}
	return strings.Join(segments, "/")
}

// patternShape drops parameter names, since chi stores /a/{x} and /a/{y}
// on the same node.
func patternShape(pattern string) string {
	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			segments[i] = "{}"
		}
	}
	return strings.Join(segments, "/")
}

type discardWriter struct {
	header http.Header
}

func (w discardWriter) Header() http.Header         { return w.header }
func (w discardWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w discardWriter) WriteHeader(int)             {}
