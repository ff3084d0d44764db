package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RootID is the parent id of routes without an enclosing route.
const RootID = "root"

// Route is one entry of a Manifest.
type Route struct {
	File  string `json:"file" yaml:"file"`
	ID    string `json:"id" yaml:"id"`
	Index bool   `json:"index" yaml:"index"`
	// Path is relative to the parent route's path. Empty for pathless
	// layout routes and index routes that add nothing to their parent.
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	ParentID string `json:"parentId" yaml:"parentId"`
}

// Routable reports whether r can match a URL on its own. Pathless layouts
// only render through their children.
func (r Route) Routable() bool {
	return r.Index || r.Path != ""
}

// Manifest maps route ids to routes, preserving the order in which they
// were built (longest id first).
type Manifest struct {
	order  []string
	routes map[string]*Route
}

func newManifest(capacity int) *Manifest {
	return &Manifest{
		order:  make([]string, 0, capacity),
		routes: make(map[string]*Route, capacity),
	}
}

func (m *Manifest) add(r *Route) {
	if _, ok := m.routes[r.ID]; !ok {
		m.order = append(m.order, r.ID)
	}
	m.routes[r.ID] = r
}

func (m *Manifest) remove(id string) {
	if _, ok := m.routes[id]; !ok {
		return
	}
	delete(m.routes, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of routes.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Get returns the route with the given id.
func (m *Manifest) Get(id string) (Route, bool) {
	if m == nil {
		return Route{}, false
	}
	r, ok := m.routes[id]
	if !ok {
		return Route{}, false
	}
	return *r, true
}

// IDs returns route ids in manifest order.
func (m *Manifest) IDs() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Routes returns copies of all routes in manifest order.
func (m *Manifest) Routes() []Route {
	if m == nil {
		return nil
	}
	out := make([]Route, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.routes[id])
	}
	return out
}

// Children returns the routes whose parent is parentID, in manifest
// order. Use RootID for top-level routes.
func (m *Manifest) Children(parentID string) []Route {
	var out []Route
	for _, r := range m.Routes() {
		if r.ParentID == parentID {
			out = append(out, r)
		}
	}
	return out
}

// FullPath returns the absolute URL path template of a route by joining
// the paths of its ancestors.
func (m *Manifest) FullPath(id string) string {
	var parts []string
	for depth := 0; depth <= m.Len(); depth++ {
		r, ok := m.Get(id)
		if !ok {
			break
		}
		if r.Path != "" {
			parts = append(parts, r.Path)
		}
		if r.ParentID == RootID {
			break
		}
		id = r.ParentID
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}

// MarshalJSON encodes the manifest as an object keyed by id, in manifest
// order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.IDs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.routes[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by id, keeping the key order.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("manifest: expected object, got %v", tok)
	}

	*m = *newManifest(0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("manifest: expected key, got %v", tok)
		}
		var r Route
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("manifest: route %q: %w", id, err)
		}
		if r.ID == "" {
			r.ID = id
		}
		m.add(&r)
	}
	_, err = dec.Token()
	return err
}

// MarshalYAML encodes the manifest as an ordered mapping.
func (m *Manifest) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, id := range m.IDs() {
		var value yaml.Node
		if err := value.Encode(m.routes[id]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: id},
			&value,
		)
	}
	return node, nil
}

// BuildOption configures BuildManifest.
type BuildOption func(*buildConfig)

type buildConfig struct {
	reporter Reporter
}

// WithReporter sets where path collisions are reported. The default is
// standard error.
func WithReporter(r Reporter) BuildOption {
	return func(c *buildConfig) {
		c.reporter = r
	}
}

// BuildManifest assigns parents and relative paths to ids, which must be
// sorted longest first (as returned by ExtractIdentifiers). Routes whose
// URL path collides with an earlier route are reported and removed.
func BuildManifest(ids []RouteID, opts ...BuildOption) (*Manifest, error) {
	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	reporter := reporterOrStderr(cfg.reporter)

	manifest := newManifest(len(ids))
	absolute := make(map[string]string, len(ids))
	trie := NewTrie()

	// Longest ids first: by the time an id is reached, every route it
	// encloses is already in the trie waiting to be claimed.
	for _, entry := range ids {
		routePath, err := RoutePath(entry.ID)
		if err != nil {
			return nil, err
		}
		manifest.add(&Route{
			File:  entry.File,
			ID:    entry.ID,
			Index: IsIndexRoute(entry.ID),
			Path:  routePath,
		})
		absolute[entry.ID] = routePath

		for _, childID := range trie.TakeDescendants(entry.ID, descendantOf(entry.ID)) {
			manifest.routes[childID].ParentID = entry.ID
		}
		if err := trie.Insert(entry.ID); err != nil {
			return nil, fmt.Errorf("route %q from %s: %w", entry.ID, entry.File, err)
		}
	}

	claimed := make(map[string]*Route)
	conflicts := make(map[string][]*Route)
	conflictPaths := make(map[string]string)
	var conflictOrder []string

	for _, entry := range ids {
		route := manifest.routes[entry.ID]
		fullPath := absolute[entry.ID]

		if route.ParentID == "" {
			route.ParentID = RootID
		} else if parentPath := absolute[route.ParentID]; parentPath != "" && fullPath != "" &&
			strings.HasPrefix(fullPath, parentPath) {
			rel := strings.TrimPrefix(fullPath, parentPath)
			rel = strings.TrimPrefix(rel, "/")
			rel = strings.TrimSuffix(rel, "/")
			route.Path = rel
		}

		// Pathless layouts share the empty path without conflicting.
		if fullPath == "" && !route.Index {
			continue
		}
		key := fullPath
		if route.Index {
			key += "?index"
		}
		winner, ok := claimed[key]
		if !ok {
			claimed[key] = route
			continue
		}
		if _, ok := conflicts[key]; !ok {
			conflicts[key] = []*Route{winner}
			conflictPaths[key] = fullPath
			conflictOrder = append(conflictOrder, key)
		}
		conflicts[key] = append(conflicts[key], route)
	}

	for _, key := range conflictOrder {
		colliding := conflicts[key]
		files := make([]string, 0, len(colliding))
		for i, r := range colliding {
			files = append(files, r.File)
			if i > 0 {
				manifest.remove(r.ID)
			}
		}
		reporter.Report(Collision{
			Kind:  PathCollision,
			Key:   conflictPaths[key],
			Files: files,
		})
	}

	return manifest, nil
}

// Compile extracts ids from files and builds their manifest, reporting
// both kinds of collision to opts.Reporter.
func Compile(files []string, opts ExtractOptions) (*Manifest, error) {
	ids := ExtractIdentifiers(files, opts)
	return BuildManifest(ids, WithReporter(opts.Reporter))
}
