package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func compileFlat(t *testing.T, files []string, reporter Reporter) *Manifest {
	t.Helper()
	m, err := Compile(files, ExtractOptions{IndexNames: flatIndexNames, Reporter: reporter})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return m
}

func TestBuildManifest_Hierarchy(t *testing.T) {
	tests := []struct {
		file string
		want Route
	}{
		{"routes/_auth.tsx", Route{ID: "_auth", ParentID: "root"}},
		{"routes/_auth.forgot-password.tsx", Route{ID: "_auth.forgot-password", ParentID: "_auth", Path: "forgot-password"}},
		{"routes/_auth.login.tsx", Route{ID: "_auth.login", ParentID: "_auth", Path: "login"}},
		{"routes/_auth.reset-password.tsx", Route{ID: "_auth.reset-password", ParentID: "_auth", Path: "reset-password"}},
		{"routes/_auth.signup.tsx", Route{ID: "_auth.signup", ParentID: "_auth", Path: "signup"}},
		{"routes/_landing/index.tsx", Route{ID: "_landing", ParentID: "root"}},
		{"routes/_landing._index/index.tsx", Route{ID: "_landing._index", ParentID: "_landing", Index: true}},
		{"routes/_landing.index.tsx", Route{ID: "_landing.index", ParentID: "_landing", Path: "index"}},
		{"routes/_about.tsx", Route{ID: "_about", ParentID: "root"}},
		{"routes/_about.faq.tsx", Route{ID: "_about.faq", ParentID: "_about", Path: "faq"}},
		{"routes/_about.$splat.tsx", Route{ID: "_about.$splat", ParentID: "_about", Path: ":splat"}},
		{"routes/app.tsx", Route{ID: "app", ParentID: "root", Path: "app"}},
		{"routes/app.calendar.$day.tsx", Route{ID: "app.calendar.$day", ParentID: "app", Path: "calendar/:day"}},
		{"routes/app.calendar._index.tsx", Route{ID: "app.calendar._index", ParentID: "app", Path: "calendar", Index: true}},
		{"routes/app.projects.tsx", Route{ID: "app.projects", ParentID: "app", Path: "projects"}},
		{"routes/app.projects.$id.tsx", Route{ID: "app.projects.$id", ParentID: "app.projects", Path: ":id"}},
		{"routes/folder/route.tsx", Route{ID: "folder", ParentID: "root", Path: "folder"}},
		{"routes/[route].tsx", Route{ID: "[route]", ParentID: "root", Path: "route"}},

		// opt out of parent layout
		{"routes/app_.projects.$id.roadmap[.pdf].tsx", Route{ID: "app_.projects.$id.roadmap[.pdf]", ParentID: "root", Path: "app/projects/:id/roadmap.pdf"}},
		{"routes/app_.projects.$id.roadmap.tsx", Route{ID: "app_.projects.$id.roadmap", ParentID: "root", Path: "app/projects/:id/roadmap"}},
		{"routes/app.skip.tsx", Route{ID: "app.skip", ParentID: "app", Path: "skip"}},
		{"routes/app.skip_.layout.tsx", Route{ID: "app.skip_.layout", ParentID: "app", Path: "skip/layout"}},
		{"routes/app_.skipall_._index.tsx", Route{ID: "app_.skipall_._index", ParentID: "root", Path: "app/skipall", Index: true}},

		// escaping
		{"routes/_about.[$splat].tsx", Route{ID: "_about.[$splat]", ParentID: "_about", Path: "$splat"}},
		{"routes/_about.[[].tsx", Route{ID: "_about.[[]", ParentID: "_about", Path: "["}},
		{"routes/_about.[]].tsx", Route{ID: "_about.[]]", ParentID: "_about", Path: "]"}},
		{"routes/_about.[.].tsx", Route{ID: "_about.[.]", ParentID: "_about", Path: "."}},

		// optional segments
		{"routes/(nested)._layout.($slug).tsx", Route{ID: "(nested)._layout.($slug)", ParentID: "root", Path: "nested?/:slug?"}},
		{"routes/(routes).$.tsx", Route{ID: "(routes).$", ParentID: "root", Path: "routes?/*"}},
		{"routes/(routes).(sub).$.tsx", Route{ID: "(routes).(sub).$", ParentID: "root", Path: "routes?/sub?/*"}},
		{"routes/(routes).($slug).tsx", Route{ID: "(routes).($slug)", ParentID: "root", Path: "routes?/:slug?"}},
		{"routes/(routes).sub.($slug).tsx", Route{ID: "(routes).sub.($slug)", ParentID: "root", Path: "routes?/sub/:slug?"}},
		{"routes/(nested).$.tsx", Route{ID: "(nested).$", ParentID: "root", Path: "nested?/*"}},
		{"routes/(flat).$.tsx", Route{ID: "(flat).$", ParentID: "root", Path: "flat?/*"}},
		{"routes/(flat).($slug).tsx", Route{ID: "(flat).($slug)", ParentID: "root", Path: "flat?/:slug?"}},
		{"routes/flat.(sub).tsx", Route{ID: "flat.(sub)", ParentID: "root", Path: "flat/sub?"}},
		{"routes/_layout.tsx", Route{ID: "_layout", ParentID: "root"}},
		{"routes/_layout.(test).tsx", Route{ID: "_layout.(test)", ParentID: "_layout", Path: "test?"}},
		{"routes/_layout.($slug).tsx", Route{ID: "_layout.($slug)", ParentID: "_layout", Path: ":slug?"}},

		// optional + escaped
		{"routes/([_index]).tsx", Route{ID: "([_index])", ParentID: "root", Path: "_index?"}},
		{"routes/(sub).([[]).tsx", Route{ID: "(sub).([[])", ParentID: "root", Path: "sub?/[?"}},
		{"routes/(sub).(]).tsx", Route{ID: "(sub).(])", ParentID: "root", Path: "sub?/]?"}},
		{"routes/(sub).([[]]).tsx", Route{ID: "(sub).([[]])", ParentID: "root", Path: "sub?/[]?"}},
		{"routes/(beef]).tsx", Route{ID: "(beef])", ParentID: "root", Path: "beef]?"}},
		{"routes/(test).(inde[x]).tsx", Route{ID: "(test).(inde[x])", ParentID: "root", Path: "test?/index?"}},
		{"routes/($[$dollabills]).([.]lol).(what).([$]).($up).tsx", Route{ID: "($[$dollabills]).([.]lol).(what).([$]).($up)", ParentID: "root", Path: ":$dollabills?/.lol?/what?/$?/:up?"}},
		{"routes/(posts).($slug).([image.jpg]).tsx", Route{ID: "(posts).($slug).([image.jpg])", ParentID: "root", Path: "posts?/:slug?/image.jpg?"}},
		{"routes/(sub).([sitemap.xml]).tsx", Route{ID: "(sub).([sitemap.xml])", ParentID: "root", Path: "sub?/sitemap.xml?"}},
		{"routes/(sub).[(sitemap.xml)].tsx", Route{ID: "(sub).[(sitemap.xml)]", ParentID: "root", Path: "sub?/(sitemap.xml)"}},
		{"routes/($slug[.]json).tsx", Route{ID: "($slug[.]json)", ParentID: "root", Path: ":slug.json?"}},

		{"routes/[]otherstuff].tsx", Route{ID: "[]otherstuff]", ParentID: "root", Path: "otherstuff]"}},
		{"routes/brand/index.tsx", Route{ID: "brand", ParentID: "root", Path: "brand"}},
		{"routes/brand._index.tsx", Route{ID: "brand._index", ParentID: "brand", Index: true}},
		{"routes/$.tsx", Route{ID: "$", ParentID: "root", Path: "*"}},

		// folder wrapping
		{"routes/blog.tsx", Route{ID: "blog", ParentID: "root", Path: "blog"}},
		{"routes/blog+/new.tsx", Route{ID: "blog.new", ParentID: "blog", Path: "new"}},
		{"routes/blog+/$post.tsx", Route{ID: "blog.$post", ParentID: "blog", Path: ":post"}},
		{"routes/blog+/$post[.png].tsx", Route{ID: "blog.$post[.png]", ParentID: "blog", Path: ":post.png"}},
		{"routes/blog+/organization/$post[.jpg].tsx", Route{ID: "blog.$post[.jpg]", ParentID: "blog", Path: ":post.jpg"}},
	}

	files := make([]string, 0, len(tests))
	for _, tt := range tests {
		files = append(files, tt.file)
	}

	rec := &Recorder{}
	manifest := compileFlat(t, files, rec)

	if manifest.Len() != len(tests) {
		t.Fatalf("manifest has %d routes, want %d", manifest.Len(), len(tests))
	}
	if rec.Len() != 0 {
		t.Errorf("unexpected collisions: %+v", rec.Collisions())
	}

	byFile := make(map[string]Route, manifest.Len())
	for _, r := range manifest.Routes() {
		byFile[r.File] = r
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, ok := byFile[tt.file]
			if !ok {
				t.Fatalf("no route for %s", tt.file)
			}
			want := tt.want
			want.File = tt.file
			if got != want {
				t.Errorf("route = %+v\nwant    %+v", got, want)
			}
		})
	}
}

func TestBuildManifest_NoCollision(t *testing.T) {
	files := []string{
		"routes/_user.$username.tsx",
		"routes/sneakers.$sneakerId.tsx",
	}
	rec := &Recorder{}
	manifest := compileFlat(t, files, rec)

	if manifest.Len() != len(files) {
		t.Errorf("manifest has %d routes, want %d", manifest.Len(), len(files))
	}
	if rec.Len() != 0 {
		t.Errorf("unexpected collisions: %+v", rec.Collisions())
	}
}

func TestRouteRoutable(t *testing.T) {
	manifest := compileFlat(t, []string{
		"routes/_index.tsx",
		"routes/app.tsx",
		"routes/app.projects.tsx",
		"routes/_auth.tsx",
		"routes/_auth.login.tsx",
	}, &Recorder{})

	tests := []struct {
		id   string
		want bool
	}{
		{"_index", true},
		{"app", true},
		{"app.projects", true},
		{"_auth", false},
		{"_auth.login", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			r, ok := manifest.Get(tt.id)
			if !ok {
				t.Fatalf("route %q missing from %v", tt.id, manifest.IDs())
			}
			if got := r.Routable(); got != tt.want {
				t.Errorf("Routable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildManifest_PathlessLayoutsDoNotCollide(t *testing.T) {
	files := []string{"routes/_auth.tsx", "routes/_marketing.tsx", "routes/_app.tsx"}
	rec := &Recorder{}
	manifest := compileFlat(t, files, rec)

	if manifest.Len() != 3 || rec.Len() != 0 {
		t.Errorf("Len() = %d, collisions = %d; want 3 routes and no collisions", manifest.Len(), rec.Len())
	}
}

func TestBuildManifest_IndexCollision(t *testing.T) {
	files := []string{
		"routes/_dashboard._index.tsx",
		"routes/_landing._index.tsx",
		"routes/_index.tsx",
	}
	var buf bytes.Buffer
	manifest := compileFlat(t, files, NewWriterReporter(&buf))

	if manifest.Len() != 1 {
		t.Fatalf("manifest has %d routes, want 1", manifest.Len())
	}
	if _, ok := manifest.Get("_dashboard._index"); !ok {
		t.Errorf("first registered route should win, got %v", manifest.IDs())
	}

	want := RoutePathConflictMessage("/", files) + "\n"
	if buf.String() != want {
		t.Errorf("reported:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestBuildManifest_IDCollision(t *testing.T) {
	files := []string{"routes/dashboard.tsx", "routes/dashboard/route.tsx"}
	rec := &Recorder{}
	manifest := compileFlat(t, files, rec)

	if ids := manifest.IDs(); !slices.Equal(ids, []string{"dashboard"}) {
		t.Fatalf("IDs() = %v, want [dashboard]", ids)
	}
	collisions := rec.Collisions()
	if len(collisions) != 1 {
		t.Fatalf("got %d collisions, want 1", len(collisions))
	}
	if got, want := collisions[0].Message(), RouteIDConflictMessage("dashboard", files); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestBuildManifest_PathCollision(t *testing.T) {
	files := []string{
		"routes/products.$pid.tsx",
		"routes/products_.$pid.tsx",
		"routes/products.tsx",
	}
	rec := &Recorder{}
	manifest := compileFlat(t, files, rec)

	// Longer ids register first, so the opted-out route wins.
	if _, ok := manifest.Get("products_.$pid"); !ok {
		t.Error("first registered route should be kept")
	}
	if _, ok := manifest.Get("products.$pid"); ok {
		t.Error("later colliding route should be removed")
	}

	collisions := rec.Collisions()
	if len(collisions) != 1 {
		t.Fatalf("got %d collisions, want 1", len(collisions))
	}
	c := collisions[0]
	if c.Kind != PathCollision || c.Key != "products/:pid" {
		t.Errorf("collision = %+v", c)
	}
	if want := []string{files[1], files[0]}; !slices.Equal(c.Files, want) {
		t.Errorf("collision files = %v, want %v", c.Files, want)
	}
	if !strings.HasPrefix(c.Message(), `⚠️ Route Path Collision: "/products/:pid"`) {
		t.Errorf("Message() = %q", c.Message())
	}
}

func TestBuildManifest_IndexAndLayoutShareAPath(t *testing.T) {
	files := []string{"routes/app.tsx", "routes/app._index.tsx"}
	rec := &Recorder{}
	manifest := compileFlat(t, files, rec)

	if manifest.Len() != 2 || rec.Len() != 0 {
		t.Errorf("an index route and its parent must not collide: %v %+v", manifest.IDs(), rec.Collisions())
	}
}

func TestBuildManifest_TrailingUnderscoreOptOut(t *testing.T) {
	files := []string{
		"routes/app.tsx",
		"routes/app.projects.tsx",
		"routes/app_.projects.$id.roadmap.tsx",
	}
	manifest := compileFlat(t, files, &Recorder{})

	r, ok := manifest.Get("app_.projects.$id.roadmap")
	if !ok {
		t.Fatal("missing route")
	}
	if r.ParentID != RootID {
		t.Errorf("ParentID = %q, want %q", r.ParentID, RootID)
	}
	if r.Path != "app/projects/:id/roadmap" {
		t.Errorf("Path = %q", r.Path)
	}
}

func TestBuildManifest_BoundaryAncestry(t *testing.T) {
	files := []string{"routes/sneakers.tsx", "routes/sneakersRoom.tsx", "routes/sneakers.$id.tsx"}
	manifest := compileFlat(t, files, &Recorder{})

	room, _ := manifest.Get("sneakersRoom")
	if room.ParentID != RootID {
		t.Errorf("sneakersRoom parent = %q, want root", room.ParentID)
	}
	child, _ := manifest.Get("sneakers.$id")
	if child.ParentID != "sneakers" || child.Path != ":id" {
		t.Errorf("sneakers.$id = %+v", child)
	}
}

func TestBuildManifest_SkipsMissingAncestors(t *testing.T) {
	files := []string{"routes/app.tsx", "routes/app.a.b.c.tsx", "routes/app.a.tsx", "routes/app.x.y.tsx"}
	manifest := compileFlat(t, files, &Recorder{})

	tests := map[string]struct{ parent, path string }{
		"app.a.b.c": {"app.a", "b/c"},
		"app.x.y":   {"app", "x/y"},
		"app.a":     {"app", "a"},
	}
	for id, want := range tests {
		r, _ := manifest.Get(id)
		if r.ParentID != want.parent || r.Path != want.path {
			t.Errorf("%s = {parent %q path %q}, want {%q %q}", id, r.ParentID, r.Path, want.parent, want.path)
		}
	}
}

func TestBuildManifest_UniqueIDs(t *testing.T) {
	files := []string{
		"routes/a.tsx", "routes/a/route.tsx", "routes/a.b.tsx", "routes/a+/b.tsx",
		"routes/c.tsx", "routes/c/index.tsx",
	}
	manifest := compileFlat(t, files, &Recorder{})

	seen := make(map[string]bool)
	for _, r := range manifest.Routes() {
		if seen[r.ID] {
			t.Errorf("duplicate id %q", r.ID)
		}
		seen[r.ID] = true
	}
	if manifest.Len() != 3 {
		t.Errorf("Len() = %d, want 3", manifest.Len())
	}
}

func TestBuildManifest_InvalidSegment(t *testing.T) {
	_, err := BuildManifest([]RouteID{{ID: "files.*", File: "routes/files.*.tsx"}}, WithReporter(&Recorder{}))
	if !errors.Is(err, ErrInvalidSegment) {
		t.Errorf("error = %v, want ErrInvalidSegment", err)
	}
}

func TestBuildManifest_EmptyID(t *testing.T) {
	_, err := BuildManifest([]RouteID{{ID: "", File: "routes/.tsx"}}, WithReporter(&Recorder{}))
	if !errors.Is(err, ErrEmptyValue) {
		t.Errorf("error = %v, want ErrEmptyValue", err)
	}
}

func TestManifest_FullPathAndChildren(t *testing.T) {
	files := []string{
		"routes/app.tsx",
		"routes/app.projects.tsx",
		"routes/app.projects.$id.tsx",
		"routes/_auth.tsx",
		"routes/_auth.login.tsx",
	}
	manifest := compileFlat(t, files, &Recorder{})

	if got := manifest.FullPath("app.projects.$id"); got != "/app/projects/:id" {
		t.Errorf("FullPath() = %q", got)
	}
	if got := manifest.FullPath("_auth.login"); got != "/login" {
		t.Errorf("FullPath() = %q", got)
	}

	var top []string
	for _, r := range manifest.Children(RootID) {
		top = append(top, r.ID)
	}
	slices.Sort(top)
	if !slices.Equal(top, []string{"_auth", "app"}) {
		t.Errorf("Children(root) = %v", top)
	}
}

func TestManifest_JSON(t *testing.T) {
	files := []string{"routes/app.tsx", "routes/app.projects.tsx", "routes/_auth.tsx"}
	manifest := compileFlat(t, files, &Recorder{})

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"app.projects":{"file":"routes/app.projects.tsx","id":"app.projects","index":false,"path":"projects","parentId":"app"},` +
		`"_auth":{"file":"routes/_auth.tsx","id":"_auth","index":false,"parentId":"root"},` +
		`"app":{"file":"routes/app.tsx","id":"app","index":false,"path":"app","parentId":"root"}}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}

	var decoded Manifest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !slices.Equal(decoded.IDs(), manifest.IDs()) {
		t.Errorf("decoded order = %v, want %v", decoded.IDs(), manifest.IDs())
	}
}

func TestManifest_YAMLKeepsOrder(t *testing.T) {
	files := []string{"routes/app.tsx", "routes/app.projects.tsx"}
	manifest := compileFlat(t, files, &Recorder{})

	data, err := yaml.Marshal(manifest)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	out := string(data)
	if strings.Index(out, "app.projects:") > strings.Index(out, "\napp:") {
		t.Errorf("yaml output not in manifest order:\n%s", out)
	}
	if !strings.Contains(out, "parentId: app") {
		t.Errorf("yaml output missing parentId:\n%s", out)
	}
}
