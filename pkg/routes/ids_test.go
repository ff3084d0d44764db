package routes

import (
	"bytes"
	"slices"
	"testing"
)

var flatIndexNames = []string{"index", "route", "_index", "_route"}

func TestExtractIdentifiers_IDs(t *testing.T) {
	tests := []struct {
		name string
		file string
		opts ExtractOptions
		want string
	}{
		{"flat file", "routes/app.projects.tsx", ExtractOptions{}, "app.projects"},
		{"windows separators", `routes\app.projects.tsx`, ExtractOptions{}, "app.projects"},
		{"folder route", "routes/folder/route.tsx", ExtractOptions{IndexNames: flatIndexNames}, "folder"},
		{"folder index", "routes/brand/index.tsx", ExtractOptions{IndexNames: flatIndexNames}, "brand"},
		{"folder with index id", "routes/_landing._index/index.tsx", ExtractOptions{IndexNames: flatIndexNames}, "_landing._index"},
		{"site index is kept", "routes/_index.tsx", ExtractOptions{IndexNames: flatIndexNames}, "_index"},
		{"top level index name", "routes/index.tsx", ExtractOptions{IndexNames: flatIndexNames}, "index"},
		{"plus folder", "routes/blog+/new.tsx", ExtractOptions{IndexNames: flatIndexNames}, "blog.new"},
		{"plus folder with inner folder", "routes/blog+/organization/$post[.jpg].tsx", ExtractOptions{}, "blog.$post[.jpg]"},
		{"nested plus folders", "routes/docs+/guides+/intro.mdx", ExtractOptions{}, "docs.guides.intro"},
		{"plus folder index file", "routes/blog+/_index.tsx", ExtractOptions{IndexNames: flatIndexNames}, "blog._index"},
		{"plus folder route folder", "routes/blog+/posts/route.tsx", ExtractOptions{IndexNames: flatIndexNames}, "blog.posts"},
		{"route file collapsing into plus folder", "routes/a/blog+/route.tsx", ExtractOptions{IndexNames: flatIndexNames}, "blog"},
		{"index file collapsing into plus folder", "routes/a/blog+/index.tsx", ExtractOptions{IndexNames: flatIndexNames}, "blog"},
		{"route file directly in plus folder", "routes/blog+/route.tsx", ExtractOptions{IndexNames: flatIndexNames}, "blog.route"},
		{"suffix", "users/profile.route.tsx", ExtractOptions{Suffix: ".route"}, "profile"},
		{"prefix", "routes/page.about.tsx", ExtractOptions{Prefix: "page."}, "about"},
		{"escaped extension", "routes/sitemap[.xml].tsx", ExtractOptions{}, "sitemap[.xml]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Reporter = &Recorder{}
			got := ExtractIdentifiers([]string{tt.file}, tt.opts)
			if len(got) != 1 {
				t.Fatalf("ExtractIdentifiers(%q) returned %d ids", tt.file, len(got))
			}
			if got[0].ID != tt.want {
				t.Errorf("ExtractIdentifiers(%q) id = %q, want %q", tt.file, got[0].ID, tt.want)
			}
			if want := NormalizeSlashes(tt.file); got[0].File != want {
				t.Errorf("file = %q, want %q", got[0].File, want)
			}
		})
	}
}

func TestExtractIdentifiers_SortedByLength(t *testing.T) {
	files := []string{
		"routes/a.tsx",
		"routes/bb.tsx",
		"routes/cc.tsx",
		"routes/a.b.c.tsx",
		"routes/dd.tsx",
	}
	got := ExtractIdentifiers(files, ExtractOptions{Reporter: &Recorder{}})

	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	want := []string{"a.b.c", "bb", "cc", "dd", "a"}
	if !slices.Equal(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestExtractIdentifiers_Collision(t *testing.T) {
	files := []string{
		"routes/dashboard.tsx",
		"routes/dashboard/route.tsx",
		"routes/dashboard/index.tsx",
		"routes/other.tsx",
	}
	rec := &Recorder{}
	got := ExtractIdentifiers(files, ExtractOptions{IndexNames: flatIndexNames, Reporter: rec})

	if len(got) != 2 {
		t.Fatalf("got %d ids, want 2", len(got))
	}
	if got[0].ID != "dashboard" || got[0].File != "routes/dashboard.tsx" {
		t.Errorf("winner = %+v, want the first file", got[0])
	}

	collisions := rec.Collisions()
	if len(collisions) != 1 {
		t.Fatalf("got %d collisions, want 1", len(collisions))
	}
	c := collisions[0]
	if c.Kind != IDCollision || c.Key != "dashboard" {
		t.Errorf("collision = %+v", c)
	}
	if !slices.Equal(c.Files, files[:3]) {
		t.Errorf("collision files = %v, want %v", c.Files, files[:3])
	}
	if c.Winner() != files[0] || len(c.Dropped()) != 2 {
		t.Errorf("Winner() = %q, Dropped() = %v", c.Winner(), c.Dropped())
	}
}

func TestExtractIdentifiers_WriterReporter(t *testing.T) {
	var buf bytes.Buffer
	files := []string{"routes/dashboard.tsx", "routes/dashboard/route.tsx"}
	ExtractIdentifiers(files, ExtractOptions{
		IndexNames: flatIndexNames,
		Reporter:   NewWriterReporter(&buf),
	})

	want := RouteIDConflictMessage("dashboard", files) + "\n"
	if buf.String() != want {
		t.Errorf("reported %q, want %q", buf.String(), want)
	}
}
