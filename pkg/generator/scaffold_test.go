package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
	"github.com/abdul-hamid-achik/flatroutes/pkg/scanner"
)

func TestGenerateRoute(t *testing.T) {
	tests := []struct {
		name        string
		cfg         RouteConfig
		wantFile    string
		wantPattern string
		wantContent string
	}{
		{
			name:        "flat component",
			cfg:         RouteConfig{ID: "blog.$slug"},
			wantFile:    "routes/blog.$slug.tsx",
			wantPattern: "/blog/:slug",
			wantContent: "export default function BlogSlugRoute()",
		},
		{
			name:        "flat index",
			cfg:         RouteConfig{ID: "_index"},
			wantFile:    "routes/_index.tsx",
			wantPattern: "/",
			wantContent: "<h1>Index</h1>",
		},
		{
			name:        "extensions script",
			cfg:         RouteConfig{ID: "api.users", Convention: scanner.ConventionExtensions, Extension: ".ts"},
			wantFile:    "api.users.route.ts",
			wantPattern: "/api/users",
			wantContent: "// api.users handles /api/users",
		},
		{
			name:        "markdown",
			cfg:         RouteConfig{ID: "docs.getting-started", Extension: "mdx"},
			wantFile:    "routes/docs.getting-started.mdx",
			wantPattern: "/docs/getting-started",
			wantContent: "# Docs Getting Started",
		},
		{
			name:        "numeric id",
			cfg:         RouteConfig{ID: "404"},
			wantFile:    "routes/404.tsx",
			wantPattern: "/404",
			wantContent: "function Route404Route()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.cfg.AppDir = dir

			result, err := GenerateRoute(tt.cfg)
			if err != nil {
				t.Fatalf("GenerateRoute() error: %v", err)
			}

			wantPath := filepath.Join(dir, filepath.FromSlash(tt.wantFile))
			if len(result.Files) != 1 || result.Files[0] != wantPath {
				t.Errorf("Files = %v, want [%s]", result.Files, wantPath)
			}
			if result.Pattern != tt.wantPattern {
				t.Errorf("Pattern = %q, want %q", result.Pattern, tt.wantPattern)
			}

			content, err := os.ReadFile(wantPath)
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if !strings.Contains(string(content), tt.wantContent) {
				t.Errorf("content missing %q:\n%s", tt.wantContent, content)
			}
		})
	}
}

func TestGenerateRouteRoundTrips(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "root.tsx"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"_index", "blog", "blog.$slug", "_auth.login"} {
		if _, err := GenerateRoute(RouteConfig{ID: id, AppDir: dir}); err != nil {
			t.Fatalf("GenerateRoute(%q) error: %v", id, err)
		}
	}

	result, err := scanner.NewScanner(dir, scanner.Options{}).Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	for _, id := range []string{"_index", "blog", "blog.$slug", "_auth.login"} {
		if _, ok := result.Manifest.Get(id); !ok {
			t.Errorf("scanned manifest missing %q: %v", id, result.Manifest.IDs())
		}
	}
}

func TestGenerateRouteErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := GenerateRoute(RouteConfig{AppDir: dir}); !errors.Is(err, routes.ErrEmptyValue) {
		t.Errorf("empty id error = %v, want ErrEmptyValue", err)
	}
	if _, err := GenerateRoute(RouteConfig{ID: "blog/post", AppDir: dir}); err == nil {
		t.Error("expected error for slash in id")
	}
	if _, err := GenerateRoute(RouteConfig{ID: "files.a*b", AppDir: dir}); !errors.Is(err, routes.ErrInvalidSegment) {
		t.Errorf("reserved character error = %v, want ErrInvalidSegment", err)
	}
	if _, err := GenerateRoute(RouteConfig{ID: "about", AppDir: dir, Extension: "vue"}); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := GenerateRoute(RouteConfig{ID: "about", AppDir: dir, Convention: "nested"}); err == nil {
		t.Error("expected error for unknown convention")
	}

	if _, err := GenerateRoute(RouteConfig{ID: "about", AppDir: dir}); err != nil {
		t.Fatalf("GenerateRoute() error: %v", err)
	}
	if _, err := GenerateRoute(RouteConfig{ID: "about", AppDir: dir}); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("duplicate error = %v, want already exists", err)
	}
}
