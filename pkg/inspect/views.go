package inspect

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
)

const pageStyle = `body{font-family:ui-sans-serif,system-ui,sans-serif;margin:2rem;color:#1f2937}
ul{list-style:none;padding-left:1.25rem;border-left:1px solid #e5e7eb}
li{margin:.25rem 0}
code{font-weight:600}
.path{color:#2563eb;margin-left:.5rem}
.file{color:#6b7280;margin-left:.5rem;font-size:.875em}
.index{background:#dcfce7;color:#166534;border-radius:4px;padding:0 .25rem;margin-left:.5rem;font-size:.75em}`

// Page renders the manifest as an HTML tree.
func Page(title string, m *routes.Manifest) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		err := writeAll(w,
			`<!doctype html><html lang="en"><head><meta charset="utf-8"><title>`,
			templ.EscapeString(title),
			`</title><style>`, pageStyle, `</style></head><body><h1>`,
			templ.EscapeString(title),
			`</h1><p>`, strconv.Itoa(m.Len()),
			` routes &middot; <a href="/manifest.json">manifest.json</a></p><ul><li><code>`,
			routes.RootID, `</code>`,
		)
		if err != nil {
			return err
		}
		if err := routeTree(m, topLevel(m)).Render(ctx, w); err != nil {
			return err
		}
		return writeAll(w, `</li></ul></body></html>`)
	})
}

// routeTree renders one level of routes, each followed by its children.
func routeTree(m *routes.Manifest, level []routes.Route) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(level) == 0 {
			return nil
		}
		if err := writeAll(w, `<ul>`); err != nil {
			return err
		}
		for _, r := range level {
			if err := writeAll(w, `<li>`); err != nil {
				return err
			}
			if err := routeItem(r, m.FullPath(r.ID)).Render(ctx, w); err != nil {
				return err
			}
			if err := routeTree(m, m.Children(r.ID)).Render(ctx, w); err != nil {
				return err
			}
			if err := writeAll(w, `</li>`); err != nil {
				return err
			}
		}
		return writeAll(w, `</ul>`)
	})
}

// routeItem renders a single route: link, full path, file and index badge.
func routeItem(r routes.Route, fullPath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		err := writeAll(w,
			`<a href="/routes/`, templ.EscapeString(url.PathEscape(r.ID)), `"><code>`,
			templ.EscapeString(r.ID), `</code></a>`,
			`<span class="path">`, templ.EscapeString(fullPath), `</span>`,
			`<span class="file">`, templ.EscapeString(r.File), `</span>`,
		)
		if err != nil || !r.Index {
			return err
		}
		return writeAll(w, `<span class="index">index</span>`)
	})
}

// topLevel returns routes under the root, including routes whose parent
// was dropped by a collision.
func topLevel(m *routes.Manifest) []routes.Route {
	var out []routes.Route
	for _, r := range m.Routes() {
		if r.ParentID == routes.RootID {
			out = append(out, r)
			continue
		}
		if _, ok := m.Get(r.ParentID); !ok {
			out = append(out, r)
		}
	}
	return out
}

func writeAll(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}
