package routes

import (
	"path"
	"slices"
	"sort"
	"strings"
)

// RouteID pairs a route id with the file that defines it.
type RouteID struct {
	ID   string `json:"id"`
	File string `json:"file"`
}

// ExtractOptions controls how file paths are reduced to route ids.
type ExtractOptions struct {
	// Prefix is removed from the start of the final name segment.
	Prefix string
	// Suffix is removed from the end of the name, before the extension
	// (e.g. ".route" for "users.route.tsx").
	Suffix string
	// IndexNames are basenames that make a folder act as the route itself
	// (e.g. "route" for "routes/users/route.tsx").
	IndexNames []string
	// Reporter receives id collisions. Nil writes them to standard error.
	Reporter Reporter
}

// NormalizeSlashes converts Windows separators to forward slashes.
func NormalizeSlashes(file string) string {
	return strings.ReplaceAll(file, `\`, "/")
}

// ExtractIdentifiers converts route files into unique route ids sorted by
// id length, longest first. When two files produce the same id the first
// one wins and the collision is reported.
func ExtractIdentifiers(files []string, opts ExtractOptions) []RouteID {
	reporter := reporterOrStderr(opts.Reporter)

	var ids []RouteID
	seen := make(map[string]int) // id -> index in ids
	conflicts := make(map[string][]string)
	var conflictOrder []string

	for _, file := range files {
		normalized := NormalizeSlashes(file)
		id := routeIDForFile(normalized, opts)

		if i, ok := seen[id]; ok {
			if _, ok := conflicts[id]; !ok {
				conflicts[id] = []string{ids[i].File}
				conflictOrder = append(conflictOrder, id)
			}
			conflicts[id] = append(conflicts[id], normalized)
			continue
		}
		seen[id] = len(ids)
		ids = append(ids, RouteID{ID: id, File: normalized})
	}

	for _, id := range conflictOrder {
		reporter.Report(Collision{Kind: IDCollision, Key: id, Files: conflicts[id]})
	}

	SortByLength(ids)
	return ids
}

// SortByLength orders ids longest first. Equal lengths keep their
// relative order, which decides collision winners.
func SortByLength(ids []RouteID) {
	sort.SliceStable(ids, func(i, j int) bool {
		return len(ids[i].ID) > len(ids[j].ID)
	})
}

// routeIDForFile derives the id for a normalized file path.
func routeIDForFile(file string, opts ExtractOptions) string {
	withoutExt := strings.TrimSuffix(file, extname(file))
	withoutExt = strings.TrimSuffix(withoutExt, opts.Suffix)

	// routes/users/route -> routes/users, but routes/route stays the
	// site index. "+" folders don't count towards the depth.
	if slices.Contains(opts.IndexNames, path.Base(withoutExt)) {
		parts := strings.Split(withoutExt, "/")
		depth := 0
		for _, p := range parts {
			if !strings.HasSuffix(p, "+") {
				depth++
			}
		}
		if depth > 2 {
			withoutExt = strings.Join(parts[:len(parts)-1], "/")
		}
	}

	var segments []string
	for _, p := range strings.Split(withoutExt, "/") {
		if strings.HasSuffix(p, "+") {
			segments = append(segments, strings.TrimSuffix(p, "+"))
		}
	}

	base := path.Base(withoutExt)
	// A route file collapsed into a "+" folder is named by that folder,
	// which is already the last ancestor: routes/a/blog+/route -> blog.
	if strings.HasSuffix(base, "+") {
		return strings.Join(segments, ".")
	}
	segments = append(segments, strings.TrimPrefix(base, opts.Prefix))
	return strings.Join(segments, ".")
}

// extname mirrors the usual extension rule: dotfiles such as ".env" have
// no extension.
func extname(file string) string {
	base := path.Base(file)
	ext := path.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}
