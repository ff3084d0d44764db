// Package scanner discovers route files in an app directory and compiles
// them into a route manifest.
//
// Two naming conventions are supported:
//
//	flat        app/routes/app.projects.$id.tsx, app/routes/blog+/new.tsx,
//	            app/routes/dashboard/route.tsx
//	extensions  app/**/*.route.tsx
package scanner

import "github.com/abdul-hamid-achik/flatroutes/pkg/routes"

// Convention names a file naming scheme.
type Convention string

const (
	// ConventionFlat scans app/routes for dot-delimited flat route files.
	ConventionFlat Convention = "flat"
	// ConventionExtensions scans the whole app directory for *.route.* files.
	ConventionExtensions Convention = "extensions"
)

// Conventions returns every supported convention.
func Conventions() []Convention {
	return []Convention{ConventionFlat, ConventionExtensions}
}

// IsValid reports whether c is a known convention.
func (c Convention) IsValid() bool {
	for _, known := range Conventions() {
		if c == known {
			return true
		}
	}
	return false
}

// Options configures a Scanner. Zero values fall back to the
// convention's defaults.
type Options struct {
	// Convention selects the default patterns, suffix and index names.
	Convention Convention
	// Patterns are doublestar globs relative to the app directory.
	Patterns []string
	// Extensions are the route file extensions, without the dot.
	Extensions []string
	// RootExtensions are the extensions tried for the root route module.
	RootExtensions []string
	// Prefix, Suffix and IndexNames are passed to route id extraction.
	Prefix     string
	Suffix     string
	IndexNames []string
	// SkipRootCheck disables the root route precondition.
	SkipRootCheck bool
}

// Warning is a non-fatal issue found while scanning.
type Warning struct {
	FilePath string `json:"file"`
	Message  string `json:"message"`
}

// ScanResult holds everything discovered in one scan.
type ScanResult struct {
	// AppDir is the scanned directory.
	AppDir string
	// RootRoute is the path of the root route module.
	RootRoute string
	// Files are the matched route files, relative to AppDir.
	Files []string
	// Manifest is the compiled route manifest.
	Manifest *routes.Manifest
	// Collisions are the id and path collisions reported while compiling.
	Collisions []routes.Collision
	// Warnings are non-fatal issues encountered during scanning.
	Warnings []Warning
}
