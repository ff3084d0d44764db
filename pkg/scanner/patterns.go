package scanner

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions are the route module extensions both conventions
// look for.
var DefaultExtensions = []string{"js", "jsx", "ts", "tsx", "md", "mdx"}

// DefaultRootExtensions are tried, in order, for the root route module.
var DefaultRootExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// FlatIndexNames make a folder under routes/ act as the route itself.
var FlatIndexNames = []string{"index", "route", "_index", "_route"}

// RouteSuffix marks route modules in the extensions convention.
const RouteSuffix = ".route"

// skippedFolders are never descended into.
var skippedFolders = map[string]bool{
	"node_modules": true,
	".git":         true,
	".cache":       true,
	".flatroutes":  true,
	"build":        true,
	"dist":         true,
}

// IsSkippedFolder checks if a directory should be skipped during scanning.
func IsSkippedFolder(name string) bool {
	// Hidden directories
	if strings.HasPrefix(name, ".") && name != "." {
		return true
	}
	return skippedFolders[name]
}

// DefaultPatterns returns the glob patterns of a convention for the given
// extensions.
func DefaultPatterns(c Convention, extensions []string) []string {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	ext := "{" + strings.Join(extensions, ",") + "}"

	switch c {
	case ConventionExtensions:
		return []string{"**/*" + RouteSuffix + "." + ext}
	default:
		return []string{
			"routes/*." + ext,
			"routes/*/{" + strings.Join(FlatIndexNames, ",") + "}." + ext,
			"routes/*+/**/*." + ext,
		}
	}
}

// resolve fills zero-valued options with the convention's defaults.
func (o Options) resolve() Options {
	if o.Convention == "" {
		o.Convention = ConventionFlat
	}
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultExtensions
	}
	if len(o.Patterns) == 0 {
		o.Patterns = DefaultPatterns(o.Convention, o.Extensions)
	}
	if len(o.RootExtensions) == 0 {
		o.RootExtensions = DefaultRootExtensions
	}
	switch o.Convention {
	case ConventionExtensions:
		if o.Suffix == "" {
			o.Suffix = RouteSuffix
		}
	default:
		if len(o.IndexNames) == 0 {
			o.IndexNames = FlatIndexNames
		}
	}
	return o
}

// validatePatterns rejects malformed globs before walking.
func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid pattern %q", p)
		}
	}
	return nil
}

// matchAny reports whether the slash-separated relative path matches one
// of patterns.
func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}
