package scanner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Scanner scans an app directory for route modules.
type Scanner struct {
	appDir  string
	opts    Options
	verbose bool
	logger  *slog.Logger
}

// NewScanner creates a new Scanner for the given app directory.
func NewScanner(appDir string, opts Options) *Scanner {
	return &Scanner{
		appDir: appDir,
		opts:   opts.resolve(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetVerbose enables verbose logging during scanning.
func (s *Scanner) SetVerbose(v bool) {
	s.verbose = v
}

// SetLogger sets the logger used for verbose output.
func (s *Scanner) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// AppDir returns the scanned directory.
func (s *Scanner) AppDir() string {
	return s.appDir
}

// Options returns the resolved scanner options.
func (s *Scanner) Options() Options {
	return s.opts
}

// Files walks the app directory and returns the relative, slash-separated
// paths of every file matching the convention's patterns, sorted and
// deduplicated.
func (s *Scanner) Files() ([]string, error) {
	if err := validatePatterns(s.opts.Patterns); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.appDir)
	if err != nil {
		return nil, fmt.Errorf("app directory %s: %w", s.appDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("app directory %s is not a directory", s.appDir)
	}

	seen := make(map[string]bool)
	var files []string

	err = filepath.Walk(s.appDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != s.appDir && IsSkippedFolder(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(s.appDir, path)
		if err != nil {
			return nil
		}
		rel := filepath.ToSlash(relPath)

		if !matchAny(s.opts.Patterns, rel) {
			return nil
		}
		if seen[rel] {
			return nil
		}
		seen[rel] = true
		files = append(files, rel)

		if s.verbose {
			s.logger.Debug("matched route file", "file", rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortPaths(files)
	return files, nil
}

// Scan discovers route files and compiles them into a manifest. Collisions
// are collected into the result rather than printed.
func (s *Scanner) Scan() (*ScanResult, error) {
	result := &ScanResult{AppDir: s.appDir}

	if !s.opts.SkipRootCheck {
		root, err := EnsureRootRouteExists(s.appDir, s.opts.RootExtensions)
		if err != nil {
			return nil, err
		}
		result.RootRoute = root
	}

	files, err := s.Files()
	if err != nil {
		return nil, err
	}
	result.Files = files

	if len(files) == 0 {
		result.Warnings = append(result.Warnings, Warning{
			FilePath: s.appDir,
			Message:  "no route files matched " + string(s.opts.Convention) + " convention",
		})
	}

	recorder := &routes.Recorder{}
	m, err := routes.Compile(files, routes.ExtractOptions{
		Prefix:     s.opts.Prefix,
		Suffix:     s.opts.Suffix,
		IndexNames: s.opts.IndexNames,
		Reporter:   recorder,
	})
	if err != nil {
		return nil, err
	}
	result.Manifest = m
	result.Collisions = recorder.Collisions()

	for _, c := range result.Collisions {
		result.Warnings = append(result.Warnings, Warning{
			FilePath: c.Winner(),
			Message:  c.Message(),
		})
	}

	if s.verbose {
		s.logger.Debug("compiled manifest",
			"app_dir", s.appDir,
			"convention", string(s.opts.Convention),
			"files", len(files),
			"routes", m.Len(),
			"collisions", len(result.Collisions),
		)
	}

	return result, nil
}

// Manifest scans the app directory and returns the compiled manifest.
// Collisions are written to r, or standard error when r is nil.
func (s *Scanner) Manifest(r routes.Reporter) (*routes.Manifest, error) {
	result, err := s.Scan()
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = routes.NewWriterReporter(os.Stderr)
	}
	for _, c := range result.Collisions {
		r.Report(c)
	}
	return result.Manifest, nil
}

// ErrNoRootRoute is returned when the app directory has no root route module.
var ErrNoRootRoute = errors.New("no root route module")

// EnsureRootRouteExists returns the path of the root route module
// (root.js, root.jsx, root.ts or root.tsx) in appDir.
func EnsureRootRouteExists(appDir string, extensions []string) (string, error) {
	if len(extensions) == 0 {
		extensions = DefaultRootExtensions
	}
	for _, ext := range extensions {
		if ext != "" && ext[0] != '.' {
			ext = "." + ext
		}
		path := filepath.Join(appDir, "root"+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoRootRoute, appDir)
}

// sortPaths orders files the way a glob sorted with English locale
// comparison does, so the earlier file of a same-length collision wins
// consistently: "_index" before "$slug", "apple" before "Zed".
// A Collator is not safe for concurrent use, so each call builds one.
func sortPaths(files []string) {
	collate.New(language.English).SortStrings(files)
}
