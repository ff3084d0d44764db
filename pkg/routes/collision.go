package routes

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// CollisionKind distinguishes duplicate ids from duplicate URL paths.
type CollisionKind string

const (
	// IDCollision means several files produced the same route id.
	IDCollision CollisionKind = "id"
	// PathCollision means several routes resolved to the same URL path.
	PathCollision CollisionKind = "path"
)

// Collision describes routes that could not all be kept. Files[0] is the
// file that won; the rest were dropped.
type Collision struct {
	Kind  CollisionKind `json:"kind"`
	Key   string        `json:"key"`
	Files []string      `json:"files"`
}

// Winner returns the file that was kept.
func (c Collision) Winner() string {
	if len(c.Files) == 0 {
		return ""
	}
	return c.Files[0]
}

// Dropped returns the files that were excluded.
func (c Collision) Dropped() []string {
	if len(c.Files) < 2 {
		return nil
	}
	return c.Files[1:]
}

// Message renders the collision in the warning format printed by the
// compiler.
func (c Collision) Message() string {
	switch c.Kind {
	case PathCollision:
		return RoutePathConflictMessage(c.Key, c.Files)
	default:
		return RouteIDConflictMessage(c.Key, c.Files)
	}
}

// RouteIDConflictMessage formats a route id collision.
func RouteIDConflictMessage(id string, files []string) string {
	return conflictMessage(
		`⚠️ Route ID Collision: "`+id+`"`,
		"The following routes all define the same Route ID, only the first one will be used",
		files,
	)
}

// RoutePathConflictMessage formats a URL path collision. The pathname is
// shown as an absolute path.
func RoutePathConflictMessage(pathname string, files []string) string {
	if !strings.HasPrefix(pathname, "/") {
		pathname = "/" + pathname
	}
	return conflictMessage(
		`⚠️ Route Path Collision: "`+pathname+`"`,
		"The following routes all define the same URL, only the first one will be used",
		files,
	)
}

func conflictMessage(header, explanation string, files []string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(explanation)
	b.WriteString("\n\n")
	if len(files) > 0 {
		b.WriteString("🟢 " + files[0] + "\n")
		others := make([]string, 0, len(files)-1)
		for _, f := range files[1:] {
			others = append(others, "⭕️️ "+f)
		}
		b.WriteString(strings.Join(others, "\n"))
	}
	b.WriteString("\n")
	return b.String()
}

// Reporter receives collisions as they are detected.
type Reporter interface {
	Report(c Collision)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(c Collision)

// Report calls f(c).
func (f ReporterFunc) Report(c Collision) { f(c) }

type writerReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterReporter writes each collision message to w followed by a
// newline.
func NewWriterReporter(w io.Writer) Reporter {
	return &writerReporter{w: w}
}

func (r *writerReporter) Report(c Collision) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, c.Message())
}

// Recorder collects collisions in the order they are reported.
type Recorder struct {
	mu         sync.Mutex
	collisions []Collision
}

// Report records c.
func (r *Recorder) Report(c Collision) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collisions = append(r.collisions, c)
}

// Collisions returns a copy of everything recorded so far.
func (r *Recorder) Collisions() []Collision {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Collision, len(r.collisions))
	copy(out, r.collisions)
	return out
}

// Len returns the number of recorded collisions.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.collisions)
}

// MultiReporter fans each collision out to every non-nil reporter.
func MultiReporter(reporters ...Reporter) Reporter {
	return ReporterFunc(func(c Collision) {
		for _, r := range reporters {
			if r != nil {
				r.Report(c)
			}
		}
	})
}

func reporterOrStderr(r Reporter) Reporter {
	if r == nil {
		return NewWriterReporter(os.Stderr)
	}
	return r
}
