package routes

import (
	"errors"
	"fmt"
	"strings"
)

const (
	paramPrefix   = '$'
	escapeStart   = '['
	escapeEnd     = ']'
	optionalStart = '('
	optionalEnd   = ')'

	indexSuffix = "_index"
)

// ErrInvalidSegment is the sentinel wrapped by SegmentError.
var ErrInvalidSegment = errors.New("invalid route segment")

// SegmentError reports a segment that uses a character reserved for
// parameter, splat or separator syntax.
type SegmentError struct {
	Segment string
	RouteID string
	Char    string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("route segment %q for %q cannot contain %q", e.Segment, e.RouteID, e.Char)
}

func (e *SegmentError) Unwrap() error {
	return ErrInvalidSegment
}

// parseState is the state of the segment parser.
type parseState int

const (
	stateNormal parseState = iota
	stateEscape
	stateOptional
	stateOptionalEscape
)

func (s parseState) String() string {
	switch s {
	case stateNormal:
		return "NORMAL"
	case stateEscape:
		return "ESCAPE"
	case stateOptional:
		return "OPTIONAL"
	case stateOptionalEscape:
		return "OPTIONAL_ESCAPE"
	}
	return fmt.Sprintf("parseState(%d)", int(s))
}

// segment is one parsed id segment. display is what ends up in the path
// template; raw holds the source characters and is only used to classify
// the segment.
type segment struct {
	display string
	raw     string
}

// segmentParser accumulates segments while stepping through an id.
type segmentParser struct {
	id       string
	state    parseState
	display  strings.Builder
	raw      strings.Builder
	segments []segment
}

// step consumes the character at position i.
func (p *segmentParser) step(i int) error {
	c := p.id[i]
	last := i == len(p.id)-1

	switch p.state {
	case stateNormal:
		switch {
		case IsSegmentSeparator(c):
			return p.flush()
		case c == escapeStart:
			p.state = stateEscape
			p.raw.WriteByte(c)
		case c == optionalStart:
			p.state = stateOptional
			p.raw.WriteByte(c)
		case c == paramPrefix && p.display.Len() == 0:
			p.param(last)
		default:
			p.both(c)
		}

	case stateOptional:
		switch {
		case c == optionalEnd:
			p.state = stateNormal
			p.display.WriteByte('?')
			p.raw.WriteByte(c)
		case c == escapeStart:
			p.state = stateOptionalEscape
			p.raw.WriteByte(c)
		case c == paramPrefix && p.display.Len() == 0:
			p.param(last)
		default:
			p.both(c)
		}

	case stateEscape, stateOptionalEscape:
		if c == escapeEnd {
			if p.state == stateEscape {
				p.state = stateNormal
			} else {
				p.state = stateOptional
			}
			p.raw.WriteByte(c)
			return nil
		}
		p.both(c)
	}
	return nil
}

func (p *segmentParser) both(c byte) {
	p.display.WriteByte(c)
	p.raw.WriteByte(c)
}

// param handles a leading '$': a splat when it ends the id, otherwise the
// start of a named parameter.
func (p *segmentParser) param(last bool) {
	if last {
		p.display.WriteByte('*')
	} else {
		p.display.WriteByte(':')
	}
	p.raw.WriteByte(paramPrefix)
}

// flush ends the current segment. Empty segments are dropped.
func (p *segmentParser) flush() error {
	display, raw := p.display.String(), p.raw.String()
	p.display.Reset()
	p.raw.Reset()
	if display == "" {
		return nil
	}

	for _, reserved := range []string{"*", ":"} {
		if strings.Contains(raw, reserved) {
			return &SegmentError{Segment: raw, RouteID: p.id, Char: reserved}
		}
	}
	if strings.Contains(raw, "/") {
		return &SegmentError{Segment: display, RouteID: p.id, Char: "/"}
	}

	p.segments = append(p.segments, segment{display: display, raw: raw})
	return nil
}

func parseSegments(id string) ([]segment, error) {
	p := &segmentParser{id: id}
	for i := 0; i < len(id); i++ {
		if err := p.step(i); err != nil {
			return nil, err
		}
	}
	if err := p.flush(); err != nil {
		return nil, err
	}
	return p.segments, nil
}

// RoutePath converts a route id into a URL path template relative to the
// site root. It returns "" when the id contributes no path segments.
func RoutePath(id string) (string, error) {
	segments, err := parseSegments(id)
	if err != nil {
		return "", err
	}

	if IsIndexRoute(id) && len(segments) > 0 {
		segments = segments[:len(segments)-1]
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if isPathless(seg) {
			continue
		}
		if strings.HasSuffix(seg.display, "_") && strings.HasSuffix(seg.raw, "_") {
			parts = append(parts, strings.TrimSuffix(seg.display, "_"))
			continue
		}
		parts = append(parts, seg.display)
	}
	return strings.Join(parts, "/"), nil
}

// isPathless reports whether seg is a layout segment such as "_auth".
// "(_index)" counts, "[_]index" does not.
func isPathless(seg segment) bool {
	raw := strings.Replace(seg.raw, string(optionalStart), "", 1)
	return strings.HasPrefix(seg.display, "_") && strings.HasPrefix(raw, "_")
}

// IsIndexRoute reports whether id names an index route.
func IsIndexRoute(id string) bool {
	return strings.HasSuffix(id, indexSuffix)
}
