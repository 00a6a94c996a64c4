package json

import (
	"strconv"
	"strings"
)

// Segment is a single path element: either a dictionary key or a 1-based
// array index. The zero value (empty key, zero index) is the root marker.
type Segment struct {
	Key   string
	Index int
}

func Key(key string) Segment {
	return Segment{Key: key}
}

func Index(index int) Segment {
	return Segment{Index: index}
}

// IsIndex reports whether the segment addresses an array position.
func (s Segment) IsIndex() bool {
	return s.Index > 0
}

func (s Segment) String() string {
	if s.IsIndex() {
		return strconv.Itoa(s.Index)
	}

	return s.Key
}

// Path addresses the element currently being delivered. Element 0 is always
// the root marker, the last element equals the element's own key. A Path is
// owned by the parser and valid only for the duration of the handler call it
// is passed to; use Copy to retain it.
type Path []Segment

func (p Path) Copy() Path {
	return append(Path(nil), p...)
}

// String renders the path in /key/1/key form; the bare root renders as "/".
func (p Path) String() string {
	if len(p) <= 1 {
		return "/"
	}

	var b strings.Builder

	for _, segment := range p[1:] {
		b.WriteByte('/')
		b.WriteString(segment.String())
	}

	return b.String()
}
