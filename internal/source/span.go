package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside the registry document.
type Span struct {
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover extends the span to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// At builds a zero-length span anchored at a byte offset.
func At(off uint32) Span {
	return Span{Start: off, End: off}
}

// LineCol is a human-readable position in the registry document.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
