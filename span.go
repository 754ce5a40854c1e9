package main

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a span of source text.
type Kind int

const (
	Code Kind = iota
	StringLiteral
	LineComment
	BlockComment
)

func (k Kind) String() string {
	switch k {
	case Code:
		return "code"
	case StringLiteral:
		return "string"
	case LineComment:
		return "line-comment"
	case BlockComment:
		return "block-comment"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsComment reports whether spans of this kind are candidates for removal.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

// Span is a classified, contiguous piece of the input. Start and End are
// byte offsets into the source; Text is src[Start:End].
type Span struct {
	Kind     Kind
	Start    int
	End      int
	Text     string
	Preserve bool
}

// Document is the ordered span sequence produced by one scan. Spans cover
// the source with no gaps or overlaps.
type Document struct {
	Language Language
	Spans    []Span

	src string
}

// Text reassembles the document. It always equals the scanned source.
func (d *Document) Text() string {
	var b strings.Builder
	b.Grow(len(d.src))
	for _, s := range d.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Position converts a byte offset to a 1-based line and column.
func (d *Document) Position(offset int) (line, col int) {
	return position(d.src, offset)
}

func position(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	prefix := src[:offset]
	line = strings.Count(prefix, "\n") + 1
	col = offset - strings.LastIndexByte(prefix, '\n')
	return line, col
}

// Removed returns the comment spans Strip omits, in source order.
func (d *Document) Removed() []Span {
	var out []Span
	for _, s := range d.Spans {
		if s.Kind.IsComment() && !s.Preserve {
			out = append(out, s)
		}
	}
	return out
}

// ErrMalformedInput is the base error for input the scanner cannot classify.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError reports an unterminated literal or block comment.
type MalformedInputError struct {
	Offset int
	Line   int
	Column int
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at %d:%d: %s", e.Line, e.Column, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

func malformed(src string, offset int, reason string) *MalformedInputError {
	line, col := position(src, offset)
	return &MalformedInputError{Offset: offset, Line: line, Column: col, Reason: reason}
}

// UnsupportedFileTypeError is returned when no grammar handles a file extension.
type UnsupportedFileTypeError struct {
	Extension string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Extension)
}
