package main

import (
	"bytes"
	"strings"
)

// Strip renders doc with every unpreserved comment removed.
//
// Whitespace is cleaned up deterministically: a removed comment that ends
// its line takes the blanks before it along, and a line left empty by the
// removal is dropped together with its line break. Comments removed from
// the middle of a line leave the surrounding text alone.
func Strip(doc *Document) string {
	var out bytes.Buffer
	out.Grow(len(doc.src))

	dropNewline := false
	for i, span := range doc.Spans {
		text := span.Text
		if dropNewline {
			text = trimLeadingNewline(text)
			dropNewline = false
		}

		if !span.Kind.IsComment() || span.Preserve {
			out.WriteString(text)
			continue
		}

		next := ""
		if i+1 < len(doc.Spans) {
			next = doc.Spans[i+1].Text
		}
		if !endsLine(next) {
			continue
		}

		trimTrailingBlanks(&out)
		if !atLineStart(out.Bytes()) {
			continue
		}

		if next == "" {
			trimTrailingNewline(&out)
		} else {
			dropNewline = true
		}
	}

	return out.String()
}

// StripSource scans and strips src in one call.
func StripSource(src string, lang Language, marker string) (string, *Document, error) {
	doc, err := Scan(src, lang, marker)
	if err != nil {
		return "", nil, err
	}
	return Strip(doc), doc, nil
}

func endsLine(s string) bool {
	return s == "" || strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\r\n")
}

func trimLeadingNewline(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "\n")
}

func trimTrailingBlanks(buf *bytes.Buffer) {
	b := buf.Bytes()
	n := len(b)
	for n > 0 && (b[n-1] == ' ' || b[n-1] == '\t') {
		n--
	}
	buf.Truncate(n)
}

func trimTrailingNewline(buf *bytes.Buffer) {
	b := buf.Bytes()
	n := len(b)
	if n > 0 && b[n-1] == '\n' {
		n--
		if n > 0 && b[n-1] == '\r' {
			n--
		}
	}
	buf.Truncate(n)
}

func atLineStart(b []byte) bool {
	return len(b) == 0 || b[len(b)-1] == '\n'
}
