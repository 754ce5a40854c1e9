package main

import (
	"strings"
)

// Python string prefixes, compared case-insensitively.
var pythonStringPrefixes = map[string]bool{
	"r": true, "u": true, "b": true, "f": true,
	"br": true, "rb": true, "fr": true, "rf": true,
}

func isPythonStringPrefix(word string) bool {
	return pythonStringPrefixes[strings.ToLower(word)]
}

func (s *scanner) scanPython() error {
	depth := 0
	// Offset of the first byte of a line joined to its predecessor with a
	// trailing backslash.
	continuedLine := -1

	for s.pos < len(s.src) {
		c := s.src[s.pos]

		switch {
		case c == '#':
			end := s.lineEnd(s.pos)
			text := s.src[s.pos:end]
			doc := strings.HasPrefix(text, "###") || s.isPythonPragma(s.pos, text)
			s.emit(LineComment, s.pos, end, doc)

		case c == '\'' || c == '"':
			if err := s.pythonString(s.pos, s.pos, depth, continuedLine); err != nil {
				return err
			}

		case isIdentByte(c):
			start := s.pos
			for s.pos < len(s.src) && isIdentByte(s.src[s.pos]) {
				s.pos++
			}
			if q := s.peek(0); (q == '\'' || q == '"') && isPythonStringPrefix(s.src[start:s.pos]) {
				if err := s.pythonString(start, s.pos, depth, continuedLine); err != nil {
					return err
				}
			}

		case c == '(' || c == '[' || c == '{':
			depth++
			s.pos++

		case c == ')' || c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
			s.pos++

		case c == '\\':
			next := s.pos + 1
			if s.peek(1) == '\r' {
				next++
			}
			if next < len(s.src) && s.src[next] == '\n' {
				continuedLine = next + 1
				s.pos = next + 1
				continue
			}
			s.pos++

		default:
			s.pos++
		}
	}

	return nil
}

// pythonString scans a literal whose prefix begins at start and whose
// opening quote sits at quote.
func (s *scanner) pythonString(start, quote, depth, continuedLine int) error {
	q := s.src[quote]
	delim := strings.Repeat(string(q), 3)

	if strings.HasPrefix(s.src[quote:], delim) {
		for i := quote + 3; i < len(s.src); {
			if s.src[i] == '\\' {
				i += 2
				continue
			}
			if strings.HasPrefix(s.src[i:], delim) {
				end := i + 3
				if s.isDocString(start, end, depth, continuedLine) {
					s.emit(BlockComment, start, end, true)
				} else {
					s.emit(StringLiteral, start, end, false)
				}
				return nil
			}
			i++
		}
		return malformed(s.src, start, "unterminated triple-quoted string")
	}

	for i := quote + 1; i < len(s.src); {
		switch s.src[i] {
		case '\\':
			i += 2
			continue
		case '\n':
			return malformed(s.src, start, "unterminated string literal")
		case q:
			s.emit(StringLiteral, start, i+1, false)
			return nil
		}
		i++
	}
	return malformed(s.src, start, "unterminated string literal")
}

// isDocString reports whether a triple-quoted literal stands alone as a
// statement rather than being part of an expression.
func (s *scanner) isDocString(start, end, depth, continuedLine int) bool {
	if depth > 0 || !s.atLineStart(start) {
		return false
	}
	if lineStart(s.src, start) == continuedLine {
		return false
	}
	for i := end; i < len(s.src); i++ {
		switch s.src[i] {
		case ' ', '\t', '\f', '\r':
			continue
		case '\n', '#':
			return true
		default:
			return false
		}
	}
	return true
}

// isPythonPragma reports the shebang and the PEP 263 encoding declaration,
// which the interpreter reads from the first two lines.
func (s *scanner) isPythonPragma(start int, text string) bool {
	if start == 0 && strings.HasPrefix(text, "#!") {
		return true
	}
	if line, _ := position(s.src, start); line > 2 || !s.atLineStart(start) {
		return false
	}
	return strings.Contains(text, "coding:") || strings.Contains(text, "coding=")
}

func lineStart(src string, offset int) int {
	return strings.LastIndexByte(src[:offset], '\n') + 1
}
