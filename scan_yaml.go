package main

import (
	"strings"
)

var yamlQuotes = map[byte]quoteRule{
	'"':  {quote: '"', escapes: true, multiline: true},
	'\'': {quote: '\'', multiline: true},
}

// scanYAML classifies YAML. A '#' only opens a comment at the start of a
// line or after whitespace. Quotes only open a scalar where a value may
// begin, and block scalar (| and >) bodies are literal text.
func (s *scanner) scanYAML() error {
	blockParent := -1
	flowDepth := 0

	for s.pos < len(s.src) {
		c := s.src[s.pos]

		switch {
		case c == '#' && (s.pos == 0 || isYAMLSpace(s.src[s.pos-1])):
			s.emit(LineComment, s.pos, s.lineEnd(s.pos), false)

		case (c == '"' || c == '\'') && s.yamlValueStart(flowDepth > 0):
			if err := s.yamlQuoted(s.pos, yamlQuotes[c]); err != nil {
				return err
			}

		case (c == '[' || c == '{') && (flowDepth > 0 || s.yamlValueStart(false)):
			flowDepth++
			s.pos++

		case (c == ']' || c == '}') && flowDepth > 0:
			flowDepth--
			s.pos++

		case (c == '|' || c == '>') && flowDepth == 0 && s.yamlValueStart(false) && s.yamlBlockHeader():
			blockParent = indentation(s.src, lineStart(s.src, s.pos))
			s.pos++

		case c == '\n':
			s.pos++
			if blockParent >= 0 {
				s.yamlBlockBody(blockParent)
				blockParent = -1
			}

		default:
			s.pos++
		}
	}

	return nil
}

func isYAMLSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// yamlValueStart reports whether a scalar may begin at s.pos. Block
// indicators (- ? :) count only when a blank separates them from the
// scalar; flow indicators ([ { ,) count only inside a flow collection.
func (s *scanner) yamlValueStart(flow bool) bool {
	i := s.pos - 1
	for i >= 0 && (s.src[i] == ' ' || s.src[i] == '\t') {
		i--
	}
	if i < 0 || s.src[i] == '\n' {
		return true
	}
	blank := i < s.pos-1
	switch s.src[i] {
	case ':':
		return blank || flow
	case '-', '?':
		return blank && s.yamlIndicatorAt(i)
	case '[', '{', ',':
		return flow
	}
	return false
}

// yamlIndicatorAt reports whether the '-' or '?' at i stands where a node
// begins rather than inside a plain scalar.
func (s *scanner) yamlIndicatorAt(i int) bool {
	j := i - 1
	for j >= 0 && (s.src[j] == ' ' || s.src[j] == '\t') {
		j--
	}
	return j < 0 || s.src[j] == '\n' || (j < i-1 && strings.IndexByte("-?:", s.src[j]) >= 0)
}

// yamlBlockHeader reports whether the indicator at s.pos is followed only by
// chomping/indentation indicators and an optional comment.
func (s *scanner) yamlBlockHeader() bool {
	i := s.pos + 1
	for i < len(s.src) && strings.IndexByte("+-0123456789", s.src[i]) >= 0 {
		i++
	}
	rest := strings.TrimLeft(s.src[i:s.lineEnd(i)], " \t")
	return rest == "" || (strings.HasPrefix(rest, "#") && i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t'))
}

// yamlQuoted consumes a quoted scalar. Single-quoted scalars escape a quote
// by doubling it.
func (s *scanner) yamlQuoted(start int, q quoteRule) error {
	if q.escapes {
		return s.quoted(start, q, nil)
	}
	for i := start + 1; i < len(s.src); i++ {
		if s.src[i] != q.quote {
			continue
		}
		if i+1 < len(s.src) && s.src[i+1] == q.quote {
			i++
			continue
		}
		s.emit(StringLiteral, start, i+1, false)
		return nil
	}
	return malformed(s.src, start, "unterminated string literal")
}

// yamlBlockBody marks the lines indented deeper than parent, starting at
// s.pos, as one literal span. Trailing blank lines stay code.
func (s *scanner) yamlBlockBody(parent int) {
	start := s.pos
	end := start
	for line := start; line < len(s.src); {
		le := s.lineEnd(line)
		if text := s.src[line:le]; strings.TrimSpace(text) != "" {
			if indentation(s.src, line) <= parent {
				break
			}
			end = le
		}
		nl := strings.IndexByte(s.src[line:], '\n')
		if nl < 0 {
			break
		}
		line += nl + 1
	}
	if end > start {
		s.emit(StringLiteral, start, end, false)
	}
}

// indentation counts the spaces opening the line that starts at offset.
func indentation(src string, offset int) int {
	n := 0
	for offset+n < len(src) && src[offset+n] == ' ' {
		n++
	}
	return n
}
