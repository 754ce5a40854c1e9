package main

import (
	"strings"
	"unicode/utf8"
)

func (s *scanner) scanRust() error {
	for s.pos < len(s.src) {
		c := s.src[s.pos]

		var err error
		switch {
		case s.hasPrefix("//"):
			end := s.lineEnd(s.pos)
			text := s.src[s.pos:end]
			doc := (strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////")) ||
				strings.HasPrefix(text, "//!")
			s.emit(LineComment, s.pos, end, doc)

		case s.hasPrefix("/*"):
			err = s.rustBlockComment()

		case c == '"':
			err = s.rustString(s.pos, s.pos)

		case c == '\'':
			err = s.rustChar(s.pos, s.pos)

		case isIdentByte(c):
			start := s.pos
			for s.pos < len(s.src) && isIdentByte(s.src[s.pos]) {
				s.pos++
			}
			switch word := s.src[start:s.pos]; {
			case (word == "r" || word == "br" || word == "cr") && (s.peek(0) == '"' || s.peek(0) == '#'):
				// r#ident is a raw identifier, not a string.
				if s.isRawStringStart(s.pos) {
					err = s.rustRawString(start, s.pos)
				}
			case (word == "b" || word == "c") && s.peek(0) == '"':
				err = s.rustString(start, s.pos)
			case word == "b" && s.peek(0) == '\'':
				err = s.rustChar(start, s.pos)
			}

		default:
			s.pos++
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// rustBlockComment consumes a block comment at s.pos. Rust block comments nest.
func (s *scanner) rustBlockComment() error {
	start := s.pos
	depth := 0
	for i := start; i < len(s.src); {
		switch {
		case strings.HasPrefix(s.src[i:], "/*"):
			depth++
			i += 2
		case strings.HasPrefix(s.src[i:], "*/"):
			depth--
			i += 2
			if depth == 0 {
				text := s.src[start:i]
				doc := (strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***") && text != "/**/") ||
					strings.HasPrefix(text, "/*!")
				s.emit(BlockComment, start, i, doc)
				return nil
			}
		default:
			i++
		}
	}
	return malformed(s.src, start, "unterminated block comment")
}

func (s *scanner) rustString(start, quote int) error {
	for i := quote + 1; i < len(s.src); {
		switch s.src[i] {
		case '\\':
			i += 2
			continue
		case '"':
			s.emit(StringLiteral, start, i+1, false)
			return nil
		}
		i++
	}
	return malformed(s.src, start, "unterminated string literal")
}

func (s *scanner) isRawStringStart(at int) bool {
	i := at
	for i < len(s.src) && s.src[i] == '#' {
		i++
	}
	return i < len(s.src) && s.src[i] == '"'
}

// rustRawString scans r"..." and r#"..."#; the closing quote must be followed
// by as many hashes as the opening one.
func (s *scanner) rustRawString(start, at int) error {
	i := at
	for s.src[i] == '#' {
		i++
	}
	closing := `"` + s.src[at:i]
	if idx := strings.Index(s.src[i+1:], closing); idx >= 0 {
		s.emit(StringLiteral, start, i+1+idx+len(closing), false)
		return nil
	}
	return malformed(s.src, start, "unterminated raw string literal")
}

// rustChar distinguishes a character literal from a lifetime or label.
func (s *scanner) rustChar(start, quote int) error {
	if quote+1 < len(s.src) && s.src[quote+1] == '\\' {
		for i := quote + 3; i < len(s.src) && s.src[i] != '\n'; i++ {
			if s.src[i] == '\'' {
				s.emit(StringLiteral, start, i+1, false)
				return nil
			}
		}
		return malformed(s.src, start, "unterminated character literal")
	}

	_, size := utf8.DecodeRuneInString(s.src[quote+1:])
	if size > 0 && quote+1+size < len(s.src) && s.src[quote+1+size] == '\'' {
		s.emit(StringLiteral, start, quote+2+size, false)
		return nil
	}

	s.pos = quote + 1
	return nil
}
