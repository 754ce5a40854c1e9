package main

import (
	"strings"
)

// quoteRule describes one string literal delimiter.
type quoteRule struct {
	quote     byte
	escapes   bool
	multiline bool
	// templates lists the sigils that open an interpolation when followed
	// by '{', e.g. "$%" for HCL's ${...} and %{...}.
	templates string
	// doubledSigils makes $${ and %%{ literal text.
	doubledSigils bool
}

// syntaxRules is the table-driven grammar for languages whose comments and
// strings need no context beyond the current token.
type syntaxRules struct {
	lineComments []string
	blockOpen    string
	blockClose   string
	// docBlock marks block comments kept as documentation, e.g. "/**".
	docBlock string
	// directives are line comment prefixes the toolchain reads, so they
	// are kept like documentation.
	directives    []string
	quotes        []quoteRule
	heredocs      bool
	regexLiterals bool
}

var goRules = syntaxRules{
	lineComments: []string{"//"},
	blockOpen:    "/*",
	blockClose:   "*/",
	directives:   []string{"//go:", "// +build", "//line ", "//export ", "//extern "},
	quotes: []quoteRule{
		{quote: '"', escapes: true},
		{quote: '\'', escapes: true},
		{quote: '`', multiline: true},
	},
}

var javaScriptRules = syntaxRules{
	lineComments: []string{"//"},
	blockOpen:    "/*",
	blockClose:   "*/",
	docBlock:     "/**",
	directives:   []string{"/// <reference", "/// <amd", "//# sourceMappingURL", "//@ sourceMappingURL"},
	quotes: []quoteRule{
		{quote: '"', escapes: true},
		{quote: '\'', escapes: true},
		{quote: '`', escapes: true, multiline: true, templates: "$"},
	},
	regexLiterals: true,
}

var terraformRules = syntaxRules{
	lineComments: []string{"#", "//"},
	blockOpen:    "/*",
	blockClose:   "*/",
	quotes: []quoteRule{
		{quote: '"', escapes: true, templates: "$%", doubledSigils: true},
	},
	heredocs: true,
}

func (r *syntaxRules) quoteFor(c byte) (quoteRule, bool) {
	for _, q := range r.quotes {
		if q.quote == c {
			return q, true
		}
	}
	return quoteRule{}, false
}

func (r *syntaxRules) isDirective(text string) bool {
	for _, d := range r.directives {
		if strings.HasPrefix(text, d) {
			return true
		}
	}
	return false
}

func (s *scanner) scanRules(r *syntaxRules) error {
scan:
	for s.pos < len(s.src) {
		for _, prefix := range r.lineComments {
			if s.hasPrefix(prefix) {
				end := s.lineEnd(s.pos)
				s.emit(LineComment, s.pos, end, r.isDirective(s.src[s.pos:end]))
				continue scan
			}
		}

		if r.blockOpen != "" && s.hasPrefix(r.blockOpen) {
			if err := s.ruleBlockComment(r); err != nil {
				return err
			}
			continue
		}

		c := s.src[s.pos]
		if q, ok := r.quoteFor(c); ok {
			if err := s.quoted(s.pos, q, r); err != nil {
				return err
			}
			continue
		}

		if r.heredocs && s.hasPrefix("<<") {
			found, err := s.heredoc()
			if err != nil {
				return err
			}
			if found {
				continue
			}
		}

		if r.regexLiterals && c == '/' && s.regexAllowed() {
			if end := s.regexEnd(); end > 0 {
				s.emit(StringLiteral, s.pos, end, false)
				continue
			}
		}

		s.pos++
	}

	return nil
}

// ruleBlockComment consumes a non-nesting block comment.
func (s *scanner) ruleBlockComment(r *syntaxRules) error {
	start := s.pos
	idx := strings.Index(s.src[start+len(r.blockOpen):], r.blockClose)
	if idx < 0 {
		return malformed(s.src, start, "unterminated block comment")
	}
	end := start + len(r.blockOpen) + idx + len(r.blockClose)
	text := s.src[start:end]
	doc := r.docBlock != "" && strings.HasPrefix(text, r.docBlock) && text != r.docBlock+"/"
	s.emit(BlockComment, start, end, doc)
	return nil
}

// quoted consumes a literal opened at start. r supplies the nested quote
// rules for interpolations and may be nil when q has no templates.
func (s *scanner) quoted(start int, q quoteRule, r *syntaxRules) error {
	end, err := s.quotedEnd(start, q, r)
	if err != nil {
		return err
	}
	s.emit(StringLiteral, start, end, false)
	return nil
}

func (s *scanner) quotedEnd(start int, q quoteRule, r *syntaxRules) (int, error) {
	for i := start + 1; i < len(s.src); {
		switch c := s.src[i]; {
		case q.escapes && c == '\\':
			i += 2
			continue
		case c == q.quote:
			return i + 1, nil
		case c == '\n' && !q.multiline:
			return 0, malformed(s.src, start, "unterminated string literal")
		case q.templates != "" && strings.IndexByte(q.templates, c) >= 0:
			if q.doubledSigils && strings.HasPrefix(s.src[i+1:], string(c)+"{") {
				i += 3
				continue
			}
			if strings.HasPrefix(s.src[i+1:], "{") {
				end, err := s.interpolationEnd(i+2, r)
				if err != nil {
					return 0, err
				}
				i = end
				continue
			}
		}
		i++
	}
	return 0, malformed(s.src, start, "unterminated string literal")
}

// interpolationEnd returns the offset just past the '}' that closes an
// interpolation whose body starts at from. Strings inside the body may
// contain their own interpolations.
func (s *scanner) interpolationEnd(from int, r *syntaxRules) (int, error) {
	depth := 1
	for i := from; i < len(s.src); {
		c := s.src[i]
		if q, ok := r.quoteFor(c); ok {
			end, err := s.quotedEnd(i, q, r)
			if err != nil {
				return 0, err
			}
			i = end
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
		i++
	}
	return 0, malformed(s.src, from-2, "unterminated interpolation")
}

// heredoc consumes <<ID or <<-ID through the line holding the closing ID.
// It reports false when the << does not open a heredoc.
func (s *scanner) heredoc() (bool, error) {
	start := s.pos
	i := start + 2
	if i < len(s.src) && s.src[i] == '-' {
		i++
	}
	idStart := i
	for i < len(s.src) && isIdentByte(s.src[i]) {
		i++
	}
	id := s.src[idStart:i]
	if id == "" || strings.TrimSpace(s.src[i:s.lineEnd(i)]) != "" {
		return false, nil
	}

	for line := i; line < len(s.src); {
		nl := strings.IndexByte(s.src[line:], '\n')
		if nl < 0 {
			break
		}
		line += nl + 1
		end := s.lineEnd(line)
		if strings.TrimSpace(s.src[line:end]) == id {
			s.emit(StringLiteral, start, end, false)
			return true, nil
		}
	}
	return false, malformed(s.src, start, "unterminated heredoc "+id)
}

var regexPrecedingKeywords = map[string]bool{
	"return": true, "typeof": true, "case": true, "do": true, "else": true,
	"in": true, "of": true, "new": true, "delete": true, "void": true,
	"throw": true, "yield": true, "await": true,
}

// regexAllowed reports whether a slash at s.pos may open a regular
// expression literal rather than divide.
func (s *scanner) regexAllowed() bool {
	i := s.pos - 1
	for i >= 0 && (s.src[i] == ' ' || s.src[i] == '\t') {
		i--
	}
	if i < 0 || s.src[i] == '\n' {
		return true
	}
	// Postfix ++ and -- end an expression.
	if c := s.src[i]; (c == '+' || c == '-') && i > 1 && s.src[i-1] == c {
		if p := s.src[i-2]; isIdentByte(p) || p == ')' || p == ']' {
			return false
		}
	}
	if strings.IndexByte("(,=:[!&|?{};+-*%<>~^", s.src[i]) >= 0 {
		return true
	}
	if !isIdentByte(s.src[i]) {
		return false
	}
	end := i + 1
	for i >= 0 && isIdentByte(s.src[i]) {
		i--
	}
	return regexPrecedingKeywords[s.src[i+1:end]]
}

// regexEnd returns the offset just past a regular expression literal and
// its flags, or -1 when the literal does not close on this line.
func (s *scanner) regexEnd() int {
	inClass := false
	for i := s.pos + 1; i < len(s.src); i++ {
		switch s.src[i] {
		case '\\':
			i++
		case '\n':
			return -1
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if inClass {
				continue
			}
			i++
			for i < len(s.src) && isIdentByte(s.src[i]) {
				i++
			}
			return i
		}
	}
	return -1
}
