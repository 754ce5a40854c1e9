package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Language selects the comment and string syntax used by Scan.
type Language int

const (
	Python Language = iota + 1
	Rust
	Go
	JavaScript
	Terraform
	YAML
)

// DefaultIgnoreMarker keeps a comment in place when it appears in the comment text.
const DefaultIgnoreMarker = "aicodeanalyzer: ignore"

var languageNames = map[Language]string{
	Python:     "python",
	Rust:       "rust",
	Go:         "go",
	JavaScript: "javascript",
	Terraform:  "terraform",
	YAML:       "yaml",
}

var languageExtensions = map[string]Language{
	".py":     Python,
	".pyi":    Python,
	".rs":     Rust,
	".go":     Go,
	".js":     JavaScript,
	".jsx":    JavaScript,
	".mjs":    JavaScript,
	".cjs":    JavaScript,
	".ts":     JavaScript,
	".tsx":    JavaScript,
	".tf":     Terraform,
	".tfvars": Terraform,
	".yaml":   YAML,
	".yml":    YAML,
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return fmt.Sprintf("language(%d)", int(l))
}

// ParseLanguage maps a name such as "python" to its Language.
func ParseLanguage(name string) (Language, error) {
	name = strings.ToLower(name)
	for lang, n := range languageNames {
		if n == name {
			return lang, nil
		}
	}
	if lang, ok := languageAliases[name]; ok {
		return lang, nil
	}
	return 0, fmt.Errorf("unknown language %q", name)
}

var languageAliases = map[string]Language{
	"py":         Python,
	"rs":         Rust,
	"golang":     Go,
	"js":         JavaScript,
	"ts":         JavaScript,
	"typescript": JavaScript,
	"hcl":        Terraform,
	"tf":         Terraform,
	"yml":        YAML,
}

// languageForPath picks a grammar from the file extension.
func languageForPath(path string) (Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := languageExtensions[ext]; ok {
		return lang, nil
	}
	return 0, &UnsupportedFileTypeError{Extension: filepath.Ext(path)}
}

// Scan classifies src into spans. A comment containing marker is marked
// Preserve; an empty marker disables that check.
func Scan(src string, lang Language, marker string) (*Document, error) {
	s := &scanner{src: src, marker: marker}

	var err error
	switch lang {
	case Python:
		err = s.scanPython()
	case Rust:
		err = s.scanRust()
	case Go:
		err = s.scanRules(&goRules)
	case JavaScript:
		err = s.scanRules(&javaScriptRules)
	case Terraform:
		err = s.scanRules(&terraformRules)
	case YAML:
		err = s.scanYAML()
	default:
		return nil, fmt.Errorf("scan: unsupported language %v", lang)
	}
	if err != nil {
		return nil, err
	}

	s.flushCode(len(src))
	return &Document{Language: lang, Spans: s.spans, src: src}, nil
}

// scanner holds the state shared by the per-language scan loops. Code
// accumulates implicitly between codeStart and the next emitted literal or
// comment.
type scanner struct {
	src       string
	marker    string
	pos       int
	codeStart int
	spans     []Span
}

func (s *scanner) peek(offset int) byte {
	if i := s.pos + offset; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

func (s *scanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

func (s *scanner) flushCode(end int) {
	if end > s.codeStart {
		s.spans = append(s.spans, Span{
			Kind:  Code,
			Start: s.codeStart,
			End:   end,
			Text:  s.src[s.codeStart:end],
		})
	}
	s.codeStart = end
}

// emit closes any pending code and records src[start:end] as kind.
func (s *scanner) emit(kind Kind, start, end int, doc bool) {
	s.flushCode(start)
	text := s.src[start:end]
	preserve := doc
	if kind.IsComment() && s.marker != "" && strings.Contains(text, s.marker) {
		preserve = true
	}
	s.spans = append(s.spans, Span{
		Kind:     kind,
		Start:    start,
		End:      end,
		Text:     text,
		Preserve: preserve,
	})
	s.pos = end
	s.codeStart = end
}

// lineEnd returns the offset of the next newline at or after from, or len(src).
func (s *scanner) lineEnd(from int) int {
	if i := strings.IndexByte(s.src[from:], '\n'); i >= 0 {
		end := from + i
		if end > from && s.src[end-1] == '\r' {
			end--
		}
		return end
	}
	return len(s.src)
}

// atLineStart reports whether only spaces and tabs precede offset on its line.
func (s *scanner) atLineStart(offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch s.src[i] {
		case ' ', '\t', '\f':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
