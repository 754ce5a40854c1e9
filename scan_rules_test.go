package main

import (
	"errors"
	"testing"
)

func TestStripGo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "single line comment",
			input: `package main

// Comment
func main() {
	x := 5 // inline
}`,
			expected: `package main

func main() {
	x := 5
}`,
		},
		{
			name: "block comment",
			input: `/* block
comment */
package main`,
			expected: `package main`,
		},
		{
			name:     "inline block comment",
			input:    `x := /* comment */ 5`,
			expected: `x :=  5`,
		},
		{
			name:     "string with comment-like content",
			input:    "s := \"// not a comment\"\nr := `/* raw\n// string */`",
			expected: "s := \"// not a comment\"\nr := `/* raw\n// string */`",
		},
		{
			name:     "rune literals",
			input:    `r := '/' // slash`,
			expected: `r := '/'`,
		},
		{
			name:     "escaped quotes in string",
			input:    `s := "say \"hi\" // x" // comment`,
			expected: `s := "say \"hi\" // x"`,
		},
		{
			name: "directives",
			input: `//go:build linux

package main

//go:embed static
var static embed.FS`,
			expected: `//go:build linux

package main

//go:embed static
var static embed.FS`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripString(t, Go, tt.input)
			if result != tt.expected {
				t.Errorf("Strip() failed\nInput:\n%s\n\nExpected:\n%q\n\nGot:\n%q", tt.input, tt.expected, result)
			}
		})
	}
}

func TestStripJavaScript(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single line comment",
			input:    `const x = 5; // this is a comment`,
			expected: `const x = 5;`,
		},
		{
			name: "block comment",
			input: `/* plain
   block */
f();`,
			expected: `f();`,
		},
		{
			name: "jsdoc is kept",
			input: `/**
 * Adds numbers.
 */
function add(a, b) {}`,
			expected: `/**
 * Adds numbers.
 */
function add(a, b) {}`,
		},
		{
			name:     "template literal with comment-like content",
			input:    "const s = `a // b\n/* c */`;",
			expected: "const s = `a // b\n/* c */`;",
		},
		{
			name:     "regular expression literal",
			input:    `const re = /https?:\/\//g; // url prefix`,
			expected: `const re = /https?:\/\//g;`,
		},
		{
			name:     "division is not a regex",
			input:    `const y = a / b / c; // ratio`,
			expected: `const y = a / b / c;`,
		},
		{
			name:     "postfix increment before division",
			input:    `x = i++ / 2; // note`,
			expected: `x = i++ / 2;`,
		},
		{
			name:     "postfix decrement after index before division",
			input:    `y = a[i]-- / 3 / 4; // note`,
			expected: `y = a[i]-- / 3 / 4;`,
		},
		{
			name:     "template literal with nested template",
			input:    "const s = `a ${fn(`b // c`, \"/* d */\")} e`; // f",
			expected: "const s = `a ${fn(`b // c`, \"/* d */\")} e`;",
		},
		{
			// JavaScript block comments do not nest; the first */ closes the comment.
			name: "nested block comments not supported",
			input: `/* outer /* inner */ still in comment */
const x = 5;`,
			expected: ` still in comment */
const x = 5;`,
		},
		{
			name: "triple slash directive",
			input: `/// <reference path="a.d.ts" />
let a = 1;`,
			expected: `/// <reference path="a.d.ts" />
let a = 1;`,
		},
		{
			name: "typescript interface",
			input: `// Interface definition
interface User {
  name: string; // user's name
  age: number; /* user's age */
}`,
			expected: `interface User {
  name: string;
  age: number;
}`,
		},
		{
			name: "typescript generics",
			input: `function map<T, U>(arr: T[]): U[] {
  // implementation
  return arr.map(/* ... */);
}`,
			expected: `function map<T, U>(arr: T[]): U[] {
  return arr.map();
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripString(t, JavaScript, tt.input)
			if result != tt.expected {
				t.Errorf("Strip() failed\nInput:\n%s\n\nExpected:\n%q\n\nGot:\n%q", tt.input, tt.expected, result)
			}
		})
	}
}

func TestStripTerraform(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "hash line comment",
			input: `# hash comment
resource "aws_instance" "web" {}`,
			expected: `resource "aws_instance" "web" {}`,
		},
		{
			name: "double slash line comment",
			input: `// slash comment
variable "x" {}`,
			expected: `variable "x" {}`,
		},
		{
			name: "block comment",
			input: `/* multi
line */
x = 1`,
			expected: `x = 1`,
		},
		{
			name:     "inline hash comment",
			input:    `name = "web" # the name`,
			expected: `name = "web"`,
		},
		{
			name:     "string with comment-like content",
			input:    `url = "http://example.com/#frag" // link`,
			expected: `url = "http://example.com/#frag"`,
		},
		{
			name: "heredoc with comments inside",
			input: `policy = <<EOF
# not a comment
// also not
EOF
`,
			expected: `policy = <<EOF
# not a comment
// also not
EOF
`,
		},
		{
			name: "indented heredoc",
			input: `user_data = <<-EOT
    #!/bin/bash
    echo hi # inline
    EOT
`,
			expected: `user_data = <<-EOT
    #!/bin/bash
    echo hi # inline
    EOT
`,
		},
		{
			name:     "quotes nested in interpolation",
			input:    `x = "${replace(var.u, "//", "/")}" # clean`,
			expected: `x = "${replace(var.u, "//", "/")}"`,
		},
		{
			name:     "template directive with nested quotes",
			input:    `y = "%{ if var.on }# on%{ else }${lookup(m, "#k")}%{ endif }" // c`,
			expected: `y = "%{ if var.on }# on%{ else }${lookup(m, "#k")}%{ endif }"`,
		},
		{
			name:     "escaped interpolation",
			input:    `z = "$${literal} # kept" # c`,
			expected: `z = "$${literal} # kept"`,
		},
		{
			name:     "shift operator is not a heredoc",
			input:    `x = 1 << 2 # shift`,
			expected: `x = 1 << 2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripString(t, Terraform, tt.input)
			if result != tt.expected {
				t.Errorf("Strip() failed\nInput:\n%s\n\nExpected:\n%q\n\nGot:\n%q", tt.input, tt.expected, result)
			}
		})
	}
}

func TestScanRulesMalformed(t *testing.T) {
	tests := []struct {
		name  string
		lang  Language
		input string
	}{
		{name: "go unterminated string", lang: Go, input: `s := "abc`},
		{name: "go unterminated raw string", lang: Go, input: "s := `abc"},
		{name: "go unterminated block comment", lang: Go, input: "/* abc"},
		{name: "javascript unterminated template", lang: JavaScript, input: "const s = `abc"},
		{name: "terraform unterminated heredoc", lang: Terraform, input: "x = <<EOF\nabc\n"},
		{name: "terraform unterminated interpolation", lang: Terraform, input: `x = "${foo("a")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(tt.input, tt.lang, DefaultIgnoreMarker)
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("Scan() error = %v, want ErrMalformedInput", err)
			}
		})
	}
}
