package rewrite

import (
	"strings"
	"testing"

	"github.com/randalmurphal/webiokit/diag"
)

func TestSource_Fold(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
		src  string
		want string
	}{
		{
			name: "must call folds to a literal and drops the import",
			src: `package main

import "github.com/randalmurphal/webiokit/template"

var greeting = template.MustReplace("Hello {{name}}", template.Arg("name", "Ahmed"))
`,
			want: `package main

var greeting = "Hello Ahmed"
`,
		},
		{
			name: "raw literal folds verbatim and stays raw",
			src: `package main

import "github.com/randalmurphal/webiokit/template"

var snippet = template.MustHTML(` + "`" + `<a href="{{url}}">\n</a>` + "`" + `, template.Arg("url", "/home"))
`,
			want: `package main

var snippet = ` + "`" + `<a href="/home">\n</a>` + "`" + `
`,
		},
		{
			name: "pair call folds as sole rhs of two-value assignment",
			src: `package main

import "github.com/randalmurphal/webiokit/template"

func build() string {
	out, err := template.Replace("{{a}}{{a}}", template.Arg("a", "x"))
	if err != nil {
		return ""
	}
	return out
}
`,
			want: `package main

func build() string {
	out, err := "xx", error(nil)
	if err != nil {
		return ""
	}
	return out
}
`,
		},
		{
			name: "constant values render like the runtime path",
			src: `package main

import "github.com/randalmurphal/webiokit/template"

var row = template.MustReplace("{{n}} {{f}} {{b}} {{neg}}", template.Arg("n", 42), template.Arg("f", 1.5), template.Arg("b", true), template.Arg("neg", -7))
`,
			want: `package main

var row = "42 1.5 true -7"
`,
		},
		{
			name: "aliased import folds and is removed",
			src: `package main

import t "github.com/randalmurphal/webiokit/template"

var out = t.MustReplace("hi {{who}}", t.Arg("who", "you"))
`,
			want: `package main

var out = "hi you"
`,
		},
		{
			name: "configured alias wrapper folds in assignment",
			opts: &Options{Aliases: []string{"css"}, Fold: true},
			src: `package main

import "github.com/randalmurphal/webiokit/template"

func css(content string, args ...template.Argument) (string, error) {
	return template.Replace(content, args...)
}

func style() string {
	rule, err := css("color: {{c}};", template.Arg("c", "red"))
	if err != nil {
		return ""
	}
	return rule
}
`,
			want: `package main

import "github.com/randalmurphal/webiokit/template"

func css(content string, args ...template.Argument) (string, error) {
	return template.Replace(content, args...)
}

func style() string {
	rule, err := "color: red;", error(nil)
	if err != nil {
		return ""
	}
	return rule
}
`,
		},
		{
			name: "non-constant argument is left untouched",
			src: `package main

import "github.com/randalmurphal/webiokit/template"

func greet(name string) string {
	return template.MustReplace("Hello {{name}}", template.Arg("name", name))
}
`,
			want: `package main

import "github.com/randalmurphal/webiokit/template"

func greet(name string) string {
	return template.MustReplace("Hello {{name}}", template.Arg("name", name))
}
`,
		},
		{
			name: "valid pair call outside assignment is checked but kept",
			src: `package main

import "github.com/randalmurphal/webiokit/template"

func use(s string, err error) {}

func emit() {
	use(template.Replace("ok {{x}}", template.Arg("x", 1)))
}
`,
			want: `package main

import "github.com/randalmurphal/webiokit/template"

func use(s string, err error) {}

func emit() {
	use(template.Replace("ok {{x}}", template.Arg("x", 1)))
}
`,
		},
		{
			name: "other template calls keep the import",
			src: `package main

import "github.com/randalmurphal/webiokit/template"

var folded = template.MustReplace("{{a}}", template.Arg("a", "x"))

func dynamic(name string) string {
	return template.MustReplace("{{a}}", template.Arg("a", name))
}
`,
			want: `package main

import "github.com/randalmurphal/webiokit/template"

var folded = "x"

func dynamic(name string) string {
	return template.MustReplace("{{a}}", template.Arg("a", name))
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				opts = *tt.opts
			}
			got, diags, err := Source("main.go", []byte(tt.src), opts)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if len(diags) > 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if string(got) != tt.want {
				t.Errorf("fold mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestSource_FoldDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode diag.Code
		wantMsg  string
	}{
		{
			name: "unknown placeholder",
			src: `package main

import "github.com/randalmurphal/webiokit/template"

var bad = template.MustReplace("{{missing}}")
`,
			wantCode: diag.UnknownPlaceholder,
			wantMsg:  `unknown placeholder "missing"`,
		},
		{
			name: "unterminated placeholder",
			src: `package main

import "github.com/randalmurphal/webiokit/template"

var bad = template.MustReplace("{{unterminated")
`,
			wantCode: diag.UnterminatedPlaceholder,
			wantMsg:  "unterminated placeholder",
		},
		{
			name: "checked pair call outside assignment",
			src: `package main

import "github.com/randalmurphal/webiokit/template"

func emit() {
	template.Replace("{{missing}}")
}
`,
			wantCode: diag.UnknownPlaceholder,
			wantMsg:  `unknown placeholder "missing"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, diags, err := Source("main.go", []byte(tt.src), DefaultOptions())
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if out != nil {
				t.Fatal("diagnostics must suppress output")
			}
			if len(diags) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
			}
			d := diags[0]
			if d.Code != tt.wantCode {
				t.Errorf("code = %v, want %v", d.Code, tt.wantCode)
			}
			if !strings.Contains(d.Message, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", d.Message, tt.wantMsg)
			}
			if d.Pos.Filename != "main.go" || d.Pos.Line == 0 {
				t.Errorf("diagnostic position %v is not anchored in main.go", d.Pos)
			}
		})
	}
}

func TestSource_FoldAndEntryTogether(t *testing.T) {
	src := `package main

import "github.com/randalmurphal/webiokit/template"

//webio:main
func main() {
	print(template.MustReplace("Hello {{name}}", template.Arg("name", "Ahmed")))
}
`
	want := `package main

import (
	"log"

	"github.com/randalmurphal/webio"
)

func webioMain() {
	print("Hello Ahmed")
}

func main() {
	if err := webio.Launch(func() error {
		webioMain()
		return nil
	}); err != nil {
		log.Fatalf("webio: %v", err)
	}
}
`
	got, diags, err := Source("main.go", []byte(src), DefaultOptions())
	if err != nil || len(diags) > 0 {
		t.Fatalf("rewrite failed: err=%v diags=%v", err, diags)
	}
	if string(got) != want {
		t.Errorf("combined rewrite mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}
