package rewrite

import (
	"strings"
	"testing"

	"github.com/randalmurphal/webiokit/diag"
)

func TestSource_EntryRewrite(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "annotated main with empty body",
			src: `package main

//webio:main
func main() {
}
`,
			want: `package main

import (
	"log"

	"github.com/randalmurphal/webio"
)

func webioMain() {
}

func main() {
	if err := webio.Launch(func() error {
		webioMain()
		return nil
	}); err != nil {
		log.Fatalf("webio: %v", err)
	}
}
`,
		},
		{
			name: "annotated main returning error",
			src: `package main

//webio:main
func main() error {
	return nil
}
`,
			want: `package main

import (
	"log"

	"github.com/randalmurphal/webio"
)

func webioMain() error {
	return nil
}

func main() {
	if err := webio.Launch(webioMain); err != nil {
		log.Fatalf("webio: %v", err)
	}
}
`,
		},
		{
			name: "entry under its own name keeps it",
			src: `package main

//webio:main
func run() error {
	return nil
}
`,
			want: `package main

import (
	"log"

	"github.com/randalmurphal/webio"
)

func run() error {
	return nil
}

func main() {
	if err := webio.Launch(run); err != nil {
		log.Fatalf("webio: %v", err)
	}
}
`,
		},
		{
			name: "existing parenthesized imports are extended",
			src: `package main

import (
	"fmt"
)

//webio:main
func main() {
	fmt.Println("up")
}
`,
			want: `package main

import (
	"fmt"
	"github.com/randalmurphal/webio"
	"log"
)

func webioMain() {
	fmt.Println("up")
}

func main() {
	if err := webio.Launch(func() error {
		webioMain()
		return nil
	}); err != nil {
		log.Fatalf("webio: %v", err)
	}
}
`,
		},
		{
			name: "runtime already imported under an alias",
			src: `package main

import (
	"log"

	rt "github.com/randalmurphal/webio"
)

//webio:main
func main() {
	rt.Serve(nil)
}
`,
			want: `package main

import (
	"log"

	rt "github.com/randalmurphal/webio"
)

func webioMain() {
	rt.Serve(nil)
}

func main() {
	if err := rt.Launch(func() error {
		webioMain()
		return nil
	}); err != nil {
		log.Fatalf("webio: %v", err)
	}
}
`,
		},
		{
			name: "hidden name avoids an existing declaration",
			src: `package main

var webioMain = "taken"

//webio:main
func main() {
}
`,
			want: `package main

import (
	"log"

	"github.com/randalmurphal/webio"
)

var webioMain = "taken"

func webioMain2() {
}

func main() {
	if err := webio.Launch(func() error {
		webioMain2()
		return nil
	}); err != nil {
		log.Fatalf("webio: %v", err)
	}
}
`,
		},
		{
			name: "directive with surrounding doc text",
			src: `package main

// run starts the app.
//webio:main
func run() error {
	return nil
}
`,
			want: `package main

import (
	"log"

	"github.com/randalmurphal/webio"
)

// run starts the app.
func run() error {
	return nil
}

func main() {
	if err := webio.Launch(run); err != nil {
		log.Fatalf("webio: %v", err)
	}
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags, err := Source("main.go", []byte(tt.src), DefaultOptions())
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if len(diags) > 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if string(got) != tt.want {
				t.Errorf("rewrite mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestSource_EntryRewriteIdempotent(t *testing.T) {
	src := `package main

//webio:main
func main() error {
	return nil
}
`
	first, diags, err := Source("main.go", []byte(src), DefaultOptions())
	if err != nil || len(diags) > 0 {
		t.Fatalf("first rewrite failed: err=%v diags=%v", err, diags)
	}

	second, diags, err := Source("main.go", first, DefaultOptions())
	if err != nil || len(diags) > 0 {
		t.Fatalf("second rewrite failed: err=%v diags=%v", err, diags)
	}
	if string(second) != string(first) {
		t.Errorf("second rewrite changed output\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestSource_EntryDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode diag.Code
		wantMsg  string
	}{
		{
			name: "parameters",
			src: `package main

//webio:main
func main(port int) {
}
`,
			wantCode: diag.MalformedEntrySignature,
			wantMsg:  "must take no parameters",
		},
		{
			name: "method receiver",
			src: `package main

type app struct{}

//webio:main
func (a app) run() {
}
`,
			wantCode: diag.MalformedEntrySignature,
			wantMsg:  "must not be a method",
		},
		{
			name: "type parameters",
			src: `package main

//webio:main
func run[T any]() {
}
`,
			wantCode: diag.MalformedEntrySignature,
			wantMsg:  "must not have type parameters",
		},
		{
			name: "non-error result",
			src: `package main

//webio:main
func main() int {
	return 0
}
`,
			wantCode: diag.MalformedEntrySignature,
			wantMsg:  "must return nothing or a single error",
		},
		{
			name: "two results",
			src: `package main

//webio:main
func main() (string, error) {
	return "", nil
}
`,
			wantCode: diag.MalformedEntrySignature,
			wantMsg:  "must return nothing or a single error",
		},
		{
			name: "missing body",
			src: `package main

//webio:main
func run()
`,
			wantCode: diag.MalformedEntrySignature,
			wantMsg:  "must have a body",
		},
		{
			name: "wrong package",
			src: `package server

//webio:main
func run() {
}
`,
			wantCode: diag.MalformedEntrySignature,
			wantMsg:  "must be declared in package main",
		},
		{
			name: "duplicate annotation",
			src: `package main

//webio:main
func main() {
}

//webio:main
func other() {
}
`,
			wantCode: diag.DuplicateEntryPoint,
			wantMsg:  "duplicate entry point annotation",
		},
		{
			name: "plain main next to named entry",
			src: `package main

//webio:main
func run() {
}

func main() {
}
`,
			wantCode: diag.EntryMainConflict,
			wantMsg:  "conflicts with the entry point",
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
			if len(diags) == 0 {
				t.Fatal("expected diagnostics, got none")
			}
			found := false
			for _, d := range diags {
				if d.Code == tt.wantCode && strings.Contains(d.Message, tt.wantMsg) {
					found = true
				}
			}
			if !found {
				t.Errorf("no diagnostic with code %v and message containing %q in %v", tt.wantCode, tt.wantMsg, diags)
			}
		})
	}
}

func TestRewriter_DuplicateAcrossFiles(t *testing.T) {
	r := New(DefaultOptions())
	files := map[string]string{
		"a.go": "package main\n\n//webio:main\nfunc main() {\n}\n",
		"b.go": "package main\n\n//webio:main\nfunc other() {\n}\n",
	}
	for _, name := range []string{"a.go", "b.go"} {
		if err := r.AddFile(name, []byte(files[name])); err != nil {
			t.Fatalf("AddFile(%s): %v", name, err)
		}
	}

	out, diags := r.Rewrite()
	if out != nil {
		t.Fatal("diagnostics must suppress output")
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Code != diag.DuplicateEntryPoint {
		t.Errorf("code = %v, want DuplicateEntryPoint", diags[0].Code)
	}
	if diags[0].Pos.Filename != "b.go" {
		t.Errorf("duplicate reported at %s, want the second annotation site b.go", diags[0].Pos.Filename)
	}
}

func TestSource_NoAnnotationIsIdentity(t *testing.T) {
	src := `package main

import "fmt"

func main() {
	fmt.Println("plain")
}
`
	got, diags, err := Source("main.go", []byte(src), DefaultOptions())
	if err != nil || len(diags) > 0 {
		t.Fatalf("rewrite failed: err=%v diags=%v", err, diags)
	}
	if string(got) != src {
		t.Errorf("unannotated file changed\ngot:\n%s\nwant:\n%s", got, src)
	}
}
