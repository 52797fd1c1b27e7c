package rewrite

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"

	"github.com/randalmurphal/webiokit/diag"
)

// Default import paths wired into the generated code.
const (
	// DefaultTemplateImport is the substitution library whose calls the
	// folding pass recognizes.
	DefaultTemplateImport = "github.com/randalmurphal/webiokit/template"

	// DefaultRuntimeImport is the async runtime driver the synthesized
	// bootstrap hands control to.
	DefaultRuntimeImport = "github.com/randalmurphal/webio"
)

// Options configures a Rewriter.
type Options struct {
	// TemplateImport is the import path of the substitution library.
	TemplateImport string

	// RuntimeImport is the import path of the async runtime driver. The
	// synthesized bootstrap calls its Launch function.
	RuntimeImport string

	// Aliases names additional package-local wrapper functions whose calls
	// fold like Replace. Each must have the Replace signature.
	Aliases []string

	// Fold enables compile-time folding of template calls.
	Fold bool

	// Entry enables entry-point rewriting.
	Entry bool
}

// DefaultOptions returns Options with both passes enabled and the default
// import paths.
func DefaultOptions() Options {
	return Options{
		TemplateImport: DefaultTemplateImport,
		RuntimeImport:  DefaultRuntimeImport,
		Fold:           true,
		Entry:          true,
	}
}

// normalized fills empty import paths with the defaults.
func (o Options) normalized() Options {
	if o.TemplateImport == "" {
		o.TemplateImport = DefaultTemplateImport
	}
	if o.RuntimeImport == "" {
		o.RuntimeImport = DefaultRuntimeImport
	}
	return o
}

// srcFile is one parsed source file registered with a Rewriter.
type srcFile struct {
	name  string
	src   []byte
	file  *ast.File
	edits []textEdit
}

// Rewriter transforms one program's worth of Go source files. Entry-point
// rules are program-wide (a duplicate annotation across two files is still
// a duplicate), so all files of a package should be registered on the same
// Rewriter. Each Rewriter is independent; invocations share no state.
type Rewriter struct {
	opts  Options
	fset  *token.FileSet
	files []*srcFile
}

// New returns a Rewriter with the given options.
func New(opts Options) *Rewriter {
	return &Rewriter{
		opts: opts.normalized(),
		fset: token.NewFileSet(),
	}
}

// AddFile parses src and registers it under name. A syntax error is
// returned as-is: the pass only rewrites source the compiler would accept.
func (r *Rewriter) AddFile(name string, src []byte) error {
	file, err := parser.ParseFile(r.fset, name, src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	r.files = append(r.files, &srcFile{name: name, src: src, file: file})
	return nil
}

// Rewrite runs the enabled passes over every registered file and returns
// the rewritten sources keyed by file name. Files the passes do not touch
// come back unchanged. Any diagnostic suppresses all output: the returned
// map is nil and the sorted diagnostics describe every violation found.
func (r *Rewriter) Rewrite() (map[string][]byte, diag.List) {
	var diags diag.List

	if r.opts.Entry {
		r.rewriteEntry(&diags)
	}
	if r.opts.Fold {
		for _, f := range r.files {
			r.foldFile(f, &diags)
		}
	}

	if len(diags) > 0 {
		diags.Sort()
		return nil, diags
	}

	out := make(map[string][]byte, len(r.files))
	for _, f := range r.files {
		if len(f.edits) == 0 {
			out[f.name] = f.src
			continue
		}
		rewritten := applyEdits(f.src, f.edits)
		if formatted, err := format.Source(rewritten); err == nil {
			rewritten = formatted
		}
		out[f.name] = rewritten
	}
	return out, nil
}

// Source rewrites a single file. Entry-point validation is scoped to that
// file alone. The diag.List is non-nil when the file violates a rule, in
// which case no output is produced; err reports a syntax error in src.
func Source(name string, src []byte, opts Options) ([]byte, diag.List, error) {
	r := New(opts)
	if err := r.AddFile(name, src); err != nil {
		return nil, nil, err
	}
	out, diags := r.Rewrite()
	if len(diags) > 0 {
		return nil, diags, nil
	}
	return out[name], nil, nil
}

// position resolves an AST position against the rewriter's file set.
func (r *Rewriter) position(pos token.Pos) token.Position {
	return r.fset.Position(pos)
}

// offset returns the byte offset of pos within its file.
func (r *Rewriter) offset(pos token.Pos) int {
	return r.fset.Position(pos).Offset
}
