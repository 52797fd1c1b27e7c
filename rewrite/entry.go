package rewrite

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/randalmurphal/webiokit/diag"
)

// entryDirective marks the asynchronous entry point. It takes no options.
const entryDirective = "//webio:main"

// hiddenEntryName is the name an annotated func main is renamed to before
// the bootstrap is synthesized.
const hiddenEntryName = "webioMain"

// entryPoint is one annotated function found during collection.
type entryPoint struct {
	f       *srcFile
	fd      *ast.FuncDecl
	comment *ast.Comment
}

// rewriteEntry finds the annotated entry point, validates it program-wide,
// and records the edits that turn it into a synchronous bootstrap. All
// violations are appended to diags; edits are only recorded when the
// program is clean.
func (r *Rewriter) rewriteEntry(diags *diag.List) {
	var entries []entryPoint
	for _, f := range r.files {
		for _, decl := range f.file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Doc == nil {
				continue
			}
			for _, c := range fd.Doc.List {
				if strings.TrimSpace(c.Text) == entryDirective {
					entries = append(entries, entryPoint{f: f, fd: fd, comment: c})
					break
				}
			}
		}
	}
	if len(entries) == 0 {
		return
	}

	entry := entries[0]
	for _, dup := range entries[1:] {
		diags.Add(diag.DuplicateEntryPoint, r.position(dup.comment.Pos()),
			"duplicate entry point annotation: %s at %s is already annotated",
			entry.fd.Name.Name, r.position(entry.comment.Pos()))
	}

	before := len(*diags)
	r.validateEntry(entry, diags)

	// The synthesized bootstrap needs the main name, so a plain func main
	// next to an annotated entry under another name cannot stand.
	if entry.fd.Name.Name != "main" {
		for _, f := range r.files {
			for _, decl := range f.file.Decls {
				fd, ok := decl.(*ast.FuncDecl)
				if ok && fd.Recv == nil && fd.Name.Name == "main" {
					diags.Add(diag.EntryMainConflict, r.position(fd.Pos()),
						"func main conflicts with the entry point %s: the generated bootstrap takes the main name",
						entry.fd.Name.Name)
				}
			}
		}
	}

	if len(*diags) > before || len(entries) > 1 {
		return
	}
	r.emitBootstrap(entry)
}

// validateEntry checks the annotated function against the entry-point
// signature rules.
func (r *Rewriter) validateEntry(e entryPoint, diags *diag.List) {
	fd := e.fd
	pos := r.position(fd.Pos())
	name := fd.Name.Name

	if pkg := e.f.file.Name.Name; pkg != "main" {
		diags.Add(diag.MalformedEntrySignature, pos,
			"entry point %s must be declared in package main, not package %s", name, pkg)
	}
	if fd.Recv != nil {
		diags.Add(diag.MalformedEntrySignature, pos,
			"entry point %s must not be a method", name)
	}
	if fd.Type.TypeParams != nil {
		diags.Add(diag.MalformedEntrySignature, pos,
			"entry point %s must not have type parameters", name)
	}
	if fd.Type.Params != nil && len(fd.Type.Params.List) > 0 {
		diags.Add(diag.MalformedEntrySignature, pos,
			"entry point %s must take no parameters", name)
	}
	if !validEntryResults(fd.Type.Results) {
		diags.Add(diag.MalformedEntrySignature, pos,
			"entry point %s must return nothing or a single error", name)
	}
	if fd.Body == nil {
		diags.Add(diag.MalformedEntrySignature, pos,
			"entry point %s must have a body", name)
	}
}

// validEntryResults reports whether the result list is empty or exactly
// one error.
func validEntryResults(results *ast.FieldList) bool {
	if results == nil || len(results.List) == 0 {
		return true
	}
	if len(results.List) != 1 {
		return false
	}
	field := results.List[0]
	if len(field.Names) > 1 {
		return false
	}
	ident, ok := field.Type.(*ast.Ident)
	return ok && ident.Name == "error"
}

// emitBootstrap records the edits for a validated entry point: consume the
// directive, rename an entry called main out of the way, make sure the
// runtime driver and log are imported, and append the synchronous main.
func (r *Rewriter) emitBootstrap(e entryPoint) {
	f := e.f
	fd := e.fd

	// Consume the directive so the rewrite is idempotent.
	start := r.offset(e.comment.Pos())
	end := r.offset(e.comment.End())
	if end < len(f.src) && f.src[end] == '\n' {
		end++
	}
	f.edits = append(f.edits, textEdit{start: start, end: end})

	entryName := fd.Name.Name
	if entryName == "main" {
		entryName = r.freeName(hiddenEntryName)
		f.edits = append(f.edits, textEdit{
			start: r.offset(fd.Name.Pos()),
			end:   r.offset(fd.Name.End()),
			text:  entryName,
		})
	}

	var std, ext []string
	logName, ok := r.importName(f.file, "log")
	if !ok {
		logName = "log"
		std = append(std, strconv.Quote("log"))
	}
	driverName, ok := r.importName(f.file, r.opts.RuntimeImport)
	if !ok {
		driverName, ext = appendImportSpec(ext, r.opts.RuntimeImport)
	}
	if len(std)+len(ext) > 0 {
		r.addImports(f, std, ext)
	}

	launchArg := entryName
	if fd.Type.Results == nil || len(fd.Type.Results.List) == 0 {
		launchArg = fmt.Sprintf("func() error {\n\t\t%s()\n\t\treturn nil\n\t}", entryName)
	}
	bootstrap := fmt.Sprintf(
		"\n\nfunc main() {\n\tif err := %s.Launch(%s); err != nil {\n\t\t%s.Fatalf(\"webio: %%v\", err)\n\t}\n}\n",
		driverName, launchArg, logName)
	f.edits = append(f.edits, textEdit{start: len(f.src), end: len(f.src), text: bootstrap})
}

// freeName returns base, or base with a numeric suffix, such that no
// top-level declaration in the program uses it.
func (r *Rewriter) freeName(base string) string {
	taken := make(map[string]bool)
	for _, f := range r.files {
		for _, decl := range f.file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil {
					taken[d.Name.Name] = true
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.ValueSpec:
						for _, n := range s.Names {
							taken[n.Name] = true
						}
					case *ast.TypeSpec:
						taken[s.Name.Name] = true
					case *ast.ImportSpec:
						if s.Name != nil {
							taken[s.Name.Name] = true
						}
					}
				}
			}
		}
	}

	name := base
	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	return name
}

// importName returns the local name path is already imported under in file,
// if that name is usable for a qualified reference. Blank and dot imports
// do not count; an unnamed import is assumed to bind the path's base.
func (r *Rewriter) importName(file *ast.File, path string) (string, bool) {
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != path {
			continue
		}
		if imp.Name == nil {
			if base := pathBase(path); token.IsIdentifier(base) {
				return base, true
			}
			continue
		}
		if imp.Name.Name == "_" || imp.Name.Name == "." {
			continue
		}
		return imp.Name.Name, true
	}
	return "", false
}

// appendImportSpec appends an import spec for path, aliasing it when the
// path's base is not a usable identifier, and returns the local name.
func appendImportSpec(specs []string, path string) (string, []string) {
	base := pathBase(path)
	if token.IsIdentifier(base) {
		return base, append(specs, strconv.Quote(path))
	}
	return "webio", append(specs, "webio "+strconv.Quote(path))
}

// addImports records an edit inserting the given standard-library and
// external import specs into f. An existing parenthesized block is
// extended in place and go/format settles ordering; a fresh block is laid
// out with the conventional blank line between the two groups, which
// go/format preserves.
func (r *Rewriter) addImports(f *srcFile, std, ext []string) {
	var lastImport *ast.GenDecl
	for _, decl := range f.file.Decls {
		if gd, ok := decl.(*ast.GenDecl); ok && gd.Tok == token.IMPORT {
			lastImport = gd
		}
	}

	switch {
	case lastImport != nil && lastImport.Lparen.IsValid():
		var b strings.Builder
		for _, spec := range append(append([]string{}, std...), ext...) {
			b.WriteString("\t")
			b.WriteString(spec)
			b.WriteString("\n")
		}
		at := r.offset(lastImport.Rparen)
		f.edits = append(f.edits, textEdit{start: at, end: at, text: b.String()})

	case lastImport != nil:
		at := r.offset(lastImport.End())
		f.edits = append(f.edits, textEdit{start: at, end: at, text: "\n" + importBlock(std, ext)})

	default:
		at := r.offset(f.file.Name.End())
		f.edits = append(f.edits, textEdit{start: at, end: at, text: "\n\n" + importBlock(std, ext)})
	}
}

// importBlock renders a parenthesized import declaration with the
// conventional blank line between the standard-library and external
// groups.
func importBlock(std, ext []string) string {
	var b strings.Builder
	b.WriteString("import (\n")
	for _, spec := range std {
		b.WriteString("\t")
		b.WriteString(spec)
		b.WriteString("\n")
	}
	if len(std) > 0 && len(ext) > 0 {
		b.WriteString("\n")
	}
	for _, spec := range ext {
		b.WriteString("\t")
		b.WriteString(spec)
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

// pathBase returns the final element of an import path.
func pathBase(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
