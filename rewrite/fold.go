package rewrite

import (
	"errors"
	"go/ast"
	"go/token"
	"strconv"
	"unicode/utf8"

	"github.com/randalmurphal/webiokit/diag"
	"github.com/randalmurphal/webiokit/template"
)

// callKind classifies a recognized template call by its result shape.
type callKind uint8

const (
	callNone  callKind = iota
	callValue          // single string result: MustReplace, MustHTML
	callPair           // (string, error): Replace, HTML, configured aliases
)

// foldFile resolves constant template calls in f at generation time.
// Value-shaped calls fold to a string literal anywhere. Pair-shaped calls
// fold only as the sole right-hand side of a two-value assignment, where
// the call becomes the literal plus a nil error; elsewhere a constant pair
// call is checked for template errors and left in place, since the
// retained runtime call behaves identically. Calls with any non-constant
// input are skipped entirely.
func (r *Rewriter) foldFile(f *srcFile, diags *diag.List) {
	tmpl, dot, imported := templateImportName(f.file, r.opts.TemplateImport)
	if !imported && len(r.opts.Aliases) == 0 {
		return
	}

	// Two-value assignments whose sole right-hand side is a call.
	assigned := make(map[*ast.CallExpr]bool)
	ast.Inspect(f.file, func(n ast.Node) bool {
		if as, ok := n.(*ast.AssignStmt); ok && len(as.Rhs) == 1 && len(as.Lhs) == 2 {
			if call, ok := as.Rhs[0].(*ast.CallExpr); ok {
				assigned[call] = true
			}
		}
		return true
	})

	var folded []span
	ast.Inspect(f.file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		kind := r.classifyCall(call, tmpl, dot)
		if kind == callNone {
			return true
		}
		content, contentLit, raw, args, constant := r.constantCall(call, tmpl, dot)
		if !constant {
			return true
		}

		out, err := template.Replace(content, args...)
		if err != nil {
			r.foldError(contentLit, err, diags)
			return false
		}

		lit := quoteResult(out, raw)
		switch {
		case kind == callValue:
			f.edits = append(f.edits, textEdit{
				start: r.offset(call.Pos()),
				end:   r.offset(call.End()),
				text:  lit,
			})
			folded = append(folded, span{call.Pos(), call.End()})
		case assigned[call]:
			f.edits = append(f.edits, textEdit{
				start: r.offset(call.Pos()),
				end:   r.offset(call.End()),
				text:  lit + ", error(nil)",
			})
			folded = append(folded, span{call.Pos(), call.End()})
		}
		return false
	})

	// Folding can strip the last reference to the template package; the
	// import has to go with it or the output will not compile.
	if imported && !dot && len(folded) > 0 && !referencesOutside(f.file, tmpl, folded) {
		r.removeImport(f, r.opts.TemplateImport)
	}
}

// span is a half-open source range in token.Pos space.
type span struct {
	start token.Pos
	end   token.Pos
}

func (s span) contains(pos token.Pos) bool {
	return pos >= s.start && pos < s.end
}

// referencesOutside reports whether any identifier equal to the template
// package's local name survives outside the folded regions. Import spec
// names do not count as uses.
func referencesOutside(file *ast.File, tmpl string, folded []span) bool {
	importNames := make(map[token.Pos]bool)
	for _, imp := range file.Imports {
		if imp.Name != nil {
			importNames[imp.Name.Pos()] = true
		}
	}

	survives := false
	ast.Inspect(file, func(n ast.Node) bool {
		ident, ok := n.(*ast.Ident)
		if !ok || ident.Name != tmpl || importNames[ident.Pos()] {
			return true
		}
		inFold := false
		for _, s := range folded {
			if s.contains(ident.Pos()) {
				inFold = true
				break
			}
		}
		if !inFold {
			survives = true
		}
		return !survives
	})
	return survives
}

// removeImport records an edit deleting the import of path from f: the
// spec alone when its block holds others, the whole declaration otherwise.
func (r *Rewriter) removeImport(f *srcFile, path string) {
	for _, decl := range f.file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.IMPORT {
			continue
		}
		for _, spec := range gd.Specs {
			imp, ok := spec.(*ast.ImportSpec)
			if !ok {
				continue
			}
			if p, err := strconv.Unquote(imp.Path.Value); err != nil || p != path {
				continue
			}

			if len(gd.Specs) == 1 {
				start, end := r.offset(gd.Pos()), r.offset(gd.End())
				if end < len(f.src) && f.src[end] == '\n' {
					end++
				}
				// The entry pass may have anchored import insertions on
				// this declaration; move them past the deleted range so
				// they survive.
				for i := range f.edits {
					e := &f.edits[i]
					if e.start == e.end && e.start >= start && e.start < end {
						e.start, e.end = end, end
					}
				}
				f.edits = append(f.edits, textEdit{start: start, end: end})
				return
			}
			start, end := r.offset(imp.Pos()), r.offset(imp.End())
			if end < len(f.src) && f.src[end] == '\n' {
				end++
			}
			f.edits = append(f.edits, textEdit{start: start, end: end})
			return
		}
	}
}

// templateImportName reports the local name the template package is
// imported under in file, or whether it is dot-imported.
func templateImportName(file *ast.File, path string) (name string, dot, imported bool) {
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != path {
			continue
		}
		if imp.Name == nil {
			return pathBase(path), false, true
		}
		switch imp.Name.Name {
		case ".":
			return "", true, true
		case "_":
			continue
		default:
			return imp.Name.Name, false, true
		}
	}
	return "", false, false
}

// classifyCall matches a call expression against the recognized template
// entry points and the configured alias names.
func (r *Rewriter) classifyCall(call *ast.CallExpr, tmpl string, dot bool) callKind {
	switch fn := call.Fun.(type) {
	case *ast.SelectorExpr:
		ident, ok := fn.X.(*ast.Ident)
		if !ok || tmpl == "" || ident.Name != tmpl {
			return callNone
		}
		return kindOf(fn.Sel.Name)
	case *ast.Ident:
		if dot {
			if kind := kindOf(fn.Name); kind != callNone {
				return kind
			}
		}
		for _, alias := range r.opts.Aliases {
			if fn.Name == alias {
				return callPair
			}
		}
	}
	return callNone
}

func kindOf(name string) callKind {
	switch name {
	case "MustReplace", "MustHTML":
		return callValue
	case "Replace", "HTML":
		return callPair
	}
	return callNone
}

// constantCall extracts the compile-time invocation from call: a
// string-literal content argument followed by Arg calls whose names and
// values are all basic constants. constant is false when any input needs
// runtime evaluation.
func (r *Rewriter) constantCall(call *ast.CallExpr, tmpl string, dot bool) (content string, contentLit *ast.BasicLit, raw bool, args []template.Argument, constant bool) {
	if len(call.Args) == 0 || call.Ellipsis.IsValid() {
		return
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return
	}
	content, raw, err := literalContent(lit)
	if err != nil {
		return "", nil, false, nil, false
	}

	for _, arg := range call.Args[1:] {
		argCall, ok := arg.(*ast.CallExpr)
		if !ok || !isArgCall(argCall, tmpl, dot) || len(argCall.Args) != 2 {
			return "", nil, false, nil, false
		}
		nameLit, ok := argCall.Args[0].(*ast.BasicLit)
		if !ok || nameLit.Kind != token.STRING {
			return "", nil, false, nil, false
		}
		name, _, err := literalContent(nameLit)
		if err != nil {
			return "", nil, false, nil, false
		}
		value, ok := constValue(argCall.Args[1])
		if !ok {
			return "", nil, false, nil, false
		}
		args = append(args, template.Arg(name, value))
	}
	return content, lit, raw, args, true
}

// isArgCall reports whether call is the template package's Arg.
func isArgCall(call *ast.CallExpr, tmpl string, dot bool) bool {
	switch fn := call.Fun.(type) {
	case *ast.SelectorExpr:
		ident, ok := fn.X.(*ast.Ident)
		return ok && tmpl != "" && ident.Name == tmpl && fn.Sel.Name == "Arg"
	case *ast.Ident:
		return dot && fn.Name == "Arg"
	}
	return false
}

// constValue evaluates a basic constant expression. The produced value
// renders through template.Render exactly as the equivalent runtime
// argument would, so folding never changes observable output.
func constValue(expr ast.Expr) (any, bool) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		switch e.Kind {
		case token.STRING:
			s, _, err := literalContent(e)
			return s, err == nil
		case token.INT:
			v, err := strconv.ParseInt(e.Value, 0, 64)
			return v, err == nil
		case token.FLOAT:
			v, err := strconv.ParseFloat(e.Value, 64)
			return v, err == nil
		case token.CHAR:
			s, err := strconv.Unquote(e.Value)
			if err != nil || s == "" {
				return nil, false
			}
			r, _ := utf8.DecodeRuneInString(s)
			return r, true
		}
	case *ast.Ident:
		switch e.Name {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	case *ast.UnaryExpr:
		if e.Op != token.SUB && e.Op != token.ADD {
			return nil, false
		}
		v, ok := constValue(e.X)
		if !ok {
			return nil, false
		}
		switch n := v.(type) {
		case int64:
			if e.Op == token.SUB {
				return -n, true
			}
			return n, true
		case float64:
			if e.Op == token.SUB {
				return -n, true
			}
			return n, true
		}
	}
	return nil, false
}

// foldError converts a template error into a diagnostic anchored at the
// content literal.
func (r *Rewriter) foldError(lit *ast.BasicLit, err error, diags *diag.List) {
	pos := r.position(lit.Pos())
	var unknown *template.UnknownPlaceholderError
	var unterminated *template.UnterminatedError
	switch {
	case errors.As(err, &unknown):
		diags.Add(diag.UnknownPlaceholder, pos, "%s", err)
	case errors.As(err, &unterminated):
		diags.Add(diag.UnterminatedPlaceholder, pos, "%s", err)
	default:
		diags.Add(diag.UnknownPlaceholder, pos, "template error: %s", err)
	}
}
