// Package rewrite implements the source-to-source transformations of the
// webiogen pre-build pass: entry-point rewriting and compile-time folding of
// template substitution calls.
//
// Input is ordinary Go source. Files are parsed with go/parser, transformed
// as a set of byte-offset text edits applied back-to-front, and the result
// is run through go/format, so output of a gofmt-clean input stays
// gofmt-clean.
//
// # Entry-point rewriting
//
// A top-level function carrying the //webio:main directive in its doc
// comment is the program's asynchronous entry point:
//
//	//webio:main
//	func main() {
//		webio.Serve(routes())
//	}
//
// The annotated function must live in package main, take no parameters, and
// return nothing or exactly error. The rewrite renames it out of the way
// when it is called main, consumes the directive, and synthesizes a
// conventional synchronous main that hands the function to the async
// runtime driver:
//
//	func main() {
//		if err := webio.Launch(webioMain); err != nil {
//			log.Fatalf("webio: %v", err)
//		}
//	}
//
// Launch blocks until the entry function's body runs to completion; a
// driver initialization failure aborts the process. Exactly one function
// per program may carry the directive. Because the directive is consumed,
// rewriting an already-rewritten file is the identity.
//
// # Folding
//
// Calls to the template package whose content is a string literal and whose
// arguments are all Arg calls with constant values are resolved at
// generation time. MustReplace, MustHTML, and configured alias functions
// fold to a plain string literal. Replace and HTML, which also return an
// error, fold when they are the sole right-hand side of a two-value
// assignment; elsewhere a constant call is checked for template errors but
// left in place, since the retained runtime call has identical semantics.
// Content sourced from a raw (backquoted) literal is taken verbatim, with
// no escape interpretation, and folded output keeps the raw form when it
// still can.
//
// All violations surface as diag diagnostics anchored at the offending
// construct; a file with diagnostics produces no output.
//
// # Location
//
// This package is part of the webiokit toolkit:
//
//	import "github.com/randalmurphal/webiokit/rewrite"
package rewrite
