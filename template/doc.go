// Package template provides placeholder substitution for the WebIO toolkit.
//
// Templates are plain strings containing {{name}} placeholders. Substitution
// replaces each placeholder with the textual rendering of the matching
// argument, in a single left-to-right pass:
//
//	out, err := template.Replace("Hello {{name}}", template.Arg("name", "Ahmed"))
//	// out: "Hello Ahmed"
//
// # Syntax
//
// Placeholders are written as {{identifier}}. There are no modifiers, no
// helper calls, and no nesting: after an opening {{ the first }} always
// closes the placeholder. Text outside placeholders passes through verbatim,
// so templates can hold arbitrary markup or code. Raw (backquoted) string
// literals are the natural carrier for such content since their text is
// taken without escape interpretation.
//
// # Arguments
//
// Arguments are an ordered list of (name, value) pairs built with Arg. Every
// placeholder must resolve to an argument; a placeholder with no matching
// argument fails with ErrUnknownPlaceholder. When the same name appears more
// than once in the argument list, the first occurrence wins; later
// duplicates are deliberately ignored. Arguments referenced by no
// placeholder are permitted and ignored.
//
// Values render with fmt.Sprint, so strings pass through unchanged and other
// types use their default formatting.
//
// # Aliases
//
// HTML is a semantic alias for Replace: identical behavior, different name,
// so call sites that build markup can say so. Domain-specific wrappers
// follow the same pattern:
//
//	func css(content string, args ...template.Argument) (string, error) {
//		return template.Replace(content, args...)
//	}
//
// The webiogen tool folds calls to Replace, HTML, and configured wrapper
// names into plain string literals when all inputs are compile-time
// constants; see the rewrite package.
//
// # Errors
//
// Substitution fails only two ways: an opening {{ with no closing }} before
// the end of content (ErrUnterminated) and a placeholder whose name matches
// no argument (ErrUnknownPlaceholder). Both carry the byte offset of the
// offending opening delimiter for precise reporting.
//
// # Location
//
// This package is part of the webiokit toolkit:
//
//	import "github.com/randalmurphal/webiokit/template"
package template
