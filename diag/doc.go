// Package diag defines the build-time diagnostics emitted by the webiogen
// source-generation pass.
//
// Every diagnostic carries a Code identifying the error kind, the source
// position of the offending construct, and a human-readable message. All
// diagnostics are fatal to the unit that produced them: a unit with
// diagnostics emits no output, and nothing is deferred to program runtime.
//
// Codes group by family: 1xxx for template substitution, 2xxx for
// entry-point rewriting, 3xxx for bundle manifests. Code.ID renders the
// stable WEB#### identifier used in printed output and editor tooling.
//
// # Location
//
// This package is part of the webiokit toolkit:
//
//	import "github.com/randalmurphal/webiokit/diag"
package diag
