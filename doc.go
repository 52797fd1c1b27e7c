// Package webiokit is the build-time source-transformation toolkit of the
// WebIO runtime. Each subpackage can be used independently:
//
//   - template: Placeholder substitution with {{name}} syntax
//   - rewrite: Entry-point rewriting and compile-time template folding
//   - diag: Build-time diagnostics with codes and source positions
//   - config: webiogen tool configuration (TOML, YAML, JSON)
//   - gen: The generation pipeline over source trees
//   - bundle: Precompilation of template manifests
//   - watch: Change-triggered regeneration
//   - cmd/webiogen: The pre-build command-line tool
//
// # Quick Start
//
// Template substitution as a plain library call:
//
//	import "github.com/randalmurphal/webiokit/template"
//	out, _ := template.Replace("Hello {{name}}", template.Arg("name", "Ahmed"))
//
// An asynchronous entry point, rewritten by the webiogen pass:
//
//	//webio:main
//	func main() {
//		webio.Serve(routes())
//	}
//
// Run the pass before the build:
//
//	webiogen generate -w ./...
//
// # Design Philosophy
//
// webiokit follows these principles:
//
//   - Everything resolves at generation time; nothing executes at runtime
//   - Each package usable independently
//   - Identical semantics on the folded and the retained runtime path
//   - Every failure is a located, coded diagnostic; no silent fallback
package webiokit
