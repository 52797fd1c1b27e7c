package diag

import "fmt"

// Code identifies an error kind. Codes are stable: printed output, tests,
// and editor integrations key on them.
type Code uint16

const (
	// CodeNone is the zero value and never appears in a real diagnostic.
	CodeNone Code = 0

	// Template substitution (1xxx).

	// UnterminatedPlaceholder: an opening {{ with no closing }} before the
	// end of the template content.
	UnterminatedPlaceholder Code = 1001
	// UnknownPlaceholder: a placeholder name with no matching argument.
	UnknownPlaceholder Code = 1002

	// Entry-point rewriting (2xxx).

	// MalformedEntrySignature: an annotated entry function with parameters,
	// a receiver, type parameters, a disallowed return shape, no body, or
	// declared outside package main.
	MalformedEntrySignature Code = 2001
	// DuplicateEntryPoint: more than one function carries the entry
	// annotation in one program.
	DuplicateEntryPoint Code = 2002
	// EntryMainConflict: an unannotated func main coexists with an
	// annotated entry function, so the synthesized bootstrap would collide.
	EntryMainConflict Code = 2003

	// Bundle manifests (3xxx).

	// ManifestInvalid: a bundle manifest that cannot be parsed or fails
	// validation.
	ManifestInvalid Code = 3001
)

// String returns the kind name of the code.
func (c Code) String() string {
	switch c {
	case UnterminatedPlaceholder:
		return "UnterminatedPlaceholder"
	case UnknownPlaceholder:
		return "UnknownPlaceholder"
	case MalformedEntrySignature:
		return "MalformedEntrySignature"
	case DuplicateEntryPoint:
		return "DuplicateEntryPoint"
	case EntryMainConflict:
		return "EntryMainConflict"
	case ManifestInvalid:
		return "ManifestInvalid"
	default:
		return fmt.Sprintf("Code(%d)", uint16(c))
	}
}

// ID returns the stable printed identifier, e.g. "WEB1001".
func (c Code) ID() string {
	return fmt.Sprintf("WEB%04d", uint16(c))
}
