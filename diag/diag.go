package diag

import (
	"fmt"
	"go/token"
	"sort"
)

// Diagnostic is one build-time error: a kind, a source position, and a
// message. Diagnostic implements error so a single diagnostic can flow
// through ordinary error returns.
type Diagnostic struct {
	Code    Code
	Pos     token.Position
	Message string
}

// Error renders the diagnostic as path:line:col: message [WEB####].
// A diagnostic without a position omits the prefix.
func (d Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s [%s]", d.Pos, d.Message, d.Code.ID())
	}
	return fmt.Sprintf("%s [%s]", d.Message, d.Code.ID())
}

// List accumulates diagnostics for one invocation of the tool. The zero
// value is ready to use.
type List []Diagnostic

// Add appends a diagnostic built from a code, a position, and a formatted
// message.
func (l *List) Add(code Code, pos token.Position, format string, args ...any) {
	*l = append(*l, Diagnostic{
		Code:    code,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// Append appends an already-built diagnostic.
func (l *List) Append(ds ...Diagnostic) {
	*l = append(*l, ds...)
}

// Sort orders the list by file, offset, then code, so output is
// deterministic regardless of processing order.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		di, dj := l[i], l[j]
		if di.Pos.Filename != dj.Pos.Filename {
			return di.Pos.Filename < dj.Pos.Filename
		}
		if di.Pos.Offset != dj.Pos.Offset {
			return di.Pos.Offset < dj.Pos.Offset
		}
		return di.Code < dj.Code
	})
}

// Err returns the list as an error, or nil when the list is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Error implements the error interface for a non-empty list.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more diagnostics)", l[0].Error(), len(l)-1)
}
