package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintOptions controls Fprint rendering.
type PrintOptions struct {
	// Color enables ANSI color on the position and code segments.
	Color bool
}

// Fprint writes each diagnostic on its own line in reported order. Callers
// wanting deterministic output should Sort first.
func Fprint(w io.Writer, l List, opts PrintOptions) {
	pos := color.New(color.Bold)
	code := color.New(color.FgRed)
	if !opts.Color {
		pos.DisableColor()
		code.DisableColor()
	}

	for _, d := range l {
		if d.Pos.IsValid() {
			pos.Fprintf(w, "%s:", d.Pos)
			fmt.Fprintf(w, " %s ", d.Message)
		} else {
			fmt.Fprintf(w, "%s ", d.Message)
		}
		code.Fprintf(w, "[%s]", d.Code.ID())
		fmt.Fprintln(w)
	}
}
