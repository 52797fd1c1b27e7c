package template

import "strings"

// Placeholder delimiters. These are fixed; the toolkit has no configurable
// delimiter support.
const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// scanState is the position of the scanner within the two-state scan loop.
type scanState uint8

const (
	stateLiteral scanState = iota
	stateInPlaceholder
)

// placeholder is a single {{name}} marker located in template content.
// start is the byte offset of the opening delimiter, end one past the
// closing delimiter, so content[start:end] is the full marker text.
// Placeholders are consumed immediately by substitution and never retained.
type placeholder struct {
	name  string
	start int
	end   int
}

// scan walks content once, left to right, and returns every placeholder in
// source order. In the literal state bytes are skipped until an opening
// delimiter; in the placeholder state bytes accumulate as the name until the
// first closing delimiter. Opening delimiters inside a placeholder are not
// special: there is no nesting, and the first }} always terminates the
// current name.
//
// Ending the scan inside a placeholder yields an UnterminatedError anchored
// at the opening delimiter.
func scan(content string) ([]placeholder, error) {
	var (
		tokens []placeholder
		state  = stateLiteral
		open   int // offset of the {{ that started the current placeholder
		name   int // offset of the first byte of the current name
	)

	i := 0
	for i < len(content) {
		switch state {
		case stateLiteral:
			if strings.HasPrefix(content[i:], openDelim) {
				state = stateInPlaceholder
				open = i
				i += len(openDelim)
				name = i
				continue
			}
			i++

		case stateInPlaceholder:
			if strings.HasPrefix(content[i:], closeDelim) {
				tokens = append(tokens, placeholder{
					name:  content[name:i],
					start: open,
					end:   i + len(closeDelim),
				})
				state = stateLiteral
				i += len(closeDelim)
				continue
			}
			i++
		}
	}

	if state == stateInPlaceholder {
		return nil, &UnterminatedError{Offset: open}
	}
	return tokens, nil
}
