package template

import (
	"fmt"
	"strings"
)

// Argument is one named template argument. A []Argument preserves the order
// arguments were written in, which is what gives the duplicate-name rule
// ("first wins") its meaning.
type Argument struct {
	Name  string
	Value any
}

// Arg constructs an Argument. It exists so call sites read as close to
// name = value pairs as Go allows:
//
//	template.Replace("Hello {{name}}", template.Arg("name", "Ahmed"))
func Arg(name string, value any) Argument {
	return Argument{Name: name, Value: value}
}

// Replace substitutes every {{name}} placeholder in content with the textual
// rendering of the matching argument's value and returns the result.
//
// Matching is by exact name equality. When duplicate names exist in args the
// first one wins; arguments no placeholder references are silently ignored.
// A placeholder with no matching argument fails with an
// UnknownPlaceholderError; an unclosed placeholder fails with an
// UnterminatedError. Content without placeholders is returned unchanged.
//
// Replace is pure: the same content and arguments always produce the same
// output, and nothing is retained between calls.
func Replace(content string, args ...Argument) (string, error) {
	tokens, err := scan(content)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return content, nil
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, tok := range tokens {
		value, ok := lookup(args, tok.name)
		if !ok {
			return "", &UnknownPlaceholderError{Name: tok.name, Offset: tok.start}
		}
		b.WriteString(content[last:tok.start])
		b.WriteString(Render(value))
		last = tok.end
	}
	b.WriteString(content[last:])
	return b.String(), nil
}

// MustReplace is Replace for templates known to be valid. It panics on
// error, which suits package-level defaults resolved at init time.
func MustReplace(content string, args ...Argument) string {
	out, err := Replace(content, args...)
	if err != nil {
		panic(err)
	}
	return out
}

// Placeholders returns the distinct placeholder names referenced by content,
// in first-appearance order. It shares the scanner with Replace, so an
// unclosed placeholder fails the same way.
func Placeholders(content string) ([]string, error) {
	tokens, err := scan(content)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(tokens))
	var names []string
	for _, tok := range tokens {
		if seen[tok.name] {
			continue
		}
		seen[tok.name] = true
		names = append(names, tok.name)
	}
	return names, nil
}

// Render yields the textual form of an argument value: strings pass through
// unchanged, everything else uses fmt.Sprint. The webiogen rewriter renders
// folded constants through this same function so the compile-time and
// runtime paths can never disagree.
func Render(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// lookup finds the first argument named name.
func lookup(args []Argument, name string) (any, bool) {
	for _, a := range args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}
