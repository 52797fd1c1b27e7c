package template

// HTML substitutes placeholders in an HTML fragment. It is Replace under a
// name that lets call sites state what the content is; the webiogen folding
// pass recognizes both. No escaping or sanitizing is performed: values are
// rendered exactly as Replace renders them, so callers interpolating
// untrusted input must escape it themselves.
func HTML(content string, args ...Argument) (string, error) {
	return Replace(content, args...)
}

// MustHTML is HTML for templates known to be valid. It panics on error.
func MustHTML(content string, args ...Argument) string {
	return MustReplace(content, args...)
}
