package rewrite

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

// literalContent extracts the text of a string literal. Backquoted (raw)
// literals are taken verbatim with no escape interpretation, so embedded
// quotes and backslashes pass through unchanged; carriage returns are
// discarded, matching the compiler's treatment of raw literal values.
// Interpreted literals go through strconv.Unquote. The second result
// reports whether the literal was raw.
func literalContent(lit *ast.BasicLit) (content string, raw bool, err error) {
	if lit.Kind != token.STRING {
		return "", false, strconv.ErrSyntax
	}
	if strings.HasPrefix(lit.Value, "`") {
		inner := strings.TrimSuffix(strings.TrimPrefix(lit.Value, "`"), "`")
		return strings.ReplaceAll(inner, "\r", ""), true, nil
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false, err
	}
	return s, false, nil
}

// quoteResult renders a folded result as literal source text, keeping the
// author's raw form when the result can still be a raw literal.
func quoteResult(s string, raw bool) string {
	if raw && !strings.ContainsAny(s, "`\r") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
