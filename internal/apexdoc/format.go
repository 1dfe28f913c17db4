package apexdoc

import "regexp"

var (
	openParen  = regexp.MustCompile(`\(\n\s*`)
	closeParen = regexp.MustCompile(`\n\s*\)`)
	paramBreak = regexp.MustCompile(`,\n\s*`)
)

// FormatSignature indents multi-line parameter lists by two spaces and
// puts the closing parenthesis back at column zero. Single-line signatures
// are returned unchanged.
func FormatSignature(signature string) string {
	s := openParen.ReplaceAllString(signature, "(\n  ")
	s = closeParen.ReplaceAllString(s, "\n)")
	return paramBreak.ReplaceAllString(s, ",\n  ")
}
