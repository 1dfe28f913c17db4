package apexdoc

import (
	"regexp"
	"strings"
)

// typeDecl is a class or interface declaration up to its opening brace.
var typeDecl = regexp.MustCompile(`(?i)\b(?:class|interface)\s+\w+[^{;]*\{`)

// span is the byte range of a type body, from its opening to its closing
// brace.
type span struct {
	open, close int
}

func (s span) contains(offset int) bool {
	return offset > s.open && offset < s.close
}

// innerSpans returns the bodies of the types declared inside the first,
// top-level type of source.
func innerSpans(source string) []span {
	masked := maskLiterals(source)
	decls := typeDecl.FindAllStringIndex(masked, -1)
	if len(decls) < 2 {
		return nil
	}

	outerClose := matchingBrace(masked, decls[0][1]-1)
	var spans []span
	for _, d := range decls[1:] {
		open := d[1] - 1
		if outerClose >= 0 && open > outerClose {
			break
		}
		end := matchingBrace(masked, open)
		if end < 0 {
			end = len(masked)
		}
		spans = append(spans, span{open: open, close: end})
	}
	return spans
}

// outside drops the entries that start inside one of spans.
func outside(found []located, spans []span) []located {
	if len(spans) == 0 {
		return found
	}
	kept := make([]located, 0, len(found))
	for _, f := range found {
		nested := false
		for _, s := range spans {
			if s.contains(f.offset) {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, f)
		}
	}
	return kept
}

// matchingBrace returns the index of the brace closing source[open], or -1.
func matchingBrace(source string, open int) int {
	depth := 0
	for i := open; i < len(source); i++ {
		switch source[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// maskLiterals blanks comments and string literals, keeping offsets and
// line breaks, so that braces and keywords inside them are ignored.
func maskLiterals(source string) string {
	b := []byte(source)
	blank := func(from, to int) {
		for i := from; i < to && i < len(b); i++ {
			if b[i] != '\n' {
				b[i] = ' '
			}
		}
	}

	for i := 0; i < len(b); i++ {
		switch {
		case strings.HasPrefix(source[i:], "//"):
			end := strings.IndexByte(source[i:], '\n')
			if end < 0 {
				end = len(source) - i
			}
			blank(i, i+end)
			i += end
		case strings.HasPrefix(source[i:], "/*"):
			end := strings.Index(source[i+2:], "*/")
			stop := len(source)
			if end >= 0 {
				stop = i + 2 + end + 2
			}
			blank(i, stop)
			i = stop - 1
		case source[i] == '\'':
			j := i + 1
			for j < len(source) && source[j] != '\'' && source[j] != '\n' {
				if source[j] == '\\' {
					j++
				}
				j++
			}
			blank(i, j+1)
			i = j
		}
	}
	return string(b)
}
