package apexdoc

import (
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// SignatureKey is the canonical join key of a method or constructor:
//
//	name(type name, type name)
//
// lower-cased, with generic arguments removed and whitespace collapsed.
// It is used for both sides of the join, the symbol table's structured
// parameters and the parameters parsed from source.
func SignatureKey(methodName string, params []domain.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		typ := collapseSpace(StripGenerics(p.Type))
		parts[i] = strings.ToLower(strings.TrimSpace(typ + " " + p.Name))
	}
	return strings.ToLower(strings.TrimSpace(methodName)) + "(" + strings.Join(parts, ", ") + ")"
}

// NormalizeKey derives the join key from a declaration signature by
// dropping annotations, modifiers and the return type.
func NormalizeKey(signature string) string {
	methodName, params, ok := ParseSignature(signature)
	if !ok {
		return ""
	}
	return SignatureKey(methodName, params)
}

// NameKey is the join key of properties, inner classes and headers.
func NameKey(declName string) string {
	return strings.ToLower(strings.TrimSpace(declName))
}

// StripGenerics removes every balanced <...> group, including nested ones.
// Unbalanced closing brackets are kept. StripGenerics is idempotent.
func StripGenerics(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseSignature recovers the declared name and parameters of a method or
// constructor signature. Leading annotations, with or without arguments,
// are skipped. ok is false when there is no parameter list.
func ParseSignature(signature string) (methodName string, params []domain.Parameter, ok bool) {
	signature = stripAnnotations(signature)
	open := strings.IndexByte(signature, '(')
	if open < 0 {
		return "", nil, false
	}
	closing := strings.LastIndexByte(signature, ')')
	if closing < open {
		return "", nil, false
	}

	head := strings.Fields(signature[:open])
	if len(head) == 0 {
		return "", nil, false
	}
	methodName = head[len(head)-1]

	for _, raw := range splitTopLevel(signature[open+1:closing], ',') {
		if p, ok := parseParameter(raw); ok {
			params = append(params, p)
		}
	}
	return methodName, params, true
}

// stripAnnotations removes leading @Name and @Name(...) prefixes. Quoted
// annotation values may contain parentheses.
func stripAnnotations(s string) string {
	for {
		s = strings.TrimLeft(s, " \t\n")
		if !strings.HasPrefix(s, "@") {
			return s
		}
		i := 1
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		rest := strings.TrimLeft(s[i:], " \t\n")
		if strings.HasPrefix(rest, "(") {
			end := closingParen(rest)
			if end < 0 {
				return s
			}
			rest = rest[end+1:]
		}
		s = rest
	}
}

// closingParen returns the index of the parenthesis closing s[0], or -1.
func closingParen(s string) int {
	depth := 0
	quoted := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quoted && c == '\\':
			i++
		case c == '\'':
			quoted = !quoted
		case quoted:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// parseParameter splits "final Map<Id, Account> accounts" into type and name.
func parseParameter(raw string) (domain.Parameter, bool) {
	fields := strings.Fields(raw)
	if len(fields) > 0 && strings.EqualFold(fields[0], "final") {
		fields = fields[1:]
	}
	if len(fields) < 2 {
		return domain.Parameter{}, false
	}
	return domain.Parameter{
		Type: strings.Join(fields[:len(fields)-1], " "),
		Name: fields[len(fields)-1],
	}, true
}

// splitTopLevel splits s on sep outside of angle brackets.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if strings.TrimSpace(s[start:]) != "" || len(parts) > 0 {
		parts = append(parts, s[start:])
	}
	return parts
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
