package apexdoc

import (
	"sort"
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// Entries groups the ApexDoc entries of one source file by scope.
type Entries struct {
	Header       []domain.DocEntry
	InnerClasses []domain.DocEntry
	Properties   []domain.DocEntry
	Constructors []domain.DocEntry
	Methods      []domain.DocEntry
}

// Scope returns the entries of one scope.
func (e Entries) Scope(scope domain.DocScope) []domain.DocEntry {
	switch scope {
	case domain.DocScopeHeader:
		return e.Header
	case domain.DocScopeInnerClass:
		return e.InnerClasses
	case domain.DocScopeProperty:
		return e.Properties
	case domain.DocScopeConstructor:
		return e.Constructors
	case domain.DocScopeMethod:
		return e.Methods
	default:
		return nil
	}
}

// NormalizeLineEndings converts CRLF and CR to LF.
func NormalizeLineEndings(source string) string {
	return lineEndings.ReplaceAllString(source, "\n")
}

// Extract returns one entry per doc comment immediately followed by a
// declaration matching the bundle. It returns an empty slice when nothing
// matches.
func Extract(source string, bundle *Bundle) []domain.DocEntry {
	return entriesOf(extract(NormalizeLineEndings(source), bundle))
}

// ExtractAll extracts every scope relevant to kind. Triggers only carry
// a header.
func ExtractAll(source string, kind domain.ApexKind) Entries {
	source = NormalizeLineEndings(source)

	switch kind {
	case domain.ApexKindClass:
		// Members of inner classes are not members of the class itself.
		nested := innerSpans(source)
		return Entries{
			Header:       entriesOf(extract(source, ClassHeader)),
			InnerClasses: entriesOf(extract(source, InnerClass)),
			Properties:   entriesOf(outside(mergeByOffset(extract(source, Property), extract(source, PropertyAccessor)), nested)),
			Constructors: entriesOf(outside(extract(source, Constructor), nested)),
			Methods:      entriesOf(outside(extract(source, Method), nested)),
		}
	case domain.ApexKindTrigger:
		return Entries{
			Header: entriesOf(extract(source, TriggerHeader)),
		}
	default:
		return Entries{}
	}
}

// located is an entry with the offset of its doc comment.
type located struct {
	offset int
	entry  domain.DocEntry
}

func extract(source string, b *Bundle) []located {
	if b == nil {
		return nil
	}

	matches := b.pattern.FindAllStringSubmatchIndex(source, -1)
	out := make([]located, 0, len(matches))
	for _, m := range matches {
		doc := group(source, m, b.doc)
		decl := group(source, m, b.decl)
		declName := group(source, m, b.name)

		if b.Role == RoleMethod && isModifierKeyword(group(source, m, b.typ)) {
			// A constructor read as a method returning its own access modifier.
			continue
		}

		signature := normalizeSignature(decl)
		out = append(out, located{
			offset: m[2*b.doc],
			entry: domain.DocEntry{
				Tags:      ParseTags(doc),
				Name:      declName,
				Signature: signature,
				Key:       keyFor(b.Role, declName, signature),
			},
		})
	}
	return out
}

func group(source string, m []int, idx int) string {
	if idx < 0 || 2*idx+1 >= len(m) || m[2*idx] < 0 {
		return ""
	}
	return source[m[2*idx]:m[2*idx+1]]
}

func keyFor(role Role, declName, signature string) string {
	switch role {
	case RoleConstructor, RoleMethod:
		return NormalizeKey(signature)
	default:
		return NameKey(declName)
	}
}

// normalizeSignature trims every line of a declaration and drops blank lines.
func normalizeSignature(decl string) string {
	lines := strings.Split(strings.TrimSpace(decl), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func mergeByOffset(a, b []located) []located {
	merged := append(append([]located{}, a...), b...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].offset < merged[j].offset
	})
	return merged
}

func entriesOf(found []located) []domain.DocEntry {
	entries := make([]domain.DocEntry, len(found))
	for i, f := range found {
		entries[i] = f.entry
	}
	return entries
}
