package apexdoc

import (
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// modifierRank orders modifiers the way Apex style guides write them.
var modifierRank = map[string]int{
	"private":           0,
	"protected":         0,
	"public":            0,
	"global":            0,
	"webservice":        1,
	"abstract":          2,
	"virtual":           2,
	"override":          2,
	"static":            3,
	"transient":         4,
	"final":             5,
	"with sharing":      6,
	"without sharing":   6,
	"inherited sharing": 6,
}

// droppedModifiers never appear in rendered signatures.
var droppedModifiers = map[string]bool{
	"testmethod": true,
}

// annotationCase maps annotation names to their conventional spelling.
var annotationCase = map[string]string{
	"istest":    "isTest",
	"testsetup": "testSetup",
}

var sharingPhrase = regexp.MustCompile(`(?i)\b(with|without|inherited)\s+sharing\b`)

var modifierKeywords = map[string]bool{
	"private": true, "protected": true, "public": true, "global": true,
	"abstract": true, "virtual": true, "override": true, "static": true,
	"transient": true, "final": true, "testmethod": true, "webservice": true,
	"with": true, "without": true, "inherited": true,
}

func isModifierKeyword(word string) bool {
	return modifierKeywords[strings.ToLower(word)]
}

// CanonicalModifiers orders modifiers, lower-cases known keywords and
// drops testMethod. Items may hold several space separated words.
// It returns "" when nothing is left.
func CanonicalModifiers(modifiers []string) string {
	var words []string
	for _, m := range modifiers {
		m = sharingPhrase.ReplaceAllStringFunc(m, func(s string) string {
			return strings.ToLower(strings.Join(strings.Fields(s), "_"))
		})
		for _, w := range strings.Fields(m) {
			w = strings.ReplaceAll(w, "_", " ")
			if droppedModifiers[strings.ToLower(w)] {
				continue
			}
			if _, known := modifierRank[strings.ToLower(w)]; known {
				w = strings.ToLower(w)
			}
			words = append(words, w)
		}
	}

	sort.SliceStable(words, func(i, j int) bool {
		return rank(words[i]) < rank(words[j])
	})
	return strings.Join(words, " ")
}

func rank(word string) int {
	if r, ok := modifierRank[word]; ok {
		return r
	}
	return len(modifierRank)
}

// CanonicalAnnotation returns "@name" with conventional casing.
func CanonicalAnnotation(a domain.Annotation) string {
	if name, ok := annotationCase[strings.ToLower(a.Name)]; ok {
		return "@" + name
	}
	return "@" + a.Name
}

// CanonicalAnnotations renders annotations space separated, or "".
func CanonicalAnnotations(annotations []domain.Annotation) string {
	names := make([]string, len(annotations))
	for i, a := range annotations {
		names[i] = CanonicalAnnotation(a)
	}
	return strings.Join(names, " ")
}
