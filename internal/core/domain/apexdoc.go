package domain

import "strings"

// DocScope is the declaration kind an ApexDoc entry documents.
type DocScope string

// Available doc scopes.
const (
	DocScopeHeader      DocScope = "header"
	DocScopeInnerClass  DocScope = "inner class"
	DocScopeProperty    DocScope = "property"
	DocScopeConstructor DocScope = "constructor"
	DocScopeMethod      DocScope = "method"
)

// DescriptionTag is the tag whose value is the summary line.
const DescriptionTag = "description"

// DocTag is one "@key value" line of an ApexDoc comment.
type DocTag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DocEntry is one ApexDoc comment with the declaration it precedes.
type DocEntry struct {
	// Tags are in source order.
	Tags []DocTag `json:"tags"`

	// Name is the declared identifier.
	Name string `json:"name"`

	// Signature is the declaration text without the comment.
	Signature string `json:"signature"`

	// Key joins the entry against symbol table items.
	Key string `json:"key"`
}

// Description returns the value of the first description tag.
func (e DocEntry) Description() string {
	for _, t := range e.Tags {
		if strings.EqualFold(t.Key, DescriptionTag) {
			return t.Value
		}
	}
	return ""
}
