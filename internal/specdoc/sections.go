package specdoc

import (
	"slices"
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/apexdoc"
	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/markdown"
)

// item is one symbol table entry of a section.
type item struct {
	title string
	key   string
	row   []string
}

func writeSection(doc *markdown.Document, title string, headers []string, items []item, entries []domain.DocEntry) {
	doc.H2(title)
	if len(items) == 0 {
		doc.P(NotApplicable)
		return
	}

	sortItems(items)
	doc.Table(headers, rowsOf(items))

	index := indexEntries(entries)
	for _, it := range items {
		doc.H3(it.title)
		writeApexDoc(doc, index[it.key])
	}
}

func writeInnerClasses(doc *markdown.Document, classes []domain.SymbolTable, entries []domain.DocEntry) {
	doc.H2(TitleInnerClasses)
	if len(classes) == 0 {
		doc.P(NotApplicable)
		return
	}

	items := make([]item, len(classes))
	byKey := make(map[string]domain.SymbolTable, len(classes))
	for i, c := range classes {
		items[i] = item{title: c.Name, key: innerClassKey(c.Name), row: classRow(c)}
		byKey[items[i].key] = c
	}
	sortItems(items)
	doc.Table(ClassTable, rowsOf(items))

	index := indexEntries(entries)
	for _, it := range items {
		inner := byKey[it.key]
		doc.H3(it.title)
		writeApexDoc(doc, index[it.key])

		doc.H4(TitleExternalReferences)
		writeExternalReferences(doc, inner.ExternalReferences)
		doc.H4(TitleConstructors)
		writeTable(doc, ConstructorTable, constructorItems(inner.Constructors))
		doc.H4(TitleProperties)
		writeTable(doc, PropertyTable, propertyItems(inner.Properties))
	}
}

func writeExternalReferences(doc *markdown.Document, refs []domain.ExternalReference) {
	items := make([]item, len(refs))
	for i, r := range refs {
		items[i] = item{title: r.Name, row: externalReferenceRow(r)}
	}
	writeTable(doc, ExternalReferenceTable, items)
}

// writeTable writes a sorted table, or N/A without items.
func writeTable(doc *markdown.Document, headers []string, items []item) {
	if len(items) == 0 {
		doc.P(NotApplicable)
		return
	}
	sortItems(items)
	doc.Table(headers, rowsOf(items))
}

// writeApexDoc writes the description table of an entry, followed by its
// tags and signature. A nil entry renders the NoApexDoc placeholder.
func writeApexDoc(doc *markdown.Document, entry *domain.DocEntry) {
	if entry == nil {
		doc.Table(ApexDocTable, [][]string{{NoApexDoc}})
		return
	}

	doc.Table(ApexDocTable, [][]string{{orBlank(entry.Description())}})
	doc.UL(tagItems(entry.Tags))
	if entry.Signature != "" {
		doc.Code("java", apexdoc.FormatSignature(entry.Signature))
	}
}

func tagItems(tags []domain.DocTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "**`" + t.Key + "`** : " + t.Value
	}
	return out
}

// indexEntries maps join keys to entries. The first entry of a key wins.
func indexEntries(entries []domain.DocEntry) map[string]*domain.DocEntry {
	index := make(map[string]*domain.DocEntry, len(entries))
	for i := range entries {
		if _, seen := index[entries[i].Key]; !seen && entries[i].Key != "" {
			index[entries[i].Key] = &entries[i]
		}
	}
	return index
}

func sortItems(items []item) {
	slices.SortStableFunc(items, func(a, b item) int {
		return slices.Compare(a.row, b.row)
	})
}

func rowsOf(items []item) [][]string {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = it.row
	}
	return rows
}

// innerClassKey is the lower-cased simple name. Symbol tables may qualify
// inner classes with the outer class name.
func innerClassKey(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return apexdoc.NameKey(name)
}
