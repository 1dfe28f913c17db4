package specdoc

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/apexspec-cli/internal/apexdoc"
	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/markdown"
)

// Placeholders used in generated documents.
const (
	// NoApexDoc replaces the description of an item without documentation.
	NoApexDoc = "No ApexDoc found, or no matching signature."

	// NotApplicable marks an empty section.
	NotApplicable = "N/A"

	// Blank fills an empty table cell.
	Blank = "-"
)

// Section titles.
const (
	TitleExternalReferences = "External References"
	TitleInnerClasses       = "Inner Classes"
	TitleProperties         = "Properties"
	TitleConstructors       = "Constructors"
	TitleMethods            = "Methods"
	TitleSource             = "Source"
	TitleRawData            = "Raw Data"
)

// Table headers.
var (
	HeaderTable            = []string{"Namespace", "Manageable State", "API Version", "Cyclic Redundancy Check", "Length of the Class without Comments"}
	ClassTable             = []string{"Annotation", "Modifier", "Name", "Parent Class", "Interfaces"}
	TriggerTable           = []string{"Before Insert", "Before Update", "Before Delete", "After Insert", "After Update", "After Delete", "After Undelete"}
	ApexDocTable           = []string{"Description"}
	ExternalReferenceTable = []string{"Namespace", "Name", "Variables", "Methods"}
	PropertyTable          = []string{"Annotations", "Modifier", "Type", "Name"}
	ConstructorTable       = []string{"Annotation", "Modifier", "Name", "Parameters"}
	MethodTable            = []string{"Annotation", "Modifier", "Return Type", "Name", "Parameters"}
)

// Options tune the generated document.
type Options struct {
	// Verbose appends the Apex source.
	Verbose bool
}

// Member is everything known about one compiled class or trigger.
type Member struct {
	Kind        domain.ApexKind
	Record      domain.ApexRecord
	SymbolTable domain.SymbolTable
}

// Build renders the spec document of a member.
func Build(m Member, opts Options) *markdown.Document {
	entries := apexdoc.ExtractAll(m.Record.Body, m.Kind)
	doc := markdown.New()

	doc.H1(m.Record.Name + m.Kind.Extension())
	doc.Table(HeaderTable, [][]string{headerRow(m)})

	switch m.Kind {
	case domain.ApexKindClass:
		doc.Table(ClassTable, [][]string{classRow(m.SymbolTable)})
	case domain.ApexKindTrigger:
		doc.Table(TriggerTable, [][]string{triggerRow(m.Record)})
	}

	var header *domain.DocEntry
	if len(entries.Header) > 0 {
		header = &entries.Header[0]
	}
	writeApexDoc(doc, header)
	doc.P("<br>")

	doc.H2(TitleExternalReferences)
	writeExternalReferences(doc, m.SymbolTable.ExternalReferences)

	if m.Kind == domain.ApexKindClass {
		writeInnerClasses(doc, m.SymbolTable.InnerClasses, entries.InnerClasses)
		writeSection(doc, TitleProperties, PropertyTable, propertyItems(m.SymbolTable.Properties), entries.Properties)
		writeSection(doc, TitleConstructors, ConstructorTable, constructorItems(m.SymbolTable.Constructors), entries.Constructors)
		writeSection(doc, TitleMethods, MethodTable, methodItems(m.SymbolTable.Methods), entries.Methods)
	}

	if opts.Verbose {
		doc.H2(TitleSource)
		doc.Code("java", apexdoc.NormalizeLineEndings(m.Record.Body))
	}
	return doc
}

// Render is Build followed by Markdown serialisation.
func Render(m Member, opts Options) string {
	return Build(m, opts).String()
}

func headerRow(m Member) []string {
	namespace := m.SymbolTable.Namespace
	if namespace == "" {
		namespace = m.Record.NamespacePrefix
	}
	return []string{
		orBlank(namespace),
		orBlank(m.Record.ManageableState),
		fmt.Sprintf("%.1f", m.Record.APIVersion),
		strconv.FormatFloat(m.Record.BodyCrc, 'f', -1, 64),
		strconv.Itoa(m.Record.LengthWithoutComments),
	}
}

func triggerRow(r domain.ApexRecord) []string {
	return []string{
		flag(r.UsageBeforeInsert),
		flag(r.UsageBeforeUpdate),
		flag(r.UsageBeforeDelete),
		flag(r.UsageAfterInsert),
		flag(r.UsageAfterUpdate),
		flag(r.UsageAfterDelete),
		flag(r.UsageAfterUndelete),
	}
}

func flag(set bool) string {
	if set {
		return "Y"
	}
	return ""
}
