package specdoc

import (
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/apexdoc"
	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

func classRow(t domain.SymbolTable) []string {
	names := make([]string, 0, len(t.Interfaces))
	for _, i := range t.Interfaces {
		names = append(names, i.Name)
	}
	return []string{
		annotationsCell(t.Annotations()),
		modifiersCell(t.Modifiers()),
		t.Name,
		orBlank(t.ParentClass),
		orBlank(strings.Join(names, ", ")),
	}
}

func externalReferenceRow(r domain.ExternalReference) []string {
	return []string{
		orBlank(r.Namespace),
		r.Name,
		namesCell(r.Variables),
		namesCell(r.Methods),
	}
}

func propertyItems(props []domain.Property) []item {
	items := make([]item, len(props))
	for i, p := range props {
		items[i] = item{
			title: p.Name,
			key:   apexdoc.NameKey(p.Name),
			row: []string{
				annotationsCell(p.Annotations),
				modifiersCell(p.Modifiers),
				p.Type,
				p.Name,
			},
		}
	}
	return items
}

func constructorItems(ctors []domain.Constructor) []item {
	items := make([]item, len(ctors))
	for i, c := range ctors {
		items[i] = item{
			title: c.Name,
			key:   apexdoc.SignatureKey(c.Name, c.Parameters),
			row: []string{
				annotationsCell(c.Annotations),
				modifiersCell(c.Modifiers),
				c.Name,
				parametersCell(c.Parameters),
			},
		}
	}
	return items
}

func methodItems(methods []domain.Method) []item {
	items := make([]item, len(methods))
	for i, m := range methods {
		returnType := m.ReturnType
		if returnType == "" {
			returnType = "void"
		}
		items[i] = item{
			title: m.Name,
			key:   apexdoc.SignatureKey(m.Name, m.Parameters),
			row: []string{
				annotationsCell(m.Annotations),
				modifiersCell(m.Modifiers),
				returnType,
				m.Name,
				parametersCell(m.Parameters),
			},
		}
	}
	return items
}

func annotationsCell(annotations []domain.Annotation) string {
	return orBlank(apexdoc.CanonicalAnnotations(annotations))
}

func modifiersCell(modifiers []string) string {
	return orBlank(apexdoc.CanonicalModifiers(modifiers))
}

func parametersCell(params []domain.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
	}
	return orBlank(strings.Join(parts, ",<br>"))
}

func namesCell(items []domain.NamedItem) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return orBlank(strings.Join(names, "<br>"))
}

func orBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return Blank
	}
	return s
}
