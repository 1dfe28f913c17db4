package driving

import (
	"context"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// SpecService builds documentation for every unmanaged member of a kind.
type SpecService interface {
	// Build retrieves, compiles and renders all members of kind.
	// The report is returned along with the first batch error, if any.
	Build(ctx context.Context, kind domain.ApexKind) (*domain.BuildReport, error)
}

// RenderService renders documents from archived records and symbol tables.
type RenderService interface {
	// Render writes documents for the named members, or for every archived
	// symbol table when names is empty. Returns the written document paths.
	Render(ctx context.Context, kind domain.ApexKind, names []string) ([]string, error)

	// SymbolTableDir returns the directory symbol tables of kind are archived in.
	SymbolTableDir(kind domain.ApexKind) string
}
