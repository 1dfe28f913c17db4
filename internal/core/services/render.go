package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/apexspec-cli/internal/logger"
	"github.com/custodia-labs/apexspec-cli/internal/specdoc"
)

// Ensure Renderer implements the interface.
var _ driving.RenderService = (*Renderer)(nil)

// Renderer writes spec documents from archived records and symbol tables.
// It needs no API access, so documents can be regenerated offline.
type Renderer struct {
	archive  driven.Archive
	output   driven.Archive
	settings domain.AppSettings
}

// NewRenderer creates a renderer reading from archive and writing
// documents to output.
func NewRenderer(archive, output driven.Archive, settings domain.AppSettings) *Renderer {
	return &Renderer{
		archive:  archive,
		output:   output,
		settings: settings,
	}
}

// SymbolTableDir returns the on-disk directory symbol tables of kind are
// archived in.
func (r *Renderer) SymbolTableDir(kind domain.ApexKind) string {
	return filepath.Join(r.settings.Paths.Archive, filepath.FromSlash(symbolTablesPath(kind)))
}

// Render writes the document and raw dump of each named member. All
// archived members are rendered when names is empty. Members render in
// parallel, bounded by render.workers.
func (r *Renderer) Render(ctx context.Context, kind domain.ApexKind, names []string) ([]string, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, kind)
	}

	records, err := r.loadRecords(kind)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		if names, err = r.archivedNames(kind); err != nil {
			return nil, err
		}
	}

	var (
		mu   sync.Mutex
		docs = make([]string, 0, len(names))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, ok := records[name]
			if !ok {
				logger.Warn("No archived %s record named %s, skipping", kind, name)
				return nil
			}
			doc, err := r.renderMember(kind, record)
			if err != nil {
				return fmt.Errorf("render %s: %w", name, err)
			}
			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(docs)
	return docs, nil
}

func (r *Renderer) renderMember(kind domain.ApexKind, record domain.ApexRecord) (string, error) {
	raw, err := r.archive.ReadText(symbolTablePath(kind, record.Name))
	if err != nil {
		return "", fmt.Errorf("read symbol table: %w", err)
	}
	table, err := decodeSymbolTable([]byte(raw))
	if err != nil {
		return "", err
	}

	doc := specdoc.Build(specdoc.Member{
		Kind:        kind,
		Record:      record,
		SymbolTable: *table,
	}, specdoc.Options{Verbose: r.settings.Render.Verbose})

	dump, err := specdoc.RawDump(doc, []byte(raw))
	if err != nil {
		return "", err
	}

	target := documentPath(kind, record.Name)
	if err := r.output.WriteText(target, doc.String()); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	if err := r.archive.WriteText(rawDataPath(kind, record.Name), dump); err != nil {
		return "", fmt.Errorf("write raw data: %w", err)
	}
	logger.Debug("Rendered %s", target)

	return filepath.Join(r.settings.Paths.Output, filepath.FromSlash(target)), nil
}

// loadRecords indexes the archived records of kind by name.
func (r *Renderer) loadRecords(kind domain.ApexKind) (map[string]domain.ApexRecord, error) {
	raw, err := r.archive.ReadText(recordsPath(kind))
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	result, err := decodeQuery[domain.ApexRecord]([]byte(raw), false)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	records := make(map[string]domain.ApexRecord, len(result.Records))
	for _, rec := range result.Records {
		records[rec.Name] = rec
	}
	return records, nil
}

func (r *Renderer) archivedNames(kind domain.ApexKind) ([]string, error) {
	files, err := r.archive.List(symbolTablesPath(kind))
	if err != nil {
		return nil, fmt.Errorf("list symbol tables: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if name, ok := memberName(f); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func (r *Renderer) workers() int {
	if r.settings.Render.Workers < 1 {
		return 1
	}
	return r.settings.Render.Workers
}
