package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/logger"
)

// watchDebounce collects bursts of events, e.g. a build writing a whole batch.
var watchDebounce = 250 * time.Millisecond

// watchSymbolTables re-renders members whose symbol tables change until
// the command context is cancelled.
func watchSymbolTables(cmd *cobra.Command, kind domain.ApexKind) error {
	dir := renderService.SymbolTableDir(kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	cmd.Println(mutedStyle.Render(fmt.Sprintf("Watching %s (Ctrl+C to stop)", dir)))

	return watchLoop(cmd.Context(), cmd, kind, watcher.Events, watcher.Errors)
}

func watchLoop(
	ctx context.Context,
	cmd *cobra.Command,
	kind domain.ApexKind,
	events <-chan fsnotify.Event,
	errs <-chan error,
) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if name, ok := memberFromEvent(event); ok {
				logger.Debug("watch: %s %s", event.Op, name)
				pending[name] = struct{}{}
				timer.Reset(watchDebounce)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		case <-timer.C:
			names := slices.Sorted(maps.Keys(pending))
			clear(pending)
			rerender(ctx, cmd, kind, names)
		}
	}
}

func rerender(ctx context.Context, cmd *cobra.Command, kind domain.ApexKind, names []string) {
	paths, err := renderService.Render(ctx, kind, names)
	if err != nil {
		cmd.Println(warningStyle.Render(fmt.Sprintf("render %s: %v", strings.Join(names, ", "), err)))
		return
	}
	for _, p := range paths {
		cmd.Println(successStyle.Render("updated ") + p)
	}
}

// memberFromEvent returns the member whose symbol table was created or
// written. Removals, chmods, hidden files and non-JSON files are ignored.
func memberFromEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return "", false
	}
	name, ok := strings.CutSuffix(base, ".json")
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
