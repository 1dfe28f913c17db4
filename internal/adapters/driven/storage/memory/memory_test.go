package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

func TestArchive_WriteRead(t *testing.T) {
	a := NewArchive()

	require.NoError(t, a.WriteText("class/records.json", "{}"))
	content, err := a.ReadText("class/./records.json")

	require.NoError(t, err)
	assert.Equal(t, "{}", content)
}

func TestArchive_ReadMissing(t *testing.T) {
	_, err := NewArchive().ReadText("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchive_List(t *testing.T) {
	a := NewArchive()
	require.NoError(t, a.WriteText("class/symbol-table/B.json", "{}"))
	require.NoError(t, a.WriteText("class/symbol-table/A.json", "{}"))
	require.NoError(t, a.WriteText("class/symbol-table/deep/C.json", "{}"))
	require.NoError(t, a.WriteText("class/records.json", "{}"))

	names, err := a.List("class/symbol-table")
	require.NoError(t, err)
	assert.Equal(t, []string{"A.json", "B.json"}, names)

	empty, err := a.List("trigger/symbol-table")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.Len(t, a.Paths(), 4)
}

func TestRunStore_SaveGet(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	run := domain.BatchRun{ID: "r1", Kind: domain.ApexKindClass, Stage: domain.StageCreatingContainer}
	require.NoError(t, store.Save(ctx, run))
	run.Stage = domain.StageDone
	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StageDone, got.Stage)
	assert.Equal(t, 2, store.Saves())

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_ListOrderAndFilter(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.BatchRun{ID: "old", Kind: domain.ApexKindClass, StartedAt: base}))
	require.NoError(t, store.Save(ctx, domain.BatchRun{ID: "new", Kind: domain.ApexKindClass, StartedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.BatchRun{ID: "trg", Kind: domain.ApexKindTrigger, StartedAt: base.Add(time.Minute)}))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "trg", "old"}, []string{all[0].ID, all[1].ID, all[2].ID})

	classes, err := store.ListByKind(ctx, domain.ApexKindClass, 1)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "new", classes[0].ID)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreFrom(map[string]any{
		"query.limit":    int64(100),
		"render.verbose": true,
		"paths.output":   "out",
		"tags":           []any{"a", 1, "b"},
	})

	assert.Equal(t, 100, store.GetInt("query.limit"))
	assert.True(t, store.GetBool("render.verbose"))
	assert.Equal(t, "out", store.GetString("paths.output"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("tags"))

	assert.Equal(t, 0, store.GetInt("paths.output"))
	assert.Equal(t, "", store.GetString("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SetAndNoops(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("poll.interval_seconds", 5))
	val, ok := store.Get("poll.interval_seconds")

	assert.True(t, ok)
	assert.Equal(t, 5, val)
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}
