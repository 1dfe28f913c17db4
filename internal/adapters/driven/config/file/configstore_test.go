package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apexspec.toml")

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, path, store.Path())
	assert.NoFileExists(t, path)
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".apexspec", "config.toml"), store.Path())
	assert.DirExists(t, filepath.Join(home, ".apexspec"))
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.toml")

	_, err := NewConfigStore(path)

	require.NoError(t, err)
	assert.DirExists(t, filepath.Dir(path))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set("salesforce.instance_url", "https://acme.my.salesforce.com"))
	require.NoError(t, store.Set("render.workers", 8))
	require.NoError(t, store.Set("render.verbose", true))

	assert.Equal(t, "https://acme.my.salesforce.com", store.GetString("salesforce.instance_url"))
	assert.Equal(t, 8, store.GetInt("render.workers"))
	assert.True(t, store.GetBool("render.verbose"))

	// Wrong types and missing keys return zero values
	assert.Equal(t, "", store.GetString("render.workers"))
	assert.Equal(t, 0, store.GetInt("salesforce.instance_url"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Persistence_NestedTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("salesforce.api_version", "58.0"))
	require.NoError(t, store.Set("poll.interval_seconds", 5))
	require.NoError(t, store.Set("poll.continue_on_error", true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[salesforce]")
	assert.Contains(t, string(data), "[poll]")

	reopened, err := NewConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, "58.0", reopened.GetString("salesforce.api_version"))
	assert.Equal(t, 5, reopened.GetInt("poll.interval_seconds"))
	assert.True(t, reopened.GetBool("poll.continue_on_error"))

	// TOML integers come back as int64
	val, ok := reopened.Get("poll.interval_seconds")
	require.True(t, ok)
	assert.IsType(t, int64(0), val)
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[salesforce]
instance_url = "https://acme.my.salesforce.com"

[paths]
output = "site"

[render]
workers = 2
tags = ["a", "b"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	assert.Equal(t, "https://acme.my.salesforce.com", store.GetString("salesforce.instance_url"))
	assert.Equal(t, "site", store.GetString("paths.output"))
	assert.Equal(t, 2, store.GetInt("render.workers"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("render.tags"))
}

func TestConfigStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0600))

	_, err := NewConfigStore(path)

	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	store := newStore(t)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())

	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Save())

	assert.FileExists(t, store.Path())
}

func TestConfigStore_Set_ConflictingKeys(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("poll", "fast"))

	err := store.Set("poll.interval_seconds", 3)

	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("render.workers", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("render.workers")
		}()
	}
	wg.Wait()

	_, ok := store.Get("render.workers")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested, err := nestMap(map[string]any{
		"a.b.c": 1,
		"a.d":   "x",
		"top":   true,
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a":   map[string]any{"b": map[string]any{"c": 1}, "d": "x"},
		"top": true,
	}, nested)
	assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "top": true}, flattenMap(nested, ""))
}
