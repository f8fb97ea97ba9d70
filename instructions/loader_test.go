package instructions_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengov-nl/woometa/instructions"
)

func writeInstruction(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".md"), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeInstruction(t, dir, "diwoo_schema", "# DIWOO Schema\nRegels voor metadata.")

	loader := instructions.NewLoader(dir, nil)

	got, err := loader.Load("diwoo_schema")
	require.NoError(t, err)
	assert.Contains(t, got, "Regels voor metadata")
}

func TestLoad_CachesUntilInvalidated(t *testing.T) {
	dir := t.TempDir()
	writeInstruction(t, dir, "schema", "versie een")

	loader := instructions.NewLoader(dir, nil)
	_, err := loader.Load("schema")
	require.NoError(t, err)

	writeInstruction(t, dir, "schema", "versie twee")

	got, err := loader.Load("schema")
	require.NoError(t, err)
	assert.Equal(t, "versie een", got, "cached content served until invalidation")

	loader.Invalidate("schema")
	got, err = loader.Load("schema")
	require.NoError(t, err)
	assert.Equal(t, "versie twee", got)
}

func TestWatch_ReloadsChangedInstruction(t *testing.T) {
	dir := t.TempDir()
	writeInstruction(t, dir, "schema", "versie een")

	loader := instructions.NewLoader(dir, nil)
	got, err := loader.Load("schema")
	require.NoError(t, err)
	require.Equal(t, "versie een", got)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- loader.Watch(ctx) }()

	// The watcher registers asynchronously, so keep rewriting until the
	// change shows up through the cache.
	require.Eventually(t, func() bool {
		if err := os.WriteFile(filepath.Join(dir, "schema.md"), []byte("versie twee"), 0o644); err != nil {
			return false
		}
		content, err := loader.Load("schema")
		return err == nil && content == "versie twee"
	}, 5*time.Second, 50*time.Millisecond, "watcher never invalidated the cached instruction")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestLoad_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeInstruction(t, dir, "aanwezig", "inhoud")

	loader := instructions.NewLoader(dir, nil)
	_, err := loader.Load("afwezig")
	require.Error(t, err)
	assert.ErrorIs(t, err, instructions.ErrNotFound)
	assert.ErrorContains(t, err, "aanwezig", "error names the available instructions")
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeInstruction(t, dir, "b_schema", "x")
	writeInstruction(t, dir, "a_schema", "x")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("genegeerd"), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	writeInstruction(t, filepath.Join(dir, "sub"), "nested", "x")

	loader := instructions.NewLoader(dir, nil)
	names, err := loader.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a_schema", "b_schema", "sub/nested"}, names)
}

func TestList_MissingDir(t *testing.T) {
	loader := instructions.NewLoader(filepath.Join(t.TempDir(), "bestaat-niet"), nil)
	names, err := loader.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestWithContext(t *testing.T) {
	got := instructions.WithContext("Organisatie: {{publisher}}, modus: {{mode}}", map[string]string{
		"publisher": "Gemeente Utrecht",
		"mode":      "json",
	})
	assert.Equal(t, "Organisatie: Gemeente Utrecht, modus: json", got)

	// Unknown placeholders survive
	assert.Equal(t, "{{onbekend}}", instructions.WithContext("{{onbekend}}", nil))
}
