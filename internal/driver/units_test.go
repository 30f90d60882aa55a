package driver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestDiscoverUnitsSortsAndFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFile(t, filepath.Join(dir, "B.shadow"), now)
	writeFile(t, filepath.Join(dir, "A.shadow"), now)
	writeFile(t, filepath.Join(dir, "readme.txt"), now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	units, err := DiscoverUnits(dir)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, filepath.Join(dir, "A.shadow"), units[0].Path)
	assert.Equal(t, filepath.Join(dir, "B.shadow"), units[1].Path)
	assert.Equal(t, filepath.Join(dir, "A.meta"), units[0].MetaPath)
	assert.Equal(t, filepath.Join(dir, "A.o"), units[0].ObjectPath)
	assert.Equal(t, filepath.Join(dir, "A.ll"), units[0].LLPath)
}

func TestDiscoverUnitsMissingRootIsFileNotFound(t *testing.T) {
	_, err := DiscoverUnits(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNeedsRecompileWhenArtifactsMissing(t *testing.T) {
	dir := t.TempDir()
	u := unitFor(filepath.Join(dir, "A.shadow"))
	writeFile(t, u.Path, time.Now())

	assert.True(t, NeedsRecompile(u, false))
}

func TestNeedsRecompileWhenSourceNewerThanMeta(t *testing.T) {
	dir := t.TempDir()
	u := unitFor(filepath.Join(dir, "A.shadow"))
	old := time.Now().Add(-time.Hour)
	writeFile(t, u.MetaPath, old)
	writeFile(t, u.ObjectPath, old)
	writeFile(t, u.Path, time.Now())

	assert.True(t, NeedsRecompile(u, false))
}

func TestNeedsRecompileFalseWhenUpToDate(t *testing.T) {
	dir := t.TempDir()
	u := unitFor(filepath.Join(dir, "A.shadow"))
	old := time.Now().Add(-time.Hour)
	writeFile(t, u.Path, old)
	writeFile(t, u.MetaPath, time.Now())
	writeFile(t, u.ObjectPath, time.Now())

	assert.False(t, NeedsRecompile(u, false))
}

func TestNeedsRecompileForceAlwaysTrue(t *testing.T) {
	dir := t.TempDir()
	u := unitFor(filepath.Join(dir, "A.shadow"))
	assert.True(t, NeedsRecompile(u, true))
}
