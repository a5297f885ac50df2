package json

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_WriteJSONOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	writer := NewWriter()

	require.NoError(t, writer.WriteJSON(path, map[string]int{"b": 2, "a": 1, "c": 3}))
	require.NoError(t, writer.WriteJSON(path, map[string]int{"b": 2, "a": 1}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}\n", string(content))
}

func TestWriter_EnsureDirIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "env", "abi")
	writer := NewWriter()

	require.NoError(t, writer.EnsureDir(dir))
	require.NoError(t, writer.EnsureDir(dir))
	require.DirExists(t, dir)
}

func TestReader_ReadJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	reader := NewReader()

	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"name":"MainDAO"}`), 0644))

	var target struct {
		Name string `json:"name"`
	}
	require.NoError(t, reader.ReadJSON(valid, &target))
	require.Equal(t, "MainDAO", target.Name)

	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"name":`), 0644))
	require.Error(t, reader.ReadJSON(malformed, &target))

	err := reader.ReadJSON(filepath.Join(dir, "missing.json"), &target)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReader_ListDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"31337", "1", "5"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), nil, 0644))

	dirs, err := NewReader().ListDirs(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "31337", "5"}, dirs)

	_, err = NewReader().ListDirs(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}
