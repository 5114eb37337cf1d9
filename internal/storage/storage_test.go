package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	dir := t.TempDir()
	file, err := Open(KindFile, filepath.Join(dir, "files"))
	require.NoError(t, err)
	level, err := Open(KindLevelDB, filepath.Join(dir, "leveldb"))
	require.NoError(t, err)
	memory, err := Open(KindMemory, "")
	require.NoError(t, err)

	t.Cleanup(func() {
		file.Close()
		level.Close()
		memory.Close()
	})
	return map[string]Backend{
		"file":    file,
		"leveldb": level,
		"memory":  memory,
	}
}

func TestBackends(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Get("missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, b.Put("identity", []byte(`{"a":1}`)))
			require.NoError(t, b.Put("b-wallet", []byte(`{"b":2}`)))
			require.NoError(t, b.Put("a-wallet", []byte(`{"c":3}`)))

			data, err := b.Get("identity")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":1}`, string(data))

			require.NoError(t, b.Put("identity", []byte(`{"a":2}`)))
			data, err = b.Get("identity")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":2}`, string(data))

			names, err := b.List()
			require.NoError(t, err)
			assert.Equal(t, []string{"a-wallet", "b-wallet", "identity"}, names)

			require.NoError(t, b.Delete("b-wallet"))
			require.NoError(t, b.Delete("b-wallet"))
			names, err = b.List()
			require.NoError(t, err)
			assert.Equal(t, []string{"a-wallet", "identity"}, names)

			require.NoError(t, b.Clean())
			names, err = b.List()
			require.NoError(t, err)
			assert.Empty(t, names)
		})
	}
}

func TestFileBackendBOMAndMode(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"id":"x"}`)...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bom.json"), raw, 0600))
	data, err := b.Get("bom")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"x"}`, string(data))

	require.NoError(t, b.Put("secret", []byte("{}")))
	info, err := os.Stat(filepath.Join(dir, "secret.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0600))
	require.NoError(t, b.Clean())
	_, err = os.Stat(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, err)
}

func TestFileBackendRejectsPathNames(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	for _, name := range []string{"", "..", "../escape", `a\b`} {
		assert.Error(t, b.Put(name, []byte("{}")), name)
	}
}

func TestOpenUnknownKind(t *testing.T) {
	_, err := Open("s3", "")
	assert.Error(t, err)
}
