package truthcache

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/lycan/internal/statement"
)

func buildTestCache(t *testing.T, n int) (*statement.Library, *Cache) {
	t.Helper()
	lib, err := statement.BuildLibrary(n, statement.LibraryConfig{})
	require.NoError(t, err)
	return lib, Build(lib)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	lib, cache := buildTestCache(t, 5)
	path := filepath.Join(t.TempDir(), "cache.txt")
	require.NoError(t, cache.Save(path))

	loaded, err := Load(path, 5, lib)
	require.NoError(t, err)
	require.Equal(t, cache.Len(), loaded.Len())

	for _, code := range cache.Codes() {
		want, err := cache.TruthMask(code)
		require.NoError(t, err)
		got, err := loaded.TruthMask(code)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), code)
	}
}

func TestSaveFormat(t *testing.T) {
	_, cache := buildTestCache(t, 4)
	path := filepath.Join(t.TempDir(), "cache.txt")
	require.NoError(t, cache.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Greater(t, len(lines), 2)
	assert.Equal(t, "N=4", lines[0])
	assert.Equal(t, "count="+strconv.Itoa(cache.Len()), lines[1])

	fields := strings.Fields(lines[2])
	require.Len(t, fields, 2)
	assert.Len(t, fields[1], 4, "2^4 bits is 4 hex digits")
}

// A cache built for N=6 must be rejected when loaded for N=5.
func TestLoadWrongN(t *testing.T) {
	_, cache := buildTestCache(t, 6)
	path := filepath.Join(t.TempDir(), "cache.txt")
	require.NoError(t, cache.Save(path))

	_, err := Load(path, 5, nil)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestLoadRejectsUnknownCode(t *testing.T) {
	lib, cache := buildTestCache(t, 4)
	path := filepath.Join(t.TempDir(), "cache.txt")
	require.NoError(t, cache.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Append a syntactically valid code that is not in the library, with a
	// fixed-up count header.
	mutated := string(data) + "E-0.2-1 0000\n"
	lines := strings.SplitN(mutated, "\n", 3)
	lines[1] = "count=" + strconv.Itoa(cache.Len()+1)
	mutated = strings.Join(lines, "\n")
	require.NoError(t, os.WriteFile(path, []byte(mutated), 0644))

	_, err = Load(path, 4, lib)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestLoadRejectsBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0644))
	_, err := Load(path, 4, nil)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestLoadRejectsCountMismatch(t *testing.T) {
	_, cache := buildTestCache(t, 4)
	path := filepath.Join(t.TempDir(), "cache.txt")
	require.NoError(t, cache.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.SplitN(string(data), "\n", 3)
	lines[1] = "count=" + strconv.Itoa(cache.Len()+7)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644))

	_, err = Load(path, 4, nil)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestLoadOrBuild(t *testing.T) {
	lib, _ := buildTestCache(t, 4)
	path := filepath.Join(t.TempDir(), "cache.txt")

	// First call builds and saves.
	c1, err := LoadOrBuild(path, lib, false)
	require.NoError(t, err)
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	// Second call loads the same masks.
	c2, err := LoadOrBuild(path, lib, false)
	require.NoError(t, err)
	require.Equal(t, c1.Len(), c2.Len())
}
