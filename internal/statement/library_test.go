package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLibraryDeterministic(t *testing.T) {
	a, err := BuildLibrary(6, LibraryConfig{})
	require.NoError(t, err)
	b, err := BuildLibrary(6, LibraryConfig{})
	require.NoError(t, err)

	require.Equal(t, a.Len(), b.Len())
	for i := range a.Statements {
		assert.True(t, a.Statements[i].Equal(b.Statements[i]))
	}
}

func TestBuildLibraryContents(t *testing.T) {
	lib, err := BuildLibrary(4, LibraryConfig{})
	require.NoError(t, err)

	for _, s := range lib.Statements {
		if s.Kind.IsPair() {
			assert.NotEqual(t, s.A, s.B, "no self pairs: %s", s)
			if s.Kind.Commutative() {
				assert.Less(t, s.A, s.B, "canonical order: %s", s)
			}
		}
	}

	// Spot checks: both implication directions, the full scope, and an
	// all-but-one scope.
	_, ok := lib.Lookup("I-3-1")
	assert.True(t, ok)
	_, ok = lib.Lookup("I-1-3")
	assert.True(t, ok)
	_, ok = lib.Lookup("E-0.1.2.3-2")
	assert.True(t, ok)
	_, ok = lib.Lookup("V-0.2.3")
	assert.True(t, ok)
	_, ok = lib.Lookup("B-2-1")
	assert.False(t, ok, "non-canonical codes never appear")
}

func TestBuildLibraryVariantFilter(t *testing.T) {
	lib, err := BuildLibrary(4, LibraryConfig{Variants: []Kind{Implication, Equivalence}})
	require.NoError(t, err)
	require.NotZero(t, lib.Len())
	for _, s := range lib.Statements {
		assert.Contains(t, []Kind{Implication, Equivalence}, s.Kind)
	}
	// 12 ordered implications + 6 equivalences.
	assert.Equal(t, 18, lib.Len())
}

func TestBuildLibraryDisableCounts(t *testing.T) {
	lib, err := BuildLibrary(4, LibraryConfig{DisableCounts: true})
	require.NoError(t, err)
	for _, s := range lib.Statements {
		assert.True(t, s.Kind.IsPair(), "count variant leaked: %s", s)
	}
}

func TestBuildLibraryBounds(t *testing.T) {
	_, err := BuildLibrary(1, LibraryConfig{})
	assert.Error(t, err)
	_, err = BuildLibrary(21, LibraryConfig{})
	assert.Error(t, err)
}
