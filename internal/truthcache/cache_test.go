package truthcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/lycan/internal/roles"
	"github.com/harrison/lycan/internal/statement"
)

// Every bit of every cached mask must agree with direct evaluation.
func TestBuildMatchesEvaluation(t *testing.T) {
	for _, n := range []int{4, 5} {
		lib, err := statement.BuildLibrary(n, statement.LibraryConfig{})
		require.NoError(t, err)
		cache := Build(lib)
		require.Equal(t, lib.Len(), cache.Len())

		for _, s := range lib.Statements {
			mask, err := cache.TruthMask(s.Encode())
			require.NoError(t, err)
			for j := 0; j < 1<<n; j++ {
				want := s.Evaluate(roles.IndexToVector(j, n))
				if mask.Test(j) != want {
					t.Fatalf("N=%d %s assignment %d: mask %v, evaluation %v",
						n, s.Encode(), j, mask.Test(j), want)
				}
			}
		}
	}
}

func TestFalseMaskIsComplement(t *testing.T) {
	lib, err := statement.BuildLibrary(4, statement.LibraryConfig{})
	require.NoError(t, err)
	cache := Build(lib)

	code := "I-0-1"
	truth, err := cache.TruthMask(code)
	require.NoError(t, err)
	falsity, err := cache.FalseMask(code)
	require.NoError(t, err)

	assert.Equal(t, 1<<4, truth.Count()+falsity.Count())
	assert.True(t, truth.Clone().And(falsity).Empty())
}

func TestTruthMaskUnknownCode(t *testing.T) {
	lib, err := statement.BuildLibrary(4, statement.LibraryConfig{DisableCounts: true})
	require.NoError(t, err)
	cache := Build(lib)

	_, err = cache.TruthMask("E-0.1.2.3-2")
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestBundleAllTrue(t *testing.T) {
	lib, err := statement.BuildLibrary(4, statement.LibraryConfig{})
	require.NoError(t, err)
	cache := Build(lib)

	a, err := statement.Decode("N-0-1", 4)
	require.NoError(t, err)
	b, err := statement.Decode("A-2-3", 4)
	require.NoError(t, err)

	mask, err := cache.BundleAllTrue([]statement.Statement{a, b})
	require.NoError(t, err)
	for j := 0; j < 16; j++ {
		w := roles.IndexToVector(j, 4)
		assert.Equal(t, a.Evaluate(w) && b.Evaluate(w), mask.Test(j), "assignment %d", j)
	}

	empty, err := cache.BundleAllTrue(nil)
	require.NoError(t, err)
	assert.Equal(t, 16, empty.Count(), "empty bundle is vacuously true")
}

func TestBuildForStatements(t *testing.T) {
	s, err := statement.Decode("E-0.2-1", 4) // not a library scope
	require.NoError(t, err)
	cache := BuildForStatements(4, []statement.Statement{s, s})
	assert.Equal(t, 1, cache.Len(), "duplicates collapse")

	mask, err := cache.TruthMask("E-0.2-1")
	require.NoError(t, err)
	for j := 0; j < 16; j++ {
		assert.Equal(t, s.Evaluate(roles.IndexToVector(j, 4)), mask.Test(j))
	}
}
