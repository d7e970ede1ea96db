package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeForms(t *testing.T) {
	tests := []struct {
		s    Statement
		want string
	}{
		{Statement{Kind: Implication, A: 3, B: 1}, "I-3-1"},
		{Statement{Kind: Neither, A: 0, B: 2}, "N-0-2"},
		{Statement{Kind: ExactCount, Scope: []int{0, 1, 2, 3, 5}, K: 4}, "E-0.1.2.3.5-4"},
		{Statement{Kind: EvenParity, Scope: []int{1, 4}}, "V-1.4"},
		{Statement{Kind: AtMostCount, Scope: []int{0, 1}, K: 0}, "M-0.1-0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.s.Encode())
	}
}

// Every statement in the full library must survive an encode/decode round
// trip unchanged.
func TestLibraryRoundTrip(t *testing.T) {
	for _, n := range []int{4, 6} {
		lib, err := BuildLibrary(n, LibraryConfig{})
		require.NoError(t, err)
		for _, s := range lib.Statements {
			code := s.Encode()
			decoded, err := Decode(code, n)
			require.NoError(t, err, code)
			assert.True(t, s.Equal(decoded), code)
			assert.Equal(t, code, decoded.Encode(), code)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"unknown variant", "Z-0-1", ErrMalformedCode},
		{"empty", "", ErrMalformedCode},
		{"long variant tag", "IM-0-1", ErrMalformedCode},
		{"pair arity low", "I-0", ErrMalformedCode},
		{"pair arity high", "I-0-1-2", ErrMalformedCode},
		{"pair self reference", "B-1-1", ErrMalformedCode},
		{"pair out of range", "I-0-9", ErrOutOfRangeIndex},
		{"pair non-canonical", "B-2-1", ErrNonCanonicalPair},
		{"xor non-canonical", "X-3-0", ErrNonCanonicalPair},
		{"non-numeric index", "I-a-1", ErrMalformedCode},
		{"scope duplicate", "E-0.0.1-1", ErrMalformedCode},
		{"scope unsorted", "E-1.0-1", ErrMalformedCode},
		{"scope out of range", "V-0.9", ErrOutOfRangeIndex},
		{"count missing", "E-0.1", ErrMalformedCode},
		{"count non-numeric", "E-0.1-x", ErrMalformedCode},
		{"count too large", "E-0.1-3", ErrMalformedCode},
		{"parity with count", "V-0.1-1", ErrMalformedCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.code, 6)
			assert.ErrorIs(t, err, tt.want, tt.code)
		})
	}
}

// Implication and converse implication are ordered: I-3-1 and I-1-3 are
// distinct statements and both decode.
func TestOrderedPairsBothDirections(t *testing.T) {
	a := mustDecode(t, "I-3-1", 6)
	b := mustDecode(t, "I-1-3", 6)
	assert.False(t, a.Equal(b))

	f := mustDecode(t, "F-5-0", 6)
	assert.Equal(t, 5, f.A)
	assert.Equal(t, 0, f.B)
}
