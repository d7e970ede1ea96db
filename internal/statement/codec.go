package statement

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode renders the statement's canonical code: `K-a-b` for pair variants,
// `K-s0.s1...-k` for bounded count variants, `K-s0.s1...` for parity. The
// code is both the truth-cache key and the wire form inside puzzle codes.
func (s Statement) Encode() string {
	if s.Kind.IsPair() {
		return fmt.Sprintf("%c-%d-%d", s.Kind, s.A, s.B)
	}
	parts := make([]string, len(s.Scope))
	for i, v := range s.Scope {
		parts[i] = strconv.Itoa(v)
	}
	scope := strings.Join(parts, ".")
	if s.Kind.HasCount() {
		return fmt.Sprintf("%c-%s-%d", s.Kind, scope, s.K)
	}
	return fmt.Sprintf("%c-%s", s.Kind, scope)
}

// String implements fmt.Stringer with the canonical code.
func (s Statement) String() string { return s.Encode() }

// Decode parses a canonical code back into a statement, validating against
// the village size n. It is strict: unknown variant letters, wrong arity,
// indices outside [0, n), duplicate or unsorted scope members, and
// non-canonical pair order are all rejected.
func Decode(code string, n int) (Statement, error) {
	fields := strings.Split(code, "-")
	if len(fields) < 2 || len(fields[0]) != 1 {
		return Statement{}, fmt.Errorf("%w: %q", ErrMalformedCode, code)
	}
	kind := Kind(fields[0][0])
	switch {
	case kind.IsPair():
		return decodePair(kind, code, fields[1:], n)
	case kind.IsCount():
		return decodeCount(kind, code, fields[1:], n)
	}
	return Statement{}, fmt.Errorf("%w: unknown variant %q in %q", ErrMalformedCode, fields[0], code)
}

func decodePair(kind Kind, code string, args []string, n int) (Statement, error) {
	if len(args) != 2 {
		return Statement{}, fmt.Errorf("%w: %q wants 2 arguments, has %d", ErrMalformedCode, code, len(args))
	}
	a, err := parseIndex(args[0], code, n)
	if err != nil {
		return Statement{}, err
	}
	b, err := parseIndex(args[1], code, n)
	if err != nil {
		return Statement{}, err
	}
	if a == b {
		return Statement{}, fmt.Errorf("%w: %q relates a villager to itself", ErrMalformedCode, code)
	}
	if kind.Commutative() && a > b {
		return Statement{}, fmt.Errorf("%w: %q must order its pair a < b", ErrNonCanonicalPair, code)
	}
	return Statement{Kind: kind, A: a, B: b}, nil
}

func decodeCount(kind Kind, code string, args []string, n int) (Statement, error) {
	wantArgs := 1
	if kind.HasCount() {
		wantArgs = 2
	}
	if len(args) != wantArgs {
		return Statement{}, fmt.Errorf("%w: %q wants %d arguments, has %d", ErrMalformedCode, code, wantArgs, len(args))
	}
	members := strings.Split(args[0], ".")
	scope := make([]int, 0, len(members))
	for _, m := range members {
		v, err := parseIndex(m, code, n)
		if err != nil {
			return Statement{}, err
		}
		if len(scope) > 0 && scope[len(scope)-1] >= v {
			return Statement{}, fmt.Errorf("%w: %q scope must be strictly ascending", ErrMalformedCode, code)
		}
		scope = append(scope, v)
	}
	k := 0
	if kind.HasCount() {
		var err error
		k, err = strconv.Atoi(args[1])
		if err != nil {
			return Statement{}, fmt.Errorf("%w: %q has non-numeric count", ErrMalformedCode, code)
		}
		if k < 0 || k > len(scope) {
			return Statement{}, fmt.Errorf("%w: %q count %d outside [0, %d]", ErrMalformedCode, code, k, len(scope))
		}
	}
	return Statement{Kind: kind, Scope: scope, K: k}, nil
}

func parseIndex(field, code string, n int) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: %q has non-numeric index %q", ErrMalformedCode, code, field)
	}
	if v < 0 || v >= n {
		return 0, fmt.Errorf("%w: %q index %d outside [0, %d)", ErrOutOfRangeIndex, code, v, n)
	}
	return v, nil
}
