package statement

import (
	"fmt"
)

// LibraryConfig controls which statements BuildLibrary enumerates. The zero
// value enables every variant with full and all-but-one count scopes.
type LibraryConfig struct {
	// Variants restricts the library to the listed kinds. Empty means all
	// twelve variants.
	Variants []Kind

	// DisableCounts drops every count variant regardless of Variants.
	DisableCounts bool

	// DisableScopedCounts drops the all-but-one scopes, keeping only counts
	// over the full village.
	DisableScopedCounts bool
}

func (c LibraryConfig) enabled(k Kind) bool {
	if c.DisableCounts && k.IsCount() {
		return false
	}
	if len(c.Variants) == 0 {
		return true
	}
	for _, v := range c.Variants {
		if v == k {
			return true
		}
	}
	return false
}

// Library is the finite, deterministically ordered set of candidate
// statements for a village of size N. It is purely a function of (N, config)
// and is read-only after construction.
type Library struct {
	N          int
	Statements []Statement

	byCode map[string]int
}

// BuildLibrary enumerates the statement library for n villagers. Pairs never
// relate a villager to itself; count statements range over the full village
// and, unless disabled, each all-but-one scope. n must lie in [2, 20]: below
// 2 no pair exists, above 20 the 2^N truth masks stop being practical.
func BuildLibrary(n int, cfg LibraryConfig) (*Library, error) {
	if n < 2 || n > 20 {
		return nil, fmt.Errorf("statement: library size N=%d outside [2, 20]", n)
	}
	lib := &Library{N: n}

	add := func(s Statement) {
		lib.Statements = append(lib.Statements, s)
	}

	for _, kind := range PairKinds {
		if !cfg.enabled(kind) {
			continue
		}
		if kind.Commutative() {
			for a := 0; a < n; a++ {
				for b := a + 1; b < n; b++ {
					add(Statement{Kind: kind, A: a, B: b})
				}
			}
		} else {
			for a := 0; a < n; a++ {
				for b := 0; b < n; b++ {
					if a == b {
						continue
					}
					add(Statement{Kind: kind, A: a, B: b})
				}
			}
		}
	}

	full := make([]int, n)
	for i := range full {
		full[i] = i
	}
	for _, kind := range CountKinds {
		if !cfg.enabled(kind) {
			continue
		}
		addCountsForScope(add, kind, full)
	}
	if !cfg.DisableScopedCounts {
		for excluded := 0; excluded < n; excluded++ {
			scope := make([]int, 0, n-1)
			for i := 0; i < n; i++ {
				if i != excluded {
					scope = append(scope, i)
				}
			}
			for _, kind := range CountKinds {
				if !cfg.enabled(kind) {
					continue
				}
				addCountsForScope(add, kind, scope)
			}
		}
	}

	lib.byCode = make(map[string]int, len(lib.Statements))
	for i, s := range lib.Statements {
		lib.byCode[s.Encode()] = i
	}
	return lib, nil
}

func addCountsForScope(add func(Statement), kind Kind, scope []int) {
	if kind.HasCount() {
		for k := 0; k <= len(scope); k++ {
			add(Statement{Kind: kind, Scope: scope, K: k})
		}
		return
	}
	add(Statement{Kind: kind, Scope: scope})
}

// Lookup returns the library statement with the given canonical code.
func (l *Library) Lookup(code string) (Statement, bool) {
	i, ok := l.byCode[code]
	if !ok {
		return Statement{}, false
	}
	return l.Statements[i], true
}

// Contains reports whether the statement is part of the library.
func (l *Library) Contains(s Statement) bool {
	_, ok := l.byCode[s.Encode()]
	return ok
}

// Len returns the number of statements in the library.
func (l *Library) Len() int { return len(l.Statements) }
