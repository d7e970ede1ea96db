// Package truthcache precomputes, for every statement in a library, the set
// of assignments under which the statement holds, as a 2^N-bit mask indexed
// by assignment. The cache is built once per (N, library) and is read-only
// during generation and verification.
package truthcache

import (
	"errors"
	"fmt"

	"github.com/harrison/lycan/internal/bitset"
	"github.com/harrison/lycan/internal/roles"
	"github.com/harrison/lycan/internal/statement"
)

// ErrIncompatible reports a cache whose header or contents disagree with the
// requested village size or statement library.
var ErrIncompatible = errors.New("truthcache: cache incompatible")

// Cache maps canonical statement codes to their truth masks.
type Cache struct {
	n     int
	order []string
	masks map[string]*bitset.Set
}

// Build evaluates every library statement on all 2^N assignments and records
// the resulting truth masks. O(M * 2^N * scope) work; trivial for N <= 6.
func Build(lib *statement.Library) *Cache {
	return BuildForStatements(lib.N, lib.Statements)
}

// BuildForStatements builds a cache covering exactly the given statements.
// Used when verifying a decoded puzzle whose statements need not come from
// any particular library.
func BuildForStatements(n int, stmts []statement.Statement) *Cache {
	c := &Cache{
		n:     n,
		order: make([]string, 0, len(stmts)),
		masks: make(map[string]*bitset.Set, len(stmts)),
	}
	size := 1 << n
	vectors := make([][]bool, size)
	for j := 0; j < size; j++ {
		vectors[j] = roles.IndexToVector(j, n)
	}
	for _, s := range stmts {
		code := s.Encode()
		if _, dup := c.masks[code]; dup {
			continue
		}
		mask := bitset.New(n)
		for j := 0; j < size; j++ {
			if s.Evaluate(vectors[j]) {
				mask.Set(j)
			}
		}
		c.order = append(c.order, code)
		c.masks[code] = mask
	}
	return c
}

// N returns the village size the cache was built for.
func (c *Cache) N() int { return c.n }

// Len returns the number of cached statements.
func (c *Cache) Len() int { return len(c.order) }

// TruthMask returns the cached truth mask for a canonical code. The returned
// set is shared and must not be mutated; Clone before combining.
func (c *Cache) TruthMask(code string) (*bitset.Set, error) {
	mask, ok := c.masks[code]
	if !ok {
		return nil, fmt.Errorf("%w: no mask for code %q", ErrIncompatible, code)
	}
	return mask, nil
}

// FalseMask returns the complement of the truth mask within the 2^N domain.
func (c *Cache) FalseMask(code string) (*bitset.Set, error) {
	mask, err := c.TruthMask(code)
	if err != nil {
		return nil, err
	}
	return mask.Clone().Complement(), nil
}

// BundleAllTrue intersects the truth masks of every statement in a bundle:
// the assignments under which the speaker's whole bundle holds. An empty
// bundle is vacuously true everywhere. Bundles are combined on the fly
// rather than cached; the combinations are too many to materialise.
func (c *Cache) BundleAllTrue(bundle []statement.Statement) (*bitset.Set, error) {
	result := bitset.All(c.n)
	for _, s := range bundle {
		mask, err := c.TruthMask(s.Encode())
		if err != nil {
			return nil, err
		}
		result.And(mask)
	}
	return result, nil
}

// Codes returns the cached codes in build order.
func (c *Cache) Codes() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
