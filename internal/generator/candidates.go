package generator

import (
	"math/rand"
	"strings"

	"github.com/harrison/lycan/internal/roles"
	"github.com/harrison/lycan/internal/statement"
	"github.com/harrison/lycan/internal/truthcache"
)

// enumerateAllBundlesBelow is the number of statements available to a
// speaker (after the self-reference filter) under which multi-statement
// bundles are enumerated exhaustively instead of sampled.
const enumerateAllBundlesBelow = 20

// candidate is one bundle a speaker could utter, with the precomputed
// ordering keys for the greedy tie-breaks.
type candidate struct {
	bundle []statement.Statement
	cost   int
	key    string
	counts int // count statements in the bundle
}

func newCandidate(bundle []statement.Statement) candidate {
	cost := 0
	counts := 0
	codes := make([]string, len(bundle))
	for i, s := range bundle {
		cost += s.Cost()
		codes[i] = s.Encode()
		if !s.IsRelationship() {
			counts++
		}
	}
	return candidate{bundle: bundle, cost: cost, key: strings.Join(codes, "~"), counts: counts}
}

// candidatesForSpeaker enumerates the bundles speaker i could utter,
// consistent with the ground truth: a truthful speaker's bundle is all true
// under the target, a liar's has at least one false statement. Liar bundles
// that are unsatisfiable outright are rejected; a speaker whose statements
// cannot all hold under any assignment gives their role away.
func candidatesForSpeaker(
	rng *rand.Rand,
	i int,
	target, shill int,
	lib *statement.Library,
	cache *truthcache.Cache,
	cfg Config,
) []candidate {
	available := make([]statement.Statement, 0, lib.Len())
	for _, s := range lib.Statements {
		if !cfg.AllowSelfReference && s.Involves(i) {
			continue
		}
		available = append(available, s)
	}
	if len(available) == 0 {
		return nil
	}

	w := roles.IndexToVector(target, cfg.N)
	mustLie := w[i] || i == shill

	var out []candidate
	consider := func(bundle []statement.Statement) {
		allTrue := true
		for _, s := range bundle {
			if !s.Evaluate(w) {
				allTrue = false
				break
			}
		}
		if mustLie == allTrue {
			return
		}
		if mustLie && len(bundle) > 1 {
			mask, err := cache.BundleAllTrue(bundle)
			if err != nil || mask.Empty() {
				return
			}
		}
		out = append(out, newCandidate(bundle))
	}

	for size := cfg.StatementsMin; size <= cfg.StatementsMax; size++ {
		switch {
		case size == 1:
			for _, s := range available {
				consider([]statement.Statement{s})
			}
		case len(available) < enumerateAllBundlesBelow:
			combination(len(available), size, func(picks []int) {
				bundle := make([]statement.Statement, size)
				for j, p := range picks {
					bundle[j] = available[p]
				}
				consider(bundle)
			})
		default:
			for sampled := 0; sampled < cfg.CandidatePoolSize; sampled++ {
				picks := rng.Perm(len(available))[:size]
				bundle := make([]statement.Statement, size)
				for j, p := range picks {
					bundle[j] = available[p]
				}
				consider(bundle)
			}
		}
	}
	return out
}

// combination invokes fn with every size-k index combination of [0, n).
func combination(n, k int, fn func([]int)) {
	picks := make([]int, k)
	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == k {
			fn(picks)
			return
		}
		for v := start; v <= n-(k-depth); v++ {
			picks[depth] = v
			recurse(v+1, depth+1)
		}
	}
	recurse(0, 0)
}
