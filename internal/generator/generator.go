// Package generator synthesises werewolf puzzles with guaranteed unique
// solutions. An attempt fixes a ground truth, enumerates statement bundles
// each speaker could utter consistently with it, then greedily assigns the
// bundle that eliminates the most surviving assignments while keeping the
// ground truth alive. Attempts restart until the remaining set is exactly
// the target or the attempt budget runs out.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/harrison/lycan/internal/bitset"
	"github.com/harrison/lycan/internal/puzzle"
	"github.com/harrison/lycan/internal/roles"
	"github.com/harrison/lycan/internal/statement"
	"github.com/harrison/lycan/internal/truthcache"
	"github.com/harrison/lycan/internal/verifier"
)

// ErrExhausted reports that no unique puzzle was found within the attempt
// budget. Callers can recover by widening the configuration or raising
// MaxAttempts.
var ErrExhausted = errors.New("generator: attempts exhausted without a unique puzzle")

// Generate produces a verified puzzle for the configuration, or ErrExhausted
// when MaxAttempts restarts all fail. Generation is deterministic in
// (config, cache, seed): the explicit seed feeds a private rand.Rand and no
// global randomness is touched. Verifier failures other than a non-unique
// attempt are returned as-is; they indicate a bug, not bad luck.
func Generate(cfg Config, cache *truthcache.Cache, seed int64) (*puzzle.Puzzle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cache.N() != cfg.N {
		return nil, fmt.Errorf("%w: cache built for N=%d, generating for N=%d", truthcache.ErrIncompatible, cache.N(), cfg.N)
	}
	lib, err := statement.BuildLibrary(cfg.N, cfg.Library)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	masks := roles.NewMasks(cfg.N)

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		p := attemptOnce(rng, cfg, lib, cache, masks)
		if p == nil {
			continue
		}
		if !passesDiversity(cfg, p) {
			continue
		}
		p.Seed = seed
		p.Attempts = attempt
		if _, err := verifier.Verify(p, cache, verifier.Options{HasShill: cfg.HasShill}); err != nil {
			if !errors.Is(err, verifier.ErrNoUniqueSolution) {
				return nil, err
			}
			continue
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrExhausted, cfg.MaxAttempts)
}

// attemptOnce runs a single target-choice plus greedy assignment. It returns
// nil when the attempt dead-ends.
func attemptOnce(
	rng *rand.Rand,
	cfg Config,
	lib *statement.Library,
	cache *truthcache.Cache,
	masks *roles.Masks,
) *puzzle.Puzzle {
	target, shill := chooseTarget(rng, cfg)

	candidates := make([][]candidate, cfg.N)
	for i := 0; i < cfg.N; i++ {
		candidates[i] = candidatesForSpeaker(rng, i, target, shill, lib, cache, cfg)
		if len(candidates[i]) == 0 {
			return nil
		}
	}

	// Most-constrained speakers first; ties keep speaker order.
	order := make([]int, cfg.N)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(candidates[order[a]]) < len(candidates[order[b]])
	})

	rem := newRemaining(cfg, masks)
	bundles := make([][]statement.Statement, cfg.N)
	usedCodes := make(map[string]bool)
	countBudget := cfg.MaxCountStatements

	for _, speaker := range order {
		best := -1
		var bestPost *remaining
		bestCount, bestCost := 0, 0
		var bestKey string

		for ci, cand := range candidates[speaker] {
			if !cfg.AllowDuplicateStatements && usesAny(cand.bundle, usedCodes) {
				continue
			}
			if countBudget >= 0 && cand.counts > countBudget {
				continue
			}
			bundleTrue, err := cache.BundleAllTrue(cand.bundle)
			if err != nil {
				continue
			}
			post := rem.apply(speaker, bundleTrue)
			if !post.holds(target, shill) {
				continue
			}
			count := post.count()
			if best < 0 || count < bestCount ||
				(count == bestCount && cand.cost < bestCost) ||
				(count == bestCount && cand.cost == bestCost && cand.key < bestKey) {
				best = ci
				bestPost = post
				bestCount = count
				bestCost = cand.cost
				bestKey = cand.key
			}
		}
		if best < 0 {
			return nil
		}

		chosen := candidates[speaker][best]
		bundles[speaker] = chosen.bundle
		rem = bestPost
		if countBudget >= 0 {
			countBudget -= chosen.counts
		}
		for _, s := range chosen.bundle {
			usedCodes[s.Encode()] = true
		}
	}

	if rem.count() != 1 {
		return nil
	}

	p := puzzle.New(cfg.N, bundles)
	p.Solution = target
	p.Shill = shill
	return p
}

// passesDiversity applies the optional post-filters.
func passesDiversity(cfg Config, p *puzzle.Puzzle) bool {
	stmts := p.Statements()
	if cfg.RequireRelationship {
		found := false
		for _, s := range stmts {
			if s.IsRelationship() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if cfg.RejectUniformKinds && len(stmts) > 1 {
		uniform := true
		for _, s := range stmts[1:] {
			if s.Kind != stmts[0].Kind {
				uniform = false
				break
			}
		}
		if uniform {
			return false
		}
	}
	return true
}

func usesAny(bundle []statement.Statement, used map[string]bool) bool {
	for _, s := range bundle {
		if used[s.Encode()] {
			return true
		}
	}
	return false
}

// remaining tracks the assignments still compatible with the statements
// assigned so far. In baseline mode it is a single mask; in shill mode one
// mask per shill hypothesis, the solution set being their disjoint union
// over (assignment, shill) pairs.
type remaining struct {
	masks    *roles.Masks
	baseline *bitset.Set
	perShill []*bitset.Set
}

func newRemaining(cfg Config, masks *roles.Masks) *remaining {
	atLeastOne := roles.AtLeastOneWolf(cfg.N)
	if !cfg.HasShill {
		return &remaining{masks: masks, baseline: atLeastOne}
	}
	per := make([]*bitset.Set, cfg.N)
	for s := 0; s < cfg.N; s++ {
		per[s] = masks.Human[s].Clone().And(atLeastOne)
	}
	return &remaining{masks: masks, perShill: per}
}

// apply returns the remaining set after speaker i utters a bundle with the
// given all-true mask. The receiver is left untouched.
func (r *remaining) apply(i int, bundleTrue *bitset.Set) *remaining {
	if r.baseline != nil {
		compat := r.masks.SpeakerCompat(i, bundleTrue)
		return &remaining{masks: r.masks, baseline: r.baseline.Clone().And(compat)}
	}
	per := make([]*bitset.Set, len(r.perShill))
	for s := range r.perShill {
		compat := r.masks.ShillCompat(i, s, bundleTrue)
		per[s] = r.perShill[s].Clone().And(compat)
	}
	return &remaining{masks: r.masks, perShill: per}
}

// count returns the surviving (assignment, shill) pair count, or the plain
// assignment count in baseline mode.
func (r *remaining) count() int {
	if r.baseline != nil {
		return r.baseline.Count()
	}
	total := 0
	for _, m := range r.perShill {
		total += m.Count()
	}
	return total
}

// holds reports whether the ground truth is still among the survivors.
func (r *remaining) holds(target, shill int) bool {
	if r.baseline != nil {
		return r.baseline.Test(target)
	}
	return r.perShill[shill].Test(target)
}
