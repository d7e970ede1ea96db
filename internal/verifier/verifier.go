// Package verifier proves that a puzzle admits exactly one solution, twice
// over: once by replaying the cached compatibility masks, once by encoding
// the puzzle into CNF and running a SAT solve-and-block loop. The two paths
// share no code beyond the statement definitions; disagreement between them
// is a program bug, not a property of the puzzle.
package verifier

import (
	"errors"
	"fmt"
	"time"

	"github.com/harrison/lycan/internal/puzzle"
	"github.com/harrison/lycan/internal/roles"
	"github.com/harrison/lycan/internal/truthcache"
)

var (
	// ErrNoUniqueSolution reports a puzzle with zero or several solutions.
	ErrNoUniqueSolution = errors.New("verifier: puzzle does not have a unique solution")

	// ErrInconsistent reports disagreement between the two verification
	// paths, or between either path and the puzzle's stored solution. It is
	// fatal: the caller must not retry.
	ErrInconsistent = errors.New("verifier: verification paths disagree")

	// ErrTimeout reports that the SAT check exceeded its bound. The puzzle
	// is discarded; a timeout at this scale means the library or the
	// configuration is pathological.
	ErrTimeout = errors.New("verifier: solver timed out")
)

// DefaultTimeout bounds the SAT check unless Options overrides it.
const DefaultTimeout = 5 * time.Second

// Options configures verification.
type Options struct {
	// HasShill verifies under shill semantics: the solution is the unique
	// (assignment, shill) pair.
	HasShill bool

	// Timeout bounds the SAT check; zero means DefaultTimeout.
	Timeout time.Duration

	// MaskOnly skips the SAT check. Used by callers that elect to fall back
	// after a solver timeout; the default full check is always preferred.
	MaskOnly bool
}

// Result names the unique solution: the assignment index, and in shill mode
// the shill (roles.NoShill otherwise).
type Result struct {
	Assignment int
	Shill      int
}

// Verify runs both verification paths and cross-checks them against each
// other and against the puzzle's stored solution, if any. On success the
// unique solution is returned.
func Verify(p *puzzle.Puzzle, cache *truthcache.Cache, opts Options) (Result, error) {
	if cache.N() != p.N {
		return Result{}, fmt.Errorf("%w: cache built for N=%d, puzzle has N=%d", truthcache.ErrIncompatible, cache.N(), p.N)
	}
	maskRes, maskErr := MaskReplay(p, cache, opts.HasShill)
	if maskErr != nil && !errors.Is(maskErr, ErrNoUniqueSolution) {
		return Result{}, maskErr
	}

	if !opts.MaskOnly {
		satRes, satErr := SATCheck(p, opts)
		if satErr != nil && !errors.Is(satErr, ErrNoUniqueSolution) {
			return Result{}, satErr
		}
		switch {
		case (maskErr == nil) != (satErr == nil):
			return Result{}, fmt.Errorf("%w: mask replay says %v, SAT says %v", ErrInconsistent, describe(maskRes, maskErr), describe(satRes, satErr))
		case maskErr == nil && maskRes != satRes:
			return Result{}, fmt.Errorf("%w: mask replay found %v, SAT found %v", ErrInconsistent, maskRes, satRes)
		}
	}
	if maskErr != nil {
		return Result{}, maskErr
	}

	if p.Solution >= 0 && (p.Solution != maskRes.Assignment || p.Shill != maskRes.Shill) {
		return Result{}, fmt.Errorf("%w: stored solution (%d, %d) is not the unique model %v",
			ErrInconsistent, p.Solution, p.Shill, maskRes)
	}
	return maskRes, nil
}

func describe(r Result, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("unique %v", r)
}

// MaskReplay re-derives the surviving assignment set by intersecting each
// speaker's cached compatibility mask, exactly as the generator did, and
// demands a single survivor.
func MaskReplay(p *puzzle.Puzzle, cache *truthcache.Cache, hasShill bool) (Result, error) {
	masks := roles.NewMasks(p.N)

	if !hasShill {
		rem := roles.AtLeastOneWolf(p.N)
		for i, bundle := range p.Bundles {
			bundleTrue, err := cache.BundleAllTrue(bundle)
			if err != nil {
				return Result{}, err
			}
			rem.And(masks.SpeakerCompat(i, bundleTrue))
		}
		if rem.Count() != 1 {
			return Result{}, fmt.Errorf("%w: %d assignments survive mask replay", ErrNoUniqueSolution, rem.Count())
		}
		sole, err := rem.Sole()
		if err != nil {
			return Result{}, err
		}
		return Result{Assignment: sole, Shill: roles.NoShill}, nil
	}

	// Shill is a latent variable: the per-shill masks are materialised here,
	// during verification, and nowhere else.
	survivors := 0
	found := Result{Shill: roles.NoShill}
	for s := 0; s < p.N; s++ {
		rem := masks.Human[s].Clone().And(roles.AtLeastOneWolf(p.N))
		for i, bundle := range p.Bundles {
			bundleTrue, err := cache.BundleAllTrue(bundle)
			if err != nil {
				return Result{}, err
			}
			rem.And(masks.ShillCompat(i, s, bundleTrue))
		}
		count := rem.Count()
		survivors += count
		if count > 0 {
			sole, err := rem.Sole()
			if err == nil {
				found = Result{Assignment: sole, Shill: s}
			}
		}
	}
	if survivors != 1 {
		return Result{}, fmt.Errorf("%w: %d (assignment, shill) pairs survive mask replay", ErrNoUniqueSolution, survivors)
	}
	return found, nil
}
