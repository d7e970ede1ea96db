// Package puzzle defines the generated puzzle value and its compact code,
// the underscore-separated wire form used for sharing and archival.
package puzzle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrison/lycan/internal/roles"
	"github.com/harrison/lycan/internal/statement"
)

// ErrMalformedPuzzle reports a puzzle code that does not decode for the
// requested village size.
var ErrMalformedPuzzle = errors.New("puzzle: malformed puzzle code")

// Puzzle is a generated puzzle: one statement bundle per villager, in
// speaker order, plus optional solution metadata. Puzzles are immutable
// after generation.
type Puzzle struct {
	// N is the number of villagers.
	N int

	// Bundles holds the statements spoken by each villager; Bundles[i] is
	// villager i's bundle, at least one statement each.
	Bundles [][]statement.Statement

	// Solution is the assignment index of the unique solution, or -1 when
	// the puzzle was decoded from a code and not yet verified.
	Solution int

	// Shill is the index of the unique shill, or roles.NoShill.
	Shill int

	// Difficulty is the sum of the statement complexity costs.
	Difficulty int

	// Seed and Attempts record how generation arrived at this puzzle.
	Seed     int64
	Attempts int
}

// New builds an unverified puzzle around the given bundles.
func New(n int, bundles [][]statement.Statement) *Puzzle {
	difficulty := 0
	for _, bundle := range bundles {
		for _, s := range bundle {
			difficulty += s.Cost()
		}
	}
	return &Puzzle{
		N:          n,
		Bundles:    bundles,
		Solution:   -1,
		Shill:      roles.NoShill,
		Difficulty: difficulty,
	}
}

// SolutionVector returns the solution as a role vector, or nil when the
// puzzle carries no solution.
func (p *Puzzle) SolutionVector() []bool {
	if p.Solution < 0 {
		return nil
	}
	return roles.IndexToVector(p.Solution, p.N)
}

// Statements returns every statement of the puzzle in speaker order.
func (p *Puzzle) Statements() []statement.Statement {
	var out []statement.Statement
	for _, bundle := range p.Bundles {
		out = append(out, bundle...)
	}
	return out
}

// Encode renders the compact puzzle code: one segment per speaker joined by
// `_`, statements within a bundle joined by `~`. Single-statement puzzles
// therefore read as plain CODE_CODE_..._CODE.
func (p *Puzzle) Encode() string {
	segments := make([]string, len(p.Bundles))
	for i, bundle := range p.Bundles {
		codes := make([]string, len(bundle))
		for j, s := range bundle {
			codes[j] = s.Encode()
		}
		segments[i] = strings.Join(codes, "~")
	}
	return strings.Join(segments, "_")
}

// Decode parses a compact puzzle code for a village of size n. The segment
// count must equal n and every statement code must decode; any defect is
// reported as ErrMalformedPuzzle.
func Decode(code string, n int) (*Puzzle, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: village size %d too small", ErrMalformedPuzzle, n)
	}
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: empty code", ErrMalformedPuzzle)
	}
	segments := strings.Split(code, "_")
	if len(segments) != n {
		return nil, fmt.Errorf("%w: %d speaker segments, want %d", ErrMalformedPuzzle, len(segments), n)
	}
	bundles := make([][]statement.Statement, n)
	for i, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: speaker %d has an empty segment", ErrMalformedPuzzle, i)
		}
		codes := strings.Split(segment, "~")
		bundle := make([]statement.Statement, 0, len(codes))
		for _, c := range codes {
			s, err := statement.Decode(c, n)
			if err != nil {
				return nil, fmt.Errorf("%w: speaker %d: %v", ErrMalformedPuzzle, i, err)
			}
			bundle = append(bundle, s)
		}
		bundles[i] = bundle
	}
	return New(n, bundles), nil
}
