package generator

import (
	"fmt"

	"github.com/harrison/lycan/internal/statement"
)

// Config controls puzzle generation. DefaultConfig returns the values the
// CLI starts from; zero values for the bound fields mean "use the default".
type Config struct {
	// N is the number of villagers. The design targets 4..6; anything in
	// [2, 20] is accepted.
	N int

	// StatementsMin and StatementsMax bound the bundle size per speaker.
	StatementsMin int
	StatementsMax int

	// HasShill enables shill mode: exactly one non-werewolf lies.
	HasShill bool

	// AllowSelfReference lets speaker i utter statements involving i.
	AllowSelfReference bool

	// AllowDuplicateStatements permits the same canonical code to appear
	// under more than one speaker.
	AllowDuplicateStatements bool

	// MaxCountStatements caps count statements across the whole puzzle.
	// Negative means no cap.
	MaxCountStatements int

	// RequireRelationship rejects puzzles without a single pair statement.
	RequireRelationship bool

	// RejectUniformKinds rejects puzzles whose statements are all the same
	// variant.
	RejectUniformKinds bool

	// MinWerewolves and MaxWerewolves bound the target assignment's wolf
	// count. Zero means the default: at least one wolf, at most N (N-1 in
	// shill mode, which needs a non-werewolf to bribe).
	MinWerewolves int
	MaxWerewolves int

	// MaxAttempts bounds the restart loop before ErrExhausted.
	MaxAttempts int

	// CandidatePoolSize bounds how many multi-statement bundles are sampled
	// per speaker and bundle size.
	CandidatePoolSize int

	// Library selects which statement variants the library enumerates.
	Library statement.LibraryConfig
}

// DefaultConfig returns the default generation configuration for n
// villagers: single statements, no shill, self-reference forbidden,
// duplicate statements forbidden, all variants enabled.
func DefaultConfig(n int) Config {
	return Config{
		N:                  n,
		StatementsMin:      1,
		StatementsMax:      1,
		MaxCountStatements: -1,
		MaxAttempts:        100,
		CandidatePoolSize:  50,
	}
}

// Validate reports the first defect in the configuration.
func (c Config) Validate() error {
	if c.N < 2 || c.N > 20 {
		return fmt.Errorf("generator: N=%d outside [2, 20]", c.N)
	}
	if c.StatementsMin < 1 {
		return fmt.Errorf("generator: statements-min %d must be at least 1", c.StatementsMin)
	}
	if c.StatementsMax < c.StatementsMin {
		return fmt.Errorf("generator: statements-max %d below statements-min %d", c.StatementsMax, c.StatementsMin)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("generator: max-attempts %d must be at least 1", c.MaxAttempts)
	}
	if c.CandidatePoolSize < 1 {
		return fmt.Errorf("generator: candidate-pool-size %d must be at least 1", c.CandidatePoolSize)
	}
	minW, maxW := c.wolfBounds()
	if minW > maxW {
		return fmt.Errorf("generator: werewolf bounds [%d, %d] admit no assignment", minW, maxW)
	}
	return nil
}

// wolfBounds resolves the configured werewolf count bounds. There is always
// at least one werewolf, and shill mode needs at least one non-werewolf.
func (c Config) wolfBounds() (int, int) {
	minW := c.MinWerewolves
	if minW < 1 {
		minW = 1
	}
	maxW := c.MaxWerewolves
	if maxW < 1 || maxW > c.N {
		maxW = c.N
	}
	if c.HasShill && maxW > c.N-1 {
		maxW = c.N - 1
	}
	return minW, maxW
}
