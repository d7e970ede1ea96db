// Package roles encodes the truth-telling semantics of the village: role
// vectors and their integer assignment indices, the per-speaker human/wolf
// masks, and the compatibility masks that tie a speaker's statements to
// their role. A speaker who is human (and not the shill) is truthful, which
// means every statement in their bundle holds; a werewolf, or the shill,
// has at least one false statement.
package roles

import (
	"github.com/harrison/lycan/internal/bitset"
)

// NoShill marks the absence of a shill in APIs that carry a shill index.
const NoShill = -1

// VectorToIndex packs a role vector into its assignment index: bit i is set
// iff w[i] is a werewolf.
func VectorToIndex(w []bool) int {
	index := 0
	for i, wolf := range w {
		if wolf {
			index |= 1 << i
		}
	}
	return index
}

// IndexToVector unpacks an assignment index into a role vector of length n.
func IndexToVector(index, n int) []bool {
	w := make([]bool, n)
	for i := 0; i < n; i++ {
		w[i] = index&(1<<i) != 0
	}
	return w
}

// WolfCount returns the number of werewolves in the assignment index.
func WolfCount(index int) int {
	count := 0
	for index != 0 {
		index &= index - 1
		count++
	}
	return count
}

// Masks holds the per-speaker role masks for a village of size N: Human[i]
// is the set of assignments where villager i is not a werewolf, Wolf[i] its
// complement. Built once per N and read-only afterwards.
type Masks struct {
	N     int
	Human []*bitset.Set
	Wolf  []*bitset.Set
}

// NewMasks computes the human and wolf masks for every speaker.
func NewMasks(n int) *Masks {
	m := &Masks{
		N:     n,
		Human: make([]*bitset.Set, n),
		Wolf:  make([]*bitset.Set, n),
	}
	for i := 0; i < n; i++ {
		human := bitset.New(n)
		wolf := bitset.New(n)
		for j := 0; j < 1<<n; j++ {
			if j&(1<<i) == 0 {
				human.Set(j)
			} else {
				wolf.Set(j)
			}
		}
		m.Human[i] = human
		m.Wolf[i] = wolf
	}
	return m
}

// SpeakerCompat returns the assignments compatible with speaker i uttering a
// bundle whose all-true mask is bundleTrue, under the baseline rule: humans
// have every statement true, werewolves have at least one false.
//
//	(Human[i] ∧ bundleTrue) ∨ (Wolf[i] ∧ ¬bundleTrue)
func (m *Masks) SpeakerCompat(i int, bundleTrue *bitset.Set) *bitset.Set {
	truthful := m.Human[i].Clone().And(bundleTrue)
	lying := bundleTrue.Clone().Complement().And(m.Wolf[i])
	return truthful.Or(lying)
}

// ShillCompat returns the assignments compatible with speaker i under the
// hypothesis that villager s is the shill. The shill is a non-werewolf who
// lies, so when i == s the speaker must be human with at least one false
// statement; everyone else follows the baseline rule.
func (m *Masks) ShillCompat(i, s int, bundleTrue *bitset.Set) *bitset.Set {
	if i == s {
		return bundleTrue.Clone().Complement().And(m.Human[i])
	}
	return m.SpeakerCompat(i, bundleTrue)
}

// AtLeastOneWolf returns the assignments with one or more werewolves. The
// puzzle framing promises the village is not wolf-free, so every remaining
// mask starts from this set.
func AtLeastOneWolf(n int) *bitset.Set {
	s := bitset.All(n)
	s.Clear(0)
	return s
}
