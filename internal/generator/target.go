package generator

import (
	"math/rand"

	"github.com/harrison/lycan/internal/roles"
)

// chooseTarget picks the ground truth for an attempt: an assignment index
// uniform over those satisfying the werewolf count bounds, and, in shill
// mode, a shill uniform among its non-werewolves.
func chooseTarget(rng *rand.Rand, cfg Config) (target, shill int) {
	minW, maxW := cfg.wolfBounds()
	valid := make([]int, 0, 1<<cfg.N)
	for j := 1; j < 1<<cfg.N; j++ {
		if c := roles.WolfCount(j); c >= minW && c <= maxW {
			valid = append(valid, j)
		}
	}
	target = valid[rng.Intn(len(valid))]

	shill = roles.NoShill
	if cfg.HasShill {
		humans := make([]int, 0, cfg.N)
		for i := 0; i < cfg.N; i++ {
			if target&(1<<i) == 0 {
				humans = append(humans, i)
			}
		}
		shill = humans[rng.Intn(len(humans))]
	}
	return target, shill
}
