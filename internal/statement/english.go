package statement

import (
	"fmt"
	"strings"
)

// defaultNames are the stock villager names used when the caller does not
// supply any.
var defaultNames = []string{
	"Alchemist Alice",
	"Baker Bob",
	"Captain Charlie",
	"Doctor Doris",
	"Elder Edith",
	"Farmer Frank",
}

// DefaultNames returns n villager names, extending the stock list with
// "Villager i" when n exceeds it.
func DefaultNames(n int) []string {
	names := make([]string, n)
	for i := 0; i < n; i++ {
		if i < len(defaultNames) {
			names[i] = defaultNames[i]
		} else {
			names[i] = fmt.Sprintf("Villager %d", i)
		}
	}
	return names
}

// English renders the statement as a sentence using the given villager
// names. names[i] must exist for every index the statement refers to.
func (s Statement) English(names []string) string {
	switch s.Kind {
	case Implication:
		return fmt.Sprintf("If %s is a werewolf, then %s is a werewolf.", names[s.A], names[s.B])
	case Equivalence:
		return fmt.Sprintf("%s and %s are both werewolves, or neither is.", names[s.A], names[s.B])
	case Disjunction:
		return fmt.Sprintf("At least one of %s and %s is a werewolf.", names[s.A], names[s.B])
	case ExclusiveOne:
		return fmt.Sprintf("Exactly one of %s and %s is a werewolf.", names[s.A], names[s.B])
	case AtMostOne:
		return fmt.Sprintf("%s and %s are not both werewolves.", names[s.A], names[s.B])
	case ConverseImplication:
		return fmt.Sprintf("If %s is not a werewolf, then %s is a werewolf.", names[s.A], names[s.B])
	case Neither:
		return fmt.Sprintf("Neither %s nor %s is a werewolf.", names[s.A], names[s.B])
	case ExactCount:
		return fmt.Sprintf("Exactly %d %s among %s.", s.K, wolves(s.K), scopeDescription(s.Scope, names))
	case AtMostCount:
		return fmt.Sprintf("At most %d %s among %s.", s.K, wolves(s.K), scopeDescription(s.Scope, names))
	case AtLeastCount:
		return fmt.Sprintf("At least %d %s among %s.", s.K, wolves(s.K), scopeDescription(s.Scope, names))
	case EvenParity:
		return fmt.Sprintf("An even number of werewolves among %s.", scopeDescription(s.Scope, names))
	case OddParity:
		return fmt.Sprintf("An odd number of werewolves among %s.", scopeDescription(s.Scope, names))
	}
	return s.Encode()
}

func wolves(k int) string {
	if k == 1 {
		return "werewolf"
	}
	return "werewolves"
}

// scopeDescription names small scopes outright and summarises large ones.
func scopeDescription(scope []int, names []string) string {
	listed := make([]string, len(scope))
	for i, v := range scope {
		listed[i] = names[v]
	}
	switch {
	case len(listed) == 1:
		return listed[0]
	case len(listed) <= 3:
		return strings.Join(listed[:len(listed)-1], ", ") + ", and " + listed[len(listed)-1]
	default:
		return fmt.Sprintf("%d villagers", len(listed))
	}
}
