// Package economy provides resource kinds, cost bundles and the colony
// resource ledger.
package economy

import (
	"fmt"
	"sort"
	"strings"
)

// Kind enumerates the resources a colony stockpiles.
type Kind uint8

const (
	Wood  Kind = iota // Harvested by lumberjacks and workers
	Stone             // Quarried by miners
	Gold              // Mined; spent on units and tools
	Food              // Eaten every turn
	Tools             // Forged by tool-creation buildings, boosts harvesting
)

// NumKinds is the total number of resource kinds.
const NumKinds = 5

var kindNames = [NumKinds]string{"wood", "stone", "gold", "food", "tools"}

// AllKinds returns every resource kind in declaration order.
func AllKinds() []Kind {
	return []Kind{Wood, Stone, Gold, Food, Tools}
}

// HarvestableKinds returns the kinds that can appear as map deposits.
func HarvestableKinds() []Kind {
	return []Kind{Wood, Stone, Gold, Food}
}

// String returns the lowercase resource name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a resource name such as "wood" to its Kind.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource kind %q", name)
}

// Cost is a bundle of resource quantities required by an action.
type Cost map[Kind]int

// ParseCost converts a name-keyed bundle (as read from YAML) into a Cost.
func ParseCost(raw map[string]int) (Cost, error) {
	c := make(Cost, len(raw))
	for name, qty := range raw {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if qty < 0 {
			return nil, fmt.Errorf("negative amount %d for %s", qty, k)
		}
		c[k] = qty
	}
	return c, nil
}

// Clone returns an independent copy of the bundle.
func (c Cost) Clone() Cost {
	out := make(Cost, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// String renders the bundle in stable kind order, e.g. "wood:10 food:5".
func (c Cost) String() string {
	if len(c) == 0 {
		return "free"
	}
	kinds := make([]Kind, 0, len(c))
	for k := range c {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s:%d", k, c[k]))
	}
	return strings.Join(parts, " ")
}
