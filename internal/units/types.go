// Package units provides the colony's worker classes, their stats and
// costs, and the behaviour the turn engine drives each turn.
package units

import (
	"fmt"
	"strings"

	"github.com/talgya/colony-sim/internal/economy"
)

// Class identifies a unit type.
type Class uint8

const (
	Worker     Class = iota // Generalist, harvests anything
	Lumberjack              // Wood specialist
	Miner                   // Stone and gold
	Peasant                 // Food
)

// NumClasses is the total number of unit classes.
const NumClasses = 4

var classNames = [NumClasses]string{"worker", "lumberjack", "miner", "peasant"}

// AllClasses returns every unit class in declaration order.
func AllClasses() []Class {
	return []Class{Worker, Lumberjack, Miner, Peasant}
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// ParseClass resolves a class name such as "miner".
func ParseClass(name string) (Class, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range classNames {
		if s == n {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("unknown unit class %q", name)
}

// Stats are the per-class constants.
type Stats struct {
	FoodCost        int            // Food eaten per turn
	StarvationLimit int            // Hungry turns before the unit dies
	Yield           int            // Amount harvested per work action
	Harvests        []economy.Kind // Deposit kinds the class can work
}

// Catalog maps each class to its stats.
type Catalog map[Class]Stats

// DefaultCatalog returns the stock class stats.
func DefaultCatalog() Catalog {
	return Catalog{
		Worker: {
			FoodCost:        2,
			StarvationLimit: 5,
			Yield:           1,
			Harvests:        economy.HarvestableKinds(),
		},
		Lumberjack: {
			FoodCost:        3,
			StarvationLimit: 5,
			Yield:           3,
			Harvests:        []economy.Kind{economy.Wood},
		},
		Miner: {
			FoodCost:        3,
			StarvationLimit: 5,
			Yield:           2,
			Harvests:        []economy.Kind{economy.Stone, economy.Gold},
		},
		Peasant: {
			FoodCost:        1,
			StarvationLimit: 5,
			Yield:           3,
			Harvests:        []economy.Kind{economy.Food},
		},
	}
}

// Stats returns the stats for a class, falling back to the stock catalog
// for classes the catalog does not list.
func (c Catalog) Stats(class Class) Stats {
	if s, ok := c[class]; ok {
		return s
	}
	return DefaultCatalog()[class]
}

// UniformCost is the bundle every class costs unless a CostTable says
// otherwise.
func UniformCost() economy.Cost {
	return economy.Cost{
		economy.Wood:  10,
		economy.Stone: 10,
		economy.Gold:  10,
		economy.Food:  10,
	}
}

// CostTable is the unit cost lookup keyed by class.
type CostTable map[Class]economy.Cost

// Lookup returns a copy of the cost for class, or UniformCost when the
// table has no entry.
func (t CostTable) Lookup(class Class) economy.Cost {
	if c, ok := t[class]; ok {
		return c.Clone()
	}
	return UniformCost()
}
