// Package buildings provides the colony's structures. Every building is
// one of a closed set of kinds; phase code switches over Kind and treats
// an unknown kind as a bug.
package buildings

import (
	"fmt"
	"strings"

	"github.com/talgya/colony-sim/internal/economy"
	"github.com/talgya/colony-sim/internal/units"
)

// Kind is the capability variant of a building.
type Kind uint8

const (
	KindPlain        Kind = iota // Neither spawns units nor forges tools
	KindProduction               // Periodically spawns a unit
	KindToolCreation             // Forges tools when ready
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindProduction:
		return "production"
	case KindToolCreation:
		return "tool-creation"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// UnknownKind panics for a Kind outside the closed set.
func UnknownKind(k Kind) {
	panic(fmt.Sprintf("buildings: unknown kind %d", uint8(k)))
}

// Class identifies a building type.
type Class uint8

const (
	TownCenter Class = iota
	LumberCamp
	MiningCamp
	Farm
	Forge
	Storehouse
)

// NumClasses is the total number of building classes.
const NumClasses = 6

var classNames = [NumClasses]string{"town_center", "lumber_camp", "mining_camp", "farm", "forge", "storehouse"}

// AllClasses returns every building class in declaration order.
func AllClasses() []Class {
	return []Class{TownCenter, LumberCamp, MiningCamp, Farm, Forge, Storehouse}
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// ParseClass resolves a building name such as "town_center".
func ParseClass(name string) (Class, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, s := range classNames {
		if s == n {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("unknown building class %q", name)
}

// Spec holds the per-class constants a building is built from.
type Spec struct {
	Kind             Kind
	ConstructionCost economy.Cost

	// Production
	UnitClass          units.Class
	ProductionInterval int

	// Tool creation
	ToolCost     economy.Cost
	ToolCooldown int
}

// Catalog maps each building class to its spec.
type Catalog map[Class]Spec

// DefaultCatalog returns the stock building specs.
func DefaultCatalog() Catalog {
	return Catalog{
		TownCenter: {
			Kind:               KindProduction,
			UnitClass:          units.Worker,
			ProductionInterval: 4,
		},
		LumberCamp: {
			Kind:               KindProduction,
			ConstructionCost:   economy.Cost{economy.Wood: 20},
			UnitClass:          units.Lumberjack,
			ProductionInterval: 3,
		},
		MiningCamp: {
			Kind:               KindProduction,
			ConstructionCost:   economy.Cost{economy.Wood: 20, economy.Stone: 10},
			UnitClass:          units.Miner,
			ProductionInterval: 3,
		},
		Farm: {
			Kind:               KindProduction,
			ConstructionCost:   economy.Cost{economy.Wood: 15},
			UnitClass:          units.Peasant,
			ProductionInterval: 3,
		},
		Forge: {
			Kind:             KindToolCreation,
			ConstructionCost: economy.Cost{economy.Stone: 20, economy.Gold: 5},
			ToolCost:         economy.Cost{economy.Wood: 5, economy.Gold: 2},
			ToolCooldown:     2,
		},
		Storehouse: {
			Kind:             KindPlain,
			ConstructionCost: economy.Cost{economy.Wood: 10},
		},
	}
}

// Spec returns the spec for a class, falling back to the stock catalog.
func (c Catalog) Spec(class Class) Spec {
	if s, ok := c[class]; ok {
		return s
	}
	return DefaultCatalog()[class]
}
