package buildings

import (
	"fmt"

	"github.com/talgya/colony-sim/internal/economy"
	"github.com/talgya/colony-sim/internal/units"
)

// ID identifies a building.
type ID uint64

// Env is the slice of game state a building acts on.
type Env interface {
	Ledger() *economy.Ledger
	CreateUnit(class units.Class) bool
}

// Building is a stationary structure.
type Building struct {
	ID               ID           `json:"id"`
	Class            Class        `json:"class"`
	Kind             Kind         `json:"kind"`
	Constructed      bool         `json:"constructed"`
	ConstructionCost economy.Cost `json:"-"`

	// Production
	UnitClass                units.Class `json:"unit_class,omitempty"`
	ProductionInterval       int         `json:"production_interval,omitempty"`
	TurnsSinceLastProduction int         `json:"turns_since_last_production"`
	UnitsProduced            int         `json:"units_produced"`

	// Tool creation
	ToolCost           economy.Cost `json:"-"`
	ToolCooldown       int          `json:"tool_cooldown,omitempty"`
	TurnsSinceLastTool int          `json:"turns_since_last_tool"`
	ToolsForged        int          `json:"tools_forged"`
}

// New creates an unconstructed building from a spec.
func New(id ID, class Class, spec Spec) *Building {
	return &Building{
		ID:                 id,
		Class:              class,
		Kind:               spec.Kind,
		ConstructionCost:   spec.ConstructionCost.Clone(),
		UnitClass:          spec.UnitClass,
		ProductionInterval: spec.ProductionInterval,
		ToolCost:           spec.ToolCost.Clone(),
		ToolCooldown:       spec.ToolCooldown,
	}
}

// CanBuild reports whether Build would act now. An unconstructed building
// is ready when its construction cost is affordable. Tool creation gates
// on its cooldown and tool cost; the other kinds are always ready.
func (b *Building) CanBuild(env Env) bool {
	if !b.Constructed {
		return env.Ledger().CanAfford(b.ConstructionCost)
	}
	switch b.Kind {
	case KindProduction, KindPlain:
		return true
	case KindToolCreation:
		return b.TurnsSinceLastTool >= b.ToolCooldown && env.Ledger().CanAfford(b.ToolCost)
	default:
		UnknownKind(b.Kind)
		return false
	}
}

// Build runs the building's action and reports success. The first call
// constructs the building; after that a production building spawns one
// unit, a tool-creation building forges one tool and a plain building
// does nothing.
func (b *Building) Build(env Env) bool {
	if !b.Constructed {
		if !env.Ledger().CanAfford(b.ConstructionCost) {
			return false
		}
		env.Ledger().Debit(b.ConstructionCost)
		b.Constructed = true
		return true
	}

	switch b.Kind {
	case KindProduction:
		if !env.CreateUnit(b.UnitClass) {
			return false
		}
		b.UnitsProduced++
		return true
	case KindToolCreation:
		if !b.CanBuild(env) {
			return false
		}
		env.Ledger().Debit(b.ToolCost)
		env.Ledger().Credit(economy.Tools, 1)
		b.ToolsForged++
		b.TurnsSinceLastTool = 0
		return true
	case KindPlain:
		return true
	default:
		UnknownKind(b.Kind)
		return false
	}
}

// Tick advances the tool cooldown by one turn.
func (b *Building) Tick() {
	if b.Constructed && b.Kind == KindToolCreation {
		b.TurnsSinceLastTool++
	}
}

func (b *Building) String() string {
	return fmt.Sprintf("%s#%d", b.Class, b.ID)
}
