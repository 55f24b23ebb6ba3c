// Turn phases: spawn, act, feed, produce tools.
package engine

import (
	"log/slog"

	"github.com/talgya/colony-sim/internal/buildings"
	"github.com/talgya/colony-sim/internal/economy"
	"github.com/talgya/colony-sim/internal/world"
)

// spawnUnitsFromBuildings lets each production building accumulate
// readiness and, once its interval is reached, buy and spawn one unit.
// An unaffordable unit leaves the counter where it is, so the building
// tries again next turn.
func (s *Simulation) spawnUnitsFromBuildings() {
	for _, b := range s.Buildings {
		switch b.Kind {
		case buildings.KindProduction:
			b.TurnsSinceLastProduction++
			if b.TurnsSinceLastProduction < b.ProductionInterval || !b.CanBuild(s) {
				continue
			}
			cost := s.UnitCost(b.UnitClass)
			if !s.Resources.CanAfford(cost) {
				slog.Debug("unit unaffordable", "building", b.String(), "unit", b.UnitClass, "cost", cost.String())
				continue
			}
			s.Resources.Debit(cost)
			if b.Build(s) {
				s.record("spawn", "%s trained a %s", b, b.UnitClass)
			} else {
				s.record("spawn", "%s paid for a %s but found no room", b, b.UnitClass)
			}
			b.TurnsSinceLastProduction = 0
		case buildings.KindToolCreation, buildings.KindPlain:
		default:
			buildings.UnknownKind(b.Kind)
		}
	}
}

// moveAndWorkUnits gives every unit exactly one action: work if a deposit
// is within reach, otherwise step toward the closest one.
func (s *Simulation) moveAndWorkUnits() {
	for _, u := range s.Units {
		if u.CanWork(s.Map) {
			got := u.Work(s.Map, s.Resources)
			s.Stats.Harvested += got
			slog.Debug("unit works", "unit", u.ID(), "class", u.Class(), "harvested", got)
		} else {
			moved := u.MoveToClosestResource(s.Map)
			slog.Debug("unit moves", "unit", u.ID(), "class", u.Class(), "moved", moved)
		}
	}
}

// feedUnits feeds units in registry order, first come first served.
// Units that starve past their limit are removed after the pass.
func (s *Simulation) feedUnits() {
	var dead []Unit
	for _, u := range s.Units {
		cost := u.FoodCost()
		if s.Resources.Get(economy.Food) >= cost {
			s.Resources.Debit(economy.Cost{economy.Food: cost})
			u.Fed(s.ResetStarvationOnFeed)
			continue
		}
		u.Starve()
		s.record("hunger", "%s went hungry (%d turns)", describe(u), u.StarvationTurns())
		if u.ShouldBeRemoved() {
			dead = append(dead, u)
		}
	}

	if len(dead) == 0 {
		return
	}
	gone := make(map[world.EntityID]bool, len(dead))
	for _, u := range dead {
		gone[u.ID()] = true
		s.Map.Remove(u.ID())
		s.record("death", "%s starved to death", describe(u))
	}
	s.Units = removeUnits(s.Units, gone)
	s.Stats.Deaths += len(dead)
}

// updateBuildingProduction advances every tool-creation building's
// cooldown and forges a tool where it is ready.
func (s *Simulation) updateBuildingProduction() {
	for _, b := range s.Buildings {
		switch b.Kind {
		case buildings.KindToolCreation:
			b.Tick()
			if b.CanBuild(s) && b.Build(s) {
				s.Stats.ToolsForged++
				s.record("tool", "%s forged a tool", b)
			}
		case buildings.KindProduction, buildings.KindPlain:
		default:
			buildings.UnknownKind(b.Kind)
		}
	}
}

// removeUnits returns the units not in gone, in their original order.
func removeUnits(list []Unit, gone map[world.EntityID]bool) []Unit {
	kept := make([]Unit, 0, len(list))
	for _, u := range list {
		if !gone[u.ID()] {
			kept = append(kept, u)
		}
	}
	return kept
}
