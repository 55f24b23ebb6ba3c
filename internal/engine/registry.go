// Unit and building lifecycle: creation, destruction and lookup.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/colony-sim/internal/buildings"
	"github.com/talgya/colony-sim/internal/units"
	"github.com/talgya/colony-sim/internal/world"
)

// CreateUnit spawns a unit on a random empty tile. Nothing changes when the
// map is full or the unit refuses its tile.
func (s *Simulation) CreateUnit(class units.Class) bool {
	pos, ok := s.Map.RandomEmptyPosition()
	if !ok {
		slog.Debug("no room for unit", "class", class)
		return false
	}
	u := s.NewUnit(class, pos)
	if !u.CanBeCreated(s.Map) {
		return false
	}
	if !s.Map.Place(u.ID(), pos) {
		return false
	}
	s.Units = append(s.Units, u)
	s.Stats.Births++
	s.Stats.Population = len(s.Units)
	s.record("spawn", "a %s arrives at %s", describe(u), pos)
	return true
}

// DestroyUnit removes a unit from the roster and the map. No-op if absent.
func (s *Simulation) DestroyUnit(id world.EntityID) {
	for i, u := range s.Units {
		if u.ID() != id {
			continue
		}
		s.Units = append(s.Units[:i:i], s.Units[i+1:]...)
		s.Map.Remove(id)
		s.Stats.Population = len(s.Units)
		s.record("death", "%s was removed", describe(u))
		return
	}
}

// CreateBuilding constructs a building of the given class and admits it
// only if its first Build succeeds.
func (s *Simulation) CreateBuilding(class buildings.Class) bool {
	b := buildings.New(s.nextBuildingID+1, class, s.BuildingCatalog.Spec(class))
	if !b.Build(s) {
		slog.Debug("building rejected", "class", class, "cost", b.ConstructionCost.String())
		return false
	}
	s.nextBuildingID++
	s.Buildings = append(s.Buildings, b)
	s.Stats.Buildings = len(s.Buildings)
	s.record("building", "%s constructed", b)
	return true
}

// DestroyBuilding removes a building. No-op if absent.
func (s *Simulation) DestroyBuilding(id buildings.ID) {
	for i, b := range s.Buildings {
		if b.ID != id {
			continue
		}
		s.Buildings = append(s.Buildings[:i:i], s.Buildings[i+1:]...)
		s.Stats.Buildings = len(s.Buildings)
		s.record("building", "%s demolished", b)
		return
	}
}

// Unit returns the live unit with the given ID.
func (s *Simulation) Unit(id world.EntityID) (Unit, bool) {
	for _, u := range s.Units {
		if u.ID() == id {
			return u, true
		}
	}
	return nil, false
}

// Building returns the building with the given ID.
func (s *Simulation) Building(id buildings.ID) (*buildings.Building, bool) {
	for _, b := range s.Buildings {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

func describe(u Unit) string {
	return fmt.Sprintf("%s#%d", u.Class(), u.ID())
}
