// Package engine provides the turn-based colony simulation: one aggregate
// game state advanced by four ordered phases per turn.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/colony-sim/internal/buildings"
	"github.com/talgya/colony-sim/internal/economy"
	"github.com/talgya/colony-sim/internal/units"
	"github.com/talgya/colony-sim/internal/world"
)

// Unit is what the engine needs from a colonist. *units.Unit satisfies it.
type Unit interface {
	ID() world.EntityID
	Class() units.Class
	SpawnPosition() world.Position
	CanBeCreated(m *world.Map) bool
	CanWork(m *world.Map) bool
	Work(m *world.Map, l *economy.Ledger) int
	MoveToClosestResource(m *world.Map) bool
	FoodCost() int
	Starve()
	Fed(resetStarvation bool)
	ShouldBeRemoved() bool
	StarvationTurns() int
}

// UnitFactory builds a unit of a class bound to a spawn tile.
type UnitFactory func(class units.Class, pos world.Position) Unit

// Options configure a Simulation beyond its map and starting stock.
type Options struct {
	Spawner               *units.Spawner    // nil: stock catalog
	UnitCosts             units.CostTable   // nil: uniform cost for every class
	BuildingCatalog       buildings.Catalog // nil: stock catalog
	ResetStarvationOnFeed bool              // false: starvation counter is sticky
}

// Simulation holds the complete game state. Every phase runs as a method
// on it, so tests can drive a phase against a hand-built state.
type Simulation struct {
	Map       *world.Map
	Units     []Unit                // Registry order = iteration order
	Buildings []*buildings.Building // Registry order = iteration order
	Resources *economy.Ledger
	Turn      int // Starts at 1, +1 per PlayTurn

	UnitCost              func(units.Class) economy.Cost
	NewUnit               UnitFactory
	BuildingCatalog       buildings.Catalog
	ResetStarvationOnFeed bool

	Events []Event // Recent events, trimmed to maxEvents
	Stats  SimStats

	nextBuildingID buildings.ID
	eventsRecorded int
}

// Event is a notable occurrence in the colony.
type Event struct {
	Turn        int    `json:"turn" db:"turn"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "spawn", "death", "hunger", "tool", "building"
}

// SimStats tracks aggregate colony statistics.
type SimStats struct {
	Population  int `json:"population"`
	Buildings   int `json:"buildings"`
	Births      int `json:"births"`
	Deaths      int `json:"deaths"`
	Starving    int `json:"starving"` // Units with a non-zero starvation counter
	Harvested   int `json:"harvested"`
	ToolsForged int `json:"tools_forged"`
}

const maxEvents = 1000

// NewSimulation creates a Simulation on a map with a starting stockpile.
func NewSimulation(m *world.Map, start map[economy.Kind]int, opts Options) *Simulation {
	spawner := opts.Spawner
	if spawner == nil {
		spawner = units.NewSpawner(nil)
	}
	costs := opts.UnitCosts
	catalog := opts.BuildingCatalog
	if catalog == nil {
		catalog = buildings.DefaultCatalog()
	}

	sim := &Simulation{
		Map:       m,
		Resources: economy.NewLedger(start),
		Turn:      1,
		UnitCost:  costs.Lookup,
		NewUnit: func(class units.Class, pos world.Position) Unit {
			return spawner.Spawn(class, pos)
		},
		BuildingCatalog:       catalog,
		ResetStarvationOnFeed: opts.ResetStarvationOnFeed,
	}
	sim.updateStats()
	return sim
}

// Ledger exposes the stockpile to buildings.
func (s *Simulation) Ledger() *economy.Ledger {
	return s.Resources
}

// PlayTurn runs the four phases once, in order, then advances the turn
// counter. There is no rollback: effects of earlier phases stand.
func (s *Simulation) PlayTurn() {
	s.spawnUnitsFromBuildings()
	s.moveAndWorkUnits()
	s.feedUnits()
	s.updateBuildingProduction()

	s.Turn++
	s.updateStats()
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}

	slog.Info("turn complete",
		"turn", s.Turn-1,
		"population", s.Stats.Population,
		"starving", s.Stats.Starving,
		"buildings", s.Stats.Buildings,
		"resources", s.Resources.String(),
	)
}

// CurrentTurn returns the number of the turn about to be played.
func (s *Simulation) CurrentTurn() int {
	return s.Turn
}

func (s *Simulation) record(category, format string, args ...any) {
	s.eventsRecorded++
	s.Events = append(s.Events, Event{
		Turn:        s.Turn,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	})
}

func (s *Simulation) updateStats() {
	starving := 0
	for _, u := range s.Units {
		if u.StarvationTurns() > 0 {
			starving++
		}
	}
	s.Stats.Population = len(s.Units)
	s.Stats.Buildings = len(s.Buildings)
	s.Stats.Starving = starving
}
