package engine

import (
	"testing"

	"github.com/talgya/colony-sim/internal/buildings"
	"github.com/talgya/colony-sim/internal/economy"
	"github.com/talgya/colony-sim/internal/units"
	"github.com/talgya/colony-sim/internal/world"
)

// fakeUnit is a scripted colonist for phase tests.
type fakeUnit struct {
	id         world.EntityID
	food       int
	limit      int
	starvation int
	canWork    bool
	creatable  bool

	worked, moved, fed int
}

func (f *fakeUnit) ID() world.EntityID { return f.id }

func (f *fakeUnit) Class() units.Class { return units.Worker }

func (f *fakeUnit) SpawnPosition() world.Position { return world.Position{} }

func (f *fakeUnit) CanBeCreated(*world.Map) bool { return f.creatable }

func (f *fakeUnit) CanWork(*world.Map) bool { return f.canWork }

func (f *fakeUnit) FoodCost() int { return f.food }

func (f *fakeUnit) Starve() { f.starvation++ }

func (f *fakeUnit) ShouldBeRemoved() bool { return f.starvation >= f.limit }

func (f *fakeUnit) StarvationTurns() int { return f.starvation }

func (f *fakeUnit) MoveToClosestResource(*world.Map) bool {
	f.moved++
	return true
}

func (f *fakeUnit) Work(*world.Map, *economy.Ledger) int {
	f.worked++
	return 0
}

func (f *fakeUnit) Fed(reset bool) {
	f.fed++
	if reset {
		f.starvation = 0
	}
}

func newTestSim(w, h int, start map[economy.Kind]int, opts Options) *Simulation {
	return NewSimulation(world.NewMap(w, h, 1), start, opts)
}

func addFakes(t *testing.T, s *Simulation, fakes ...*fakeUnit) {
	t.Helper()
	for i, f := range fakes {
		if !s.Map.Place(f.id, world.Position{X: i, Y: 0}) {
			t.Fatalf("place fake %d failed", f.id)
		}
		s.Units = append(s.Units, f)
	}
}

func ids(list []Unit) []world.EntityID {
	out := make([]world.EntityID, len(list))
	for i, u := range list {
		out[i] = u.ID()
	}
	return out
}

func TestTurnAdvancesOnEmptyColony(t *testing.T) {
	s := newTestSim(3, 3, nil, Options{})
	for want := 2; want <= 4; want++ {
		s.PlayTurn()
		if s.Turn != want {
			t.Fatalf("turn = %d, want %d", s.Turn, want)
		}
	}
}

func TestStarvationScenario(t *testing.T) {
	spawner := units.NewSpawner(units.Catalog{
		units.Peasant: {FoodCost: 10, StarvationLimit: 5, Yield: 1, Harvests: []economy.Kind{economy.Food}},
	})
	s := newTestSim(5, 5, map[economy.Kind]int{economy.Food: 100}, Options{Spawner: spawner})
	// Out of reach of a peasant, keeps the map from counting as harvested.
	s.Map.SetDeposit(world.Position{X: 4, Y: 4}, economy.Gold, 50)

	if !s.CreateUnit(units.Peasant) {
		t.Fatalf("create unit failed")
	}
	u := s.Units[0]

	for turn := 1; turn <= 10; turn++ {
		s.PlayTurn()
		if got, want := s.Resources.Get(economy.Food), 100-10*turn; got != want {
			t.Fatalf("turn %d: food = %d, want %d", turn, got, want)
		}
		if u.StarvationTurns() != 0 {
			t.Fatalf("turn %d: fed unit is starving", turn)
		}
	}

	for turn := 11; turn <= 14; turn++ {
		s.PlayTurn()
		if u.StarvationTurns() != turn-10 {
			t.Fatalf("turn %d: starvation = %d, want %d", turn, u.StarvationTurns(), turn-10)
		}
		if len(s.Units) != 1 {
			t.Fatalf("turn %d: unit removed too early", turn)
		}
	}

	s.PlayTurn()
	if !u.ShouldBeRemoved() {
		t.Fatalf("unit should be flagged at starvation 5")
	}
	if len(s.Units) != 0 {
		t.Fatalf("starved unit still in registry")
	}
	if s.Map.EntityCount() != 0 {
		t.Fatalf("starved unit still on the map")
	}
	if s.Stats.Deaths != 1 {
		t.Fatalf("deaths = %d, want 1", s.Stats.Deaths)
	}
	if !s.IsGameOver() || s.Outcome() != Defeat {
		t.Fatalf("empty roster after turn 5 should be a defeat, got %s", s.Outcome())
	}
}

func productionSim(start map[economy.Kind]int) (*Simulation, *buildings.Building) {
	s := newTestSim(5, 5, start, Options{
		BuildingCatalog: buildings.Catalog{
			buildings.TownCenter: {Kind: buildings.KindProduction, UnitClass: units.Worker, ProductionInterval: 3},
		},
	})
	if !s.CreateBuilding(buildings.TownCenter) {
		panic("free building rejected")
	}
	return s, s.Buildings[0]
}

func TestProductionIntervalScenario(t *testing.T) {
	s, b := productionSim(units.UniformCost())

	s.PlayTurn()
	s.PlayTurn()
	if len(s.Units) != 0 {
		t.Fatalf("unit spawned before the interval")
	}
	if b.TurnsSinceLastProduction != 2 {
		t.Fatalf("counter = %d, want 2", b.TurnsSinceLastProduction)
	}

	s.PlayTurn()
	if len(s.Units) != 1 {
		t.Fatalf("units = %d, want 1", len(s.Units))
	}
	if b.TurnsSinceLastProduction != 0 {
		t.Fatalf("counter = %d, want reset to 0", b.TurnsSinceLastProduction)
	}
	for _, k := range economy.AllKinds() {
		if s.Resources.Get(k) != 0 {
			t.Fatalf("%s = %d, want 0", k, s.Resources.Get(k))
		}
	}
	// Spawned before the feed phase, so it already went hungry once.
	if s.Units[0].StarvationTurns() != 1 {
		t.Fatalf("new unit starvation = %d, want 1", s.Units[0].StarvationTurns())
	}
}

func TestSpawnCostIsAllOrNothing(t *testing.T) {
	start := units.UniformCost()
	start[economy.Stone] = 9
	s, b := productionSim(start)

	for i := 0; i < 4; i++ {
		s.PlayTurn()
	}
	if len(s.Units) != 0 {
		t.Fatalf("unit spawned without enough stone")
	}
	for _, k := range economy.HarvestableKinds() {
		if s.Resources.Get(k) != start[k] {
			t.Fatalf("%s = %d, want untouched %d", k, s.Resources.Get(k), start[k])
		}
	}
	if b.TurnsSinceLastProduction != 4 {
		t.Fatalf("counter = %d, want 4 (not reset)", b.TurnsSinceLastProduction)
	}

	s.Resources.Credit(economy.Stone, 1)
	s.PlayTurn()
	if len(s.Units) != 1 || b.TurnsSinceLastProduction != 0 {
		t.Fatalf("expected a spawn on the very next affordable turn")
	}
}

func TestSpawnUsesPluggableCost(t *testing.T) {
	s, _ := productionSim(map[economy.Kind]int{economy.Gold: 3})
	s.UnitCost = units.CostTable{units.Worker: {economy.Gold: 3}}.Lookup

	for i := 0; i < 3; i++ {
		s.PlayTurn()
	}
	if len(s.Units) != 1 {
		t.Fatalf("units = %d, want 1", len(s.Units))
	}
	if s.Resources.Get(economy.Gold) != 0 {
		t.Fatalf("gold = %d, want 0", s.Resources.Get(economy.Gold))
	}
}

func TestSpawnWithFullMapStillPays(t *testing.T) {
	s := NewSimulation(world.NewMap(1, 1, 1), units.UniformCost(), Options{
		BuildingCatalog: buildings.Catalog{
			buildings.Farm: {Kind: buildings.KindProduction, UnitClass: units.Peasant, ProductionInterval: 1},
		},
	})
	s.Map.SetDeposit(world.Position{}, economy.Wood, 1)
	s.CreateBuilding(buildings.Farm)

	s.PlayTurn()
	if len(s.Units) != 0 {
		t.Fatalf("unit spawned on a full map")
	}
	if s.Resources.Get(economy.Wood) != 0 {
		t.Fatalf("cost should be spent even when no tile is free")
	}
	if s.Buildings[0].TurnsSinceLastProduction != 0 {
		t.Fatalf("counter should reset after paying")
	}
}

func TestActGivesExactlyOneAction(t *testing.T) {
	s := newTestSim(4, 1, nil, Options{})
	worker := &fakeUnit{id: 1, canWork: true, limit: 5}
	walker := &fakeUnit{id: 2, canWork: false, limit: 5}
	addFakes(t, s, worker, walker)

	s.moveAndWorkUnits()
	if worker.worked != 1 || worker.moved != 0 {
		t.Fatalf("worker: worked=%d moved=%d", worker.worked, worker.moved)
	}
	if walker.worked != 0 || walker.moved != 1 {
		t.Fatalf("walker: worked=%d moved=%d", walker.worked, walker.moved)
	}
}

func TestFeedIsFirstComeFirstServedWithDeferredRemoval(t *testing.T) {
	s := newTestSim(6, 1, map[economy.Kind]int{economy.Food: 10}, Options{})
	a := &fakeUnit{id: 1, food: 5, limit: 1}
	b := &fakeUnit{id: 2, food: 5, limit: 1}
	c := &fakeUnit{id: 3, food: 5, limit: 1}
	d := &fakeUnit{id: 4, food: 5, limit: 3}
	e := &fakeUnit{id: 5, food: 5, limit: 1}
	addFakes(t, s, a, b, c, d, e)

	s.feedUnits()

	if a.fed != 1 || b.fed != 1 {
		t.Fatalf("first two units should eat")
	}
	if c.starvation != 1 || d.starvation != 1 || e.starvation != 1 {
		t.Fatalf("later units should starve once")
	}
	if s.Resources.Get(economy.Food) != 0 {
		t.Fatalf("food = %d, want 0", s.Resources.Get(economy.Food))
	}

	got := ids(s.Units)
	want := []world.EntityID{1, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("survivors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("survivors = %v, want %v", got, want)
		}
	}
	for _, id := range []world.EntityID{3, 5} {
		if _, ok := s.Map.PositionOf(id); ok {
			t.Fatalf("dead unit %d still on the map", id)
		}
	}
	if s.Stats.Deaths != 2 {
		t.Fatalf("deaths = %d, want 2", s.Stats.Deaths)
	}
}

func TestStarvationPolicy(t *testing.T) {
	for _, reset := range []bool{false, true} {
		s := newTestSim(2, 1, nil, Options{ResetStarvationOnFeed: reset})
		u := &fakeUnit{id: 1, food: 1, limit: 5}
		addFakes(t, s, u)

		s.feedUnits()
		s.Resources.Credit(economy.Food, 1)
		s.feedUnits()

		want := 1
		if reset {
			want = 0
		}
		if u.starvation != want {
			t.Fatalf("reset=%v: starvation = %d, want %d", reset, u.starvation, want)
		}
	}
}

func TestToolPhaseOnlyTouchesToolBuildings(t *testing.T) {
	start := map[economy.Kind]int{economy.Wood: 100, economy.Stone: 100, economy.Gold: 100}
	s := newTestSim(3, 3, start, Options{})
	if !s.CreateBuilding(buildings.Forge) || !s.CreateBuilding(buildings.Storehouse) {
		t.Fatalf("building construction failed")
	}
	forge := s.Buildings[0]

	s.PlayTurn()
	if s.Resources.Get(economy.Tools) != 0 {
		t.Fatalf("forged before cooldown")
	}
	s.PlayTurn()
	if s.Resources.Get(economy.Tools) != 1 || s.Stats.ToolsForged != 1 {
		t.Fatalf("tools = %d, want 1", s.Resources.Get(economy.Tools))
	}
	if forge.TurnsSinceLastProduction != 0 {
		t.Fatalf("spawn phase touched a tool building")
	}
}

func TestUnknownBuildingKindPanics(t *testing.T) {
	s := newTestSim(2, 2, nil, Options{})
	s.Buildings = append(s.Buildings, &buildings.Building{ID: 1, Kind: buildings.Kind(42), Constructed: true})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for an unknown building kind")
		}
	}()
	s.PlayTurn()
}
