package buildings

import (
	"testing"

	"github.com/talgya/colony-sim/internal/economy"
	"github.com/talgya/colony-sim/internal/units"
)

type fakeEnv struct {
	ledger  *economy.Ledger
	allow   bool
	created []units.Class
}

func (e *fakeEnv) Ledger() *economy.Ledger { return e.ledger }

func (e *fakeEnv) CreateUnit(class units.Class) bool {
	if !e.allow {
		return false
	}
	e.created = append(e.created, class)
	return true
}

func TestConstructionChargesCost(t *testing.T) {
	env := &fakeEnv{ledger: economy.NewLedger(map[economy.Kind]int{economy.Wood: 25})}
	b := New(1, LumberCamp, DefaultCatalog().Spec(LumberCamp))

	if !b.CanBuild(env) {
		t.Fatalf("expected construction to be affordable")
	}
	if !b.Build(env) || !b.Constructed {
		t.Fatalf("construction failed")
	}
	if env.ledger.Get(economy.Wood) != 5 {
		t.Fatalf("wood = %d, want 5", env.ledger.Get(economy.Wood))
	}
	if len(env.created) != 0 {
		t.Fatalf("construction spawned a unit")
	}

	poor := New(2, LumberCamp, DefaultCatalog().Spec(LumberCamp))
	if poor.Build(env) || poor.Constructed {
		t.Fatalf("unaffordable construction succeeded")
	}
	if env.ledger.Get(economy.Wood) != 5 {
		t.Fatalf("failed construction changed the ledger")
	}
}

func TestProductionBuildSpawnsUnit(t *testing.T) {
	env := &fakeEnv{ledger: economy.NewLedger(nil), allow: true}
	b := New(1, Farm, Spec{Kind: KindProduction, UnitClass: units.Peasant, ProductionInterval: 3})
	b.Build(env)

	if !b.Build(env) {
		t.Fatalf("production build failed")
	}
	if len(env.created) != 1 || env.created[0] != units.Peasant {
		t.Fatalf("created %v, want [peasant]", env.created)
	}

	env.allow = false
	if b.Build(env) {
		t.Fatalf("build reported success without a unit")
	}
	if b.UnitsProduced != 1 {
		t.Fatalf("units produced = %d, want 1", b.UnitsProduced)
	}
}

func TestToolCreationCooldownAndGating(t *testing.T) {
	env := &fakeEnv{ledger: economy.NewLedger(map[economy.Kind]int{economy.Wood: 10, economy.Gold: 3})}
	b := New(1, Forge, Spec{
		Kind:         KindToolCreation,
		ToolCost:     economy.Cost{economy.Wood: 5, economy.Gold: 2},
		ToolCooldown: 2,
	})
	b.Build(env)

	b.Tick()
	if b.CanBuild(env) {
		t.Fatalf("forge ready before cooldown elapsed")
	}
	b.Tick()
	if !b.CanBuild(env) || !b.Build(env) {
		t.Fatalf("forge should forge after cooldown")
	}
	if env.ledger.Get(economy.Tools) != 1 || env.ledger.Get(economy.Gold) != 1 {
		t.Fatalf("ledger after forging: %s", env.ledger)
	}

	b.Tick()
	b.Tick()
	if b.CanBuild(env) {
		t.Fatalf("forge ready without enough gold")
	}
	if b.Build(env) {
		t.Fatalf("forge built without enough gold")
	}
	if b.ToolsForged != 1 {
		t.Fatalf("tools forged = %d, want 1", b.ToolsForged)
	}
}

func TestPlainAlwaysReady(t *testing.T) {
	env := &fakeEnv{ledger: economy.NewLedger(map[economy.Kind]int{economy.Wood: 10})}
	b := New(1, Storehouse, DefaultCatalog().Spec(Storehouse))
	if !b.Build(env) {
		t.Fatalf("storehouse construction failed")
	}
	if !b.CanBuild(env) || !b.Build(env) {
		t.Fatalf("plain building should always be ready")
	}
}

func TestUnknownKindPanics(t *testing.T) {
	env := &fakeEnv{ledger: economy.NewLedger(nil)}
	b := New(1, Storehouse, Spec{Kind: Kind(99)})
	b.Constructed = true

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown kind")
		}
	}()
	b.Build(env)
}

func TestParseClass(t *testing.T) {
	for _, c := range AllClasses() {
		got, err := ParseClass(c.String())
		if err != nil || got != c {
			t.Fatalf("round trip %s: %v %v", c, got, err)
		}
	}
	if c, err := ParseClass("Town-Center"); err != nil || c != TownCenter {
		t.Fatalf("ParseClass(Town-Center) = %v %v", c, err)
	}
	if _, err := ParseClass("castle"); err == nil {
		t.Fatalf("expected error for unknown class")
	}
}
