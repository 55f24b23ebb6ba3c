package units

import (
	"fmt"

	"github.com/talgya/colony-sim/internal/economy"
	"github.com/talgya/colony-sim/internal/world"
)

// Unit is a live, mortal colonist. Its position is owned by the map; the
// unit only remembers where it was spawned.
type Unit struct {
	id    world.EntityID
	class Class
	stats Stats
	spawn world.Position

	starvation int
	harvested  int
}

// New builds a unit bound to a spawn position. It is not on the map until
// the caller places it.
func New(id world.EntityID, class Class, stats Stats, spawn world.Position) *Unit {
	return &Unit{id: id, class: class, stats: stats, spawn: spawn}
}

func (u *Unit) ID() world.EntityID { return u.id }

func (u *Unit) Class() Class { return u.class }

// FoodCost returns the food the unit eats each turn.
func (u *Unit) FoodCost() int { return u.stats.FoodCost }

// StarvationTurns returns how many turns the unit went without food.
func (u *Unit) StarvationTurns() int { return u.starvation }

// Harvested returns the total amount this unit has gathered.
func (u *Unit) Harvested() int { return u.harvested }

// SpawnPosition returns the tile the unit was created for.
func (u *Unit) SpawnPosition() world.Position { return u.spawn }

// Position returns where the unit currently stands.
func (u *Unit) Position(m *world.Map) (world.Position, bool) {
	return m.PositionOf(u.id)
}

// CanBeCreated checks that the spawn tile can still take the unit.
func (u *Unit) CanBeCreated(m *world.Map) bool {
	return u.id != 0 && m.IsFree(u.spawn)
}

// CanWork reports whether a deposit the unit can harvest is within reach.
func (u *Unit) CanWork(m *world.Map) bool {
	pos, ok := m.PositionOf(u.id)
	if !ok {
		return false
	}
	_, ok = m.AdjacentResource(pos, u.stats.Harvests)
	return ok
}

// Work harvests from an adjacent deposit and credits the ledger. Tools in
// the stockpile add one to the yield. Returns the amount gathered.
func (u *Unit) Work(m *world.Map, l *economy.Ledger) int {
	pos, ok := m.PositionOf(u.id)
	if !ok {
		return 0
	}
	target, ok := m.AdjacentResource(pos, u.stats.Harvests)
	if !ok {
		return 0
	}

	yield := u.stats.Yield
	if l.Get(economy.Tools) > 0 {
		yield++
	}
	kind, got := m.Harvest(target, yield)
	l.Credit(kind, got)
	u.harvested += got
	return got
}

// MoveToClosestResource takes one step toward the nearest harvestable
// deposit. Returns false when there is nowhere to go or the way is blocked.
func (u *Unit) MoveToClosestResource(m *world.Map) bool {
	pos, ok := m.PositionOf(u.id)
	if !ok {
		return false
	}
	target, ok := m.FindClosestResource(pos, u.stats.Harvests)
	if !ok {
		return false
	}
	next, ok := m.StepToward(pos, target)
	if !ok {
		return false
	}
	return m.Move(u.id, next)
}

// Starve records a turn without food.
func (u *Unit) Starve() {
	u.starvation++
}

// Fed records a meal. The starvation counter only clears when reset is set.
func (u *Unit) Fed(reset bool) {
	if reset {
		u.starvation = 0
	}
}

// ShouldBeRemoved reports whether the unit has starved to death.
func (u *Unit) ShouldBeRemoved() bool {
	return u.starvation >= u.stats.StarvationLimit
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s#%d", u.class, u.id)
}
