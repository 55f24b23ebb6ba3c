package world

import (
	"fmt"
	"math/rand"

	"github.com/talgya/colony-sim/internal/economy"
)

// EntityID identifies anything that occupies a tile. Zero means "nobody".
type EntityID uint64

// Deposit is a harvestable stock of one resource kind.
type Deposit struct {
	Kind   economy.Kind `json:"kind"`
	Amount int          `json:"amount"`
}

// Tile is one cell of the grid.
type Tile struct {
	Pos      Position `json:"pos"`
	Deposit  *Deposit `json:"deposit,omitempty"` // nil once exhausted
	Occupant EntityID `json:"occupant,omitempty"`
}

// Map holds the grid, its deposits and which entity stands where.
type Map struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	tiles     []Tile // row-major
	positions map[EntityID]Position
	rng       *rand.Rand
}

// NewMap creates an empty width×height grid. The seed drives
// RandomEmptyPosition.
func NewMap(width, height int, seed int64) *Map {
	m := &Map{
		Width:     width,
		Height:    height,
		tiles:     make([]Tile, width*height),
		positions: make(map[EntityID]Position),
		rng:       rand.New(rand.NewSource(seed + 500)),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.tiles[y*width+x].Pos = Position{X: x, Y: y}
		}
	}
	return m
}

// InBounds returns true if the position lies on the grid.
func (m *Map) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// Tile returns the tile at p, or nil if out of bounds.
func (m *Map) Tile(p Position) *Tile {
	if !m.InBounds(p) {
		return nil
	}
	return &m.tiles[p.Y*m.Width+p.X]
}

// SetDeposit places (or replaces) a deposit. A non-positive amount clears it.
func (m *Map) SetDeposit(p Position, kind economy.Kind, amount int) {
	t := m.Tile(p)
	if t == nil {
		return
	}
	if amount <= 0 {
		t.Deposit = nil
		return
	}
	t.Deposit = &Deposit{Kind: kind, Amount: amount}
}

// IsFree reports whether an entity may stand on p: in bounds, unoccupied
// and holding no deposit.
func (m *Map) IsFree(p Position) bool {
	t := m.Tile(p)
	return t != nil && t.Occupant == 0 && t.Deposit == nil
}

// RandomEmptyPosition picks a free tile uniformly at random. Returns false
// when the grid has no free tile left.
func (m *Map) RandomEmptyPosition() (Position, bool) {
	var free []Position
	for i := range m.tiles {
		if m.tiles[i].Occupant == 0 && m.tiles[i].Deposit == nil {
			free = append(free, m.tiles[i].Pos)
		}
	}
	if len(free) == 0 {
		return Position{}, false
	}
	return free[m.rng.Intn(len(free))], true
}

// Place puts an entity on a free tile. An entity already on the map is
// not moved; use Move for that.
func (m *Map) Place(id EntityID, p Position) bool {
	if id == 0 || !m.IsFree(p) {
		return false
	}
	if _, ok := m.positions[id]; ok {
		return false
	}
	m.Tile(p).Occupant = id
	m.positions[id] = p
	return true
}

// Remove takes an entity off the map. No-op if it is not on the map.
func (m *Map) Remove(id EntityID) {
	p, ok := m.positions[id]
	if !ok {
		return
	}
	if t := m.Tile(p); t != nil && t.Occupant == id {
		t.Occupant = 0
	}
	delete(m.positions, id)
}

// Move relocates an entity to a free tile.
func (m *Map) Move(id EntityID, to Position) bool {
	from, ok := m.positions[id]
	if !ok || !m.IsFree(to) {
		return false
	}
	m.Tile(from).Occupant = 0
	m.Tile(to).Occupant = id
	m.positions[id] = to
	return true
}

// PositionOf returns where an entity stands.
func (m *Map) PositionOf(id EntityID) (Position, bool) {
	p, ok := m.positions[id]
	return p, ok
}

// OccupantAt returns the entity on p, or zero.
func (m *Map) OccupantAt(p Position) EntityID {
	t := m.Tile(p)
	if t == nil {
		return 0
	}
	return t.Occupant
}

// EntityCount returns the number of entities on the map.
func (m *Map) EntityCount() int {
	return len(m.positions)
}

// FindClosestResource returns the nearest deposit holding one of the given
// kinds. Ties resolve in row-major order, so the result is deterministic.
func (m *Map) FindClosestResource(from Position, kinds []economy.Kind) (Position, bool) {
	best := Position{}
	bestDist := -1
	for i := range m.tiles {
		t := &m.tiles[i]
		if t.Deposit == nil || !accepts(kinds, t.Deposit.Kind) {
			continue
		}
		d := Distance(from, t.Pos)
		if bestDist < 0 || d < bestDist {
			best = t.Pos
			bestDist = d
		}
	}
	return best, bestDist >= 0
}

// AdjacentResource returns a deposit of an accepted kind within one step
// of from (including from itself), checked clockwise from north.
func (m *Map) AdjacentResource(from Position, kinds []economy.Kind) (Position, bool) {
	if t := m.Tile(from); t != nil && t.Deposit != nil && accepts(kinds, t.Deposit.Kind) {
		return from, true
	}
	for _, n := range from.Neighbors() {
		t := m.Tile(n)
		if t != nil && t.Deposit != nil && accepts(kinds, t.Deposit.Kind) {
			return n, true
		}
	}
	return Position{}, false
}

// StepToward returns the free neighbour of from that is strictly closer to
// target. Returns false when every closer tile is blocked.
func (m *Map) StepToward(from, target Position) (Position, bool) {
	current := Distance(from, target)
	best := Position{}
	bestDist := current
	for _, n := range from.Neighbors() {
		if !m.IsFree(n) {
			continue
		}
		if d := Distance(n, target); d < bestDist {
			best = n
			bestDist = d
		}
	}
	return best, bestDist < current
}

// Harvest removes up to amount from the deposit at p and returns what was
// taken along with its kind. An exhausted deposit is cleared from the tile.
func (m *Map) Harvest(p Position, amount int) (economy.Kind, int) {
	t := m.Tile(p)
	if t == nil || t.Deposit == nil || amount <= 0 {
		return 0, 0
	}
	kind := t.Deposit.Kind
	taken := amount
	if taken > t.Deposit.Amount {
		taken = t.Deposit.Amount
	}
	t.Deposit.Amount -= taken
	if t.Deposit.Amount <= 0 {
		t.Deposit = nil
	}
	return kind, taken
}

// AllResourcesCollected reports whether every deposit has been exhausted.
func (m *Map) AllResourcesCollected() bool {
	for i := range m.tiles {
		if m.tiles[i].Deposit != nil {
			return false
		}
	}
	return true
}

// RemainingResources sums what is still in the ground per kind.
func (m *Map) RemainingResources() map[economy.Kind]int {
	out := make(map[economy.Kind]int)
	for i := range m.tiles {
		if d := m.tiles[i].Deposit; d != nil {
			out[d.Kind] += d.Amount
		}
	}
	return out
}

// DepositCount returns the number of non-exhausted deposits.
func (m *Map) DepositCount() int {
	n := 0
	for i := range m.tiles {
		if m.tiles[i].Deposit != nil {
			n++
		}
	}
	return n
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, deposits=%d, entities=%d)",
		m.Width, m.Height, m.DepositCount(), m.EntityCount())
}

func accepts(kinds []economy.Kind, k economy.Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}
