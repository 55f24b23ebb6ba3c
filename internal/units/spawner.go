package units

import "github.com/talgya/colony-sim/internal/world"

// Spawner issues entity IDs and builds units from a catalog.
type Spawner struct {
	catalog Catalog
	nextID  world.EntityID
}

// NewSpawner creates a spawner. A nil catalog uses DefaultCatalog.
func NewSpawner(catalog Catalog) *Spawner {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Spawner{catalog: catalog, nextID: 1}
}

// SetNextID sets the next ID to be issued.
func (s *Spawner) SetNextID(id world.EntityID) {
	s.nextID = id
}

// Spawn builds a unit of the given class for a spawn tile. IDs are
// consumed even if the caller later rejects the unit.
func (s *Spawner) Spawn(class Class, pos world.Position) *Unit {
	id := s.nextID
	s.nextID++
	return New(id, class, s.catalog.Stats(class), pos)
}

// Catalog returns the stats catalog the spawner builds from.
func (s *Spawner) Catalog() Catalog {
	return s.catalog
}
