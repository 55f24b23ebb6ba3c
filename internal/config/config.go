// Package config loads colony scenarios from YAML.
//
// A scenario file only needs the keys it changes: Load decodes it over
// Default, so maps merge per key and scalars and lists replace.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/colony-sim/internal/buildings"
	"github.com/talgya/colony-sim/internal/economy"
	"github.com/talgya/colony-sim/internal/engine"
	"github.com/talgya/colony-sim/internal/units"
	"github.com/talgya/colony-sim/internal/world"
)

// Config is a complete colony scenario.
type Config struct {
	Seed                  int64                     `yaml:"seed"` // 0 = random
	Map                   MapConfig                 `yaml:"map"`
	MaxTurns              int                       `yaml:"max_turns"` // 0 = until game over
	ResetStarvationOnFeed bool                      `yaml:"reset_starvation_on_feed"`
	StartingResources     map[string]int            `yaml:"starting_resources"`
	StartingUnits         []string                  `yaml:"starting_units"`
	StartingBuildings     []string                  `yaml:"starting_buildings"`
	UnitCosts             map[string]map[string]int `yaml:"unit_costs"`
	Units                 map[string]UnitConfig     `yaml:"units"`
	Buildings             map[string]BuildingConfig `yaml:"buildings"`
}

// MapConfig sizes the generated map.
type MapConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Density  float64 `yaml:"density"`
	Richness int     `yaml:"richness"`
}

// UnitConfig overrides stock unit stats. Unset fields keep the stock value.
type UnitConfig struct {
	FoodCost        *int     `yaml:"food_cost"`
	StarvationLimit *int     `yaml:"starvation_limit"`
	Yield           *int     `yaml:"yield"`
	Harvests        []string `yaml:"harvests"`
}

// BuildingConfig overrides a stock building spec. The kind of a building
// class is fixed; only its numbers and the unit it trains can change.
type BuildingConfig struct {
	ConstructionCost   map[string]int `yaml:"construction_cost"`
	UnitClass          string         `yaml:"unit_class"`
	ProductionInterval *int           `yaml:"production_interval"`
	ToolCost           map[string]int `yaml:"tool_cost"`
	ToolCooldown       *int           `yaml:"tool_cooldown"`
}

// Default returns the stock scenario.
func Default() *Config {
	gen := world.DefaultGenConfig()
	return &Config{
		Map: MapConfig{
			Width:    gen.Width,
			Height:   gen.Height,
			Density:  gen.Density,
			Richness: gen.Richness,
		},
		MaxTurns: 100,
		StartingResources: map[string]int{
			"wood":  40,
			"stone": 40,
			"gold":  40,
			"food":  100,
		},
		StartingUnits:     []string{"worker", "worker", "peasant"},
		StartingBuildings: []string{"town_center", "farm", "forge"},
	}
}

// Load reads a scenario file over Default and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML scenario data over Default and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every name and number in the scenario.
func (c *Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("invalid map size %dx%d", c.Map.Width, c.Map.Height)
	}
	if c.Map.Density < 0 || c.Map.Density > 0.9 {
		return fmt.Errorf("map density %.2f out of range [0, 0.9]", c.Map.Density)
	}
	if c.MaxTurns < 0 {
		return fmt.Errorf("negative max_turns %d", c.MaxTurns)
	}
	if _, err := c.StartingLedger(); err != nil {
		return err
	}
	if _, err := c.StartUnits(); err != nil {
		return err
	}
	if _, err := c.StartBuildings(); err != nil {
		return err
	}
	if _, err := c.CostTable(); err != nil {
		return err
	}
	if _, err := c.UnitCatalog(); err != nil {
		return err
	}
	if _, err := c.BuildingCatalog(); err != nil {
		return err
	}
	return nil
}

// GenConfig returns the map generation parameters.
func (c *Config) GenConfig() world.GenConfig {
	return world.GenConfig{
		Width:    c.Map.Width,
		Height:   c.Map.Height,
		Seed:     c.Seed,
		Density:  c.Map.Density,
		Richness: c.Map.Richness,
	}
}

// StartingLedger returns the starting stockpile.
func (c *Config) StartingLedger() (map[economy.Kind]int, error) {
	cost, err := economy.ParseCost(c.StartingResources)
	if err != nil {
		return nil, fmt.Errorf("starting_resources: %w", err)
	}
	return cost, nil
}

// StartUnits returns the classes of the units placed before turn 1.
func (c *Config) StartUnits() ([]units.Class, error) {
	out := make([]units.Class, 0, len(c.StartingUnits))
	for _, name := range c.StartingUnits {
		class, err := units.ParseClass(name)
		if err != nil {
			return nil, fmt.Errorf("starting_units: %w", err)
		}
		out = append(out, class)
	}
	return out, nil
}

// StartBuildings returns the classes of the buildings raised before turn 1.
func (c *Config) StartBuildings() ([]buildings.Class, error) {
	out := make([]buildings.Class, 0, len(c.StartingBuildings))
	for _, name := range c.StartingBuildings {
		class, err := buildings.ParseClass(name)
		if err != nil {
			return nil, fmt.Errorf("starting_buildings: %w", err)
		}
		out = append(out, class)
	}
	return out, nil
}

// CostTable returns the per-class unit costs. Classes without an entry
// pay the uniform cost.
func (c *Config) CostTable() (units.CostTable, error) {
	table := make(units.CostTable, len(c.UnitCosts))
	for name, raw := range c.UnitCosts {
		class, err := units.ParseClass(name)
		if err != nil {
			return nil, fmt.Errorf("unit_costs: %w", err)
		}
		cost, err := economy.ParseCost(raw)
		if err != nil {
			return nil, fmt.Errorf("unit_costs %s: %w", class, err)
		}
		table[class] = cost
	}
	return table, nil
}

// UnitCatalog returns the stock unit stats with the overrides applied.
func (c *Config) UnitCatalog() (units.Catalog, error) {
	catalog := units.DefaultCatalog()
	for name, o := range c.Units {
		class, err := units.ParseClass(name)
		if err != nil {
			return nil, fmt.Errorf("units: %w", err)
		}
		s := catalog[class]
		if o.FoodCost != nil {
			s.FoodCost = *o.FoodCost
		}
		if o.StarvationLimit != nil {
			s.StarvationLimit = *o.StarvationLimit
		}
		if o.Yield != nil {
			s.Yield = *o.Yield
		}
		if o.Harvests != nil {
			kinds := make([]economy.Kind, 0, len(o.Harvests))
			for _, kn := range o.Harvests {
				k, err := economy.ParseKind(kn)
				if err != nil {
					return nil, fmt.Errorf("units %s: %w", class, err)
				}
				kinds = append(kinds, k)
			}
			s.Harvests = kinds
		}
		switch {
		case s.FoodCost < 0:
			return nil, fmt.Errorf("units %s: negative food_cost %d", class, s.FoodCost)
		case s.StarvationLimit < 1:
			return nil, fmt.Errorf("units %s: starvation_limit must be at least 1", class)
		case s.Yield < 0:
			return nil, fmt.Errorf("units %s: negative yield %d", class, s.Yield)
		}
		catalog[class] = s
	}
	return catalog, nil
}

// BuildingCatalog returns the stock building specs with the overrides
// applied.
func (c *Config) BuildingCatalog() (buildings.Catalog, error) {
	catalog := buildings.DefaultCatalog()
	for name, o := range c.Buildings {
		class, err := buildings.ParseClass(name)
		if err != nil {
			return nil, fmt.Errorf("buildings: %w", err)
		}
		s := catalog[class]
		if o.ConstructionCost != nil {
			cost, err := economy.ParseCost(o.ConstructionCost)
			if err != nil {
				return nil, fmt.Errorf("buildings %s construction_cost: %w", class, err)
			}
			s.ConstructionCost = cost
		}
		if o.UnitClass != "" {
			uc, err := units.ParseClass(o.UnitClass)
			if err != nil {
				return nil, fmt.Errorf("buildings %s: %w", class, err)
			}
			s.UnitClass = uc
		}
		if o.ProductionInterval != nil {
			if *o.ProductionInterval < 1 {
				return nil, fmt.Errorf("buildings %s: production_interval must be at least 1", class)
			}
			s.ProductionInterval = *o.ProductionInterval
		}
		if o.ToolCost != nil {
			cost, err := economy.ParseCost(o.ToolCost)
			if err != nil {
				return nil, fmt.Errorf("buildings %s tool_cost: %w", class, err)
			}
			s.ToolCost = cost
		}
		if o.ToolCooldown != nil {
			if *o.ToolCooldown < 0 {
				return nil, fmt.Errorf("buildings %s: negative tool_cooldown", class)
			}
			s.ToolCooldown = *o.ToolCooldown
		}
		catalog[class] = s
	}
	return catalog, nil
}

// EngineOptions assembles the simulation options. The config must have
// passed Validate.
func (c *Config) EngineOptions() (engine.Options, error) {
	catalog, err := c.UnitCatalog()
	if err != nil {
		return engine.Options{}, err
	}
	costs, err := c.CostTable()
	if err != nil {
		return engine.Options{}, err
	}
	bcat, err := c.BuildingCatalog()
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Spawner:               units.NewSpawner(catalog),
		UnitCosts:             costs,
		BuildingCatalog:       bcat,
		ResetStarvationOnFeed: c.ResetStarvationOnFeed,
	}, nil
}
