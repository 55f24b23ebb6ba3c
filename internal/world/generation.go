// Map generation using layered simplex noise.
// One noise field decides where deposits cluster, a second decides which
// resource each cluster holds.
package world

import (
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/colony-sim/internal/economy"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Width    int     // Tiles east-west
	Height   int     // Tiles north-south
	Seed     int64   // Random seed (0 = random)
	Density  float64 // Fraction of tiles holding a deposit (0.0–0.9)
	Richness int     // Base amount per deposit
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:    24,
		Height:   14,
		Seed:     0,
		Density:  0.18,
		Richness: 20,
	}
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:    8,
		Height:   6,
		Seed:     42,
		Density:  0.2,
		Richness: 10,
	}
}

// Generate creates a map with noise-clustered resource deposits.
// The same seed always yields the same map.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	density := cfg.Density
	if density < 0 {
		density = 0
	}
	if density > 0.9 {
		density = 0.9
	}
	richness := cfg.Richness
	if richness < 1 {
		richness = 1
	}

	presenceNoise := opensimplex.NewNormalized(seed)
	kindNoise := opensimplex.NewNormalized(seed + 1)

	m := NewMap(cfg.Width, cfg.Height, seed)

	type scored struct {
		pos      Position
		presence float64
	}
	candidates := make([]scored, 0, cfg.Width*cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			p := octaveNoise(presenceNoise, float64(x), float64(y), 3, 0.15, 0.5)
			candidates = append(candidates, scored{Position{X: x, Y: y}, p})
		}
	}

	// Strongest presence first; row-major order breaks ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].presence > candidates[j].presence
	})

	count := int(float64(len(candidates)) * density)
	for _, c := range candidates[:count] {
		k := octaveNoise(kindNoise, float64(c.pos.X), float64(c.pos.Y), 2, 0.1, 0.5)
		amount := richness + int(c.presence*float64(richness))
		m.SetDeposit(c.pos, kindForNoise(k), amount)
	}

	return m
}

// kindForNoise maps the kind noise layer onto resource bands. Gold is the
// narrowest band.
func kindForNoise(n float64) economy.Kind {
	switch {
	case n < 0.38:
		return economy.Wood
	case n < 0.50:
		return economy.Stone
	case n < 0.58:
		return economy.Gold
	default:
		return economy.Food
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// ResourceCounts returns how many deposits of each kind the map holds.
func ResourceCounts(m *Map) map[economy.Kind]int {
	counts := make(map[economy.Kind]int)
	for i := range m.tiles {
		if d := m.tiles[i].Deposit; d != nil {
			counts[d.Kind]++
		}
	}
	return counts
}
