package engine

// Game-over thresholds.
const (
	StarvedOutTurns = 5 // Starvation counter at which a unit counts as starved out
	MinGameTurns    = 5 // The game cannot end on or before this turn
)

// Outcome classifies the state of the game.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Victory         // Every deposit was collected
	Defeat          // The colony starved out or has no units left
)

func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "ongoing"
	}
}

// IsGameOver reports whether the game has ended: either every unit has
// starved out or the map is fully harvested, and the turn counter is past
// MinGameTurns. An empty roster counts as starved out.
func (s *Simulation) IsGameOver() bool {
	return (s.allStarvedOut() || s.Map.AllResourcesCollected()) && s.Turn > MinGameTurns
}

// Outcome reports how the game ended, or Ongoing.
func (s *Simulation) Outcome() Outcome {
	if !s.IsGameOver() {
		return Ongoing
	}
	if s.Map.AllResourcesCollected() {
		return Victory
	}
	return Defeat
}

func (s *Simulation) allStarvedOut() bool {
	for _, u := range s.Units {
		if u.StarvationTurns() < StarvedOutTurns {
			return false
		}
	}
	return true
}
