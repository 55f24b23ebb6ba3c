package engine

import (
	"log/slog"
	"sync/atomic"

	"github.com/talgya/colony-sim/internal/economy"
)

// Engine drives a Simulation forward one turn at a time until the game
// ends, a turn limit is hit, or Stop is called.
type Engine struct {
	Sim      *Simulation
	MaxTurns int // 0 = no limit

	// OnTurn runs after every turn with the summary of the turn just played.
	OnTurn func(sum TurnSummary)

	running atomic.Bool
}

// TurnSummary is a snapshot of the colony after a turn.
type TurnSummary struct {
	Turn       int                  `json:"turn"`
	Population int                  `json:"population"`
	Buildings  int                  `json:"buildings"`
	Starving   int                  `json:"starving"`
	Births     int                  `json:"births"`
	Deaths     int                  `json:"deaths"`
	Resources  map[economy.Kind]int `json:"resources"`
	Remaining  map[economy.Kind]int `json:"remaining"` // Still in the ground
	Events     []Event              `json:"events"`    // Events raised during the turn
}

// NewEngine creates a driver for sim.
func NewEngine(sim *Simulation) *Engine {
	return &Engine{Sim: sim}
}

// Run plays turns until the game is over, MaxTurns turns have been played
// or Stop is called. Returns the number of turns played.
func (e *Engine) Run() int {
	e.running.Store(true)
	slog.Info("simulation started", "turn", e.Sim.Turn, "max_turns", e.MaxTurns)

	played := 0
	for e.running.Load() && !e.Sim.IsGameOver() {
		if e.MaxTurns > 0 && played >= e.MaxTurns {
			break
		}
		e.Step()
		played++
	}
	e.running.Store(false)

	slog.Info("simulation stopped",
		"turn", e.Sim.Turn,
		"played", played,
		"outcome", e.Sim.Outcome().String(),
	)
	return played
}

// Stop makes Run return after the current turn.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Step plays exactly one turn and reports it to OnTurn.
func (e *Engine) Step() {
	before := e.Sim.eventsRecorded
	e.Sim.PlayTurn()

	if e.OnTurn == nil {
		return
	}
	added := e.Sim.eventsRecorded - before
	if added > len(e.Sim.Events) {
		added = len(e.Sim.Events)
	}
	sum := e.Sim.Summary()
	sum.Turn = e.Sim.Turn - 1
	sum.Events = append([]Event(nil), e.Sim.Events[len(e.Sim.Events)-added:]...)
	e.OnTurn(sum)
}

// Summary snapshots the current colony state.
func (s *Simulation) Summary() TurnSummary {
	return TurnSummary{
		Turn:       s.Turn,
		Population: s.Stats.Population,
		Buildings:  s.Stats.Buildings,
		Starving:   s.Stats.Starving,
		Births:     s.Stats.Births,
		Deaths:     s.Stats.Deaths,
		Resources:  s.Resources.Snapshot(),
		Remaining:  s.Map.RemainingResources(),
	}
}
