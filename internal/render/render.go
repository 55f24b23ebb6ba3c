// Package render prints colony state to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/talgya/colony-sim/internal/buildings"
	"github.com/talgya/colony-sim/internal/economy"
	"github.com/talgya/colony-sim/internal/engine"
	"github.com/talgya/colony-sim/internal/units"
	"github.com/talgya/colony-sim/internal/world"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	unitColor    = color.New(color.FgHiWhite, color.Bold)
	emptyColor   = color.New(color.FgHiBlack)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgYellow)

	depositColors = map[economy.Kind]*color.Color{
		economy.Wood:  color.New(color.FgGreen),
		economy.Stone: color.New(color.FgWhite),
		economy.Gold:  color.New(color.FgYellow),
		economy.Food:  color.New(color.FgRed),
		economy.Tools: color.New(color.FgMagenta),
	}
)

// unitGlyph and depositGlyph give every tile a one-letter symbol: units
// upper case, deposits lower case.
func unitGlyph(c units.Class) string {
	switch c {
	case units.Worker:
		return "W"
	case units.Lumberjack:
		return "L"
	case units.Miner:
		return "M"
	case units.Peasant:
		return "P"
	default:
		return "?"
	}
}

func depositGlyph(k economy.Kind) string {
	return k.String()[:1]
}

// Map draws the grid row by row.
func Map(w io.Writer, sim *engine.Simulation) {
	classes := make(map[world.EntityID]units.Class, len(sim.Units))
	for _, u := range sim.Units {
		classes[u.ID()] = u.Class()
	}

	m := sim.Map
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			t := m.Tile(world.Position{X: x, Y: y})
			switch {
			case t.Occupant != 0:
				unitColor.Fprint(w, unitGlyph(classes[t.Occupant]))
			case t.Deposit != nil:
				depositColors[t.Deposit.Kind].Fprint(w, depositGlyph(t.Deposit.Kind))
			default:
				emptyColor.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w)
	}
}

// Resources prints the stockpile as a table.
func Resources(w io.Writer, l *economy.Ledger) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Resource", "Stock"}),
	)
	for _, k := range economy.AllKinds() {
		_ = table.Append([]string{k.String(), fmt.Sprintf("%d", l.Get(k))})
	}
	_ = table.Render()
}

// Roster prints every live unit.
func Roster(w io.Writer, sim *engine.Simulation) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"ID", "Class", "Position", "Food", "Hungry"}),
	)
	for _, u := range sim.Units {
		pos := "-"
		if p, ok := sim.Map.PositionOf(u.ID()); ok {
			pos = p.String()
		}
		_ = table.Append([]string{
			fmt.Sprintf("%d", u.ID()),
			u.Class().String(),
			pos,
			fmt.Sprintf("%d", u.FoodCost()),
			fmt.Sprintf("%d", u.StarvationTurns()),
		})
	}
	_ = table.Render()
}

// Buildings prints every building with its progress counter.
func Buildings(w io.Writer, sim *engine.Simulation) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"ID", "Class", "Kind", "Progress", "Output"}),
	)
	for _, b := range sim.Buildings {
		var progress, output string
		switch b.Kind {
		case buildings.KindProduction:
			progress = fmt.Sprintf("%d/%d", b.TurnsSinceLastProduction, b.ProductionInterval)
			output = fmt.Sprintf("%d %s", b.UnitsProduced, b.UnitClass)
		case buildings.KindToolCreation:
			progress = fmt.Sprintf("%d/%d", b.TurnsSinceLastTool, b.ToolCooldown)
			output = fmt.Sprintf("%d tools", b.ToolsForged)
		case buildings.KindPlain:
			progress, output = "-", "-"
		default:
			buildings.UnknownKind(b.Kind)
		}
		_ = table.Append([]string{
			fmt.Sprintf("%d", b.ID),
			b.Class.String(),
			b.Kind.String(),
			progress,
			output,
		})
	}
	_ = table.Render()
}

// Turn prints a one-line recap of a played turn followed by its events.
func Turn(w io.Writer, sum engine.TurnSummary) {
	titleColor.Fprintf(w, "turn %d", sum.Turn)
	fmt.Fprintf(w, "  units=%d hungry=%d buildings=%d  %s\n",
		sum.Population, sum.Starving, sum.Buildings, stock(sum.Resources))
	for _, e := range sum.Events {
		c := infoColor
		if e.Category == "death" {
			c = errorColor
		}
		c.Fprintf(w, "  [%s] ", e.Category)
		fmt.Fprintln(w, e.Description)
	}
}

// Summary prints the final outcome line.
func Summary(w io.Writer, sim *engine.Simulation) {
	played := sim.CurrentTurn() - 1
	switch outcome := sim.Outcome(); outcome {
	case engine.Victory:
		successColor.Fprintf(w, "Victory after %d turns: every deposit collected.\n", played)
	case engine.Defeat:
		errorColor.Fprintf(w, "Defeat after %d turns: the colony starved.\n", played)
	default:
		infoColor.Fprintf(w, "Stopped after %d turns with %d units alive.\n", played, len(sim.Units))
	}
	fmt.Fprintf(w, "births=%d deaths=%d harvested=%d tools=%d\n",
		sim.Stats.Births, sim.Stats.Deaths, sim.Stats.Harvested, sim.Stats.ToolsForged)
}

func stock(res map[economy.Kind]int) string {
	parts := make([]string, 0, economy.NumKinds)
	for _, k := range economy.AllKinds() {
		parts = append(parts, fmt.Sprintf("%s:%d", k, res[k]))
	}
	return strings.Join(parts, " ")
}
