// Command colonysim plays a colony scenario turn by turn in the terminal.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/talgya/colony-sim/internal/config"
	"github.com/talgya/colony-sim/internal/engine"
	"github.com/talgya/colony-sim/internal/journal"
	"github.com/talgya/colony-sim/internal/render"
	"github.com/talgya/colony-sim/internal/world"
)

var (
	configFile      string
	maxTurns        int
	seed            int64
	journalPath     string
	quiet           bool
	verbose         bool
	resetStarvation bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "colonysim",
		Short: "Turn-based colony simulation",
		Long: `Runs a colony of worker units on a generated map. Units gather
resources, eat every turn and are trained by buildings until the map is
harvested or the colony starves.`,
		SilenceUsage: true,
		RunE:         runColony,
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML scenario file")
	rootCmd.Flags().IntVarP(&maxTurns, "turns", "t", 0, "Maximum turns to play (overrides the scenario)")
	rootCmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Map seed (overrides the scenario)")
	rootCmd.Flags().StringVarP(&journalPath, "journal", "j", "", "Record the run in this SQLite file")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the final summary")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every unit action")
	rootCmd.Flags().BoolVar(&resetStarvation, "reset-starvation", false, "Reset a unit's hunger counter when it eats")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runColony(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// ── Scenario ──────────────────────────────────────────────────────
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load scenario: %w", err)
		}
		cfg = loaded
		slog.Info("scenario loaded", "path", configFile)
	}
	flags := cmd.Flags()
	if flags.Changed("turns") {
		cfg.MaxTurns = maxTurns
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("reset-starvation") {
		cfg.ResetStarvationOnFeed = resetStarvation
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}

	// ── World ─────────────────────────────────────────────────────────
	worldMap := world.Generate(cfg.GenConfig())
	for kind, n := range world.ResourceCounts(worldMap) {
		slog.Info("deposits", "kind", kind, "count", n)
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	start, err := cfg.StartingLedger()
	if err != nil {
		return err
	}
	sim := engine.NewSimulation(worldMap, start, opts)

	startBuildings, err := cfg.StartBuildings()
	if err != nil {
		return err
	}
	for _, class := range startBuildings {
		if !sim.CreateBuilding(class) {
			slog.Warn("could not afford starting building", "class", class)
		}
	}
	startUnits, err := cfg.StartUnits()
	if err != nil {
		return err
	}
	for _, class := range startUnits {
		if !sim.CreateUnit(class) {
			slog.Warn("no room for starting unit", "class", class)
		}
	}

	slog.Info("colony ready",
		"seed", cfg.Seed,
		"size", fmt.Sprintf("%dx%d", worldMap.Width, worldMap.Height),
		"deposits", worldMap.DepositCount(),
		"units", len(sim.Units),
		"buildings", len(sim.Buildings),
	)

	// ── Journal ───────────────────────────────────────────────────────
	var db *journal.DB
	var runID int64
	if journalPath != "" {
		db, err = journal.Open(journalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer db.Close()
		runID, err = db.StartRun(cfg.Seed, worldMap.Width, worldMap.Height)
		if err != nil {
			return err
		}
		slog.Info("journal opened", "path", journalPath, "run", runID)
	}

	// ── Run ───────────────────────────────────────────────────────────
	out := cmd.OutOrStdout()
	if !quiet {
		color.New(color.FgCyan, color.Bold).Fprintln(out, "Colony founded")
		render.Map(out, sim)
		render.Resources(out, sim.Resources)
	}

	eng := engine.NewEngine(sim)
	eng.MaxTurns = cfg.MaxTurns
	eng.OnTurn = func(sum engine.TurnSummary) {
		if !quiet {
			render.Turn(out, sum)
		}
		if db == nil {
			return
		}
		if err := db.SaveTurn(runID, sum); err != nil {
			slog.Error("journal write failed", "error", err)
		}
		if err := db.SaveEvents(runID, sum.Events); err != nil {
			slog.Error("journal write failed", "error", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, stopping after this turn", "signal", sig)
		eng.Stop()
	}()

	eng.Run()

	if !quiet {
		fmt.Fprintln(out)
		render.Map(out, sim)
		render.Resources(out, sim.Resources)
		render.Buildings(out, sim)
		render.Roster(out, sim)
	}
	render.Summary(out, sim)

	if db != nil {
		if err := db.FinishRun(runID, sim); err != nil {
			return err
		}
	}
	return nil
}
