package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lifesim/internal/config"
	"lifesim/internal/game"
	"lifesim/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:          "life",
		Short:        "School-years life simulator",
		SilenceUsage: true,
	}

	root.AddCommand(
		newPlayCmd(),
		newStatsCmd(),
		newShopCmd(),
		newResetCmd(),
		newWipeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type env struct {
	cfg   config.Config
	log   *slog.Logger
	store *store.Store
	clock game.Clock
}

func newEnv() env {
	fallback := "save.json"
	if p, err := store.DefaultPath(); err == nil {
		fallback = p
	}
	cfg := config.LoadFromEnv(fallback)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	return env{
		cfg:   cfg,
		log:   logger,
		store: store.New(cfg.SavePath, logger),
		clock: game.RealClock{},
	}
}

// loadRecord restores the save slot or starts a fresh record.
func (e env) loadRecord() game.Record {
	rec, ok := e.store.Load(e.clock.Now())
	if !ok {
		return game.NewRecord()
	}
	return rec
}

func (e env) newController() *game.Controller {
	seed := e.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return game.NewController(e.loadRecord(), e.store, e.clock, rng, e.log)
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the game",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEnv()
			return runPlay(e.newController(), e.cfg.FeedbackDelay)
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the current life",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEnv()
			renderStats(e.loadRecord(), e.clock.Now())
			return nil
		},
	}
}

func newShopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Show the premium subscription and upgrade catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEnv()
			renderShop(e.loadRecord(), e.clock.Now())
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Start a new life (keeps coins, premium and upgrades)",
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := promptChoice("Reset this life", []string{"yes", "no"}, "no")
			if err != nil {
				return err
			}
			if choice != "yes" {
				printInfo("Nothing reset.")
				return nil
			}
			e := newEnv()
			rec := e.loadRecord().ResetLife()
			// Explicit reset always writes, or the old life would come
			// back on the next load.
			if err := e.store.Save(rec); err != nil {
				return err
			}
			printSuccess("New life started.")
			return nil
		},
	}
}

func newWipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wipe",
		Short: "Delete the save slot entirely",
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := promptChoice("Delete the save slot", []string{"yes", "no"}, "no")
			if err != nil {
				return err
			}
			if choice != "yes" {
				printInfo("Nothing deleted.")
				return nil
			}
			e := newEnv()
			if err := e.store.Wipe(); err != nil {
				return err
			}
			printSuccess("Save slot deleted.")
			return nil
		},
	}
}
