package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrenfall/rpg-core/internal/catalog"
	"github.com/wrenfall/rpg-core/internal/dice"
	"github.com/wrenfall/rpg-core/internal/events"
	"github.com/wrenfall/rpg-core/internal/orchestrators/character"
	"github.com/wrenfall/rpg-core/internal/orchestrators/combat"
	"github.com/wrenfall/rpg-core/internal/orchestrators/difficulty"
	"github.com/wrenfall/rpg-core/internal/orchestrators/reward"
	"github.com/wrenfall/rpg-core/internal/orchestrators/session"
	"github.com/wrenfall/rpg-core/internal/pkg/clock"
	"github.com/wrenfall/rpg-core/internal/pkg/idgen"
	redisclient "github.com/wrenfall/rpg-core/internal/redis"
	sessionrepo "github.com/wrenfall/rpg-core/internal/repositories/session"
	"github.com/wrenfall/rpg-core/internal/telemetry"
)

var (
	simClass      string
	simName       string
	simEncounters int
	simSeed       int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a full adaptive session with the baseline policy",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simClass, "class", "warrior", "class id for the simulated character")
	simulateCmd.Flags().StringVar(&simName, "name", "Simulant", "character name")
	simulateCmd.Flags().IntVar(&simEncounters, "encounters", 30, "number of encounters to run")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (0 = time-based)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	seed := cfg.Seed
	if simSeed != 0 {
		seed = simSeed
	}
	roller := dice.NewRoller(seed)
	clk := clock.New()
	bus := events.NewBus()

	var observer difficulty.Observer = difficulty.SlogObserver{}
	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			return fmt.Errorf("telemetry setup: %w", err)
		}
		defer func() { _ = shutdown(ctx) }()
		observer = telemetry.NewSpanObserver()
	}

	classes := catalog.NewClassCatalog()
	if err := classes.Validate(); err != nil {
		return fmt.Errorf("class catalog invalid: %w", err)
	}
	enemies := catalog.NewEnemyCatalog()

	factory, err := character.NewOrchestrator(&character.Config{
		Classes:     classes,
		IDGenerator: idgen.NewPrefixed("char"),
		Clock:       clk,
	})
	if err != nil {
		return err
	}

	engine, err := combat.NewOrchestrator(&combat.Config{
		Roller:      roller,
		Clock:       clk,
		IDGenerator: idgen.NewPrefixed("enc"),
		EventBus:    bus,
	})
	if err != nil {
		return err
	}

	controller, err := difficulty.NewOrchestrator(&difficulty.Config{
		Clock:    clk,
		Roller:   roller,
		Classes:  classes,
		Observer: observer,
		EventBus: bus,
	})
	if err != nil {
		return err
	}

	scheduler, err := reward.NewOrchestrator(&reward.Config{
		Roller:      roller,
		IDGenerator: idgen.NewPrefixed("reward"),
		Pacing:      controller,
		EventBus:    bus,
		VRTarget:    cfg.VRTarget,
	})
	if err != nil {
		return err
	}

	var repo sessionrepo.Repository
	if cfg.RedisAddr != "" {
		client, err := redisclient.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return err
		}
		repo, err = sessionrepo.NewRedisRepository(&sessionrepo.Config{Client: client, Clock: clk})
		if err != nil {
			return err
		}
	}

	svc, err := session.NewOrchestrator(&session.Config{
		Factory:     factory,
		Combat:      engine,
		Difficulty:  controller,
		Reward:      scheduler,
		Enemies:     enemies,
		Roller:      roller,
		IDGenerator: idgen.NewPrefixed("session"),
		Repository:  repo,
	})
	if err != nil {
		return err
	}

	start, err := svc.Start(ctx, &session.StartInput{Name: simName, ClassID: simClass})
	if err != nil {
		return err
	}
	fmt.Printf("session %s: %s the %s (HP %d, gold %d)\n",
		start.SessionID, start.Character.Name, start.Character.ClassID,
		start.Character.MaxHP, start.Character.Gold)

	rareGrants, commonGrants := 0, 0
	for i := 0; i < simEncounters; i++ {
		out, err := svc.RunEncounter(ctx, &session.RunEncounterInput{SessionID: start.SessionID})
		if err != nil {
			return err
		}

		rewardNote := "-"
		if out.Reward.Granted {
			rewardNote = fmt.Sprintf("%s +%dg", out.Reward.Class, out.Reward.Gold)
			if out.Reward.Class == "rare" {
				rareGrants++
			} else {
				commonGrants++
			}
		}
		fmt.Printf("[%02d] %-7s turns=%-3d hp=%3d/%-3d mult=%.3f flow=%-16s reward=%s\n",
			i+1, out.Telemetry.Outcome, out.Telemetry.Turns,
			out.Encounter.Character.CurrentHP, out.Encounter.Character.MaxHP,
			out.Difficulty.Multiplier(), out.Difficulty.Flow, rewardNote)
	}

	snap, err := svc.Snapshot(ctx, &session.SnapshotInput{SessionID: start.SessionID})
	if err != nil {
		return err
	}
	fmt.Printf("\nfinal: encounters=%d skill=%.3f performance=%.3f multiplier=%.3f flow=%s gold=%d rewards=%d common / %d rare\n",
		snap.EncountersSeen, snap.Difficulty.SkillEstimate, snap.Difficulty.PerformanceScore,
		snap.Difficulty.Multiplier(), snap.Difficulty.Flow, snap.Character.Gold,
		commonGrants, rareGrants)
	return nil
}
