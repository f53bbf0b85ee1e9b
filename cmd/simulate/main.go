package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/osse101/KubeRPG_Go/internal/account"
	"github.com/osse101/KubeRPG_Go/internal/config"
	"github.com/osse101/KubeRPG_Go/internal/database/memory"
	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/dungeon"
	"github.com/osse101/KubeRPG_Go/internal/event"
	"github.com/osse101/KubeRPG_Go/internal/logger"
	"github.com/osse101/KubeRPG_Go/internal/utils"
)

// simulate plays a dungeon run headless against fresh in-memory accounts.
// The same seed always produces the same run.
func main() {
	seed := flag.Int64("seed", 1, "random seed")
	party := flag.String("party", "alice,bob", "comma-separated party pseudonyms")
	waves := flag.Int("waves", 3, "stop after this many won waves")
	gameConfig := flag.String("game-config", "", "optional game tuning JSON")
	asJSON := flag.Bool("json", false, "print the final report as JSON")
	out := flag.String("out", "", "also write the final report to this JSON file")
	verbose := flag.Bool("v", false, "log every round")
	flag.Parse()

	level := logger.LogLevelWarn
	if *verbose {
		level = logger.LogLevelDebug
	}
	logger.InitLoggerWithWriter(logger.NewConfig(level, logger.LogFormatText, "simulate", "", logger.EnvironmentDev, false), os.Stderr)

	report, err := simulate(context.Background(), options{
		seed:       *seed,
		party:      splitParty(*party),
		waves:      *waves,
		gameConfig: *gameConfig,
	})
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	if *out != "" {
		if err := utils.SaveJSON(*out, report); err != nil {
			log.Fatalf("Failed to save report: %v", err)
		}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
		return
	}
	report.print()
}

type options struct {
	seed       int64
	party      []string
	waves      int
	gameConfig string
}

type report struct {
	Seed     int64                 `json:"seed"`
	Rounds   int                   `json:"rounds"`
	WavesWon int                   `json:"waves_won"`
	Summary  domain.DungeonSummary `json:"summary"`
	Accounts []domain.Account      `json:"accounts"`
}

func (r report) print() {
	fmt.Printf("seed %d: %s after %d rounds, %d wave(s) won, %d item(s) looted\n",
		r.Seed, r.Summary.Status, r.Rounds, r.WavesWon, r.Summary.TotalLoot)
	for _, acc := range r.Accounts {
		fmt.Printf("  %-12s stage %d, %d item(s)\n", acc.Pseudonym, acc.Progress.DungeonStage, len(acc.Inventory))
	}
}

func simulate(ctx context.Context, opts options) (*report, error) {
	if len(opts.party) == 0 {
		return nil, domain.ErrEmptyParty
	}
	game, err := config.LoadGameConfig(opts.gameConfig)
	if err != nil {
		return nil, err
	}

	bus := event.NewMemoryBus()
	rng := utils.NewRandom(opts.seed)
	accounts := account.NewService(memory.NewAccountRepository(), bus, game.Stats, rng, account.DefaultCacheConfig())
	for _, name := range opts.party {
		if _, _, err := accounts.Register(ctx, name, "gray"); err != nil {
			return nil, err
		}
	}

	dungeons := dungeon.NewService(game.DungeonConfig(), accounts, bus, nil, nil,
		func() utils.Random { return rng })
	if _, err := dungeons.Start(ctx, opts.party); err != nil {
		return nil, err
	}
	defer func() { _ = dungeons.Shutdown(ctx) }()

	res := &report{Seed: opts.seed}
	for {
		rep, err := dungeons.Advance(ctx)
		switch {
		case errors.Is(err, domain.ErrDungeonFinished):
			return res, res.finish(ctx, dungeons, accounts)
		case err != nil:
			return nil, err
		}
		res.Rounds++

		sum := rep.Summary
		if sum.Status != domain.DungeonAwaitingDecision {
			if sum.Status.Terminal() {
				return res, res.finish(ctx, dungeons, accounts)
			}
			continue
		}
		res.WavesWon++
		if _, err := dungeons.Continue(ctx, res.WavesWon < opts.waves); err != nil {
			return nil, err
		}
	}
}

func (r *report) finish(ctx context.Context, dungeons dungeon.Service, accounts account.Service) error {
	sum, err := dungeons.Status(ctx)
	if err != nil {
		return err
	}
	list, err := accounts.ListAccounts(ctx)
	if err != nil {
		return err
	}
	r.Summary = *sum
	r.Accounts = list
	return nil
}

func splitParty(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
