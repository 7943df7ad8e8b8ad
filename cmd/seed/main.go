// cmd/seed loads a YAML club fixture into the configured database.
//
//	go run ./cmd/seed -file seed.yaml [-reset]
//
// Admin accounts can only be created this way.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"clubhouse/config"
	"clubhouse/database"
	"clubhouse/logging"
	"clubhouse/seed"

	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("file", "seed.yaml", "seed file to load")
	reset := flag.Bool("reset", false, "delete existing club data before loading")
	flag.Parse()

	if err := run(*path, *reset); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(path string, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.App.Env, cfg.App.LogLevel)

	f, err := seed.Load(path)
	if err != nil {
		return err
	}
	if problems := seed.Check(f); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, p)
		}
		return fmt.Errorf("%s has %d invalid records", path, len(problems))
	}

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, logger); err != nil {
		return err
	}

	ctx := context.Background()
	if reset {
		logger.Warn().Msg("deleting existing club data")
		if err := seed.Reset(ctx, db); err != nil {
			return err
		}
	}

	sum, err := seed.Apply(ctx, db, f, logger)
	if err != nil {
		return err
	}
	fmt.Printf("✓ loaded %d teams, %d coaches, %d players, %d matches, %d users\n",
		sum.Teams, sum.Coaches, sum.Players, sum.Matches, sum.Users)
	return nil
}
