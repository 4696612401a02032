// Command seedctl manages the Postgres copy of the seed fixtures.
//
//	seedctl migrate          apply seed table migrations
//	seedctl rollback         roll back the last migration
//	seedctl import [dir]     load fixtures (embedded, or from dir) into the seed tables
//	seedctl verify           read the seed tables back and print record counts
//	seedctl version          print the current migration version
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/Freeeeeet/music_school/internal/app"
	"github.com/Freeeeeet/music_school/internal/config"
	"github.com/Freeeeeet/music_school/internal/seed"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: seedctl migrate|rollback|import [dir]|verify|version")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GetDBDSN() == "" {
		log.Fatal("DB_DSN is required")
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.Log, "seedctl")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := run(ctx, os.Args[1], os.Args[2:], pool, logger); err != nil {
		logger.Error("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, pool *pgxpool.Pool, logger *zap.Logger) error {
	switch cmd {
	case "migrate", "rollback", "version":
		migrator, err := app.NewMigrator(pool, logger.Named("migrator"))
		if err != nil {
			return err
		}
		defer migrator.Close()

		switch cmd {
		case "migrate":
			return migrator.Run(ctx)
		case "rollback":
			return migrator.Down(ctx)
		}
		version, err := migrator.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Println(version)
		return nil

	case "import":
		var src seed.Source = seed.EmbeddedSource{}
		if len(args) > 0 {
			src = seed.DirSource{Dir: args[0]}
		}
		ds, err := src.Load(ctx)
		if err != nil {
			return err
		}
		return seed.NewImporter(pool, logger.Named("importer")).Import(ctx, ds)

	case "verify":
		ds, err := seed.NewPostgresSource(pool, logger.Named("seed")).Load(ctx)
		if err != nil {
			return err
		}
		counts := ds.Counts()
		for _, set := range seed.Sets {
			fmt.Printf("%-14s %d\n", set, counts[set])
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
