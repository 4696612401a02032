package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/music_school/internal/config"
	"github.com/Freeeeeet/music_school/internal/seed"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// LoadDataset читает начальные данные из источника, выбранного в конфиге.
// Пул Postgres живёт только на время загрузки.
func LoadDataset(ctx context.Context, cfg config.SeedConfig, logger *zap.Logger) (*seed.Dataset, error) {
	var src seed.Source
	switch cfg.Source {
	case config.SeedDir:
		src = seed.DirSource{Dir: cfg.Dir}
	case config.SeedPostgres:
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("connect seed database: %w", err)
		}
		defer pool.Close()
		src = seed.NewPostgresSource(pool, logger)
	default:
		src = seed.EmbeddedSource{}
	}

	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s seed: %w", cfg.Source, err)
	}

	counts := ds.Counts()
	fields := make([]zap.Field, 0, len(seed.Sets)+1)
	fields = append(fields, zap.String("source", cfg.Source))
	for _, set := range seed.Sets {
		fields = append(fields, zap.Int(set, counts[set]))
	}
	logger.Info("Seed dataset loaded", fields...)

	return ds, nil
}
