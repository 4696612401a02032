package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TableName returns the Postgres table that holds a seed set.
func TableName(set string) string {
	return "seed_" + set
}

// PostgresSource reads the seed sets from seed_<set> tables (id bigint, doc jsonb).
// It only reads; the running server never writes records back.
type PostgresSource struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresSource(pool *pgxpool.Pool, logger *zap.Logger) *PostgresSource {
	return &PostgresSource{
		pool:   pool,
		logger: logger,
	}
}

func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	ds := &Dataset{}
	for _, set := range Sets {
		docs, err := s.readSet(ctx, set)
		if err != nil {
			return nil, err
		}

		target, err := ds.target(set)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(joinDocs(docs), target); err != nil {
			return nil, fmt.Errorf("decode %s rows: %w", set, err)
		}

		s.logger.Debug("Seed set loaded from postgres",
			zap.String("set", set),
			zap.Int("rows", len(docs)))
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("validate postgres seed: %w", err)
	}
	return ds, nil
}

// readSet получает документы набора в порядке id
func (s *PostgresSource) readSet(ctx context.Context, set string) ([][]byte, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s ORDER BY id`, pgx.Identifier{TableName(set)}.Sanitize())

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", set, err)
	}

	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", set, err)
	}
	return docs, nil
}

// joinDocs собирает JSON-массив из отдельных документов
func joinDocs(docs [][]byte) []byte {
	out := []byte{'['}
	for i, doc := range docs {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, doc...)
	}
	return append(out, ']')
}
