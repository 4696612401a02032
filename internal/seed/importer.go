package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Importer publishes a Dataset into the seed_<set> tables.
type Importer struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewImporter(pool *pgxpool.Pool, logger *zap.Logger) *Importer {
	return &Importer{
		pool:   pool,
		logger: logger,
	}
}

// Import заменяет содержимое всех seed-таблиц одним транзакционным проходом
func (im *Importer) Import(ctx context.Context, ds *Dataset) error {
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("validate dataset: %w", err)
	}

	tx, err := im.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, set := range Sets {
		rows, err := ds.rows(set)
		if err != nil {
			return err
		}

		table := pgx.Identifier{TableName(set)}
		if _, err := tx.Exec(ctx, "TRUNCATE "+table.Sanitize()); err != nil {
			return fmt.Errorf("truncate %s: %w", set, err)
		}

		copied, err := tx.CopyFrom(ctx, table, []string{"id", "doc"}, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("copy %s: %w", set, err)
		}

		im.logger.Info("Seed set imported",
			zap.String("set", set),
			zap.Int64("rows", copied))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// rows кодирует записи набора в строки (id, doc) для COPY
func (d *Dataset) rows(set string) ([][]any, error) {
	switch set {
	case SetStudents:
		return copyRows(set, d.Students, func(s model.Student) int64 { return s.ID })
	case SetTeachers:
		return copyRows(set, d.Teachers, func(t model.Teacher) int64 { return t.ID })
	case SetClasses:
		return copyRows(set, d.Classes, func(c model.Class) int64 { return c.ID })
	case SetAttendance:
		return copyRows(set, d.Attendance, func(a model.Attendance) int64 { return a.ID })
	case SetEvents:
		return copyRows(set, d.Events, func(e model.Event) int64 { return e.ID })
	case SetBilling:
		return copyRows(set, d.Billing, func(b model.Bill) int64 { return b.ID })
	case SetReplacements:
		return copyRows(set, d.Replacements, func(r model.Replacement) int64 { return r.ID })
	default:
		return nil, fmt.Errorf("unknown seed set %q", set)
	}
}

func copyRows[T any](set string, items []T, id func(T) int64) ([][]any, error) {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		doc, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encode %s record %d: %w", set, id(item), err)
		}
		rows = append(rows, []any{id(item), json.RawMessage(doc)})
	}
	return rows, nil
}
