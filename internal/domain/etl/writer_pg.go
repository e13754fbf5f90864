package etl

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openclif/clif-etl/internal/domain/mapping"
	"github.com/openclif/clif-etl/internal/platform/table"
)

// PostgresWriter bulk-loads canonical records into clif_<domain> tables.
// Each write truncates first, matching the file sink's overwrite contract.
type PostgresWriter struct {
	pool *pgxpool.Pool
}

func NewPostgresWriter(pool *pgxpool.Pool) *PostgresWriter {
	return &PostgresWriter{pool: pool}
}

func sqlType(t table.ColumnType) string {
	switch t {
	case table.TypeInt64:
		return "bigint"
	case table.TypeFloat64:
		return "double precision"
	default:
		return "text"
	}
}

func (w *PostgresWriter) Write(ctx context.Context, domain mapping.Domain, columns []table.Column, rows []map[string]any) (string, error) {
	name := "clif_" + string(domain)

	defs := make([]string, len(columns))
	names := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = fmt.Sprintf("%s %s", c.Name, sqlType(c.Type))
		names[i] = c.Name
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", name, strings.Join(defs, ", "))
	if _, err := w.pool.Exec(ctx, ddl); err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.pool.Exec(ctx, "TRUNCATE "+name); err != nil {
		return "", fmt.Errorf("truncate %s: %w", name, err)
	}

	values := make([][]any, len(rows))
	for i, row := range rows {
		rec := make([]any, len(names))
		for j, col := range names {
			rec[j] = row[col]
		}
		values[i] = rec
	}

	if _, err := w.pool.CopyFrom(ctx, pgx.Identifier{name}, names, pgx.CopyFromRows(values)); err != nil {
		return "", fmt.Errorf("copy into %s: %w", name, err)
	}
	return name, nil
}
