package etl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openclif/clif-etl/internal/domain/mapping"
	"github.com/openclif/clif-etl/internal/platform/table"
)

// ParquetWriter writes one <domain>.parquet file per concept domain under
// a fixed output root.
type ParquetWriter struct {
	root string
}

func NewParquetWriter(root string) *ParquetWriter {
	return &ParquetWriter{root: root}
}

func (w *ParquetWriter) Write(_ context.Context, domain mapping.Domain, columns []table.Column, rows []map[string]any) (string, error) {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", w.root, err)
	}
	path := filepath.Join(w.root, string(domain)+".parquet")
	if err := table.WriteParquet(path, string(domain), columns, rows); err != nil {
		return "", err
	}
	return path, nil
}
