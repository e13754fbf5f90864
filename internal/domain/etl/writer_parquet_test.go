package etl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/openclif/clif-etl/internal/domain/mapping"
	"github.com/openclif/clif-etl/internal/platform/table"
)

func TestParquetWriter_WritesDomainFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "clif_output")
	w := NewParquetWriter(root)

	columns := sicVitalsSpec.Columns()
	rows := []map[string]any{
		{"hospitalization_id": "7", "recorded_dttm_offset_min": int64(10), "vital_category": "temp_c", "vital_value": 36.9},
	}

	path, err := w.Write(context.Background(), mapping.Vitals, columns, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "vitals.parquet" {
		t.Errorf("expected vitals.parquet, got %s", path)
	}

	frame, err := table.ReadParquet(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(frame.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(frame.Rows))
	}
	if got, _ := table.AsString(frame.Rows[0]["vital_category"]); got != "temp_c" {
		t.Errorf("expected temp_c, got %q", got)
	}
}

func TestParquetWriter_OverwritesExistingFile(t *testing.T) {
	root := t.TempDir()
	w := NewParquetWriter(root)
	columns := sicVitalsSpec.Columns()

	many := make([]map[string]any, 10)
	for i := range many {
		many[i] = map[string]any{"hospitalization_id": "1", "recorded_dttm_offset_min": int64(i), "vital_category": "heart_rate", "vital_value": 80.0}
	}
	if _, err := w.Write(context.Background(), mapping.Vitals, columns, many); err != nil {
		t.Fatal(err)
	}

	path, err := w.Write(context.Background(), mapping.Vitals, columns, nil)
	if err != nil {
		t.Fatal(err)
	}

	frame, err := table.ReadParquet(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame.Rows) != 0 {
		t.Errorf("overwrite must replace, not merge: got %d rows", len(frame.Rows))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("empty write must still leave a file: %v", err)
	}
}
