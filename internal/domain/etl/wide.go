package etl

import (
	"github.com/openclif/clif-etl/internal/platform/table"
)

// WideColumn pairs one native wide-format column with its canonical
// category. The binding is a fixed table, not derived from the mapping
// artifacts, because the dataset's schema names the concept directly.
type WideColumn struct {
	Column   string
	Category string
}

// WideSpec binds a wide-format source table (one column per concept, one
// row per observation time) to the canonical schema.
type WideSpec struct {
	EncounterColumn string
	TimeColumn      string
	ValueColumns    []WideColumn

	TimeOutColumn     string
	CategoryOutColumn string
	ValueOutColumn    string
}

// Columns returns the canonical output schema for this spec. Wide sources
// carry relative offsets only.
func (sp WideSpec) Columns() []table.Column {
	return canonicalColumns(sp.TimeOutColumn, TimeOffset, sp.CategoryOutColumn, sp.ValueOutColumn)
}

// present returns the value columns that physically exist in the source
// file, in spec order.
func (sp WideSpec) present(frame *table.Frame) []WideColumn {
	var out []WideColumn
	for _, vc := range sp.ValueColumns {
		if frame.HasColumn(vc.Column) {
			out = append(out, vc)
		}
	}
	return out
}

// transformWide unpivots the present value columns into one canonical row
// per (time, category) pair, dropping null values. Output is stacked
// column by column, each preserving source row order, so the R×N reshape
// is deterministic.
func transformWide(frame *table.Frame, sp WideSpec) []map[string]any {
	selected := sp.present(frame)
	rows := make([]map[string]any, 0, len(frame.Rows)*len(selected))
	for _, vc := range selected {
		for _, src := range frame.Rows {
			value, ok := table.AsFloat64(src[vc.Column])
			if !ok {
				continue
			}
			out := map[string]any{
				sp.CategoryOutColumn: vc.Category,
				sp.ValueOutColumn:    value,
			}
			if id, ok := table.AsString(src[sp.EncounterColumn]); ok {
				out["hospitalization_id"] = id
			}
			if t, ok := table.AsInt64(src[sp.TimeColumn]); ok {
				out[sp.TimeOutColumn] = t
			}
			rows = append(rows, out)
		}
	}
	return rows
}
