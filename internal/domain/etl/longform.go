package etl

import (
	"github.com/openclif/clif-etl/internal/domain/mapping"
	"github.com/openclif/clif-etl/internal/platform/table"
)

// LongSpec binds one dataset's native long-format table to the canonical
// schema: which columns hold the encounter id, time reference, item
// identifier and value, and what the canonical columns are called on the
// way out. The identifier-keyed instantiations differ only here.
type LongSpec struct {
	EncounterColumn string
	TimeColumn      string
	ItemColumn      string
	ValueColumn     string

	TimeOutColumn     string
	TimeKind          TimeKind
	CategoryOutColumn string
	ValueOutColumn    string
}

// Columns returns the canonical output schema for this spec.
func (sp LongSpec) Columns() []table.Column {
	return canonicalColumns(sp.TimeOutColumn, sp.TimeKind, sp.CategoryOutColumn, sp.ValueOutColumn)
}

// transformLong reshapes a long-format source table into canonical
// records. A row survives iff its item identifier is a key of the lookup
// and its value is non-null; everything else passes through renamed.
// Source row order is preserved, so output is deterministic.
func transformLong(frame *table.Frame, sp LongSpec, lookup map[int64]string) []map[string]any {
	rows := make([]map[string]any, 0, len(frame.Rows))
	for _, src := range frame.Rows {
		item, ok := table.AsInt64(src[sp.ItemColumn])
		if !ok {
			continue
		}
		category, ok := lookup[item]
		if !ok {
			continue
		}
		value, ok := table.AsFloat64(src[sp.ValueColumn])
		if !ok {
			continue
		}
		rows = append(rows, canonicalRow(sp, src, category, value))
	}
	return rows
}

func canonicalRow(sp LongSpec, src map[string]any, category string, value float64) map[string]any {
	out := map[string]any{
		sp.CategoryOutColumn: category,
		sp.ValueOutColumn:    value,
	}
	if id, ok := table.AsString(src[sp.EncounterColumn]); ok {
		out["hospitalization_id"] = id
	}
	switch sp.TimeKind {
	case TimeOffset:
		if t, ok := table.AsInt64(src[sp.TimeColumn]); ok {
			out[sp.TimeOutColumn] = t
		}
	case TimeAbsolute:
		if t, ok := table.AsString(src[sp.TimeColumn]); ok {
			out[sp.TimeOutColumn] = t
		}
	}
	return out
}

// transformLabels is the label-keyed variant: identifiers are free-text
// strings resolved after case folding. Unresolved labels keep their row
// with a null category; only null values drop a row.
func transformLabels(frame *table.Frame, sp LongSpec, lookup map[string]string) (rows []map[string]any, unmapped int) {
	rows = make([]map[string]any, 0, len(frame.Rows))
	for _, src := range frame.Rows {
		value, ok := table.AsFloat64(src[sp.ValueColumn])
		if !ok {
			continue
		}
		out := map[string]any{sp.ValueOutColumn: value}
		if label, ok := table.AsString(src[sp.ItemColumn]); ok {
			if category, found := lookup[mapping.FoldLabel(label)]; found {
				out[sp.CategoryOutColumn] = category
			} else {
				unmapped++
			}
		} else {
			unmapped++
		}
		if id, ok := table.AsString(src[sp.EncounterColumn]); ok {
			out["hospitalization_id"] = id
		}
		switch sp.TimeKind {
		case TimeOffset:
			if t, ok := table.AsInt64(src[sp.TimeColumn]); ok {
				out[sp.TimeOutColumn] = t
			}
		case TimeAbsolute:
			if t, ok := table.AsString(src[sp.TimeColumn]); ok {
				out[sp.TimeOutColumn] = t
			}
		}
		rows = append(rows, out)
	}
	return rows, unmapped
}
