package etl

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/openclif/clif-etl/internal/domain/mapping"
)

// SICdb (Salzburg ICU database) stores observations in long form keyed by
// numeric DataID / LaboratoryID codes, with minute offsets from admission.

var sicVitalsSpec = LongSpec{
	EncounterColumn:   "CaseID",
	TimeColumn:        "Offset",
	ItemColumn:        "DataID",
	ValueColumn:       "Val",
	TimeOutColumn:     "recorded_dttm_offset_min",
	TimeKind:          TimeOffset,
	CategoryOutColumn: "vital_category",
	ValueOutColumn:    "vital_value",
}

var sicLabsSpec = LongSpec{
	EncounterColumn:   "CaseID",
	TimeColumn:        "Offset",
	ItemColumn:        "LaboratoryID",
	ValueColumn:       "LaboratoryValue",
	TimeOutColumn:     "lab_collect_dttm_offset_min",
	TimeKind:          TimeOffset,
	CategoryOutColumn: "lab_category",
	ValueOutColumn:    "lab_value",
}

func (s *Service) runSIC(ctx context.Context, log zerolog.Logger, m *mappingSet, dataPath string) ([]Result, error) {
	var results []Result

	vitals, err := s.sicDomain(ctx, log, mapping.Vitals, m.vitals, dataPath, "data_float_h", sicVitalsSpec)
	if err != nil {
		return nil, err
	}
	results = append(results, vitals)

	labs, err := s.sicDomain(ctx, log, mapping.Labs, m.labs, dataPath, "laboratory", sicLabsSpec)
	if err != nil {
		return nil, err
	}
	return append(results, labs), nil
}

func (s *Service) sicDomain(ctx context.Context, log zerolog.Logger, domain mapping.Domain, entries []mapping.Entry, dataPath, base string, sp LongSpec) (Result, error) {
	path, err := findTable(dataPath, base, base+".csv", base+".parquet")
	if errors.Is(err, ErrMissingInput) {
		return s.skip(log, domain, base+" not found"), nil
	}
	if err != nil {
		return Result{}, err
	}

	lookup, err := mapping.ResolveNumeric(entries, "sic", s.strict)
	if err != nil {
		return Result{}, err
	}
	return s.runLong(ctx, log, domain, path, sp, lookup)
}
