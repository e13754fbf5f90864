package etl

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/openclif/clif-etl/internal/domain/mapping"
)

// AmsterdamUMCdb stores both vitals and labs in numericitems keyed by
// numeric itemid, so the same merged-lookup approach as HiRID applies.

var aumcVitalsSpec = LongSpec{
	EncounterColumn:   "admissionid",
	TimeColumn:        "measuredat",
	ItemColumn:        "itemid",
	ValueColumn:       "value",
	TimeOutColumn:     "recorded_dttm",
	TimeKind:          TimeAbsolute,
	CategoryOutColumn: "vital_category",
	ValueOutColumn:    "vital_value",
}

func (s *Service) runAUMC(ctx context.Context, log zerolog.Logger, m *mappingSet, dataPath string) ([]Result, error) {
	vitals, err := s.aumcVitals(ctx, log, m, dataPath)
	if err != nil {
		return nil, err
	}

	log.Info().Str("domain", string(mapping.Labs)).Msg("labs are included in the numericitems table")
	labs := Result{Domain: mapping.Labs, Status: StatusSkipped, Note: "included in numericitems"}
	return []Result{vitals, labs}, nil
}

func (s *Service) aumcVitals(ctx context.Context, log zerolog.Logger, m *mappingSet, dataPath string) (Result, error) {
	path, err := findTable(dataPath, "numericitems", "numericitems.csv", "numericitems.parquet")
	if errors.Is(err, ErrMissingInput) {
		return s.skip(log, mapping.Vitals, "numericitems not found"), nil
	}
	if err != nil {
		return Result{}, err
	}

	lookup, err := mapping.ResolveNumeric(m.vitals, "aumc", s.strict)
	if err != nil {
		return Result{}, err
	}
	labLookup, err := mapping.ResolveNumeric(m.labs, "aumc", s.strict)
	if err != nil {
		return Result{}, err
	}
	lookup = mapping.MergeNumeric(lookup, labLookup)

	return s.runLong(ctx, log, mapping.Vitals, path, aumcVitalsSpec, lookup)
}
