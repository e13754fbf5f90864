package etl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/openclif/clif-etl/internal/domain/mapping"
	"github.com/openclif/clif-etl/internal/platform/table"
)

// HiRID keeps vitals and labs together in one observations table keyed by
// numeric variableid, with absolute timestamps. The vitals adapter
// therefore resolves both domains into one lookup (labs layered second)
// and the labs domain produces no table of its own.

var hiridVitalsSpec = LongSpec{
	EncounterColumn:   "patientid",
	TimeColumn:        "datetime",
	ItemColumn:        "variableid",
	ValueColumn:       "value",
	TimeOutColumn:     "recorded_dttm",
	TimeKind:          TimeAbsolute,
	CategoryOutColumn: "vital_category",
	ValueOutColumn:    "vital_value",
}

func (s *Service) runHiRID(ctx context.Context, log zerolog.Logger, m *mappingSet, dataPath string) ([]Result, error) {
	vitals, err := s.hiridVitals(ctx, log, m, dataPath)
	if err != nil {
		return nil, err
	}

	log.Info().Str("domain", string(mapping.Labs)).Msg("labs are included in the observations table")
	labs := Result{Domain: mapping.Labs, Status: StatusSkipped, Note: "included in observations"}
	return []Result{vitals, labs}, nil
}

func (s *Service) hiridVitals(ctx context.Context, log zerolog.Logger, m *mappingSet, dataPath string) (Result, error) {
	paths, err := findHiRIDObservations(dataPath)
	if err != nil {
		return s.skip(log, mapping.Vitals, "observations not found"), nil
	}

	lookup, err := mapping.ResolveNumeric(m.vitals, "hirid", s.strict)
	if err != nil {
		return Result{}, err
	}
	labLookup, err := mapping.ResolveNumeric(m.labs, "hirid", s.strict)
	if err != nil {
		return Result{}, err
	}
	lookup = mapping.MergeNumeric(lookup, labLookup)

	log.Info().Str("domain", string(mapping.Vitals)).Int("tables", len(paths)).Int("identifiers", len(lookup)).Msg("processing observations")
	frame, err := table.ReadTables(paths)
	if err != nil {
		return Result{}, err
	}
	rows := transformLong(frame, hiridVitalsSpec, lookup)
	return s.write(ctx, log, mapping.Vitals, hiridVitalsSpec.Columns(), rows)
}

// findHiRIDObservations locates the observation table, which ships either
// as a partitioned directory (observation_tables/ or observations/) of
// parquet or csv parts, or as a single observations.parquet file.
func findHiRIDObservations(dataPath string) ([]string, error) {
	for _, dir := range []string{"observation_tables", "observations"} {
		d := filepath.Join(dataPath, dir)
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			continue
		}
		for _, pattern := range []string{"*.parquet", "*.csv"} {
			parts, err := filepath.Glob(filepath.Join(d, pattern))
			if err == nil && len(parts) > 0 {
				sort.Strings(parts)
				return parts, nil
			}
		}
	}
	single := filepath.Join(dataPath, "observations.parquet")
	if _, err := os.Stat(single); err == nil {
		return []string{single}, nil
	}
	return nil, fmt.Errorf("%w: observations", ErrMissingInput)
}
