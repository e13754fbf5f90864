package etl

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/openclif/clif-etl/internal/domain/mapping"
	"github.com/openclif/clif-etl/internal/platform/table"
)

// eICU-CRD represents vitals as a wide table (one column per concept) and
// labs as free-text test names, so neither side uses numeric item codes.

var eicuVitalsSpec = WideSpec{
	EncounterColumn: "patientunitstayid",
	TimeColumn:      "observationoffset",
	ValueColumns: []WideColumn{
		{Column: "temperature", Category: "temp_c"},
		{Column: "heartrate", Category: "heart_rate"},
		{Column: "systemicsystolic", Category: "sbp"},
		{Column: "systemicdiastolic", Category: "dbp"},
		{Column: "sao2", Category: "spo2"},
		{Column: "respiration", Category: "respiratory_rate"},
		{Column: "systemicmean", Category: "map"},
	},
	TimeOutColumn:     "recorded_dttm_offset_min",
	CategoryOutColumn: "vital_category",
	ValueOutColumn:    "vital_value",
}

var eicuLabsSpec = LongSpec{
	EncounterColumn:   "patientunitstayid",
	TimeColumn:        "labresultoffset",
	ItemColumn:        "labname",
	ValueColumn:       "labresult",
	TimeOutColumn:     "lab_collect_dttm_offset_min",
	TimeKind:          TimeOffset,
	CategoryOutColumn: "lab_category",
	ValueOutColumn:    "lab_value",
}

func (s *Service) runEICU(ctx context.Context, log zerolog.Logger, m *mappingSet, dataPath string) ([]Result, error) {
	for _, f := range []string{"patient.csv", "vitalperiodic.csv", "lab.csv"} {
		if _, err := os.Stat(filepath.Join(dataPath, f)); err != nil {
			log.Warn().Str("file", f).Msg("expected source table missing")
		}
	}

	vitals, err := s.eicuVitals(ctx, log, dataPath)
	if err != nil {
		return nil, err
	}
	labs, err := s.eicuLabs(ctx, log, m, dataPath)
	if err != nil {
		return nil, err
	}
	return []Result{vitals, labs}, nil
}

func (s *Service) eicuVitals(ctx context.Context, log zerolog.Logger, dataPath string) (Result, error) {
	path, err := findTable(dataPath, "vitalperiodic", "vitalperiodic.csv")
	if errors.Is(err, ErrMissingInput) {
		return s.skip(log, mapping.Vitals, "vitalperiodic.csv not found"), nil
	}
	if err != nil {
		return Result{}, err
	}

	log.Info().Str("domain", string(mapping.Vitals)).Str("table", "vitalperiodic.csv").Msg("processing")
	frame, err := table.ReadTable(path)
	if err != nil {
		return Result{}, err
	}
	if len(eicuVitalsSpec.present(frame)) == 0 {
		log.Warn().Str("domain", string(mapping.Vitals)).Msg("no known vital columns present")
	}
	rows := transformWide(frame, eicuVitalsSpec)
	return s.write(ctx, log, mapping.Vitals, eicuVitalsSpec.Columns(), rows)
}

func (s *Service) eicuLabs(ctx context.Context, log zerolog.Logger, m *mappingSet, dataPath string) (Result, error) {
	path, err := findTable(dataPath, "lab", "lab.csv")
	if errors.Is(err, ErrMissingInput) {
		return s.skip(log, mapping.Labs, "lab.csv not found"), nil
	}
	if err != nil {
		return Result{}, err
	}

	lookup, err := mapping.ResolveLabels(m.labs, "eicu", s.strict)
	if err != nil {
		return Result{}, err
	}

	log.Info().Str("domain", string(mapping.Labs)).Str("table", "lab.csv").Int("labels", len(lookup)).Msg("processing")
	frame, err := table.ReadTable(path)
	if err != nil {
		return Result{}, err
	}
	rows, unmapped := transformLabels(frame, eicuLabsSpec, lookup)
	if unmapped > 0 {
		log.Warn().Str("domain", string(mapping.Labs)).Int("rows", unmapped).Msg("rows written with unresolved lab category")
	}
	res, err := s.write(ctx, log, mapping.Labs, eicuLabsSpec.Columns(), rows)
	if err != nil {
		return Result{}, err
	}
	res.Unmapped = unmapped
	return res, nil
}
