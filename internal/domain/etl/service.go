package etl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openclif/clif-etl/internal/domain/mapping"
	"github.com/openclif/clif-etl/internal/platform/table"
)

// Sources lists the supported dataset names.
var Sources = []string{"eicu", "hirid", "aumc", "sic"}

// SupportedSource reports whether name is a known dataset.
func SupportedSource(name string) bool {
	for _, s := range Sources {
		if s == name {
			return true
		}
	}
	return false
}

// Service drives the normalization pipeline for one source dataset:
// mapping tables -> resolved lookups -> adapter transforms -> writer.
type Service struct {
	mappings mapping.Repository
	writer   Writer
	log      zerolog.Logger
	strict   bool
}

func NewService(mappings mapping.Repository, writer Writer, log zerolog.Logger, strict bool) *Service {
	return &Service{mappings: mappings, writer: writer, log: log, strict: strict}
}

// mappingSet holds all four domain tables, loaded eagerly so a missing or
// ambiguous artifact aborts before any adapter touches the output.
type mappingSet struct {
	vitals []mapping.Entry
	labs   []mapping.Entry
	meds   []mapping.Entry
	resp   []mapping.Entry
}

func (s *Service) loadMappings() (*mappingSet, error) {
	m := &mappingSet{}
	for _, d := range []struct {
		domain mapping.Domain
		dst    *[]mapping.Entry
	}{
		{mapping.Vitals, &m.vitals},
		{mapping.Labs, &m.labs},
		{mapping.Medications, &m.meds},
		{mapping.RespiratorySupport, &m.resp},
	} {
		entries, err := s.mappings.Load(d.domain)
		if err != nil {
			return nil, err
		}
		*d.dst = entries
	}
	return m, nil
}

// Run executes the full pipeline for one source dataset located at
// dataPath. It returns one Result per concept domain attempted; any error
// returned is fatal for the whole run.
func (s *Service) Run(ctx context.Context, source, dataPath string) ([]Result, error) {
	if !SupportedSource(source) {
		return nil, fmt.Errorf("unsupported source: %s", source)
	}

	m, err := s.loadMappings()
	if err != nil {
		return nil, err
	}

	log := s.log.With().
		Str("run_id", uuid.NewString()).
		Str("source", source).
		Logger()
	log.Info().
		Str("path", dataPath).
		Int("vitals_categories", len(m.vitals)).
		Int("labs_categories", len(m.labs)).
		Int("medication_categories", len(m.meds)).
		Int("respiratory_categories", len(m.resp)).
		Msg("starting run")

	var results []Result
	switch source {
	case "eicu":
		results, err = s.runEICU(ctx, log, m, dataPath)
	case "sic":
		results, err = s.runSIC(ctx, log, m, dataPath)
	case "hirid":
		results, err = s.runHiRID(ctx, log, m, dataPath)
	case "aumc":
		results, err = s.runAUMC(ctx, log, m, dataPath)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Int("domains", len(results)).Msg("run complete")
	return results, nil
}

// findTable returns the first existing candidate under dataPath, or
// ErrMissingInput naming the table's base name.
func findTable(dataPath, base string, candidates ...string) (string, error) {
	for _, c := range candidates {
		p := filepath.Join(dataPath, c)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMissingInput, base)
}

// skip logs and records a non-fatal missing-input outcome.
func (s *Service) skip(log zerolog.Logger, domain mapping.Domain, note string) Result {
	log.Warn().Str("domain", string(domain)).Str("reason", note).Msg("skipping")
	return Result{Domain: domain, Status: StatusSkipped, Note: note}
}

// write persists one domain's canonical rows and records the outcome.
// Zero rows still produce a valid empty table.
func (s *Service) write(ctx context.Context, log zerolog.Logger, domain mapping.Domain, columns []table.Column, rows []map[string]any) (Result, error) {
	if len(rows) == 0 {
		log.Warn().Str("domain", string(domain)).Msg("no rows matched any canonical category; writing empty table")
	}
	loc, err := s.writer.Write(ctx, domain, columns, rows)
	if err != nil {
		return Result{}, fmt.Errorf("write %s: %w", domain, err)
	}
	log.Info().Str("domain", string(domain)).Int("rows", len(rows)).Str("output", loc).Msg("wrote canonical table")
	return Result{Domain: domain, Status: StatusWritten, Rows: len(rows), Location: loc}, nil
}

// runLong is the shared identifier-keyed path: read, filter to mapped
// identifiers, reshape, write.
func (s *Service) runLong(ctx context.Context, log zerolog.Logger, domain mapping.Domain, path string, sp LongSpec, lookup map[int64]string) (Result, error) {
	log.Info().Str("domain", string(domain)).Str("table", filepath.Base(path)).Int("identifiers", len(lookup)).Msg("processing")
	frame, err := table.ReadTable(path)
	if err != nil {
		return Result{}, err
	}
	rows := transformLong(frame, sp, lookup)
	return s.write(ctx, log, domain, sp.Columns(), rows)
}
