package mapping

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/openclif/clif-etl/internal/platform/table"
)

// FileRepository reads mapping artifacts from <root>/<domain>/ on disk.
// Exactly one .csv or .xlsx file must exist per domain directory.
type FileRepository struct {
	root string
}

func NewFileRepository(root string) *FileRepository {
	return &FileRepository{root: root}
}

func (r *FileRepository) Load(domain Domain) ([]Entry, error) {
	dir := filepath.Join(r.root, string(domain))

	var candidates []string
	for _, pattern := range []string{"*.csv", "*.xlsx"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		candidates = append(candidates, matches...)
	}
	sort.Strings(candidates)

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w for domain %s in %s", ErrNoArtifact, domain, dir)
	case 1:
	default:
		return nil, fmt.Errorf("%w for domain %s: %s", ErrAmbiguousArtifact, domain, strings.Join(candidates, ", "))
	}

	path := candidates[0]
	var header []string
	var rows [][]string
	var err error
	if filepath.Ext(path) == ".xlsx" {
		header, rows, err = readXLSX(path)
	} else {
		header, rows, err = readDelimited(path)
	}
	if err != nil {
		return nil, err
	}
	return entriesFromRows(domain, path, header, rows)
}

func readDelimited(path string) ([]string, [][]string, error) {
	frame, err := table.ReadCSV(path)
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]string, 0, len(frame.Rows))
	for _, row := range frame.Rows {
		rec := make([]string, len(frame.Columns))
		for i, col := range frame.Columns {
			rec[i], _ = table.AsString(row[col])
		}
		rows = append(rows, rec)
	}
	return frame.Columns, rows, nil
}

func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("read %s: workbook has no sheets", path)
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("read %s: empty sheet", path)
	}
	return all[0], all[1:], nil
}

// entriesFromRows assembles Entry values from a tabular mapping artifact.
// Every column named <dataset>_ids contributes that dataset's identifier
// list; the domain's category column is required.
func entriesFromRows(domain Domain, path string, header []string, rows [][]string) ([]Entry, error) {
	catIdx := -1
	for i, col := range header {
		if col == domain.CategoryColumn() {
			catIdx = i
		}
	}
	if catIdx < 0 {
		return nil, fmt.Errorf("read %s: missing column %q", path, domain.CategoryColumn())
	}

	entries := make([]Entry, 0, len(rows))
	for _, rec := range rows {
		if catIdx >= len(rec) || strings.TrimSpace(rec[catIdx]) == "" {
			continue
		}
		e := Entry{
			Category:  strings.TrimSpace(rec[catIdx]),
			SourceIDs: make(map[string]string),
		}
		for i, col := range header {
			dataset, ok := strings.CutSuffix(col, "_ids")
			if !ok || i >= len(rec) {
				continue
			}
			if ids := strings.TrimSpace(rec[i]); ids != "" {
				e.SourceIDs[dataset] = ids
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
