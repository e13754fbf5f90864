package mapping

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

const vitalsCSV = `vital_category,description,eicu_ids,sic_ids,hirid_ids,aumc_ids
temp_c,Body temperature,temperature,703,410,8658
heart_rate,Heart rate,heartrate,708,200,6640
,orphan row without category,x,1,2,3
`

func writeArtifact(t *testing.T, root string, domain Domain, name, content string) {
	t.Helper()
	dir := filepath.Join(root, string(domain))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileRepository_LoadCSV(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, Vitals, "clif_vitals_categories.csv", vitalsCSV)

	entries, err := NewFileRepository(root).Load(Vitals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (blank category dropped), got %d", len(entries))
	}
	if entries[0].Category != "temp_c" {
		t.Errorf("expected first entry temp_c, got %q", entries[0].Category)
	}
	if entries[0].IDs("sic") != "703" {
		t.Errorf("expected sic ids 703, got %q", entries[0].IDs("sic"))
	}
	if entries[1].IDs("eicu") != "heartrate" {
		t.Errorf("expected eicu ids heartrate, got %q", entries[1].IDs("eicu"))
	}
	if entries[0].IDs("mimic") != "" {
		t.Errorf("unknown dataset must return empty, got %q", entries[0].IDs("mimic"))
	}
}

func TestFileRepository_MissingArtifact(t *testing.T) {
	_, err := NewFileRepository(t.TempDir()).Load(Labs)
	if !errors.Is(err, ErrNoArtifact) {
		t.Fatalf("expected ErrNoArtifact, got %v", err)
	}
}

func TestFileRepository_AmbiguousArtifact(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, Vitals, "a.csv", vitalsCSV)
	writeArtifact(t, root, Vitals, "b.csv", vitalsCSV)

	_, err := NewFileRepository(root).Load(Vitals)
	if !errors.Is(err, ErrAmbiguousArtifact) {
		t.Fatalf("expected ErrAmbiguousArtifact, got %v", err)
	}
}

func TestFileRepository_AmbiguousAcrossFormats(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, Vitals, "a.csv", vitalsCSV)
	writeArtifact(t, root, Vitals, "a.xlsx", "not really xlsx")

	_, err := NewFileRepository(root).Load(Vitals)
	if !errors.Is(err, ErrAmbiguousArtifact) {
		t.Fatalf("expected ErrAmbiguousArtifact, got %v", err)
	}
}

func TestFileRepository_MissingCategoryColumn(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, Labs, "labs.csv", "lab_name,eicu_ids\nglucose,glucose\n")

	_, err := NewFileRepository(root).Load(Labs)
	if err == nil {
		t.Fatal("expected error for missing lab_category column")
	}
}

func TestFileRepository_LoadXLSX(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, string(Vitals))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"vital_category", "description", "sic_ids"},
		{"temp_c", "Body temperature", "703;704"},
		{"heart_rate", "Heart rate", "708"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(filepath.Join(dir, "clif_vitals_categories.xlsx")); err != nil {
		t.Fatal(err)
	}

	entries, err := NewFileRepository(root).Load(Vitals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].IDs("sic") != "703;704" {
		t.Errorf("expected sic ids preserved, got %q", entries[0].IDs("sic"))
	}
}

func TestDomainCategoryColumn(t *testing.T) {
	cases := map[Domain]string{
		Vitals:             "vital_category",
		Labs:               "lab_category",
		Medications:        "med_category",
		RespiratorySupport: "device_category",
	}
	for domain, want := range cases {
		if got := domain.CategoryColumn(); got != want {
			t.Errorf("%s: expected %q, got %q", domain, want, got)
		}
	}
}
