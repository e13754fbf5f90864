package mapping

import "testing"

func entry(category string, dataset, ids string) Entry {
	return Entry{Category: category, SourceIDs: map[string]string{dataset: ids}}
}

func TestResolveNumeric_SplitsTrimsAndParses(t *testing.T) {
	entries := []Entry{entry("temp_c", "sic", "10; 20;30")}

	lookup, err := ResolveNumeric(entries, "sic", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lookup) != 3 {
		t.Fatalf("expected 3 identifiers, got %d", len(lookup))
	}
	for _, id := range []int64{10, 20, 30} {
		if lookup[id] != "temp_c" {
			t.Errorf("expected %d -> temp_c, got %q", id, lookup[id])
		}
	}
}

func TestResolveNumeric_SkipsMalformedIdentifiers(t *testing.T) {
	entries := []Entry{entry("heart_rate", "hirid", "200;abc; ;201")}

	lookup, err := ResolveNumeric(entries, "hirid", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lookup) != 2 {
		t.Fatalf("expected malformed elements excluded, got %d entries", len(lookup))
	}
	if _, ok := lookup[200]; !ok {
		t.Error("expected identifier 200 to resolve")
	}
	if _, ok := lookup[201]; !ok {
		t.Error("expected identifier 201 to resolve")
	}
}

func TestResolveNumeric_LastWriteWins(t *testing.T) {
	entries := []Entry{
		entry("sbp", "aumc", "500"),
		entry("map", "aumc", "500"),
	}

	lookup, err := ResolveNumeric(entries, "aumc", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lookup[500] != "map" {
		t.Errorf("expected later entry to win, got %q", lookup[500])
	}
}

func TestResolveNumeric_StrictRejectsDuplicates(t *testing.T) {
	entries := []Entry{
		entry("sbp", "aumc", "500"),
		entry("map", "aumc", "500"),
	}

	if _, err := ResolveNumeric(entries, "aumc", true); err == nil {
		t.Fatal("expected strict mode to reject the duplicate claim")
	}
}

func TestResolveNumeric_StrictAllowsRepeatWithinCategory(t *testing.T) {
	entries := []Entry{
		entry("sbp", "aumc", "500;500"),
	}

	if _, err := ResolveNumeric(entries, "aumc", true); err != nil {
		t.Fatalf("same-category repeat should not fail strict mode: %v", err)
	}
}

func TestResolveNumeric_EmptyAndAbsentLists(t *testing.T) {
	entries := []Entry{
		entry("temp_c", "sic", ""),
		{Category: "heart_rate", SourceIDs: map[string]string{}},
	}

	lookup, err := ResolveNumeric(entries, "sic", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lookup) != 0 {
		t.Errorf("expected empty lookup, got %d entries", len(lookup))
	}
}

func TestResolveLabels_FoldsCase(t *testing.T) {
	entries := []Entry{entry("sodium", "eicu", "Sodium; NA Level")}

	lookup, err := ResolveLabels(entries, "eicu", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lookup["sodium"] != "sodium" {
		t.Errorf("expected folded label sodium, got %q", lookup["sodium"])
	}
	if lookup["na level"] != "sodium" {
		t.Errorf("expected folded label \"na level\", got %q", lookup["na level"])
	}
}

func TestResolveLabels_NoNumericFiltering(t *testing.T) {
	entries := []Entry{entry("wbc", "eicu", "WBC x 1000")}

	lookup, err := ResolveLabels(entries, "eicu", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lookup["wbc x 1000"] != "wbc" {
		t.Errorf("free-text labels must pass through, got %v", lookup)
	}
}

func TestMergeNumeric_SecondaryWins(t *testing.T) {
	vitals := map[int64]string{100: "heart_rate", 200: "temp_c"}
	labs := map[int64]string{200: "glucose_serum", 300: "sodium"}

	merged := MergeNumeric(vitals, labs)
	if merged[100] != "heart_rate" {
		t.Errorf("unclaimed primary key must survive, got %q", merged[100])
	}
	if merged[200] != "glucose_serum" {
		t.Errorf("secondary domain must win the shared key, got %q", merged[200])
	}
	if merged[300] != "sodium" {
		t.Errorf("secondary-only key missing, got %q", merged[300])
	}
}

func TestSplitIDs(t *testing.T) {
	got := SplitIDs(" a ;; b;c ")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFoldLabel(t *testing.T) {
	if FoldLabel("  Glucose (Serum)  ") != "glucose (serum)" {
		t.Errorf("unexpected fold: %q", FoldLabel("  Glucose (Serum)  "))
	}
}
