package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

var labelFolder = cases.Fold()

// FoldLabel normalizes a free-text identifier the same way on both sides
// of the lookup: trimmed, then Unicode case-folded.
func FoldLabel(s string) string {
	return labelFolder.String(strings.TrimSpace(s))
}

// SplitIDs splits a raw `;`-delimited identifier list, trimming each
// element and dropping empties.
func SplitIDs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ResolveNumeric builds the identifier -> category reverse lookup for one
// (dataset, domain) pair where native identifiers are numeric item codes.
// Elements that do not parse as integers are excluded without error
// (tolerance policy for hand-maintained tables). When two entries claim
// the same identifier the later entry wins; strict mode turns that into
// an error instead.
func ResolveNumeric(entries []Entry, dataset string, strict bool) (map[int64]string, error) {
	lookup := make(map[int64]string)
	for _, e := range entries {
		for _, raw := range SplitIDs(e.IDs(dataset)) {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				continue
			}
			if prev, ok := lookup[id]; ok && strict && prev != e.Category {
				return nil, fmt.Errorf("duplicate %s identifier %d: claimed by %q and %q", dataset, id, prev, e.Category)
			}
			lookup[id] = e.Category
		}
	}
	return lookup, nil
}

// ResolveLabels builds the reverse lookup for datasets keyed by free-text
// labels. Labels are case-folded; there is no numeric filtering.
func ResolveLabels(entries []Entry, dataset string, strict bool) (map[string]string, error) {
	lookup := make(map[string]string)
	for _, e := range entries {
		for _, raw := range SplitIDs(e.IDs(dataset)) {
			label := FoldLabel(raw)
			if prev, ok := lookup[label]; ok && strict && prev != e.Category {
				return nil, fmt.Errorf("duplicate %s label %q: claimed by %q and %q", dataset, label, prev, e.Category)
			}
			lookup[label] = e.Category
		}
	}
	return lookup, nil
}

// MergeNumeric layers a second domain's lookup on top of a primary one,
// for datasets that co-locate two concept domains in a single table. The
// secondary lookup's claims win, mirroring the entry-order rule. The
// primary map is modified in place and returned.
func MergeNumeric(primary, secondary map[int64]string) map[int64]string {
	for id, cat := range secondary {
		primary[id] = cat
	}
	return primary
}
