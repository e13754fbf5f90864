package etl

import (
	"errors"

	"github.com/openclif/clif-etl/internal/domain/mapping"
	"github.com/openclif/clif-etl/internal/platform/table"
)

// ErrMissingInput marks a required native source table that is absent.
// Adapters report it as a skip, never as a fatal error.
var ErrMissingInput = errors.New("source table not found")

// Status is the terminal state of one (dataset, domain) adapter run.
type Status string

const (
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
)

// Result records the outcome of one adapter run.
type Result struct {
	Domain   mapping.Domain
	Status   Status
	Rows     int
	Location string // output path or table, when written
	Note     string // reason, when skipped
	Unmapped int    // rows written with a null category (label-keyed only)
}

// TimeKind distinguishes relative-offset time references from absolute
// timestamps. The engine passes either through unchanged.
type TimeKind int

const (
	TimeOffset TimeKind = iota
	TimeAbsolute
)

// canonicalColumns builds the output schema for one concept domain table.
// The value column is always present after null filtering; identifier and
// time columns stay nullable so source nulls pass through untouched.
func canonicalColumns(timeName string, kind TimeKind, categoryName, valueName string) []table.Column {
	timeType := table.TypeInt64
	if kind == TimeAbsolute {
		timeType = table.TypeString
	}
	return []table.Column{
		{Name: "hospitalization_id", Type: table.TypeString, Optional: true},
		{Name: timeName, Type: timeType, Optional: true},
		{Name: categoryName, Type: table.TypeString, Optional: true},
		{Name: valueName, Type: table.TypeFloat64},
	}
}
