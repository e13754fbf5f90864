package etl

import (
	"context"

	"github.com/openclif/clif-etl/internal/domain/mapping"
	"github.com/openclif/clif-etl/internal/platform/table"
)

// Writer persists one concept domain's canonical records. Implementations
// overwrite unconditionally; a zero-row write still produces a valid empty
// table so downstream consumers never see an absent one.
type Writer interface {
	Write(ctx context.Context, domain mapping.Domain, columns []table.Column, rows []map[string]any) (string, error)
}
