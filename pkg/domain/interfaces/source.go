package interfaces

import (
	"context"

	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
)

// TabularSource is an external tabular dataset a reconciliation pass reads
// from or exports to. Implementations exist for a CSV file and a Google
// Sheet; the engine never depends on which one it is talking to.
type TabularSource interface {
	// Label names the source for log and result messages
	Label() string

	// Header returns the column labels this source kind carries, in order.
	// Export renders exactly these columns.
	Header() []string

	// Read returns all data rows. A missing or misconfigured source is
	// reported with types.ErrTagSourceNotFound; a structurally unreadable
	// one with types.ErrTagSourceUnreadable.
	Read(ctx context.Context) ([]model.Row, error)

	// Write overwrites the source content in full with the given header
	// and rows. There is no column-level patching.
	Write(ctx context.Context, header []string, rows [][]string) error
}
