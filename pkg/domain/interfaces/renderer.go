package interfaces

import (
	"context"

	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

// Renderer turns a materialized report document into format-specific bytes.
// Renderers are black boxes to the materializer; optional capabilities they
// lack degrade the affected section rather than failing the document.
type Renderer interface {
	Format() types.ReportFormat
	ContentType() string
	Render(ctx context.Context, doc *model.Document) ([]byte, error)
}
