package invoker

import (
	"context"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

var _ core.AnalyzerInvoker = (*LocalInvoker)(nil)

// LocalInvoker runs the analysis stage in-process. Used by the
// single-binary deployment (no analyzer Lambda configured) and by tests.
// The call is still one-way from the forwarder's point of view: the
// forwarder only learns whether handoff succeeded.
type LocalInvoker struct {
	Process func(ctx context.Context, req *models.AnalysisRequest) error
}

func (i *LocalInvoker) Invoke(ctx context.Context, req *models.AnalysisRequest) error {
	return i.Process(ctx, req)
}
