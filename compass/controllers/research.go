package controllers

import (
	"context"
	"errors"

	"compass/compass/services/research"
	"compass/compass/utils/logging"
	"compass/compass/utils/types"

	"go.uber.org/zap"
)

// Researcher runs one company lookup. *research.Pipeline satisfies it.
type Researcher interface {
	Run(ctx context.Context, company string, rep research.Reporter) (*types.ResearchReport, error)
}

type ResearchController struct {
	pipeline Researcher
}

func NewResearchController(pipeline Researcher) *ResearchController {
	return &ResearchController{pipeline: pipeline}
}

// Research runs the pipeline to completion and returns the report.
func (c *ResearchController) Research(ctx context.Context, req types.ResearchRequest) (*types.ResearchReport, error) {
	return c.pipeline.Run(ctx, req.Company, research.NopReporter{})
}

// ResearchStream runs the pipeline in the background. Events arrive on the
// returned channel, which is closed after the done event. The error channel
// receives at most one value and is then closed.
func (c *ResearchController) ResearchStream(ctx context.Context, req types.ResearchRequest) (<-chan types.ResearchEvent, <-chan error) {
	events := make(chan types.ResearchEvent, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(events)

		rep := research.NewEventReporter(func(ev types.ResearchEvent) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		})
		if _, err := c.pipeline.Run(ctx, req.Company, rep); err != nil {
			logging.AppLogger.Info("research stream ended with error",
				zap.String("company", req.Company), zap.Error(err))
			errCh <- err
			// an empty name returns before the pipeline's own Done
			if errors.Is(err, research.ErrEmptyCompany) {
				rep.Done()
			}
		}
	}()
	return events, errCh
}
