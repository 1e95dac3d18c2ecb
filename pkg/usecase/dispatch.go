package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/drover/pkg/domain/interfaces"
	"github.com/m-mizutani/drover/pkg/domain/model"
)

type dispatchUseCase struct {
	dispatcher interfaces.WorkflowDispatcher
	probePages bool
}

// NewDispatch creates a new instance of DispatchUseCase. When probePages is
// true, an identifier whose artifact folder already exists on the Pages
// branch is answered without triggering another workflow run.
func NewDispatch(dispatcher interfaces.WorkflowDispatcher, probePages bool) interfaces.DispatchUseCase {
	return &dispatchUseCase{
		dispatcher: dispatcher,
		probePages: probePages,
	}
}

// Trigger dispatches the artifact build workflow for a validated identifier
func (uc *dispatchUseCase) Trigger(ctx context.Context, id string) (*model.DispatchResult, error) {
	logger := ctxlog.From(ctx)

	result := &model.DispatchResult{
		UUID: id,
		URL:  uc.dispatcher.ArtifactURL(id),
	}

	if uc.probePages {
		published, err := uc.dispatcher.ArtifactPublished(ctx, id)
		if err != nil {
			// A failed probe must not block the trigger; dispatch anyway.
			logger.Warn("Pages probe failed",
				"error", err,
				"uuid", id,
			)
		} else if published {
			logger.Info("Artifact already published, skipping dispatch",
				"uuid", id,
				"url", result.URL,
			)
			result.AlreadyPublished = true
			return result, nil
		}
	}

	if err := uc.dispatcher.DispatchWorkflow(ctx, id); err != nil {
		return nil, goerr.Wrap(err, "failed to dispatch workflow", goerr.V("uuid", id))
	}

	logger.Info("Workflow dispatch accepted",
		"uuid", id,
		"url", result.URL,
	)

	return result, nil
}
