package interfaces

import (
	"context"

	"github.com/m-mizutani/drover/pkg/domain/model"
)

// DispatchUseCase defines the workflow trigger operation behind the
// dispatch endpoint
type DispatchUseCase interface {
	// Trigger dispatches the artifact build workflow for a validated
	// identifier and returns the public artifact location.
	Trigger(ctx context.Context, id string) (*model.DispatchResult, error)
}
