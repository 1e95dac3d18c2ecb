package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/drover/pkg/domain/interfaces"
	"github.com/m-mizutani/drover/pkg/domain/model"
	"github.com/m-mizutani/drover/pkg/domain/types"
)

// DispatchHandler handles workflow trigger requests
type DispatchHandler struct {
	dispatchUC interfaces.DispatchUseCase
}

// NewDispatchHandler creates a new DispatchHandler
func NewDispatchHandler(dispatchUC interfaces.DispatchUseCase) *DispatchHandler {
	return &DispatchHandler{
		dispatchUC: dispatchUC,
	}
}

// Handle processes dispatch requests
func (h *DispatchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Extract and validate identifier
	id := model.NormalizeIdentifier(extractIdentifier(r.Body))
	defer r.Body.Close()

	if !model.ValidIdentifier(id) {
		logger.Warn("Rejected malformed identifier", "uuid", id)
		writeJSON(w, http.StatusBadRequest, &model.ErrorResponse{Error: "Invalid UUID"})
		return
	}

	// Trigger workflow via UseCase
	result, err := h.dispatchUC.Trigger(ctx, id)
	if err != nil {
		logger.Error("Workflow trigger failed", "error", err, "uuid", id)

		// No-op unless Sentry was initialized at startup
		sentry.CaptureException(err)

		if goerr.HasTag(err, types.ErrTagUpstream) {
			detail, _ := goerr.Values(err)["detail"].(string)
			writeJSON(w, http.StatusBadGateway, &model.ErrorResponse{
				Error:  "GitHub dispatch failed",
				Detail: detail,
			})
			return
		}

		writeJSON(w, http.StatusInternalServerError, &model.ErrorResponse{Error: "Internal error"})
		return
	}

	// 202 signals the artifact is not ready yet; the workflow publishes it
	// asynchronously. An already published artifact answers 200 instead.
	status := http.StatusAccepted
	if result.AlreadyPublished {
		status = http.StatusOK
	}

	writeJSON(w, status, &model.DispatchAccepted{
		OK:   true,
		UUID: result.UUID,
		URL:  result.URL,
	})
}

// extractIdentifier reads the request body as a JSON object and returns its
// uuid field. Malformed JSON deliberately degrades to an empty object, and an
// absent or non-string uuid degrades to an empty string; both fail the shape
// check in the caller instead of erroring here.
func extractIdentifier(body io.Reader) string {
	raw, err := io.ReadAll(body)
	if err != nil {
		return ""
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		fields = map[string]any{}
	}

	id, _ := fields["uuid"].(string)
	return id
}
