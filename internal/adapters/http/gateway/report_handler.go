package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/call-audit-gateway/internal/core/services"
)

type ReportHandler struct {
	resolver services.ReportResolver
}

func NewReportHandler(resolver services.ReportResolver) *ReportHandler {
	return &ReportHandler{resolver: resolver}
}

// ServeHTTP maps the four resolution outcomes onto distinct statuses so a
// polling client can tell "keep waiting" (202) apart from "stop" (404) and
// "back off" (500).
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	meetingID := chi.URLParam(r, "meetingID")
	if meetingID == "" {
		writeError(w, http.StatusBadRequest, "missing meetingID")
		return
	}

	res := h.resolver.Resolve(r.Context(), meetingID)
	switch res.Outcome {
	case services.OutcomeReady:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"report":  res.Report,
			"meeting": res.Meeting,
		})
	case services.OutcomeNotReady:
		writeJSON(w, http.StatusAccepted, map[string]any{
			"success": false,
			"message": "report not ready yet",
			"meeting": res.Meeting,
		})
	case services.OutcomeNotFound:
		writeError(w, http.StatusNotFound, "meeting not found")
	default:
		writeError(w, http.StatusInternalServerError, res.Err.Error())
	}
}
