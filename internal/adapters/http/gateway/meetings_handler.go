package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/call-audit-gateway/internal/core/domain"
	"github.com/call-audit-gateway/internal/core/services"
)

type MeetingsHandler struct {
	meetings *services.MeetingService
}

func NewMeetingsHandler(meetings *services.MeetingService) *MeetingsHandler {
	return &MeetingsHandler{meetings: meetings}
}

type registerMeetingRequest struct {
	FileName string `json:"fileName"`
}

func (h *MeetingsHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.meetings.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []domain.MeetingRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"meetings": records})
}

func (h *MeetingsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.meetings.Register(r.Context(), req.FileName)
	if errors.Is(err, services.ErrEmptyFileName) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"meeting": record,
	})
}
