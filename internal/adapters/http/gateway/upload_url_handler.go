package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/call-audit-gateway/internal/core/services"
)

type UploadURLHandler struct {
	broker *services.UploadBrokerService
}

func NewUploadURLHandler(broker *services.UploadBrokerService) *UploadURLHandler {
	return &UploadURLHandler{broker: broker}
}

type uploadURLRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

type uploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileName  string `json:"fileName"`
}

func (h *UploadURLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	grant, err := h.broker.RequestUploadGrant(r.Context(), req.FileName, req.FileType)
	if errors.Is(err, services.ErrEmptyFileName) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// fileName carries the granted object key so the client can register the
	// meeting under the name the object was actually stored as.
	writeJSON(w, http.StatusOK, uploadURLResponse{
		UploadURL: grant.URL,
		FileName:  grant.ObjectKey,
	})
}
