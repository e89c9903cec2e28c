package api

import (
	"net/http"

	"intake-assistant/backend/internal/interfaces"
)

// DiagHandler serves the configuration report.
type DiagHandler struct {
	service interfaces.DiagnosticsService
}

func NewDiagHandler(svc interfaces.DiagnosticsService) *DiagHandler {
	return &DiagHandler{service: svc}
}

// HandleDiag godoc
// @Summary      Configuration report
// @Description  Reports which settings are present and whether the configured deployment is visible to the key. Never returns credentials.
// @Tags         Diagnostics
// @Produce      json
// @Success      200  {object}  service.DiagnosticsReport
// @Router       /diag [get]
func (h *DiagHandler) HandleDiag(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}
