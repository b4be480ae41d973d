package handler

import (
	"encoding/json"
	"net/http"

	"fraud-investigation-system/internal/application/dto"
	"fraud-investigation-system/internal/application/triage"
)

// AlertsHandler handles alert-queue HTTP requests
type AlertsHandler struct {
	queue *triage.AlertQueueUseCase
}

// NewAlertsHandler creates a new alerts handler
func NewAlertsHandler(queue *triage.AlertQueueUseCase) *AlertsHandler {
	return &AlertsHandler{queue: queue}
}

// GetQueue handles GET /api/v1/alerts
func (h *AlertsHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	mode := triage.SortMode(r.URL.Query().Get("sort"))
	switch mode {
	case triage.SortModeRisk, triage.SortModeAnomaly, triage.SortModeOutcomeInformed:
	case "":
		mode = triage.SortModeRisk
	default:
		writeError(w, http.StatusBadRequest, "Unknown sort mode: "+string(mode))
		return
	}

	writeJSON(w, http.StatusOK, h.queue.Execute(r.Context(), mode))
}

// ComputePriority handles POST /api/v1/alerts/priority
func (h *AlertsHandler) ComputePriority(w http.ResponseWriter, r *http.Request) {
	var req dto.PriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.queue.ComputePriority(r.Context(), req.ToSnapshot()))
}
