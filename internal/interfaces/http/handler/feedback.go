package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"fraud-investigation-system/internal/application/dto"
	"fraud-investigation-system/internal/application/triage"
	"fraud-investigation-system/internal/domain/feedback"
)

// FeedbackHandler handles investigator-feedback HTTP requests
type FeedbackHandler struct {
	submitDecision  *triage.SubmitDecisionUseCase
	capturePattern  *triage.CapturePatternUseCase
	stats           *triage.StatsUseCase
	retrainExport   *triage.RetrainExportUseCase
	feedbackService *feedback.Service
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(
	submitDecision *triage.SubmitDecisionUseCase,
	capturePattern *triage.CapturePatternUseCase,
	stats *triage.StatsUseCase,
	retrainExport *triage.RetrainExportUseCase,
	feedbackService *feedback.Service,
) *FeedbackHandler {
	return &FeedbackHandler{
		submitDecision:  submitDecision,
		capturePattern:  capturePattern,
		stats:           stats,
		retrainExport:   retrainExport,
		feedbackService: feedbackService,
	}
}

// SubmitDecision handles POST /api/v1/feedback/decisions
func (h *FeedbackHandler) SubmitDecision(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rec, err := h.submitDecision.Execute(r.Context(), req.ToInput())
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to record decision: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// AttachPattern handles POST /api/v1/feedback/accounts/{id}/pattern
func (h *FeedbackHandler) AttachPattern(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "Account ID is required")
		return
	}

	var req dto.AttachPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.capturePattern.Execute(r.Context(), accountID, req.ToPattern()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to attach pattern: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "pattern attached"})
}

// ListDecisions handles GET /api/v1/feedback/decisions
func (h *FeedbackHandler) ListDecisions(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	decisions := h.feedbackService.GetDecisions(r.Context(), accountID)

	writeJSON(w, http.StatusOK, dto.DecisionListResponse{
		Decisions: decisions,
		Count:     len(decisions),
	})
}

// GetLatestDecision handles GET /api/v1/feedback/accounts/{id}/latest
func (h *FeedbackHandler) GetLatestDecision(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "Account ID is required")
		return
	}

	rec, ok := h.feedbackService.GetLatestDecision(r.Context(), accountID)
	if !ok {
		writeError(w, http.StatusNotFound, "No decision recorded for account")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// GetStats handles GET /api/v1/feedback/stats
func (h *FeedbackHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Execute(r.Context()))
}

// GetRetrainFeedback handles GET /api/v1/feedback/retrain
func (h *FeedbackHandler) GetRetrainFeedback(w http.ResponseWriter, r *http.Request) {
	samples := h.feedbackService.GetFeedbackForRetrain(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"samples": samples,
		"count":   len(samples),
	})
}

// ExportRetrainData handles POST /api/v1/feedback/retrain/export
func (h *FeedbackHandler) ExportRetrainData(w http.ResponseWriter, r *http.Request) {
	export, err := h.retrainExport.Execute(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, export)
}

func isValidationError(err error) bool {
	return errors.Is(err, feedback.ErrInvalidDecision) ||
		errors.Is(err, feedback.ErrReasonRequired) ||
		errors.Is(err, feedback.ErrAccountIDRequired)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
