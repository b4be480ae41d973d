package router

import (
	"net/http"

	"fraud-investigation-system/internal/interfaces/http/handler"
)

// Router holds all HTTP handlers
type Router struct {
	mux             *http.ServeMux
	feedbackHandler *handler.FeedbackHandler
	alertsHandler   *handler.AlertsHandler
	healthHandler   *handler.HealthHandler
	metricsPath     string
}

// NewRouter creates a new router with all routes configured
func NewRouter(
	feedbackHandler *handler.FeedbackHandler,
	alertsHandler *handler.AlertsHandler,
	healthHandler *handler.HealthHandler,
	metricsPath string,
) *Router {
	r := &Router{
		mux:             http.NewServeMux(),
		feedbackHandler: feedbackHandler,
		alertsHandler:   alertsHandler,
		healthHandler:   healthHandler,
		metricsPath:     metricsPath,
	}
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Health endpoints
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)
	r.mux.HandleFunc("GET /ready", r.healthHandler.Ready)
	r.mux.HandleFunc("GET /live", r.healthHandler.Live)

	// Alert queue
	r.mux.HandleFunc("GET /api/v1/alerts", r.alertsHandler.GetQueue)
	r.mux.HandleFunc("POST /api/v1/alerts/priority", r.alertsHandler.ComputePriority)

	// Investigator feedback
	r.mux.HandleFunc("POST /api/v1/feedback/decisions", r.feedbackHandler.SubmitDecision)
	r.mux.HandleFunc("GET /api/v1/feedback/decisions", r.feedbackHandler.ListDecisions)
	r.mux.HandleFunc("GET /api/v1/feedback/accounts/{id}/latest", r.feedbackHandler.GetLatestDecision)
	r.mux.HandleFunc("POST /api/v1/feedback/accounts/{id}/pattern", r.feedbackHandler.AttachPattern)
	r.mux.HandleFunc("GET /api/v1/feedback/stats", r.feedbackHandler.GetStats)

	// Retraining export
	r.mux.HandleFunc("GET /api/v1/feedback/retrain", r.feedbackHandler.GetRetrainFeedback)
	r.mux.HandleFunc("POST /api/v1/feedback/retrain/export", r.feedbackHandler.ExportRetrainData)

	if r.metricsPath != "" {
		r.mux.Handle("GET "+r.metricsPath, handler.MetricsHandler())
	}
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// The dashboard frontend is served from a different origin
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if req.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.mux.ServeHTTP(w, req)
}

// Handler returns the http.Handler
func (r *Router) Handler() http.Handler {
	return r
}
