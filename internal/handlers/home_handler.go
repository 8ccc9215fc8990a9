package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/services"
	"github.com/Dias221467/Mindful_Companion/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// HomeHandler serves the dashboard, the daily affirmation and the health probe.
type HomeHandler struct {
	Dashboard    *services.DashboardService
	Affirmations *services.AffirmationService
	Location     *time.Location
	Ping         func(ctx context.Context) error
}

func NewHomeHandler(dashboard *services.DashboardService, affirmations *services.AffirmationService, loc *time.Location, ping func(ctx context.Context) error) *HomeHandler {
	return &HomeHandler{Dashboard: dashboard, Affirmations: affirmations, Location: loc, Ping: ping}
}

// DashboardHandler handles GET /dashboard?tz=Area/City.
func (h *HomeHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	loc := h.Location
	if tz := r.URL.Query().Get("tz"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			writeFieldErrors(w, map[string]string{"tz": "unknown time zone"})
			return
		}
		loc = parsed
	}

	dashboard, err := h.Dashboard.Get(r.Context(), middleware.UserIDFromContext(r.Context()), loc)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// AffirmationHandler handles GET /affirmation. It always answers 200.
func (h *HomeHandler) AffirmationHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Affirmations.Today(r.Context()))
}

// HealthHandler handles GET /health.
func (h *HomeHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			log.WithError(err).Error("Health check failed")
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
