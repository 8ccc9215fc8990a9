package handlers

import (
	"net/http"

	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/Dias221467/Mindful_Companion/internal/services"
	"github.com/Dias221467/Mindful_Companion/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// MoodHandler serves mood check-ins.
type MoodHandler struct {
	Service *services.MoodService
}

func NewMoodHandler(service *services.MoodService) *MoodHandler {
	return &MoodHandler{Service: service}
}

type checkInRequest struct {
	Mood         models.Mood `json:"mood"`
	StressLevel  int         `json:"stressLevel"`
	JournalEntry string      `json:"journalEntry"`
}

// CreateCheckInHandler handles POST /moods.
func (h *MoodHandler) CreateCheckInHandler(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.Service.CreateCheckIn(r.Context(), middleware.UserIDFromContext(r.Context()), models.MoodCheckIn{
		Mood:         req.Mood,
		StressLevel:  req.StressLevel,
		JournalEntry: req.JournalEntry,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	log.WithField("checkInID", created.ID.Hex()).Info("Check-in recorded")
	writeJSON(w, http.StatusCreated, created)
}

// ListCheckInsHandler handles GET /moods?pageSize=&cursor=.
func (h *MoodHandler) ListCheckInsHandler(w http.ResponseWriter, r *http.Request) {
	size, cursor, ok := pageParams(w, r)
	if !ok {
		return
	}

	page, err := h.Service.ListCheckIns(r.Context(), middleware.UserIDFromContext(r.Context()), size, cursor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// LatestCheckInHandler handles GET /moods/latest.
func (h *MoodHandler) LatestCheckInHandler(w http.ResponseWriter, r *http.Request) {
	latest, err := h.Service.LatestCheckIn(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

// InsightsHandler handles GET /moods/insights: a page plus its chart and summary.
func (h *MoodHandler) InsightsHandler(w http.ResponseWriter, r *http.Request) {
	size, cursor, ok := pageParams(w, r)
	if !ok {
		return
	}

	history, err := h.Service.History(r.Context(), middleware.UserIDFromContext(r.Context()), size, cursor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// UpdateCheckInHandler handles PATCH /moods/{id}.
func (h *MoodHandler) UpdateCheckInHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var update models.CheckInUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	updated, err := h.Service.UpdateCheckIn(r.Context(), middleware.UserIDFromContext(r.Context()), id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCheckInHandler handles DELETE /moods/{id}.
func (h *MoodHandler) DeleteCheckInHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteCheckIn(r.Context(), middleware.UserIDFromContext(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
