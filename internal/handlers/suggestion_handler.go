package handlers

import (
	"net/http"

	"github.com/Dias221467/Mindful_Companion/internal/prompts"
	"github.com/Dias221467/Mindful_Companion/internal/services"
	"github.com/Dias221467/Mindful_Companion/pkg/middleware"
)

// SuggestionHandler serves the generated prompts and self-care guidance.
type SuggestionHandler struct {
	Service *services.SuggestionService
}

func NewSuggestionHandler(service *services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{Service: service}
}

// JournalPromptHandler handles POST /suggestions/prompt.
func (h *SuggestionHandler) JournalPromptHandler(w http.ResponseWriter, r *http.Request) {
	var in prompts.JournalPromptInput
	if !decodeJSON(w, r, &in) {
		return
	}

	prompt, err := h.Service.JournalPrompt(r.Context(), middleware.UserIDFromContext(r.Context()), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prompts.JournalPromptOutput{Prompt: prompt})
}

// ActivitiesHandler handles POST /suggestions/activities.
func (h *SuggestionHandler) ActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	var in prompts.SelfCareInput
	if !decodeJSON(w, r, &in) {
		return
	}

	activities, err := h.Service.SelfCareActivities(r.Context(), middleware.UserIDFromContext(r.Context()), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prompts.SelfCareOutput{Activities: activities})
}

// LatestActivitiesHandler handles GET /suggestions/activities/latest.
func (h *SuggestionHandler) LatestActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	got, err := h.Service.ActivitiesForLatestCheckIn(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, got)
}

// ActivityDetailsHandler handles POST /suggestions/activity-details.
func (h *SuggestionHandler) ActivityDetailsHandler(w http.ResponseWriter, r *http.Request) {
	var in prompts.ActivityDetailsInput
	if !decodeJSON(w, r, &in) {
		return
	}

	details, err := h.Service.ActivityDetails(r.Context(), middleware.UserIDFromContext(r.Context()), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prompts.ActivityDetailsOutput{Details: details})
}
