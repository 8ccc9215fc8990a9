package handlers

import (
	"net/http"

	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/Dias221467/Mindful_Companion/internal/services"
	"github.com/Dias221467/Mindful_Companion/pkg/middleware"
)

// JournalHandler serves journal entries.
type JournalHandler struct {
	Service *services.JournalService
}

func NewJournalHandler(service *services.JournalService) *JournalHandler {
	return &JournalHandler{Service: service}
}

type journalRequest struct {
	Entry  string       `json:"entry"`
	Mood   *models.Mood `json:"mood,omitempty"`
	Prompt *string      `json:"prompt,omitempty"`
}

func (h *JournalHandler) CreateEntryHandler(w http.ResponseWriter, r *http.Request) {
	var req journalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.Service.CreateEntry(r.Context(), middleware.UserIDFromContext(r.Context()), models.JournalEntry{
		Entry:  req.Entry,
		Mood:   req.Mood,
		Prompt: req.Prompt,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *JournalHandler) ListEntriesHandler(w http.ResponseWriter, r *http.Request) {
	size, cursor, ok := pageParams(w, r)
	if !ok {
		return
	}

	page, err := h.Service.ListEntries(r.Context(), middleware.UserIDFromContext(r.Context()), size, cursor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *JournalHandler) UpdateEntryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var update models.JournalUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	updated, err := h.Service.UpdateEntry(r.Context(), middleware.UserIDFromContext(r.Context()), id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *JournalHandler) DeleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteEntry(r.Context(), middleware.UserIDFromContext(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
