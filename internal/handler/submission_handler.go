package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Adarsha-Hegade/data-entry1/internal/auth"
	"github.com/Adarsha-Hegade/data-entry1/internal/autosave"
	"github.com/Adarsha-Hegade/data-entry1/internal/service"
)

type SubmissionHandler struct {
	svc   *service.SubmissionService
	saver *autosave.Saver
}

func NewSubmissionHandler(svc *service.SubmissionService, saver *autosave.Saver) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, saver: saver}
}

func draftKey(r *http.Request) autosave.Key {
	claims := auth.GetUser(r.Context())
	key := autosave.Key{TaskID: chi.URLParam(r, "taskID")}
	if claims != nil {
		key.UserID = claims.UserID
	}
	return key
}

// GetDraft seeds the editor: existing submission content (empty when
// none) plus the save-state indicator.
func (h *SubmissionHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	key := draftKey(r)
	content := h.saver.Seed(r.Context(), key)
	writeJSON(w, http.StatusOK, map[string]any{
		"content": content,
		"state":   h.saver.State(key),
	})
}

// PutDraft records one edit. The write itself is debounced; the
// response carries the current save state, not a persistence receipt.
func (h *SubmissionHandler) PutDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := draftKey(r)
	h.saver.HandleChange(key, req.Content)
	writeJSON(w, http.StatusAccepted, h.saver.State(key))
}

// FlushDraft forces any pending write out now (explicit save button).
func (h *SubmissionHandler) FlushDraft(w http.ResponseWriter, r *http.Request) {
	key := draftKey(r)
	h.saver.Flush(key)
	writeJSON(w, http.StatusOK, h.saver.State(key))
}

// ListMine backs the profile page.
func (h *SubmissionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	subs, err := h.svc.ListMine(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *SubmissionHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	subs, err := h.svc.ListByTask(r.Context(), taskID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "subID")
	sub, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *SubmissionHandler) Review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "subID")
	var req struct {
		Score *float64 `json:"score"`
	}
	if err := readJSON(r, &req); err != nil || req.Score == nil {
		writeError(w, http.StatusBadRequest, "score is required")
		return
	}

	claims := auth.GetUser(r.Context())
	sub, err := h.svc.Review(r.Context(), id, *req.Score, claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "subID")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
