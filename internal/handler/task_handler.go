package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Adarsha-Hegade/data-entry1/internal/auth"
	"github.com/Adarsha-Hegade/data-entry1/internal/models"
	"github.com/Adarsha-Hegade/data-entry1/internal/service"
)

const maxDocumentSize = 10 << 20 // PDF up to 10MB

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create accepts multipart (fields + optional "document" PDF) or a
// plain JSON body without a document.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	in := service.CreateTaskInput{CreatedBy: claims.UserID}

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		// Not multipart — try JSON body
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			AssignedTo  string `json:"assignedTo"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		in.Title = req.Title
		in.Description = req.Description
		in.AssignedTo = req.AssignedTo
	} else {
		in.Title = r.FormValue("title")
		in.Description = r.FormValue("description")
		in.AssignedTo = r.FormValue("assignedTo")

		if file, header, err := r.FormFile("document"); err == nil {
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to read document")
				return
			}
			in.Document = data
			in.DocumentName = header.Filename
		}
	}

	task, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// ListMine returns the caller's active assigned tasks.
func (h *TaskHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	tasks, err := h.svc.ListAssigned(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	task, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Users only see tasks assigned to them; admins see everything.
	claims := auth.GetUser(r.Context())
	if claims.Role != models.RoleAdmin && task.AssignedTo != claims.UserID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
		AssignedTo  string `json:"assignedTo"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.svc.Update(r.Context(), id, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
