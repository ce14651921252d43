package handler

import (
	"errors"
	"net/http"

	"github.com/Adarsha-Hegade/data-entry1/internal/auth"
	"github.com/Adarsha-Hegade/data-entry1/internal/bootstrap"
	"github.com/Adarsha-Hegade/data-entry1/internal/service"
)

type AuthHandler struct {
	svc      *service.AuthService
	accounts bootstrap.AccountStore
}

func NewAuthHandler(svc *service.AuthService, accounts bootstrap.AccountStore) *AuthHandler {
	return &AuthHandler{svc: svc, accounts: accounts}
}

// Each login attempt is one workflow invocation.
func (h *AuthHandler) newFlow() *bootstrap.Flow {
	return bootstrap.New(h.accounts, h.svc)
}

// Status tells the login screen which form to present: the first-admin
// form (email, password, full name) or the ordinary sign-in form.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	state, err := h.newFlow().Check(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, bootstrap.ErrCheckingStatus.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"firstUser": state == bootstrap.StateAwaitingFirstAdmin,
	})
}

// Bootstrap self-provisions the very first account as an admin and
// signs it in. The role is forced server-side.
func (h *AuthHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		writeError(w, http.StatusBadRequest, "email, password, and fullName are required")
		return
	}

	session, err := h.newFlow().SubmitFirstAdmin(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, bootstrap.ErrNotFirstUser):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, bootstrap.ErrCheckingStatus):
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.newFlow().SubmitSignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.svc.Me(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
