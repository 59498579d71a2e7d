package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"instiwise-api/internal/middleware"
	"instiwise-api/internal/model"
	"instiwise-api/internal/service"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", users, nil)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !selfOrAdmin(r, id) {
		writeError(w, model.ErrForbidden)
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", user, nil)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id := chi.URLParam(r, "id")
	if !selfOrAdmin(r, id) {
		writeError(w, model.ErrForbidden)
		return
	}

	var payload model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadJSON(w)
		return
	}

	user, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Profile updated", user, nil)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !selfOrAdmin(r, id) {
		writeError(w, model.ErrForbidden)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "User deleted", nil, nil)
}

// ToggleAdmin flips the admin flag. Admin-only at the router level.
func (h *UserHandler) ToggleAdmin(w http.ResponseWriter, r *http.Request) {
	isAdmin, err := h.service.ToggleAdmin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Admin status updated", map[string]any{"is_admin": isAdmin}, nil)
}

// SetPassword is the admin reset. It bumps the account's
// token-valid-after mark, so standing sessions die with the change.
func (h *UserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.AdminSetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadJSON(w)
		return
	}

	if err := h.service.SetPassword(r.Context(), chi.URLParam(r, "id"), payload.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Password reset", nil, nil)
}

func selfOrAdmin(r *http.Request, userID string) bool {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return false
	}
	return claims.IsAdmin || claims.UserID == userID
}
