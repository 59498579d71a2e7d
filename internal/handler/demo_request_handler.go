package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"instiwise-api/internal/model"
	"instiwise-api/internal/service"
)

type DemoRequestHandler struct {
	service *service.DemoService
}

func NewDemoRequestHandler(service *service.DemoService) *DemoRequestHandler {
	return &DemoRequestHandler{service: service}
}

// Create is the public landing-page intake. No auth; repeated
// submissions from the same institute inside a day are rejected.
func (h *DemoRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateDemoRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadJSON(w)
		return
	}

	request, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Demo request submitted", request, nil)
}

func (h *DemoRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	requests, meta, err := h.service.List(r.Context(), query.Get("status"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", requests, &meta)
}

func (h *DemoRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", request, nil)
}

func (h *DemoRequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.UpdateDemoRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadJSON(w)
		return
	}

	request, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Demo request updated", request, nil)
}

func (h *DemoRequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Demo request deleted", nil, nil)
}
