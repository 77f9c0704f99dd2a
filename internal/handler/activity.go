package handler

import (
	"encoding/json"
	"net/http"

	"github.com/routinely/routinely/internal/service"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

type createActivityRequest struct {
	Name string `json:"name"`
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	activity, err := h.activityService.Create(req.Name)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, activity)
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.Activities()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	activity, err := h.activityService.ByID(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Delete removes the activity together with its goal and all of the
// goal's variant rows.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.activityService.Delete(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
