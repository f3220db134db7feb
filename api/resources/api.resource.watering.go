package resources

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ikigain/ForestOS/internal/careservice"
	"github.com/ikigain/ForestOS/internal/models"
)

// WateringHandlers serves watering events of the caller's plants
type WateringHandlers struct {
	service *careservice.CareService
}

// @Summary Trigger a watering
// @Description Records a pending event. Executing it is up to the device.
// @Tags watering
// @Produce json
// @Param plant_id path string true "Plant id"
// @Param trigger query string false "manual, automatic or scheduled"
// @Success 201 {object} models.WateringEvent
// @Failure 404 {object} errors.APIError
// @Router /watering/{plant_id}/trigger [post]
// @Security BearerAuth
func (h *WateringHandlers) TriggerWatering(w http.ResponseWriter, r *http.Request) {
	trigger, err := models.ParseWateringTrigger(r.URL.Query().Get("trigger"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	event, err := h.service.TriggerWatering(r.Context(), principal(r), mux.Vars(r)["plant_id"], trigger)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, event)
}

// @Summary Watering history of a plant
// @Tags watering
// @Produce json
// @Param plant_id path string true "Plant id"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (1-500)"
// @Param days query int false "Look-back window in days (1-365)"
// @Success 200 {object} models.WateringEventList
// @Failure 404 {object} errors.APIError
// @Router /watering/{plant_id}/history [get]
// @Security BearerAuth
func (h *WateringHandlers) WateringHistory(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r, historyLimits)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	days, err := intParam(r, "days", 1, maxHistoryDays)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	window := 30
	if days != nil {
		window = *days
	}
	list, err := h.service.WateringHistory(r.Context(), principal(r), mux.Vars(r)["plant_id"], window, page)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// @Summary Update a watering event
// @Tags watering
// @Accept json
// @Produce json
// @Param event_id path string true "Event id"
// @Param event body models.WateringEventUpdate true "Status and completion fields"
// @Success 200 {object} models.WateringEvent
// @Failure 404 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /watering/events/{event_id} [put]
// @Security BearerAuth
func (h *WateringHandlers) UpdateWateringEvent(w http.ResponseWriter, r *http.Request) {
	var in models.WateringEventUpdate
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, r, err)
		return
	}
	event, err := h.service.UpdateWateringEvent(r.Context(), principal(r), mux.Vars(r)["event_id"], &in)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, event)
}

// @Summary Delete a watering event
// @Tags watering
// @Param event_id path string true "Event id"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /watering/{event_id} [delete]
// @Security BearerAuth
func (h *WateringHandlers) DeleteWateringEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteWateringEvent(r.Context(), principal(r), mux.Vars(r)["event_id"]); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
