package resources

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ikigain/ForestOS/internal/careservice"
	"github.com/ikigain/ForestOS/internal/models"
)

// UserPlantHandlers serves the caller's own plants
type UserPlantHandlers struct {
	service *careservice.CareService
}

// @Summary Add a plant to the collection
// @Tags user-plants
// @Accept json
// @Produce json
// @Param plant body models.UserPlantCreate true "Plant"
// @Success 201 {object} models.UserPlant
// @Failure 404 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /user-plants [post]
// @Security BearerAuth
func (h *UserPlantHandlers) CreateUserPlant(w http.ResponseWriter, r *http.Request) {
	var in models.UserPlantCreate
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, r, err)
		return
	}
	plant, err := h.service.CreatePlant(r.Context(), principal(r), &in)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, plant)
}

// @Summary List the caller's plants
// @Tags user-plants
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} models.UserPlantList
// @Router /user-plants [get]
// @Security BearerAuth
func (h *UserPlantHandlers) ListUserPlants(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r, defaultLimits)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	list, err := h.service.ListPlants(r.Context(), principal(r), page)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// @Summary Get one of the caller's plants
// @Tags user-plants
// @Produce json
// @Param plant_id path string true "Plant id"
// @Success 200 {object} models.UserPlant
// @Failure 404 {object} errors.APIError
// @Router /user-plants/{plant_id} [get]
// @Security BearerAuth
func (h *UserPlantHandlers) GetUserPlant(w http.ResponseWriter, r *http.Request) {
	plant, err := h.service.GetPlant(r.Context(), principal(r), mux.Vars(r)["plant_id"])
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, plant)
}

// @Summary Update one of the caller's plants
// @Tags user-plants
// @Accept json
// @Produce json
// @Param plant_id path string true "Plant id"
// @Param plant body models.UserPlantUpdate true "Fields to change"
// @Success 200 {object} models.UserPlant
// @Failure 404 {object} errors.APIError
// @Router /user-plants/{plant_id} [put]
// @Security BearerAuth
func (h *UserPlantHandlers) UpdateUserPlant(w http.ResponseWriter, r *http.Request) {
	var in models.UserPlantUpdate
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, r, err)
		return
	}
	plant, err := h.service.UpdatePlant(r.Context(), principal(r), mux.Vars(r)["plant_id"], &in)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, plant)
}

// @Summary Delete one of the caller's plants
// @Description Also deletes its sensors, readings, watering events and alerts.
// @Tags user-plants
// @Param plant_id path string true "Plant id"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /user-plants/{plant_id} [delete]
// @Security BearerAuth
func (h *UserPlantHandlers) DeleteUserPlant(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePlant(r.Context(), principal(r), mux.Vars(r)["plant_id"]); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Mark a plant as watered now
// @Tags user-plants
// @Produce json
// @Param plant_id path string true "Plant id"
// @Success 200 {object} models.UserPlant
// @Failure 404 {object} errors.APIError
// @Router /user-plants/{plant_id}/water [post]
// @Security BearerAuth
func (h *UserPlantHandlers) WaterUserPlant(w http.ResponseWriter, r *http.Request) {
	plant, err := h.service.WaterPlant(r.Context(), principal(r), mux.Vars(r)["plant_id"])
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, plant)
}
