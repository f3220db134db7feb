package resources

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ikigain/ForestOS/internal/careservice"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

// CatalogHandlers serves the species catalog
type CatalogHandlers struct {
	service *careservice.CareService
}

// @Summary List catalog species
// @Tags plants
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (1-100)"
// @Param light_level query string false "Light level"
// @Param growth_rate query string false "Growth rate"
// @Success 200 {object} models.PlantList
// @Router /plants [get]
// @Security BearerAuth
func (h *CatalogHandlers) ListPlants(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r, defaultLimits)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	var filters models.PlantFilters
	if err := decodeValues(r.URL.Query(), &filters); err != nil {
		respondWithError(w, r, err)
		return
	}
	list, err := h.service.ListCatalog(r.Context(), filters, page)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// @Summary Add a catalog species
// @Description Superusers only.
// @Tags plants
// @Accept json
// @Produce json
// @Param plant body models.Plant true "Species"
// @Success 201 {object} models.Plant
// @Failure 403 {object} errors.APIError
// @Router /plants [post]
// @Security BearerAuth
func (h *CatalogHandlers) CreatePlant(w http.ResponseWriter, r *http.Request) {
	var plant models.Plant
	if err := decodeJSON(r, &plant); err != nil {
		respondWithError(w, r, err)
		return
	}
	created, err := h.service.AddSpecies(r.Context(), principal(r), &plant)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// @Summary Search the catalog by scientific or common name
// @Tags plants
// @Produce json
// @Param q query string true "At least 2 characters"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {array} models.Plant
// @Router /plants/search [get]
// @Security BearerAuth
func (h *CatalogHandlers) SearchPlants(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < 2 {
		respondWithError(w, r, errors.NewValidationError("q must be at least 2 characters", nil))
		return
	}
	page, err := pageParams(r, searchLimits)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	plants, err := h.service.SearchCatalog(r.Context(), q, page.Limit)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, plants)
}

// @Summary List species by care level
// @Tags plants
// @Produce json
// @Param care_level path string true "easy, moderate or difficult"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {array} models.Plant
// @Router /plants/by-care-level/{care_level} [get]
// @Security BearerAuth
func (h *CatalogHandlers) ListByCareLevel(w http.ResponseWriter, r *http.Request) {
	level, err := models.ParseCareLevel(mux.Vars(r)["care_level"])
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	page, err := pageParams(r, careLimits)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	plants, err := h.service.CatalogByCareLevel(r.Context(), level, page.Limit)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, plants)
}

// @Summary Get a catalog species
// @Tags plants
// @Produce json
// @Param species_id path string true "Species id"
// @Success 200 {object} models.Plant
// @Failure 404 {object} errors.APIError
// @Router /plants/{species_id} [get]
// @Security BearerAuth
func (h *CatalogHandlers) GetPlant(w http.ResponseWriter, r *http.Request) {
	plant, err := h.service.GetSpecies(r.Context(), mux.Vars(r)["species_id"])
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, plant)
}
