package resources

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ikigain/ForestOS/internal/careservice"
	"github.com/ikigain/ForestOS/internal/models"
)

// SensorHandlers encapsulates the sensor-related HTTP handlers
type SensorHandlers struct {
	service *careservice.CareService
}

// @Summary Register a sensor
// @Description Attaches a device to one of the caller's plants. The response is the only place the device token is ever returned.
// @Tags sensors
// @Accept json
// @Produce json
// @Param sensor body models.SensorCreate true "Sensor details"
// @Success 201 {object} models.RegisteredSensor
// @Failure 404 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /sensors [post]
// @Security BearerAuth
func (h *SensorHandlers) CreateSensor(w http.ResponseWriter, r *http.Request) {
	var in models.SensorCreate
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, r, err)
		return
	}
	sensor, err := h.service.RegisterSensor(r.Context(), principal(r), &in)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, sensor)
}

// @Summary List the caller's sensors
// @Tags sensors
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} models.SensorList
// @Router /sensors [get]
// @Security BearerAuth
func (h *SensorHandlers) ListSensors(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r, defaultLimits)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	list, err := h.service.ListSensors(r.Context(), principal(r), page)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// @Summary Get a sensor
// @Tags sensors
// @Produce json
// @Param device_id path string true "Device id"
// @Success 200 {object} models.Sensor
// @Failure 404 {object} errors.APIError
// @Router /sensors/{device_id} [get]
// @Security BearerAuth
func (h *SensorHandlers) GetSensor(w http.ResponseWriter, r *http.Request) {
	sensor, err := h.service.GetSensor(r.Context(), principal(r), mux.Vars(r)["device_id"])
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sensor)
}

// @Summary Update a sensor
// @Tags sensors
// @Accept json
// @Produce json
// @Param device_id path string true "Device id"
// @Param sensor body models.SensorUpdate true "Fields to change"
// @Success 200 {object} models.Sensor
// @Failure 404 {object} errors.APIError
// @Router /sensors/{device_id} [put]
// @Security BearerAuth
func (h *SensorHandlers) UpdateSensor(w http.ResponseWriter, r *http.Request) {
	var in models.SensorUpdate
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, r, err)
		return
	}
	sensor, err := h.service.UpdateSensor(r.Context(), principal(r), mux.Vars(r)["device_id"], &in)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sensor)
}

// @Summary Delete a sensor
// @Description Deletes the sensor and its readings. This revokes its token.
// @Tags sensors
// @Param device_id path string true "Device id"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /sensors/{device_id} [delete]
// @Security BearerAuth
func (h *SensorHandlers) DeleteSensor(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSensor(r.Context(), principal(r), mux.Vars(r)["device_id"]); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Submit a reading
// @Description Called by the device itself with its own token.
// @Tags sensors
// @Accept json
// @Produce json
// @Param device_id path string true "Device id"
// @Param reading body models.ReadingSubmit true "Reading"
// @Success 201 {object} models.Reading
// @Failure 401 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /sensors/{device_id}/readings [post]
// @Security DeviceAuth
func (h *SensorHandlers) SubmitReading(w http.ResponseWriter, r *http.Request) {
	var in models.ReadingSubmit
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, r, err)
		return
	}
	reading, err := h.service.SubmitReading(r.Context(), principal(r), &in)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, reading)
}

// @Summary List a sensor's readings, newest first
// @Tags sensors
// @Produce json
// @Param device_id path string true "Device id"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (1-1000)"
// @Param hours query int false "Only the last N hours (1-168)"
// @Success 200 {object} models.ReadingList
// @Failure 404 {object} errors.APIError
// @Router /sensors/{device_id}/readings [get]
// @Security BearerAuth
func (h *SensorHandlers) ListReadings(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r, readingLimits)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	hours, err := intParam(r, "hours", 1, maxReadingHours)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	q := models.ReadingQuery{Skip: page.Skip, Limit: page.Limit}
	if hours != nil {
		since := time.Now().UTC().Add(-time.Duration(*hours) * time.Hour)
		q.Since = &since
	}
	list, err := h.service.ListReadings(r.Context(), principal(r), mux.Vars(r)["device_id"], q)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// @Summary Latest reading of a sensor
// @Tags sensors
// @Produce json
// @Param device_id path string true "Device id"
// @Success 200 {object} models.Reading
// @Failure 404 {object} errors.APIError
// @Router /sensors/{device_id}/readings/latest [get]
// @Security BearerAuth
func (h *SensorHandlers) LatestReading(w http.ResponseWriter, r *http.Request) {
	reading, err := h.service.LatestReading(r.Context(), principal(r), mux.Vars(r)["device_id"])
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reading)
}
