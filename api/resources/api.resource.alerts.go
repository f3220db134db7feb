package resources

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ikigain/ForestOS/internal/careservice"
	"github.com/ikigain/ForestOS/internal/models"
)

// AlertHandlers serves alerts raised on the caller's plants
type AlertHandlers struct {
	service *careservice.CareService
}

// @Summary Create an alert
// @Tags alerts
// @Accept json
// @Produce json
// @Param alert body models.AlertCreate true "Alert"
// @Success 201 {object} models.Alert
// @Failure 404 {object} errors.APIError
// @Router /alerts [post]
// @Security BearerAuth
func (h *AlertHandlers) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var in models.AlertCreate
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, r, err)
		return
	}
	alert, err := h.service.CreateAlert(r.Context(), principal(r), &in)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, alert)
}

// @Summary List the caller's alerts, newest first
// @Tags alerts
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (1-500)"
// @Param is_read query bool false "Filter by read state"
// @Success 200 {object} models.AlertList
// @Router /alerts [get]
// @Security BearerAuth
func (h *AlertHandlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r, historyLimits)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	var filters models.AlertFilters
	if err := decodeValues(r.URL.Query(), &filters); err != nil {
		respondWithError(w, r, err)
		return
	}
	list, err := h.service.ListAlerts(r.Context(), principal(r), filters, page)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// @Summary Mark every unread alert as read
// @Tags alerts
// @Produce json
// @Success 200 {object} models.MarkAllReadResult
// @Router /alerts/mark-all-read [post]
// @Security BearerAuth
func (h *AlertHandlers) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.MarkAllAlertsRead(r.Context(), principal(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

// @Summary Get an alert
// @Tags alerts
// @Produce json
// @Param alert_id path string true "Alert id"
// @Success 200 {object} models.Alert
// @Failure 404 {object} errors.APIError
// @Router /alerts/{alert_id} [get]
// @Security BearerAuth
func (h *AlertHandlers) GetAlert(w http.ResponseWriter, r *http.Request) {
	alert, err := h.service.GetAlert(r.Context(), principal(r), mux.Vars(r)["alert_id"])
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, alert)
}

// @Summary Mark an alert as read
// @Tags alerts
// @Produce json
// @Param alert_id path string true "Alert id"
// @Success 200 {object} models.Alert
// @Failure 404 {object} errors.APIError
// @Router /alerts/{alert_id}/mark-read [post]
// @Security BearerAuth
func (h *AlertHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	alert, err := h.service.MarkAlertRead(r.Context(), principal(r), mux.Vars(r)["alert_id"])
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, alert)
}

// @Summary Delete an alert
// @Tags alerts
// @Param alert_id path string true "Alert id"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /alerts/{alert_id} [delete]
// @Security BearerAuth
func (h *AlertHandlers) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAlert(r.Context(), principal(r), mux.Vars(r)["alert_id"]); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
