package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ikigain/ForestOS/api/middleware"
	"github.com/ikigain/ForestOS/api/resources"
	"github.com/ikigain/ForestOS/docs"
	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/careservice"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/swaggo/swag"
	nuts "github.com/vaudience/go-nuts"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.Authenticator
	resources *resources.Resources
}

// NewRouter wires every route. health and metrics are owned by the server.
func NewRouter(svc *careservice.CareService, resolver *auth.Resolver, health, metrics http.HandlerFunc) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewAuthenticator(resolver),
		resources: resources.NewResources(svc),
	}
	r.resources.SetHealthCheck(health)
	r.resources.SetMetrics(metrics)

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.router.Use(middleware.RequestID)
	r.router.NotFoundHandler = middleware.RequestID(http.HandlerFunc(handleNotFound))

	// Public routes
	r.router.HandleFunc("/", handleRoot).Methods(http.MethodGet)
	r.router.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/openapi.json", handleOpenAPI).Methods(http.MethodGet)
	api.HandleFunc("/metrics", r.resources.Metrics).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", r.resources.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", r.resources.Auth.Login).Methods(http.MethodPost)

	// Device routes. Registered before the user routes so the device token
	// is never checked as a user token.
	device := api.PathPrefix("/sensors").Subrouter()
	device.Use(r.auth.RequireDevice)
	device.HandleFunc("/{device_id}/readings", r.resources.Sensors.SubmitReading).Methods(http.MethodPost)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.RequireUser)

	protected.HandleFunc("/auth/test-token", r.resources.Auth.TestToken).Methods(http.MethodPost)

	// Catalog
	plants := protected.PathPrefix("/plants").Subrouter()
	plants.HandleFunc("", r.resources.Catalog.ListPlants).Methods(http.MethodGet)
	plants.Handle("", r.auth.RequireSuperuser(http.HandlerFunc(r.resources.Catalog.CreatePlant))).Methods(http.MethodPost)
	plants.HandleFunc("/search", r.resources.Catalog.SearchPlants).Methods(http.MethodGet)
	plants.HandleFunc("/by-care-level/{care_level}", r.resources.Catalog.ListByCareLevel).Methods(http.MethodGet)
	plants.HandleFunc("/{species_id}", r.resources.Catalog.GetPlant).Methods(http.MethodGet)

	// User plants
	userPlants := protected.PathPrefix("/user-plants").Subrouter()
	userPlants.HandleFunc("", r.resources.UserPlants.CreateUserPlant).Methods(http.MethodPost)
	userPlants.HandleFunc("", r.resources.UserPlants.ListUserPlants).Methods(http.MethodGet)
	userPlants.HandleFunc("/{plant_id}", r.resources.UserPlants.GetUserPlant).Methods(http.MethodGet)
	userPlants.HandleFunc("/{plant_id}", r.resources.UserPlants.UpdateUserPlant).Methods(http.MethodPut)
	userPlants.HandleFunc("/{plant_id}", r.resources.UserPlants.DeleteUserPlant).Methods(http.MethodDelete)
	userPlants.HandleFunc("/{plant_id}/water", r.resources.UserPlants.WaterUserPlant).Methods(http.MethodPost)

	// Sensors
	sensors := protected.PathPrefix("/sensors").Subrouter()
	sensors.HandleFunc("", r.resources.Sensors.CreateSensor).Methods(http.MethodPost)
	sensors.HandleFunc("", r.resources.Sensors.ListSensors).Methods(http.MethodGet)
	sensors.HandleFunc("/{device_id}", r.resources.Sensors.GetSensor).Methods(http.MethodGet)
	sensors.HandleFunc("/{device_id}", r.resources.Sensors.UpdateSensor).Methods(http.MethodPut)
	sensors.HandleFunc("/{device_id}", r.resources.Sensors.DeleteSensor).Methods(http.MethodDelete)
	sensors.HandleFunc("/{device_id}/readings", r.resources.Sensors.ListReadings).Methods(http.MethodGet)
	sensors.HandleFunc("/{device_id}/readings/latest", r.resources.Sensors.LatestReading).Methods(http.MethodGet)

	// Watering
	watering := protected.PathPrefix("/watering").Subrouter()
	watering.HandleFunc("/events/{event_id}", r.resources.Watering.UpdateWateringEvent).Methods(http.MethodPut)
	watering.HandleFunc("/{plant_id}/trigger", r.resources.Watering.TriggerWatering).Methods(http.MethodPost)
	watering.HandleFunc("/{plant_id}/history", r.resources.Watering.WateringHistory).Methods(http.MethodGet)
	watering.HandleFunc("/{event_id}", r.resources.Watering.DeleteWateringEvent).Methods(http.MethodDelete)

	// Alerts
	alerts := protected.PathPrefix("/alerts").Subrouter()
	alerts.HandleFunc("", r.resources.Alerts.CreateAlert).Methods(http.MethodPost)
	alerts.HandleFunc("", r.resources.Alerts.ListAlerts).Methods(http.MethodGet)
	alerts.HandleFunc("/mark-all-read", r.resources.Alerts.MarkAllRead).Methods(http.MethodPost)
	alerts.HandleFunc("/{alert_id}", r.resources.Alerts.GetAlert).Methods(http.MethodGet)
	alerts.HandleFunc("/{alert_id}", r.resources.Alerts.DeleteAlert).Methods(http.MethodDelete)
	alerts.HandleFunc("/{alert_id}/mark-read", r.resources.Alerts.MarkRead).Methods(http.MethodPost)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "ForestOS API",
		"version": nuts.GetVersion(),
		"status":  "running",
	})
}

func handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		middleware.RespondWithError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithError(w, r, errors.NewNotFoundError("route not found", nil))
}
