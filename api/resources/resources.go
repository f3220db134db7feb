package resources

import (
	"net/http"

	"github.com/ikigain/ForestOS/internal/careservice"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Auth        *AuthHandlers
	Catalog     *CatalogHandlers
	UserPlants  *UserPlantHandlers
	Sensors     *SensorHandlers
	Watering    *WateringHandlers
	Alerts      *AlertHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
	Metrics     func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *careservice.CareService) *Resources {
	return &Resources{
		Auth:       &AuthHandlers{service: svc},
		Catalog:    &CatalogHandlers{service: svc},
		UserPlants: &UserPlantHandlers{service: svc},
		Sensors:    &SensorHandlers{service: svc},
		Watering:   &WateringHandlers{service: svc},
		Alerts:     &AlertHandlers{service: svc},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// SetMetrics sets the metrics handler
func (r *Resources) SetMetrics(h func(w http.ResponseWriter, r *http.Request)) {
	r.Metrics = h
}
