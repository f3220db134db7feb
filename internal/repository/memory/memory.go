// Package memory is a process-local store with the same ownership and
// cascade semantics as the postgres schema. It backs tests and the
// "memory" database driver.
package memory

import (
	"context"
	"sync"

	"github.com/ikigain/ForestOS/internal/models"
	"github.com/ikigain/ForestOS/internal/repository"
)

// DB holds every table behind one lock. Each repository method is one
// critical section, which stands in for a postgres transaction.
type DB struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	catalog  map[string]*models.Plant // by species_id
	plants   map[string]*models.UserPlant
	sensors  map[string]*models.Sensor
	readings map[string][]*models.Reading // by sensor id, append order
	watering map[string]*models.WateringEvent
	alerts   map[string]*models.Alert

	// Ownership indexes. Owned listings walk these instead of the tables.
	plantsByUser   map[string]idSet // user id -> user plant ids
	sensorsByPlant map[string]idSet // user plant id -> sensor ids
	alertsByPlant  map[string]idSet // user plant id -> alert ids
}

type idSet map[string]struct{}

func NewDB() *DB {
	return &DB{
		users:    map[string]*models.User{},
		catalog:  map[string]*models.Plant{},
		plants:   map[string]*models.UserPlant{},
		sensors:  map[string]*models.Sensor{},
		readings: map[string][]*models.Reading{},
		watering: map[string]*models.WateringEvent{},
		alerts:   map[string]*models.Alert{},

		plantsByUser:   map[string]idSet{},
		sensorsByPlant: map[string]idSet{},
		alertsByPlant:  map[string]idSet{},
	}
}

// NewStore returns a repository set over a fresh DB seeded with the
// default catalog.
func NewStore() *repository.Store {
	db := NewDB()
	db.SeedCatalog(DefaultCatalog())
	return db.Store()
}

// Store exposes db through the repository interfaces.
func (db *DB) Store() *repository.Store {
	return &repository.Store{
		Users:      &UserRepo{db: db},
		Catalog:    &CatalogRepo{db: db},
		UserPlants: &UserPlantRepo{db: db},
		Sensors:    &SensorRepo{db: db},
		Watering:   &WateringRepo{db: db},
		Alerts:     &AlertRepo{db: db},
		Ping:       func(context.Context) error { return nil },
	}
}

// SeedCatalog inserts species that are not present yet.
func (db *DB) SeedCatalog(plants []*models.Plant) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, p := range plants {
		if _, ok := db.catalog[p.SpeciesID]; !ok {
			c := *p
			db.catalog[p.SpeciesID] = &c
		}
	}
}

// ownedPlant must be called with the lock held.
func (db *DB) ownedPlant(userID, id string) (*models.UserPlant, bool) {
	p, ok := db.plants[id]
	if !ok || p.UserID != userID {
		return nil, false
	}
	return p, true
}

// ownerOf resolves a user plant id to its user. Lock must be held.
func (db *DB) ownerOf(plantID string) string {
	if p, ok := db.plants[plantID]; ok {
		return p.UserID
	}
	return ""
}

// deleteSensorLocked drops a sensor and its readings.
func (db *DB) deleteSensorLocked(id string) {
	if s, ok := db.sensors[id]; ok {
		unindex(db.sensorsByPlant, s.UserPlantID, id)
	}
	delete(db.sensors, id)
	delete(db.readings, id)
}

// ownedPlantIDs returns the user's plant ids. Lock must be held.
func (db *DB) ownedPlantIDs(userID string) []string {
	ids := make([]string, 0, len(db.plantsByUser[userID]))
	for id := range db.plantsByUser[userID] {
		ids = append(ids, id)
	}
	return ids
}

func index(m map[string]idSet, key, id string) {
	set, ok := m[key]
	if !ok {
		set = idSet{}
		m[key] = set
	}
	set[id] = struct{}{}
}

func unindex(m map[string]idSet, key, id string) {
	set, ok := m[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(m, key)
	}
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
