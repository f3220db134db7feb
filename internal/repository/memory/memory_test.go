package memory

import (
	"context"
	"testing"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	"github.com/ikigain/ForestOS/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func seedOwner(t *testing.T, store *repository.Store, userID, plantID, deviceID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Users.Create(ctx, &models.User{ID: userID, Email: userID + "@example.com", IsActive: true}))
	require.NoError(t, store.UserPlants.Create(ctx, &models.UserPlant{
		ID: plantID, UserID: userID, SpeciesID: "monstera_deliciosa", CreatedAt: t0,
	}))
	if deviceID != "" {
		require.NoError(t, store.Sensors.Create(ctx, &models.Sensor{
			ID: "sns_" + deviceID, DeviceID: deviceID, UserPlantID: plantID, AuthToken: "tok-" + deviceID, CreatedAt: t0,
		}))
	}
}

func TestOwnershipScopesEveryLookup(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedOwner(t, store, "usr_a", "upl_a", "dev-a")
	seedOwner(t, store, "usr_b", "upl_b", "")

	_, err := store.UserPlants.GetOwned(ctx, "usr_b", "upl_a")
	assert.True(t, errors.IsNotFound(err))

	_, err = store.Sensors.GetOwned(ctx, "usr_b", "dev-a")
	assert.True(t, errors.IsNotFound(err))

	s, err := store.Sensors.GetOwned(ctx, "usr_a", "dev-a")
	require.NoError(t, err)
	assert.Equal(t, "upl_a", s.UserPlantID)

	assert.True(t, errors.IsNotFound(store.Sensors.DeleteOwned(ctx, "usr_b", "dev-a")))
	assert.True(t, errors.IsNotFound(store.UserPlants.DeleteOwned(ctx, "usr_b", "upl_a")))

	plants, total, err := store.UserPlants.ListByOwner(ctx, "usr_b", 0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, plants, 1)
	assert.Equal(t, "upl_b", plants[0].ID)
}

func TestDuplicateKeysAreValidationErrors(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedOwner(t, store, "usr_a", "upl_a", "dev-a")

	err := store.Users.Create(ctx, &models.User{ID: "usr_x", Email: "usr_a@example.com"})
	assert.True(t, errors.IsValidation(err))

	err = store.Sensors.Create(ctx, &models.Sensor{ID: "sns_2", DeviceID: "dev-a", UserPlantID: "upl_a", AuthToken: "other"})
	assert.True(t, errors.IsValidation(err))

	err = store.Catalog.Create(ctx, &models.Plant{SpeciesID: "monstera_deliciosa"})
	assert.True(t, errors.IsValidation(err))
}

func TestUserPlantRequiresKnownSpecies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "usr_a", Email: "a@example.com"}))

	err := store.UserPlants.Create(ctx, &models.UserPlant{ID: "upl_1", UserID: "usr_a", SpeciesID: "dragon_fruit_tree"})
	assert.True(t, errors.IsNotFound(err))
}

func TestDeletePlantCascades(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedOwner(t, store, "usr_a", "upl_a", "dev-a")

	_, err := store.Sensors.RecordReading(ctx, &models.Reading{ID: "rdg_1", SensorID: "sns_dev-a", MoisturePercent: 30, Timestamp: t0})
	require.NoError(t, err)
	require.NoError(t, store.Watering.Create(ctx, &models.WateringEvent{ID: "wtr_1", UserPlantID: "upl_a", ScheduledTime: t0}))
	require.NoError(t, store.Alerts.Create(ctx, &models.Alert{ID: "alr_1", UserPlantID: "upl_a", CreatedAt: t0}))

	require.NoError(t, store.UserPlants.DeleteOwned(ctx, "usr_a", "upl_a"))

	_, err = store.Sensors.GetByDeviceID(ctx, "dev-a")
	assert.True(t, errors.IsNotFound(err))
	_, err = store.Sensors.LatestReading(ctx, "sns_dev-a")
	assert.True(t, errors.IsNotFound(err))
	_, err = store.Watering.GetOwned(ctx, "usr_a", "wtr_1")
	assert.True(t, errors.IsNotFound(err))
	_, err = store.Alerts.GetOwned(ctx, "usr_a", "alr_1")
	assert.True(t, errors.IsNotFound(err))
}

func TestRecordReadingUpdatesLiveness(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedOwner(t, store, "usr_a", "upl_a", "dev-a")
	battery := 64

	s, err := store.Sensors.RecordReading(ctx, &models.Reading{
		ID: "rdg_1", SensorID: "sns_dev-a", MoisturePercent: 50, BatteryLevel: &battery, Timestamp: t0,
	})
	require.NoError(t, err)
	assert.True(t, s.IsOnline)
	assert.Equal(t, t0, *s.LastSeen)
	assert.Equal(t, 64, *s.BatteryLevel)

	_, err = store.Sensors.RecordReading(ctx, &models.Reading{ID: "rdg_2", SensorID: "sns_dev-a", MoisturePercent: 48, Timestamp: t0.Add(time.Hour)})
	require.NoError(t, err)

	got, err := store.Sensors.GetByDeviceID(ctx, "dev-a")
	require.NoError(t, err)
	assert.Equal(t, 64, *got.BatteryLevel, "battery is kept when a reading omits it")

	latest, err := store.Sensors.LatestReading(ctx, "sns_dev-a")
	require.NoError(t, err)
	assert.Equal(t, "rdg_2", latest.ID)

	since := t0.Add(30 * time.Minute)
	readings, total, err := store.Sensors.ListReadings(ctx, "sns_dev-a", models.ReadingQuery{Limit: 10, Since: &since})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "rdg_2", readings[0].ID)
}

func TestAlertsMarkAllReadCountsOwnedUnread(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedOwner(t, store, "usr_a", "upl_a", "")
	seedOwner(t, store, "usr_b", "upl_b", "")

	for i, plant := range []string{"upl_a", "upl_a", "upl_b"} {
		require.NoError(t, store.Alerts.Create(ctx, &models.Alert{
			ID: "alr_" + string(rune('1'+i)), UserPlantID: plant, CreatedAt: t0.Add(time.Duration(i) * time.Minute),
		}))
	}
	_, err := store.Alerts.MarkRead(ctx, "usr_a", "alr_1", t0)
	require.NoError(t, err)

	count, err := store.Alerts.MarkAllRead(ctx, "usr_a", t0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	unread := false
	_, total, err := store.Alerts.ListByOwner(ctx, "usr_b", models.AlertFilters{IsRead: &unread}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestCatalogSearchAndCareLevels(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	found, err := store.Catalog.Search(ctx, "MONSTERA", 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "monstera_deliciosa", found[0].SpeciesID)

	found, err = store.Catalog.Search(ctx, "ivy", 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "epipremnum_aureum", found[0].SpeciesID)

	easy, err := store.Catalog.ListByCareLevel(ctx, models.CareEasy, 50)
	require.NoError(t, err)
	assert.Len(t, easy, 2)

	difficult, err := store.Catalog.ListByCareLevel(ctx, models.CareDifficult, 50)
	require.NoError(t, err)
	assert.Len(t, difficult, 2)

	page, total, err := store.Catalog.List(ctx, models.PlantFilters{}, 4, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Len(t, page, 2)
}

func TestOwnedListsFollowOwnershipIndex(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedOwner(t, store, "usr_a", "upl_a", "dev-a")
	seedOwner(t, store, "usr_b", "upl_b", "dev-b")
	require.NoError(t, store.UserPlants.Create(ctx, &models.UserPlant{
		ID: "upl_b2", UserID: "usr_b", SpeciesID: "monstera_deliciosa", CreatedAt: t0.Add(time.Minute),
	}))
	require.NoError(t, store.Sensors.Create(ctx, &models.Sensor{
		ID: "sns_dev-b2", DeviceID: "dev-b2", UserPlantID: "upl_b2", AuthToken: "tok-dev-b2", CreatedAt: t0,
	}))
	require.NoError(t, store.Alerts.Create(ctx, &models.Alert{ID: "alr_a", UserPlantID: "upl_a", CreatedAt: t0}))
	require.NoError(t, store.Alerts.Create(ctx, &models.Alert{ID: "alr_b", UserPlantID: "upl_b2", CreatedAt: t0}))

	plants, total, err := store.UserPlants.ListByOwner(ctx, "usr_b", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "upl_b2", plants[0].ID)

	sensors, total, err := store.Sensors.ListByOwner(ctx, "usr_a", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "dev-a", sensors[0].DeviceID)

	require.NoError(t, store.UserPlants.DeleteOwned(ctx, "usr_b", "upl_b2"))

	_, total, err = store.UserPlants.ListByOwner(ctx, "usr_b", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	sensors, total, err = store.Sensors.ListByOwner(ctx, "usr_b", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "dev-b", sensors[0].DeviceID)
	_, total, err = store.Alerts.ListByOwner(ctx, "usr_b", models.AlertFilters{}, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, store.Alerts.DeleteOwned(ctx, "usr_a", "alr_a"))
	count, err := store.Alerts.MarkAllRead(ctx, "usr_a", t0)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, total, err = store.UserPlants.ListByOwner(ctx, "usr_unknown", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}
