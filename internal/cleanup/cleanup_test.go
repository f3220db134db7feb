package cleanup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	"github.com/ikigain/ForestOS/internal/repository"
	"github.com/ikigain/ForestOS/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu  sync.Mutex
	ids []string
}

func (r *recorder) add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

func seed(t *testing.T) *repository.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "usr_a", Email: "a@example.com"}))
	require.NoError(t, store.UserPlants.Create(ctx, &models.UserPlant{ID: "upl_a", UserID: "usr_a", SpeciesID: "monstera_deliciosa"}))
	require.NoError(t, store.Sensors.Create(ctx, &models.Sensor{ID: "sns_1", DeviceID: "dev-1", UserPlantID: "upl_a", AuthToken: "t1"}))
	return store
}

func TestDeleteSensorEmitsAfterSuccess(t *testing.T) {
	store := seed(t)
	svc := New(store.UserPlants, store.Sensors)
	rec := &recorder{}
	svc.OnCleanup(EventSensorDeleted, rec.add)

	err := svc.DeleteSensor(context.Background(), "usr_other", "dev-1")
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, svc.DeleteSensor(context.Background(), "usr_a", "dev-1"))
	assert.Eventually(t, func() bool { return len(rec.seen()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"dev-1"}, rec.seen())

	_, err = store.Sensors.GetByDeviceID(context.Background(), "dev-1")
	assert.True(t, errors.IsNotFound(err))
}

func TestDeletePlantEmitsAndCascades(t *testing.T) {
	store := seed(t)
	svc := New(store.UserPlants, store.Sensors)
	plants, sensors := &recorder{}, &recorder{}
	svc.OnCleanup(EventPlantDeleted, plants.add)
	svc.OnCleanup(EventSensorDeleted, sensors.add)

	require.NoError(t, svc.DeletePlant(context.Background(), "usr_a", "upl_a"))
	assert.Eventually(t, func() bool { return len(plants.seen()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"upl_a"}, plants.seen())
	assert.Empty(t, sensors.seen())

	_, err := store.Sensors.GetByDeviceID(context.Background(), "dev-1")
	assert.True(t, errors.IsNotFound(err))
}

func TestListenersRunBeforeDeleteReturns(t *testing.T) {
	store := seed(t)
	require.NoError(t, store.UserPlants.Create(context.Background(), &models.UserPlant{ID: "upl_b", UserID: "usr_a", SpeciesID: "monstera_deliciosa"}))
	require.NoError(t, store.Sensors.Create(context.Background(), &models.Sensor{ID: "sns_2", DeviceID: "dev-2", UserPlantID: "upl_b", AuthToken: "t2"}))
	svc := New(store.UserPlants, store.Sensors)

	first, second := &recorder{}, &recorder{}
	svc.OnCleanup(EventSensorDeleted, first.add)
	svc.OnCleanup(EventSensorDeleted, second.add)
	plants := &recorder{}
	svc.OnCleanup(EventPlantDeleted, plants.add)

	require.NoError(t, svc.DeleteSensor(context.Background(), "usr_a", "dev-1"))
	assert.Equal(t, []string{"dev-1"}, first.seen())
	assert.Equal(t, []string{"dev-1"}, second.seen())

	require.NoError(t, svc.DeletePlant(context.Background(), "usr_a", "upl_b"))
	assert.Equal(t, []string{"upl_b"}, plants.seen())
	assert.Len(t, first.seen(), 1, "plant cascade does not announce its sensors")
}
