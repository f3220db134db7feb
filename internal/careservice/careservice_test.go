package careservice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/cleanup"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	"github.com/ikigain/ForestOS/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T) *CareService {
	t.Helper()
	svc := New(memory.NewStore(), auth.NewTokenService(testSecret, time.Hour), auth.NewDeviceTokenIssuer())
	require.NoError(t, svc.Validate())
	return svc
}

func registerUser(t *testing.T, svc *CareService, email string) *auth.Principal {
	t.Helper()
	u, err := svc.Register(context.Background(), &models.UserCreate{Email: email, Password: "correct horse"})
	require.NoError(t, err)
	return &auth.Principal{Kind: auth.KindUser, UserID: u.ID}
}

func addPlant(t *testing.T, svc *CareService, p *auth.Principal) *models.UserPlant {
	t.Helper()
	plant, err := svc.CreatePlant(context.Background(), p, &models.UserPlantCreate{SpeciesID: "monstera_deliciosa"})
	require.NoError(t, err)
	return plant
}

func float(v float64) *float64 { return &v }

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.UserCreate{Email: "Ana@Example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &models.UserCreate{Email: "ana@example.com", Password: "another one"})
	assert.True(t, errors.IsValidation(err), "duplicate email must be rejected")

	tok, err := svc.Login(ctx, &models.LoginForm{Username: "ANA@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.NotEmpty(t, tok.AccessToken)

	_, wrongPass := svc.Login(ctx, &models.LoginForm{Username: "ana@example.com", Password: "nope nope"})
	_, noUser := svc.Login(ctx, &models.LoginForm{Username: "bob@example.com", Password: "correct horse"})
	for _, err := range []error{wrongPass, noUser} {
		apiErr, ok := errors.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 401, apiErr.Code)
		assert.Equal(t, MsgBadLogin, apiErr.Message)
	}
}

func TestInactiveUserCannotLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := registerUser(t, svc, "idle@example.com")
	require.NoError(t, svc.Users.(*memory.UserRepo).SetActive(p.UserID, false))

	_, err := svc.Login(ctx, &models.LoginForm{Username: "idle@example.com", Password: "correct horse"})
	assert.True(t, errors.IsUnauthenticated(err))
}

func TestCreatePlantAppliesDefaults(t *testing.T) {
	svc := newTestService(t)
	p := registerUser(t, svc, "a@example.com")

	plant := addPlant(t, svc, p)
	assert.Equal(t, p.UserID, plant.UserID)
	assert.Equal(t, models.PotMedium, plant.PotSize)
	assert.Equal(t, models.PotPlastic, plant.PotMaterial)
	assert.True(t, plant.IsActive)
	assert.True(t, plant.AutoWateringEnabled)
	assert.NotNil(t, plant.LastWatered)

	_, err := svc.CreatePlant(context.Background(), p, &models.UserPlantCreate{SpeciesID: "no_such_species"})
	assert.True(t, errors.IsNotFound(err))
}

func TestForeignResourcesLookMissing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	alice := registerUser(t, svc, "alice@example.com")
	bob := registerUser(t, svc, "bob@example.com")

	plant := addPlant(t, svc, alice)
	reg, err := svc.RegisterSensor(ctx, alice, &models.SensorCreate{DeviceID: "esp-1", UserPlantID: plant.ID})
	require.NoError(t, err)
	event, err := svc.TriggerWatering(ctx, alice, plant.ID, models.TriggerManual)
	require.NoError(t, err)
	alert, err := svc.CreateAlert(ctx, alice, &models.AlertCreate{UserPlantID: plant.ID, Title: "Dry", Message: "Soil is dry"})
	require.NoError(t, err)

	_, err = svc.GetPlant(ctx, bob, plant.ID)
	assert.True(t, errors.IsNotFound(err))
	_, err = svc.UpdatePlant(ctx, bob, plant.ID, &models.UserPlantUpdate{})
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(svc.DeletePlant(ctx, bob, plant.ID)))
	_, err = svc.WaterPlant(ctx, bob, plant.ID)
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.GetSensor(ctx, bob, reg.DeviceID)
	assert.True(t, errors.IsNotFound(err))
	_, err = svc.ListReadings(ctx, bob, reg.DeviceID, models.ReadingQuery{Limit: 10})
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(svc.DeleteSensor(ctx, bob, reg.DeviceID)))

	_, err = svc.RegisterSensor(ctx, bob, &models.SensorCreate{DeviceID: "esp-2", UserPlantID: plant.ID})
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.TriggerWatering(ctx, bob, plant.ID, models.TriggerManual)
	assert.True(t, errors.IsNotFound(err))
	_, err = svc.UpdateWateringEvent(ctx, bob, event.ID, &models.WateringEventUpdate{})
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.GetAlert(ctx, bob, alert.ID)
	assert.True(t, errors.IsNotFound(err))
	_, err = svc.MarkAlertRead(ctx, bob, alert.ID)
	assert.True(t, errors.IsNotFound(err))

	plants, err := svc.ListPlants(ctx, bob, models.Page{Limit: 100})
	require.NoError(t, err)
	assert.Zero(t, plants.Total)

	res, err := svc.MarkAllAlertsRead(ctx, bob)
	require.NoError(t, err)
	assert.Zero(t, res.Count)
}

func TestDevicePrincipalCannotUseUserOperations(t *testing.T) {
	svc := newTestService(t)
	device := &auth.Principal{Kind: auth.KindDevice, SensorID: "sns_x", DeviceID: "esp-x"}

	_, err := svc.ListPlants(context.Background(), device, models.Page{Limit: 10})
	assert.True(t, errors.IsUnauthenticated(err))
	_, err = svc.CurrentUser(context.Background(), device)
	assert.True(t, errors.IsUnauthenticated(err))
}

func TestTokenOnlyShownAtRegistration(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := registerUser(t, svc, "a@example.com")
	plant := addPlant(t, svc, p)

	reg, err := svc.RegisterSensor(ctx, p, &models.SensorCreate{DeviceID: "esp-1", UserPlantID: plant.ID})
	require.NoError(t, err)
	require.NotEmpty(t, reg.AuthToken)
	assert.True(t, reg.IsOnline)
	require.NotNil(t, reg.BatteryLevel)
	assert.Equal(t, 100, *reg.BatteryLevel)

	body, err := json.Marshal(reg)
	require.NoError(t, err)
	assert.Contains(t, string(body), reg.AuthToken)

	got, err := svc.GetSensor(ctx, p, "esp-1")
	require.NoError(t, err)
	body, err = json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(body), reg.AuthToken)
	assert.NotContains(t, string(body), "auth_token")

	_, err = svc.RegisterSensor(ctx, p, &models.SensorCreate{DeviceID: "esp-1", UserPlantID: plant.ID})
	assert.True(t, errors.IsValidation(err), "device ids are unique")
}

func TestReadingRefreshesLiveness(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := registerUser(t, svc, "a@example.com")
	plant := addPlant(t, svc, p)
	reg, err := svc.RegisterSensor(ctx, p, &models.SensorCreate{DeviceID: "esp-1", UserPlantID: plant.ID})
	require.NoError(t, err)

	offline := false
	_, err = svc.UpdateSensor(ctx, p, "esp-1", &models.SensorUpdate{IsOnline: &offline})
	require.NoError(t, err)

	later := time.Now().UTC().Add(time.Minute)
	svc.now = func() time.Time { return later }

	device := &auth.Principal{Kind: auth.KindDevice, SensorID: reg.ID, DeviceID: reg.DeviceID}
	battery := 42
	reading, err := svc.SubmitReading(ctx, device, &models.ReadingSubmit{MoisturePercent: float(37.5), BatteryLevel: &battery})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, reading.SensorID)
	assert.Equal(t, later, reading.Timestamp)

	sensor, err := svc.GetSensor(ctx, p, "esp-1")
	require.NoError(t, err)
	assert.True(t, sensor.IsOnline)
	require.NotNil(t, sensor.LastSeen)
	assert.True(t, sensor.LastSeen.Equal(later))
	assert.Equal(t, 42, *sensor.BatteryLevel)

	latest, err := svc.LatestReading(ctx, p, "esp-1")
	require.NoError(t, err)
	assert.Equal(t, reading.ID, latest.ID)

	_, err = svc.SubmitReading(ctx, p, &models.ReadingSubmit{MoisturePercent: float(10)})
	assert.True(t, errors.IsUnauthenticated(err), "users cannot submit readings")

	_, err = svc.SubmitReading(ctx, device, &models.ReadingSubmit{MoisturePercent: float(120)})
	assert.True(t, errors.IsValidation(err))
}

func TestDeletePlantCascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := registerUser(t, svc, "a@example.com")
	plant := addPlant(t, svc, p)
	_, err := svc.RegisterSensor(ctx, p, &models.SensorCreate{DeviceID: "esp-1", UserPlantID: plant.ID})
	require.NoError(t, err)
	_, err = svc.CreateAlert(ctx, p, &models.AlertCreate{UserPlantID: plant.ID, Title: "t", Message: "m"})
	require.NoError(t, err)

	done := make(chan string, 1)
	svc.Cleanup.OnCleanup(cleanup.EventPlantDeleted, func(id string) { done <- id })

	require.NoError(t, svc.DeletePlant(ctx, p, plant.ID))

	_, err = svc.GetSensor(ctx, p, "esp-1")
	assert.True(t, errors.IsNotFound(err))
	alerts, err := svc.ListAlerts(ctx, p, models.AlertFilters{}, models.Page{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, alerts.Total)

	select {
	case id := <-done:
		assert.Equal(t, plant.ID, id)
	case <-time.After(time.Second):
		t.Fatal("plant.deleted was not emitted")
	}
}

func TestWateringLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := registerUser(t, svc, "a@example.com")
	plant := addPlant(t, svc, p)

	event, err := svc.TriggerWatering(ctx, p, plant.ID, models.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, event.Status)

	completed := models.StatusCompleted
	ml := 250
	updated, err := svc.UpdateWateringEvent(ctx, p, event.ID, &models.WateringEventUpdate{Status: &completed, WaterML: &ml})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedTime)

	pending := models.StatusPending
	_, err = svc.UpdateWateringEvent(ctx, p, event.ID, &models.WateringEventUpdate{Status: &pending})
	assert.True(t, errors.IsValidation(err), "completed events are final")

	history, err := svc.WateringHistory(ctx, p, plant.ID, 7, models.Page{Limit: 50})
	require.NoError(t, err)
	require.Len(t, history.Events, 1)
	assert.Equal(t, event.ID, history.Events[0].ID)

	require.NoError(t, svc.DeleteWateringEvent(ctx, p, event.ID))
	history, err = svc.WateringHistory(ctx, p, plant.ID, 7, models.Page{Limit: 50})
	require.NoError(t, err)
	assert.Empty(t, history.Events)
}

func TestAlertsReadState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := registerUser(t, svc, "a@example.com")
	plant := addPlant(t, svc, p)

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.CreateAlert(ctx, p, &models.AlertCreate{UserPlantID: plant.ID, Title: title, Message: "m"})
		require.NoError(t, err)
	}
	list, err := svc.ListAlerts(ctx, p, models.AlertFilters{}, models.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Alerts, 3)
	assert.Equal(t, models.AlertGeneral, list.Alerts[0].AlertType)

	read, err := svc.MarkAlertRead(ctx, p, list.Alerts[0].ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	assert.NotNil(t, read.ReadAt)

	res, err := svc.MarkAllAlertsRead(ctx, p)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Count)

	unread := false
	list, err = svc.ListAlerts(ctx, p, models.AlertFilters{IsRead: &unread}, models.Page{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestOnlySuperusersWriteCatalog(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := registerUser(t, svc, "a@example.com")

	species := &models.Plant{
		SpeciesID:      "ficus_lyrata",
		ScientificName: "Ficus lyrata",
		CommonNames:    models.StringList{"Fiddle-leaf Fig"},
	}
	_, err := svc.AddSpecies(ctx, p, species)
	apiErr, ok := errors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 403, apiErr.Code)

	p.IsSuperuser = true
	created, err := svc.AddSpecies(ctx, p, species)
	require.NoError(t, err)
	assert.Equal(t, 40, created.SoilMoistureTargetPct)

	got, err := svc.GetSpecies(ctx, "ficus_lyrata")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestForeignPlantIsCheckedBeforeInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	alice := registerUser(t, svc, "alice@example.com")
	bob := registerUser(t, svc, "bob@example.com")
	plant := addPlant(t, svc, alice)

	_, err := svc.CreateAlert(ctx, bob, &models.AlertCreate{UserPlantID: plant.ID, AlertType: "bogus"})
	assert.True(t, errors.IsNotFound(err), "got %v", err)
	_, err = svc.RegisterSensor(ctx, bob, &models.SensorCreate{DeviceID: strings.Repeat("x", 101), UserPlantID: plant.ID})
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	_, err = svc.CreateAlert(ctx, alice, &models.AlertCreate{UserPlantID: plant.ID, AlertType: "bogus"})
	assert.True(t, errors.IsValidation(err))
	_, err = svc.RegisterSensor(ctx, alice, &models.SensorCreate{DeviceID: strings.Repeat("x", 101), UserPlantID: plant.ID})
	assert.True(t, errors.IsValidation(err))
}

func TestOwnedListsIgnoreConcurrentWritersOfOthers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	alice := registerUser(t, svc, "alice@example.com")
	bob := registerUser(t, svc, "bob@example.com")

	plant := addPlant(t, svc, alice)
	reg, err := svc.RegisterSensor(ctx, alice, &models.SensorCreate{DeviceID: "alice-esp", UserPlantID: plant.ID})
	require.NoError(t, err)
	alert, err := svc.CreateAlert(ctx, alice, &models.AlertCreate{UserPlantID: plant.ID, Title: "Dry", Message: "Soil is dry"})
	require.NoError(t, err)

	const writers, rounds = 4, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				own, err := svc.CreatePlant(ctx, bob, &models.UserPlantCreate{SpeciesID: "monstera_deliciosa"})
				if !assert.NoError(t, err) {
					return
				}
				_, err = svc.RegisterSensor(ctx, bob, &models.SensorCreate{DeviceID: fmt.Sprintf("bob-%d-%d", w, i), UserPlantID: own.ID})
				assert.NoError(t, err)
				_, err = svc.CreateAlert(ctx, bob, &models.AlertCreate{UserPlantID: own.ID, Title: "t", Message: "m"})
				assert.NoError(t, err)
				if i%2 == 0 {
					assert.NoError(t, svc.DeletePlant(ctx, bob, own.ID))
				}
			}
		}(w)
	}

	stop := make(chan struct{})
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			select {
			case <-stop:
				return
			default:
			}
			plants, err := svc.ListPlants(ctx, alice, models.Page{Limit: 100})
			if assert.NoError(t, err) && assert.Equal(t, int64(1), plants.Total) {
				assert.Equal(t, plant.ID, plants.Plants[0].ID)
			}
			sensors, err := svc.ListSensors(ctx, alice, models.Page{Limit: 100})
			if assert.NoError(t, err) && assert.Equal(t, int64(1), sensors.Total) {
				assert.Equal(t, reg.DeviceID, sensors.Sensors[0].DeviceID)
			}
			alerts, err := svc.ListAlerts(ctx, alice, models.AlertFilters{}, models.Page{Limit: 100})
			if assert.NoError(t, err) && assert.Equal(t, int64(1), alerts.Total) {
				assert.Equal(t, alert.ID, alerts.Alerts[0].ID)
			}
		}
	}()

	wg.Wait()
	close(stop)
	<-readerDone

	plants, err := svc.ListPlants(ctx, bob, models.Page{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, int64(writers*(rounds/2)), plants.Total)
	sensors, err := svc.ListSensors(ctx, bob, models.Page{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, plants.Total, sensors.Total)
}
