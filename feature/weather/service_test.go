package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"quake-manager/core/database"
	"quake-manager/feature/weather/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const openWeatherMapPayload = `{
  "name": "Santiago",
  "main": { "temp": 18.5, "humidity": 60 },
  "weather": [ { "main": "Clear" } ]
}`

const weatherAPIPayload = `{
  "location": { "name": "Lima" },
  "current": {
    "temp_c": 21.0,
    "humidity": 74,
    "condition": { "text": "Partly cloudy" }
  }
}`

func setupWeatherDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Report{}))
	return db
}

func seedReport(t *testing.T, db *gorm.DB, city string, temp float64) models.Report {
	t.Helper()
	report := models.Report{City: city, Temperature: temp, Humidity: 50, Condition: "Cloudy"}
	require.NoError(t, db.Create(&report).Error)
	return report
}

func TestParseSource(t *testing.T) {
	for raw, want := range map[string]Source{
		"OpenWeatherMap": OpenWeatherMap,
		"openweathermap": OpenWeatherMap,
		"WeatherApi":     WeatherAPI,
		"WEATHERAPI":     WeatherAPI,
	} {
		src, err := ParseSource(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, src)
	}

	_, err := ParseSource("AccuWeather")
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestGetWeather_OpenWeatherMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Santiago", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "owm-key", r.URL.Query().Get("appid"))
		w.Write([]byte(openWeatherMapPayload))
	}))
	defer srv.Close()

	cfg := Config{OpenWeatherMapBaseURL: srv.URL, OpenWeatherMapKey: "owm-key", TimeoutSeconds: 5}
	svc := NewService(nil, AllProviders(cfg, zap.NewNop()), zap.NewNop())

	obs, err := svc.GetWeather(context.Background(), "OpenWeatherMap", "Santiago")
	require.NoError(t, err)
	assert.Equal(t, "Santiago", obs.City)
	assert.Equal(t, 18.5, obs.Temperature)
	assert.Equal(t, 60.0, obs.Humidity)
	assert.Equal(t, "Clear", obs.Condition)
	assert.Zero(t, obs.ID, "remote reads carry no storage id")
}

func TestGetWeather_WeatherAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lima", r.URL.Query().Get("q"))
		assert.Equal(t, "wa-key", r.URL.Query().Get("key"))
		w.Write([]byte(weatherAPIPayload))
	}))
	defer srv.Close()

	cfg := Config{WeatherAPIBaseURL: srv.URL, WeatherAPIKey: "wa-key", TimeoutSeconds: 5}
	svc := NewService(nil, AllProviders(cfg, zap.NewNop()), zap.NewNop())

	obs, err := svc.GetWeather(context.Background(), "weatherapi", "Lima")
	require.NoError(t, err)
	assert.Equal(t, "Lima", obs.City)
	assert.Equal(t, 21.0, obs.Temperature)
	assert.Equal(t, "Partly cloudy", obs.Condition)
}

func TestGetWeather_RemoteNeverPersisted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(openWeatherMapPayload))
	}))
	defer srv.Close()

	db := setupWeatherDB(t)
	cfg := Config{OpenWeatherMapBaseURL: srv.URL, TimeoutSeconds: 5}
	svc := NewService(db, AllProviders(cfg, zap.NewNop()), zap.NewNop())

	_, err := svc.GetWeather(context.Background(), "OpenWeatherMap", "Santiago")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetWeather_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := Config{WeatherAPIBaseURL: srv.URL, TimeoutSeconds: 5}
	svc := NewService(nil, AllProviders(cfg, zap.NewNop()), zap.NewNop())

	_, err := svc.GetWeather(context.Background(), "WeatherAPI", "Lima")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestGetWeather_LocalStore(t *testing.T) {
	db := setupWeatherDB(t)
	svc := NewService(db, nil, zap.NewNop())

	seedReport(t, db, "Santiago", 15.0)
	latest := seedReport(t, db, "Santiago", 19.0)
	seedReport(t, db, "Lima", 22.0)

	obs, err := svc.GetWeather(context.Background(), "DB", "Santiago")
	require.NoError(t, err)
	assert.Equal(t, latest.ID, obs.ID, "most recent report wins")
	assert.Equal(t, 19.0, obs.Temperature)

	_, err = svc.GetWeather(context.Background(), "db", "Quito")
	assert.ErrorIs(t, err, ErrNoObservation)
}

func TestGetWeather_Validation(t *testing.T) {
	svc := NewService(nil, nil, zap.NewNop())

	_, err := svc.GetWeather(context.Background(), "DB", "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reasons[0], "city")

	_, err = svc.GetWeather(context.Background(), "AccuWeather", "Lima")
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestSaveReport(t *testing.T) {
	db := setupWeatherDB(t)
	svc := NewService(db, nil, zap.NewNop())

	temp, humidity := 17.2, 81.0
	resp, err := svc.SaveReport(context.Background(), models.SaveRequest{
		City:        "Valparaíso",
		Temperature: &temp,
		Humidity:    &humidity,
		Condition:   "Fog",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)

	_, err = svc.SaveReport(context.Background(), models.SaveRequest{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Reasons, 4)
}

func TestHistory(t *testing.T) {
	db := setupWeatherDB(t)
	svc := NewService(db, nil, zap.NewNop())

	resp, err := svc.History(context.Background(), "Lima")
	require.NoError(t, err)
	assert.Equal(t, "Lima", resp.City)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)

	seedReport(t, db, "Lima", 20.0)
	newest := seedReport(t, db, "Lima", 23.0)

	resp, err = svc.History(context.Background(), "Lima")
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, newest.ID, resp.Data[0].ID, "newest first")
}

func TestDeleteReport(t *testing.T) {
	db := setupWeatherDB(t)
	svc := NewService(db, nil, zap.NewNop())

	report := seedReport(t, db, "Lima", 20.0)

	resp, err := svc.Delete(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "deleted successfully")

	_, err = svc.Delete(context.Background(), report.ID)
	assert.ErrorIs(t, err, ErrNoObservation)
}

func TestWeatherService_NoStore(t *testing.T) {
	svc := NewService(nil, nil, zap.NewNop())

	_, err := svc.GetWeather(context.Background(), "DB", "Lima")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.History(context.Background(), "Lima")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
