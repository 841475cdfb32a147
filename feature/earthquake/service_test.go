package earthquake

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"quake-manager/core/database"
	"quake-manager/core/storage/mocks"
	"quake-manager/feature/earthquake/country"
	"quake-manager/feature/earthquake/models"
	"quake-manager/feature/earthquake/provider"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// fakeProvider is a scriptable provider.Provider.
type fakeProvider struct {
	source provider.Source
	recent provider.RecentResult
	byID   map[string]*models.Event
	idErr  error
}

func (f *fakeProvider) Source() provider.Source { return f.source }

func (f *fakeProvider) FetchRecent(ctx context.Context, limit int) provider.RecentResult {
	return f.recent
}

func (f *fakeProvider) FetchByID(ctx context.Context, eventID string) (*models.Event, error) {
	if f.idErr != nil {
		return nil, f.idErr
	}
	return f.byID[eventID], nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Earthquake{}))
	return db
}

// setupMockDB creates a sqlmock-backed GORM DB for failure-path tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func newTestService(db *gorm.DB, providers map[provider.Source]provider.Provider) *Service {
	return NewService(db, providers, country.NewDefaultResolver(), nil, "", zap.NewNop())
}

func chileEvent(id string, daysAgo int) models.Event {
	lon, lat := -71.2, -29.9
	return models.Event{
		EventID:     id,
		Source:      models.SourceUSGS,
		Location:    fmt.Sprintf("%s of Coquimbo, Chile", id),
		Country:     "CHILE",
		Magnitude:   5.0,
		Depth:       30,
		Date:        models.NewDay(time.Now().UTC().AddDate(0, 0, -daysAgo)),
		Coordinates: models.NewGeoPoint(&lon, &lat),
	}
}

func seedRecord(t *testing.T, db *gorm.DB, ev models.Event) models.Earthquake {
	t.Helper()
	rec := ev.ToRecord()
	require.NoError(t, db.Create(&rec).Error)
	return rec
}

func manualRequest(location string) models.SaveRequest {
	mag, depth := 5.4, 30.0
	date := models.NewDay(time.Date(2023, 4, 4, 12, 0, 0, 0, time.UTC))
	return models.SaveRequest{
		Location:  location,
		Magnitude: &mag,
		Depth:     &depth,
		Date:      &date,
	}
}

func TestGetEarthquakes_LocalStore(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	seedRecord(t, db, chileEvent("old", 10))
	seedRecord(t, db, chileEvent("new", 1))
	peru := chileEvent("peru-1", 2)
	peru.Country = "PERU"
	peru.Location = "near Lima, Peru"
	seedRecord(t, db, peru)

	events, noData, err := svc.GetEarthquakes(context.Background(), "DB", "chile", 10)
	require.NoError(t, err)
	require.Nil(t, noData)
	require.Len(t, events, 2)
	assert.Equal(t, "new", events[0].EventID, "newest first")
	assert.Equal(t, "old", events[1].EventID)

	events, _, err = svc.GetEarthquakes(context.Background(), "db", "", 2)
	require.NoError(t, err)
	assert.Len(t, events, 2, "limit applied")
}

func TestGetEarthquakes_LocalStoreEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	events, noData, err := svc.GetEarthquakes(context.Background(), "DB", "peru", 10)
	require.NoError(t, err)
	assert.Nil(t, events)
	require.NotNil(t, noData)
	assert.Equal(t, "no seismic records", noData.Message)
	assert.Equal(t, "peru", noData.Country)
	assert.Empty(t, noData.Error)
}

func TestGetEarthquakes_ProviderFilterAndLimit(t *testing.T) {
	events := make([]models.Event, 0, 10)
	for i := 0; i < 8; i++ {
		events = append(events, chileEvent(fmt.Sprintf("cl-%d", i), i))
	}
	other := chileEvent("jp-1", 3)
	other.Country = "JAPAN"
	other.Location = "Tōhoku Japan region"
	events = append(events, other)
	other2 := chileEvent("tr-1", 4)
	other2.Country = "TURKEY"
	other2.Location = "central Turkey"
	events = append(events, other2)

	usgs := &fakeProvider{
		source: provider.USGS,
		recent: provider.RecentResult{Events: events, Status: provider.StatusOK},
	}
	svc := newTestService(nil, map[provider.Source]provider.Provider{provider.USGS: usgs})

	got, noData, err := svc.GetEarthquakes(context.Background(), "USGS", "chile", 5)
	require.NoError(t, err)
	require.Nil(t, noData)
	require.Len(t, got, 5)
	for i, ev := range got {
		assert.Equal(t, "CHILE", ev.Country)
		assert.Equal(t, fmt.Sprintf("cl-%d", i), ev.EventID, "provider order preserved")
	}
}

func TestGetEarthquakes_ProviderUnavailable(t *testing.T) {
	usgs := &fakeProvider{
		source: provider.USGS,
		recent: provider.RecentResult{Status: provider.StatusUnavailable, Detail: "error connecting to USGS: timeout"},
	}
	svc := newTestService(nil, map[provider.Source]provider.Provider{provider.USGS: usgs})

	got, noData, err := svc.GetEarthquakes(context.Background(), "USGS", "chile", 5)
	require.NoError(t, err, "upstream failure degrades, never raises")
	assert.Nil(t, got)
	require.NotNil(t, noData)
	assert.Equal(t, "chile", noData.Country, "country echoes the filter")
	assert.Contains(t, noData.Error, "timeout")
}

func TestGetEarthquakes_ProviderEmpty(t *testing.T) {
	emsc := &fakeProvider{
		source: provider.EMSC,
		recent: provider.RecentResult{Status: provider.StatusEmpty},
	}
	svc := newTestService(nil, map[provider.Source]provider.Provider{provider.EMSC: emsc})

	_, noData, err := svc.GetEarthquakes(context.Background(), "EMSC", "", 5)
	require.NoError(t, err)
	require.NotNil(t, noData)
	assert.Equal(t, "ALL", noData.Country)
	assert.Empty(t, noData.Error, "truly empty carries no detail")
}

func TestGetEarthquakes_InvalidSource(t *testing.T) {
	svc := newTestService(setupTestDB(t), nil)

	_, _, err := svc.GetEarthquakes(context.Background(), "GFZ", "", 5)
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestGetEarthquakes_LocalStoreFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := newTestService(db, nil)

	mock.ExpectQuery("SELECT .* FROM `earthquakes`").WillReturnError(fmt.Errorf("connection reset"))

	_, _, err := svc.GetEarthquakes(context.Background(), "DB", "", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query local store")
}

func TestSave_ManualReport(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	resp, err := svc.Save(context.Background(), manualRequest("30km NE of Coquimbo, Chile"))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Regexp(t, `^LOCAL-\d+-\d+$`, resp.EventID)

	var rec models.Earthquake
	require.NoError(t, db.First(&rec, resp.ID).Error)
	assert.Equal(t, models.SourceLocal, rec.Source)
	assert.Equal(t, "CHILE", rec.Country, "country inferred from location")
}

func TestSave_SpoofedSourceForcedLocal(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	req := manualRequest("somewhere, Bolivia")
	req.Source = "TRUSTED-FEED"

	resp, err := svc.Save(context.Background(), req)
	require.NoError(t, err)

	var rec models.Earthquake
	require.NoError(t, db.First(&rec, resp.ID).Error)
	assert.Equal(t, models.SourceLocal, rec.Source)
}

func TestSave_DuplicateEventID(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	req := manualRequest("offshore, Ecuador")
	req.EventID = "manual-001"

	_, err := svc.Save(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateEvent)

	var count int64
	require.NoError(t, db.Model(&models.Earthquake{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "exactly one record persisted")
}

func TestSave_ExternalImport(t *testing.T) {
	db := setupTestDB(t)
	upstream := chileEvent("us7000abcd", 1)
	usgs := &fakeProvider{
		source: provider.USGS,
		byID:   map[string]*models.Event{"us7000abcd": &upstream},
	}
	svc := newTestService(db, map[provider.Source]provider.Provider{provider.USGS: usgs})

	// Conflicting manual fields are ignored; the adapter-normalized record wins.
	req := manualRequest("bogus location, Narnia")
	req.EventID = "us7000abcd"
	req.Source = "USGS"

	resp, err := svc.Save(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "us7000abcd", resp.EventID)

	var rec models.Earthquake
	require.NoError(t, db.First(&rec, resp.ID).Error)
	assert.Equal(t, models.SourceUSGS, rec.Source)
	assert.Equal(t, "CHILE", rec.Country)
	assert.Contains(t, rec.Location, "Coquimbo")
}

func TestSave_ExternalImportNotFound(t *testing.T) {
	db := setupTestDB(t)
	usgs := &fakeProvider{source: provider.USGS, byID: map[string]*models.Event{}}
	svc := newTestService(db, map[provider.Source]provider.Provider{provider.USGS: usgs})

	req := manualRequest("ignored")
	req.EventID = "missing-id"
	req.Source = "USGS"

	_, err := svc.Save(context.Background(), req)
	assert.ErrorIs(t, err, ErrEventNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Earthquake{}).Count(&count).Error)
	assert.Zero(t, count, "no local write on not found")
}

func TestSave_ExternalImportProviderDown(t *testing.T) {
	db := setupTestDB(t)
	usgs := &fakeProvider{source: provider.USGS, idErr: fmt.Errorf("USGS unavailable: timeout")}
	svc := newTestService(db, map[provider.Source]provider.Provider{provider.USGS: usgs})

	req := manualRequest("ignored")
	req.EventID = "us7000abcd"
	req.Source = "USGS"

	_, err := svc.Save(context.Background(), req)
	assert.ErrorIs(t, err, ErrEventNotFound, "unreachable provider maps to not found")
}

func TestSave_ValidationFailures(t *testing.T) {
	svc := newTestService(setupTestDB(t), nil)

	_, err := svc.Save(context.Background(), models.SaveRequest{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Reasons, 4, "location, magnitude, depth, date")

	req := manualRequest("somewhere, Chile")
	badMag := 11.5
	req.Magnitude = &badMag
	_, err = svc.Save(context.Background(), req)
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reasons[0], "magnitude")
}

func TestSave_CoordinateNormalization(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	t.Run("legacy latitude/longitude pair", func(t *testing.T) {
		lat, lon := -33.4, -70.6
		req := manualRequest("Santiago, Chile")
		req.Coordinates = &models.CoordinateInput{Latitude: &lat, Longitude: &lon}

		resp, err := svc.Save(context.Background(), req)
		require.NoError(t, err)

		var rec models.Earthquake
		require.NoError(t, db.First(&rec, resp.ID).Error)
		require.NotNil(t, rec.Longitude)
		require.NotNil(t, rec.Latitude)
		assert.Equal(t, -70.6, *rec.Longitude, "longitude first")
		assert.Equal(t, -33.4, *rec.Latitude)
	})

	t.Run("canonical point passes through", func(t *testing.T) {
		lon, lat := -77.0, -12.0
		req := manualRequest("Lima, Peru")
		req.Coordinates = &models.CoordinateInput{Type: "Point", Coordinates: []*float64{&lon, &lat}}

		resp, err := svc.Save(context.Background(), req)
		require.NoError(t, err)

		var rec models.Earthquake
		require.NoError(t, db.First(&rec, resp.ID).Error)
		assert.Equal(t, -77.0, *rec.Longitude)
		assert.Equal(t, -12.0, *rec.Latitude)
	})

	t.Run("bare longitude/latitude fields", func(t *testing.T) {
		lon, lat := 140.0, 35.0
		req := manualRequest("Honshu, Japan")
		req.Longitude = &lon
		req.Latitude = &lat

		resp, err := svc.Save(context.Background(), req)
		require.NoError(t, err)

		var rec models.Earthquake
		require.NoError(t, db.First(&rec, resp.ID).Error)
		assert.Equal(t, 140.0, *rec.Longitude)
		assert.Equal(t, 35.0, *rec.Latitude)
	})

	t.Run("out of range coordinates rejected", func(t *testing.T) {
		lon, lat := -200.0, -12.0
		req := manualRequest("Lima, Peru")
		req.Longitude = &lon
		req.Latitude = &lat

		_, err := svc.Save(context.Background(), req)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestSynthesizeEventID(t *testing.T) {
	pattern := regexp.MustCompile(`^LOCAL-\d{13}-\d{1,4}$`)

	// The scheme is a soft guarantee only: ids from distinct milliseconds
	// never collide, and within one millisecond the random suffix keeps the
	// bulk distinct. The unique index on event_id is the hard guarantee.
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := synthesizeEventID()
		require.Regexp(t, pattern, id)
		seen[id] = struct{}{}
	}
	assert.Greater(t, len(seen), n/2, "ids are statistically distinct")

	prev := synthesizeEventID()
	for i := 0; i < 20; i++ {
		time.Sleep(time.Millisecond)
		id := synthesizeEventID()
		assert.NotEqual(t, prev, id, "distinct milliseconds never collide")
		prev = id
	}
}

func TestHistoryByCountry(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	t.Run("empty store returns explicit empty shape", func(t *testing.T) {
		resp, err := svc.HistoryByCountry(context.Background(), "peru", 50)
		require.NoError(t, err)
		assert.Equal(t, "PERU", resp.Country)
		assert.NotNil(t, resp.Data)
		assert.Empty(t, resp.Data)
		assert.NotEmpty(t, resp.Message)
	})

	t.Run("returns stored events newest first", func(t *testing.T) {
		older := chileEvent("cl-old", 9)
		newer := chileEvent("cl-new", 1)
		seedRecord(t, db, older)
		seedRecord(t, db, newer)

		resp, err := svc.HistoryByCountry(context.Background(), "chile", 50)
		require.NoError(t, err)
		assert.Equal(t, "CHILE", resp.Country)
		require.Len(t, resp.Data, 2)
		assert.Contains(t, resp.Data[0].Location, "cl-new")
		assert.Equal(t, models.SourceUSGS, resp.Data[0].Source)
		assert.Empty(t, resp.Message)
	})
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	rec := seedRecord(t, db, chileEvent("to-delete", 1))

	resp, err := svc.Delete(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Contains(t, resp.Message, fmt.Sprintf("%d", rec.ID))

	_, err = svc.Delete(context.Background(), rec.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestQueryProvider_ArchivesRawPayload(t *testing.T) {
	raw := []byte(`{"type":"FeatureCollection"}`)
	usgs := &fakeProvider{
		source: provider.USGS,
		recent: provider.RecentResult{
			Events: []models.Event{chileEvent("cl-1", 1)},
			Status: provider.StatusOK,
			Raw:    raw,
		},
	}

	archive := new(mocks.Client)
	archive.On("PutObject", mock.Anything, "seismic-archive", mock.MatchedBy(func(object string) bool {
		return strings.HasPrefix(object, "raw/usgs/")
	}), mock.Anything, int64(len(raw)), mock.Anything).Return(minio.UploadInfo{}, nil)

	svc := NewService(nil, map[provider.Source]provider.Provider{provider.USGS: usgs},
		country.NewDefaultResolver(), archive, "seismic-archive", zap.NewNop())

	events, _, err := svc.GetEarthquakes(context.Background(), "USGS", "", 5)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	archive.AssertExpectations(t)
}

func TestQueryProvider_ArchiveFailureIsSoft(t *testing.T) {
	usgs := &fakeProvider{
		source: provider.USGS,
		recent: provider.RecentResult{
			Events: []models.Event{chileEvent("cl-1", 1)},
			Status: provider.StatusOK,
			Raw:    []byte(`{}`),
		},
	}

	archive := new(mocks.Client)
	archive.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, fmt.Errorf("bucket gone"))

	svc := NewService(nil, map[provider.Source]provider.Provider{provider.USGS: usgs},
		country.NewDefaultResolver(), archive, "seismic-archive", zap.NewNop())

	events, _, err := svc.GetEarthquakes(context.Background(), "USGS", "", 5)
	require.NoError(t, err, "archival never fails the query")
	assert.Len(t, events, 1)
}

func TestRetrieveRaw(t *testing.T) {
	archive := new(mocks.Client)
	archive.On("GetObject", mock.Anything, "seismic-archive", "raw/usgs/20230404T120000.000Z.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(`{"type":"FeatureCollection"}`))), nil)

	svc := NewService(nil, nil, nil, archive, "seismic-archive", zap.NewNop())

	payload, err := svc.RetrieveRaw(context.Background(), "raw/usgs/20230404T120000.000Z.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection"}`, string(payload))
	archive.AssertExpectations(t)
}

func TestRetrieveRaw_NoArchive(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.RetrieveRaw(context.Background(), "raw/usgs/x.json")
	assert.ErrorIs(t, err, ErrArchiveUnavailable)
}

func TestService_NoStore(t *testing.T) {
	svc := newTestService(nil, nil)

	_, _, err := svc.GetEarthquakes(context.Background(), "DB", "", 5)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.Save(context.Background(), manualRequest("somewhere, Chile"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.HistoryByCountry(context.Background(), "chile", 10)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
