package earthquake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"quake-manager/core/storage"
	"quake-manager/feature/earthquake/country"
	"quake-manager/feature/earthquake/models"
	"quake-manager/feature/earthquake/provider"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Default result limits.
const (
	DefaultQueryLimit   = 10
	DefaultHistoryLimit = 50
)

// Service is the query façade and reconciliation engine for seismic events.
// It routes queries to the right provider or the local store, normalizes
// submissions into canonical events and enforces cross-source uniqueness.
type Service struct {
	db        *gorm.DB
	providers map[provider.Source]provider.Provider
	resolver  *country.Resolver
	archive   storage.Client
	bucket    string
	logger    *zap.Logger
}

// NewService creates a new earthquake service. db may be nil (local store
// operations then fail soft with ErrStoreUnavailable); archive may be nil to
// disable raw payload archival.
func NewService(db *gorm.DB, providers map[provider.Source]provider.Provider, resolver *country.Resolver, archive storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		db:        db,
		providers: providers,
		resolver:  resolver,
		archive:   archive,
		bucket:    bucket,
		logger:    logger,
	}
}

// GetEarthquakes returns recent events for a source, optionally filtered by
// country and truncated to limit. The NoData marker is returned both for
// empty results and unreachable providers; only the latter carries detail.
func (s *Service) GetEarthquakes(ctx context.Context, source, countryFilter string, limit int) ([]models.Event, *models.NoData, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	switch strings.ToUpper(strings.TrimSpace(source)) {
	case models.SourceDB:
		return s.queryLocal(ctx, countryFilter, limit)
	case models.SourceUSGS:
		return s.queryProvider(ctx, provider.USGS, countryFilter, limit)
	case models.SourceEMSC:
		return s.queryProvider(ctx, provider.EMSC, countryFilter, limit)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidSource, source)
	}
}

// queryLocal reads the local store, newest first.
func (s *Service) queryLocal(ctx context.Context, countryFilter string, limit int) ([]models.Event, *models.NoData, error) {
	if s.db == nil {
		return nil, nil, ErrStoreUnavailable
	}

	q := s.db.WithContext(ctx).Model(&models.Earthquake{})
	if countryFilter != "" {
		q = q.Where("UPPER(country) LIKE ?", "%"+strings.ToUpper(countryFilter)+"%")
	}

	var records []models.Earthquake
	if err := q.Order("date DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, nil, fmt.Errorf("query local store: %w", err)
	}

	if len(records) == 0 {
		return nil, models.NewNoData(countryFilter, ""), nil
	}

	events := make([]models.Event, 0, len(records))
	for _, r := range records {
		events = append(events, r.ToEvent())
	}
	return events, nil, nil
}

// queryProvider delegates to an upstream adapter and applies the local
// country post-filter; the providers have no server-side country filtering.
func (s *Service) queryProvider(ctx context.Context, src provider.Source, countryFilter string, limit int) ([]models.Event, *models.NoData, error) {
	p, ok := s.providers[src]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidSource, src)
	}

	res := p.FetchRecent(ctx, limit)

	switch res.Status {
	case provider.StatusUnavailable:
		return nil, models.NewNoData(countryFilter, res.Detail), nil
	case provider.StatusEmpty:
		return nil, models.NewNoData(countryFilter, ""), nil
	}

	s.archiveRaw(ctx, src, res.Raw)

	events := filterByCountry(res.Events, countryFilter)
	if len(events) > limit {
		events = events[:limit]
	}
	if len(events) == 0 {
		return nil, models.NewNoData(countryFilter, ""), nil
	}
	return events, nil, nil
}

// filterByCountry keeps events whose resolved country or raw location
// contains the filter, case-insensitively.
func filterByCountry(events []models.Event, countryFilter string) []models.Event {
	if countryFilter == "" {
		return events
	}
	needle := strings.ToUpper(countryFilter)
	filtered := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if strings.Contains(strings.ToUpper(ev.Country), needle) ||
			strings.Contains(strings.ToUpper(ev.Location), needle) {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// archiveRaw stores the raw provider payload in the archive bucket. Archival
// is best effort: failures are logged and never fail the request.
func (s *Service) archiveRaw(ctx context.Context, src provider.Source, raw []byte) {
	if s.archive == nil || len(raw) == 0 {
		return
	}

	object := fmt.Sprintf("raw/%s/%s.json", strings.ToLower(string(src)), time.Now().UTC().Format("20060102T150405.000Z"))
	_, err := s.archive.PutObject(ctx, s.bucket, object, bytes.NewReader(raw), int64(len(raw)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		s.logger.Warn("raw payload archival failed",
			zap.String("source", string(src)),
			zap.String("object", object),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("raw payload archived", zap.String("object", object))
}

// RetrieveRaw reads an archived provider payload back from the archive bucket.
func (s *Service) RetrieveRaw(ctx context.Context, object string) ([]byte, error) {
	if s.archive == nil {
		return nil, ErrArchiveUnavailable
	}

	obj, err := s.archive.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("retrieve %s: %w", object, err)
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

// Save normalizes a submission and persists it after the uniqueness check.
//
// A submission carrying an external eventId with a valid upstream source is
// an import: the adapter-normalized record wins over any manual fields in the
// same request. Everything else is a manual report persisted as LOCAL.
func (s *Service) Save(ctx context.Context, req models.SaveRequest) (*models.SaveResponse, error) {
	if s.db == nil {
		return nil, ErrStoreUnavailable
	}

	src := strings.ToUpper(strings.TrimSpace(req.Source))

	if req.EventID != "" && models.IsUpstreamSource(src) {
		p, ok := s.providers[provider.Source(src)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSource, src)
		}
		ev, err := p.FetchByID(ctx, req.EventID)
		if err != nil {
			// The provider could not be consulted; the event cannot be
			// confirmed, so the import is rejected as not found.
			s.logger.Warn("external event lookup failed", zap.String("event_id", req.EventID), zap.Error(err))
			return nil, fmt.Errorf("%w: %s", ErrEventNotFound, req.EventID)
		}
		if ev == nil {
			return nil, fmt.Errorf("%w: %s", ErrEventNotFound, req.EventID)
		}
		return s.persist(ctx, *ev)
	}

	ev, err := s.buildManualEvent(req, src)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, ev)
}

// buildManualEvent validates and normalizes a manual report.
func (s *Service) buildManualEvent(req models.SaveRequest, src string) (models.Event, error) {
	var reasons []string
	if strings.TrimSpace(req.Location) == "" {
		reasons = append(reasons, "location is required")
	}
	if req.Magnitude == nil {
		reasons = append(reasons, "magnitude is required")
	}
	if req.Depth == nil {
		reasons = append(reasons, "depth is required")
	}
	if req.Date == nil || req.Date.IsZero() {
		reasons = append(reasons, "date is required")
	}
	if len(reasons) > 0 {
		return models.Event{}, &ValidationError{Reasons: reasons}
	}

	// Guard against spoofed source strings: anything that is not a valid
	// upstream token is recorded as LOCAL.
	if !models.IsUpstreamSource(src) {
		src = models.SourceLocal
	}

	countryToken := strings.ToUpper(strings.TrimSpace(req.Country))
	if countryToken == "" {
		countryToken = s.resolver.Resolve(req.Location)
	}

	lon, lat := req.Coordinates.Point()
	if lon == nil && lat == nil {
		lon, lat = req.Longitude, req.Latitude
	}

	eventID := strings.TrimSpace(req.EventID)
	if eventID == "" {
		eventID = synthesizeEventID()
	}

	ev := models.Event{
		EventID:      eventID,
		Source:       src,
		Location:     strings.TrimSpace(req.Location),
		Country:      countryToken,
		Magnitude:    *req.Magnitude,
		Depth:        *req.Depth,
		Date:         *req.Date,
		Coordinates:  models.NewGeoPoint(lon, lat),
		Title:        req.Title,
		Region:       req.Region,
		Alert:        req.Alert,
		Significance: req.Significance,
	}

	if flags := ev.RangeFlags(); len(flags) > 0 {
		return models.Event{}, &ValidationError{Reasons: flags}
	}
	if ev.Date.After(time.Now().Add(24 * time.Hour)) {
		return models.Event{}, &ValidationError{Reasons: []string{"date cannot be in the future"}}
	}

	return ev, nil
}

// synthesizeEventID generates an identifier for local reports. The
// timestamp-plus-suffix scheme is a soft guarantee; the store's unique index
// is the hard one.
func synthesizeEventID() string {
	return fmt.Sprintf("LOCAL-%d-%d", time.Now().UnixMilli(), rand.Intn(10000))
}

// persist runs the uniqueness check and inserts the event. The pre-check is
// a fast path; the unique index on event_id catches the race it leaves open.
func (s *Service) persist(ctx context.Context, ev models.Event) (*models.SaveResponse, error) {
	if ev.EventID == "" {
		return nil, &ValidationError{Reasons: []string{"eventId could not be determined"}}
	}

	var existing models.Earthquake
	err := s.db.WithContext(ctx).Where("event_id = ?", ev.EventID).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEvent, ev.EventID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("uniqueness pre-check: %w", err)
	}

	record := ev.ToRecord()
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEvent, ev.EventID)
		}
		return nil, fmt.Errorf("insert event: %w", err)
	}

	s.logger.Info("event saved",
		zap.Uint("id", record.ID),
		zap.String("event_id", record.EventID),
		zap.String("source", record.Source),
	)

	return &models.SaveResponse{
		ID:      record.ID,
		EventID: record.EventID,
		Message: "event saved successfully",
	}, nil
}

// HistoryByCountry returns the stored history for a country, newest first.
// An empty store yields the normalized country with empty data, never a
// NoData marker.
func (s *Service) HistoryByCountry(ctx context.Context, countryName string, limit int) (*models.HistoryResponse, error) {
	if s.db == nil {
		return nil, ErrStoreUnavailable
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	normalized := strings.ToUpper(strings.TrimSpace(countryName))

	var records []models.Earthquake
	err := s.db.WithContext(ctx).
		Where("UPPER(country) LIKE ?", "%"+normalized+"%").
		Order("date DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	resp := &models.HistoryResponse{
		Country: normalized,
		Data:    make([]models.HistoryEntry, 0, len(records)),
	}
	for _, r := range records {
		resp.Data = append(resp.Data, r.ToHistoryEntry())
	}
	if len(resp.Data) == 0 {
		resp.Message = "no seismic records"
	}
	return resp, nil
}

// Delete removes a stored event by its storage identifier.
func (s *Service) Delete(ctx context.Context, id uint) (*models.DeleteResponse, error) {
	if s.db == nil {
		return nil, ErrStoreUnavailable
	}

	result := s.db.WithContext(ctx).Delete(&models.Earthquake{}, id)
	if result.Error != nil {
		return nil, fmt.Errorf("delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrEventNotFound, id)
	}

	return &models.DeleteResponse{
		Message: fmt.Sprintf("record with id %d deleted successfully", id),
	}, nil
}
