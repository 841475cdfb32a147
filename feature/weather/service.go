package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quake-manager/feature/weather/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Sentinel errors surfaced by the service, mapped to status codes by the handler.
var (
	ErrInvalidSource    = errors.New("invalid weather source")
	ErrNoObservation    = errors.New("no weather records")
	ErrStoreUnavailable = errors.New("local store unavailable")
)

// ValidationError reports structurally invalid submission input.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "invalid report: " + strings.Join(e.Reasons, "; ")
}

// Service routes current-conditions queries to the right provider or the
// local store. Remote reads are never persisted.
type Service struct {
	db        *gorm.DB
	providers map[Source]Provider
	logger    *zap.Logger
}

// NewService creates a new weather service. db may be nil; local store
// operations then fail soft with ErrStoreUnavailable.
func NewService(db *gorm.DB, providers map[Source]Provider, logger *zap.Logger) *Service {
	return &Service{db: db, providers: providers, logger: logger}
}

// GetWeather returns current conditions for a city. Source DB reads the most
// recent stored report; any other valid source is a read-only remote call.
func (s *Service) GetWeather(ctx context.Context, source, city string) (*models.Observation, error) {
	if strings.TrimSpace(city) == "" {
		return nil, &ValidationError{Reasons: []string{"city is required"}}
	}

	if strings.EqualFold(strings.TrimSpace(source), "DB") {
		return s.latestStored(ctx, city)
	}

	src, err := ParseSource(source)
	if err != nil {
		return nil, err
	}
	p, ok := s.providers[src]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSource, source)
	}
	return p.Current(ctx, city)
}

func (s *Service) latestStored(ctx context.Context, city string) (*models.Observation, error) {
	if s.db == nil {
		return nil, ErrStoreUnavailable
	}

	var report models.Report
	err := s.db.WithContext(ctx).
		Where("city = ?", city).
		Order("id DESC").
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w for %s", ErrNoObservation, city)
	}
	if err != nil {
		return nil, fmt.Errorf("query local store: %w", err)
	}

	obs := report.ToObservation()
	return &obs, nil
}

// SaveReport persists a manual weather report.
func (s *Service) SaveReport(ctx context.Context, req models.SaveRequest) (*models.SaveResponse, error) {
	if s.db == nil {
		return nil, ErrStoreUnavailable
	}

	var reasons []string
	if strings.TrimSpace(req.City) == "" {
		reasons = append(reasons, "city is required")
	}
	if req.Temperature == nil {
		reasons = append(reasons, "temperature is required")
	}
	if req.Humidity == nil {
		reasons = append(reasons, "humidity is required")
	}
	if strings.TrimSpace(req.Condition) == "" {
		reasons = append(reasons, "condition is required")
	}
	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	report := models.Report{
		City:        strings.TrimSpace(req.City),
		Temperature: *req.Temperature,
		Humidity:    *req.Humidity,
		Condition:   strings.TrimSpace(req.Condition),
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	s.logger.Info("weather report saved", zap.Uint("id", report.ID), zap.String("city", report.City))
	return &models.SaveResponse{ID: report.ID}, nil
}

// History returns all stored reports for a city, newest first.
func (s *Service) History(ctx context.Context, city string) (*models.HistoryResponse, error) {
	if s.db == nil {
		return nil, ErrStoreUnavailable
	}

	var reports []models.Report
	err := s.db.WithContext(ctx).
		Where("city = ?", city).
		Order("id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	resp := &models.HistoryResponse{
		City: city,
		Data: make([]models.Observation, 0, len(reports)),
	}
	for _, r := range reports {
		resp.Data = append(resp.Data, r.ToObservation())
	}
	return resp, nil
}

// Delete removes a stored report by id.
func (s *Service) Delete(ctx context.Context, id uint) (*models.DeleteResponse, error) {
	if s.db == nil {
		return nil, ErrStoreUnavailable
	}

	result := s.db.WithContext(ctx).Delete(&models.Report{}, id)
	if result.Error != nil {
		return nil, fmt.Errorf("delete report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrNoObservation, id)
	}

	return &models.DeleteResponse{
		Message: fmt.Sprintf("record with id %d deleted successfully", id),
	}, nil
}
