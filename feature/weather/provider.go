package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quake-manager/feature/weather/models"

	"go.uber.org/zap"
)

// Source identifies an upstream weather provider.
type Source string

// Supported provider tokens.
const (
	OpenWeatherMap Source = "OPENWEATHERMAP"
	WeatherAPI     Source = "WEATHERAPI"
)

// ParseSource normalizes a source token case-insensitively. SourceDB is not a
// provider and is handled by the service before provider selection.
func ParseSource(raw string) (Source, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(OpenWeatherMap):
		return OpenWeatherMap, nil
	case string(WeatherAPI):
		return WeatherAPI, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidSource, raw)
	}
}

// Provider fetches current conditions from an upstream weather API.
type Provider interface {
	Source() Source
	Current(ctx context.Context, city string) (*models.Observation, error)
}

// NewProvider creates the adapter for a source.
func NewProvider(src Source, cfg Config, logger *zap.Logger) (Provider, error) {
	client := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	switch src {
	case OpenWeatherMap:
		return &openWeatherMap{cfg: cfg, client: client, logger: logger}, nil
	case WeatherAPI:
		return &weatherAPI{cfg: cfg, client: client, logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidSource, src)
	}
}

// AllProviders builds every supported adapter, keyed by source.
func AllProviders(cfg Config, logger *zap.Logger) map[Source]Provider {
	providers := make(map[Source]Provider, 2)
	for _, src := range []Source{OpenWeatherMap, WeatherAPI} {
		p, err := NewProvider(src, cfg, logger)
		if err != nil {
			continue
		}
		providers[src] = p
	}
	return providers
}

func getJSON(ctx context.Context, client *http.Client, baseURL string, params url.Values, out any) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type openWeatherMap struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func (p *openWeatherMap) Source() Source { return OpenWeatherMap }

func (p *openWeatherMap) Current(ctx context.Context, city string) (*models.Observation, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("units", "metric")
	params.Set("appid", p.cfg.OpenWeatherMapKey)

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	}
	if err := getJSON(ctx, p.client, p.cfg.OpenWeatherMapBaseURL, params, &payload); err != nil {
		p.logger.Warn("OpenWeatherMap fetch failed", zap.String("city", city), zap.Error(err))
		return nil, fmt.Errorf("openweathermap: %w", err)
	}

	condition := ""
	if len(payload.Weather) > 0 {
		condition = payload.Weather[0].Main
	}
	return &models.Observation{
		City:        payload.Name,
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		Condition:   condition,
	}, nil
}

type weatherAPI struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func (p *weatherAPI) Source() Source { return WeatherAPI }

func (p *weatherAPI) Current(ctx context.Context, city string) (*models.Observation, error) {
	params := url.Values{}
	params.Set("key", p.cfg.WeatherAPIKey)
	params.Set("q", city)

	var payload struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Current struct {
			TempC     float64 `json:"temp_c"`
			Humidity  float64 `json:"humidity"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := getJSON(ctx, p.client, p.cfg.WeatherAPIBaseURL, params, &payload); err != nil {
		p.logger.Warn("WeatherAPI fetch failed", zap.String("city", city), zap.Error(err))
		return nil, fmt.Errorf("weatherapi: %w", err)
	}

	return &models.Observation{
		City:        payload.Location.Name,
		Temperature: payload.Current.TempC,
		Humidity:    payload.Current.Humidity,
		Condition:   payload.Current.Condition.Text,
	}, nil
}
