package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"quake-manager/feature/earthquake/country"
	"quake-manager/feature/earthquake/models"

	"go.uber.org/zap"
)

// Source identifies an upstream seismic data provider.
type Source string

const (
	// USGS is the United States Geological Survey feed.
	USGS Source = "USGS"
	// EMSC is the European-Mediterranean Seismological Centre feed.
	EMSC Source = "EMSC"
)

// Status distinguishes the three outcomes of a recent-events fetch.
type Status int

const (
	// StatusOK means the provider returned at least one event.
	StatusOK Status = iota
	// StatusEmpty means the provider answered but had no matching events.
	StatusEmpty
	// StatusUnavailable means the provider could not be reached or returned
	// an unusable payload.
	StatusUnavailable
)

// RecentResult carries the outcome of a recent-events fetch. Empty and
// Unavailable stay distinct states; Detail is populated only for Unavailable.
// Raw holds the unparsed provider payload for archival.
type RecentResult struct {
	Events []models.Event
	Status Status
	Detail string
	Raw    []byte
}

// Provider translates one upstream feed into canonical events.
type Provider interface {
	// Source returns the provider's identity.
	Source() Source
	// FetchRecent returns events from the provider's recent window, newest
	// first, bounded by limit. Transport failures degrade to StatusUnavailable
	// instead of an error.
	FetchRecent(ctx context.Context, limit int) RecentResult
	// FetchByID looks up a single event by its provider identifier. A nil
	// event without error means not found; an error means the provider could
	// not be consulted.
	FetchByID(ctx context.Context, eventID string) (*models.Event, error)
}

// New selects the provider implementation for a source token.
func New(src Source, cfg Config, resolver *country.Resolver, logger *zap.Logger) (Provider, error) {
	switch src {
	case USGS:
		return newUSGS(cfg, resolver, logger), nil
	case EMSC:
		return newEMSC(cfg, resolver, logger), nil
	default:
		return nil, fmt.Errorf("unknown provider source: %s", src)
	}
}

// All builds every known provider, keyed by source.
func All(cfg Config, resolver *country.Resolver, logger *zap.Logger) map[Source]Provider {
	return map[Source]Provider{
		USGS: newUSGS(cfg, resolver, logger),
		EMSC: newEMSC(cfg, resolver, logger),
	}
}

// idScanLimit bounds the recent-events scan used by FetchByID fallbacks.
const idScanLimit = 100

func newHTTPClient(cfg Config) *http.Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &http.Client{Timeout: time.Duration(timeout) * time.Second}
}

// windowStart formats the start of the recent window as YYYY-MM-DD.
func windowStart(cfg Config) string {
	days := cfg.WindowDays
	if days <= 0 {
		days = 30
	}
	return time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
}

// get performs a single GET with query parameters and returns the body.
// Non-2xx responses and transport errors both surface as errors; there is no
// retry, the providers are treated as unreliable by design.
func get(ctx context.Context, client *http.Client, baseURL string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// errUnavailable describes a provider that could not be consulted at all.
func errUnavailable(src Source, detail string) error {
	return fmt.Errorf("%s unavailable: %s", src, detail)
}

// findByID scans the most recent events for a matching identifier.
func findByID(events []models.Event, eventID string) *models.Event {
	for i := range events {
		if events[i].EventID == eventID {
			return &events[i]
		}
	}
	return nil
}
