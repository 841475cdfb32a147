package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"quake-manager/feature/earthquake/country"
	"quake-manager/feature/earthquake/models"

	"go.uber.org/zap"
)

// emscProvider maps the EMSC (seismicportal.eu) feed into canonical events.
type emscProvider struct {
	cfg      Config
	client   *http.Client
	resolver *country.Resolver
	logger   *zap.Logger
}

func newEMSC(cfg Config, resolver *country.Resolver, logger *zap.Logger) *emscProvider {
	return &emscProvider{
		cfg:      cfg,
		client:   newHTTPClient(cfg),
		resolver: resolver,
		logger:   logger,
	}
}

func (p *emscProvider) Source() Source { return EMSC }

// FetchRecent requests the recent window from EMSC, newest first.
func (p *emscProvider) FetchRecent(ctx context.Context, limit int) RecentResult {
	params := url.Values{
		"format":    {"json"},
		"limit":     {strconv.Itoa(limit)},
		"orderby":   {"time-desc"},
		"starttime": {windowStart(p.cfg)},
	}

	body, err := get(ctx, p.client, p.cfg.EMSCBaseURL, params)
	if err != nil {
		p.logger.Warn("EMSC fetch failed", zap.Error(err))
		return RecentResult{Status: StatusUnavailable, Detail: "error connecting to EMSC: " + err.Error()}
	}

	var payload emscResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		p.logger.Warn("EMSC payload malformed", zap.Error(err))
		return RecentResult{Status: StatusUnavailable, Detail: "malformed EMSC payload: " + err.Error()}
	}

	if len(payload.Features) == 0 {
		return RecentResult{Status: StatusEmpty, Raw: body}
	}

	events := make([]models.Event, 0, len(payload.Features))
	for _, f := range payload.Features {
		events = append(events, p.mapFeature(f))
	}
	return RecentResult{Events: events, Status: StatusOK, Raw: body}
}

// FetchByID scans the most recent events for the identifier; EMSC has no
// reliable direct per-event lookup on this endpoint.
func (p *emscProvider) FetchByID(ctx context.Context, eventID string) (*models.Event, error) {
	recent := p.FetchRecent(ctx, idScanLimit)
	if recent.Status == StatusUnavailable {
		return nil, errUnavailable(EMSC, recent.Detail)
	}
	return findByID(recent.Events, eventID), nil
}

func (p *emscProvider) mapFeature(f emscFeature) models.Event {
	props := f.Properties
	coords := f.Geometry.Coordinates

	var lon, lat *float64
	if len(coords) > 0 {
		lon = coords[0]
	}
	if len(coords) > 1 {
		lat = coords[1]
	}

	// Depth comes from the properties; the geometry's third component is the
	// fallback. EMSC reports negative depths for some shallow events.
	var depth float64
	if props.Depth != nil {
		depth = *props.Depth
	} else if len(coords) > 2 && coords[2] != nil {
		depth = *coords[2]
	}

	location := props.FlynnRegion
	if location == "" {
		location = props.Description
	}
	if location == "" {
		location = "unknown location"
	}

	var magnitude float64
	if props.Mag != nil {
		magnitude = *props.Mag
	}

	var date models.Day
	if props.Time != "" {
		if t, err := time.Parse(time.RFC3339, props.Time); err == nil {
			date = models.NewDay(t.UTC())
		}
	}

	eventID := f.ID
	if eventID == "" {
		eventID = props.Unid
	}

	ev := models.Event{
		EventID:     eventID,
		Source:      models.SourceEMSC,
		Location:    location,
		Country:     p.resolver.Resolve(location),
		Magnitude:   magnitude,
		Depth:       depth,
		Date:        date,
		Coordinates: models.NewGeoPoint(lon, lat),
	}

	if flags := ev.RangeFlags(); len(flags) > 0 {
		p.logger.Warn("EMSC event outside expected ranges",
			zap.String("event_id", ev.EventID),
			zap.Strings("flags", flags),
		)
	}
	return ev
}

// EMSC response types.

type emscResponse struct {
	Features []emscFeature `json:"features"`
}

type emscFeature struct {
	ID         string `json:"id"`
	Properties struct {
		Mag         *float64 `json:"mag"`
		Depth       *float64 `json:"depth"`
		FlynnRegion string   `json:"flynn_region"`
		Description string   `json:"description"`
		Time        string   `json:"time"`
		Unid        string   `json:"unid"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []*float64 `json:"coordinates"` // [lon, lat, depth]
	} `json:"geometry"`
}
