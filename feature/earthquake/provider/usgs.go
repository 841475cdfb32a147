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

// usgsProvider maps the USGS GeoJSON feed into canonical events.
type usgsProvider struct {
	cfg      Config
	client   *http.Client
	resolver *country.Resolver
	logger   *zap.Logger
}

func newUSGS(cfg Config, resolver *country.Resolver, logger *zap.Logger) *usgsProvider {
	return &usgsProvider{
		cfg:      cfg,
		client:   newHTTPClient(cfg),
		resolver: resolver,
		logger:   logger,
	}
}

func (p *usgsProvider) Source() Source { return USGS }

// FetchRecent requests the recent window from USGS, newest first.
func (p *usgsProvider) FetchRecent(ctx context.Context, limit int) RecentResult {
	params := url.Values{
		"format":    {"geojson"},
		"limit":     {strconv.Itoa(limit)},
		"orderby":   {"time"},
		"starttime": {windowStart(p.cfg)},
	}

	body, err := get(ctx, p.client, p.cfg.USGSBaseURL, params)
	if err != nil {
		p.logger.Warn("USGS fetch failed", zap.Error(err))
		return RecentResult{Status: StatusUnavailable, Detail: "error connecting to USGS: " + err.Error()}
	}

	var payload usgsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		p.logger.Warn("USGS payload malformed", zap.Error(err))
		return RecentResult{Status: StatusUnavailable, Detail: "malformed USGS payload: " + err.Error()}
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

// FetchByID first attempts a direct provider query by identifier, then falls
// back to scanning the most recent events.
func (p *usgsProvider) FetchByID(ctx context.Context, eventID string) (*models.Event, error) {
	params := url.Values{
		"format":  {"geojson"},
		"eventid": {eventID},
	}

	// The direct lookup answers 404 for unknown identifiers, so a failure
	// here falls through to the recent-window scan.
	if body, err := get(ctx, p.client, p.cfg.USGSBaseURL, params); err == nil {
		var payload usgsResponse
		if err := json.Unmarshal(body, &payload); err == nil && len(payload.Features) > 0 {
			ev := p.mapFeature(payload.Features[0])
			return &ev, nil
		}
	}

	recent := p.FetchRecent(ctx, idScanLimit)
	if recent.Status == StatusUnavailable {
		return nil, errUnavailable(USGS, recent.Detail)
	}
	return findByID(recent.Events, eventID), nil
}

func (p *usgsProvider) mapFeature(f usgsFeature) models.Event {
	props := f.Properties
	coords := f.Geometry.Coordinates

	var lon, lat *float64
	var depth float64
	if len(coords) > 0 {
		lon = coords[0]
	}
	if len(coords) > 1 {
		lat = coords[1]
	}
	if len(coords) > 2 && coords[2] != nil {
		depth = *coords[2]
	}

	location := props.Place
	if location == "" {
		location = "unknown location"
	}

	var magnitude float64
	if props.Mag != nil {
		magnitude = *props.Mag
	}

	var date models.Day
	if props.Time != nil {
		date = models.NewDay(time.UnixMilli(*props.Time).UTC())
	}

	eventID := f.ID
	if eventID == "" {
		eventID = props.Code
	}

	ev := models.Event{
		EventID:      eventID,
		Source:       models.SourceUSGS,
		Location:     location,
		Country:      p.resolver.Resolve(props.Place),
		Magnitude:    magnitude,
		Depth:        depth,
		Date:         date,
		Coordinates:  models.NewGeoPoint(lon, lat),
		URL:          props.URL,
		Title:        props.Title,
		Alert:        props.Alert,
		Significance: props.Sig,
	}

	if flags := ev.RangeFlags(); len(flags) > 0 {
		p.logger.Warn("USGS event outside expected ranges",
			zap.String("event_id", ev.EventID),
			zap.Strings("flags", flags),
		)
	}
	return ev
}

// USGS GeoJSON response types.

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string `json:"id"`
	Properties struct {
		Mag   *float64 `json:"mag"`
		Place string   `json:"place"`
		Time  *int64   `json:"time"` // epoch milliseconds
		URL   string   `json:"url"`
		Title string   `json:"title"`
		Alert string   `json:"alert"`
		Sig   *int     `json:"sig"`
		Code  string   `json:"code"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []*float64 `json:"coordinates"` // [lon, lat, depth]
	} `json:"geometry"`
}
