package models

import (
	"fmt"
	"strings"
	"time"
)

// Source tokens for canonical events.
const (
	SourceUSGS  = "USGS"
	SourceEMSC  = "EMSC"
	SourceLocal = "LOCAL"
)

// SourceDB is the query token for the local store; it is a query routing
// value, never a stored source.
const SourceDB = "DB"

// IsUpstreamSource reports whether the token names one of the external feeds.
func IsUpstreamSource(source string) bool {
	switch source {
	case SourceUSGS, SourceEMSC:
		return true
	default:
		return false
	}
}

// Day is a calendar date serialized as YYYY-MM-DD.
// It accepts both plain dates and full RFC 3339 timestamps on input, so the
// full event timestamp is retained at normalization time while list responses
// stay at day granularity.
type Day struct {
	time.Time
}

// NewDay wraps a timestamp.
func NewDay(t time.Time) Day {
	return Day{Time: t}
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.UTC().Format("2006-01-02") + `"`), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", raw)
}

// GeoPoint is a GeoJSON point. Coordinates are ordered [longitude, latitude];
// missing components are null, never a default numeric value.
type GeoPoint struct {
	Type        string      `json:"type"`
	Coordinates [2]*float64 `json:"coordinates"`
}

// NewGeoPoint builds a point from optional longitude/latitude components.
func NewGeoPoint(lon, lat *float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]*float64{lon, lat}}
}

// Longitude returns the first ordered component.
func (p GeoPoint) Longitude() *float64 { return p.Coordinates[0] }

// Latitude returns the second ordered component.
func (p GeoPoint) Latitude() *float64 { return p.Coordinates[1] }

// Event is the canonical seismic record shared across all sources.
type Event struct {
	EventID      string   `json:"eventId,omitempty"`
	Source       string   `json:"source"`
	Location     string   `json:"location"`
	Country      string   `json:"country"`
	Magnitude    float64  `json:"magnitude"`
	Depth        float64  `json:"depth"`
	Date         Day      `json:"date"`
	Coordinates  GeoPoint `json:"coordinates"`
	URL          string   `json:"url,omitempty"`
	Title        string   `json:"title,omitempty"`
	Region       string   `json:"region,omitempty"`
	Alert        string   `json:"alert,omitempty"`
	Significance *int     `json:"significance,omitempty"`
}

// RangeFlags returns human-readable notes for values outside the domain's
// expected ranges. Upstream records carrying such values are logged, manual
// submissions are rejected.
func (e Event) RangeFlags() []string {
	var flags []string
	if e.Magnitude < 0 || e.Magnitude > 10 {
		flags = append(flags, fmt.Sprintf("magnitude %.2f outside [0,10]", e.Magnitude))
	}
	if e.Depth < 0 || e.Depth > 1000 {
		flags = append(flags, fmt.Sprintf("depth %.2f outside [0,1000] km", e.Depth))
	}
	if lon := e.Coordinates.Longitude(); lon != nil && (*lon < -180 || *lon > 180) {
		flags = append(flags, fmt.Sprintf("longitude %.4f outside [-180,180]", *lon))
	}
	if lat := e.Coordinates.Latitude(); lat != nil && (*lat < -90 || *lat > 90) {
		flags = append(flags, fmt.Sprintf("latitude %.4f outside [-90,90]", *lat))
	}
	return flags
}

// ToRecord converts the canonical event into its persistent form.
func (e Event) ToRecord() Earthquake {
	return Earthquake{
		EventID:      e.EventID,
		Source:       e.Source,
		Location:     e.Location,
		Country:      e.Country,
		Magnitude:    e.Magnitude,
		Depth:        e.Depth,
		Date:         e.Date.Time,
		Longitude:    e.Coordinates.Longitude(),
		Latitude:     e.Coordinates.Latitude(),
		URL:          e.URL,
		Title:        e.Title,
		Region:       e.Region,
		Alert:        e.Alert,
		Significance: e.Significance,
	}
}
