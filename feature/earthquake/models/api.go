package models

// NoData is the uniform "nothing to return" response, used both for truly
// empty results and for degraded upstream sources. Error carries transport
// detail and is populated only in the degraded case.
type NoData struct {
	Message string `json:"message"`
	Country string `json:"country"`
	Error   string `json:"error,omitempty"`
}

// NewNoData builds the marker for a given country filter; an empty filter is
// reported as "ALL".
func NewNoData(countryFilter, detail string) *NoData {
	country := countryFilter
	if country == "" {
		country = "ALL"
	}
	return &NoData{
		Message: "no seismic records",
		Country: country,
		Error:   detail,
	}
}

// CoordinateInput accepts either the canonical GeoJSON point shape or the
// legacy {latitude, longitude} pair. All forms converge to [lon, lat] before
// the uniqueness check.
type CoordinateInput struct {
	Type        string     `json:"type,omitempty"`
	Coordinates []*float64 `json:"coordinates,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
}

// Point normalizes the input to ordered longitude/latitude components.
func (c *CoordinateInput) Point() (lon, lat *float64) {
	if c == nil {
		return nil, nil
	}
	if len(c.Coordinates) > 0 {
		lon = c.Coordinates[0]
		if len(c.Coordinates) > 1 {
			lat = c.Coordinates[1]
		}
		return lon, lat
	}
	return c.Longitude, c.Latitude
}

// SaveRequest is the submission body for manual reports and upstream imports.
type SaveRequest struct {
	EventID      string           `json:"eventId"`
	Source       string           `json:"source"`
	Location     string           `json:"location"`
	Country      string           `json:"country"`
	Magnitude    *float64         `json:"magnitude"`
	Depth        *float64         `json:"depth"`
	Date         *Day             `json:"date"`
	Coordinates  *CoordinateInput `json:"coordinates"`
	Longitude    *float64         `json:"longitude"`
	Latitude     *float64         `json:"latitude"`
	Title        string           `json:"title"`
	Region       string           `json:"region"`
	Alert        string           `json:"alert"`
	Significance *int             `json:"significance"`
}

// SaveResponse reports a successful persist.
type SaveResponse struct {
	ID      uint   `json:"id"`
	EventID string `json:"eventId"`
	Message string `json:"message"`
}

// DeleteResponse reports a successful delete.
type DeleteResponse struct {
	Message string `json:"message"`
}

// HistoryEntry is the reduced record shape used in history responses.
type HistoryEntry struct {
	ID        uint    `json:"id"`
	Magnitude float64 `json:"magnitude"`
	Depth     float64 `json:"depth"`
	Location  string  `json:"location"`
	Date      Day     `json:"date"`
	Source    string  `json:"source"`
}

// HistoryResponse is the country history shape. An empty store yields the
// normalized country with an empty Data slice, never a NoData marker.
type HistoryResponse struct {
	Country string         `json:"country"`
	Message string         `json:"message,omitempty"`
	Data    []HistoryEntry `json:"data"`
}
