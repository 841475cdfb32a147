package models

import "time"

// Earthquake is the persistent form of a canonical event.
// EventID carries the unique index that is the authoritative guard against
// duplicate imports; the service's pre-check only exists to avoid needless
// duplicate-key failures.
type Earthquake struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventID      string    `gorm:"column:event_id;size:64;uniqueIndex" json:"eventId"`
	Source       string    `gorm:"size:16;index" json:"source"`
	Location     string    `gorm:"size:500" json:"location"`
	Country      string    `gorm:"size:100;index:idx_country_date,priority:1" json:"country"`
	Magnitude    float64   `json:"magnitude"`
	Depth        float64   `json:"depth"`
	Date         time.Time `gorm:"index:idx_country_date,priority:2" json:"date"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	URL          string    `gorm:"size:500" json:"url,omitempty"`
	Title        string    `gorm:"size:300" json:"title,omitempty"`
	Region       string    `gorm:"size:200" json:"region,omitempty"`
	Alert        string    `gorm:"size:16" json:"alert,omitempty"`
	Significance *int      `json:"significance,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName overrides the table name.
func (Earthquake) TableName() string {
	return "earthquakes"
}

// ToEvent converts the persistent record back into the canonical shape.
func (r Earthquake) ToEvent() Event {
	return Event{
		EventID:      r.EventID,
		Source:       r.Source,
		Location:     r.Location,
		Country:      r.Country,
		Magnitude:    r.Magnitude,
		Depth:        r.Depth,
		Date:         NewDay(r.Date),
		Coordinates:  NewGeoPoint(r.Longitude, r.Latitude),
		URL:          r.URL,
		Title:        r.Title,
		Region:       r.Region,
		Alert:        r.Alert,
		Significance: r.Significance,
	}
}

// ToHistoryEntry projects the record into the reduced history shape.
func (r Earthquake) ToHistoryEntry() HistoryEntry {
	return HistoryEntry{
		ID:        r.ID,
		Magnitude: r.Magnitude,
		Depth:     r.Depth,
		Location:  r.Location,
		Date:      NewDay(r.Date),
		Source:    r.Source,
	}
}
