package models

import "time"

// Report is a stored weather observation for a city.
type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	City        string    `gorm:"size:100;index" json:"city"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Condition   string    `gorm:"size:100" json:"condition"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name.
func (Report) TableName() string {
	return "weather_reports"
}

// Observation is the normalized current-conditions shape shared by the
// remote providers and the local store. ID is set only for stored reports.
type Observation struct {
	ID          uint    `json:"id,omitempty"`
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Condition   string  `json:"condition"`
}

// ToObservation converts the stored report into the shared shape.
func (r Report) ToObservation() Observation {
	return Observation{
		ID:          r.ID,
		City:        r.City,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Condition:   r.Condition,
	}
}

// SaveRequest is the submission body for manual weather reports.
type SaveRequest struct {
	City        string   `json:"city"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Condition   string   `json:"condition"`
}

// SaveResponse reports a successful persist.
type SaveResponse struct {
	ID uint `json:"id"`
}

// DeleteResponse reports a successful delete.
type DeleteResponse struct {
	Message string `json:"message"`
}

// HistoryResponse is the city history shape.
type HistoryResponse struct {
	City string        `json:"city"`
	Data []Observation `json:"data"`
}
