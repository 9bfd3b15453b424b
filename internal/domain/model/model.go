package model

// Package model holds the entity shapes the backend data API exchanges with
// this service. Field names and JSON tags mirror the API's wire format, so
// gateway payloads decode straight into these types.

import "encoding/json"

// Lake is a monitored lake with its location and display image.
type Lake struct {
	ID        json.Number `json:"id"`
	Name      string      `json:"name"`
	Province  string      `json:"province"`
	City      string      `json:"city"`
	Longitude float64     `json:"longitude"`
	Latitude  float64     `json:"latitude"`
	ImageURL  string      `json:"image_url,omitempty"`
}

// Province is a top-level administrative region used in lake forms.
type Province struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// City belongs to a province.
type City struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// Parameter is a measured limnological variable (pH, dissolved oxygen, ...).
type Parameter struct {
	ID           json.Number `json:"id"`
	Name         string      `json:"name"`
	Unit         string      `json:"unit"`
	Symbol       string      `json:"symbol,omitempty"`
	Abbreviation string      `json:"abbreviation,omitempty"`
}

// Measurement is one sampling event at a lake, carrying a value per
// parameter measured that day.
type Measurement struct {
	MeasurementID   json.Number        `json:"measurement_id"`
	LakeName        string             `json:"lake_name"`
	MeasurementDate string             `json:"measurement_date"`
	Values          []MeasurementValue `json:"values"`
}

// MeasurementValue is a single parameter reading inside a measurement.
type MeasurementValue struct {
	MeasurementValueID json.Number `json:"measurement_value_id"`
	ParameterName      string      `json:"parameter_name"`
	ParameterSymbol    string      `json:"parameter_symbol,omitempty"`
	Value              float64     `json:"value"`
}

// SeriesPoint is one point of a lake/parameter/year series used by the
// charts on the data dashboard.
type SeriesPoint struct {
	Date  string  `json:"measurement_date"`
	Value float64 `json:"value"`
}

// EmailConfig is the SMTP sender configuration. Password is stored
// encrypted by the backend; the decrypt endpoint returns the plaintext for
// display in the admin panel.
type EmailConfig struct {
	ID          json.Number `json:"id"`
	SenderEmail string      `json:"sender_email"`
	SenderName  string      `json:"sender_name"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
}

// AuditEntry is one request logged by the backend.
type AuditEntry struct {
	ID           json.Number `json:"id"`
	UserID       json.Number `json:"user_id"`
	Method       string      `json:"method"`
	Status       int         `json:"status"`
	URL          string      `json:"url"`
	ResponseTime string      `json:"response_time"`
	AnonymizedIP string      `json:"anonymized_ip"`
	CreatedAt    string      `json:"created_at"`
}

// AuditPage is a page of audit entries plus pagination bookkeeping.
type AuditPage struct {
	Logs       []AuditEntry `json:"logs"`
	TotalPages int          `json:"totalPages"`
	TotalCount int          `json:"totalCount"`
}

// Country is used by the sign-up form.
type Country struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}
