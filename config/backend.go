package config

import "time"

// BackendConfig contains the backend data API configuration. All entity
// data (lakes, parameters, measurements, users) lives behind this API; this
// service holds no database of its own.
type BackendConfig struct {
	// APIURL is the absolute base URL of the backend API,
	// e.g. "https://api.limnolab.org/api/".
	APIURL string `env:"API_URL,required"`

	// Timeout bounds each backend request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}
