package provider

// Config holds configuration for the upstream seismic data providers.
type Config struct {
	// USGSBaseURL is the USGS FDSN event query endpoint.
	USGSBaseURL string `mapstructure:"usgs_base_url" default:"https://earthquake.usgs.gov/fdsnws/event/1/query"`
	// EMSCBaseURL is the EMSC (seismicportal.eu) FDSN event query endpoint.
	EMSCBaseURL string `mapstructure:"emsc_base_url" default:"https://www.seismicportal.eu/fdsnws/event/1/query"`
	// TimeoutSeconds is the per-call timeout. A single attempt is made, no retries.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// WindowDays is the recent-events window requested from the providers.
	WindowDays int `mapstructure:"window_days" default:"30"`
}
