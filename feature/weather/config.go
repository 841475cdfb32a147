package weather

// Config holds configuration for the upstream weather providers.
type Config struct {
	// OpenWeatherMapBaseURL is the OpenWeatherMap current weather endpoint.
	OpenWeatherMapBaseURL string `mapstructure:"openweathermap_base_url" default:"https://api.openweathermap.org/data/2.5/weather"`
	// OpenWeatherMapKey is the OpenWeatherMap API key.
	OpenWeatherMapKey string `mapstructure:"openweathermap_key" default:""`
	// WeatherAPIBaseURL is the WeatherAPI current conditions endpoint.
	WeatherAPIBaseURL string `mapstructure:"weatherapi_base_url" default:"http://api.weatherapi.com/v1/current.json"`
	// WeatherAPIKey is the WeatherAPI API key.
	WeatherAPIKey string `mapstructure:"weatherapi_key" default:""`
	// TimeoutSeconds is the per-call timeout. A single attempt is made, no retries.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
