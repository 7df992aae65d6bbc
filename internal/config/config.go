package config

import "time"

type Config struct {
	API      APIConfig
	Log      LogConfig
	Location LocationConfig
	Geocoder GeocoderConfig
	Mock     MockConfig
}

type APIConfig struct {
	BaseURL string
	Timeout string
}

// TimeoutDuration parses the configured timeout, falling back to 30s on
// an empty or malformed value.
func (c APIConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

type LogConfig struct {
	Level string
}

type LocationConfig struct {
	Enabled bool
	Lat     float64
	Lon     float64
}

type GeocoderConfig struct {
	BaseURL string
}

type MockConfig struct {
	Port int
}

func defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "30s",
		},
		Log: LogConfig{
			Level: "info",
		},
		Location: LocationConfig{
			Enabled: false,
		},
		Geocoder: GeocoderConfig{
			BaseURL: "https://nominatim.openstreetmap.org",
		},
		Mock: MockConfig{
			Port: 8000,
		},
	}
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/ecoquest/config.json, then applies ECOQUEST_*
// environment variable overrides.
func Load() (Config, error) {
	return loadWith(newFileBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}
