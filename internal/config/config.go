package config

import (
	"fmt"
	"os"
)

const (
	GrafanaURL    = "GRAFANA_URL"
	GrafanaAPIKey = "GRAFANA_API_KEY"
)

// Config holds the Grafana connection settings needed to push generated
// dashboards. It is only loaded when provisioning is requested.
type Config struct {
	URL    string
	APIKey string
}

func LoadConfig() (*Config, error) {
	url := os.Getenv(GrafanaURL)
	if url == "" {
		return nil, fmt.Errorf("environment variable `%s` not set", GrafanaURL)
	}
	apiKey := os.Getenv(GrafanaAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable `%s` not set", GrafanaAPIKey)
	}
	return &Config{URL: url, APIKey: apiKey}, nil
}
