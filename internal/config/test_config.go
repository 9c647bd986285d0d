package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:         "http://127.0.0.1:0",
			RequestTimeout:  2 * time.Second,
			ResourceTimeout: 5 * time.Second,
			UserAgent:       "phishwise-test/1.0",
			ListLimit:       30,
		},
		UI:   defaultConfig().UI,
		Keys: defaultConfig().Keys,
		Log:  LogConfig{Level: "off"},
	}
}
