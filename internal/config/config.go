package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API  APIConfig `mapstructure:"api"`
	UI   UIConfig  `mapstructure:"ui"`
	Keys KeyConfig `mapstructure:"keys"`
	Log  LogConfig `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// RequestTimeout bounds the wait for response headers; ResourceTimeout
	// bounds the whole exchange including a streaming body. The first must
	// not exceed the second.
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ResourceTimeout time.Duration `mapstructure:"resource_timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
	ListLimit       int           `mapstructure:"list_limit"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
	Warning   string `mapstructure:"warning"`
}

type KeyConfig struct {
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit     string `mapstructure:"quit"`
	Today    string `mapstructure:"today"`
	Latest   string `mapstructure:"latest"`
	Dates    string `mapstructure:"dates"`
	Refresh  string `mapstructure:"refresh"`
	OpenLink string `mapstructure:"open_link"`
	Filter   string `mapstructure:"filter"`
	Back     string `mapstructure:"back"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:         "https://phishing-news-api.fly.dev",
			RequestTimeout:  25 * time.Second,
			ResourceTimeout: 60 * time.Second,
			UserAgent:       "phishwise/1.0 (https://github.com/phishwise/phishwise)",
			ListLimit:       30,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#5EEAD4",
				Secondary: "#818CF8",
				Accent:    "#F472B6",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#EF4444",
				Success:   "#10B981",
				Warning:   "#FBBF24",
			},
		},
		Keys: KeyConfig{
			Bindings: KeyBindings{
				Quit:     "q",
				Today:    "t",
				Latest:   "l",
				Dates:    "d",
				Refresh:  "r",
				OpenLink: "o",
				Filter:   "f",
				Back:     "esc",
			},
		},
		Log: LogConfig{
			Level: "off",
			Path:  "",
		},
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("keys", cfg.Keys)
	v.SetDefault("log", cfg.Log)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "phishwise")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PHISHWISE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.API.RequestTimeout > config.API.ResourceTimeout {
		return nil, fmt.Errorf("api.request_timeout (%s) must not exceed api.resource_timeout (%s)",
			config.API.RequestTimeout, config.API.ResourceTimeout)
	}

	config.Log.Path = expandPath(config.Log.Path)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Convert durations to strings for TOML readability
	apiCfg := map[string]interface{}{
		"base_url":         config.API.BaseURL,
		"request_timeout":  config.API.RequestTimeout.String(),
		"resource_timeout": config.API.ResourceTimeout.String(),
		"user_agent":       config.API.UserAgent,
		"list_limit":       config.API.ListLimit,
	}

	v.Set("api", apiCfg)
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)
	v.Set("log", config.Log)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
