// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds runtime settings. All fields are optional; missing values use
// defaults or environment variables.
type Config struct {
	// Server
	Port int `json:"port,omitempty"`

	// Stomach model
	StomachCapacityML float64 `json:"stomach_capacity_ml,omitempty"`

	// Optimization
	DefaultCalorieLimit int `json:"default_calorie_limit,omitempty"`

	// Vision
	GeminiAPIKey         string `json:"gemini_api_key,omitempty"`
	VisionModel          string `json:"vision_model,omitempty"`
	VisionTimeoutSeconds int    `json:"vision_timeout_seconds,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                 8080,
		StomachCapacityML:    1350,
		DefaultCalorieLimit:  2000,
		VisionModel:          "gemini-2.0-flash",
		VisionTimeoutSeconds: 15,
	}
}

// LoadConfig loads configuration from a JSON file. Returns an error if the
// file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0,65535]")
	}
	if c.StomachCapacityML < 0 {
		return fmt.Errorf("config error: 'stomach_capacity_ml' must be non-negative")
	}
	if c.DefaultCalorieLimit < 0 {
		return fmt.Errorf("config error: 'default_calorie_limit' must be non-negative")
	}
	if c.VisionTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'vision_timeout_seconds' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.StomachCapacityML == 0 {
		result.StomachCapacityML = defaults.StomachCapacityML
	}
	if result.DefaultCalorieLimit == 0 {
		result.DefaultCalorieLimit = defaults.DefaultCalorieLimit
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.VisionModel == "" {
		result.VisionModel = defaults.VisionModel
	}
	if result.VisionTimeoutSeconds == 0 {
		result.VisionTimeoutSeconds = defaults.VisionTimeoutSeconds
	}
	return result
}

// ApplyEnv overlays environment variables onto the config. Environment values
// win over file values so deployments can override without editing files.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("STOMACH_CAPACITY_ML"); v != "" {
		if ml, err := strconv.ParseFloat(v, 64); err == nil {
			c.StomachCapacityML = ml
		}
	}
	if v := os.Getenv("DEFAULT_CALORIE_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			c.DefaultCalorieLimit = limit
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("VISION_MODEL"); v != "" {
		c.VisionModel = v
	}
	if v := os.Getenv("VISION_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.VisionTimeoutSeconds = secs
		}
	}
}
