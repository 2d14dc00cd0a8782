package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"stomach_capacity_ml": 1500,
		"default_calorie_limit": 1800,
		"vision_model": "gemini-2.0-flash",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 1500.0, cfg.StomachCapacityML)
	assert.Equal(t, 1800, cfg.DefaultCalorieLimit)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(tmpFile)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults are valid", Defaults(), false},
		{"zero config is valid", Config{}, false},
		{"negative capacity", Config{StomachCapacityML: -1}, true},
		{"negative calorie limit", Config{DefaultCalorieLimit: -5}, true},
		{"port out of range", Config{Port: 70000}, true},
		{"negative vision timeout", Config{VisionTimeoutSeconds: -1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9999}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9999, merged.Port, "explicit value wins")
	assert.Equal(t, 1350.0, merged.StomachCapacityML)
	assert.Equal(t, 2000, merged.DefaultCalorieLimit)
	assert.Equal(t, "gemini-2.0-flash", merged.VisionModel)
	assert.Equal(t, 15, merged.VisionTimeoutSeconds)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("STOMACH_CAPACITY_ML", "1200")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := Defaults()
	cfg.ApplyEnv()

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, 1200.0, cfg.StomachCapacityML)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestApplyEnvIgnoresUnparsable(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg := Defaults()
	cfg.ApplyEnv()
	assert.Equal(t, 8080, cfg.Port)
}
