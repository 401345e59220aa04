package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suma737/webharness/internal/config"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := config.NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "webharness", cfg.Logger.ServiceName)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, int64(1280), cfg.Browser.ViewportWidth)
	assert.Equal(t, 30*time.Second, cfg.Browser.NavigationTimeout)
	assert.Equal(t, 5*time.Second, cfg.Browser.ActionTimeout)

	assert.Equal(t, "results", cfg.Reporting.ResultsDir)
	assert.False(t, cfg.AI.Enabled)
}

func TestReportingConfig_Dirs(t *testing.T) {
	r := config.ReportingConfig{ResultsDir: "results", AppName: "shop"}
	assert.Equal(t, "results/shop/error-logs", r.LogDir())
	assert.Equal(t, "results/shop/error-screenshots", r.ScreenshotDir())
}

func TestNewConfigFromViper_Overrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("browser.headless", false)
	v.Set("browser.action_timeout", "2s")
	v.Set("reporting.app_name", "shop")

	cfg, err := config.NewConfigFromViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 2*time.Second, cfg.Browser.ActionTimeout)
	assert.Equal(t, "shop", cfg.Reporting.AppName)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *viper.Viper)
		wantErr string
	}{
		{
			name:    "zero viewport",
			mutate:  func(v *viper.Viper) { v.Set("browser.viewport_width", 0) },
			wantErr: "viewport",
		},
		{
			name:    "zero action timeout",
			mutate:  func(v *viper.Viper) { v.Set("browser.action_timeout", "0s") },
			wantErr: "action_timeout",
		},
		{
			name:    "empty results dir",
			mutate:  func(v *viper.Viper) { v.Set("reporting.results_dir", "") },
			wantErr: "results_dir",
		},
		{
			name:    "ai enabled without key",
			mutate:  func(v *viper.Viper) { v.Set("ai.enabled", true) },
			wantErr: "API key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WEBHARNESS_AI_API_KEY", "")
			v := viper.New()
			config.SetDefaults(v)
			tt.mutate(v)

			_, err := config.NewConfigFromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAIConfig_ValidWithKey(t *testing.T) {
	t.Setenv("WEBHARNESS_AI_API_KEY", "test-key")
	v := viper.New()
	config.SetDefaults(v)
	v.Set("ai.enabled", true)

	cfg, err := config.NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
}
