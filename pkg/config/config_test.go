package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(contents), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when no file exists", func(t *testing.T) {
		t.Setenv("GOV_CONFIG_PATH", t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 1000, cfg.APIListLimitMax)
		assert.Equal(t, 30, cfg.ReportingPeriodDays)
		assert.Equal(t, "@every 15m", cfg.EscalationSchedule)
		assert.Equal(t, 24, cfg.DueSoonWindowHours)
		assert.Equal(t, 1.0, cfg.TrendDeadBand)
		assert.Equal(t, "default", cfg.Source("api_list_limit_max"))
	})

	t.Run("file values override defaults", func(t *testing.T) {
		dir := writeConfigFile(t, `
api_list_limit_max: 250
escalation_schedule: "@every 5m"
risk_level_thresholds:
  high: 85
  medium: 55
`)
		t.Setenv("GOV_CONFIG_PATH", dir)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 250, cfg.APIListLimitMax)
		assert.Equal(t, "@every 5m", cfg.EscalationSchedule)
		assert.Equal(t, 85, cfg.RiskThresholds.High)
		assert.Equal(t, 55, cfg.RiskThresholds.Medium)
		assert.Equal(t, "file", cfg.Source("api_list_limit_max"))
		assert.Equal(t, "file", cfg.Source("risk_level_thresholds"))
		assert.Equal(t, "default", cfg.Source("due_soon_window_hours"))
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := writeConfigFile(t, "api_list_limit_max: 250\n")
		t.Setenv("GOV_CONFIG_PATH", dir)
		t.Setenv("GOV_API_LIST_LIMIT_MAX", "50")
		t.Setenv("GOV_DUE_SOON_WINDOW_HOURS", "6")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 50, cfg.APIListLimitMax)
		assert.Equal(t, 6, cfg.DueSoonWindowHours)
		assert.Equal(t, "environment", cfg.Source("api_list_limit_max"))
		assert.Equal(t, "environment", cfg.Source("due_soon_window_hours"))
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		dir := writeConfigFile(t, "api_list_limit_max: [not a number\n")
		t.Setenv("GOV_CONFIG_PATH", dir)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		dir := writeConfigFile(t, "api_list_limit_max: -1\n")
		t.Setenv("GOV_CONFIG_PATH", dir)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api_list_limit_max must be positive")
	})
}

func TestValidate(t *testing.T) {
	t.Run("inverted risk cutoffs", func(t *testing.T) {
		cfg := newDefault()
		cfg.RiskThresholds.Medium = 90
		cfg.RiskThresholds.High = 80

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "medium cutoff 90 exceeds high cutoff 80")
	})

	t.Run("inverted status cutoffs", func(t *testing.T) {
		cfg := newDefault()
		cfg.StatusThresholds.Warning = 95

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "warning cutoff 95 exceeds healthy cutoff 90")
	})

	t.Run("negative dead band", func(t *testing.T) {
		cfg := newDefault()
		cfg.TrendDeadBand = -0.5
		require.Error(t, cfg.Validate())
	})

	t.Run("zero reporting period", func(t *testing.T) {
		cfg := newDefault()
		cfg.ReportingPeriodDays = 0
		require.Error(t, cfg.Validate())
	})
}

func TestAttributes(t *testing.T) {
	t.Setenv("GOV_CONFIG_PATH", t.TempDir())
	t.Setenv("GOV_ESCALATION_SCHEDULE", "@hourly")

	cfg, err := Load()
	require.NoError(t, err)

	attrs := cfg.Attributes()
	require.Len(t, attrs, 10)

	byName := map[string]Attribute{}
	for _, a := range attrs {
		byName[a.Name] = a
	}
	assert.Equal(t, "1000", byName["api_list_limit_max"].Value)
	assert.Equal(t, "default", byName["api_list_limit_max"].Source)
	assert.Equal(t, "@hourly", byName["escalation_schedule"].Value)
	assert.Equal(t, "environment", byName["escalation_schedule"].Source)
	assert.Equal(t, "low=10 medium=25 high=40", byName["risk_factor_weights"].Value)
	assert.Equal(t, "healthy=90 warning=70", byName["status_thresholds"].Value)
}

func TestPolicyHelpers(t *testing.T) {
	cfg := newDefault()
	cfg.ReportingPeriodDays = 7
	cfg.DueSoonWindowHours = 48

	assert.Equal(t, 7*24*time.Hour, cfg.CompliancePolicy().Period)
	assert.Equal(t, 48*time.Hour, cfg.DueSoonWindow())
	assert.Equal(t, cfg.RiskWeights, cfg.RiskPolicy().Weights)
}
