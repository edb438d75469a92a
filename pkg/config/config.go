package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/prabaj-wq/accessgov/pkg/compliance"
	"github.com/prabaj-wq/accessgov/pkg/risk"
)

const (
	DefaultConfigPath = "/etc/accessgov/config"
	ConfigFileName    = "accessgov.yml"
)

// GovConfig holds all governance server configuration settings
type GovConfig struct {
	// APIListLimitMax is the maximum number of results for listing requests
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// RiskWeights are the per-impact factor weights of the risk scorer
	RiskWeights risk.Weights `yaml:"risk_factor_weights" json:"risk_factor_weights"`

	// RiskThresholds are the score cutoffs for the qualitative risk level
	RiskThresholds risk.Thresholds `yaml:"risk_level_thresholds" json:"risk_level_thresholds"`

	// SeverityWeights are the per-severity points a violation subtracts
	// from its framework's compliance score
	SeverityWeights compliance.SeverityWeights `yaml:"severity_weights" json:"severity_weights"`

	// StatusThresholds are the compliance score cutoffs for healthy/warning
	StatusThresholds compliance.StatusThresholds `yaml:"status_thresholds" json:"status_thresholds"`

	// TrendDeadBand is the score delta treated as a stable trend
	TrendDeadBand float64 `yaml:"trend_dead_band" json:"trend_dead_band"`

	// ReportingPeriodDays is the length of a compliance reporting period
	ReportingPeriodDays int `yaml:"reporting_period_days" json:"reporting_period_days"`

	// EscalationSchedule is the cron spec of the overdue-request sweep
	EscalationSchedule string `yaml:"escalation_schedule" json:"escalation_schedule"`

	// DueSoonWindowHours is how far ahead of a due date the notifier warns
	DueSoonWindowHours int `yaml:"due_soon_window_hours" json:"due_soon_window_hours"`

	// ApproverChainsPath points at the static approver chain mapping
	ApproverChainsPath string `yaml:"approver_chains_path" json:"approver_chains_path"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *GovConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *GovConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *GovConfig {
	riskPolicy := risk.DefaultPolicy()
	compliancePolicy := compliance.DefaultPolicy()
	return &GovConfig{
		APIListLimitMax:     1000,
		RiskWeights:         riskPolicy.Weights,
		RiskThresholds:      riskPolicy.Thresholds,
		SeverityWeights:     compliancePolicy.Weights,
		StatusThresholds:    compliancePolicy.Thresholds,
		TrendDeadBand:       compliancePolicy.TrendDeadBand,
		ReportingPeriodDays: 30,
		EscalationSchedule:  "@every 15m",
		DueSoonWindowHours:  24,
		ApproverChainsPath:  "",
		sources:             make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*GovConfig, error) {
	config := newDefault()

	// Initialize all sources as "default"
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	// Determine config file path
	configPath := os.Getenv("GOV_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	// Try to load from config file
	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig GovConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	// Override with environment variables
	config.applyEnvConfig()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func attributeNames() []string {
	return []string{
		"api_list_limit_max", "risk_factor_weights", "risk_level_thresholds",
		"severity_weights", "status_thresholds", "trend_dead_band",
		"reporting_period_days", "escalation_schedule",
		"due_soon_window_hours", "approver_chains_path",
	}
}

func (c *GovConfig) applyFileConfig(file *GovConfig) {
	if file.APIListLimitMax != 0 {
		c.APIListLimitMax = file.APIListLimitMax
		c.sources["api_list_limit_max"] = "file"
	}
	if file.RiskWeights != (risk.Weights{}) {
		c.RiskWeights = file.RiskWeights
		c.sources["risk_factor_weights"] = "file"
	}
	if file.RiskThresholds != (risk.Thresholds{}) {
		c.RiskThresholds = file.RiskThresholds
		c.sources["risk_level_thresholds"] = "file"
	}
	if file.SeverityWeights != (compliance.SeverityWeights{}) {
		c.SeverityWeights = file.SeverityWeights
		c.sources["severity_weights"] = "file"
	}
	if file.StatusThresholds != (compliance.StatusThresholds{}) {
		c.StatusThresholds = file.StatusThresholds
		c.sources["status_thresholds"] = "file"
	}
	if file.TrendDeadBand != 0 {
		c.TrendDeadBand = file.TrendDeadBand
		c.sources["trend_dead_band"] = "file"
	}
	if file.ReportingPeriodDays != 0 {
		c.ReportingPeriodDays = file.ReportingPeriodDays
		c.sources["reporting_period_days"] = "file"
	}
	if file.EscalationSchedule != "" {
		c.EscalationSchedule = file.EscalationSchedule
		c.sources["escalation_schedule"] = "file"
	}
	if file.DueSoonWindowHours != 0 {
		c.DueSoonWindowHours = file.DueSoonWindowHours
		c.sources["due_soon_window_hours"] = "file"
	}
	if file.ApproverChainsPath != "" {
		c.ApproverChainsPath = file.ApproverChainsPath
		c.sources["approver_chains_path"] = "file"
	}
}

func (c *GovConfig) applyEnvConfig() {
	if val := os.Getenv("GOV_API_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIListLimitMax = i
			c.sources["api_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("GOV_TREND_DEAD_BAND"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.TrendDeadBand = f
			c.sources["trend_dead_band"] = "environment"
		}
	}
	if val := os.Getenv("GOV_REPORTING_PERIOD_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ReportingPeriodDays = i
			c.sources["reporting_period_days"] = "environment"
		}
	}
	if val := os.Getenv("GOV_ESCALATION_SCHEDULE"); val != "" {
		c.EscalationSchedule = val
		c.sources["escalation_schedule"] = "environment"
	}
	if val := os.Getenv("GOV_DUE_SOON_WINDOW_HOURS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.DueSoonWindowHours = i
			c.sources["due_soon_window_hours"] = "environment"
		}
	}
	if val := os.Getenv("GOV_APPROVER_CHAINS_PATH"); val != "" {
		c.ApproverChainsPath = val
		c.sources["approver_chains_path"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *GovConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *GovConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Attributes returns every attribute with its effective value and source
func (c *GovConfig) Attributes() []Attribute {
	values := map[string]string{
		"api_list_limit_max": strconv.Itoa(c.APIListLimitMax),
		"risk_factor_weights": fmt.Sprintf("low=%d medium=%d high=%d",
			c.RiskWeights.Low, c.RiskWeights.Medium, c.RiskWeights.High),
		"risk_level_thresholds": fmt.Sprintf("high=%d medium=%d",
			c.RiskThresholds.High, c.RiskThresholds.Medium),
		"severity_weights": fmt.Sprintf("low=%d medium=%d high=%d critical=%d",
			c.SeverityWeights.Low, c.SeverityWeights.Medium, c.SeverityWeights.High, c.SeverityWeights.Critical),
		"status_thresholds": fmt.Sprintf("healthy=%.0f warning=%.0f",
			c.StatusThresholds.Healthy, c.StatusThresholds.Warning),
		"trend_dead_band":       strconv.FormatFloat(c.TrendDeadBand, 'f', -1, 64),
		"reporting_period_days": strconv.Itoa(c.ReportingPeriodDays),
		"escalation_schedule":   c.EscalationSchedule,
		"due_soon_window_hours": strconv.Itoa(c.DueSoonWindowHours),
		"approver_chains_path":  c.ApproverChainsPath,
	}

	attrs := make([]Attribute, 0, len(values))
	for _, name := range attributeNames() {
		attrs = append(attrs, Attribute{Name: name, Value: values[name], Source: c.Source(name)})
	}
	return attrs
}

// RiskPolicy assembles the risk scorer's policy constants
func (c *GovConfig) RiskPolicy() risk.Policy {
	return risk.Policy{Weights: c.RiskWeights, Thresholds: c.RiskThresholds}
}

// CompliancePolicy assembles the aggregator's policy constants
func (c *GovConfig) CompliancePolicy() compliance.Policy {
	return compliance.Policy{
		Weights:       c.SeverityWeights,
		Thresholds:    c.StatusThresholds,
		TrendDeadBand: c.TrendDeadBand,
		Period:        time.Duration(c.ReportingPeriodDays) * 24 * time.Hour,
	}
}

// DueSoonWindow returns the due-soon warning window as a duration
func (c *GovConfig) DueSoonWindow() time.Duration {
	return time.Duration(c.DueSoonWindowHours) * time.Hour
}

// Validate validates the configuration
func (c *GovConfig) Validate() error {
	if c.APIListLimitMax <= 0 {
		return fmt.Errorf("api_list_limit_max must be positive")
	}
	if c.RiskThresholds.Medium > c.RiskThresholds.High {
		return fmt.Errorf("risk_level_thresholds: medium cutoff %d exceeds high cutoff %d",
			c.RiskThresholds.Medium, c.RiskThresholds.High)
	}
	if c.StatusThresholds.Warning > c.StatusThresholds.Healthy {
		return fmt.Errorf("status_thresholds: warning cutoff %.0f exceeds healthy cutoff %.0f",
			c.StatusThresholds.Warning, c.StatusThresholds.Healthy)
	}
	if c.TrendDeadBand < 0 {
		return fmt.Errorf("trend_dead_band must not be negative")
	}
	if c.ReportingPeriodDays <= 0 {
		return fmt.Errorf("reporting_period_days must be positive")
	}
	return nil
}
