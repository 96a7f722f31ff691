package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
)

// Manager loads and validates engine configuration using Viper.
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager, loading configuration from
// file, environment, and defaults.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources.
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/evidence-pooler/")

	viper.SetEnvPrefix("PHARMA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and environment cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values.
func (m *Manager) setDefaults() {
	// Analysis defaults
	viper.SetDefault("analysis.confidence", 0.95)
	viper.SetDefault("analysis.pooling_method", string(domain.InverseVariance))
	viper.SetDefault("analysis.assume_randomization", true)
	viper.SetDefault("analysis.assume_blinding", true)
	viper.SetDefault("analysis.assume_intent_to_treat", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration.
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetAnalysisConfig returns the analysis configuration.
func (m *Manager) GetAnalysisConfig() *domain.AnalysisConfig {
	return &m.config.Analysis
}

// Reload reloads the configuration.
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration.
func (m *Manager) Validate() error {
	config := m.config

	if config.Analysis.Confidence <= 0 || config.Analysis.Confidence >= 1 {
		return fmt.Errorf("invalid confidence level: %f", config.Analysis.Confidence)
	}

	if !domain.PoolingMethod(config.Analysis.PoolingMethod).IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidPoolingMethod, config.Analysis.PoolingMethod)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[strings.ToLower(config.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s", config.Logging.Format)
	}

	return nil
}
