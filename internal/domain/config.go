package domain

// Config is the complete engine configuration, populated by the viper-backed
// configuration manager.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnalysisConfig controls the statistical defaults of the pooling engine.
type AnalysisConfig struct {
	// Confidence is the confidence level for per-study Wilson intervals.
	Confidence float64 `mapstructure:"confidence"`
	// PoolingMethod selects the weighting scheme for proportion pooling.
	PoolingMethod string `mapstructure:"pooling_method"`

	// Assumed methodological flags passed to quality assessment when the
	// source record does not state them. The upstream extraction filters
	// to RCTs, hence the optimistic defaults; deployments ingesting
	// observational data should set these to false.
	AssumeRandomization bool `mapstructure:"assume_randomization"`
	AssumeBlinding      bool `mapstructure:"assume_blinding"`
	AssumeIntentToTreat bool `mapstructure:"assume_intent_to_treat"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
