// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Tokens     TokensConfig     `mapstructure:"tokens"`
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
	Boost      BoostConfig      `mapstructure:"boost"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// TokensConfig identifies the governance token.
type TokensConfig struct {
	REGAddress string `mapstructure:"reg_address"`
	REGSymbol  string `mapstructure:"reg_symbol"`
	Network    string `mapstructure:"network"`
}

// REGAddressHex returns the REG address as common.Address.
func (c *TokensConfig) REGAddressHex() common.Address {
	return common.HexToAddress(c.REGAddress)
}

// Output formats supported by the CLI.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// EvaluationConfig holds batch evaluation settings.
type EvaluationConfig struct {
	Workers int    `mapstructure:"workers"`
	Format  string `mapstructure:"format"`
}

// BoostConfig holds the per-DEX boost settings, keyed by lower-case DEX name.
type BoostConfig struct {
	Dexs map[string]DexBoostSettings `mapstructure:"dexs"`
}

// DexBoostSettings is the raw per-DEX boost block. Exactly one of Legacy or
// Default must be set; V3 is only meaningful alongside Default.
type DexBoostSettings struct {
	Legacy  *LegacyBoostSettings `mapstructure:"legacy"`
	Default map[string]float64   `mapstructure:"default"`
	V3      *V3BoostSettings     `mapstructure:"v3"`
}

// LegacyBoostSettings pairs token symbols with flat multipliers.
type LegacyBoostSettings struct {
	Tokens  []string  `mapstructure:"tokens"`
	Factors []float64 `mapstructure:"factors"`
}

// V3BoostSettings configures the concentrated-liquidity boost. Pointer fields
// distinguish "absent" from zero so validation can name missing parameters.
type V3BoostSettings struct {
	SourceValue       string         `mapstructure:"source_value"`
	Mode              string         `mapstructure:"mode"`
	DecayFormula      string         `mapstructure:"decay_formula"`
	MaxBoost          *float64       `mapstructure:"max_boost"`
	MinBoost          *float64       `mapstructure:"min_boost"`
	InactiveBoost     *float64       `mapstructure:"inactive_boost"`
	Exponent          *float64       `mapstructure:"exponent"`
	RangeWidthFactor  *float64       `mapstructure:"range_width_factor"`
	DecaySlices       *float64       `mapstructure:"decay_slices"`
	DecaySlicesUp     *float64       `mapstructure:"decay_slices_up"`
	DecaySlicesDown   *float64       `mapstructure:"decay_slices_down"`
	SliceWidth        *float64       `mapstructure:"slice_width"`
	OutOfRangeEnabled *bool          `mapstructure:"out_of_range_enabled"`
	Steps             []StepSettings `mapstructure:"steps"`
}

// StepSettings is one threshold/multiplier pair of a step decay.
type StepSettings struct {
	Threshold float64 `mapstructure:"threshold"`
	Boost     float64 `mapstructure:"boost"`
}

// ThresholdDecimal returns the threshold as decimal.Decimal.
func (s StepSettings) ThresholdDecimal() decimal.Decimal {
	return decimal.NewFromFloat(s.Threshold)
}

// BoostDecimal returns the multiplier as decimal.Decimal.
func (s StepSettings) BoostDecimal() decimal.Decimal {
	return decimal.NewFromFloat(s.Boost)
}

// FactorsDecimal returns legacy factors as decimal.Decimal slice.
func (c *LegacyBoostSettings) FactorsDecimal() []decimal.Decimal {
	result := make([]decimal.Decimal, len(c.Factors))
	for i, f := range c.Factors {
		result[i] = decimal.NewFromFloat(f)
	}
	return result
}

// DefaultDecimal returns the default multipliers keyed by upper-case symbol.
// Viper lower-cases map keys, so symbols are normalized here.
func (c *DexBoostSettings) DefaultDecimal() map[string]decimal.Decimal {
	result := make(map[string]decimal.Decimal, len(c.Default))
	for sym, f := range c.Default {
		result[strings.ToUpper(sym)] = decimal.NewFromFloat(f)
	}
	return result
}

// OptionalDecimal converts an optional float to decimal.NullDecimal.
func OptionalDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	ServiceName     string `mapstructure:"service_name"`
	TraceProvider   string `mapstructure:"trace_provider"`
	MetricsProvider string `mapstructure:"metrics_provider"`
	OTLPEndpoint    string `mapstructure:"otlp_endpoint"`
	OTLPHeaders     string `mapstructure:"otlp_headers"`
	PrometheusPort  int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("VP")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "VP_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "VP_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "VP_LOG_LEVEL", "LOG_LEVEL")

	// Tokens
	v.BindEnv("tokens.reg_address", "VP_REG_ADDRESS")
	v.BindEnv("tokens.network", "VP_NETWORK")

	// Evaluation
	v.BindEnv("evaluation.workers", "VP_WORKERS")
	v.BindEnv("evaluation.format", "VP_FORMAT")

	// Telemetry
	v.BindEnv("telemetry.enabled", "VP_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "VP_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "VP_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("telemetry.otlp_headers", "VP_OTEL_HEADERS", "OTEL_EXPORTER_OTLP_HEADERS")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "reg-voting-power")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// REG on Gnosis Chain
	v.SetDefault("tokens.reg_address", "0x0aa1e96d2a46ec6beb2923de1e61addf5f5f1dce")
	v.SetDefault("tokens.reg_symbol", "REG")
	v.SetDefault("tokens.network", "gnosis")

	// Evaluation defaults
	v.SetDefault("evaluation.workers", runtime.NumCPU())
	v.SetDefault("evaluation.format", FormatJSON)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "reg-voting-power")
	v.SetDefault("telemetry.trace_provider", "console")
	v.SetDefault("telemetry.metrics_provider", "prometheus")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration. Boost parameters are checked per
// mode and formula when they are resolved, not here.
func (c *Config) Validate() error {
	if !common.IsHexAddress(c.Tokens.REGAddress) {
		return fmt.Errorf("invalid tokens.reg_address: %s", c.Tokens.REGAddress)
	}
	if c.Tokens.REGSymbol == "" {
		return fmt.Errorf("tokens.reg_symbol is required")
	}
	if c.Evaluation.Workers < 1 {
		return fmt.Errorf("evaluation.workers must be >= 1, got %d", c.Evaluation.Workers)
	}
	switch c.Evaluation.Format {
	case FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("invalid evaluation.format: %s", c.Evaluation.Format)
	}

	for name, dex := range c.Boost.Dexs {
		if err := dex.validate(); err != nil {
			return fmt.Errorf("boost.dexs.%s: %w", name, err)
		}
	}
	return nil
}

func (d *DexBoostSettings) validate() error {
	hasLegacy := d.Legacy != nil
	hasDefault := len(d.Default) > 0

	switch {
	case hasLegacy && (hasDefault || d.V3 != nil):
		return fmt.Errorf("legacy cannot be combined with default or v3")
	case !hasLegacy && !hasDefault:
		return fmt.Errorf("either legacy or default is required")
	case hasLegacy && len(d.Legacy.Tokens) != len(d.Legacy.Factors):
		return fmt.Errorf("legacy tokens and factors differ in length (%d vs %d)",
			len(d.Legacy.Tokens), len(d.Legacy.Factors))
	}
	return nil
}
