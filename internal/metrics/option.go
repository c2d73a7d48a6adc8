package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	metric2 "go.opentelemetry.io/otel/sdk/metric"
)

type Provider string

const (
	PrometheusProvider Provider = "prometheus"
	OtelCollector      Provider = "otlp-grpc"
	ManualProvider     Provider = "manual"
	InsecureOtel                = true
	SecureOtel                  = false
)

// ParseProvider maps a telemetry.metrics_provider value to a Provider,
// defaulting to PrometheusProvider.
func ParseProvider(name string) Provider {
	if Provider(strings.ToLower(strings.TrimSpace(name))) == OtelCollector {
		return OtelCollector
	}
	return PrometheusProvider
}

func NewOtelCollectorConfig(url string, headers map[string]string, insecure bool) ProviderCfg {
	return ProviderCfg{
		Provider: OtelCollector,
		Endpoint: url,
		Headers:  headers,
		Insecure: insecure,
	}
}

// NewManualConfig registers an explicit reader, typically a
// metric.NewManualReader used to collect in tests.
func NewManualConfig(reader metric2.Reader) ProviderCfg {
	return ProviderCfg{
		Provider: ManualProvider,
		Reader:   reader,
	}
}

type Config struct {
	ServiceName string
	Provider    []ProviderCfg
	Registerer  prometheus.Registerer
}

type ProviderCfg struct {
	Provider Provider
	Endpoint string
	Headers  map[string]string
	Insecure bool
	Reader   metric2.Reader
}

type OptionFn func(config Config) Config

func WithProviderConfig(provider ProviderCfg) OptionFn {
	return func(config Config) Config {
		config.Provider = append(config.Provider, provider)

		return config
	}
}

// WithRegisterer sends prometheus-exported metrics to reg instead of the default registry.
func WithRegisterer(reg prometheus.Registerer) OptionFn {
	return func(config Config) Config {
		config.Registerer = reg

		return config
	}
}

func WithServiceName(serviceName string) OptionFn {
	return func(config Config) Config {
		config.ServiceName = serviceName

		return config
	}
}

type PromServerConfig struct {
	port     string
	gatherer prometheus.Gatherer
}

type PromOptionFn func(config PromServerConfig) PromServerConfig

func WithPort(port string) PromOptionFn {
	return func(config PromServerConfig) PromServerConfig {
		config.port = port
		return config
	}
}

func WithGatherer(g prometheus.Gatherer) PromOptionFn {
	return func(config PromServerConfig) PromServerConfig {
		config.gatherer = g
		return config
	}
}
