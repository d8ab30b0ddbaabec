package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	MetricsAddr string

	// RatesBaseURL points at the exchange-rate provider. The path layout
	// follows the Frankfurter API: GET /v1/latest?base=X&symbols=Y.
	RatesBaseURL string
	RatesTimeout time.Duration

	// RuleTableFile optionally overrides the embedded MX rule table.
	RuleTableFile string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("TARIFA_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	metricsAddr := os.Getenv("TARIFA_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	ratesURL := os.Getenv("TARIFA_RATES_URL")
	if ratesURL == "" {
		ratesURL = "https://api.frankfurter.dev"
	}

	ratesTimeout := 10 * time.Second
	if raw := os.Getenv("TARIFA_RATES_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			ratesTimeout = d
		}
	}

	return Server{
		Addr:          addr,
		MetricsAddr:   metricsAddr,
		RatesBaseURL:  ratesURL,
		RatesTimeout:  ratesTimeout,
		RuleTableFile: os.Getenv("TARIFA_RULE_TABLE"),
	}
}
