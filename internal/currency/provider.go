// Package currency isolates the one side-effecting dependency of the
// evaluation path: the external exchange-rate provider. The engine's numeric
// logic stays testable by injecting a stub Provider.
package currency

import (
	"context"
	"strings"
)

// Provider returns the exchange rate from base to target. Implementations may
// block; callers treat the lookup as a single bounded call and decide their
// own retry policy. The engine never retries.
type Provider interface {
	Rate(ctx context.Context, base, target string) (float64, error)
}

// Convert resolves the base->target rate. Equal currencies short-circuit to
// 1.0 without touching the provider, case-insensitively, so same-currency
// shipments never depend on provider availability.
func Convert(ctx context.Context, p Provider, base, target string) (float64, error) {
	if strings.EqualFold(base, target) {
		return 1.0, nil
	}
	return p.Rate(ctx, base, target)
}

// Fixed is a deterministic Provider for tests and local runs, keyed
// "BASE/TARGET" in upper case.
type Fixed struct {
	Rates map[string]float64
}

func (f Fixed) Rate(_ context.Context, base, target string) (float64, error) {
	key := strings.ToUpper(base) + "/" + strings.ToUpper(target)
	rate, ok := f.Rates[key]
	if !ok {
		return 0, &LookupError{Base: base, Target: target, Reason: "no fixed rate configured"}
	}
	return rate, nil
}
