package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Clients and infrastructure layers
// return these (optionally wrapped) so engines can translate them into domain
// errors.
//
// These represent factual states about external resources, not validation
// failures:
// - ErrUnavailable: provider unreachable or timed out
// - ErrSymbolMissing: provider answered but omitted the requested symbol
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrUnavailable   = errors.New("unavailable")
	ErrSymbolMissing = errors.New("symbol missing")
)
