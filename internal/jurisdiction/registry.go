// Package jurisdiction routes requests to the rule set registered for a
// jurisdiction code. Adding a jurisdiction means registering an
// {Evaluator, Adapter} pair, not branching on code strings.
package jurisdiction

import (
	"context"
	"fmt"
	"strings"

	"tarifa/internal/domain"
	dErrors "tarifa/pkg/domain-errors"
)

// Evaluator computes the neutral result for a canonical document.
type Evaluator interface {
	Evaluate(ctx context.Context, doc domain.CanonicalDocument) (*domain.NeutralEvaluationResult, error)
}

// Adapter projects a neutral result into a jurisdiction-specific declaration
// document. Implementations are pure and best-effort: once evaluation has
// succeeded, adaptation defaults missing values instead of failing.
type Adapter interface {
	Adapt(neutral *domain.NeutralEvaluationResult, doc domain.CanonicalDocument) (any, error)
}

// Entry pairs the capabilities registered for one jurisdiction.
type Entry struct {
	Evaluator Evaluator
	Adapter   Adapter
}

// Registry maps jurisdiction codes to entries. Registration happens at wiring
// time in main; lookups afterward are read-only and safe for concurrent use.
type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register binds a jurisdiction code (case-insensitive) to its capabilities.
func (r *Registry) Register(code string, entry Entry) {
	r.entries[strings.ToUpper(code)] = entry
}

// Lookup resolves a jurisdiction code. An unknown code is a client error; no
// partial processing is attempted.
func (r *Registry) Lookup(code string) (Entry, error) {
	entry, ok := r.entries[strings.ToUpper(code)]
	if !ok {
		return Entry{}, dErrors.New(dErrors.CodeUnsupportedJurisdiction,
			fmt.Sprintf("jurisdiction %q is not supported", code))
	}
	return entry, nil
}
