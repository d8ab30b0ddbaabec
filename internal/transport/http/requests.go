package httptransport

import (
	"strings"

	"tarifa/internal/domain"
	dErrors "tarifa/pkg/domain-errors"
)

// EvaluateRequest is the HTTP request body for POST /evaluate: a canonical
// shipment document.
type EvaluateRequest struct {
	domain.CanonicalDocument
}

// Validate normalizes and validates the document at the service boundary.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Jurisdiction = strings.ToUpper(strings.TrimSpace(r.Jurisdiction))
	return r.CanonicalDocument.Validate()
}

// Document returns the validated canonical document.
func (r *EvaluateRequest) Document() domain.CanonicalDocument {
	return r.CanonicalDocument
}

// AdaptRequest is the HTTP request body for POST /adapt.
type AdaptRequest struct {
	Jurisdiction  string                         `json:"jurisdiction"`
	NeutralResult domain.NeutralEvaluationResult `json:"neutral_result"`
	CanonicalDoc  domain.CanonicalDocument       `json:"canonical_doc"`
}

// Validate checks the adaptation envelope. The neutral result itself is
// trusted: it was produced by a prior successful evaluation.
func (r *AdaptRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Jurisdiction = strings.ToUpper(strings.TrimSpace(r.Jurisdiction))
	if r.Jurisdiction == "" {
		return dErrors.New(dErrors.CodeValidation, "jurisdiction is required")
	}
	return nil
}
