// Package domain holds the canonical shipment document and the neutral
// evaluation result exchanged between the engine and output adapters.
// Nothing downstream mutates these values once produced.
package domain

import (
	"fmt"
	"strings"

	dErrors "tarifa/pkg/domain-errors"
)

// Party identifies a sender or recipient on the shipment.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ExtensionField is one key/value pair of open-ended national
// sub-classification data, e.g. the MX NICO sub-code.
type ExtensionField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Item is one commodity line on the shipment.
type Item struct {
	LineID         string           `json:"line_id"`
	Description    string           `json:"description"`
	Classification string           `json:"hs_code"`
	Quantity       float64          `json:"quantity"`
	UnitPrice      float64          `json:"unit_price"`
	Currency       string           `json:"currency"`
	OriginCountry  string           `json:"origin_country"`
	Extensions     []ExtensionField `json:"extensions"`
}

// Extension looks up an extension value by key. First match wins; def is
// returned on miss. Unknown keys are not an error.
func (i Item) Extension(key, def string) string {
	for _, ext := range i.Extensions {
		if ext.Key == key {
			return ext.Value
		}
	}
	return def
}

// CanonicalDocument is the validated, jurisdiction-scoped shipment document
// the evaluation engine consumes.
type CanonicalDocument struct {
	OrgID              string `json:"org_id"`
	Jurisdiction       string `json:"jurisdiction"`
	OriginCountry      string `json:"origin_country"`
	DestinationCountry string `json:"destination_country"`
	Sender             Party  `json:"sender"`
	Recipient          Party  `json:"recipient"`
	Items              []Item `json:"items"`
}

// Validate enforces the boundary contract: identifiers present, non-negative
// quantities and prices, and line IDs unique within the document. An empty
// item list is valid; the engine returns an empty result for it.
func (d CanonicalDocument) Validate() error {
	if strings.TrimSpace(d.OrgID) == "" {
		return dErrors.New(dErrors.CodeValidation, "org_id is required")
	}
	if strings.TrimSpace(d.Jurisdiction) == "" {
		return dErrors.New(dErrors.CodeValidation, "jurisdiction is required")
	}

	seen := make(map[string]bool, len(d.Items))
	for idx, item := range d.Items {
		if strings.TrimSpace(item.LineID) == "" {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("items[%d].line_id is required", idx))
		}
		if seen[item.LineID] {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("items[%d].line_id %q is duplicated", idx, item.LineID))
		}
		seen[item.LineID] = true

		if item.Quantity < 0 {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("items[%d].quantity must be >= 0", idx))
		}
		if item.UnitPrice < 0 {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("items[%d].unit_price must be >= 0", idx))
		}
		if strings.TrimSpace(item.Currency) == "" {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("items[%d].currency is required", idx))
		}
	}
	return nil
}
