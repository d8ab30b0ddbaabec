package pedimento

import (
	"fmt"

	"tarifa/internal/domain"
	"tarifa/internal/evaluation"
	"tarifa/internal/tax"
)

// Placeholder identifiers for demo headers until a party registry exists.
const (
	placeholderImporterRFC  = "ABC123456789"
	placeholderAgentPatente = "3000"
)

const subCodeKey = "MX_NICO"

// Adapter builds pedimento A1 declarations from neutral results. It is pure
// and best-effort: missing taxes or evidence resolve to zero / 1.0 rather
// than failing.
type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

// Adapt implements jurisdiction.Adapter.
func (a *Adapter) Adapt(neutral *domain.NeutralEvaluationResult, doc domain.CanonicalDocument) (any, error) {
	return a.Build(neutral, doc), nil
}

// Build assembles the declaration. One line per document item; duty
// contributions are resolved per line, while the shipment-level DTA and IVA
// are carried on the first line (they are not prorated). Totals aggregate by
// tax kind, so line-qualified duty names sum correctly for multi-item
// documents.
func (a *Adapter) Build(neutral *domain.NeutralEvaluationResult, doc domain.CanonicalDocument) *Declaration {
	byName := make(map[string]float64, len(neutral.Taxes))
	totals := Totals{}
	for _, t := range neutral.Taxes {
		byName[t.Name] = t.Amount
		switch t.Kind {
		case domain.TaxKindDuty:
			totals.TotalIGI += t.Amount
		case domain.TaxKindFee:
			totals.TotalDTA += t.Amount
		case domain.TaxKindVAT:
			totals.TotalIVA += t.Amount
		}
		totals.TotalPaid += t.Amount
	}

	exchangeRate := exchangeRateFromEvidence(neutral.Evidence)
	measuresByLine := measuresFromEvidence(neutral.Evidence)

	lines := make([]LineItem, 0, len(doc.Items))
	for idx, item := range doc.Items {
		nico := item.Extension(subCodeKey, "00")

		contributions := map[string]float64{
			"IGI": byName[fmt.Sprintf("IGI (Item %s)", item.LineID)],
			"DTA": 0,
			"IVA": 0,
		}
		if idx == 0 {
			contributions["DTA"] = byName["DTA"]
			contributions["IVA"] = byName["IVA"]
		}

		regulations := make([]Regulation, 0, len(measuresByLine[item.LineID]))
		for _, name := range measuresByLine[item.LineID] {
			regulations = append(regulations, Regulation{Code: name})
		}

		lines = append(lines, LineItem{
			LineID:               item.LineID,
			FraccionArancelaria:  fmt.Sprintf("%s.%s", item.Classification, nico),
			Description:          item.Description,
			CustomsValueMXN:      tax.Round2(item.Quantity * item.UnitPrice * exchangeRate),
			Contributions:        contributions,
			NonTariffRegulations: regulations,
		})
	}

	return &Declaration{
		Header: Header{
			PedimentoType:       "A1",
			Jurisdiction:        "MX",
			ImporterRFC:         placeholderImporterRFC,
			CustomsAgentPatente: placeholderAgentPatente,
		},
		LineItems: lines,
		Totals:    totals,
	}
}

// exchangeRateFromEvidence extracts the working rate from the currency
// evidence entry, defaulting to 1.0 when the entry or its output is absent.
func exchangeRateFromEvidence(evidence []domain.EvidenceEntry) float64 {
	for _, entry := range evidence {
		if entry.Rule != evaluation.RuleExchangeRate {
			continue
		}
		if rate, ok := entry.Outputs["exchange_rate"].(float64); ok {
			return rate
		}
	}
	return 1.0
}

// measuresFromEvidence ties triggered measures back to the lines that
// triggered them via the measure lookup evidence.
func measuresFromEvidence(evidence []domain.EvidenceEntry) map[string][]string {
	byLine := make(map[string][]string)
	for _, entry := range evidence {
		if entry.Rule != evaluation.RuleMeasureLookup {
			continue
		}
		lineID, ok := entry.Inputs["line_id"].(string)
		if !ok {
			continue
		}
		if name, ok := entry.Outputs["measure"].(string); ok {
			byLine[lineID] = append(byLine[lineID], name)
		}
	}
	return byLine
}
