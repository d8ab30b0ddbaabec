package domain

// TaxKind classifies a computed charge. The values double as wire strings so
// adapters and clients see stable names.
type TaxKind string

const (
	TaxKindDuty TaxKind = "Import Duty"
	TaxKindFee  TaxKind = "Customs Fee"
	TaxKindVAT  TaxKind = "VAT"
)

// Tax is one computed charge. Name may embed a line reference to
// disambiguate per-item duties ("IGI (Item L1)").
// Invariant: Amount == round(BaseValue * Rate, 2) for ad-valorem kinds.
type Tax struct {
	Name      string  `json:"name"`
	Kind      TaxKind `json:"tax_type"`
	BaseValue float64 `json:"base_value"`
	Rate      float64 `json:"rate"`
	Amount    float64 `json:"amount"`
}

// Measure is a non-tariff regulatory obligation triggered by a
// classification match.
type Measure struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Authority   string `json:"authority"`
}

// EvidenceEntry is one append-only audit record: which rule fired, what it
// read, what it produced. Entries appear in evaluation order so the trail
// reconstructs the computation narrative.
type EvidenceEntry struct {
	Rule    string         `json:"rule"`
	Inputs  map[string]any `json:"inputs"`
	Outputs map[string]any `json:"outputs"`
}

// NeutralEvaluationResult is the jurisdiction-neutral outcome of evaluating a
// canonical document. Immutable once produced; adapters only read it.
type NeutralEvaluationResult struct {
	Taxes    []Tax           `json:"taxes"`
	Measures []Measure       `json:"measures"`
	Evidence []EvidenceEntry `json:"evidence"`
}
