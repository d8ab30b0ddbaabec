// Package tables holds the immutable, jurisdiction-specific reference data
// the engine evaluates against: tariff rates, non-tariff measures, the flat
// customs-processing fee, and the VAT rule. A RuleTable is constructed once
// (from the embedded default or a YAML file) and shared read-only across
// concurrent evaluations; nothing mutates it after load.
package tables

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TariffEntry maps a (classification_code, sub_code) pair to an ad-valorem
// duty rate.
type TariffEntry struct {
	Classification string  `yaml:"classification_code"`
	SubCode        string  `yaml:"sub_code"`
	Rate           float64 `yaml:"rate"`
}

// MeasureEntry maps a (classification_code, sub_code) pair to a non-tariff
// regulatory obligation. A pair may carry zero, one, or many entries.
type MeasureEntry struct {
	Classification string `yaml:"classification_code"`
	SubCode        string `yaml:"sub_code"`
	Name           string `yaml:"measure_name"`
	Description    string `yaml:"description"`
	Authority      string `yaml:"authority"`
}

// FeeRule is the shipment-level flat processing fee, ad-valorem on total
// customs value.
type FeeRule struct {
	Name string  `yaml:"name"`
	Rate float64 `yaml:"rate"`
}

// VATRule is the shipment-level VAT, charged on customs value plus
// already-assessed duty and fee.
type VATRule struct {
	Name         string  `yaml:"name"`
	StandardRate float64 `yaml:"standard_rate"`
}

// RuleTable is one jurisdiction's complete rule set.
type RuleTable struct {
	Jurisdiction       string `yaml:"jurisdiction"`
	SettlementCurrency string `yaml:"settlement_currency"`

	// DutyName is the display name for per-item duties ("IGI"). SubCodeKey
	// names the extension field carrying the national sub-code ("MX_NICO").
	DutyName   string `yaml:"duty_name"`
	SubCodeKey string `yaml:"sub_code_key"`

	Tariffs  []TariffEntry  `yaml:"tariffs"`
	Measures []MeasureEntry `yaml:"measures"`
	Fee      FeeRule        `yaml:"fee"`
	VAT      VATRule        `yaml:"vat"`
}

// TariffRate resolves the duty rate for a classification pair by exact match.
// First matching entry wins; a miss is duty-free (0.0). Table integrity
// (duplicate entries) is the table owner's responsibility, not validated
// here.
func (t *RuleTable) TariffRate(classification, subCode string) float64 {
	for _, entry := range t.Tariffs {
		if entry.Classification == classification && entry.SubCode == subCode {
			return entry.Rate
		}
	}
	return 0.0
}

// MatchingMeasures returns every measure triggered by the classification
// pair, in table order.
func (t *RuleTable) MatchingMeasures(classification, subCode string) []MeasureEntry {
	var matched []MeasureEntry
	for _, entry := range t.Measures {
		if entry.Classification == classification && entry.SubCode == subCode {
			matched = append(matched, entry)
		}
	}
	return matched
}

//go:embed mx_a1.yaml
var mxA1 []byte

// DefaultMX returns the embedded MX (pedimento A1) rule table.
func DefaultMX() (*RuleTable, error) {
	return parse(mxA1)
}

// Load reads a rule table from a YAML file, for deployments that override the
// embedded default.
func Load(path string) (*RuleTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule table %s: %w", path, err)
	}
	return parse(raw)
}

func parse(raw []byte) (*RuleTable, error) {
	var t RuleTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parsing rule table: %w", err)
	}
	if t.Jurisdiction == "" {
		return nil, fmt.Errorf("rule table missing jurisdiction")
	}
	if t.SettlementCurrency == "" {
		return nil, fmt.Errorf("rule table missing settlement_currency")
	}
	return &t, nil
}
