// Package pedimento projects a neutral evaluation result into a simplified
// MX pedimento A1 declaration.
package pedimento

// Declaration is the MX customs declaration document returned to clients.
type Declaration struct {
	Header    Header     `json:"header"`
	LineItems []LineItem `json:"line_items"`
	Totals    Totals     `json:"totals"`
}

// Header carries the declaration-level identifiers. Importer and agent
// fields are static placeholders until a party registry exists.
type Header struct {
	PedimentoType       string `json:"pedimento_type"`
	Jurisdiction        string `json:"jurisdiction"`
	ImporterRFC         string `json:"importer_rfc"`
	CustomsAgentPatente string `json:"customs_agent_patente"`
}

// LineItem is one declared commodity line.
type LineItem struct {
	LineID               string             `json:"line_id"`
	FraccionArancelaria  string             `json:"fraccion_arancelaria"`
	Description          string             `json:"description"`
	CustomsValueMXN      float64            `json:"customs_value_mxn"`
	Contributions        map[string]float64 `json:"contributions"`
	NonTariffRegulations []Regulation       `json:"non_tariff_regulations"`
}

// Regulation references a triggered non-tariff measure by its code.
type Regulation struct {
	Code string `json:"code"`
}

// Totals sums the resolved contributions per tax and overall.
type Totals struct {
	TotalIGI  float64 `json:"total_igi"`
	TotalDTA  float64 `json:"total_dta"`
	TotalIVA  float64 `json:"total_iva"`
	TotalPaid float64 `json:"total_paid"`
}
