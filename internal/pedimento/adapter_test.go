package pedimento

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarifa/internal/domain"
	"tarifa/internal/evaluation"
)

func twoItemDocument() domain.CanonicalDocument {
	return domain.CanonicalDocument{
		OrgID:        "org-1",
		Jurisdiction: "MX",
		Items: []domain.Item{
			{
				LineID:         "L1",
				Description:    "Sports footwear",
				Classification: "640411",
				Quantity:       10,
				UnitPrice:      5,
				Currency:       "MXN",
				Extensions:     []domain.ExtensionField{{Key: "MX_NICO", Value: "01"}},
			},
			{
				LineID:         "L2",
				Description:    "Cotton t-shirt",
				Classification: "610910",
				Quantity:       4,
				UnitPrice:      25,
				Currency:       "MXN",
			},
		},
	}
}

func twoItemNeutral() *domain.NeutralEvaluationResult {
	return &domain.NeutralEvaluationResult{
		Taxes: []domain.Tax{
			{Name: "IGI (Item L1)", Kind: domain.TaxKindDuty, BaseValue: 50.00, Rate: 0.10, Amount: 5.00},
			{Name: "IGI (Item L2)", Kind: domain.TaxKindDuty, BaseValue: 100.00, Rate: 0.20, Amount: 20.00},
			{Name: "DTA", Kind: domain.TaxKindFee, BaseValue: 150.00, Rate: 0.0008, Amount: 0.12},
			{Name: "IVA", Kind: domain.TaxKindVAT, BaseValue: 175.12, Rate: 0.16, Amount: 28.02},
		},
		Measures: []domain.Measure{
			{Name: "NOM-020-SCFI-1997", Description: "Etiquetado de cuero y calzado", Authority: "Secretaria de Economia"},
		},
		Evidence: []domain.EvidenceEntry{
			{
				Rule:    evaluation.RuleExchangeRate,
				Inputs:  map[string]any{"base_currency": "MXN", "target_currency": "MXN"},
				Outputs: map[string]any{"exchange_rate": 1.0},
			},
			{
				Rule:    evaluation.RuleMeasureLookup,
				Inputs:  map[string]any{"line_id": "L1", "classification_code": "640411"},
				Outputs: map[string]any{"measure": "NOM-020-SCFI-1997"},
			},
		},
	}
}

func TestBuildMultiItemDeclaration(t *testing.T) {
	decl := NewAdapter().Build(twoItemNeutral(), twoItemDocument())

	t.Run("header uses the A1 layout", func(t *testing.T) {
		assert.Equal(t, "A1", decl.Header.PedimentoType)
		assert.Equal(t, "MX", decl.Header.Jurisdiction)
		assert.NotEmpty(t, decl.Header.ImporterRFC)
	})

	t.Run("one line per document item", func(t *testing.T) {
		require.Len(t, decl.LineItems, 2)
		assert.Equal(t, "L1", decl.LineItems[0].LineID)
		assert.Equal(t, "L2", decl.LineItems[1].LineID)
	})

	t.Run("fraccion combines classification and NICO", func(t *testing.T) {
		assert.Equal(t, "640411.01", decl.LineItems[0].FraccionArancelaria)
		// Missing NICO extension defaults to 00.
		assert.Equal(t, "610910.00", decl.LineItems[1].FraccionArancelaria)
	})

	t.Run("line-qualified duties resolve per line", func(t *testing.T) {
		assert.InDelta(t, 5.00, decl.LineItems[0].Contributions["IGI"], 1e-9)
		assert.InDelta(t, 20.00, decl.LineItems[1].Contributions["IGI"], 1e-9)
	})

	t.Run("shipment-level charges ride the first line", func(t *testing.T) {
		assert.InDelta(t, 0.12, decl.LineItems[0].Contributions["DTA"], 1e-9)
		assert.InDelta(t, 28.02, decl.LineItems[0].Contributions["IVA"], 1e-9)
		assert.Zero(t, decl.LineItems[1].Contributions["DTA"])
		assert.Zero(t, decl.LineItems[1].Contributions["IVA"])
	})

	t.Run("totals aggregate by tax kind across lines", func(t *testing.T) {
		assert.InDelta(t, 25.00, decl.Totals.TotalIGI, 1e-9)
		assert.InDelta(t, 0.12, decl.Totals.TotalDTA, 1e-9)
		assert.InDelta(t, 28.02, decl.Totals.TotalIVA, 1e-9)
		assert.InDelta(t, 53.14, decl.Totals.TotalPaid, 1e-9)
	})

	t.Run("measures attach to the triggering line", func(t *testing.T) {
		require.Len(t, decl.LineItems[0].NonTariffRegulations, 1)
		assert.Equal(t, "NOM-020-SCFI-1997", decl.LineItems[0].NonTariffRegulations[0].Code)
		assert.Empty(t, decl.LineItems[1].NonTariffRegulations)
	})
}

func TestBuildDefaults(t *testing.T) {
	t.Run("missing exchange-rate evidence defaults to 1.0", func(t *testing.T) {
		neutral := &domain.NeutralEvaluationResult{}
		decl := NewAdapter().Build(neutral, twoItemDocument())

		require.Len(t, decl.LineItems, 2)
		assert.InDelta(t, 50.00, decl.LineItems[0].CustomsValueMXN, 1e-9)
	})

	t.Run("missing taxes default to zero, never an error", func(t *testing.T) {
		decl := NewAdapter().Build(&domain.NeutralEvaluationResult{}, twoItemDocument())

		assert.Zero(t, decl.Totals.TotalIGI)
		assert.Zero(t, decl.Totals.TotalPaid)
		assert.Zero(t, decl.LineItems[0].Contributions["IGI"])
	})

	t.Run("empty document yields empty line items", func(t *testing.T) {
		decl := NewAdapter().Build(&domain.NeutralEvaluationResult{}, domain.CanonicalDocument{})
		assert.Empty(t, decl.LineItems)
	})

	t.Run("cross-currency values scale by the evidence rate", func(t *testing.T) {
		neutral := &domain.NeutralEvaluationResult{
			Evidence: []domain.EvidenceEntry{{
				Rule:    evaluation.RuleExchangeRate,
				Outputs: map[string]any{"exchange_rate": 17.5},
			}},
		}
		decl := NewAdapter().Build(neutral, twoItemDocument())
		assert.InDelta(t, 875.00, decl.LineItems[0].CustomsValueMXN, 1e-9)
	})
}
