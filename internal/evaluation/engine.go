// Package evaluation implements the rule evaluation engine: it computes
// duties, fees, VAT, and triggered regulatory measures over a canonical
// shipment document and records an ordered evidence trail explaining every
// number it produced.
package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tarifa/internal/currency"
	"tarifa/internal/domain"
	"tarifa/internal/evaluation/metrics"
	"tarifa/internal/tables"
	"tarifa/internal/tax"
	dErrors "tarifa/pkg/domain-errors"
)

// Evidence rule identifiers, in the order they can appear in a trail.
const (
	RuleExchangeRate  = "exchange_rate.lookup"
	RuleDutyLookup    = "duty.lookup"
	RuleMeasureLookup = "measure.lookup"
	RuleFee           = "fee.apply_standard_rate"
	RuleVAT           = "vat.on_base_plus_duties"
)

// Engine evaluates canonical documents against one jurisdiction's rule table.
// It is stateless per call: the table is read-only after construction and the
// rate provider is the only side-effecting dependency, invoked at most once
// per evaluation.
type Engine struct {
	table   *tables.RuleTable
	rates   currency.Provider
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New constructs an engine for the given rule table and rate provider.
// Logger and metrics may be nil.
func New(table *tables.RuleTable, rates currency.Provider, logger *slog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		table:   table,
		rates:   rates,
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("tarifa/evaluation"),
	}
}

// Evaluate runs the full rule set over doc and returns the neutral result.
//
// A structurally valid but empty document yields an empty result, never an
// error. A currency provider fault aborts the whole evaluation with no
// partial result or partial evidence; the error carries
// CodeConversionFailed wrapped in CodeEvaluationFailed.
func (e *Engine) Evaluate(ctx context.Context, doc domain.CanonicalDocument) (*domain.NeutralEvaluationResult, error) {
	ctx, span := e.tracer.Start(ctx, "evaluation.evaluate",
		trace.WithAttributes(
			attribute.String("jurisdiction", e.table.Jurisdiction),
			attribute.Int("items", len(doc.Items)),
		),
	)
	defer span.End()

	result := &domain.NeutralEvaluationResult{
		Taxes:    []domain.Tax{},
		Measures: []domain.Measure{},
		Evidence: []domain.EvidenceEntry{},
	}
	if len(doc.Items) == 0 {
		return result, nil
	}

	// The whole shipment is assumed single-currency; the first item's
	// currency speaks for the document.
	baseCurrency := doc.Items[0].Currency
	target := e.table.SettlementCurrency

	rateStart := time.Now()
	exchangeRate, err := currency.Convert(ctx, e.rates, baseCurrency, target)
	e.metrics.ObserveRateLookupLatency(time.Since(rateStart))
	if err != nil {
		conv := dErrors.Wrap(err, dErrors.CodeConversionFailed,
			fmt.Sprintf("exchange rate %s->%s unavailable", baseCurrency, target))
		return nil, dErrors.Wrap(conv, dErrors.CodeEvaluationFailed, "evaluation aborted")
	}

	// One evidence entry regardless of whether a conversion occurred, so the
	// trail always starts with the working rate.
	result.Evidence = append(result.Evidence, domain.EvidenceEntry{
		Rule: RuleExchangeRate,
		Inputs: map[string]any{
			"base_currency":   baseCurrency,
			"target_currency": target,
		},
		Outputs: map[string]any{"exchange_rate": exchangeRate},
	})

	var totalCustomsValue float64
	var totalDuty float64

	for _, item := range doc.Items {
		itemValue := item.Quantity * item.UnitPrice
		customsValue := tax.Round2(itemValue * exchangeRate)
		totalCustomsValue += customsValue

		subCode := item.Extension(e.table.SubCodeKey, "")

		dutyRate := e.table.TariffRate(item.Classification, subCode)
		dutyAmount := tax.AdValorem(customsValue, dutyRate)
		if dutyAmount > 0 {
			totalDuty += dutyAmount
			result.Taxes = append(result.Taxes, domain.Tax{
				Name:      fmt.Sprintf("%s (Item %s)", e.table.DutyName, item.LineID),
				Kind:      domain.TaxKindDuty,
				BaseValue: customsValue,
				Rate:      dutyRate,
				Amount:    dutyAmount,
			})
			// Zero-rate and no-match lookups leave no evidence: the trail
			// records charges actually assessed, asymmetric with the
			// currency step.
			result.Evidence = append(result.Evidence, domain.EvidenceEntry{
				Rule: RuleDutyLookup,
				Inputs: map[string]any{
					"line_id":             item.LineID,
					"classification_code": item.Classification,
					"sub_code":            subCode,
				},
				Outputs: map[string]any{"amount": dutyAmount},
			})
		}

		for _, measure := range e.table.MatchingMeasures(item.Classification, subCode) {
			result.Measures = append(result.Measures, domain.Measure{
				Name:        measure.Name,
				Description: measure.Description,
				Authority:   measure.Authority,
			})
			result.Evidence = append(result.Evidence, domain.EvidenceEntry{
				Rule: RuleMeasureLookup,
				Inputs: map[string]any{
					"line_id":             item.LineID,
					"classification_code": item.Classification,
				},
				Outputs: map[string]any{"measure": measure.Name},
			})
		}
	}

	feeAmount := tax.AdValorem(totalCustomsValue, e.table.Fee.Rate)
	if feeAmount > 0 {
		result.Taxes = append(result.Taxes, domain.Tax{
			Name:      e.table.Fee.Name,
			Kind:      domain.TaxKindFee,
			BaseValue: totalCustomsValue,
			Rate:      e.table.Fee.Rate,
			Amount:    feeAmount,
		})
		result.Evidence = append(result.Evidence, domain.EvidenceEntry{
			Rule:    RuleFee,
			Inputs:  map[string]any{"total_customs_value": totalCustomsValue},
			Outputs: map[string]any{"amount": feeAmount},
		})
	}

	// Cascading base: VAT is charged on value plus already-assessed duty and
	// fee.
	vatBase := totalCustomsValue + totalDuty + feeAmount
	vatAmount := tax.AdValorem(vatBase, e.table.VAT.StandardRate)
	if vatAmount > 0 {
		result.Taxes = append(result.Taxes, domain.Tax{
			Name:      e.table.VAT.Name,
			Kind:      domain.TaxKindVAT,
			BaseValue: tax.Round2(vatBase),
			Rate:      e.table.VAT.StandardRate,
			Amount:    vatAmount,
		})
		result.Evidence = append(result.Evidence, domain.EvidenceEntry{
			Rule:    RuleVAT,
			Inputs:  map[string]any{"base": tax.Round2(vatBase)},
			Outputs: map[string]any{"amount": vatAmount},
		})
	}

	if e.logger != nil {
		e.logger.DebugContext(ctx, "document evaluated",
			"jurisdiction", e.table.Jurisdiction,
			"items", len(doc.Items),
			"taxes", len(result.Taxes),
			"measures", len(result.Measures),
		)
	}
	return result, nil
}
