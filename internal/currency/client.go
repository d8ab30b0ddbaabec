package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tarifa/pkg/platform/sentinel"
)

// DefaultTimeout bounds the provider call. The engine performs at most one
// lookup per evaluation, before any per-item work.
const DefaultTimeout = 10 * time.Second

// LookupError reports a failed rate lookup. It wraps a sentinel describing
// the infrastructure fact (unreachable vs. symbol missing) so the engine can
// classify it.
type LookupError struct {
	Base   string
	Target string
	Reason string
	cause  error
}

func (e *LookupError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("exchange rate %s->%s: %s: %v", e.Base, e.Target, e.Reason, e.cause)
	}
	return fmt.Sprintf("exchange rate %s->%s: %s", e.Base, e.Target, e.Reason)
}

func (e *LookupError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return sentinel.ErrUnavailable
}

// Client queries a Frankfurter-style rate API:
//
//	GET {baseURL}/v1/latest?base=USD&symbols=MXN -> {"rates": {"MXN": 17.1}}
//
// Any non-2xx response or a response missing the requested symbol is a hard
// failure; the caller aborts the whole evaluation.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// NewClient builds a rate client. A zero timeout falls back to
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tracer:  otel.Tracer("tarifa/currency"),
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Rate implements Provider against the external API.
func (c *Client) Rate(ctx context.Context, base, target string) (float64, error) {
	base = strings.ToUpper(base)
	target = strings.ToUpper(target)

	ctx, span := c.tracer.Start(ctx, "currency.rate",
		trace.WithAttributes(
			attribute.String("currency.base", base),
			attribute.String("currency.target", target),
		),
	)
	defer span.End()

	u := fmt.Sprintf("%s/v1/latest?base=%s&symbols=%s", c.baseURL, url.QueryEscape(base), url.QueryEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, &LookupError{Base: base, Target: target, Reason: "building request", cause: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &LookupError{Base: base, Target: target, Reason: "provider unreachable", cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &LookupError{
			Base:   base,
			Target: target,
			Reason: fmt.Sprintf("provider returned status %d", resp.StatusCode),
		}
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, &LookupError{Base: base, Target: target, Reason: "decoding response", cause: err}
	}

	rate, ok := body.Rates[target]
	if !ok {
		return 0, &LookupError{Base: base, Target: target, Reason: "symbol missing from response", cause: sentinel.ErrSymbolMissing}
	}
	return rate, nil
}
