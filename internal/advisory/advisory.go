// Package advisory integrates the external anomaly-detection service that
// judges whether an entered quantity looks like a typo. The service is
// best-effort: any transport, parsing, or configuration failure resolves to
// a not-suspicious verdict so the supervisor is never blocked by an outage.
package advisory

import "context"

// Verdict is the advisory's answer for one candidate quantity.
type Verdict struct {
	Suspicious bool   `json:"isSuspicious"`
	Message    string `json:"message,omitempty"`
}

// Checker judges a candidate quantity. Implementations never return an
// error; failures resolve to a negative verdict.
type Checker interface {
	CheckAnomaly(ctx context.Context, itemName, unit string, quantity float64) Verdict
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, itemName, unit string, quantity float64) Verdict

func (f CheckerFunc) CheckAnomaly(ctx context.Context, itemName, unit string, quantity float64) Verdict {
	return f(ctx, itemName, unit, quantity)
}

// Disabled is the checker used when no API key is configured. It behaves
// identically to a configured service that always answers "no issue found".
type Disabled struct{}

func (Disabled) CheckAnomaly(context.Context, string, string, float64) Verdict {
	return Verdict{}
}
