package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/jarda-app/jarda/internal/advisory"
	"github.com/jarda-app/jarda/internal/domain/item"
)

// AdvisoryThreshold is the quantity above which an item without an
// admin-defined range gets sent to the anomaly advisory.
const AdvisoryThreshold = 50

// genericWarning is shown when the advisory flags a quantity without
// supplying its own message.
const genericWarning = "الرقم يبدو غير منطقي، هل أنت متأكد؟"

// GateResult is the outcome of one advance-gate check.
type GateResult struct {
	// Allow reports whether the supervisor may move to the next item.
	Allow bool `json:"allow"`
	// Pending means a check for this item is already in flight; the
	// caller should wait rather than fire another one.
	Pending bool `json:"pending,omitempty"`
	// Stale means the gate moved to another item while the advisory was
	// out; the verdict was discarded.
	Stale bool `json:"stale,omitempty"`
	// Message carries the warning when Allow is false.
	Message string `json:"message,omitempty"`
}

// Gate guards the supervisor's advance past an item. Warnings are local and
// ephemeral: they are never written into the entry itself.
type Gate struct {
	checker advisory.Checker
	logger  *slog.Logger

	mu       sync.Mutex
	current  string
	inFlight bool
	warning  string
}

// NewGate creates an advance gate.
func NewGate(checker advisory.Checker, logger *slog.Logger) *Gate {
	if checker == nil {
		checker = advisory.Disabled{}
	}
	return &Gate{checker: checker, logger: logger}
}

// Advance checks whether the entered quantity may pass. Range violations
// block immediately; rangeless quantities above AdvisoryThreshold consult
// the advisory, which fails open. Moving to a different item invalidates
// any verdict still in flight for the previous one.
func (g *Gate) Advance(ctx context.Context, it item.Item, quantity *float64) GateResult {
	g.mu.Lock()
	if g.current != it.ID {
		g.current = it.ID
		g.warning = ""
	}

	if quantity == nil {
		g.warning = ""
		g.mu.Unlock()
		return GateResult{Allow: true}
	}
	qty := *quantity

	if it.MinQuantity != nil && it.MaxQuantity != nil {
		if qty < *it.MinQuantity || qty > *it.MaxQuantity {
			msg := fmt.Sprintf("الكمية المدخلة (%s) خارج المدى الطبيعي (%s - %s). هل أنت متأكد؟",
				formatQty(qty), formatQty(*it.MinQuantity), formatQty(*it.MaxQuantity))
			g.warning = msg
			g.mu.Unlock()
			return GateResult{Message: msg}
		}
		g.warning = ""
		g.mu.Unlock()
		return GateResult{Allow: true}
	}

	if qty <= AdvisoryThreshold {
		g.warning = ""
		g.mu.Unlock()
		return GateResult{Allow: true}
	}

	if g.inFlight {
		g.mu.Unlock()
		return GateResult{Pending: true}
	}
	g.inFlight = true
	g.mu.Unlock()

	verdict := g.checker.CheckAnomaly(ctx, it.Name, it.Unit, qty)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight = false

	if g.current != it.ID {
		// The supervisor navigated away while the check was out.
		if g.logger != nil {
			g.logger.Debug("discarding stale advisory verdict", "item_id", it.ID)
		}
		return GateResult{Stale: true}
	}

	if verdict.Suspicious {
		msg := verdict.Message
		if msg == "" {
			msg = genericWarning
		}
		g.warning = msg
		return GateResult{Message: msg}
	}

	g.warning = ""
	return GateResult{Allow: true}
}

// Override advances past an outstanding warning without re-checking and
// clears the warning state.
func (g *Gate) Override(itemID string) GateResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == itemID {
		g.warning = ""
	}
	return GateResult{Allow: true}
}

// Warning returns the outstanding warning for an item, if any.
func (g *Gate) Warning(itemID string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == itemID && g.warning != "" {
		return g.warning, true
	}
	return "", false
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
