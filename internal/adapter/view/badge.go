package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dottech/storefront/internal/core/domain"
	"github.com/dottech/storefront/internal/core/port"
)

var _ port.CartObserver = (*CartBadge)(nil)
var _ port.CartSummaryProvider = (*CartBadge)(nil)

// A CartBadge keeps the latest cart summary projection. It holds no
// cart state of its own: on every change signal it re-reads the badge
// count and totals from the authoritative store.
type CartBadge struct {
	cart port.CartReader

	mu      sync.RWMutex
	summary domain.CartSummary
}

func NewCartBadge(cart port.CartReader) *CartBadge {
	return &CartBadge{cart: cart}
}

// Refresh projects the current persisted cart state, used at startup
// before any mutation has fired a change signal.
func (v *CartBadge) Refresh(ctx context.Context) {
	v.CartChanged(ctx)
}

func (v *CartBadge) CartChanged(ctx context.Context) {
	const op = "CartBadge.CartChanged"
	log := slog.With("op", op)

	count, err := v.cart.BadgeCount(ctx)
	if err != nil {
		log.Error("failed to read badge count", "err", err)
		return
	}

	totals, err := v.cart.Totals(ctx)
	if err != nil {
		log.Error("failed to read totals", "err", err)
		return
	}

	v.mu.Lock()
	v.summary = domain.CartSummary{Count: count, Totals: totals}
	v.mu.Unlock()
}

func (v *CartBadge) Summary() domain.CartSummary {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.summary
}
