package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dottech/storefront/internal/core/domain"
	"github.com/dottech/storefront/internal/core/port"
)

var _ port.CartMutator = (*Cart)(nil)
var _ port.CartReader = (*Cart)(nil)

// A Cart applies bounded mutations to the persisted cart state. The
// repository is the sole source of truth: every operation reads the
// current persisted state, applies the change and writes back, so the
// consumers stay stateless projections.
//
// Mutations are serialized with a mutex to keep each read-modify-write
// internally consistent. Subscribed observers are notified before the
// mutation returns.
type Cart struct {
	repo port.CartRepository

	mu        sync.Mutex
	observers []port.CartObserver
}

func NewCart(repo port.CartRepository) *Cart {
	return &Cart{repo: repo}
}

// Subscribe registers an observer for cart change signals. Not safe to
// call concurrently with mutations; register observers during wiring.
func (c *Cart) Subscribe(o port.CartObserver) {
	c.observers = append(c.observers, o)
}

// AddItem puts one unit of p into the cart. Out-of-stock products are
// ignored. An existing line is incremented up to the quantity cap,
// a new line snapshots the current price.
func (c *Cart) AddItem(ctx context.Context, p domain.Product) error {
	const op = "Cart.AddItem"

	if !p.InStock() {
		slog.Debug("ignored out-of-stock product", "op", op, "id", p.ID)
		return nil
	}

	return c.mutate(ctx, op, func(cart domain.Cart) (domain.Cart, bool) {
		i, ok := cart.Find(p.ID)
		if !ok {
			line := domain.CartLine{ID: p.ID, Name: p.Name, Price: p.Price, Qty: 1}
			return append(cart, line), true
		}
		if cart[i].Qty >= domain.MaxLineQty {
			return cart, false
		}
		cart[i].Qty++
		return cart, true
	})
}

// SetQuantity adjusts the line qty by delta, +1 or -1. Increments cap
// at the quantity bound; a decrement reaching zero removes the line.
// Unknown ids are ignored.
func (c *Cart) SetQuantity(ctx context.Context, id string, delta int) error {
	const op = "Cart.SetQuantity"

	return c.mutate(ctx, op, func(cart domain.Cart) (domain.Cart, bool) {
		i, ok := cart.Find(id)
		if !ok {
			return cart, false
		}

		if delta > 0 {
			if cart[i].Qty >= domain.MaxLineQty {
				return cart, false
			}
			cart[i].Qty++
			return cart, true
		}

		cart[i].Qty--
		if cart[i].Qty <= 0 {
			return append(cart[:i], cart[i+1:]...), true
		}
		return cart, true
	})
}

func (c *Cart) RemoveItem(ctx context.Context, id string) error {
	const op = "Cart.RemoveItem"

	return c.mutate(ctx, op, func(cart domain.Cart) (domain.Cart, bool) {
		i, ok := cart.Find(id)
		if !ok {
			return cart, false
		}
		return append(cart[:i], cart[i+1:]...), true
	})
}

func (c *Cart) Clear(ctx context.Context) error {
	const op = "Cart.Clear"

	return c.mutate(ctx, op, func(cart domain.Cart) (domain.Cart, bool) {
		return domain.Cart{}, true
	})
}

func (c *Cart) Lines(ctx context.Context) (domain.Cart, error) {
	const op = "Cart.Lines"

	cart, err := c.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cart, nil
}

func (c *Cart) Totals(ctx context.Context) (domain.CartTotals, error) {
	const op = "Cart.Totals"

	cart, err := c.repo.Load(ctx)
	if err != nil {
		return domain.CartTotals{}, fmt.Errorf("%s: %w", op, err)
	}
	return cart.Totals(), nil
}

func (c *Cart) BadgeCount(ctx context.Context) (int, error) {
	const op = "Cart.BadgeCount"

	cart, err := c.repo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return cart.Units(), nil
}

func (c *Cart) mutate(
	ctx context.Context,
	op string,
	fn func(domain.Cart) (domain.Cart, bool),
) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	cart, err := c.repo.Load(ctx)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("%s: %w", op, err)
	}

	next, changed := fn(cart)
	if changed {
		if err := c.repo.Save(ctx, next); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	c.mu.Unlock()

	if changed {
		c.notify(ctx)
	}
	return nil
}

func (c *Cart) notify(ctx context.Context) {
	for _, o := range c.observers {
		o.CartChanged(ctx)
	}
}
