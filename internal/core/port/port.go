package port

import (
	"context"

	"github.com/dottech/storefront/internal/core/domain"
)

// A RawRecord is one undecoded catalog entry. Field names may follow
// either of two casing conventions and are resolved by the loader.
type RawRecord map[string]any

// A CatalogFetcher reads the raw product records from the external
// catalog source.
type CatalogFetcher interface {
	Fetch(context.Context) ([]RawRecord, error)
}

type CatalogProvider interface {
	Load(context.Context) (domain.Catalog, error)
	Details(ctx context.Context, id string) (domain.ProductDetails, error)
	Featured(ctx context.Context, n int) ([]domain.Product, error)
	Categories(context.Context) ([]string, error)
}

// A CartRepository is the durable store behind the cart: a single
// named key holding the serialized ordered line sequence.
type CartRepository interface {
	Load(context.Context) (domain.Cart, error)
	Save(context.Context, domain.Cart) error
}

// A CartObserver is notified synchronously after every cart mutation,
// before the mutation returns. Observers re-read whatever cart state
// they project instead of receiving it in the signal.
type CartObserver interface {
	CartChanged(context.Context)
}

type CartMutator interface {
	AddItem(context.Context, domain.Product) error
	SetQuantity(ctx context.Context, id string, delta int) error
	RemoveItem(ctx context.Context, id string) error
	Clear(context.Context) error
}

type CartReader interface {
	Lines(context.Context) (domain.Cart, error)
	Totals(context.Context) (domain.CartTotals, error)
	BadgeCount(context.Context) (int, error)
}

// A CartSummaryProvider serves the latest projected cart summary,
// refreshed through the observer contract.
type CartSummaryProvider interface {
	Summary() domain.CartSummary
}

type OrderComposer interface {
	Compose(context.Context) (domain.OrderMessage, error)
}
