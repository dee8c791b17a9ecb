package domain

import "errors"

var (
	// ErrCatalogLoad indicates the catalog source could not be
	// fetched or decoded. Callers render a degraded state.
	ErrCatalogLoad = errors.New("failed to load catalog")

	ErrProductNotFound = errors.New("product not found")

	// ErrEmptyCart indicates checkout was attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)
