package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/dottech/storefront/internal/adapter/httphandler"
	"github.com/dottech/storefront/internal/adapter/view"
	"github.com/dottech/storefront/internal/core/domain"
	"github.com/dottech/storefront/internal/core/port"
	"github.com/dottech/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	records []port.RawRecord
	err     error
}

func (f stubFetcher) Fetch(context.Context) ([]port.RawRecord, error) {
	return f.records, f.err
}

type memCartRepo struct {
	cart domain.Cart
}

func (r *memCartRepo) Load(context.Context) (domain.Cart, error) {
	return slices.Clone(r.cart), nil
}

func (r *memCartRepo) Save(_ context.Context, c domain.Cart) error {
	r.cart = slices.Clone(c)
	return nil
}

func shopRecords() []port.RawRecord {
	return []port.RawRecord{
		{"id": "1", "name": "Laptop", "category": "Laptops", "price": 999.99, "stock": 5.0},
		{"id": "2", "name": "Phone", "category": "Phones", "price": 650.0, "stock": 0.0},
		{"id": "3", "name": "Mouse", "category": "Accessories", "price": 25.0, "stock": 100.0},
	}
}

type testEnv struct {
	mux  *http.ServeMux
	cart *service.Cart
}

func newTestEnv(t *testing.T, fetcher port.CatalogFetcher) testEnv {
	t.Helper()

	catalog := service.NewCatalogService(fetcher)
	cart := service.NewCart(&memCartRepo{})
	badge := view.NewCartBadge(cart)
	cart.Subscribe(badge)
	order := service.NewOrder(cart, "DotTech", "963995505964")

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, catalog)
	httphandler.RegisterCart(mux, catalog, cart)
	httphandler.RegisterCartBadge(mux, badge)
	httphandler.RegisterOrders(mux, order)

	return testEnv{mux: mux, cart: cart}
}

func (e testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestGetProducts(t *testing.T) {
	t.Run("ReturnsPage", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})

		w := env.do(t, http.MethodGet, "/v1/products", "")
		require.Equal(t, http.StatusOK, w.Code)

		page := decode[httphandler.ProductsPage](t, w)
		assert.Len(t, page.Items, 3)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, 3, page.TotalCount)
	})

	t.Run("AppliesQuerySurface", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})

		w := env.do(t, http.MethodGet,
			"/v1/products?category=Laptops&stock=in-stock&sort=price-desc", "")
		require.Equal(t, http.StatusOK, w.Code)

		page := decode[httphandler.ProductsPage](t, w)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "1", page.Items[0].ID)
	})

	t.Run("InvalidPageIsFlooredAtOne", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})

		w := env.do(t, http.MethodGet, "/v1/products?page=-3", "")
		require.Equal(t, http.StatusOK, w.Code)

		page := decode[httphandler.ProductsPage](t, w)
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Items, 3)
	})

	t.Run("DegradedCatalog", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{err: errors.New("boom")})

		w := env.do(t, http.MethodGet, "/v1/products", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("DetailWithSimilar", func(t *testing.T) {
		records := append(shopRecords(), port.RawRecord{
			"id": "4", "name": "Laptop Pro", "category": "Laptops",
			"price": 1500.0, "stock": 2.0,
		})
		env := newTestEnv(t, stubFetcher{records: records})

		w := env.do(t, http.MethodGet, "/v1/products/1", "")
		require.Equal(t, http.StatusOK, w.Code)

		d := decode[httphandler.ProductDetails](t, w)
		assert.Equal(t, "Laptop", d.Product.Name)
		require.Len(t, d.Similar, 1)
		assert.Equal(t, "4", d.Similar[0].ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})

		w := env.do(t, http.MethodGet, "/v1/products/ghost", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t, stubFetcher{records: shopRecords()})

	w := env.do(t, http.MethodGet, "/v1/categories", "")
	require.Equal(t, http.StatusOK, w.Code)

	cs := decode[[]string](t, w)
	assert.Equal(t, []string{"Accessories", "Laptops", "Phones"}, cs)
}

func TestCartEndpoints(t *testing.T) {
	t.Run("AddItem", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})

		w := env.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		cart := decode[httphandler.CartView](t, w)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 1, cart.Lines[0].Qty)
		assert.Equal(t, 1, cart.Badge)
		assert.Equal(t, "Free", cart.Shipping)
		assert.InDelta(t, 999.99, cart.Total, 1e-9)
	})

	t.Run("AddOutOfStockIsNoOp", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})

		w := env.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"2"}`)
		require.Equal(t, http.StatusOK, w.Code)

		cart := decode[httphandler.CartView](t, w)
		assert.Empty(t, cart.Lines)
	})

	t.Run("AddUnknownProduct", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})

		w := env.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"ghost"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("SetQuantityRemovesAtZero", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})
		env.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"1"}`)

		w := env.do(t, http.MethodPatch, "/v1/cart/items/1", `{"delta":-1}`)
		require.Equal(t, http.StatusOK, w.Code)

		cart := decode[httphandler.CartView](t, w)
		assert.Empty(t, cart.Lines)
		assert.Zero(t, cart.Subtotal)
	})

	t.Run("SetQuantityRejectsBadDelta", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})
		env.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"1"}`)

		w := env.do(t, http.MethodPatch, "/v1/cart/items/1", `{"delta":5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ClearCart", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})
		env.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"1"}`)
		env.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"3"}`)

		w := env.do(t, http.MethodDelete, "/v1/cart", "")
		require.Equal(t, http.StatusOK, w.Code)

		cart := decode[httphandler.CartView](t, w)
		assert.Empty(t, cart.Lines)
		assert.Zero(t, cart.Badge)
	})

	t.Run("Badge", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})
		env.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"1"}`)
		env.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"1"}`)

		w := env.do(t, http.MethodGet, "/v1/cart/badge", "")
		require.Equal(t, http.StatusOK, w.Code)

		badge := decode[httphandler.CartBadge](t, w)
		assert.Equal(t, 2, badge.Count)
		assert.InDelta(t, 1999.98, badge.Total, 1e-9)
	})
}

func TestPostOrder(t *testing.T) {
	t.Run("EmptyCart", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})

		w := env.do(t, http.MethodPost, "/v1/orders", "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("ComposesDeepLink", func(t *testing.T) {
		env := newTestEnv(t, stubFetcher{records: shopRecords()})
		env.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"1"}`)

		w := env.do(t, http.MethodPost, "/v1/orders", "")
		require.Equal(t, http.StatusCreated, w.Code)

		order := decode[httphandler.OrderMessage](t, w)
		assert.Contains(t, order.Message, "- Laptop x1")
		assert.Contains(t, order.Message, "Total: $999.99")
		assert.True(t,
			strings.HasPrefix(order.Link, "https://wa.me/963995505964?"),
			order.Link,
		)
	})
}
