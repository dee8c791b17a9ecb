package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dottech/storefront/internal/core/domain"
	"github.com/dottech/storefront/internal/core/port"
	"github.com/dottech/storefront/internal/core/service"
)

// GET v1/products?search=&category=&price=&stock=&sort=&page= (200 OK, 503 catalog unavailable)
// GET v1/products/{id} detail with similar products (200 OK, 404 Not found)

const featuredCount = 3

type ProductsHandler struct {
	catalog port.CatalogProvider
}

func RegisterProducts(mux *http.ServeMux, catalog port.CatalogProvider) {
	h := ProductsHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/featured", h.GetFeatured)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	catalog, err := h.catalog.Load(r.Context())
	if err != nil {
		http.Error(w, "catalog is unavailable", http.StatusServiceUnavailable)
		log.Error("failed to load catalog", "err", err)
		return
	}

	qs := queryStateFromRequest(r)
	res := service.Query(catalog, qs)

	writeJSON(w, http.StatusOK, ProductsPage{
		Items:      toProductViews(res.PageItems),
		Page:       qs.Page,
		TotalPages: res.TotalPages,
		TotalCount: res.TotalCount,
	})
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	d, err := h.catalog.Details(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "catalog is unavailable", http.StatusServiceUnavailable)
		log.Error("failed to load product details", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, ProductDetails{
		Product: toProductView(d.Product),
		Similar: toProductViews(d.Similar),
	})
}

func (h ProductsHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetFeatured"
	log := slog.With("op", op)

	ps, err := h.catalog.Featured(r.Context(), featuredCount)
	if err != nil {
		http.Error(w, "catalog is unavailable", http.StatusServiceUnavailable)
		log.Error("failed to load featured products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProductViews(ps))
}

func (h ProductsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetCategories"
	log := slog.With("op", op)

	cs, err := h.catalog.Categories(r.Context())
	if err != nil {
		http.Error(w, "catalog is unavailable", http.StatusServiceUnavailable)
		log.Error("failed to load categories", "err", err)
		return
	}
	if cs == nil {
		cs = []string{}
	}

	writeJSON(w, http.StatusOK, cs)
}

// queryStateFromRequest captures the query surface into an explicit
// QueryState value. The page number is floored at 1; resetting the
// cursor on filter changes is the querying client's contract.
func queryStateFromRequest(r *http.Request) domain.QueryState {
	q := r.URL.Query()

	qs := domain.QueryState{
		SearchText:  q.Get("search"),
		Category:    q.Get("category"),
		PriceRange:  q.Get("price"),
		StockFilter: q.Get("stock"),
		SortKey:     q.Get("sort"),
	}
	if qs.Category == "" {
		qs.Category = domain.FilterAll
	}
	if qs.PriceRange == "" {
		qs.PriceRange = domain.FilterAll
	}
	if qs.StockFilter == "" {
		qs.StockFilter = domain.StockFilterAny
	}

	qs.Page = 1
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		qs.Page = page
	}
	return qs
}
