package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dottech/storefront/internal/core/port"
)

// POST v1/cart/items JSON {"product_id" string} (200 OK, 400 Bad request, 404 Not found)
// PATCH v1/cart/items/{id} JSON {"delta" +1|-1} (200 OK, 400 Bad request)

type cartService interface {
	port.CartMutator
	port.CartReader
}

type CartHandler struct {
	catalog port.CatalogProvider
	cart    cartService
}

func RegisterCart(
	mux *http.ServeMux, catalog port.CatalogProvider, cart cartService,
) {
	h := CartHandler{catalog, cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.SetQuantity)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.RemoveItem)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
}

func RegisterCartBadge(mux *http.ServeMux, badge port.CartSummaryProvider) {
	h := CartBadgeHandler{badge}
	mux.HandleFunc("GET /v1/cart/badge", h.GetBadge)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, r, "CartHandler.GetCart")
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	catalog, err := h.catalog.Load(r.Context())
	if err != nil {
		http.Error(w, "catalog is unavailable", http.StatusServiceUnavailable)
		log.Error("failed to load catalog", "err", err)
		return
	}

	p, ok := catalog.ByID(req.ProductID)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	// adding an out-of-stock product is a silent no-op
	if err := h.cart.AddItem(r.Context(), p); err != nil {
		http.Error(w, "failed to update cart", http.StatusInternalServerError)
		log.Error("failed to add item", "err", err)
		return
	}

	h.writeCart(w, r, op)
}

func (h CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.SetQuantity"
	log := slog.With("op", op)

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.Delta != 1 && req.Delta != -1 {
		http.Error(w, "delta must be +1 or -1", http.StatusBadRequest)
		return
	}

	err := h.cart.SetQuantity(r.Context(), r.PathValue("id"), req.Delta)
	if err != nil {
		http.Error(w, "failed to update cart", http.StatusInternalServerError)
		log.Error("failed to set quantity", "err", err)
		return
	}

	h.writeCart(w, r, op)
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.RemoveItem"
	log := slog.With("op", op)

	if err := h.cart.RemoveItem(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, "failed to update cart", http.StatusInternalServerError)
		log.Error("failed to remove item", "err", err)
		return
	}

	h.writeCart(w, r, op)
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ClearCart"
	log := slog.With("op", op)

	if err := h.cart.Clear(r.Context()); err != nil {
		http.Error(w, "failed to clear cart", http.StatusInternalServerError)
		log.Error("failed to clear cart", "err", err)
		return
	}

	h.writeCart(w, r, op)
}

func (h CartHandler) writeCart(
	w http.ResponseWriter, r *http.Request, op string,
) {
	cart, err := h.cart.Lines(r.Context())
	if err != nil {
		http.Error(w, "failed to read cart", http.StatusInternalServerError)
		slog.Error("failed to read cart", "op", op, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toCartView(cart))
}

type CartBadgeHandler struct {
	badge port.CartSummaryProvider
}

func (h CartBadgeHandler) GetBadge(w http.ResponseWriter, r *http.Request) {
	s := h.badge.Summary()
	writeJSON(w, http.StatusOK, CartBadge{
		Count:    s.Count,
		Subtotal: s.Totals.Subtotal,
		Total:    s.Totals.Total,
	})
}
