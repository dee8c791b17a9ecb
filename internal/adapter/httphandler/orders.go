package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dottech/storefront/internal/core/domain"
	"github.com/dottech/storefront/internal/core/port"
)

// POST v1/orders (201 Created, 409 Conflict on empty cart)

type OrdersHandler struct {
	composer port.OrderComposer
}

func RegisterOrders(mux *http.ServeMux, composer port.OrderComposer) {
	h := OrdersHandler{composer}
	mux.HandleFunc("POST /v1/orders", h.PostOrder)
}

func (h OrdersHandler) PostOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PostOrder"
	log := slog.With("op", op)

	msg, err := h.composer.Compose(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			http.Error(w, "Your cart is empty!", http.StatusConflict)
			return
		}
		http.Error(w, "failed to compose order", http.StatusInternalServerError)
		log.Error("failed to compose order", "err", err)
		return
	}

	log.Info("order composed", "linkLen", len(msg.DeepLink))
	writeJSON(w, http.StatusCreated, OrderMessage{
		Message: msg.Text,
		Link:    msg.DeepLink,
	})
}
