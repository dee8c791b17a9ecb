package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dottech/storefront/internal/core/domain"
	"github.com/dottech/storefront/internal/core/port"
)

var _ port.OrderComposer = (*Order)(nil)

// An Order serializes cart contents into the outbound order message
// and the prefilled deep link carrying it. It sends nothing itself.
type Order struct {
	cart     port.CartReader
	shopName string
	phone    string
}

func NewOrder(cart port.CartReader, shopName, phone string) Order {
	return Order{cart: cart, shopName: shopName, phone: phone}
}

// Compose formats one "- {name} x{qty}" line per cart line followed by
// the order total. An empty cart yields [domain.ErrEmptyCart].
func (o Order) Compose(ctx context.Context) (domain.OrderMessage, error) {
	const op = "Order.Compose"

	cart, err := o.cart.Lines(ctx)
	if err != nil {
		return domain.OrderMessage{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(cart) == 0 {
		return domain.OrderMessage{}, fmt.Errorf(
			"%s: %w", op, domain.ErrEmptyCart,
		)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s 👋, I'd like to order:\n\n", o.shopName)
	for i, l := range cart {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s x%d", l.Name, l.Qty)
	}
	fmt.Fprintf(&b, "\n\nTotal: $%.2f", cart.Totals().Total)

	text := b.String()
	return domain.OrderMessage{
		Text:     text,
		DeepLink: o.deepLink(text),
	}, nil
}

func (o Order) deepLink(text string) string {
	q := url.Values{"text": {text}}
	return fmt.Sprintf("https://wa.me/%s?%s", o.phone, q.Encode())
}
