package httphandler

import "github.com/dottech/storefront/internal/core/domain"

type (
	Product struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Category    string   `json:"category"`
		Description string   `json:"description"`
		Price       float64  `json:"price"`
		Stock       int      `json:"stock"`
		Image       string   `json:"image"`
		Rating      *float64 `json:"rating,omitempty"`
		Tags        []string `json:"tags"`
	}

	ProductsPage struct {
		Items      []Product `json:"items"`
		Page       int       `json:"page"`
		TotalPages int       `json:"total_pages"`
		TotalCount int       `json:"total_count"`
	}

	ProductDetails struct {
		Product Product   `json:"product"`
		Similar []Product `json:"similar"`
	}

	CartLine struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Qty   int     `json:"qty"`
	}

	CartView struct {
		Lines    []CartLine `json:"lines"`
		Subtotal float64    `json:"subtotal"`
		Shipping string     `json:"shipping"`
		Total    float64    `json:"total"`
		Badge    int        `json:"badge"`
	}

	CartBadge struct {
		Count    int     `json:"count"`
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
	}

	AddItemRequest struct {
		ProductID string `json:"product_id"`
	}

	SetQuantityRequest struct {
		Delta int `json:"delta"`
	}

	OrderMessage struct {
		Message string `json:"message"`
		Link    string `json:"link"`
	}
)

func toProductView(p domain.Product) Product {
	v := Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Image:       p.Image,
		Tags:        p.Tags,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if p.HasRating {
		rating := p.Rating
		v.Rating = &rating
	}
	return v
}

func toProductViews(ps []domain.Product) []Product {
	vs := make([]Product, len(ps))
	for i, p := range ps {
		vs[i] = toProductView(p)
	}
	return vs
}

func toCartView(cart domain.Cart) CartView {
	totals := cart.Totals()
	v := CartView{
		Lines:    make([]CartLine, len(cart)),
		Subtotal: totals.Subtotal,
		Shipping: "Free",
		Total:    totals.Total,
		Badge:    cart.Units(),
	}
	for i, l := range cart {
		v.Lines[i] = CartLine{ID: l.ID, Name: l.Name, Price: l.Price, Qty: l.Qty}
	}
	return v
}
