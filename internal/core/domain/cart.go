package domain

// MaxLineQty bounds the quantity of a single cart line.
const MaxLineQty = 99

type (
	// A CartLine references a product by id. The reference is weak:
	// the product may disappear from the catalog without invalidating
	// the line. Price is a snapshot taken at first add.
	CartLine struct {
		ID    string
		Name  string
		Price float64
		Qty   int
	}

	// A Cart is an ordered sequence of lines, insertion order being
	// first-add order. At most one line exists per product id.
	Cart []CartLine

	CartTotals struct {
		Subtotal float64
		Total    float64
	}

	// A CartSummary is the badge-facing projection of cart state.
	CartSummary struct {
		Count  int
		Totals CartTotals
	}
)

func (c Cart) Find(id string) (int, bool) {
	for i, l := range c {
		if l.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (c Cart) Totals() CartTotals {
	var subtotal float64
	for _, l := range c {
		subtotal += l.Price * float64(l.Qty)
	}
	// shipping is free, total equals subtotal
	return CartTotals{Subtotal: subtotal, Total: subtotal}
}

// Units is the summed quantity across all lines, used for
// cart badge indicators.
func (c Cart) Units() int {
	var n int
	for _, l := range c {
		n += l.Qty
	}
	return n
}
