package domain

type (
	Product struct {
		ID          string
		Name        string
		Category    string
		Description string
		Price       float64
		Stock       int
		Image       string
		Rating      float64
		HasRating   bool
		Tags        []string
	}

	ProductDetails struct {
		Product Product
		Similar []Product
	}
)

func (p Product) InStock() bool {
	return p.Stock > 0
}

// A Catalog is the full normalized product set for the session.
// Products are never mutated after loading.
type Catalog []Product

func (c Catalog) ByID(id string) (Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Similar returns up to limit products sharing the category of p,
// excluding p itself, in catalog order.
func (c Catalog) Similar(p Product, limit int) []Product {
	var similar []Product
	for _, v := range c {
		if len(similar) == limit {
			break
		}
		if v.ID != p.ID && v.Category == p.Category {
			similar = append(similar, v)
		}
	}
	return similar
}
