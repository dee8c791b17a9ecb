package domain

// PageSize is the fixed number of products per result page.
const PageSize = 12

const FilterAll = "all"

const (
	StockFilterAny        = "all"
	StockFilterInStock    = "in-stock"
	StockFilterOutOfStock = "out-of-stock"
)

const (
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortStockAsc  = "stock-asc"
	SortStockDesc = "stock-desc"
)

type (
	// A QueryState holds the caller-facing parameters for one
	// catalog query. It is transient and never persisted.
	QueryState struct {
		SearchText  string
		Category    string
		PriceRange  string
		StockFilter string
		SortKey     string
		Page        int
	}

	QueryResult struct {
		PageItems  []Product
		TotalPages int
		TotalCount int
	}
)
