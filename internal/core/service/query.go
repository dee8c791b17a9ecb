package service

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dottech/storefront/internal/core/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Query applies the filter, sort and pagination described by qs to the
// catalog. It is pure: identical inputs yield identical results and the
// catalog is never mutated.
//
// The requested page is trusted as-is. Out-of-range pages yield an
// empty PageItems slice; resetting the cursor to 1 on query changes is
// the caller's contract.
func Query(catalog domain.Catalog, qs domain.QueryState) domain.QueryResult {
	filtered := filterProducts(catalog, qs)
	sortProducts(filtered, qs.SortKey)

	totalPages := int(math.Ceil(float64(len(filtered)) / domain.PageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	return domain.QueryResult{
		PageItems:  pageSlice(filtered, qs.Page),
		TotalPages: totalPages,
		TotalCount: len(filtered),
	}
}

func filterProducts(
	catalog domain.Catalog, qs domain.QueryState,
) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(qs.SearchText))
	minPrice, maxPrice := parsePriceRange(qs.PriceRange)

	filtered := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if qs.Category != "" && qs.Category != domain.FilterAll &&
			p.Category != qs.Category {
			continue
		}
		if minPrice != nil && p.Price < *minPrice {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}
		if !matchesStock(p, qs.StockFilter) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesSearch(p domain.Product, search string) bool {
	hay := strings.ToLower(
		p.Name + " " + p.Description + " " + strings.Join(p.Tags, " "),
	)
	return strings.Contains(hay, search)
}

func matchesStock(p domain.Product, filter string) bool {
	switch filter {
	case domain.StockFilterInStock:
		return p.Stock > 0
	case domain.StockFilterOutOfStock:
		return p.Stock <= 0
	default:
		return true
	}
}

// parsePriceRange parses a "min-max" token into inclusive bounds, or a
// trailing "+" sentinel into an open-ended minimum. An unparseable
// bound contributes no constraint, intentional leniency for hand-edited
// filter data.
func parsePriceRange(token string) (minPrice, maxPrice *float64) {
	if token == "" || token == domain.FilterAll {
		return nil, nil
	}

	if open, ok := strings.CutSuffix(token, "+"); ok {
		if v, err := strconv.ParseFloat(open, 64); err == nil {
			minPrice = &v
		}
		return minPrice, nil
	}

	minS, maxS, _ := strings.Cut(token, "-")
	if v, err := strconv.ParseFloat(minS, 64); err == nil {
		minPrice = &v
	}
	if v, err := strconv.ParseFloat(maxS, 64); err == nil {
		maxPrice = &v
	}
	return minPrice, maxPrice
}

// sortProducts orders ps in place. An unrecognized key leaves the
// filtered order unchanged. Name comparisons are locale-aware.
func sortProducts(ps []domain.Product, sortKey string) {
	var less func(a, b domain.Product) bool

	switch sortKey {
	case domain.SortNameAsc, domain.SortNameDesc:
		cl := collate.New(language.English)
		if sortKey == domain.SortNameAsc {
			less = func(a, b domain.Product) bool {
				return cl.CompareString(a.Name, b.Name) < 0
			}
		} else {
			less = func(a, b domain.Product) bool {
				return cl.CompareString(b.Name, a.Name) < 0
			}
		}
	case domain.SortPriceAsc:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case domain.SortPriceDesc:
		less = func(a, b domain.Product) bool { return b.Price < a.Price }
	case domain.SortStockAsc:
		less = func(a, b domain.Product) bool { return a.Stock < b.Stock }
	case domain.SortStockDesc:
		less = func(a, b domain.Product) bool { return b.Stock < a.Stock }
	default:
		return
	}

	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}

func pageSlice(ps []domain.Product, page int) []domain.Product {
	start := (page - 1) * domain.PageSize
	if start < 0 || start >= len(ps) {
		return []domain.Product{}
	}
	end := start + domain.PageSize
	if end > len(ps) {
		end = len(ps)
	}
	return ps[start:end]
}
