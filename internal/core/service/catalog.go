package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/dottech/storefront/internal/core/domain"
	"github.com/dottech/storefront/internal/core/port"
	"golang.org/x/sync/singleflight"
)

var _ port.CatalogProvider = (*CatalogService)(nil)

const similarLimit = 3

// fieldAliases resolves raw record fields across the two accepted
// naming conventions. The first alias is the canonical lowercase key
// and wins when both are present.
var fieldAliases = map[string][]string{
	"id":          {"id", "ID"},
	"name":        {"name", "Name"},
	"category":    {"category", "Category"},
	"description": {"description", "Description"},
	"price":       {"price", "Price"},
	"stock":       {"stock", "Stock"},
	"image":       {"image", "ImageURL", "Image"},
	"rating":      {"rating", "Rating"},
	"tags":        {"tags", "Tags"},
}

// A CatalogService loads the catalog once per session. The fetch is
// single-flight: concurrent callers share the in-flight result, and
// the first outcome, error included, is memoized. A failed load is
// not retried automatically.
type CatalogService struct {
	fetcher port.CatalogFetcher
	sf      singleflight.Group

	mu      sync.Mutex
	loaded  bool
	catalog domain.Catalog
	loadErr error
}

func NewCatalogService(fetcher port.CatalogFetcher) *CatalogService {
	return &CatalogService{fetcher: fetcher}
}

func (s *CatalogService) Load(ctx context.Context) (domain.Catalog, error) {
	const op = "CatalogService.Load"

	if c, err, ok := s.memoized(); ok {
		return c, err
	}

	v, err, _ := s.sf.Do("catalog", func() (any, error) {
		// re-check under the flight: a caller may arrive right
		// after a finished flight memoized its outcome
		if c, lerr, ok := s.memoized(); ok {
			return c, lerr
		}

		raw, err := s.fetcher.Fetch(ctx)
		if err != nil {
			err = fmt.Errorf("%s: %w: %w", op, domain.ErrCatalogLoad, err)
			s.memoize(nil, err)
			slog.Error("failed to load catalog", "op", op, "err", err)
			return nil, err
		}

		c := normalizeCatalog(raw)
		s.memoize(c, nil)
		slog.Info("catalog loaded", "op", op, "nProducts", len(c))
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(domain.Catalog), nil
}

func (s *CatalogService) memoized() (domain.Catalog, error, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog, s.loadErr, s.loaded
}

func (s *CatalogService) memoize(c domain.Catalog, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
	s.loadErr = err
	s.loaded = true
}

func (s *CatalogService) Details(
	ctx context.Context, id string,
) (domain.ProductDetails, error) {
	const op = "CatalogService.Details"

	c, err := s.Load(ctx)
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	p, ok := c.ByID(id)
	if !ok {
		return domain.ProductDetails{}, fmt.Errorf(
			"%s: %q: %w", op, id, domain.ErrProductNotFound,
		)
	}

	return domain.ProductDetails{
		Product: p,
		Similar: c.Similar(p, similarLimit),
	}, nil
}

func (s *CatalogService) Featured(
	ctx context.Context, n int,
) ([]domain.Product, error) {
	const op = "CatalogService.Featured"

	c, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if n < 0 {
		n = 0
	}
	if n > len(c) {
		n = len(c)
	}
	return c[:n], nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	const op = "CatalogService.Categories"

	c, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, p := range c {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func normalizeCatalog(rs []port.RawRecord) domain.Catalog {
	c := make(domain.Catalog, 0, len(rs))
	for _, r := range rs {
		c = append(c, normalizeRecord(r))
	}
	return c
}

// normalizeRecord maps one raw record to the canonical product shape.
// Missing numeric fields default to 0, missing tags to an empty
// sequence, and the id is always coerced to a string. Records missing
// identity are kept with defaulted fields rather than rejected.
func normalizeRecord(r port.RawRecord) domain.Product {
	var p domain.Product

	p.ID = coerceString(resolveField(r, "id"))
	p.Name = coerceString(resolveField(r, "name"))
	p.Category = coerceString(resolveField(r, "category"))
	p.Description = coerceString(resolveField(r, "description"))
	p.Image = coerceString(resolveField(r, "image"))
	p.Price, _ = coerceNumber(resolveField(r, "price"))
	stock, _ := coerceNumber(resolveField(r, "stock"))
	p.Stock = int(stock)
	p.Rating, p.HasRating = coerceNumber(resolveField(r, "rating"))
	p.Tags = coerceTags(resolveField(r, "tags"))

	return p
}

func resolveField(r port.RawRecord, canonical string) any {
	for _, alias := range fieldAliases[canonical] {
		if v, ok := r[alias]; ok && v != nil {
			return v
		}
	}
	return nil
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func coerceNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func coerceTags(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}
