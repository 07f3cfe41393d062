package query

import (
	"sort"
	"strings"

	"gatewaysv/server/internal/models"
	"gatewaysv/server/internal/store"
)

// Engine answers bounded, filtered, sorted queries over the listing
// store. It holds no state of its own beyond the scorer, so a single
// Engine may serve concurrent requests.
type Engine struct {
	store  *store.Store
	scorer Scorer
}

// NewEngine creates a query engine. A nil scorer selects the default
// desirability ranking.
func NewEngine(st *store.Store, scorer Scorer) *Engine {
	if scorer == nil {
		scorer = DesirabilityScorer{}
	}
	return &Engine{
		store:  st,
		scorer: scorer,
	}
}

// Search applies the params as filter, sort and pagination over the
// full collection. Total reflects the match count before pagination;
// pages past the end return empty results with the correct total.
func (e *Engine) Search(p Params) (*models.SearchResponse, error) {
	all, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Listing, 0, len(all))
	for i := range all {
		if matches(&all[i], &p) {
			filtered = append(filtered, all[i])
		}
	}

	e.sortListings(filtered, p.SortBy)

	// The HTTP layer rejects degenerate pagination; programmatic
	// callers get clamped defaults instead of a slice panic.
	page := p.Page
	if page < 1 {
		page = 1
	}
	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(filtered)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	results := make([]models.Listing, end-start)
	copy(results, filtered[start:end])

	return &models.SearchResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	}, nil
}

// matches evaluates the filter conjunction. Exact-match predicates run
// before the substring scans; the result does not depend on the order.
func matches(l *models.Listing, p *Params) bool {
	if p.FeaturedOnly && !l.IsFeatured {
		return false
	}
	if p.Department != "" && !strings.EqualFold(l.Department, p.Department) {
		return false
	}
	if p.PropertyType != "" && !strings.EqualFold(l.PropertyType, p.PropertyType) {
		return false
	}
	if p.Bedrooms != nil && bedroomsOrZero(l) < *p.Bedrooms {
		return false
	}
	// An unpriced listing counts as 0 against min_price but passes any
	// max_price bound.
	if p.MinPrice != nil && priceOrZero(l) < *p.MinPrice {
		return false
	}
	if p.MaxPrice != nil && l.PriceUSD != nil && *l.PriceUSD > *p.MaxPrice {
		return false
	}
	if p.Municipio != "" && !containsFold(l.Municipio, p.Municipio) {
		return false
	}
	if p.Q != "" && !matchesFreeText(l, p.Q) {
		return false
	}
	return true
}

func matchesFreeText(l *models.Listing, q string) bool {
	return containsFold(l.Title, q) ||
		containsFold(l.Department, q) ||
		containsFold(l.Municipio, q) ||
		containsFold(l.Description, q)
}

// sortListings orders the slice in place. Every mode uses a stable
// sort so equal elements keep their prior relative order; newest is a
// pass-through of source order.
func (e *Engine) sortListings(listings []models.Listing, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return priceOrZero(&listings[i]) < priceOrZero(&listings[j])
		})
	case SortPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return priceOrZero(&listings[i]) > priceOrZero(&listings[j])
		})
	case SortScore:
		sort.SliceStable(listings, func(i, j int) bool {
			return e.scorer.Score(&listings[i]) > e.scorer.Score(&listings[j])
		})
	}
}

func priceOrZero(l *models.Listing) float64 {
	if l.PriceUSD == nil {
		return 0
	}
	return *l.PriceUSD
}

func bedroomsOrZero(l *models.Listing) int {
	if l.Bedrooms == nil {
		return 0
	}
	return *l.Bedrooms
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
