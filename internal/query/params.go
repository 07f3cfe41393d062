package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidQuery means a filter, sort or pagination parameter is
// outside its valid domain. Malformed values are rejected rather than
// coerced so callers notice broken queries instead of silently getting
// unfiltered results.
var ErrInvalidQuery = errors.New("invalid query")

// Supported sort_by values. SortNewest preserves source order.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortScore     = "score"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params is a parsed search request. Nil pointer fields mean the
// filter was not supplied; supplied filters combine with logical AND.
type Params struct {
	Department   string
	Municipio    string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType string
	Bedrooms     *int
	FeaturedOnly bool
	Q            string
	SortBy       string
	Page         int
	PageSize     int
}

// ParseParams parses URL query values into Params, applying defaults
// (page 1, page size 20, newest first) and rejecting anything outside
// the valid domain with ErrInvalidQuery.
func ParseParams(values url.Values) (Params, error) {
	p := Params{
		Department:   strings.TrimSpace(values.Get("department")),
		Municipio:    strings.TrimSpace(values.Get("municipio")),
		PropertyType: strings.TrimSpace(values.Get("property_type")),
		Q:            strings.TrimSpace(values.Get("q")),
		SortBy:       SortNewest,
		Page:         1,
		PageSize:     DefaultPageSize,
	}

	var err error
	if p.MinPrice, err = parsePrice(values, "min_price"); err != nil {
		return Params{}, err
	}
	if p.MaxPrice, err = parsePrice(values, "max_price"); err != nil {
		return Params{}, err
	}

	if raw := values.Get("bedrooms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Params{}, fmt.Errorf("%w: bedrooms %q", ErrInvalidQuery, raw)
		}
		p.Bedrooms = &n
	}

	if raw := values.Get("featured_only"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Params{}, fmt.Errorf("%w: featured_only %q", ErrInvalidQuery, raw)
		}
		p.FeaturedOnly = b
	}

	if raw := values.Get("sort_by"); raw != "" {
		switch raw {
		case SortNewest, SortPriceAsc, SortPriceDesc, SortScore:
			p.SortBy = raw
		default:
			return Params{}, fmt.Errorf("%w: sort_by %q", ErrInvalidQuery, raw)
		}
	}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Params{}, fmt.Errorf("%w: page %q", ErrInvalidQuery, raw)
		}
		p.Page = n
	}

	if raw := values.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxPageSize {
			return Params{}, fmt.Errorf("%w: page_size %q (must be 1-%d)", ErrInvalidQuery, raw, MaxPageSize)
		}
		p.PageSize = n
	}

	return p, nil
}

func parsePrice(values url.Values, key string) (*float64, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidQuery, key, raw)
	}
	return &v, nil
}
