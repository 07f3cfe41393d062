package query

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatewaysv/server/internal/models"
	"gatewaysv/server/internal/store"
)

type staticSource struct {
	listings []models.Listing
	err      error
}

func (s *staticSource) Load() ([]models.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Listing, len(s.listings))
	copy(out, s.listings)
	return out, nil
}

func newTestEngine(listings []models.Listing) *Engine {
	return NewEngine(store.NewStore(&staticSource{listings: listings}, nil), nil)
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

// threeTowns is the fixture shared by the scenario tests: two priced
// San Salvador listings and one unpriced in La Libertad.
func threeTowns() []models.Listing {
	return []models.Listing{
		{ID: "ss1", Department: "San Salvador", Municipio: "San Salvador", PriceUSD: fptr(100000)},
		{ID: "ss2", Department: "San Salvador", Municipio: "Soyapango", PriceUSD: fptr(200000)},
		{ID: "ll1", Department: "La Libertad", Municipio: "Santa Tecla", PriceUSD: nil},
	}
}

func TestSearch_NoFiltersReturnsEverything(t *testing.T) {
	e := newTestEngine(threeTowns())

	resp, err := e.Search(Params{SortBy: SortNewest, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Results, 3)
	// newest preserves source order
	assert.Equal(t, "ss1", resp.Results[0].ID)
	assert.Equal(t, "ss2", resp.Results[1].ID)
	assert.Equal(t, "ll1", resp.Results[2].ID)
}

func TestSearch_DepartmentPagination(t *testing.T) {
	// Scenario: department filter is case-insensitive and page 2 of
	// size 1 returns the second match in natural order.
	e := newTestEngine(threeTowns())

	resp, err := e.Search(Params{
		Department: "san salvador",
		SortBy:     SortNewest,
		Page:       2,
		PageSize:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 1, resp.PageSize)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "ss2", resp.Results[0].ID)
}

func TestSearch_MinPriceExcludesUnpriced(t *testing.T) {
	// An unpriced listing counts as 0, so it fails min_price=150000.
	e := newTestEngine(threeTowns())

	resp, err := e.Search(Params{
		MinPrice: fptr(150000),
		SortBy:   SortNewest,
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "ss2", resp.Results[0].ID)
}

func TestSearch_MaxPriceKeepsUnpriced(t *testing.T) {
	e := newTestEngine(threeTowns())

	resp, err := e.Search(Params{
		MaxPrice: fptr(150000),
		SortBy:   SortNewest,
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "ss1", resp.Results[0].ID)
	assert.Equal(t, "ll1", resp.Results[1].ID)
}

func TestSearch_FilterConjunction(t *testing.T) {
	listings := []models.Listing{
		{ID: "match", Department: "San Salvador", Municipio: "Santa Tecla", PriceUSD: fptr(120000), PropertyType: "house", Bedrooms: iptr(3), IsFeatured: true},
		{ID: "wrong-dept", Department: "Santa Ana", Municipio: "Santa Tecla", PriceUSD: fptr(120000), PropertyType: "house", Bedrooms: iptr(3), IsFeatured: true},
		{ID: "too-cheap", Department: "San Salvador", Municipio: "Santa Tecla", PriceUSD: fptr(50000), PropertyType: "house", Bedrooms: iptr(3), IsFeatured: true},
		{ID: "few-rooms", Department: "San Salvador", Municipio: "Santa Tecla", PriceUSD: fptr(120000), PropertyType: "house", Bedrooms: iptr(1), IsFeatured: true},
		{ID: "not-featured", Department: "San Salvador", Municipio: "Santa Tecla", PriceUSD: fptr(120000), PropertyType: "house", Bedrooms: iptr(3)},
		{ID: "wrong-type", Department: "San Salvador", Municipio: "Santa Tecla", PriceUSD: fptr(120000), PropertyType: "land", Bedrooms: iptr(3), IsFeatured: true},
	}
	e := newTestEngine(listings)

	resp, err := e.Search(Params{
		Department:   "san salvador",
		Municipio:    "tecla",
		MinPrice:     fptr(100000),
		MaxPrice:     fptr(150000),
		PropertyType: "HOUSE",
		Bedrooms:     iptr(2),
		FeaturedOnly: true,
		SortBy:       SortNewest,
		Page:         1,
		PageSize:     20,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "match", resp.Results[0].ID)
}

func TestSearch_FreeTextMatchesAnyField(t *testing.T) {
	listings := []models.Listing{
		{ID: "title", Title: "Casa cerca del volcán"},
		{ID: "dept", Department: "San Vicente"},
		{ID: "muni", Municipio: "Juayúa"},
		{ID: "desc", Description: "Amplio jardín con vista al volcán"},
		{ID: "none", Title: "Apartamento moderno"},
	}
	e := newTestEngine(listings)

	resp, err := e.Search(Params{Q: "volcán", SortBy: SortNewest, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = e.Search(Params{Q: "vicente", SortBy: SortNewest, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "dept", resp.Results[0].ID)

	resp, err = e.Search(Params{Q: "juay", SortBy: SortNewest, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "muni", resp.Results[0].ID)
}

func TestSearch_PriceSortPutsUnpricedAtEdges(t *testing.T) {
	e := newTestEngine(threeTowns())

	resp, err := e.Search(Params{SortBy: SortPriceDesc, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, "ss2", resp.Results[0].ID)
	assert.Equal(t, "ss1", resp.Results[1].ID)
	assert.Equal(t, "ll1", resp.Results[2].ID)

	resp, err = e.Search(Params{SortBy: SortPriceAsc, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, "ll1", resp.Results[0].ID)
	assert.Equal(t, "ss1", resp.Results[1].ID)
	assert.Equal(t, "ss2", resp.Results[2].ID)
}

func TestSearch_ScoreSort(t *testing.T) {
	listings := []models.Listing{
		// 5*2 images = 10
		{ID: "photos", Images: []string{"a.jpg", "b.jpg"}},
		// 100 + 20 = 120
		{ID: "featured", IsFeatured: true, Description: "Una joya"},
		// 20
		{ID: "described", Description: "Bonita casa"},
		// 0, ties with nothing
		{ID: "bare"},
	}
	e := newTestEngine(listings)

	resp, err := e.Search(Params{SortBy: SortScore, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)
	assert.Equal(t, "featured", resp.Results[0].ID)
	assert.Equal(t, "described", resp.Results[1].ID)
	assert.Equal(t, "photos", resp.Results[2].ID)
	assert.Equal(t, "bare", resp.Results[3].ID)
}

func TestSearch_ScoreSortTiesKeepSourceOrder(t *testing.T) {
	listings := []models.Listing{
		{ID: "first", Description: "x"},
		{ID: "second", Description: "y"},
		{ID: "third", Description: "z"},
	}
	e := newTestEngine(listings)

	for run := 0; run < 3; run++ {
		resp, err := e.Search(Params{SortBy: SortScore, Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, "first", resp.Results[0].ID)
		assert.Equal(t, "second", resp.Results[1].ID)
		assert.Equal(t, "third", resp.Results[2].ID)
	}
}

func TestSearch_PagesConcatenateToFullSequence(t *testing.T) {
	var listings []models.Listing
	for i := 0; i < 17; i++ {
		price := float64(1000 * (17 - i))
		listings = append(listings, models.Listing{
			ID:       string(rune('a' + i)),
			PriceUSD: &price,
		})
	}
	e := newTestEngine(listings)

	var collected []string
	for page := 1; page <= 4; page++ {
		resp, err := e.Search(Params{SortBy: SortPriceAsc, Page: page, PageSize: 5})
		require.NoError(t, err)
		assert.Equal(t, 17, resp.Total)
		for _, l := range resp.Results {
			collected = append(collected, l.ID)
		}
	}

	full, err := e.Search(Params{SortBy: SortPriceAsc, Page: 1, PageSize: 20})
	require.NoError(t, err)
	var expected []string
	for _, l := range full.Results {
		expected = append(expected, l.ID)
	}
	assert.Equal(t, expected, collected)
}

func TestSearch_PageBeyondEndIsEmpty(t *testing.T) {
	e := newTestEngine(threeTowns())

	resp, err := e.Search(Params{SortBy: SortNewest, Page: 50, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 50, resp.Page)
}

func TestSearch_ClampsDegeneratePagination(t *testing.T) {
	e := newTestEngine(threeTowns())

	// Page 0 must not underflow the slice offset.
	resp, err := e.Search(Params{SortBy: SortNewest, Page: 0, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Results, 3)

	resp, err = e.Search(Params{SortBy: SortNewest, Page: -2, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, DefaultPageSize, resp.PageSize)
	assert.Len(t, resp.Results, 3)

	// A later page with a non-positive size falls back to the default
	// size rather than returning a silent empty page 1.
	resp, err = e.Search(Params{SortBy: SortNewest, Page: 2, PageSize: -5})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, DefaultPageSize, resp.PageSize)
	assert.Equal(t, 3, resp.Total)
	assert.Empty(t, resp.Results)
}

func TestSearch_StorePropagatesDataUnavailable(t *testing.T) {
	e := NewEngine(store.NewStore(&staticSource{err: errors.New("boom")}, nil), nil)

	_, err := e.Search(Params{SortBy: SortNewest, Page: 1, PageSize: 20})
	assert.ErrorIs(t, err, store.ErrDataUnavailable)
}

func TestParseParams_Defaults(t *testing.T) {
	p, err := ParseParams(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, SortNewest, p.SortBy)
	assert.Nil(t, p.MinPrice)
	assert.Nil(t, p.Bedrooms)
	assert.False(t, p.FeaturedOnly)
}

func TestParseParams_FullSet(t *testing.T) {
	p, err := ParseParams(url.Values{
		"department":    {"San Salvador"},
		"municipio":     {"tecla"},
		"min_price":     {"50000"},
		"max_price":     {"250000"},
		"property_type": {"house"},
		"bedrooms":      {"2"},
		"featured_only": {"true"},
		"q":             {"vista"},
		"sort_by":       {"price_desc"},
		"page":          {"3"},
		"page_size":     {"50"},
	})
	require.NoError(t, err)
	assert.Equal(t, "San Salvador", p.Department)
	require.NotNil(t, p.MinPrice)
	assert.Equal(t, 50000.0, *p.MinPrice)
	require.NotNil(t, p.MaxPrice)
	assert.Equal(t, 250000.0, *p.MaxPrice)
	require.NotNil(t, p.Bedrooms)
	assert.Equal(t, 2, *p.Bedrooms)
	assert.True(t, p.FeaturedOnly)
	assert.Equal(t, SortPriceDesc, p.SortBy)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PageSize)
}

func TestParseParams_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
	}{
		{"non-numeric min_price", url.Values{"min_price": {"cheap"}}},
		{"negative max_price", url.Values{"max_price": {"-1"}}},
		{"non-numeric bedrooms", url.Values{"bedrooms": {"two"}}},
		{"negative bedrooms", url.Values{"bedrooms": {"-2"}}},
		{"bad featured_only", url.Values{"featured_only": {"yep"}}},
		{"unknown sort_by", url.Values{"sort_by": {"oldest"}}},
		{"zero page", url.Values{"page": {"0"}}},
		{"negative page", url.Values{"page": {"-3"}}},
		{"zero page_size", url.Values{"page_size": {"0"}}},
		{"oversized page_size", url.Values{"page_size": {"500"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseParams(tc.values)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}
