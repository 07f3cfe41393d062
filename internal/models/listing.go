package models

// Listing is one property record as exported by the data pipeline.
// Listings are immutable once loaded; nil pointer fields mean the
// source did not provide a value.
type Listing struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	TitleES           string   `json:"title_es"`
	Department        string   `json:"department"`
	Municipio         string   `json:"municipio"`
	PriceUSD          *float64 `json:"price_usd"`
	AIValuationUSD    *float64 `json:"ai_valuation_usd"`
	Bedrooms          *int     `json:"bedrooms"`
	Bathrooms         *int     `json:"bathrooms"`
	AreaM2            *float64 `json:"area_m2"`
	LotSizeM2         *float64 `json:"lot_size_m2"`
	PropertyType      string   `json:"property_type"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	CoordsExact       bool     `json:"coords_exact"`
	Geohash           string   `json:"geohash,omitempty"`
	ThumbnailURL      *string  `json:"thumbnail_url"`
	Images            []string `json:"images"`
	IsFeatured        bool     `json:"is_featured"`
	NeighborhoodScore *float64 `json:"neighborhood_score"`
	Features          []string `json:"features"`
	Description       string   `json:"description"`
	DescriptionES     string   `json:"description_es"`
	Source            string   `json:"source"`
	SourceURL         string   `json:"source_url"`
	ListingDate       string   `json:"listing_date"`
	Address           string   `json:"address"`
}

// SearchResponse is a page of filtered and sorted listings. Total is
// the match count before pagination.
type SearchResponse struct {
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Results  []Listing `json:"results"`
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MunicipioAggregate is the per-municipality rollup inside a department.
type MunicipioAggregate struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DepartmentAggregate is the per-department rollup used by the browse
// screens. AvgPrice is nil when the department has no positively priced
// listings. Centroid is nil when no listing has usable coordinates.
type DepartmentAggregate struct {
	Department  string               `json:"department"`
	Count       int                  `json:"count"`
	AvgPrice    *float64             `json:"avg_price"`
	SampleImage *string              `json:"sample_image"`
	Centroid    *Coordinate          `json:"centroid"`
	Municipios  []MunicipioAggregate `json:"municipios"`
}

// DepartmentSummary is the full aggregation view response.
type DepartmentSummary struct {
	Departments []DepartmentAggregate `json:"departments"`
	Total       int                   `json:"total"`
}

// ListingStats is the collection-wide summary. Price figures cover
// positively priced listings only and are nil when there are none.
type ListingStats struct {
	TotalListings  int            `json:"total_listings"`
	AvgPrice       *float64       `json:"avg_price"`
	MinPrice       *float64       `json:"min_price"`
	MaxPrice       *float64       `json:"max_price"`
	Departments    int            `json:"departments"`
	FeaturedCount  int            `json:"featured_count"`
	ByPropertyType map[string]int `json:"by_property_type"`
}
