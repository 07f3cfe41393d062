package store

import (
	"encoding/json"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gatewaysv/server/internal/models"
)

// ListingRow is the listings table layout used by the ingestion
// pipeline. Images and features are stored as JSON-encoded arrays.
type ListingRow struct {
	ID                string   `gorm:"column:id;primaryKey"`
	Title             string   `gorm:"column:title"`
	TitleES           string   `gorm:"column:title_es"`
	Department        string   `gorm:"column:department"`
	Municipio         string   `gorm:"column:municipio"`
	PriceUSD          *float64 `gorm:"column:price_usd"`
	AIValuationUSD    *float64 `gorm:"column:ai_valuation_usd"`
	Bedrooms          *int     `gorm:"column:bedrooms"`
	Bathrooms         *int     `gorm:"column:bathrooms"`
	AreaM2            *float64 `gorm:"column:area_m2"`
	LotSizeM2         *float64 `gorm:"column:lot_size_m2"`
	PropertyType      string   `gorm:"column:property_type"`
	Latitude          float64  `gorm:"column:latitude"`
	Longitude         float64  `gorm:"column:longitude"`
	CoordsExact       bool     `gorm:"column:coords_exact"`
	ThumbnailURL      *string  `gorm:"column:thumbnail_url"`
	Images            string   `gorm:"column:images"`
	IsFeatured        bool     `gorm:"column:is_featured"`
	NeighborhoodScore *float64 `gorm:"column:neighborhood_score"`
	Features          string   `gorm:"column:features"`
	Description       string   `gorm:"column:description"`
	DescriptionES     string   `gorm:"column:description_es"`
	Source            string   `gorm:"column:source"`
	SourceURL         string   `gorm:"column:source_url"`
	ListingDate       string   `gorm:"column:listing_date"`
	Address           string   `gorm:"column:address"`
}

func (ListingRow) TableName() string {
	return "listings"
}

// SQLiteSource reads listings from a SQLite database written by the
// ingestion pipeline.
type SQLiteSource struct {
	path string
}

func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

func (s *SQLiteSource) Load() ([]models.Listing, error) {
	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open listings database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	var rows []ListingRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query listings: %v", err)
	}

	listings := make([]models.Listing, 0, len(rows))
	for _, row := range rows {
		listing, err := row.toListing()
		if err != nil {
			return nil, fmt.Errorf("failed to decode listing %q: %v", row.ID, err)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (r ListingRow) toListing() (models.Listing, error) {
	var images, features []string
	if r.Images != "" {
		if err := json.Unmarshal([]byte(r.Images), &images); err != nil {
			return models.Listing{}, fmt.Errorf("bad images column: %v", err)
		}
	}
	if r.Features != "" {
		if err := json.Unmarshal([]byte(r.Features), &features); err != nil {
			return models.Listing{}, fmt.Errorf("bad features column: %v", err)
		}
	}

	return models.Listing{
		ID:                r.ID,
		Title:             r.Title,
		TitleES:           r.TitleES,
		Department:        r.Department,
		Municipio:         r.Municipio,
		PriceUSD:          r.PriceUSD,
		AIValuationUSD:    r.AIValuationUSD,
		Bedrooms:          r.Bedrooms,
		Bathrooms:         r.Bathrooms,
		AreaM2:            r.AreaM2,
		LotSizeM2:         r.LotSizeM2,
		PropertyType:      r.PropertyType,
		Latitude:          r.Latitude,
		Longitude:         r.Longitude,
		CoordsExact:       r.CoordsExact,
		ThumbnailURL:      r.ThumbnailURL,
		Images:            images,
		IsFeatured:        r.IsFeatured,
		NeighborhoodScore: r.NeighborhoodScore,
		Features:          features,
		Description:       r.Description,
		DescriptionES:     r.DescriptionES,
		Source:            r.Source,
		SourceURL:         r.SourceURL,
		ListingDate:       r.ListingDate,
		Address:           r.Address,
	}, nil
}
