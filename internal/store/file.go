package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"gatewaysv/server/internal/models"
)

// listingSchema validates the top-level shape of the exported
// properties file before it is decoded into Listing values.
const listingSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id":                 {"type": "string"},
			"title":              {"type": "string"},
			"title_es":           {"type": "string"},
			"department":         {"type": "string"},
			"municipio":          {"type": "string"},
			"price_usd":          {"type": ["number", "null"], "minimum": 0},
			"ai_valuation_usd":   {"type": ["number", "null"]},
			"bedrooms":           {"type": ["integer", "null"]},
			"bathrooms":          {"type": ["integer", "null"]},
			"area_m2":            {"type": ["number", "null"]},
			"lot_size_m2":        {"type": ["number", "null"]},
			"property_type":      {"type": "string"},
			"latitude":           {"type": "number"},
			"longitude":          {"type": "number"},
			"coords_exact":       {"type": "boolean"},
			"thumbnail_url":      {"type": ["string", "null"]},
			"images":             {"type": "array", "items": {"type": "string"}},
			"is_featured":        {"type": "boolean"},
			"neighborhood_score": {"type": ["number", "null"], "minimum": 0, "maximum": 10},
			"features":           {"type": "array", "items": {"type": "string"}},
			"description":        {"type": "string"},
			"description_es":     {"type": "string"},
			"source":             {"type": "string"},
			"source_url":         {"type": "string"},
			"listing_date":       {"type": "string"},
			"address":            {"type": "string"}
		}
	}
}`

// FileSource reads listings from the JSON file produced by the export
// pipeline (apps/web/public/data/properties.json in the deployed site).
type FileSource struct {
	path   string
	schema *jsonschema.Schema
}

func NewFileSource(path string) *FileSource {
	// The schema string is a compile-time constant; failure to compile
	// it is a programming error.
	schema := jsonschema.MustCompileString("listings.schema.json", listingSchema)
	return &FileSource{
		path:   path,
		schema: schema,
	}
}

func (f *FileSource) Load() ([]models.Listing, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings file: %v", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse listings file: %v", err)
	}
	if err := f.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("listings file failed schema validation: %v", err)
	}

	var listings []models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %v", err)
	}
	return listings, nil
}
