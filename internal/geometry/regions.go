package geometry

import (
	"strings"

	"github.com/paulmach/orb"
)

// Department is one of El Salvador's 14 first-level administrative
// regions, with the centroid used by the export pipeline.
type Department struct {
	Name   string
	Center orb.Point
}

// Departments lists all 14 departments. Centroids are (lng, lat) per
// the orb point convention.
var Departments = []Department{
	{Name: "San Salvador", Center: orb.Point{-89.1914, 13.6989}},
	{Name: "La Libertad", Center: orb.Point{-89.3200, 13.4900}},
	{Name: "Santa Ana", Center: orb.Point{-89.5597, 13.9940}},
	{Name: "San Miguel", Center: orb.Point{-88.1833, 13.4833}},
	{Name: "Sonsonate", Center: orb.Point{-89.7240, 13.7190}},
	{Name: "Usulután", Center: orb.Point{-88.4500, 13.3500}},
	{Name: "Ahuachapán", Center: orb.Point{-89.8450, 13.9214}},
	{Name: "La Paz", Center: orb.Point{-88.9500, 13.5000}},
	{Name: "La Unión", Center: orb.Point{-87.8400, 13.3400}},
	{Name: "Chalatenango", Center: orb.Point{-88.9333, 14.0333}},
	{Name: "Cuscatlán", Center: orb.Point{-88.9300, 13.7200}},
	{Name: "Morazán", Center: orb.Point{-88.1000, 13.7500}},
	{Name: "San Vicente", Center: orb.Point{-88.8000, 13.6333}},
	{Name: "Cabañas", Center: orb.Point{-88.7500, 13.8600}},
}

// countryBound is the El Salvador bounding box used to validate
// scraped coordinates.
var countryBound = orb.Bound{
	Min: orb.Point{-90.2, 13.0},
	Max: orb.Point{-87.5, 14.5},
}

// IsDepartment reports whether name matches a recognized department,
// case-insensitively.
func IsDepartment(name string) bool {
	for _, d := range Departments {
		if strings.EqualFold(d.Name, name) {
			return true
		}
	}
	return false
}

// DepartmentNames returns the 14 department names in canonical order.
func DepartmentNames() []string {
	names := make([]string, len(Departments))
	for i, d := range Departments {
		names[i] = d.Name
	}
	return names
}

// ValidCoordinates reports whether the point is usable: non-zero and
// inside the country bounding box. (0,0) is the "unknown" sentinel.
func ValidCoordinates(lat, lng float64) bool {
	if lat == 0 && lng == 0 {
		return false
	}
	return countryBound.Contains(orb.Point{lng, lat})
}

// Centroid returns the center of the bounding box around the given
// points. The second return value is false when points is empty.
func Centroid(points []orb.Point) (orb.Point, bool) {
	if len(points) == 0 {
		return orb.Point{}, false
	}
	return orb.MultiPoint(points).Bound().Center(), true
}
