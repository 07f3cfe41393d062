package query

import (
	"sort"
	"strings"

	"github.com/paulmach/orb"

	"gatewaysv/server/internal/geometry"
	"gatewaysv/server/internal/models"
	"gatewaysv/server/internal/store"
)

// Fallback buckets for listings missing region fields.
const (
	unknownDepartment = "Unknown"
	otherMunicipio    = "Other"
)

// Aggregator produces the department/municipio rollup and the
// collection-wide stats used by the discovery screens.
type Aggregator struct {
	store *store.Store
}

func NewAggregator(st *store.Store) *Aggregator {
	return &Aggregator{store: st}
}

type departmentAcc struct {
	name       string
	count      int
	priceSum   float64
	pricedN    int
	sample     *string
	points     []orb.Point
	muniCounts map[string]int
	muniOrder  []string
}

// Departments groups the full collection by department in a single
// pass. Departments and their municipio lists are ranked descending by
// count; ties keep first-encountered order.
func (a *Aggregator) Departments() (*models.DepartmentSummary, error) {
	listings, err := a.store.Load()
	if err != nil {
		return nil, err
	}

	accs := make(map[string]*departmentAcc)
	var order []string

	for i := range listings {
		l := &listings[i]

		name := l.Department
		if name == "" {
			name = unknownDepartment
		}
		acc, ok := accs[name]
		if !ok {
			acc = &departmentAcc{
				name:       name,
				muniCounts: make(map[string]int),
			}
			accs[name] = acc
			order = append(order, name)
		}

		acc.count++
		if l.PriceUSD != nil && *l.PriceUSD > 0 {
			acc.priceSum += *l.PriceUSD
			acc.pricedN++
		}
		if acc.sample == nil {
			if l.ThumbnailURL != nil && *l.ThumbnailURL != "" {
				acc.sample = l.ThumbnailURL
			} else if len(l.Images) > 0 {
				img := l.Images[0]
				acc.sample = &img
			}
		}
		if geometry.ValidCoordinates(l.Latitude, l.Longitude) {
			acc.points = append(acc.points, orb.Point{l.Longitude, l.Latitude})
		}

		muni := l.Municipio
		if muni == "" {
			muni = otherMunicipio
		}
		if _, seen := acc.muniCounts[muni]; !seen {
			acc.muniOrder = append(acc.muniOrder, muni)
		}
		acc.muniCounts[muni]++
	}

	departments := make([]models.DepartmentAggregate, 0, len(order))
	for _, name := range order {
		departments = append(departments, accs[name].finish())
	}
	sort.SliceStable(departments, func(i, j int) bool {
		return departments[i].Count > departments[j].Count
	})

	return &models.DepartmentSummary{
		Departments: departments,
		Total:       len(listings),
	}, nil
}

func (acc *departmentAcc) finish() models.DepartmentAggregate {
	munis := make([]models.MunicipioAggregate, 0, len(acc.muniOrder))
	for _, name := range acc.muniOrder {
		munis = append(munis, models.MunicipioAggregate{
			Name:  name,
			Count: acc.muniCounts[name],
		})
	}
	sort.SliceStable(munis, func(i, j int) bool {
		return munis[i].Count > munis[j].Count
	})

	var avg *float64
	if acc.pricedN > 0 {
		v := acc.priceSum / float64(acc.pricedN)
		avg = &v
	}

	var centroid *models.Coordinate
	if center, ok := geometry.Centroid(acc.points); ok {
		centroid = &models.Coordinate{
			Latitude:  center[1],
			Longitude: center[0],
		}
	}

	return models.DepartmentAggregate{
		Department:  acc.name,
		Count:       acc.count,
		AvgPrice:    avg,
		SampleImage: acc.sample,
		Centroid:    centroid,
		Municipios:  munis,
	}
}

// Stats summarizes the full collection: counts, price spread over
// positively priced listings, distinct departments and the property
// type breakdown.
func (a *Aggregator) Stats() (*models.ListingStats, error) {
	listings, err := a.store.Load()
	if err != nil {
		return nil, err
	}

	stats := &models.ListingStats{
		TotalListings:  len(listings),
		ByPropertyType: make(map[string]int),
	}

	departments := make(map[string]struct{})
	var priceSum float64
	var pricedN int
	var minPrice, maxPrice float64

	for i := range listings {
		l := &listings[i]

		if l.IsFeatured {
			stats.FeaturedCount++
		}
		if l.Department != "" {
			departments[strings.ToLower(l.Department)] = struct{}{}
		}
		stats.ByPropertyType[l.PropertyType]++

		if l.PriceUSD != nil && *l.PriceUSD > 0 {
			price := *l.PriceUSD
			if pricedN == 0 || price < minPrice {
				minPrice = price
			}
			if pricedN == 0 || price > maxPrice {
				maxPrice = price
			}
			priceSum += price
			pricedN++
		}
	}

	stats.Departments = len(departments)
	if pricedN > 0 {
		avg := priceSum / float64(pricedN)
		stats.AvgPrice = &avg
		stats.MinPrice = &minPrice
		stats.MaxPrice = &maxPrice
	}
	return stats, nil
}
