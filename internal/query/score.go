package query

import "gatewaysv/server/internal/models"

// Scorer ranks listings for the score sort. Implementations must be
// pure functions of the listing so sorting stays deterministic.
type Scorer interface {
	Score(l *models.Listing) float64
}

// DesirabilityScorer is the ranking the browse pages have always used:
// featured listings first, then more photos, with a bonus for listings
// that carry a description.
type DesirabilityScorer struct{}

func (DesirabilityScorer) Score(l *models.Listing) float64 {
	var score float64
	if l.IsFeatured {
		score += 100
	}
	score += 5 * float64(len(l.Images))
	if l.Description != "" {
		score += 20
	}
	return score
}
