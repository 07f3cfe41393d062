package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
	"github.com/sirupsen/logrus"

	"gatewaysv/server/internal/geometry"
	"gatewaysv/server/internal/models"
)

var (
	// ErrDataUnavailable means the backing listing source could not be
	// read or did not contain a usable collection.
	ErrDataUnavailable = errors.New("listing data unavailable")

	// ErrNotFound means no listing exists with the requested id.
	ErrNotFound = errors.New("listing not found")
)

// Source reads the full listing collection from a backing source.
type Source interface {
	Load() ([]models.Listing, error)
}

// Store holds the immutable listing collection for the process
// lifetime. The first Load reads the backing source exactly once, even
// under concurrent callers; after that all reads are lock-free on the
// cached slice. A failed load is not cached, so callers may retry.
type Store struct {
	source Source
	logger *logrus.Logger

	mu       sync.RWMutex
	loaded   bool
	listings []models.Listing
	byID     map[string]int
}

func NewStore(source Source, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		source: source,
		logger: logger,
	}
}

// Load returns the cached collection, reading and normalizing the
// backing source on first use. Callers must not mutate the returned
// slice.
func (s *Store) Load() ([]models.Listing, error) {
	s.mu.RLock()
	if s.loaded {
		listings := s.listings
		s.mu.RUnlock()
		return listings, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.listings, nil
	}

	raw, err := s.source.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	listings, byID, err := s.normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	s.listings = listings
	s.byID = byID
	s.loaded = true
	s.logger.WithField("count", len(listings)).Info("Loaded listing collection")
	return s.listings, nil
}

// GetByID returns the listing with the given id, loading the
// collection if needed.
func (s *Store) GetByID(id string) (models.Listing, error) {
	if _, err := s.Load(); err != nil {
		return models.Listing{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return models.Listing{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.listings[i], nil
}

// normalize assigns fallback ids, checks id uniqueness, clears
// out-of-country coordinates back to the (0,0) sentinel and computes
// geohashes for the rest.
func (s *Store) normalize(listings []models.Listing) ([]models.Listing, map[string]int, error) {
	byID := make(map[string]int, len(listings))
	for i := range listings {
		l := &listings[i]

		if l.ID == "" {
			// Fallback ids are the first 8 UUID characters, the same
			// shape the export pipeline uses for records without a
			// content hash. The duplicate check below catches the rare
			// truncation collision.
			l.ID = uuid.NewString()[:8]
		}
		if prev, dup := byID[l.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate listing id %q (records %d and %d)", l.ID, prev, i)
		}
		byID[l.ID] = i

		if geometry.ValidCoordinates(l.Latitude, l.Longitude) {
			l.Geohash = geohash.EncodeWithPrecision(l.Latitude, l.Longitude, 7)
		} else {
			l.Latitude, l.Longitude = 0, 0
			l.CoordsExact = false
			l.Geohash = ""
		}

		if l.Department != "" && !geometry.IsDepartment(l.Department) {
			s.logger.WithFields(logrus.Fields{
				"id":         l.ID,
				"department": l.Department,
			}).Warn("Listing references unrecognized department")
		}
	}
	return listings, byID, nil
}
