package cache

import (
	"Proximity_Search_Microservice/internal/search-service/model"
	"slices"
	"strings"

	"github.com/mmcloughlin/geohash"
)

// CellPrecision is the geohash length recorded for distance-ordered entries. Five
// characters is a cell of roughly 4.9km by 4.9km.
const CellPrecision = 5

// Predicate selects cache entries for invalidation.
type Predicate func(entry model.CacheEntry) bool

// Cell returns the geohash cell of origin, or "" for entries without one.
func Cell(origin *model.GeoPoint) string {
	if origin == nil {
		return ""
	}
	return geohash.EncodeWithPrecision(origin.Lat, origin.Lng, CellPrecision)
}

func All() Predicate {
	return func(model.CacheEntry) bool {
		return true
	}
}

// ByCategory matches entries filtered on any of the categories, plus entries with no
// category filter since those can contain any category.
func ByCategory(categories ...string) Predicate {
	wanted := lowerAll(categories)
	return func(entry model.CacheEntry) bool {
		return len(entry.Categories) == 0 || intersects(entry.Categories, wanted)
	}
}

func ByAgency(agencies ...string) Predicate {
	wanted := lowerAll(agencies)
	return func(entry model.CacheEntry) bool {
		return len(entry.Agencies) == 0 || intersects(entry.Agencies, wanted)
	}
}

// NearPoint matches distance-ordered entries whose origin cell is the point's cell or
// one of its neighbours. Default-ordered entries are not bound to an area and always
// match.
func NearPoint(p model.GeoPoint) Predicate {
	center := geohash.EncodeWithPrecision(p.Lat, p.Lng, CellPrecision)
	cells := append(geohash.Neighbors(center), center)
	return func(entry model.CacheEntry) bool {
		return entry.Cell == "" || slices.Contains(cells, entry.Cell)
	}
}

// Any matches when at least one of preds does. Any() with no predicates matches nothing.
func Any(preds ...Predicate) Predicate {
	return func(entry model.CacheEntry) bool {
		for _, p := range preds {
			if p(entry) {
				return true
			}
		}
		return false
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if slices.Contains(b, v) {
			return true
		}
	}
	return false
}
