package geoindex

import (
	"Proximity_Search_Microservice/internal/search-service/model"
	"cmp"
	"context"
	"math"
	"slices"
)

const (
	BackendElasticsearch = "elasticsearch"
	BackendPostGIS       = "postgis"
	BackendMemory        = "memory"
)

// distanceScale quantizes distances to 1e-6 m. Distances on the same step are equal and
// the lower id wins.
const distanceScale = 1e6

type NearestRequest struct {
	Origin       model.GeoPoint
	RadiusMeters int
	Categories   []string
	Agencies     []string
	Limit        int
	Offset       int
}

type NearestPage struct {
	Candidates []model.Candidate
	Total      int64
}

// Index answers nearest-neighbour queries. Implementations return errors wrapping
// apperrors.ErrIndexUnavailable and never a substitute ordering.
//
//go:generate mockgen -source=index.go -destination=../mocks/geoindex/mock_index.go -package=mockgeoindex
type Index interface {
	Nearest(ctx context.Context, req NearestRequest) (NearestPage, error)
	Ping(ctx context.Context) error
	Name() string
}

// QuantizeDistance rounds d to the nearest 1e-6 m.
func QuantizeDistance(d float64) float64 {
	return math.Round(d*distanceScale) / distanceScale
}

func CompareCandidates(a, b model.Candidate) int {
	if c := cmp.Compare(math.Round(a.DistanceMeters*distanceScale), math.Round(b.DistanceMeters*distanceScale)); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortCandidates quantizes every distance in place, then orders by distance ascending
// with the id tie rule. The reported distance is the one the order was decided on.
func SortCandidates(candidates []model.Candidate) {
	for i := range candidates {
		candidates[i].DistanceMeters = QuantizeDistance(candidates[i].DistanceMeters)
	}
	slices.SortFunc(candidates, CompareCandidates)
}
